package reschedule_booking

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-TrainingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-TrainingService/pkg/logger"
)

type fakeUseCase struct {
	got *rescheduleBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	originalID := req.BookingID
	return &rescheduleBooking.Response{
		Original: &domain.SessionBooking{ID: req.BookingID, Status: domain.StatusRescheduled},
		Booking: &domain.SessionBooking{
			ID:                req.BookingID + 1,
			Status:            domain.StatusScheduled,
			ScheduledStart:    req.NewStart,
			ScheduledEnd:      req.NewEnd,
			OriginalSessionID: &originalID,
		},
	}, nil
}

const body = `{"newStart":"2025-03-05T14:00:00Z","newEnd":"2025-03-05T15:00:00Z","reason":"work trip"}`

func serve(uc *fakeUseCase, payload string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/10/reschedule", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "10"})
	req = req.WithContext(middleware.WithUser(req.Context(), 3, ""))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Rescheduled(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "work trip", uc.got.Reason)

	var resp RescheduleBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rescheduled", resp.Original.Status)
	require.NotNil(t, resp.Booking.OriginalSessionID)
	assert.Equal(t, int64(10), *resp.Booking.OriginalSessionID)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		err      error
		wantCode int
	}{
		{"end before start", `{"newStart":"2025-03-05T14:00:00Z","newEnd":"2025-03-05T13:00:00Z"}`, nil, http.StatusBadRequest},
		{"limit", body, rescheduleBooking.ErrRescheduleLimit, http.StatusUnprocessableEntity},
		{"notice", body, rescheduleBooking.ErrInsufficientNotice, http.StatusUnprocessableEntity},
		{"conflict", body, rescheduleBooking.ErrSlotConflict, http.StatusConflict},
		{"wrong status", body, rescheduleBooking.ErrCannotReschedule, http.StatusConflict},
		{"not found", body, rescheduleBooking.ErrBookingNotFound, http.StatusNotFound},
		{"internal", body, rescheduleBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.payload)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
