package cancel_booking

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
	cancelBooking "github.com/m04kA/SMC-TrainingService/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-TrainingService/pkg/logger"
)

type fakeUseCase struct {
	got *cancelBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &cancelBooking.Response{
		Booking: &domain.SessionBooking{ID: req.BookingID, Status: domain.StatusCancelled},
		Cancellation: &domain.SessionCancellation{
			BookingID:   req.BookingID,
			CancelledBy: domain.ActorClient,
			NoticeHours: 5,
			FeeApplied:  true,
			FeeAmount:   25,
		},
	}, nil
}

func serve(uc *fakeUseCase, bookingID, payload string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))
	var req *http.Request
	if payload == "" {
		req = httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/cancel", nil)
	} else {
		req = httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/cancel", strings.NewReader(payload))
	}
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	req = req.WithContext(middleware.WithUser(req.Context(), 2, ""))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Cancelled(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "7", `{"reason":"sick","isEmergency":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), uc.got.BookingID)
	assert.Equal(t, int64(2), uc.got.ActorID)
	assert.True(t, uc.got.IsEmergency)

	var resp CancelBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Booking.Status)
	assert.Equal(t, 25.0, resp.Cancellation.FeeAmount)
}

func TestHandler_EmptyBody(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "7", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, uc.got.Reason)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name      string
		bookingID string
		err       error
		wantCode  int
	}{
		{"bad id", "abc", nil, http.StatusBadRequest},
		{"not found", "7", cancelBooking.ErrBookingNotFound, http.StatusNotFound},
		{"access denied", "7", cancelBooking.ErrAccessDenied, http.StatusForbidden},
		{"already cancelled", "7", cancelBooking.ErrCannotCancel, http.StatusConflict},
		{"internal", "7", cancelBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.bookingID, `{}`)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
