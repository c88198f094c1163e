package mark_no_show

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
	markNoShow "github.com/m04kA/SMC-TrainingService/internal/usecase/mark_no_show"
	"github.com/m04kA/SMC-TrainingService/pkg/logger"
)

type fakeUseCase struct {
	got *markNoShow.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *markNoShow.Request) (*markNoShow.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &markNoShow.Response{
		Booking: &domain.SessionBooking{ID: req.BookingID, Status: domain.StatusNoShow},
		Cancellation: &domain.SessionCancellation{
			BookingID:   req.BookingID,
			CancelledBy: domain.ActorTrainer,
			FeeApplied:  true,
			FeeAmount:   100,
		},
	}, nil
}

func serve(uc *fakeUseCase, bookingID, payload string, role domain.ActorRole) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/no-show", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	req = req.WithContext(middleware.WithUser(req.Context(), 1, role))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_MarkedNoShow(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "9", `{"party":"client"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), uc.got.BookingID)
	assert.Equal(t, int64(1), uc.got.ActorID)
	assert.Equal(t, domain.NoShowClient, uc.got.Party)
	assert.Empty(t, uc.got.ActorRole)

	var resp MarkNoShowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no_show", resp.Booking.Status)
	assert.Equal(t, "trainer", resp.Cancellation.CancelledBy)
	assert.Equal(t, 100.0, resp.Cancellation.FeeAmount)
}

func TestHandler_PassesAdminRole(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "9", `{"party":"both"}`, domain.ActorAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ActorAdmin, uc.got.ActorRole)
	assert.Equal(t, domain.NoShowBoth, uc.got.Party)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name      string
		bookingID string
		payload   string
		err       error
		wantCode  int
	}{
		{"bad id", "abc", `{"party":"client"}`, nil, http.StatusBadRequest},
		{"missing party", "9", `{}`, nil, http.StatusBadRequest},
		{"unknown party", "9", `{"party":"nobody"}`, nil, http.StatusBadRequest},
		{"unknown field", "9", `{"party":"client","fee":1}`, nil, http.StatusBadRequest},
		{"not found", "9", `{"party":"client"}`, markNoShow.ErrBookingNotFound, http.StatusNotFound},
		{"access denied", "9", `{"party":"client"}`, markNoShow.ErrAccessDenied, http.StatusForbidden},
		{"not started", "9", `{"party":"client"}`, markNoShow.ErrCannotMarkNoShow, http.StatusConflict},
		{"invalid input", "9", `{"party":"client"}`, markNoShow.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "9", `{"party":"client"}`, markNoShow.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}
			rec := serve(uc, tt.bookingID, tt.payload, "")
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.err == nil {
				assert.Nil(t, uc.got)
			}
		})
	}
}
