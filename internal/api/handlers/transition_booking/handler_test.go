package transition_booking

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingService/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TrainingService/pkg/logger"
)

type fakeService struct {
	called string
	notes  *string
	err    error
}

func (f *fakeService) do(name string, id int64, req *models.TransitionRequest, status string) (*models.BookingResponse, error) {
	f.called = name
	f.notes = req.Notes
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: status}, nil
}

func (f *fakeService) RequestConfirmation(_ context.Context, id int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	return f.do("pending", id, req, "pending")
}

func (f *fakeService) Confirm(_ context.Context, id int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	return f.do("confirm", id, req, "confirmed")
}

func (f *fakeService) Start(_ context.Context, id int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	return f.do("start", id, req, "in_progress")
}

func (f *fakeService) Complete(_ context.Context, id int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	return f.do("complete", id, req, "completed")
}

func serve(svc *fakeService, action Action, payload string) *httptest.ResponseRecorder {
	h := NewHandler(svc, action, logger.NewWithWriter(io.Discard, "error"))
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/4/"+string(action), strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "4"})
	req = req.WithContext(middleware.WithUser(req.Context(), 1, ""))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_DispatchesAction(t *testing.T) {
	for _, action := range []Action{ActionRequestConfirmation, ActionConfirm, ActionStart, ActionComplete} {
		svc := &fakeService{}
		rec := serve(svc, action, "")
		require.Equal(t, http.StatusOK, rec.Code, action)
		assert.Equal(t, string(action), svc.called)
	}
}

func TestHandler_CompleteWithNotes(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, ActionComplete, `{"notes":"good progress on squats"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.notes)
	assert.Equal(t, "good progress on squats", *svc.notes)
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)
}

func TestHandler_Errors(t *testing.T) {
	rec := serve(&fakeService{err: bookings.ErrInvalidTransition}, ActionConfirm, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(&fakeService{err: bookings.ErrAccessDenied}, ActionConfirm, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(&fakeService{err: bookings.ErrBookingNotFound}, ActionStart, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(&fakeService{}, ActionComplete, `{"notes":`+`"`+strings.Repeat("x", 2001)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
