package book_group_session

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
	bookGroupSession "github.com/m04kA/SMC-TrainingService/internal/usecase/book_group_session"
	"github.com/m04kA/SMC-TrainingService/pkg/logger"
)

type fakeUseCase struct {
	got *bookGroupSession.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *bookGroupSession.Request) (*bookGroupSession.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	position := 1
	return &bookGroupSession.Response{
		Participant: &domain.GroupSessionParticipant{
			ID:               5,
			GroupSessionID:   req.SessionID,
			ClientID:         req.ClientID,
			BookingStatus:    domain.ParticipantWaitlisted,
			WaitlistPosition: &position,
		},
		Session: &domain.GroupSession{ID: req.SessionID, MaxParticipants: 10, CurrentParticipants: 10},
	}, nil
}

func serve(uc *fakeUseCase, userID int64, payload string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/group-sessions/3/participants", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"sessionId": "3"})
	req = req.WithContext(middleware.WithUser(req.Context(), userID, ""))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_BookSelf(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, 42, `{"amountPaid":20}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(42), uc.got.ClientID)
	assert.Equal(t, int64(42), uc.got.ActorID)
	assert.Equal(t, 20.0, uc.got.AmountPaid)

	var resp BookGroupSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "waitlisted", resp.Participant.BookingStatus)
	require.NotNil(t, resp.Participant.WaitlistPosition)
	assert.Equal(t, 1, *resp.Participant.WaitlistPosition)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"full", bookGroupSession.ErrSessionFull, http.StatusConflict},
		{"duplicate", bookGroupSession.ErrAlreadyBooked, http.StatusConflict},
		{"deadline", bookGroupSession.ErrDeadlinePassed, http.StatusUnprocessableEntity},
		{"not found", bookGroupSession.ErrSessionNotFound, http.StatusNotFound},
		{"access", bookGroupSession.ErrAccessDenied, http.StatusForbidden},
		{"internal", bookGroupSession.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, 42, `{}`)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}

	rec := serve(&fakeUseCase{}, 42, `{"amountPaid":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
