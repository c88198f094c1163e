package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", domain.ErrConflict), http.StatusConflict},
		{fmt.Errorf("x: %w", domain.ErrPolicyViolation), http.StatusUnprocessableEntity},
		{fmt.Errorf("x: %w", domain.ErrInvalidStateTransition), http.StatusConflict},
		{fmt.Errorf("x: %w", domain.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("x: %w", domain.ErrAccessDenied), http.StatusForbidden},
		{fmt.Errorf("x: %w", domain.ErrInternal), http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFromError(tt.err), tt.err.Error())
	}
}

func TestRespondDomainError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("%w: pq: connection refused", domain.ErrInternal), "ignored")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq")
}

type decodeTarget struct {
	TrainerID int64  `json:"trainerId" validate:"required,gt=0"`
	Type      string `json:"type" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	var ok decodeTarget
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"trainerId":1,"type":"strength"}`))
	require.NoError(t, DecodeJSON(r, &ok))
	assert.Equal(t, int64(1), ok.TrainerID)

	var missing decodeTarget
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"trainerId":1}`))
	assert.Error(t, DecodeJSON(r, &missing))

	var unknown decodeTarget
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"trainerId":1,"type":"x","extra":true}`))
	assert.Error(t, DecodeJSON(r, &unknown))
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": "42"})
	id, err := PathInt64(r, "bookingId")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": "-1"})
	_, err = PathInt64(r, "bookingId")
	assert.Error(t, err)
}

func TestDecodeOptionalJSON_EmptyBody(t *testing.T) {
	var target struct {
		Reason string `json:"reason" validate:"max=5"`
	}
	r := httptest.NewRequest(http.MethodPatch, "/", nil)
	require.NoError(t, DecodeOptionalJSON(r, &target))

	r = httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"reason":"too long"}`))
	assert.Error(t, DecodeOptionalJSON(r, &target))
}
