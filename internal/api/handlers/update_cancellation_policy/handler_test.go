package update_cancellation_policy

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
	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/service/policy"
	"github.com/m04kA/SMC-TrainingService/internal/service/policy/models"
	"github.com/m04kA/SMC-TrainingService/pkg/logger"
)

type fakeService struct {
	got *models.UpdatePolicyRequest
	err error
}

func (f *fakeService) Update(_ context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	p := domain.DefaultCancellationPolicy(req.TrainerID)
	req.ApplyToPolicy(p)
	return models.FromDomainPolicy(p, false), nil
}

func serve(svc *fakeService, trainerID string, role domain.ActorRole, payload string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, "error"))
	req := httptest.NewRequest(http.MethodPut, "/api/v1/trainers/"+trainerID+"/cancellation-policy", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"trainerId": trainerID})
	req = req.WithContext(middleware.WithUser(req.Context(), 7, role))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Success(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "7", "", `{"advanceNoticeHours":48,"chargeCancellationFee":true,"cancellationFeePercentage":50}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(7), svc.got.UserID)
	assert.Equal(t, int64(7), svc.got.TrainerID)
	require.NotNil(t, svc.got.AdvanceNoticeHours)
	assert.Equal(t, 48, *svc.got.AdvanceNoticeHours)
	assert.Nil(t, svc.got.MaxReschedulesPerSession)
	assert.Contains(t, rec.Body.String(), `"advanceNoticeHours":48`)
}

func TestHandler_PassesRole(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "3", domain.ActorAdmin, `{"isActive":false}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ActorAdmin, svc.got.Role)
	assert.Equal(t, int64(3), svc.got.TrainerID)
}

func TestHandler_Errors(t *testing.T) {
	rec := serve(&fakeService{}, "abc", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeService{}, "7", "", `{"cancellationFeePercentage":150}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeService{}, "7", "", `{"unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeService{err: policy.ErrAccessDenied}, "9", "", `{"isActive":true}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(&fakeService{err: policy.ErrInvalidInput}, "7", "", `{"isActive":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
