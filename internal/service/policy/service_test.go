package policy

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/service/policy/models"
	"github.com/m04kA/SMC-TrainingService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-TrainingService/pkg/logger"
	"github.com/m04kA/SMC-TrainingService/pkg/ptr"
)

const trainerID = int64(1)

func newService() (*Service, *usecasetest.Store) {
	store := usecasetest.NewStore()
	return NewService(&usecasetest.PolicyRepo{S: store}, logger.NewWithWriter(io.Discard, "error")), store
}

func TestService_GetDefaults(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.Get(context.Background(), trainerID)
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, domain.DefaultAdvanceNoticeHours, resp.AdvanceNoticeHours)
	assert.Equal(t, domain.DefaultMaxReschedulesPerSession, resp.MaxReschedulesPerSession)
	assert.False(t, resp.ChargeCancellationFee)
	assert.Nil(t, resp.CreatedAt)
}

func TestService_UpdateCreatesLazily(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.Update(context.Background(), &models.UpdatePolicyRequest{
		UserID:                    trainerID,
		TrainerID:                 trainerID,
		ChargeCancellationFee:     ptr.Ptr(true),
		CancellationFeePercentage: ptr.Ptr(20.0),
	})
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.True(t, resp.ChargeCancellationFee)
	assert.Equal(t, 20.0, *resp.CancellationFeePercentage)
	assert.Equal(t, domain.DefaultAdvanceNoticeHours, resp.AdvanceNoticeHours)

	// частичное обновление сохраняет остальные поля
	resp, err = svc.Update(context.Background(), &models.UpdatePolicyRequest{
		UserID:             trainerID,
		TrainerID:          trainerID,
		AdvanceNoticeHours: ptr.Ptr(48),
	})
	require.NoError(t, err)
	assert.Equal(t, 48, resp.AdvanceNoticeHours)
	assert.True(t, resp.ChargeCancellationFee)

	got, err := svc.Get(context.Background(), trainerID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
	assert.Equal(t, 48, got.AdvanceNoticeHours)
}

func TestService_UpdateValidation(t *testing.T) {
	svc, store := newService()

	cases := map[string]*models.UpdatePolicyRequest{
		"notice too large":     {AdvanceNoticeHours: ptr.Ptr(721)},
		"negative notice":      {RescheduleAdvanceNoticeHours: ptr.Ptr(-1)},
		"percentage > 100":     {CancellationFeePercentage: ptr.Ptr(120.0)},
		"negative no-show":     {NoShowFeeAmount: ptr.Ptr(-10.0)},
		"too many reschedules": {MaxReschedulesPerSession: ptr.Ptr(21)},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			req.UserID = trainerID
			req.TrainerID = trainerID
			_, err := svc.Update(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := (&usecasetest.PolicyRepo{S: store}).GetByTrainerID(context.Background(), trainerID)
	assert.Error(t, err, "invalid updates must not be persisted")
}

func TestService_UpdateAccess(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Update(context.Background(), &models.UpdatePolicyRequest{
		UserID: 2, TrainerID: trainerID, AdvanceNoticeHours: ptr.Ptr(10),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Update(context.Background(), &models.UpdatePolicyRequest{
		UserID: 2, Role: domain.ActorAdmin, TrainerID: trainerID, AdvanceNoticeHours: ptr.Ptr(10),
	})
	assert.NoError(t, err)
}
