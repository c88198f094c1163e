package availability

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/service/availability/models"
	"github.com/m04kA/SMC-TrainingService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-TrainingService/pkg/logger"
	"github.com/m04kA/SMC-TrainingService/pkg/ptr"
)

const trainerID = int64(1)

func newService() *Service {
	return NewService(
		&usecasetest.AvailabilityRepo{S: usecasetest.NewStore()},
		logger.NewWithWriter(io.Discard, "error"),
	)
}

func weekly(day int, start, end string) *models.CreateAvailabilityRequest {
	return &models.CreateAvailabilityRequest{
		UserID:                 trainerID,
		TrainerID:              trainerID,
		DayOfWeek:              ptr.Ptr(day),
		StartTime:              start,
		EndTime:                end,
		SessionDurationMinutes: 60,
	}
}

func TestService_CreateAndList(t *testing.T) {
	svc := newService()

	created, err := svc.Create(context.Background(), weekly(0, "09:00", "12:00"))
	require.NoError(t, err)
	assert.True(t, created.IsRecurring)
	assert.True(t, created.IsAvailable)
	assert.Nil(t, created.SpecificDate)

	override := &models.CreateAvailabilityRequest{
		UserID:                 trainerID,
		TrainerID:              trainerID,
		StartTime:              "09:00",
		EndTime:                "10:00",
		SessionDurationMinutes: 60,
		IsAvailable:            ptr.Ptr(false),
		SpecificDate:           ptr.Ptr("2025-03-05"),
	}
	created, err = svc.Create(context.Background(), override)
	require.NoError(t, err)
	assert.False(t, created.IsRecurring)
	assert.Equal(t, 2, created.DayOfWeek) // среда
	assert.Equal(t, "2025-03-05", *created.SpecificDate)

	list, err := svc.List(context.Background(), trainerID)
	require.NoError(t, err)
	assert.Len(t, list.Availability, 2)
	assert.Equal(t, "09:00", list.Availability[0].StartTime)
}

func TestService_CreateValidation(t *testing.T) {
	svc := newService()

	cases := map[string]*models.CreateAvailabilityRequest{
		"end before start":   weekly(0, "12:00", "09:00"),
		"day out of range":   weekly(7, "09:00", "12:00"),
		"bad time":           weekly(0, "9am", "12:00"),
		"duration too long":  weekly(0, "09:00", "09:30"),
		"no day and no date": {UserID: trainerID, TrainerID: trainerID, StartTime: "09:00", EndTime: "12:00", SessionDurationMinutes: 60},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	short := weekly(0, "09:00", "12:00")
	short.SessionDurationMinutes = 10
	_, err := svc.Create(context.Background(), short)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_RowLimit(t *testing.T) {
	svc := newService()
	for i := 0; i < domain.MaxAvailabilityRowsPerTrainer; i++ {
		_, err := svc.Create(context.Background(), weekly(i%7, "09:00", "12:00"))
		require.NoError(t, err)
	}

	_, err := svc.Create(context.Background(), weekly(0, "13:00", "15:00"))
	assert.ErrorIs(t, err, ErrTooManyRows)
}

func TestService_Delete(t *testing.T) {
	svc := newService()
	created, err := svc.Create(context.Background(), weekly(0, "09:00", "12:00"))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), &models.DeleteAvailabilityRequest{
		UserID: 2, TrainerID: trainerID, AvailabilityID: created.ID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Delete(context.Background(), &models.DeleteAvailabilityRequest{
		UserID: trainerID, TrainerID: trainerID, AvailabilityID: created.ID,
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), &models.DeleteAvailabilityRequest{
		UserID: trainerID, TrainerID: trainerID, AvailabilityID: created.ID,
	})
	assert.ErrorIs(t, err, ErrAvailabilityNotFound)

	list, err := svc.List(context.Background(), trainerID)
	require.NoError(t, err)
	assert.Empty(t, list.Availability)
}

func TestService_CreateAccess(t *testing.T) {
	svc := newService()
	req := weekly(0, "09:00", "12:00")
	req.UserID = 2

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	req.Role = domain.ActorAdmin
	_, err = svc.Create(context.Background(), req)
	assert.NoError(t, err)
}
