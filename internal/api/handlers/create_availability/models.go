package create_availability

import (
	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/service/availability/models"
)

// CreateAvailabilityRequest HTTP request model
type CreateAvailabilityRequest struct {
	DayOfWeek              *int    `json:"dayOfWeek,omitempty" validate:"omitempty,min=0,max=6"`
	StartTime              string  `json:"startTime" validate:"required"`
	EndTime                string  `json:"endTime" validate:"required"`
	SessionDurationMinutes int     `json:"sessionDurationMinutes" validate:"required,min=1"`
	IsAvailable            *bool   `json:"isAvailable,omitempty"`
	SpecificDate           *string `json:"specificDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateAvailabilityRequest) ToServiceRequest(userID int64, role domain.ActorRole, trainerID int64) *models.CreateAvailabilityRequest {
	return &models.CreateAvailabilityRequest{
		UserID:                 userID,
		Role:                   role,
		TrainerID:              trainerID,
		DayOfWeek:              r.DayOfWeek,
		StartTime:              r.StartTime,
		EndTime:                r.EndTime,
		SessionDurationMinutes: r.SessionDurationMinutes,
		IsAvailable:            r.IsAvailable,
		SpecificDate:           r.SpecificDate,
	}
}
