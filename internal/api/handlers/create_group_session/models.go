package create_group_session

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/service/groups/models"
)

// CreateGroupSessionRequest HTTP request model
type CreateGroupSessionRequest struct {
	TrainerID            int64     `json:"trainerId" validate:"required,gt=0"`
	Title                string    `json:"title" validate:"required,max=200"`
	ScheduledDate        time.Time `json:"scheduledDate" validate:"required"`
	DurationMinutes      int       `json:"durationMinutes" validate:"required,gt=0"`
	Price                float64   `json:"price" validate:"gte=0"`
	MaxParticipants      int       `json:"maxParticipants" validate:"required,gt=0"`
	MinParticipants      int       `json:"minParticipants" validate:"gte=0"`
	AllowWaitlist        bool      `json:"allowWaitlist"`
	BookingDeadlineHours int       `json:"bookingDeadlineHours" validate:"gte=0"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateGroupSessionRequest) ToServiceRequest(userID int64, role domain.ActorRole) *models.CreateSessionRequest {
	return &models.CreateSessionRequest{
		UserID:               userID,
		Role:                 role,
		TrainerID:            r.TrainerID,
		Title:                r.Title,
		ScheduledDate:        r.ScheduledDate,
		DurationMinutes:      r.DurationMinutes,
		Price:                r.Price,
		MaxParticipants:      r.MaxParticipants,
		MinParticipants:      r.MinParticipants,
		AllowWaitlist:        r.AllowWaitlist,
		BookingDeadlineHours: r.BookingDeadlineHours,
	}
}
