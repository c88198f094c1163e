package transition_booking

import (
	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/service/bookings/models"
)

// Action смена статуса, обслуживаемая хендлером
type Action string

const (
	ActionRequestConfirmation Action = "pending"
	ActionConfirm             Action = "confirm"
	ActionStart               Action = "start"
	ActionComplete            Action = "complete"
)

// TransitionBookingRequest HTTP request model (тело опционально)
type TransitionBookingRequest struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=2000"` // только для complete
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *TransitionBookingRequest) ToServiceRequest(userID int64, role domain.ActorRole) *models.TransitionRequest {
	return &models.TransitionRequest{
		UserID: userID,
		Role:   role,
		Notes:  r.Notes,
	}
}
