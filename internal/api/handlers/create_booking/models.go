package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	createBooking "github.com/m04kA/SMC-TrainingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TrainerID      int64     `json:"trainerId" validate:"required,gt=0"`
	ClientID       int64     `json:"clientId" validate:"required,gt=0"`
	ScheduledStart time.Time `json:"scheduledStart" validate:"required"` // RFC3339
	ScheduledEnd   time.Time `json:"scheduledEnd" validate:"required,gtfield=ScheduledStart"`
	SessionType    string    `json:"sessionType" validate:"required,max=50"`
	Location       *string   `json:"location,omitempty" validate:"omitempty,max=255"`
	Price          float64   `json:"price" validate:"gte=0"`
	Notes          *string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actorID int64) *createBooking.Request {
	return &createBooking.Request{
		ActorID:     actorID,
		TrainerID:   r.TrainerID,
		ClientID:    r.ClientID,
		Start:       r.ScheduledStart.UTC(),
		End:         r.ScheduledEnd.UTC(),
		SessionType: r.SessionType,
		Location:    r.Location,
		Price:       r.Price,
		Notes:       r.Notes,
	}
}

// canCreate клиент записывается сам, тренер записывает клиента, администратор - кого угодно
func (r *CreateBookingRequest) canCreate(userID int64, role domain.ActorRole) bool {
	return userID == r.ClientID || userID == r.TrainerID ||
		role == domain.ActorAdmin || role == domain.ActorSystem
}
