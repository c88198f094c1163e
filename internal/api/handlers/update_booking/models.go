package update_booking

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	updateBooking "github.com/m04kA/SMC-TrainingService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model
// Все поля опциональны - обновляются только переданные значения
type UpdateBookingRequest struct {
	TrainerID      *int64     `json:"trainerId,omitempty" validate:"omitempty,gt=0"`
	ScheduledStart *time.Time `json:"scheduledStart,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduledEnd,omitempty"`
	SessionType    *string    `json:"sessionType,omitempty" validate:"omitempty,min=1,max=50"`
	Location       *string    `json:"location,omitempty" validate:"omitempty,max=255"`
	Price          *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Notes          *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID, userID int64, role domain.ActorRole) *updateBooking.Request {
	patch := domain.BookingPatch{
		TrainerID:   r.TrainerID,
		SessionType: r.SessionType,
		Location:    r.Location,
		Price:       r.Price,
		Notes:       r.Notes,
	}
	if r.ScheduledStart != nil {
		start := r.ScheduledStart.UTC()
		patch.ScheduledStart = &start
	}
	if r.ScheduledEnd != nil {
		end := r.ScheduledEnd.UTC()
		patch.ScheduledEnd = &end
	}

	return &updateBooking.Request{
		BookingID: bookingID,
		ActorID:   userID,
		ActorRole: role,
		Patch:     patch,
	}
}
