package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-TrainingService/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/SMC-TrainingService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewStart time.Time `json:"newStart" validate:"required"`
	NewEnd   time.Time `json:"newEnd" validate:"required,gtfield=NewStart"`
	Reason   string    `json:"reason" validate:"max=500"`
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	Booking  *bookingModels.BookingResponse `json:"booking"`
	Original *bookingModels.BookingResponse `json:"original"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, userID int64, role domain.ActorRole) *rescheduleBooking.Request {
	return &rescheduleBooking.Request{
		BookingID: bookingID,
		ActorID:   userID,
		ActorRole: role,
		NewStart:  r.NewStart.UTC(),
		NewEnd:    r.NewEnd.UTC(),
		Reason:    r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		Booking:  bookingModels.FromDomainBooking(resp.Booking),
		Original: bookingModels.FromDomainBooking(resp.Original),
	}
}
