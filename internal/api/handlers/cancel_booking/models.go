package cancel_booking

import (
	"github.com/m04kA/SMC-TrainingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-TrainingService/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-TrainingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason      string `json:"reason" validate:"max=500"`
	IsEmergency bool   `json:"isEmergency"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Booking      *bookingModels.BookingResponse      `json:"booking"`
	Cancellation *bookingModels.CancellationResponse `json:"cancellation"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID, userID int64, role domain.ActorRole) *cancelBooking.Request {
	return &cancelBooking.Request{
		BookingID:   bookingID,
		ActorID:     userID,
		ActorRole:   role,
		Reason:      r.Reason,
		IsEmergency: r.IsEmergency,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Booking:      bookingModels.FromDomainBooking(resp.Booking),
		Cancellation: bookingModels.FromDomainCancellation(resp.Cancellation),
	}
}
