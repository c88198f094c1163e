package mark_no_show

import (
	"github.com/m04kA/SMC-TrainingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-TrainingService/internal/service/bookings/models"
	markNoShow "github.com/m04kA/SMC-TrainingService/internal/usecase/mark_no_show"
)

// MarkNoShowRequest HTTP request model
type MarkNoShowRequest struct {
	Party string `json:"party" validate:"required,oneof=client trainer both"`
}

// MarkNoShowResponse HTTP response model
type MarkNoShowResponse struct {
	Booking      *bookingModels.BookingResponse      `json:"booking"`
	Cancellation *bookingModels.CancellationResponse `json:"cancellation"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *MarkNoShowRequest) ToUseCaseRequest(bookingID, userID int64, role domain.ActorRole) (*markNoShow.Request, error) {
	party, err := domain.ParseNoShowParty(r.Party)
	if err != nil {
		return nil, err
	}

	return &markNoShow.Request{
		BookingID: bookingID,
		ActorID:   userID,
		ActorRole: role,
		Party:     party,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *markNoShow.Response) *MarkNoShowResponse {
	return &MarkNoShowResponse{
		Booking:      bookingModels.FromDomainBooking(resp.Booking),
		Cancellation: bookingModels.FromDomainCancellation(resp.Cancellation),
	}
}
