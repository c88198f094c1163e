package update_booking

import (
	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// Request модель запроса на изменение сессии
type Request struct {
	BookingID int64
	ActorID   int64
	ActorRole domain.ActorRole
	Patch     domain.BookingPatch
}

// Response обновлённая сессия
type Response struct {
	Booking *domain.SessionBooking
}
