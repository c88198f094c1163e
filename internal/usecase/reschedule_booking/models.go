package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// Request модель запроса на перенос сессии
type Request struct {
	BookingID int64
	ActorID   int64
	ActorRole domain.ActorRole // admin/system; пусто - роль определяется по сессии
	NewStart  time.Time
	NewEnd    time.Time
	Reason    string
}

// Response новая сессия и исходная в статусе rescheduled
type Response struct {
	Booking  *domain.SessionBooking
	Original *domain.SessionBooking
}
