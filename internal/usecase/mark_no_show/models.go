package mark_no_show

import "github.com/m04kA/SMC-TrainingService/internal/domain"

// Request модель запроса на отметку неявки
type Request struct {
	BookingID int64
	ActorID   int64
	ActorRole domain.ActorRole // admin/system; пусто - роль определяется по сессии
	Party     domain.NoShowParty
}

// Response результат: запись аудита и сессия в статусе no_show
type Response struct {
	Cancellation *domain.SessionCancellation
	Booking      *domain.SessionBooking
}
