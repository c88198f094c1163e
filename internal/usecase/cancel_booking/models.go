package cancel_booking

import "github.com/m04kA/SMC-TrainingService/internal/domain"

// Request модель запроса на отмену сессии
type Request struct {
	BookingID   int64
	ActorID     int64            // кто отменяет
	ActorRole   domain.ActorRole // admin/system; пусто - роль определяется по сессии
	Reason      string
	IsEmergency bool
}

// Response результат отмены: запись аудита и сессия в статусе cancelled
type Response struct {
	Cancellation *domain.SessionCancellation
	Booking      *domain.SessionBooking
}
