package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// Request модель запроса на создание индивидуальной сессии
type Request struct {
	ActorID     int64     // кто создаёт (для уведомления второй стороны)
	TrainerID   int64     // ID тренера
	ClientID    int64     // ID клиента
	Start       time.Time // начало сессии
	End         time.Time // конец сессии (не включительно)
	SessionType string    // тип тренировки
	Location    *string   // место (опционально)
	Price       float64   // цена сессии
	Notes       *string   // заметки (опционально)
}

// Response модель ответа с созданной сессией
type Response struct {
	Booking *domain.SessionBooking
}
