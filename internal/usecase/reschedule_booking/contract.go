package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SessionBooking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.SessionBooking, error)
	LockTrainer(ctx context.Context, trainerID int64) error
	GetActiveInRange(ctx context.Context, trainerID int64, from, to time.Time) ([]*domain.SessionBooking, error)
	CountReschedules(ctx context.Context, bookingID int64) (int, error)
	Create(ctx context.Context, booking *domain.SessionBooking) (*domain.SessionBooking, error)
	Update(ctx context.Context, booking *domain.SessionBooking) error
}

// AvailabilityRepository интерфейс репозитория доступности тренеров
type AvailabilityRepository interface {
	ListForDate(ctx context.Context, trainerID int64, date time.Time) ([]*domain.AvailabilitySlot, error)
}

// PolicyRepository интерфейс репозитория политик отмены
type PolicyRepository interface {
	GetByTrainerID(ctx context.Context, trainerID int64) (*domain.CancellationPolicy, error)
}

// NotificationGateway отправка уведомлений без гарантий доставки
type NotificationGateway interface {
	Notify(ctx context.Context, userID int64, category string, vars map[string]string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics учёт бизнес-событий
type Metrics interface {
	IncBusinessEvent(event, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
