package mark_no_show

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.SessionBooking, error)
	Update(ctx context.Context, booking *domain.SessionBooking) error
}

// PolicyRepository интерфейс репозитория политик отмены
type PolicyRepository interface {
	GetByTrainerID(ctx context.Context, trainerID int64) (*domain.CancellationPolicy, error)
}

// CancellationRepository интерфейс журнала отмен
type CancellationRepository interface {
	Create(ctx context.Context, c *domain.SessionCancellation) (*domain.SessionCancellation, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
