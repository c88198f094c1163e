package bookings

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SessionBooking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.SessionBooking, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.SessionBooking, error)
	GetByTrainerWithFilter(ctx context.Context, filter domain.TrainerBookingsFilter) ([]*domain.SessionBooking, error)
	GetRescheduleChain(ctx context.Context, bookingID int64) ([]*domain.SessionBooking, error)
	Update(ctx context.Context, booking *domain.SessionBooking) error
}

// CancellationRepository интерфейс репозитория записей об отменах
type CancellationRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.SessionCancellation, error)
}

// NotificationGateway отправка уведомлений без гарантий доставки
type NotificationGateway interface {
	Notify(ctx context.Context, userID int64, category string, vars map[string]string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
