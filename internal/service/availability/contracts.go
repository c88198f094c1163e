package availability

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория доступности тренеров
type AvailabilityRepository interface {
	Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error)
	ListByTrainer(ctx context.Context, trainerID int64) ([]*domain.AvailabilitySlot, error)
	CountByTrainer(ctx context.Context, trainerID int64) (int, error)
	Delete(ctx context.Context, trainerID, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
