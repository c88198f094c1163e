package policy

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// PolicyRepository интерфейс репозитория политик отмены
type PolicyRepository interface {
	GetByTrainerID(ctx context.Context, trainerID int64) (*domain.CancellationPolicy, error)
	Upsert(ctx context.Context, p *domain.CancellationPolicy) (*domain.CancellationPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
