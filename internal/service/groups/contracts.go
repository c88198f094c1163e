package groups

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// GroupRepository интерфейс репозитория групповых сессий
type GroupRepository interface {
	CreateSession(ctx context.Context, s *domain.GroupSession) (*domain.GroupSession, error)
	GetSessionByID(ctx context.Context, id int64) (*domain.GroupSession, error)
	ListParticipants(ctx context.Context, sessionID int64, includeInactive bool) ([]*domain.GroupSessionParticipant, error)
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
