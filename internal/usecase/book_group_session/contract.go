package book_group_session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// GroupRepository интерфейс репозитория групповых сессий
type GroupRepository interface {
	GetSessionForUpdate(ctx context.Context, id int64) (*domain.GroupSession, error)
	GetActiveParticipant(ctx context.Context, sessionID, clientID int64) (*domain.GroupSessionParticipant, error)
	CreateParticipant(ctx context.Context, p *domain.GroupSessionParticipant) (*domain.GroupSessionParticipant, error)
	NextWaitlistPosition(ctx context.Context, sessionID int64) (int, error)
	SyncCounters(ctx context.Context, sessionID int64) (domain.GroupCounters, error)
}

// UserDirectory проверка существования пользователей во внешнем сервисе
type UserDirectory interface {
	Exists(ctx context.Context, userID int64) (bool, error)
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
