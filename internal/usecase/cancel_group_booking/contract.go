package cancel_group_booking

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// GroupRepository интерфейс репозитория групповых сессий
type GroupRepository interface {
	GetSessionForUpdate(ctx context.Context, id int64) (*domain.GroupSession, error)
	GetActiveParticipant(ctx context.Context, sessionID, clientID int64) (*domain.GroupSessionParticipant, error)
	UpdateParticipant(ctx context.Context, p *domain.GroupSessionParticipant) error
	NextWaitlisted(ctx context.Context, sessionID int64) (*domain.GroupSessionParticipant, error)
	SyncCounters(ctx context.Context, sessionID int64) (domain.GroupCounters, error)
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
