package book_group_session

import (
	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// Request модель запроса на запись в групповую сессию
type Request struct {
	SessionID  int64
	ClientID   int64
	ActorID    int64
	ActorRole  domain.ActorRole
	AmountPaid float64
}

// Response запись клиента и состояние сессии после неё
type Response struct {
	Participant *domain.GroupSessionParticipant
	Session     *domain.GroupSession
}
