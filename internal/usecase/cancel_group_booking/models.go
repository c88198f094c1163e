package cancel_group_booking

import (
	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// Request модель запроса на отмену записи в групповую сессию
type Request struct {
	SessionID int64
	ClientID  int64
	ActorID   int64
	ActorRole domain.ActorRole
}

// Response отменённая запись и участник, переведённый из листа ожидания (если был)
type Response struct {
	Participant *domain.GroupSessionParticipant
	Promoted    *domain.GroupSessionParticipant
	Session     *domain.GroupSession
}
