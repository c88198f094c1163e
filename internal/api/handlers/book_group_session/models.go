package book_group_session

import (
	"github.com/m04kA/SMC-TrainingService/internal/domain"
	groupModels "github.com/m04kA/SMC-TrainingService/internal/service/groups/models"
	bookGroupSession "github.com/m04kA/SMC-TrainingService/internal/usecase/book_group_session"
)

// BookGroupSessionRequest HTTP request model
// Без clientId клиент записывает себя
type BookGroupSessionRequest struct {
	ClientID   *int64  `json:"clientId,omitempty" validate:"omitempty,gt=0"`
	AmountPaid float64 `json:"amountPaid" validate:"gte=0"`
}

// BookGroupSessionResponse HTTP response model
type BookGroupSessionResponse struct {
	Participant *groupModels.ParticipantResponse `json:"participant"`
	Session     *groupModels.SessionResponse     `json:"session"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookGroupSessionRequest) ToUseCaseRequest(sessionID, userID int64, role domain.ActorRole) *bookGroupSession.Request {
	clientID := userID
	if r.ClientID != nil {
		clientID = *r.ClientID
	}

	return &bookGroupSession.Request{
		SessionID:  sessionID,
		ClientID:   clientID,
		ActorID:    userID,
		ActorRole:  role,
		AmountPaid: r.AmountPaid,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookGroupSession.Response) *BookGroupSessionResponse {
	return &BookGroupSessionResponse{
		Participant: groupModels.FromDomainParticipant(resp.Participant),
		Session:     groupModels.FromDomainSession(resp.Session),
	}
}
