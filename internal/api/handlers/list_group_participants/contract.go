package list_group_participants

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/service/groups/models"
)

type GroupService interface {
	ListParticipants(ctx context.Context, sessionID, userID int64, role domain.ActorRole, includeInactive bool) (*models.ParticipantListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
