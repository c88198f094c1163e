package create_group_session

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/service/groups/models"
)

type GroupService interface {
	CreateSession(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
