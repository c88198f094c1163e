package book_group_session

import (
	"context"

	bookGroupSession "github.com/m04kA/SMC-TrainingService/internal/usecase/book_group_session"
)

type BookGroupSessionUseCase interface {
	Execute(ctx context.Context, req *bookGroupSession.Request) (*bookGroupSession.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
