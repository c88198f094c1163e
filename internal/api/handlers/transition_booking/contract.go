package transition_booking

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/service/bookings/models"
)

type BookingService interface {
	RequestConfirmation(ctx context.Context, id int64, req *models.TransitionRequest) (*models.BookingResponse, error)
	Confirm(ctx context.Context, id int64, req *models.TransitionRequest) (*models.BookingResponse, error)
	Start(ctx context.Context, id int64, req *models.TransitionRequest) (*models.BookingResponse, error)
	Complete(ctx context.Context, id int64, req *models.TransitionRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
