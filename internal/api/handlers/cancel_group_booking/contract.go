package cancel_group_booking

import (
	"context"

	cancelGroupBooking "github.com/m04kA/SMC-TrainingService/internal/usecase/cancel_group_booking"
)

type CancelGroupBookingUseCase interface {
	Execute(ctx context.Context, req *cancelGroupBooking.Request) (*cancelGroupBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
