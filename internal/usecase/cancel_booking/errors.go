package cancel_booking

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда сессия не найдена
	ErrBookingNotFound = fmt.Errorf("cancel_booking: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не участник сессии
	ErrAccessDenied = fmt.Errorf("cancel_booking: %w", domain.ErrAccessDenied)

	// ErrCannotCancel возвращается, когда сессия уже завершена, отменена или перенесена
	ErrCannotCancel = fmt.Errorf("cancel_booking: booking cannot be cancelled: %w", domain.ErrInvalidStateTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("cancel_booking: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("cancel_booking: %w", domain.ErrInternal)
)
