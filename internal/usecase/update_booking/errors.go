package update_booking

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда сессия не найдена
	ErrBookingNotFound = fmt.Errorf("update_booking: booking not found: %w", domain.ErrNotFound)

	// ErrTrainerNotFound возвращается, когда новый тренер не существует
	ErrTrainerNotFound = fmt.Errorf("update_booking: trainer not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не участник сессии
	ErrAccessDenied = fmt.Errorf("update_booking: %w", domain.ErrAccessDenied)

	// ErrCannotUpdate возвращается для сессий в финальном статусе
	ErrCannotUpdate = fmt.Errorf("update_booking: booking in final status cannot be updated: %w", domain.ErrInvalidStateTransition)

	// ErrTrainerUnavailable возвращается, когда новое время вне окна доступности тренера
	ErrTrainerUnavailable = fmt.Errorf("update_booking: trainer is not available at this time: %w", domain.ErrConflict)

	// ErrSlotConflict возвращается, когда новое время пересекается с другой сессией
	ErrSlotConflict = fmt.Errorf("update_booking: time slot is already booked: %w", domain.ErrConflict)

	// ErrStartInPast возвращается, когда новое время уже прошло
	ErrStartInPast = fmt.Errorf("update_booking: start is in the past: %w", domain.ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("update_booking: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("update_booking: %w", domain.ErrInternal)
)
