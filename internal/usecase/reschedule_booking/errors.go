package reschedule_booking

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда исходная сессия не найдена
	ErrBookingNotFound = fmt.Errorf("reschedule_booking: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не участник сессии
	ErrAccessDenied = fmt.Errorf("reschedule_booking: %w", domain.ErrAccessDenied)

	// ErrCannotReschedule возвращается, когда сессия уже завершена, отменена или перенесена
	ErrCannotReschedule = fmt.Errorf("reschedule_booking: booking cannot be rescheduled: %w", domain.ErrInvalidStateTransition)

	// ErrRescheduleLimit возвращается при превышении лимита переносов
	ErrRescheduleLimit = fmt.Errorf("reschedule_booking: reschedule limit reached: %w", domain.ErrPolicyViolation)

	// ErrInsufficientNotice возвращается, когда до начала сессии меньше reschedule_advance_notice_hours
	ErrInsufficientNotice = fmt.Errorf("reschedule_booking: not enough notice to reschedule: %w", domain.ErrPolicyViolation)

	// ErrTrainerUnavailable возвращается, когда новое время вне окна доступности тренера
	ErrTrainerUnavailable = fmt.Errorf("reschedule_booking: trainer is not available at this time: %w", domain.ErrConflict)

	// ErrSlotConflict возвращается, когда новое время пересекается с другой сессией
	ErrSlotConflict = fmt.Errorf("reschedule_booking: time slot is already booked: %w", domain.ErrConflict)

	// ErrStartInPast возвращается, когда новое время уже прошло
	ErrStartInPast = fmt.Errorf("reschedule_booking: new start is in the past: %w", domain.ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reschedule_booking: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("reschedule_booking: %w", domain.ErrInternal)
)
