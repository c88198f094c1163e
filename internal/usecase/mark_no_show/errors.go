package mark_no_show

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда сессия не найдена
	ErrBookingNotFound = fmt.Errorf("mark_no_show: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не участник сессии
	ErrAccessDenied = fmt.Errorf("mark_no_show: %w", domain.ErrAccessDenied)

	// ErrCannotMarkNoShow возвращается, если сессия не confirmed и не in_progress
	ErrCannotMarkNoShow = fmt.Errorf("mark_no_show: booking cannot be marked as no-show: %w", domain.ErrInvalidStateTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("mark_no_show: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("mark_no_show: %w", domain.ErrInternal)
)
