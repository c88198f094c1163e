package availability

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

var (
	// ErrAvailabilityNotFound возвращается, когда строка доступности не найдена у тренера
	ErrAvailabilityNotFound = fmt.Errorf("availability: availability not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда расписание меняет не сам тренер и не администратор
	ErrAccessDenied = fmt.Errorf("availability: only the trainer or admin can change availability: %w", domain.ErrAccessDenied)

	// ErrTooManyRows возвращается при превышении лимита строк доступности
	ErrTooManyRows = fmt.Errorf("availability: too many availability rows: %w", domain.ErrPolicyViolation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("availability: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("availability: %w", domain.ErrInternal)
)
