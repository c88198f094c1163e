package policy

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

var (
	// ErrAccessDenied возвращается, когда политику меняет не сам тренер и не администратор
	ErrAccessDenied = fmt.Errorf("policy: only the trainer or admin can change the policy: %w", domain.ErrAccessDenied)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("policy: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("policy: %w", domain.ErrInternal)
)
