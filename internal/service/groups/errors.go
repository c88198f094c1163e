package groups

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

var (
	// ErrSessionNotFound возвращается, когда групповая сессия не найдена
	ErrSessionNotFound = fmt.Errorf("groups: group session not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда действие выполняет не тренер сессии и не администратор
	ErrAccessDenied = fmt.Errorf("groups: %w", domain.ErrAccessDenied)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("groups: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("groups: %w", domain.ErrInternal)
)
