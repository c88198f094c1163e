package cancel_group_booking

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

var (
	// ErrSessionNotFound возвращается, когда групповая сессия не найдена
	ErrSessionNotFound = fmt.Errorf("cancel_group_booking: group session not found: %w", domain.ErrNotFound)

	// ErrParticipantNotFound возвращается, когда у клиента нет активной записи
	ErrParticipantNotFound = fmt.Errorf("cancel_group_booking: active booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается при отмене чужой записи
	ErrAccessDenied = fmt.Errorf("cancel_group_booking: only the client, trainer or admin can cancel: %w", domain.ErrAccessDenied)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("cancel_group_booking: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("cancel_group_booking: %w", domain.ErrInternal)
)
