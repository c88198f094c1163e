package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

var (
	// ErrTrainerNotFound возвращается, когда тренер не найден в UserService
	ErrTrainerNotFound = fmt.Errorf("create_booking: trainer not found: %w", domain.ErrNotFound)

	// ErrClientNotFound возвращается, когда клиент не найден в UserService
	ErrClientNotFound = fmt.Errorf("create_booking: client not found: %w", domain.ErrNotFound)

	// ErrTrainerUnavailable возвращается, когда интервал не помещается в окно доступности тренера
	ErrTrainerUnavailable = fmt.Errorf("create_booking: trainer is not available at this time: %w", domain.ErrConflict)

	// ErrSlotConflict возвращается, когда интервал пересекается с другой сессией тренера
	ErrSlotConflict = fmt.Errorf("create_booking: time slot is already booked: %w", domain.ErrConflict)

	// ErrStartInPast возвращается при попытке забронировать прошедшее время
	ErrStartInPast = fmt.Errorf("create_booking: session start is in the past: %w", domain.ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_booking: %w", domain.ErrInternal)
)
