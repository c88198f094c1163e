package book_group_session

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

var (
	// ErrSessionNotFound возвращается, когда групповая сессия не найдена
	ErrSessionNotFound = fmt.Errorf("book_group_session: group session not found: %w", domain.ErrNotFound)

	// ErrClientNotFound возвращается, когда клиент не существует
	ErrClientNotFound = fmt.Errorf("book_group_session: client not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается при записи другого клиента без прав администратора
	ErrAccessDenied = fmt.Errorf("book_group_session: only the client or admin can book: %w", domain.ErrAccessDenied)

	// ErrAlreadyBooked возвращается, когда у клиента уже есть активная запись
	ErrAlreadyBooked = fmt.Errorf("book_group_session: client already booked this session: %w", domain.ErrConflict)

	// ErrSessionFull возвращается, когда мест нет и лист ожидания выключен
	ErrSessionFull = fmt.Errorf("book_group_session: session is full: %w", domain.ErrConflict)

	// ErrDeadlinePassed возвращается после дедлайна записи
	ErrDeadlinePassed = fmt.Errorf("book_group_session: booking deadline passed: %w", domain.ErrPolicyViolation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("book_group_session: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("book_group_session: %w", domain.ErrInternal)
)
