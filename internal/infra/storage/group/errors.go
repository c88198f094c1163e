package group

import "errors"

var (
	// ErrSessionNotFound возвращается, когда групповая сессия не найдена
	ErrSessionNotFound = errors.New("group.repository: group session not found")

	// ErrParticipantNotFound возвращается, когда у клиента нет активной записи
	ErrParticipantNotFound = errors.New("group.repository: participant not found")

	// ErrDuplicateParticipant возвращается при повторной активной записи клиента
	ErrDuplicateParticipant = errors.New("group.repository: client already booked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("group.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("group.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("group.repository: failed to scan row")
)
