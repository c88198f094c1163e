package domain

import "errors"

// Категории ошибок движка расписания
// Ошибки use case-ов оборачивают ровно одну из них, хендлеры маппят их в HTTP статусы
var (
	// ErrNotFound ссылка на тренера/клиента/сессию не существует
	ErrNotFound = errors.New("not found")

	// ErrConflict слот занят, дубль групповой записи, сессия заполнена
	ErrConflict = errors.New("conflict")

	// ErrPolicyViolation нарушение правил: лимит переносов, недостаточное уведомление, дедлайн записи
	ErrPolicyViolation = errors.New("policy violation")

	// ErrInvalidStateTransition недопустимый переход статуса
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")

	// ErrAccessDenied пользователь не участник сессии и не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal ошибка хранилища на этапе записи
	ErrInternal = errors.New("internal error")
)

var kinds = []error{
	ErrNotFound,
	ErrConflict,
	ErrPolicyViolation,
	ErrInvalidStateTransition,
	ErrInvalidInput,
	ErrAccessDenied,
	ErrInternal,
}

// IsKnown true, если ошибка уже отнесена к одной из категорий
func IsKnown(err error) bool {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
