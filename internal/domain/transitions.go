package domain

import "fmt"

// BookingEvent событие жизненного цикла сессии
type BookingEvent string

const (
	EventRequestConfirmation BookingEvent = "request_confirmation"
	EventConfirm             BookingEvent = "confirm"
	EventStart               BookingEvent = "start"
	EventComplete            BookingEvent = "complete"
	EventCancel              BookingEvent = "cancel"
	EventNoShow              BookingEvent = "no_show"
	EventReschedule          BookingEvent = "reschedule"
)

// Transition единственное место, где определяются допустимые переходы статусов
//
//	SCHEDULED -> PENDING -> CONFIRMED -> IN_PROGRESS -> COMPLETED
//	SCHEDULED|PENDING|CONFIRMED|IN_PROGRESS -> CANCELLED | RESCHEDULED
//	CONFIRMED|IN_PROGRESS -> NO_SHOW
func Transition(from BookingStatus, ev BookingEvent) (BookingStatus, error) {
	switch ev {
	case EventRequestConfirmation:
		if from == StatusScheduled {
			return StatusPending, nil
		}
	case EventConfirm:
		if from == StatusPending {
			return StatusConfirmed, nil
		}
	case EventStart:
		if from == StatusConfirmed {
			return StatusInProgress, nil
		}
	case EventComplete:
		if from == StatusConfirmed || from == StatusInProgress {
			return StatusCompleted, nil
		}
	case EventCancel:
		if isOpen(from) {
			return StatusCancelled, nil
		}
	case EventReschedule:
		if isOpen(from) {
			return StatusRescheduled, nil
		}
	case EventNoShow:
		if from == StatusConfirmed || from == StatusInProgress {
			return StatusNoShow, nil
		}
	default:
		return from, fmt.Errorf("%w: unknown event %q", ErrInvalidInput, ev)
	}

	return from, fmt.Errorf("%w: cannot %s booking in status %s", ErrInvalidStateTransition, ev, from)
}

// CanApply проверяет переход без изменения состояния
func CanApply(from BookingStatus, ev BookingEvent) bool {
	_, err := Transition(from, ev)
	return err == nil
}

func isOpen(s BookingStatus) bool {
	switch s {
	case StatusScheduled, StatusPending, StatusConfirmed, StatusInProgress:
		return true
	default:
		return false
	}
}
