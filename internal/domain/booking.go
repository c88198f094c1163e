package domain

import (
	"fmt"
	"time"
)

// BookingStatus статус индивидуальной сессии (закрытое множество)
type BookingStatus string

const (
	StatusScheduled   BookingStatus = "scheduled"
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusInProgress  BookingStatus = "in_progress"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusNoShow      BookingStatus = "no_show"
	StatusRescheduled BookingStatus = "rescheduled"
)

// AllStatuses все допустимые статусы
var AllStatuses = []BookingStatus{
	StatusScheduled,
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
	StatusRescheduled,
}

// NonBlockingStatuses статусы, которые не занимают время тренера
var NonBlockingStatuses = []BookingStatus{
	StatusCancelled,
	StatusRescheduled,
}

// ParseBookingStatus валидирует строковый статус
func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown booking status %q", ErrInvalidInput, s)
}

// IsTerminal true для конечных статусов
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	default:
		return false
	}
}

// BlocksCalendar true, если сессия в этом статусе занимает интервал тренера
func (s BookingStatus) BlocksCalendar() bool {
	return s != StatusCancelled && s != StatusRescheduled
}

// ActorRole кто совершает действие
type ActorRole string

const (
	ActorClient  ActorRole = "client"
	ActorTrainer ActorRole = "trainer"
	ActorAdmin   ActorRole = "admin"
	ActorSystem  ActorRole = "system"
)

// ParseActorRole валидирует роль
func ParseActorRole(s string) (ActorRole, error) {
	switch r := ActorRole(s); r {
	case ActorClient, ActorTrainer, ActorAdmin, ActorSystem:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown actor role %q", ErrInvalidInput, s)
	}
}

// Actor инициатор операции
type Actor struct {
	UserID int64
	Role   ActorRole
}

// SessionBooking индивидуальная сессия клиента с тренером
type SessionBooking struct {
	ID              int64
	ClientID        int64
	TrainerID       int64
	SessionType     string
	Location        *string
	ScheduledStart  time.Time
	ScheduledEnd    time.Time
	DurationMinutes int
	Status          BookingStatus
	Price           float64
	Notes           *string

	// Цепочка переносов: ссылка на сессию, которую заменила эта
	OriginalSessionID *int64
	RescheduleReason  *string
	RescheduledBy     *int64

	// nil - посещаемость ещё не отмечена
	ClientAttended  *bool
	TrainerAttended *bool

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Interval интервал сессии [start, end)
func (b *SessionBooking) Interval() Interval {
	return Interval{Start: b.ScheduledStart, End: b.ScheduledEnd}
}

// NoticeHours часы от now до начала сессии (отрицательно для прошедших)
func (b *SessionBooking) NoticeHours(now time.Time) float64 {
	return b.ScheduledStart.Sub(now).Hours()
}

// ResolveActor определяет роль пользователя по отношению к сессии
// Администратор и система действуют от своей роли, остальные должны быть клиентом или тренером сессии
func (b *SessionBooking) ResolveActor(userID int64, role ActorRole) (Actor, error) {
	switch {
	case role == ActorAdmin || role == ActorSystem:
		return Actor{UserID: userID, Role: role}, nil
	case userID == b.ClientID:
		return Actor{UserID: userID, Role: ActorClient}, nil
	case userID == b.TrainerID:
		return Actor{UserID: userID, Role: ActorTrainer}, nil
	default:
		return Actor{}, fmt.Errorf("%w: user %d is not a party of booking %d", ErrAccessDenied, userID, b.ID)
	}
}

// CounterParty кому уведомлять о действии actor
func (b *SessionBooking) CounterParty(actor Actor) int64 {
	if actor.Role == ActorClient || actor.UserID == b.ClientID {
		return b.TrainerID
	}
	return b.ClientID
}

// Apply применяет событие к сессии через таблицу переходов
func (b *SessionBooking) Apply(ev BookingEvent) error {
	next, err := Transition(b.Status, ev)
	if err != nil {
		return err
	}
	b.Status = next
	return nil
}

// TrainerBookingsFilter фильтр бронирований тренера
type TrainerBookingsFilter struct {
	TrainerID       int64
	From            *time.Time // включительно
	To              *time.Time // не включительно
	Status          *BookingStatus
	IncludeInactive bool // включать отменённые и перенесённые
}

// BookingPatch изменения бронирования (nil - поле не меняется)
type BookingPatch struct {
	TrainerID      *int64
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	SessionType    *string
	Location       *string
	Price          *float64
	Notes          *string
}

// TouchesSchedule true, если патч меняет тренера или время
func (p BookingPatch) TouchesSchedule() bool {
	return p.TrainerID != nil || p.ScheduledStart != nil || p.ScheduledEnd != nil
}
