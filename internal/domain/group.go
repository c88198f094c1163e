package domain

import (
	"fmt"
	"time"
)

// ParticipantStatus статус участника групповой сессии
type ParticipantStatus string

const (
	ParticipantConfirmed  ParticipantStatus = "confirmed"
	ParticipantWaitlisted ParticipantStatus = "waitlisted"
	ParticipantCancelled  ParticipantStatus = "cancelled"
	ParticipantAttended   ParticipantStatus = "attended"
	ParticipantNoShow     ParticipantStatus = "no_show"
)

// ActiveParticipantStatuses статусы, которые занимают место или очередь
var ActiveParticipantStatuses = []ParticipantStatus{
	ParticipantConfirmed,
	ParticipantWaitlisted,
}

func (s ParticipantStatus) IsActive() bool {
	return s == ParticipantConfirmed || s == ParticipantWaitlisted
}

// GroupSession групповая тренировка
type GroupSession struct {
	ID                   int64
	TrainerID            int64
	Title                string
	ScheduledDate        time.Time
	DurationMinutes      int
	Price                float64
	MaxParticipants      int
	MinParticipants      int
	CurrentParticipants  int // производное: число confirmed участников
	TotalRevenue         float64
	AllowWaitlist        bool
	BookingDeadlineHours int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// BookingDeadline последний момент для записи
func (g *GroupSession) BookingDeadline() time.Time {
	return g.ScheduledDate.Add(-time.Duration(g.BookingDeadlineHours) * time.Hour)
}

// DeadlinePassed true, если now позже дедлайна записи
func (g *GroupSession) DeadlinePassed(now time.Time) bool {
	return now.After(g.BookingDeadline())
}

// HasFreeSeat true, если есть свободное место
func (g *GroupSession) HasFreeSeat() bool {
	return g.CurrentParticipants < g.MaxParticipants
}

// Validate проверяет инвариант 0 <= current <= max
func (g *GroupSession) Validate() error {
	if g.CurrentParticipants < 0 || g.CurrentParticipants > g.MaxParticipants {
		return fmt.Errorf("%w: group session %d has %d/%d participants",
			ErrInternal, g.ID, g.CurrentParticipants, g.MaxParticipants)
	}
	return nil
}

// GroupSessionParticipant запись клиента на групповую сессию
type GroupSessionParticipant struct {
	ID               int64
	GroupSessionID   int64
	ClientID         int64
	BookingStatus    ParticipantStatus
	WaitlistPosition *int
	AmountPaid       float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// GroupCounters пересчитанные из строк участников счётчики
type GroupCounters struct {
	Confirmed    int
	TotalRevenue float64
}
