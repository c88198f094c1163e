package domain

import (
	"fmt"
	"time"
)

// NoShowParty кто не явился
type NoShowParty string

const (
	NoShowClient  NoShowParty = "client"
	NoShowTrainer NoShowParty = "trainer"
	NoShowBoth    NoShowParty = "both"
)

// ParseNoShowParty валидирует сторону неявки
func ParseNoShowParty(s string) (NoShowParty, error) {
	switch p := NoShowParty(s); p {
	case NoShowClient, NoShowTrainer, NoShowBoth:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown no-show party %q", ErrInvalidInput, s)
	}
}

func (p NoShowParty) IncludesClient() bool {
	return p == NoShowClient || p == NoShowBoth
}

func (p NoShowParty) IncludesTrainer() bool {
	return p == NoShowTrainer || p == NoShowBoth
}

// Attendance флаги посещаемости для стороны неявки
func (p NoShowParty) Attendance() (clientAttended, trainerAttended bool) {
	return !p.IncludesClient(), !p.IncludesTrainer()
}

// SessionCancellation неизменяемая запись аудита об отмене или неявке
type SessionCancellation struct {
	ID            int64
	BookingID     int64
	ClientID      int64
	TrainerID     int64
	CancelledBy   ActorRole
	Reason        string
	IsEmergency   bool
	NoticeHours   float64
	FeeApplied    bool
	FeeAmount     float64
	FeeWaived     bool
	WaiverReason  *string
	PolicyApplied bool
	CreatedAt     time.Time
}

// NewCancellationRecord собирает запись аудита из решения движка политик
func NewCancellationRecord(b *SessionBooking, by ActorRole, reason string, isEmergency bool, noticeHours float64, d FeeDecision) *SessionCancellation {
	return &SessionCancellation{
		BookingID:     b.ID,
		ClientID:      b.ClientID,
		TrainerID:     b.TrainerID,
		CancelledBy:   by,
		Reason:        reason,
		IsEmergency:   isEmergency,
		NoticeHours:   noticeHours,
		FeeApplied:    d.FeeApplied,
		FeeAmount:     d.FeeAmount,
		FeeWaived:     d.FeeWaived,
		WaiverReason:  d.WaiverReason,
		PolicyApplied: d.PolicyApplied,
	}
}

// NoShowReason причина в записи аудита о неявке
func NoShowReason(p NoShowParty) string {
	return fmt.Sprintf("No-show: %s", p)
}
