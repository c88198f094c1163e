package update_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.ActorRole != "" {
		if _, err := domain.ParseActorRole(string(req.ActorRole)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	p := req.Patch
	if p.TrainerID != nil && *p.TrainerID <= 0 {
		return fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}

	if p.SessionType != nil && strings.TrimSpace(*p.SessionType) == "" {
		return fmt.Errorf("%w: sessionType cannot be empty", ErrInvalidInput)
	}

	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}

	if p.Notes != nil && len(*p.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateInterval проверяет итоговый интервал после применения патча
func validateInterval(b *domain.SessionBooking) error {
	if !b.ScheduledStart.Before(b.ScheduledEnd) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	minutes := int(b.ScheduledEnd.Sub(b.ScheduledStart).Minutes())
	if minutes < domain.MinSessionMinutes || minutes > domain.MaxSessionMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionMinutes, domain.MaxSessionMinutes)
	}

	return nil
}
