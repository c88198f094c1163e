package reschedule_booking

import (
	"fmt"

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

	if req.NewStart.IsZero() || req.NewEnd.IsZero() {
		return fmt.Errorf("%w: newStart and newEnd are required", ErrInvalidInput)
	}

	if !req.NewStart.Before(req.NewEnd) {
		return fmt.Errorf("%w: newStart must be before newEnd", ErrInvalidInput)
	}

	minutes := int(req.NewEnd.Sub(req.NewStart).Minutes())
	if minutes < domain.MinSessionMinutes || minutes > domain.MaxSessionMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionMinutes, domain.MaxSessionMinutes)
	}

	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	return nil
}
