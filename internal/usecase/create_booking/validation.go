package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TrainerID <= 0 {
		return fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.TrainerID == req.ClientID {
		return fmt.Errorf("%w: trainer and client must be different users", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if !req.Start.Before(req.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	minutes := durationMinutes(req.Start, req.End)
	if minutes < domain.MinSessionMinutes || minutes > domain.MaxSessionMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionMinutes, domain.MaxSessionMinutes)
	}

	if strings.TrimSpace(req.SessionType) == "" {
		return fmt.Errorf("%w: sessionType is required", ErrInvalidInput)
	}

	if req.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

func durationMinutes(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}
