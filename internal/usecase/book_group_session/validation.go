package book_group_session

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SessionID <= 0 {
		return fmt.Errorf("%w: sessionID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.AmountPaid < 0 {
		return fmt.Errorf("%w: amountPaid cannot be negative", ErrInvalidInput)
	}

	if req.ActorID != req.ClientID && req.ActorRole != domain.ActorAdmin && req.ActorRole != domain.ActorSystem {
		return ErrAccessDenied
	}

	return nil
}
