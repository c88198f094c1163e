package cancel_group_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingService/internal/api/middleware"
	cancelGroupBooking "github.com/m04kA/SMC-TrainingService/internal/usecase/cancel_group_booking"
)

const (
	msgInvalidSessionID    = "некорректный ID групповой тренировки"
	msgInvalidClientID     = "некорректный ID клиента"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSessionNotFound     = "групповая тренировка не найдена"
	msgParticipantNotFound = "активная запись клиента не найдена"
	msgForbidden           = "доступ запрещен"
	msgInvalidRequest      = "некорректный запрос"
)

type Handler struct {
	useCase CancelGroupBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelGroupBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/group-sessions/{sessionId}/participants/{clientId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := handlers.PathInt64(r, "sessionId")
	if err != nil {
		h.logger.Warn("DELETE /group-sessions/{id}/participants/{clientId} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	clientID, err := handlers.PathInt64(r, "clientId")
	if err != nil {
		h.logger.Warn("DELETE /group-sessions/{id}/participants/{clientId} - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /group-sessions/{id}/participants/{clientId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelGroupBooking.Request{
		SessionID: sessionID,
		ClientID:  clientID,
		ActorID:   userID,
		ActorRole: middleware.GetUserRole(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelGroupBooking.ErrSessionNotFound):
			h.logger.Warn("DELETE /group-sessions/{id}/participants/{clientId} - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, cancelGroupBooking.ErrParticipantNotFound):
			h.logger.Warn("DELETE /group-sessions/{id}/participants/{clientId} - Participant not found: session_id=%d, client_id=%d",
				sessionID, clientID)
			handlers.RespondNotFound(w, msgParticipantNotFound)

		case errors.Is(err, cancelGroupBooking.ErrAccessDenied):
			h.logger.Warn("DELETE /group-sessions/{id}/participants/{clientId} - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelGroupBooking.ErrInvalidInput):
			h.logger.Warn("DELETE /group-sessions/{id}/participants/{clientId} - Invalid input: %v", err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequest, err)

		default:
			h.logger.Error("DELETE /group-sessions/{id}/participants/{clientId} - Failed to cancel: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Promoted != nil {
		h.logger.Info("DELETE /group-sessions/{id}/participants/{clientId} - Promoted from waitlist: session_id=%d, client_id=%d",
			sessionID, result.Promoted.ClientID)
	}
	h.logger.Info("DELETE /group-sessions/{id}/participants/{clientId} - Booking cancelled: session_id=%d, client_id=%d",
		sessionID, clientID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
