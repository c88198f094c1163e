package book_group_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingService/internal/api/middleware"
	bookGroupSession "github.com/m04kA/SMC-TrainingService/internal/usecase/book_group_session"
)

const (
	msgInvalidSessionID   = "некорректный ID групповой тренировки"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "групповая тренировка не найдена"
	msgClientNotFound     = "клиент не найден"
	msgForbidden          = "доступ запрещен"
	msgAlreadyBooked      = "клиент уже записан на эту тренировку"
	msgSessionFull        = "свободных мест нет"
	msgDeadlinePassed     = "запись на тренировку закрыта"
)

type Handler struct {
	useCase BookGroupSessionUseCase
	logger  Logger
}

func NewHandler(useCase BookGroupSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/group-sessions/{sessionId}/participants
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := handlers.PathInt64(r, "sessionId")
	if err != nil {
		h.logger.Warn("POST /group-sessions/{id}/participants - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /group-sessions/{id}/participants - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookGroupSessionRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("POST /group-sessions/{id}/participants - Invalid request body: %v", err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequestBody, err)
		return
	}

	useCaseReq := req.ToUseCaseRequest(sessionID, userID, middleware.GetUserRole(r.Context()))
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookGroupSession.ErrSessionNotFound):
			h.logger.Warn("POST /group-sessions/{id}/participants - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, bookGroupSession.ErrClientNotFound):
			h.logger.Warn("POST /group-sessions/{id}/participants - Client not found: client_id=%d", useCaseReq.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, bookGroupSession.ErrAccessDenied):
			h.logger.Warn("POST /group-sessions/{id}/participants - Access denied: user_id=%d, client_id=%d",
				userID, useCaseReq.ClientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookGroupSession.ErrAlreadyBooked):
			h.logger.Warn("POST /group-sessions/{id}/participants - Already booked: session_id=%d, client_id=%d",
				sessionID, useCaseReq.ClientID)
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, bookGroupSession.ErrSessionFull):
			h.logger.Warn("POST /group-sessions/{id}/participants - Session full: session_id=%d", sessionID)
			handlers.RespondConflict(w, msgSessionFull)

		case errors.Is(err, bookGroupSession.ErrDeadlinePassed):
			h.logger.Warn("POST /group-sessions/{id}/participants - Deadline passed: session_id=%d", sessionID)
			handlers.RespondUnprocessable(w, msgDeadlinePassed)

		case errors.Is(err, bookGroupSession.ErrInvalidInput):
			h.logger.Warn("POST /group-sessions/{id}/participants - Invalid input: %v", err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequestBody, err)

		default:
			h.logger.Error("POST /group-sessions/{id}/participants - Failed to book: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /group-sessions/{id}/participants - Client booked: session_id=%d, client_id=%d, status=%s",
		sessionID, useCaseReq.ClientID, result.Participant.BookingStatus)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
