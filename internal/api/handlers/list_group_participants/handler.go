package list_group_participants

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingService/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingService/internal/service/groups"
)

const (
	msgInvalidSessionID       = "некорректный ID групповой сессии"
	msgInvalidIncludeInactive = "параметр includeInactive должен быть true или false"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgNotFound               = "групповая сессия не найдена"
	msgForbidden              = "доступ запрещен"
)

type Handler struct {
	service GroupService
	logger  Logger
}

func NewHandler(service GroupService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/group-sessions/{sessionId}/participants?includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := handlers.PathInt64(r, "sessionId")
	if err != nil {
		h.logger.Warn("GET /group-sessions/{id}/participants - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /group-sessions/{id}/participants - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	includeInactive := false
	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		includeInactive, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /group-sessions/{id}/participants - Invalid includeInactive: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidIncludeInactive)
			return
		}
	}

	result, err := h.service.ListParticipants(r.Context(), sessionID, userID, middleware.GetUserRole(r.Context()), includeInactive)
	if err != nil {
		switch {
		case errors.Is(err, groups.ErrSessionNotFound):
			h.logger.Warn("GET /group-sessions/{id}/participants - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, groups.ErrAccessDenied):
			h.logger.Warn("GET /group-sessions/{id}/participants - Access denied: session_id=%d, user_id=%d",
				sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /group-sessions/{id}/participants - Failed to list participants: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /group-sessions/{id}/participants - Participants retrieved: session_id=%d, count=%d",
		sessionID, len(result.Participants))
	handlers.RespondJSON(w, http.StatusOK, result)
}
