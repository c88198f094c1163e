package get_group_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingService/internal/service/groups"
)

const (
	msgInvalidSessionID = "некорректный ID групповой сессии"
	msgNotFound         = "групповая сессия не найдена"
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

// Handle GET /api/v1/group-sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := handlers.PathInt64(r, "sessionId")
	if err != nil {
		h.logger.Warn("GET /group-sessions/{id} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	result, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, groups.ErrSessionNotFound) {
			h.logger.Warn("GET /group-sessions/{id} - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("GET /group-sessions/{id} - Failed to get session: session_id=%d, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /group-sessions/{id} - Session retrieved: session_id=%d", sessionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
