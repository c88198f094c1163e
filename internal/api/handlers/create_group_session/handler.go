package create_group_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingService/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingService/internal/service/groups"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные параметры групповой сессии"
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

// Handle POST /api/v1/group-sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /group-sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateGroupSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /group-sessions - Invalid request body: %v", err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequestBody, err)
		return
	}

	result, err := h.service.CreateSession(r.Context(), req.ToServiceRequest(userID, middleware.GetUserRole(r.Context())))
	if err != nil {
		switch {
		case errors.Is(err, groups.ErrAccessDenied):
			h.logger.Warn("POST /group-sessions - Access denied: trainer_id=%d, user_id=%d", req.TrainerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, groups.ErrInvalidInput):
			h.logger.Warn("POST /group-sessions - Invalid data: trainer_id=%d, error=%v", req.TrainerID, err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidData, err)

		default:
			h.logger.Error("POST /group-sessions - Failed to create session: trainer_id=%d, error=%v", req.TrainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /group-sessions - Group session created: session_id=%d, trainer_id=%d",
		result.ID, result.TrainerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
