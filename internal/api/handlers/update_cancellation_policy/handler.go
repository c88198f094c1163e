package update_cancellation_policy

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingService/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingService/internal/service/policy"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные параметры политики отмены"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/trainers/{trainerId}/cancellation-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("PUT /trainers/{id}/cancellation-policy - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /trainers/{id}/cancellation-policy - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateCancellationPolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /trainers/{id}/cancellation-policy - Invalid request body: %v", err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequestBody, err)
		return
	}

	// Сервис сам проверит, что политику меняет тренер или администратор
	result, err := h.service.Update(r.Context(), req.ToServiceRequest(userID, middleware.GetUserRole(r.Context()), trainerID))
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrAccessDenied):
			h.logger.Warn("PUT /trainers/{id}/cancellation-policy - Access denied: trainer_id=%d, user_id=%d",
				trainerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, policy.ErrInvalidInput):
			h.logger.Warn("PUT /trainers/{id}/cancellation-policy - Invalid data: trainer_id=%d, error=%v",
				trainerID, err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidData, err)

		default:
			h.logger.Error("PUT /trainers/{id}/cancellation-policy - Failed to update policy: trainer_id=%d, error=%v",
				trainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /trainers/{id}/cancellation-policy - Policy updated: trainer_id=%d, user_id=%d",
		trainerID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
