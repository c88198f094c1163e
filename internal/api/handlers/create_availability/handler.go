package create_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingService/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingService/internal/service/availability"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgTooManyRows        = "превышен лимит окон доступности тренера"
	msgInvalidData        = "некорректное окно доступности"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/trainers/{trainerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/availability - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /trainers/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /trainers/{id}/availability - Invalid request body: %v", err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequestBody, err)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(userID, middleware.GetUserRole(r.Context()), trainerID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /trainers/{id}/availability - Access denied: trainer_id=%d, user_id=%d",
				trainerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrTooManyRows):
			h.logger.Warn("POST /trainers/{id}/availability - Too many rows: trainer_id=%d", trainerID)
			handlers.RespondUnprocessable(w, msgTooManyRows)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /trainers/{id}/availability - Invalid data: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidData, err)

		default:
			h.logger.Error("POST /trainers/{id}/availability - Failed to create availability: trainer_id=%d, error=%v",
				trainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trainers/{id}/availability - Availability created: trainer_id=%d, availability_id=%d",
		trainerID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
