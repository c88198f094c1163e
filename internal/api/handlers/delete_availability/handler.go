package delete_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingService/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingService/internal/service/availability"
	"github.com/m04kA/SMC-TrainingService/internal/service/availability/models"
)

const (
	msgInvalidTrainerID      = "некорректный ID тренера"
	msgInvalidAvailabilityID = "некорректный ID окна доступности"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "окно доступности не найдено"
	msgForbidden             = "доступ запрещен"
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

// Handle DELETE /api/v1/trainers/{trainerId}/availability/{availabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("DELETE /trainers/{id}/availability/{availabilityId} - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	availabilityID, err := handlers.PathInt64(r, "availabilityId")
	if err != nil {
		h.logger.Warn("DELETE /trainers/{id}/availability/{availabilityId} - Invalid availability ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAvailabilityID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /trainers/{id}/availability/{availabilityId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Delete(r.Context(), &models.DeleteAvailabilityRequest{
		UserID:         userID,
		Role:           middleware.GetUserRole(r.Context()),
		TrainerID:      trainerID,
		AvailabilityID: availabilityID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAvailabilityNotFound):
			h.logger.Warn("DELETE /trainers/{id}/availability/{availabilityId} - Not found: trainer_id=%d, availability_id=%d",
				trainerID, availabilityID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /trainers/{id}/availability/{availabilityId} - Access denied: trainer_id=%d, user_id=%d",
				trainerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /trainers/{id}/availability/{availabilityId} - Failed to delete: availability_id=%d, error=%v",
				availabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /trainers/{id}/availability/{availabilityId} - Availability deleted: trainer_id=%d, availability_id=%d",
		trainerID, availabilityID)
	w.WriteHeader(http.StatusNoContent)
}
