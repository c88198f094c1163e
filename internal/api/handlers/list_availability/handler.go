package list_availability

import (
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
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

// Handle GET /api/v1/trainers/{trainerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/availability - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	result, err := h.service.List(r.Context(), trainerID)
	if err != nil {
		h.logger.Error("GET /trainers/{id}/availability - Failed to list availability: trainer_id=%d, error=%v",
			trainerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /trainers/{id}/availability - Availability retrieved: trainer_id=%d, count=%d",
		trainerID, len(result.Availability))
	handlers.RespondJSON(w, http.StatusOK, result)
}
