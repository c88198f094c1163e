package get_cancellation_policy

import (
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
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

// Handle GET /api/v1/trainers/{trainerId}/cancellation-policy
// Публичный эндпоинт: клиент видит условия отмены до записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/cancellation-policy - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	// Отсутствие сохранённой политики не ошибка: сервис вернёт значения по умолчанию
	result, err := h.service.Get(r.Context(), trainerID)
	if err != nil {
		h.logger.Error("GET /trainers/{id}/cancellation-policy - Failed to get policy: trainer_id=%d, error=%v",
			trainerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /trainers/{id}/cancellation-policy - Policy retrieved: trainer_id=%d, default=%t",
		trainerID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
