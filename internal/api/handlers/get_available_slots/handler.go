package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-TrainingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgMissingParams    = "параметры date и duration обязательны"
	msgInvalidParams    = "некорректные параметры запроса, ожидается date=YYYY-MM-DD и duration в минутах"
	msgTrainerNotFound  = "тренер не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (required, минуты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/available-slots - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	durationStr := r.URL.Query().Get("duration")
	if dateStr == "" || durationStr == "" {
		h.logger.Warn("GET /trainers/{id}/available-slots - Missing params: trainer_id=%d", trainerID)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(trainerID, dateStr, durationStr)
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/available-slots - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTrainerNotFound):
			h.logger.Warn("GET /trainers/{id}/available-slots - Trainer not found: trainer_id=%d", trainerID)
			handlers.RespondNotFound(w, msgTrainerNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /trainers/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidParams, err)

		default:
			h.logger.Error("GET /trainers/{id}/available-slots - Failed to get slots: trainer_id=%d, error=%v",
				trainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /trainers/{id}/available-slots - Found %d slots: trainer_id=%d, date=%s",
		len(result.Slots), trainerID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, useCaseReq.DurationMinutes))
}
