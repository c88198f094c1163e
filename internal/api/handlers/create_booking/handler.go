package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingService/internal/api/middleware"
	bookingModels "github.com/m04kA/SMC-TrainingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-TrainingService/internal/usecase/create_booking"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgTrainerNotFound    = "тренер не найден"
	msgClientNotFound     = "клиент не найден"
	msgTrainerUnavailable = "тренер недоступен в выбранное время"
	msgSlotConflict       = "выбранное время уже занято"
	msgStartInPast        = "начало сессии в прошлом"
	msgInvalidParams      = "некорректные параметры сессии"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role := middleware.GetUserRole(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequestBody, err)
		return
	}

	if !req.canCreate(userID, role) {
		h.logger.Warn("POST /bookings - Access denied: user_id=%d, trainer_id=%d, client_id=%d",
			userID, req.TrainerID, req.ClientID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrTrainerNotFound):
			h.logger.Warn("POST /bookings - Trainer not found: trainer_id=%d", req.TrainerID)
			handlers.RespondNotFound(w, msgTrainerNotFound)

		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /bookings - Client not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrTrainerUnavailable):
			h.logger.Warn("POST /bookings - Trainer unavailable: trainer_id=%d, start=%s", req.TrainerID, req.ScheduledStart)
			handlers.RespondConflict(w, msgTrainerUnavailable)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: trainer_id=%d, start=%s", req.TrainerID, req.ScheduledStart)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrStartInPast):
			h.logger.Warn("POST /bookings - Start in past: start=%s", req.ScheduledStart)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidParams, err)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: trainer_id=%d, client_id=%d, error=%v",
				req.TrainerID, req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, trainer_id=%d, client_id=%d",
		result.Booking.ID, req.TrainerID, req.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, bookingModels.FromDomainBooking(result.Booking))
}
