package transition_booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingService/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingService/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgInvalidTransition  = "переход недоступен из текущего статуса бронирования"
)

type Handler struct {
	service BookingService
	action  Action
	logger  Logger
}

// NewHandler хендлер одного перехода: PATCH /bookings/{bookingId}/{action}
func NewHandler(service BookingService, action Action, logger Logger) *Handler {
	return &Handler{
		service: service,
		action:  action,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/{pending|confirm|start|complete}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := fmt.Sprintf("PATCH /bookings/{id}/%s", h.action)

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req TransitionBookingRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequestBody, err)
		return
	}

	result, err := h.apply(r.Context(), bookingID, req.ToServiceRequest(userID, middleware.GetUserRole(r.Context())))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%d", route, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: booking_id=%d, user_id=%d", route, bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: booking_id=%d", route, bookingID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: booking_id=%d, error=%v", route, bookingID, err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequestBody, err)

		default:
			h.logger.Error("%s - Failed to change status: booking_id=%d, error=%v", route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking status changed: booking_id=%d, status=%s", route, bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) apply(ctx context.Context, id int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	switch h.action {
	case ActionRequestConfirmation:
		return h.service.RequestConfirmation(ctx, id, req)
	case ActionConfirm:
		return h.service.Confirm(ctx, id, req)
	case ActionStart:
		return h.service.Start(ctx, id, req)
	case ActionComplete:
		return h.service.Complete(ctx, id, req)
	default:
		return nil, fmt.Errorf("unknown booking action %q", h.action)
	}
}
