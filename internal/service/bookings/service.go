package bookings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/booking"
	cancellationRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/cancellation"
	"github.com/m04kA/SMC-TrainingService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и простых переходов статуса
type Service struct {
	bookingRepo      BookingRepository
	cancellationRepo CancellationRepository
	notifier         NotificationGateway
	txManager        TransactionManager
	metrics          Metrics
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	cancellationRepo CancellationRepository,
	notifier NotificationGateway,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		cancellationRepo: cancellationRepo,
		notifier:         notifier,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
	}
}

// GetByID получает бронирование по ID
// Видно клиенту и тренеру сессии, а также администратору
func (s *Service) GetByID(ctx context.Context, id, userID int64, role domain.ActorRole) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getAccessible(ctx, "GetByID", id, userID, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings история бронирований клиента, опционально по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, user=%d, status=%v", req.ClientID, req.UserID, req.Status)

	if req.UserID != req.ClientID && req.Role != domain.ActorAdmin {
		s.logger.Warn("GetClientBookings: user=%d cannot see bookings of client=%d", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		parsed, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, status)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetTrainerBookings расписание тренера с фильтрацией по периоду и статусу
// Доступно самому тренеру и администратору
func (s *Service) GetTrainerBookings(ctx context.Context, req *models.GetTrainerBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetTrainerBookings: fetching bookings for trainer=%d, user=%d", req.TrainerID, req.UserID)
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateTimeFormat), req.To.Format(domain.DateTimeFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info("%s", logMsg)

	if req.UserID != req.TrainerID && req.Role != domain.ActorAdmin {
		s.logger.Warn("GetTrainerBookings: user=%d cannot see schedule of trainer=%d", req.UserID, req.TrainerID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTrainerBookings: invalid filter for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByTrainerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTrainerBookings: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: GetTrainerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTrainerBookings: successfully fetched %d bookings for trainer=%d", len(bookings), req.TrainerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetChain цепочка переносов от исходной сессии до запрошенной
func (s *Service) GetChain(ctx context.Context, id, userID int64, role domain.ActorRole) (*models.BookingListResponse, error) {
	s.logger.Info("GetChain: fetching reschedule chain for booking id=%d", id)

	if _, err := s.getAccessible(ctx, "GetChain", id, userID, role); err != nil {
		return nil, err
	}

	chain, err := s.bookingRepo.GetRescheduleChain(ctx, id)
	if err != nil {
		s.logger.Error("GetChain: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetChain - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetChain: booking id=%d has %d links", id, len(chain))
	return models.FromDomainBookingList(chain), nil
}

// GetCancellation запись аудита об отмене или неявке
func (s *Service) GetCancellation(ctx context.Context, id, userID int64, role domain.ActorRole) (*models.CancellationResponse, error) {
	s.logger.Info("GetCancellation: fetching cancellation for booking id=%d", id)

	if _, err := s.getAccessible(ctx, "GetCancellation", id, userID, role); err != nil {
		return nil, err
	}

	cancellation, err := s.cancellationRepo.GetByBookingID(ctx, id)
	if err != nil {
		if errors.Is(err, cancellationRepo.ErrCancellationNotFound) {
			s.logger.Warn("GetCancellation: booking id=%d has no cancellation", id)
			return nil, ErrCancellationNotFound
		}
		s.logger.Error("GetCancellation: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetCancellation - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCancellation(cancellation), nil
}

// RequestConfirmation SCHEDULED -> PENDING
func (s *Service) RequestConfirmation(ctx context.Context, id int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	return s.transition(ctx, "RequestConfirmation", id, req, domain.EventRequestConfirmation, domain.NotifyBookingUpdated)
}

// Confirm PENDING -> CONFIRMED
func (s *Service) Confirm(ctx context.Context, id int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	return s.transition(ctx, "Confirm", id, req, domain.EventConfirm, domain.NotifyBookingConfirmed)
}

// Start CONFIRMED -> IN_PROGRESS
func (s *Service) Start(ctx context.Context, id int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	return s.transition(ctx, "Start", id, req, domain.EventStart, "")
}

// Complete CONFIRMED|IN_PROGRESS -> COMPLETED, обе стороны считаются пришедшими
func (s *Service) Complete(ctx context.Context, id int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}
	return s.transition(ctx, "Complete", id, req, domain.EventComplete, domain.NotifyBookingCompleted)
}

// transition общий сценарий смены статуса через таблицу переходов под блокировкой строки
func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	req *models.TransitionRequest,
	ev domain.BookingEvent,
	category string,
) (*models.BookingResponse, error) {
	s.logger.Info("%s: booking id=%d by user=%d", op, id, req.UserID)

	var (
		result *domain.SessionBooking
		actor  domain.Actor
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return s.mapGetError(op, id, err)
		}

		actor, err = booking.ResolveActor(req.UserID, req.Role)
		if err != nil {
			s.logger.Warn("%s: %v", op, err)
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}

		if err := booking.Apply(ev); err != nil {
			s.logger.Warn("%s: booking id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		if ev == domain.EventComplete {
			if req.Notes != nil {
				booking.Notes = req.Notes
			}
			attended := true
			if booking.ClientAttended == nil {
				booking.ClientAttended = &attended
			}
			if booking.TrainerAttended == nil {
				booking.TrainerAttended = &attended
			}
		}

		if err := s.bookingRepo.Update(txCtx, booking); err != nil {
			s.logger.Error("%s: failed to update booking id=%d: %v", op, id, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		if domain.IsKnown(err) {
			return nil, err
		}
		s.logger.Error("%s: transaction failed: %v", op, err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	s.metrics.IncBusinessEvent("booking_transition", string(ev))
	s.logger.Info("%s: booking id=%d is now %s", op, id, result.Status)

	if category != "" {
		s.notifier.Notify(ctx, result.CounterParty(actor), category, map[string]string{
			"booking_id": strconv.FormatInt(result.ID, 10),
			"status":     string(result.Status),
			"start":      result.ScheduledStart.Format(domain.DateTimeFormat),
		})
	}

	return models.FromDomainBooking(result), nil
}

// getAccessible бронирование с проверкой, что пользователь его участник или администратор
func (s *Service) getAccessible(ctx context.Context, op string, id, userID int64, role domain.ActorRole) (*domain.SessionBooking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapGetError(op, id, err)
	}

	if role != domain.ActorAdmin && userID != booking.ClientID && userID != booking.TrainerID {
		s.logger.Warn("%s: access denied for user=%d to booking id=%d", op, userID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

func (s *Service) mapGetError(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
