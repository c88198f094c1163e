package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/booking"
	policyRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/policy"
)

// UseCase use case для переноса сессии на новое время
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	policyRepo       PolicyRepository
	notifier         NotificationGateway
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	policyRepo PolicyRepository,
	notifier NotificationGateway,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		policyRepo:       policyRepo,
		notifier:         notifier,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case переноса
// Исходная сессия становится rescheduled, новая создаётся в статусе scheduled со ссылкой на исходную.
// Лимит переносов считается по всей цепочке, а не по одному звену
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, actor=%d, new_start=%s",
		req.BookingID, req.ActorID, req.NewStart.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if req.NewStart.Before(now) {
		uc.logger.Warn("RescheduleBooking: new start %s is in the past", req.NewStart)
		return nil, ErrStartInPast
	}

	// 2. Узнаём тренера, чтобы взять его блокировку до чтения с FOR UPDATE
	peek, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, uc.mapGetError(req.BookingID, err)
	}

	var (
		result *Response
		actor  domain.Actor
	)

	// 3. Выполняем перенос в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокировка расписания тренера
		if err := uc.bookingRepo.LockTrainer(txCtx, peek.TrainerID); err != nil {
			uc.logger.Error("RescheduleBooking: failed to lock trainer=%d: %v", peek.TrainerID, err)
			return fmt.Errorf("%w: failed to lock trainer: %w", ErrInternal, err)
		}

		// 3.2. Исходная сессия с блокировкой строки
		original, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			return uc.mapGetError(req.BookingID, err)
		}

		// Тренер мог смениться между чтением без блокировки и FOR UPDATE
		if original.TrainerID != peek.TrainerID {
			uc.logger.Warn("RescheduleBooking: booking id=%d moved to trainer=%d, locking it too", original.ID, original.TrainerID)
			if err := uc.bookingRepo.LockTrainer(txCtx, original.TrainerID); err != nil {
				uc.logger.Error("RescheduleBooking: failed to lock trainer=%d: %v", original.TrainerID, err)
				return fmt.Errorf("%w: failed to lock trainer: %w", ErrInternal, err)
			}
		}

		actor, err = original.ResolveActor(req.ActorID, req.ActorRole)
		if err != nil {
			uc.logger.Warn("RescheduleBooking: %v", err)
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}

		// 3.3. Переход статуса
		next, err := domain.Transition(original.Status, domain.EventReschedule)
		if err != nil {
			uc.logger.Warn("RescheduleBooking: booking id=%d in status %s cannot be rescheduled", original.ID, original.Status)
			return fmt.Errorf("%w: %v", ErrCannotReschedule, err)
		}

		// 3.4. Ограничения политики
		if err := uc.checkPolicy(txCtx, original, now); err != nil {
			return err
		}

		// 3.5. Доступность тренера и пересечения для нового времени
		candidate := domain.Interval{Start: req.NewStart, End: req.NewEnd}

		rows, err := uc.availabilityRepo.ListForDate(txCtx, original.TrainerID, req.NewStart)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
		}

		windows := domain.ResolveAvailability(rows, req.NewStart)
		if !domain.IsAvailableAt(windows, req.NewStart) || !domain.FitsAvailability(windows, candidate) {
			uc.logger.Warn("RescheduleBooking: trainer=%d is not available at %s", original.TrainerID, req.NewStart)
			return ErrTrainerUnavailable
		}

		existing, err := uc.bookingRepo.GetActiveInRange(txCtx, original.TrainerID, candidate.Start, candidate.End)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// Исходная сессия освобождает своё время в этой же транзакции
		if conflict := domain.FindConflict(existing, candidate, original.ID); conflict != nil {
			uc.logger.Warn("RescheduleBooking: new time conflicts with booking id=%d", conflict.ID)
			return ErrSlotConflict
		}

		// 3.6. Исходная сессия -> rescheduled
		original.Status = next
		if req.Reason != "" {
			original.RescheduleReason = &req.Reason
		}
		original.RescheduledBy = &actor.UserID
		if err := uc.bookingRepo.Update(txCtx, original); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update booking id=%d: %v", original.ID, err)
			return fmt.Errorf("%w: failed to update original booking: %w", ErrInternal, err)
		}

		// 3.7. Новая сессия в цепочке
		successor := &domain.SessionBooking{
			ClientID:          original.ClientID,
			TrainerID:         original.TrainerID,
			SessionType:       original.SessionType,
			Location:          original.Location,
			ScheduledStart:    req.NewStart,
			ScheduledEnd:      req.NewEnd,
			DurationMinutes:   int(req.NewEnd.Sub(req.NewStart).Minutes()),
			Status:            domain.StatusScheduled,
			Price:             original.Price,
			OriginalSessionID: &original.ID,
		}

		created, err := uc.bookingRepo.Create(txCtx, successor)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to create successor booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = &Response{Booking: created, Original: original}
		return nil
	})

	if err != nil {
		uc.metrics.IncBusinessEvent("reschedule_booking", "rejected")
		if domain.IsKnown(err) {
			return nil, err
		}
		uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.IncBusinessEvent("reschedule_booking", "rescheduled")
	uc.logger.Info("RescheduleBooking: booking id=%d rescheduled to id=%d", result.Original.ID, result.Booking.ID)

	// 4. Уведомляем вторую сторону (после коммита)
	uc.notifier.Notify(ctx, result.Booking.CounterParty(actor), domain.NotifyBookingRescheduled, map[string]string{
		"booking_id":          strconv.FormatInt(result.Booking.ID, 10),
		"original_booking_id": strconv.FormatInt(result.Original.ID, 10),
		"old_start":           result.Original.ScheduledStart.Format(domain.DateTimeFormat),
		"new_start":           result.Booking.ScheduledStart.Format(domain.DateTimeFormat),
		"reason":              req.Reason,
	})

	return result, nil
}

// checkPolicy лимит переносов и срок уведомления
// Без сохранённой политики действуют значения по умолчанию, выключенная политика ничего не ограничивает
func (uc *UseCase) checkPolicy(ctx context.Context, original *domain.SessionBooking, now time.Time) error {
	policy, err := uc.policyRepo.GetByTrainerID(ctx, original.TrainerID)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("RescheduleBooking: failed to get policy for trainer=%d: %v", original.TrainerID, err)
			return fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
		}
		policy = domain.DefaultCancellationPolicy(original.TrainerID)
	}

	if !policy.IsActive {
		return nil
	}

	count, err := uc.bookingRepo.CountReschedules(ctx, original.ID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to count reschedules for booking id=%d: %v", original.ID, err)
		return fmt.Errorf("%w: failed to count reschedules: %w", ErrInternal, err)
	}

	if count >= policy.MaxReschedulesPerSession {
		uc.logger.Warn("RescheduleBooking: booking id=%d already rescheduled %d times (max %d)",
			original.ID, count, policy.MaxReschedulesPerSession)
		return ErrRescheduleLimit
	}

	if notice := original.NoticeHours(now); notice < float64(policy.RescheduleAdvanceNoticeHours) {
		uc.logger.Warn("RescheduleBooking: booking id=%d notice %.1fh < %dh",
			original.ID, notice, policy.RescheduleAdvanceNoticeHours)
		return ErrInsufficientNotice
	}

	return nil
}

func (uc *UseCase) mapGetError(id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Warn("RescheduleBooking: booking id=%d not found", id)
		return ErrBookingNotFound
	}
	uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", id, err)
	return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
}
