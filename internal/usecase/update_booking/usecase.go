package update_booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/booking"
)

// UseCase use case для изменения сессии
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	users            UserDirectory
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
	users UserDirectory,
	notifier NotificationGateway,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		users:            users,
		notifier:         notifier,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case изменения сессии
// Смена тренера или времени повторно проверяет доступность и пересечения, исключая саму сессию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, actor=%d", req.BookingID, req.ActorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущая сессия, чтобы знать, чьё расписание блокировать
	peek, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, uc.mapGetError(req.BookingID, err)
	}

	trainers := []int64{peek.TrainerID}
	if t := req.Patch.TrainerID; t != nil && *t != peek.TrainerID {
		// 2.1. Новый тренер должен существовать
		ok, err := uc.users.Exists(ctx, *t)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to check trainer id=%d: %v", *t, err)
			return nil, fmt.Errorf("%w: failed to check trainer: %v", ErrInternal, err)
		}
		if !ok {
			uc.logger.Warn("UpdateBooking: trainer id=%d not found", *t)
			return nil, ErrTrainerNotFound
		}
		trainers = append(trainers, *t)
	}
	// Порядок блокировок одинаковый для всех запросов
	sort.Slice(trainers, func(i, j int) bool { return trainers[i] < trainers[j] })

	now := uc.timeProvider.Now()
	var (
		result *domain.SessionBooking
		actor  domain.Actor
	)

	// 3. Изменение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		for _, id := range trainers {
			if err := uc.bookingRepo.LockTrainer(txCtx, id); err != nil {
				uc.logger.Error("UpdateBooking: failed to lock trainer=%d: %v", id, err)
				return fmt.Errorf("%w: failed to lock trainer: %w", ErrInternal, err)
			}
		}

		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			return uc.mapGetError(req.BookingID, err)
		}

		// Тренер мог смениться между чтением без блокировки и FOR UPDATE
		if !slices.Contains(trainers, booking.TrainerID) {
			uc.logger.Warn("UpdateBooking: booking id=%d moved to trainer=%d, locking it too", booking.ID, booking.TrainerID)
			if err := uc.bookingRepo.LockTrainer(txCtx, booking.TrainerID); err != nil {
				uc.logger.Error("UpdateBooking: failed to lock trainer=%d: %v", booking.TrainerID, err)
				return fmt.Errorf("%w: failed to lock trainer: %w", ErrInternal, err)
			}
		}

		actor, err = booking.ResolveActor(req.ActorID, req.ActorRole)
		if err != nil {
			uc.logger.Warn("UpdateBooking: %v", err)
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}

		if booking.Status.IsTerminal() {
			uc.logger.Warn("UpdateBooking: booking id=%d is in final status %s", booking.ID, booking.Status)
			return ErrCannotUpdate
		}

		startChanged := applyPatch(booking, req.Patch)

		if booking.TrainerID == booking.ClientID {
			uc.logger.Warn("UpdateBooking: patch makes user id=%d both trainer and client", booking.ClientID)
			return fmt.Errorf("%w: trainer and client must be different users", ErrInvalidInput)
		}

		// 3.1. Проверки расписания только если патч его затрагивает
		if req.Patch.TouchesSchedule() {
			if err := uc.checkSchedule(txCtx, booking, startChanged, now); err != nil {
				return err
			}
		}

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		uc.metrics.IncBusinessEvent("update_booking", "rejected")
		if domain.IsKnown(err) {
			return nil, err
		}
		uc.logger.Error("UpdateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.IncBusinessEvent("update_booking", "updated")
	uc.logger.Info("UpdateBooking: booking id=%d updated", result.ID)

	// 4. Уведомляем вторую сторону (после коммита)
	uc.notifier.Notify(ctx, result.CounterParty(actor), domain.NotifyBookingUpdated, map[string]string{
		"booking_id": strconv.FormatInt(result.ID, 10),
		"start":      result.ScheduledStart.Format(domain.DateTimeFormat),
		"end":        result.ScheduledEnd.Format(domain.DateTimeFormat),
	})

	return &Response{Booking: result}, nil
}

func (uc *UseCase) checkSchedule(ctx context.Context, booking *domain.SessionBooking, startChanged bool, now time.Time) error {
	if err := validateInterval(booking); err != nil {
		uc.logger.Warn("UpdateBooking: %v", err)
		return err
	}

	if startChanged && booking.ScheduledStart.Before(now) {
		uc.logger.Warn("UpdateBooking: start %s is in the past", booking.ScheduledStart)
		return ErrStartInPast
	}

	candidate := booking.Interval()

	rows, err := uc.availabilityRepo.ListForDate(ctx, booking.TrainerID, booking.ScheduledStart)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to get availability: %v", err)
		return fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
	}

	windows := domain.ResolveAvailability(rows, booking.ScheduledStart)
	if !domain.IsAvailableAt(windows, candidate.Start) || !domain.FitsAvailability(windows, candidate) {
		uc.logger.Warn("UpdateBooking: trainer=%d is not available at %s", booking.TrainerID, candidate.Start)
		return ErrTrainerUnavailable
	}

	existing, err := uc.bookingRepo.GetActiveInRange(ctx, booking.TrainerID, candidate.Start, candidate.End)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to get bookings: %v", err)
		return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	if conflict := domain.FindConflict(existing, candidate, booking.ID); conflict != nil {
		uc.logger.Warn("UpdateBooking: new time conflicts with booking id=%d", conflict.ID)
		return ErrSlotConflict
	}

	return nil
}

// applyPatch применяет непустые поля патча, возвращает true если сдвинулось начало
func applyPatch(b *domain.SessionBooking, p domain.BookingPatch) bool {
	startChanged := false
	if p.TrainerID != nil {
		b.TrainerID = *p.TrainerID
	}
	if p.ScheduledStart != nil {
		startChanged = !p.ScheduledStart.Equal(b.ScheduledStart)
		b.ScheduledStart = *p.ScheduledStart
	}
	if p.ScheduledEnd != nil {
		b.ScheduledEnd = *p.ScheduledEnd
	}
	if p.ScheduledStart != nil || p.ScheduledEnd != nil {
		b.DurationMinutes = int(b.ScheduledEnd.Sub(b.ScheduledStart).Minutes())
	}
	if p.SessionType != nil {
		b.SessionType = *p.SessionType
	}
	if p.Location != nil {
		b.Location = p.Location
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Notes != nil {
		b.Notes = p.Notes
	}
	return startChanged
}

func (uc *UseCase) mapGetError(id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Warn("UpdateBooking: booking id=%d not found", id)
		return ErrBookingNotFound
	}
	uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", id, err)
	return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
}
