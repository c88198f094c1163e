package create_booking

import (
	"context"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// UseCase use case для создания индивидуальной сессии
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

// Execute выполняет use case создания сессии
// Проверка доступности, поиск пересечений и вставка идут в одной сериализуемой транзакции
// под advisory-блокировкой тренера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: trainer=%d, client=%d, start=%s, end=%s",
		req.TrainerID, req.ClientID, req.Start.Format(domain.DateTimeFormat), req.End.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	if req.Start.Before(now) {
		uc.logger.Warn("CreateBooking: start %s is in the past", req.Start)
		return nil, ErrStartInPast
	}

	// 3. Проверяем тренера и клиента в UserService
	if err := uc.checkUser(ctx, req.TrainerID, ErrTrainerNotFound); err != nil {
		return nil, err
	}
	if err := uc.checkUser(ctx, req.ClientID, ErrClientNotFound); err != nil {
		return nil, err
	}

	candidate := domain.Interval{Start: req.Start, End: req.End}
	var result *domain.SessionBooking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Сериализуем все изменения расписания тренера
		if err := uc.bookingRepo.LockTrainer(txCtx, req.TrainerID); err != nil {
			uc.logger.Error("CreateBooking: failed to lock trainer=%d: %v", req.TrainerID, err)
			return fmt.Errorf("%w: failed to lock trainer: %w", ErrInternal, err)
		}

		// 4.2. Доступность тренера на дату
		rows, err := uc.availabilityRepo.ListForDate(txCtx, req.TrainerID, req.Start)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
		}

		windows := domain.ResolveAvailability(rows, req.Start)
		if !domain.IsAvailableAt(windows, req.Start) || !domain.FitsAvailability(windows, candidate) {
			uc.logger.Warn("CreateBooking: trainer=%d is not available at %s", req.TrainerID, req.Start)
			return ErrTrainerUnavailable
		}

		// 4.3. Пересечения с существующими сессиями
		existing, err := uc.bookingRepo.GetActiveInRange(txCtx, req.TrainerID, candidate.Start, candidate.End)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		if conflict := domain.FindConflict(existing, candidate, 0); conflict != nil {
			uc.logger.Warn("CreateBooking: slot conflicts with booking id=%d", conflict.ID)
			return ErrSlotConflict
		}

		// 4.4. Создаём сессию в статусе SCHEDULED
		booking := &domain.SessionBooking{
			ClientID:        req.ClientID,
			TrainerID:       req.TrainerID,
			SessionType:     req.SessionType,
			Location:        req.Location,
			ScheduledStart:  req.Start,
			ScheduledEnd:    req.End,
			DurationMinutes: durationMinutes(req.Start, req.End),
			Status:          domain.StatusScheduled,
			Price:           req.Price,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		uc.metrics.IncBusinessEvent("create_booking", "rejected")
		if domain.IsKnown(err) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.IncBusinessEvent("create_booking", "created")
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 5. Уведомляем вторую сторону (после коммита)
	recipient := result.ClientID
	if req.ActorID == result.ClientID {
		recipient = result.TrainerID
	}
	uc.notifier.Notify(ctx, recipient, domain.NotifyBookingCreated, map[string]string{
		"booking_id": strconv.FormatInt(result.ID, 10),
		"start":      result.ScheduledStart.Format(domain.DateTimeFormat),
		"end":        result.ScheduledEnd.Format(domain.DateTimeFormat),
	})

	return &Response{Booking: result}, nil
}

func (uc *UseCase) checkUser(ctx context.Context, userID int64, notFound error) error {
	ok, err := uc.users.Exists(ctx, userID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check user id=%d: %v", userID, err)
		return fmt.Errorf("%w: failed to check user: %v", ErrInternal, err)
	}
	if !ok {
		uc.logger.Warn("CreateBooking: user id=%d not found", userID)
		return notFound
	}
	return nil
}
