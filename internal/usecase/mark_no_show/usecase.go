package mark_no_show

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/booking"
	policyRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/policy"
)

// UseCase use case для отметки неявки на сессию
type UseCase struct {
	bookingRepo      BookingRepository
	policyRepo       PolicyRepository
	cancellationRepo CancellationRepository
	notifier         NotificationGateway
	txManager        TransactionManager
	metrics          Metrics
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	policyRepo PolicyRepository,
	cancellationRepo CancellationRepository,
	notifier NotificationGateway,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		policyRepo:       policyRepo,
		cancellationRepo: cancellationRepo,
		notifier:         notifier,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute выполняет use case отметки неявки
// Штраф за неявку не зависит от срока уведомления; запись аудита пишется всегда от имени system
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MarkNoShow: booking=%d, actor=%d, party=%s", req.BookingID, req.ActorID, req.Party)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MarkNoShow: validation failed: %v", err)
		return nil, err
	}

	var (
		result *Response
		actor  domain.Actor
	)

	// 2. Выполняем операции в транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Сессия с блокировкой строки
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("MarkNoShow: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("MarkNoShow: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		actor, err = booking.ResolveActor(req.ActorID, req.ActorRole)
		if err != nil {
			uc.logger.Warn("MarkNoShow: %v", err)
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}

		// 2.2. Переход статуса
		next, err := domain.Transition(booking.Status, domain.EventNoShow)
		if err != nil {
			uc.logger.Warn("MarkNoShow: booking id=%d in status %s cannot be marked", booking.ID, booking.Status)
			return fmt.Errorf("%w: %v", ErrCannotMarkNoShow, err)
		}

		// 2.3. Политика тренера
		policy, err := uc.policyRepo.GetByTrainerID(txCtx, booking.TrainerID)
		if err != nil && !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("MarkNoShow: failed to get policy for trainer=%d: %v", booking.TrainerID, err)
			return fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
		}

		// 2.4. Штраф и запись аудита
		decision := domain.EvaluateNoShow(policy, booking.Price, req.Party)
		record := domain.NewCancellationRecord(booking, domain.ActorSystem, domain.NoShowReason(req.Party), false, 0, decision)

		created, err := uc.cancellationRepo.Create(txCtx, record)
		if err != nil {
			uc.logger.Error("MarkNoShow: failed to create cancellation record: %v", err)
			return fmt.Errorf("%w: failed to create cancellation record: %w", ErrInternal, err)
		}

		// 2.5. Посещаемость и статус
		clientAttended, trainerAttended := req.Party.Attendance()
		booking.ClientAttended = &clientAttended
		booking.TrainerAttended = &trainerAttended
		booking.Status = next

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("MarkNoShow: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		result = &Response{Cancellation: created, Booking: booking}
		return nil
	})

	if err != nil {
		if domain.IsKnown(err) {
			return nil, err
		}
		uc.logger.Error("MarkNoShow: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	outcome := "no_fee"
	if result.Cancellation.FeeApplied {
		outcome = "fee_applied"
	}
	uc.metrics.IncBusinessEvent("mark_no_show", outcome)
	uc.logger.Info("MarkNoShow: booking id=%d marked no-show (%s), fee=%.2f",
		result.Booking.ID, req.Party, result.Cancellation.FeeAmount)

	// 3. Уведомляем вторую сторону (после коммита)
	uc.notifier.Notify(ctx, result.Booking.CounterParty(actor), domain.NotifyBookingNoShow, map[string]string{
		"booking_id": strconv.FormatInt(result.Booking.ID, 10),
		"party":      string(req.Party),
		"fee_amount": strconv.FormatFloat(result.Cancellation.FeeAmount, 'f', 2, 64),
	})

	return result, nil
}
