package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/booking"
	policyRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/policy"
)

// UseCase use case для отмены индивидуальной сессии с расчётом штрафа
type UseCase struct {
	bookingRepo      BookingRepository
	policyRepo       PolicyRepository
	cancellationRepo CancellationRepository
	notifier         NotificationGateway
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
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
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case отмены
// Строка сессии блокируется FOR UPDATE: из двух параллельных отмен вторая увидит cancelled
// и получит ErrCannotCancel, запись аудита будет ровно одна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, actor=%d, emergency=%t", req.BookingID, req.ActorID, req.IsEmergency)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		result *Response
		actor  domain.Actor
	)

	// 2. Выполняем отмену в транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Сессия с блокировкой строки
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2.2. Кто отменяет
		actor, err = booking.ResolveActor(req.ActorID, req.ActorRole)
		if err != nil {
			uc.logger.Warn("CancelBooking: %v", err)
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}

		// 2.3. Переход статуса
		next, err := domain.Transition(booking.Status, domain.EventCancel)
		if err != nil {
			uc.logger.Warn("CancelBooking: booking id=%d in status %s cannot be cancelled", booking.ID, booking.Status)
			return fmt.Errorf("%w: %v", ErrCannotCancel, err)
		}

		// 2.4. Политика тренера (отсутствие политики - штрафов нет)
		policy, err := uc.policyRepo.GetByTrainerID(txCtx, booking.TrainerID)
		if err != nil && !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("CancelBooking: failed to get policy for trainer=%d: %v", booking.TrainerID, err)
			return fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
		}

		// 2.5. Прошлые отмены клиента для льготы первой отмены
		prior := 0
		if policy.Enforced() {
			prior, err = uc.cancellationRepo.CountByClient(txCtx, booking.ClientID, domain.ActorClient)
			if err != nil {
				uc.logger.Error("CancelBooking: failed to count cancellations for client=%d: %v", booking.ClientID, err)
				return fmt.Errorf("%w: failed to count cancellations: %w", ErrInternal, err)
			}
		}

		// 2.6. Расчёт штрафа
		notice := booking.NoticeHours(now)
		decision := domain.EvaluateCancellation(domain.CancellationInput{
			Policy:                   policy,
			Price:                    booking.Price,
			CancelledBy:              actor.Role,
			NoticeHours:              notice,
			IsEmergency:              req.IsEmergency,
			PriorClientCancellations: prior,
		})

		// 2.7. Запись аудита
		record := domain.NewCancellationRecord(booking, actor.Role, req.Reason, req.IsEmergency, notice, decision)
		created, err := uc.cancellationRepo.Create(txCtx, record)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to create cancellation record: %v", err)
			return fmt.Errorf("%w: failed to create cancellation record: %w", ErrInternal, err)
		}

		// 2.8. Сессия -> cancelled
		booking.Status = next
		booking.CancelledAt = &now
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("CancelBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		result = &Response{Cancellation: created, Booking: booking}
		return nil
	})

	if err != nil {
		if domain.IsKnown(err) {
			return nil, err
		}
		uc.logger.Error("CancelBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	c := result.Cancellation
	uc.metrics.IncBusinessEvent("cancel_booking", feeOutcome(c))
	uc.logger.Info("CancelBooking: booking id=%d cancelled by %s, fee_applied=%t, fee=%.2f, waived=%t",
		result.Booking.ID, c.CancelledBy, c.FeeApplied, c.FeeAmount, c.FeeWaived)

	// 3. Уведомляем вторую сторону (после коммита)
	uc.notifier.Notify(ctx, result.Booking.CounterParty(actor), domain.NotifyBookingCancelled, map[string]string{
		"booking_id":   strconv.FormatInt(result.Booking.ID, 10),
		"start":        result.Booking.ScheduledStart.Format(domain.DateTimeFormat),
		"cancelled_by": string(c.CancelledBy),
		"reason":       c.Reason,
	})

	return result, nil
}

func feeOutcome(c *domain.SessionCancellation) string {
	switch {
	case c.FeeApplied:
		return "fee_applied"
	case c.FeeWaived:
		return "fee_waived"
	default:
		return "no_fee"
	}
}
