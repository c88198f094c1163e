package cancel_group_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	groupRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/group"
)

// UseCase use case для отмены записи в групповую сессию
type UseCase struct {
	groupRepo GroupRepository
	notifier  NotificationGateway
	txManager TransactionManager
	metrics   Metrics
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	groupRepo GroupRepository,
	notifier NotificationGateway,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		groupRepo: groupRepo,
		notifier:  notifier,
		txManager: txManager,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute выполняет use case отмены
// Освободившееся место сразу занимает первый из листа ожидания в той же транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelGroupBooking: session=%d, client=%d, actor=%d", req.SessionID, req.ClientID, req.ActorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelGroupBooking: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Отмена и продвижение очереди под блокировкой строки сессии
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		session, err := uc.groupRepo.GetSessionForUpdate(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, groupRepo.ErrSessionNotFound) {
				uc.logger.Warn("CancelGroupBooking: session id=%d not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("CancelGroupBooking: failed to get session id=%d: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %w", ErrInternal, err)
		}

		if !canCancel(req, session) {
			uc.logger.Warn("CancelGroupBooking: user=%d cannot cancel booking of client=%d", req.ActorID, req.ClientID)
			return ErrAccessDenied
		}

		participant, err := uc.groupRepo.GetActiveParticipant(txCtx, session.ID, req.ClientID)
		if err != nil {
			if errors.Is(err, groupRepo.ErrParticipantNotFound) {
				uc.logger.Warn("CancelGroupBooking: client=%d has no active booking for session=%d", req.ClientID, session.ID)
				return ErrParticipantNotFound
			}
			uc.logger.Error("CancelGroupBooking: failed to get participant: %v", err)
			return fmt.Errorf("%w: failed to get participant: %w", ErrInternal, err)
		}

		// 2.1. Запись -> cancelled
		wasConfirmed := participant.BookingStatus == domain.ParticipantConfirmed
		participant.BookingStatus = domain.ParticipantCancelled
		participant.WaitlistPosition = nil
		if err := uc.groupRepo.UpdateParticipant(txCtx, participant); err != nil {
			uc.logger.Error("CancelGroupBooking: failed to update participant id=%d: %v", participant.ID, err)
			return fmt.Errorf("%w: failed to update participant: %w", ErrInternal, err)
		}

		result = &Response{Participant: participant, Session: session}
		if !wasConfirmed {
			return nil
		}

		// 2.2. Место освободилось: пересчёт счётчиков и продвижение очереди
		if err := uc.syncCounters(txCtx, session); err != nil {
			return err
		}

		promoted, err := uc.promoteFromWaitlist(txCtx, session)
		if err != nil {
			return err
		}
		result.Promoted = promoted
		return nil
	})

	if err != nil {
		uc.metrics.IncBusinessEvent("cancel_group_booking", "rejected")
		if domain.IsKnown(err) {
			return nil, err
		}
		uc.logger.Error("CancelGroupBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.IncBusinessEvent("cancel_group_booking", "cancelled")
	uc.logger.Info("CancelGroupBooking: client=%d cancelled session=%d", req.ClientID, req.SessionID)

	// 3. Уведомления после коммита
	vars := map[string]string{
		"group_session_id": strconv.FormatInt(result.Session.ID, 10),
		"title":            result.Session.Title,
		"start":            result.Session.ScheduledDate.Format(domain.DateTimeFormat),
	}
	uc.notifier.Notify(ctx, req.ClientID, domain.NotifyGroupBookingCancelled, vars)

	if result.Promoted != nil {
		uc.metrics.IncBusinessEvent("group_waitlist", "promoted")
		uc.notifier.Notify(ctx, result.Promoted.ClientID, domain.NotifyGroupWaitlistPromoted, vars)
	}

	return result, nil
}

// promoteFromWaitlist переводит первого в очереди в confirmed, если есть свободное место
func (uc *UseCase) promoteFromWaitlist(ctx context.Context, session *domain.GroupSession) (*domain.GroupSessionParticipant, error) {
	if !session.HasFreeSeat() {
		return nil, nil
	}

	next, err := uc.groupRepo.NextWaitlisted(ctx, session.ID)
	if err != nil {
		if errors.Is(err, groupRepo.ErrParticipantNotFound) {
			return nil, nil
		}
		uc.logger.Error("CancelGroupBooking: failed to get waitlist head for session=%d: %v", session.ID, err)
		return nil, fmt.Errorf("%w: failed to get waitlist: %w", ErrInternal, err)
	}

	next.BookingStatus = domain.ParticipantConfirmed
	next.WaitlistPosition = nil
	if err := uc.groupRepo.UpdateParticipant(ctx, next); err != nil {
		uc.logger.Error("CancelGroupBooking: failed to promote participant id=%d: %v", next.ID, err)
		return nil, fmt.Errorf("%w: failed to promote participant: %w", ErrInternal, err)
	}

	if err := uc.syncCounters(ctx, session); err != nil {
		return nil, err
	}

	uc.logger.Info("CancelGroupBooking: client=%d promoted from waitlist for session=%d", next.ClientID, session.ID)
	return next, nil
}

func (uc *UseCase) syncCounters(ctx context.Context, session *domain.GroupSession) error {
	counters, err := uc.groupRepo.SyncCounters(ctx, session.ID)
	if err != nil {
		uc.logger.Error("CancelGroupBooking: failed to sync counters for session=%d: %v", session.ID, err)
		return fmt.Errorf("%w: failed to sync counters: %w", ErrInternal, err)
	}
	session.CurrentParticipants = counters.Confirmed
	session.TotalRevenue = counters.TotalRevenue
	return session.Validate()
}

// canCancel сам клиент, тренер сессии, администратор или система
func canCancel(req *Request, session *domain.GroupSession) bool {
	switch {
	case req.ActorRole == domain.ActorAdmin || req.ActorRole == domain.ActorSystem:
		return true
	case req.ActorID == req.ClientID:
		return true
	default:
		return req.ActorID == session.TrainerID
	}
}
