package book_group_session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	groupRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/group"
)

// UseCase use case для записи клиента на групповую сессию
type UseCase struct {
	groupRepo    GroupRepository
	users        UserDirectory
	notifier     NotificationGateway
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	groupRepo GroupRepository,
	users UserDirectory,
	notifier NotificationGateway,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		groupRepo:    groupRepo,
		users:        users,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case записи
// Свободное место - confirmed, иначе лист ожидания (если разрешён), иначе Conflict
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookGroupSession: session=%d, client=%d", req.SessionID, req.ClientID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookGroupSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Клиент должен существовать
	ok, err := uc.users.Exists(ctx, req.ClientID)
	if err != nil {
		uc.logger.Error("BookGroupSession: failed to check client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to check client: %v", ErrInternal, err)
	}
	if !ok {
		uc.logger.Warn("BookGroupSession: client id=%d not found", req.ClientID)
		return nil, ErrClientNotFound
	}

	now := uc.timeProvider.Now()
	var result *Response

	// 3. Запись под блокировкой строки сессии
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		session, err := uc.groupRepo.GetSessionForUpdate(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, groupRepo.ErrSessionNotFound) {
				uc.logger.Warn("BookGroupSession: session id=%d not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("BookGroupSession: failed to get session id=%d: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %w", ErrInternal, err)
		}

		// 3.1. Повторная запись
		_, err = uc.groupRepo.GetActiveParticipant(txCtx, session.ID, req.ClientID)
		switch {
		case err == nil:
			uc.logger.Warn("BookGroupSession: client=%d already booked session=%d", req.ClientID, session.ID)
			return ErrAlreadyBooked
		case !errors.Is(err, groupRepo.ErrParticipantNotFound):
			uc.logger.Error("BookGroupSession: failed to get participant: %v", err)
			return fmt.Errorf("%w: failed to get participant: %w", ErrInternal, err)
		}

		// 3.2. Дедлайн записи
		if session.DeadlinePassed(now) {
			uc.logger.Warn("BookGroupSession: deadline %s passed for session=%d",
				session.BookingDeadline().Format(domain.DateTimeFormat), session.ID)
			return ErrDeadlinePassed
		}

		participant := &domain.GroupSessionParticipant{
			GroupSessionID: session.ID,
			ClientID:       req.ClientID,
			AmountPaid:     req.AmountPaid,
		}

		// 3.3. Место, лист ожидания или отказ
		switch {
		case session.HasFreeSeat():
			participant.BookingStatus = domain.ParticipantConfirmed
		case session.AllowWaitlist:
			position, err := uc.groupRepo.NextWaitlistPosition(txCtx, session.ID)
			if err != nil {
				uc.logger.Error("BookGroupSession: failed to get waitlist position: %v", err)
				return fmt.Errorf("%w: failed to get waitlist position: %w", ErrInternal, err)
			}
			participant.BookingStatus = domain.ParticipantWaitlisted
			participant.WaitlistPosition = &position
		default:
			uc.logger.Warn("BookGroupSession: session=%d is full (%d/%d)",
				session.ID, session.CurrentParticipants, session.MaxParticipants)
			return ErrSessionFull
		}

		created, err := uc.groupRepo.CreateParticipant(txCtx, participant)
		if err != nil {
			if errors.Is(err, groupRepo.ErrDuplicateParticipant) {
				return ErrAlreadyBooked
			}
			uc.logger.Error("BookGroupSession: failed to create participant: %v", err)
			return fmt.Errorf("%w: failed to create participant: %w", ErrInternal, err)
		}

		// 3.4. Счётчики пересчитываются из строк участников
		if created.BookingStatus == domain.ParticipantConfirmed {
			counters, err := uc.groupRepo.SyncCounters(txCtx, session.ID)
			if err != nil {
				uc.logger.Error("BookGroupSession: failed to sync counters for session=%d: %v", session.ID, err)
				return fmt.Errorf("%w: failed to sync counters: %w", ErrInternal, err)
			}
			session.CurrentParticipants = counters.Confirmed
			session.TotalRevenue = counters.TotalRevenue
			if err := session.Validate(); err != nil {
				uc.logger.Error("BookGroupSession: %v", err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}

		result = &Response{Participant: created, Session: session}
		return nil
	})

	if err != nil {
		uc.metrics.IncBusinessEvent("book_group_session", "rejected")
		if domain.IsKnown(err) {
			return nil, err
		}
		uc.logger.Error("BookGroupSession: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	p := result.Participant
	uc.metrics.IncBusinessEvent("book_group_session", string(p.BookingStatus))
	uc.logger.Info("BookGroupSession: client=%d is %s for session=%d", p.ClientID, p.BookingStatus, p.GroupSessionID)

	// 4. Уведомляем клиента о результате
	vars := map[string]string{
		"group_session_id": strconv.FormatInt(result.Session.ID, 10),
		"title":            result.Session.Title,
		"start":            result.Session.ScheduledDate.Format(domain.DateTimeFormat),
	}
	category := domain.NotifyGroupBookingConfirmed
	if p.WaitlistPosition != nil {
		category = domain.NotifyGroupWaitlisted
		vars["waitlist_position"] = strconv.Itoa(*p.WaitlistPosition)
	}
	uc.notifier.Notify(ctx, p.ClientID, category, vars)

	return result, nil
}
