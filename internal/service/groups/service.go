package groups

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	groupRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/group"
	"github.com/m04kA/SMC-TrainingService/internal/service/groups/models"
)

// Service сервис для работы с групповыми сессиями (без записи клиентов)
type Service struct {
	groupRepo    GroupRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса групповых сессий
func NewService(groupRepo GroupRepository, logger Logger) *Service {
	return &Service{
		groupRepo:    groupRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CreateSession создает групповую сессию тренера
// Доступно самому тренеру и администратору
func (s *Service) CreateSession(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("CreateSession: creating group session for trainer=%d by user=%d", req.TrainerID, req.UserID)

	if req.UserID != req.TrainerID && req.Role != domain.ActorAdmin {
		s.logger.Warn("CreateSession: user=%d cannot create sessions for trainer=%d", req.UserID, req.TrainerID)
		return nil, ErrAccessDenied
	}

	if err := s.validateSession(req); err != nil {
		s.logger.Warn("CreateSession: validation failed: %v", err)
		return nil, err
	}

	created, err := s.groupRepo.CreateSession(ctx, req.ToDomainSession())
	if err != nil {
		s.logger.Error("CreateSession: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSession - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSession: successfully created group session id=%d", created.ID)
	return models.FromDomainSession(created), nil
}

// GetSession получает групповую сессию (публичный метод)
func (s *Service) GetSession(ctx context.Context, id int64) (*models.SessionResponse, error) {
	s.logger.Info("GetSession: fetching group session id=%d", id)

	session, err := s.getSession(ctx, "GetSession", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSession(session), nil
}

// ListParticipants участники групповой сессии
// Доступно тренеру сессии и администратору
func (s *Service) ListParticipants(ctx context.Context, sessionID, userID int64, role domain.ActorRole, includeInactive bool) (*models.ParticipantListResponse, error) {
	s.logger.Info("ListParticipants: fetching participants of session=%d for user=%d", sessionID, userID)

	session, err := s.getSession(ctx, "ListParticipants", sessionID)
	if err != nil {
		return nil, err
	}

	if userID != session.TrainerID && role != domain.ActorAdmin {
		s.logger.Warn("ListParticipants: user=%d is not the trainer of session=%d", userID, sessionID)
		return nil, ErrAccessDenied
	}

	participants, err := s.groupRepo.ListParticipants(ctx, sessionID, includeInactive)
	if err != nil {
		s.logger.Error("ListParticipants: repository error for session=%d: %v", sessionID, err)
		return nil, fmt.Errorf("%w: ListParticipants - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListParticipants: successfully fetched %d participants of session=%d", len(participants), sessionID)
	return models.FromDomainParticipantList(sessionID, participants), nil
}

func (s *Service) getSession(ctx context.Context, op string, id int64) (*domain.GroupSession, error) {
	session, err := s.groupRepo.GetSessionByID(ctx, id)
	if err != nil {
		if errors.Is(err, groupRepo.ErrSessionNotFound) {
			s.logger.Warn("%s: group session id=%d not found", op, id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("%s: repository error for group session id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return session, nil
}

// validateSession валидирует параметры групповой сессии
func (s *Service) validateSession(req *models.CreateSessionRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if req.ScheduledDate.IsZero() || req.ScheduledDate.Before(s.timeProvider.Now()) {
		return fmt.Errorf("%w: scheduledDate must be in the future", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinSessionMinutes || req.DurationMinutes > domain.MaxSessionMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSessionMinutes, domain.MaxSessionMinutes)
	}

	if req.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}

	if req.MaxParticipants < 1 || req.MaxParticipants > domain.MaxGroupParticipants {
		return fmt.Errorf("%w: maxParticipants must be between 1 and %d", ErrInvalidInput, domain.MaxGroupParticipants)
	}

	if req.MinParticipants < 0 || req.MinParticipants > req.MaxParticipants {
		return fmt.Errorf("%w: minParticipants must be between 0 and maxParticipants", ErrInvalidInput)
	}

	if req.BookingDeadlineHours < 0 || req.BookingDeadlineHours > domain.MaxBookingDeadlineHours {
		return fmt.Errorf("%w: bookingDeadlineHours must be between 0 and %d", ErrInvalidInput, domain.MaxBookingDeadlineHours)
	}

	return nil
}
