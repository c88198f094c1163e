package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-TrainingService/internal/service/availability/models"
)

// Service сервис для управления окнами доступности тренеров
type Service struct {
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(availabilityRepo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// List все окна доступности тренера (публичный метод)
func (s *Service) List(ctx context.Context, trainerID int64) (*models.AvailabilityListResponse, error) {
	s.logger.Info("List: fetching availability for trainer=%d", trainerID)

	slots, err := s.availabilityRepo.ListByTrainer(ctx, trainerID)
	if err != nil {
		s.logger.Error("List: repository error for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d rows for trainer=%d", len(slots), trainerID)
	return models.FromDomainSlotList(trainerID, slots), nil
}

// Create добавляет окно доступности
// Доступно самому тренеру и администратору
func (s *Service) Create(ctx context.Context, req *models.CreateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Create: adding availability for trainer=%d by user=%d", req.TrainerID, req.UserID)

	// 1. Права доступа
	if req.UserID != req.TrainerID && req.Role != domain.ActorAdmin {
		s.logger.Warn("Create: user=%d cannot change availability of trainer=%d", req.UserID, req.TrainerID)
		return nil, ErrAccessDenied
	}

	// 2. Конвертация и валидация
	slot, err := req.ToDomainSlot()
	if err != nil {
		s.logger.Warn("Create: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateSlot(slot); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 3. Лимит строк на тренера
	count, err := s.availabilityRepo.CountByTrainer(ctx, req.TrainerID)
	if err != nil {
		s.logger.Error("Create: failed to count rows for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}
	if count >= domain.MaxAvailabilityRowsPerTrainer {
		s.logger.Warn("Create: trainer=%d already has %d availability rows", req.TrainerID, count)
		return nil, ErrTooManyRows
	}

	// 4. Сохраняем
	created, err := s.availabilityRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("Create: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created availability id=%d for trainer=%d", created.ID, req.TrainerID)
	return models.FromDomainSlot(created), nil
}

// Delete удаляет окно доступности тренера
// Уже созданные бронирования не затрагиваются
func (s *Service) Delete(ctx context.Context, req *models.DeleteAvailabilityRequest) error {
	s.logger.Info("Delete: deleting availability id=%d of trainer=%d by user=%d", req.AvailabilityID, req.TrainerID, req.UserID)

	if req.UserID != req.TrainerID && req.Role != domain.ActorAdmin {
		s.logger.Warn("Delete: user=%d cannot change availability of trainer=%d", req.UserID, req.TrainerID)
		return ErrAccessDenied
	}

	if err := s.availabilityRepo.Delete(ctx, req.TrainerID, req.AvailabilityID); err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("Delete: availability id=%d not found for trainer=%d", req.AvailabilityID, req.TrainerID)
			return ErrAvailabilityNotFound
		}
		s.logger.Error("Delete: repository error for availability id=%d: %v", req.AvailabilityID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted availability id=%d", req.AvailabilityID)
	return nil
}

// validateSlot валидирует параметры окна доступности
func validateSlot(slot *domain.AvailabilitySlot) error {
	if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
		return fmt.Errorf("%w: dayOfWeek must be between 0 (Monday) and 6 (Sunday)", ErrInvalidInput)
	}

	if !slot.StartTime.IsBefore(slot.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if slot.SessionDurationMinutes < domain.MinSessionMinutes || slot.SessionDurationMinutes > domain.MaxSessionMinutes {
		return fmt.Errorf("%w: sessionDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSessionMinutes, domain.MaxSessionMinutes)
	}

	window := slot.EndTime.Minutes() - slot.StartTime.Minutes()
	if slot.IsAvailable && slot.SessionDurationMinutes > window {
		return fmt.Errorf("%w: sessionDurationMinutes does not fit into the window", ErrInvalidInput)
	}

	return nil
}
