package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	policyRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-TrainingService/internal/service/policy/models"
)

// Service сервис для работы с политиками отмены
type Service struct {
	policyRepo PolicyRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(policyRepo PolicyRepository, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// Get возвращает политику тренера
// Публичный метод: клиент должен видеть условия отмены до записи.
// Пока тренер ничего не сохранял, возвращаются значения по умолчанию (без записи в БД)
func (s *Service) Get(ctx context.Context, trainerID int64) (*models.PolicyResponse, error) {
	s.logger.Info("Get: fetching cancellation policy for trainer=%d", trainerID)

	if trainerID <= 0 {
		return nil, fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}

	p, isDefault, err := s.current(ctx, "Get", trainerID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainPolicy(p, isDefault), nil
}

// Update частично обновляет политику тренера, создавая её при первом изменении
// Доступно самому тренеру и администратору
func (s *Service) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Update: updating cancellation policy for trainer=%d by user=%d", req.TrainerID, req.UserID)

	// 1. Права доступа
	if req.UserID != req.TrainerID && req.Role != domain.ActorAdmin {
		s.logger.Warn("Update: user=%d cannot change policy of trainer=%d", req.UserID, req.TrainerID)
		return nil, ErrAccessDenied
	}

	// 2. Текущая политика или значения по умолчанию
	current, _, err := s.current(ctx, "Update", req.TrainerID)
	if err != nil {
		return nil, err
	}

	// 3. Применяем изменения и валидируем результат
	req.ApplyToPolicy(current)
	if err := validatePolicy(current); err != nil {
		s.logger.Warn("Update: validation failed for trainer=%d: %v", req.TrainerID, err)
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.policyRepo.Upsert(ctx, current)
	if err != nil {
		s.logger.Error("Update: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully saved cancellation policy for trainer=%d", req.TrainerID)
	return models.FromDomainPolicy(saved, false), nil
}

func (s *Service) current(ctx context.Context, op string, trainerID int64) (*domain.CancellationPolicy, bool, error) {
	p, err := s.policyRepo.GetByTrainerID(ctx, trainerID)
	if err == nil {
		return p, false, nil
	}
	if errors.Is(err, policyRepo.ErrPolicyNotFound) {
		s.logger.Info("%s: trainer=%d has no policy, using defaults", op, trainerID)
		return domain.DefaultCancellationPolicy(trainerID), true, nil
	}
	s.logger.Error("%s: repository error for trainer=%d: %v", op, trainerID, err)
	return nil, false, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// validatePolicy валидирует параметры политики
func validatePolicy(p *domain.CancellationPolicy) error {
	if p.AdvanceNoticeHours < 0 || p.AdvanceNoticeHours > domain.MaxNoticeHours {
		return fmt.Errorf("%w: advanceNoticeHours must be between 0 and %d", ErrInvalidInput, domain.MaxNoticeHours)
	}

	if p.RescheduleAdvanceNoticeHours < 0 || p.RescheduleAdvanceNoticeHours > domain.MaxNoticeHours {
		return fmt.Errorf("%w: rescheduleAdvanceNoticeHours must be between 0 and %d", ErrInvalidInput, domain.MaxNoticeHours)
	}

	if p.MaxReschedulesPerSession < 0 || p.MaxReschedulesPerSession > domain.MaxReschedulesLimit {
		return fmt.Errorf("%w: maxReschedulesPerSession must be between 0 and %d", ErrInvalidInput, domain.MaxReschedulesLimit)
	}

	if p.CancellationFeeAmount < 0 || p.NoShowFeeAmount < 0 {
		return fmt.Errorf("%w: fee amounts cannot be negative", ErrInvalidInput)
	}

	for _, pct := range []*float64{p.CancellationFeePercentage, p.NoShowFeePercentage} {
		if pct != nil && (*pct < 0 || *pct > 100) {
			return fmt.Errorf("%w: fee percentage must be between 0 and 100", ErrInvalidInput)
		}
	}

	return nil
}
