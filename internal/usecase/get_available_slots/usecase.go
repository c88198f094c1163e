package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/pkg/types"
)

// UseCase use case для получения свободных слотов тренера на дату
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	users            UserDirectory
	step             time.Duration
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// stepMinutes - шаг перебора кандидатов, 0 - значение по умолчанию
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	users UserDirectory,
	stepMinutes int,
	logger Logger,
) *UseCase {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}

	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		users:            users,
		step:             time.Duration(stepMinutes) * time.Minute,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: trainer=%d, date=%s, duration=%d",
		req.TrainerID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем тренера
	ok, err := uc.users.Exists(ctx, req.TrainerID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check trainer id=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to check trainer: %v", ErrInternal, err)
	}
	if !ok {
		uc.logger.Warn("GetAvailableSlots: trainer id=%d not found", req.TrainerID)
		return nil, ErrTrainerNotFound
	}

	day := domain.StartOfDay(req.Date)
	response := &Response{TrainerID: req.TrainerID, Date: day, Slots: []Slot{}}

	// 3. Окна доступности на дату (переопределение по дате важнее недельного расписания)
	rows, err := uc.availabilityRepo.ListForDate(ctx, req.TrainerID, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	windows := domain.ResolveAvailability(rows, day)
	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: trainer=%d is not available on %s", req.TrainerID, day.Format(domain.DateFormat))
		return response, nil
	}

	// 4. Сессии тренера, занимающие время в этот день
	bookings, err := uc.bookingRepo.GetActiveInRange(ctx, req.TrainerID, day, day.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты, прошедшее время не предлагаем
	duration := time.Duration(req.DurationMinutes) * time.Minute
	for _, s := range domain.GenerateSlots(windows, bookings, duration, uc.step, uc.timeProvider.Now()) {
		response.Slots = append(response.Slots, Slot{
			Start:           s.Start,
			End:             s.End,
			StartTime:       types.NewTimeString(s.Start),
			EndTime:         types.NewTimeString(s.End),
			DurationMinutes: s.DurationMinutes,
		})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for trainer=%d, date=%s",
		len(response.Slots), req.TrainerID, day.Format(domain.DateFormat))

	return response, nil
}
