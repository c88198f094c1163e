package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/pkg/types"
)

// Request модели

// CreateAvailabilityRequest запрос на добавление окна доступности
// Без SpecificDate строка еженедельная, с ней - переопределение на дату
type CreateAvailabilityRequest struct {
	UserID                 int64            `json:"userId"`
	Role                   domain.ActorRole `json:"role,omitempty"`
	TrainerID              int64            `json:"trainerId"`
	DayOfWeek              *int             `json:"dayOfWeek,omitempty"` // 0 = понедельник
	StartTime              string           `json:"startTime"`           // "09:00"
	EndTime                string           `json:"endTime"`             // "12:00"
	SessionDurationMinutes int              `json:"sessionDurationMinutes"`
	IsAvailable            *bool            `json:"isAvailable,omitempty"`  // по умолчанию true
	SpecificDate           *string          `json:"specificDate,omitempty"` // "2025-03-03"
}

// DeleteAvailabilityRequest запрос на удаление окна доступности
type DeleteAvailabilityRequest struct {
	UserID         int64            `json:"userId"`
	Role           domain.ActorRole `json:"role,omitempty"`
	TrainerID      int64            `json:"trainerId"`
	AvailabilityID int64            `json:"availabilityId"`
}

// ToDomainSlot конвертирует request в domain модель с валидацией формата
func (r *CreateAvailabilityRequest) ToDomainSlot() (*domain.AvailabilitySlot, error) {
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	slot := &domain.AvailabilitySlot{
		TrainerID:              r.TrainerID,
		StartTime:              start,
		EndTime:                end,
		SessionDurationMinutes: r.SessionDurationMinutes,
		IsAvailable:            r.IsAvailable == nil || *r.IsAvailable,
		IsRecurring:            r.SpecificDate == nil,
	}

	switch {
	case r.SpecificDate != nil:
		date, err := time.Parse(domain.DateFormat, *r.SpecificDate)
		if err != nil {
			return nil, fmt.Errorf("specificDate must be in format %s", domain.DateFormat)
		}
		slot.SpecificDate = &date
		slot.DayOfWeek = domain.DayOfWeek(date)
	case r.DayOfWeek != nil:
		slot.DayOfWeek = *r.DayOfWeek
	default:
		return nil, errors.New("either dayOfWeek or specificDate is required")
	}

	return slot, nil
}

// Response модели

// AvailabilityResponse окно доступности тренера
type AvailabilityResponse struct {
	ID                     int64     `json:"id"`
	TrainerID              int64     `json:"trainerId"`
	DayOfWeek              int       `json:"dayOfWeek"`
	StartTime              string    `json:"startTime"`
	EndTime                string    `json:"endTime"`
	SessionDurationMinutes int       `json:"sessionDurationMinutes"`
	IsAvailable            bool      `json:"isAvailable"`
	SpecificDate           *string   `json:"specificDate,omitempty"`
	IsRecurring            bool      `json:"isRecurring"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// AvailabilityListResponse список окон доступности
type AvailabilityListResponse struct {
	TrainerID    int64                  `json:"trainerId"`
	Availability []AvailabilityResponse `json:"availability"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(a *domain.AvailabilitySlot) *AvailabilityResponse {
	if a == nil {
		return nil
	}

	resp := &AvailabilityResponse{
		ID:                     a.ID,
		TrainerID:              a.TrainerID,
		DayOfWeek:              a.DayOfWeek,
		StartTime:              a.StartTime.String(),
		EndTime:                a.EndTime.String(),
		SessionDurationMinutes: a.SessionDurationMinutes,
		IsAvailable:            a.IsAvailable,
		IsRecurring:            a.IsRecurring,
		CreatedAt:              a.CreatedAt,
		UpdatedAt:              a.UpdatedAt,
	}

	if a.SpecificDate != nil {
		date := a.SpecificDate.Format(domain.DateFormat)
		resp.SpecificDate = &date
	}

	return resp
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(trainerID int64, slots []*domain.AvailabilitySlot) *AvailabilityListResponse {
	resp := &AvailabilityListResponse{
		TrainerID:    trainerID,
		Availability: make([]AvailabilityResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		resp.Availability = append(resp.Availability, *FromDomainSlot(slot))
	}

	return resp
}
