package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// Request модели

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	UserID   int64            `json:"userId"`
	Role     domain.ActorRole `json:"role,omitempty"`
	ClientID int64            `json:"clientId"`
	Status   *string          `json:"status,omitempty"`
}

// GetTrainerBookingsRequest запрос на получение расписания тренера
type GetTrainerBookingsRequest struct {
	UserID          int64            `json:"userId"`
	Role            domain.ActorRole `json:"role,omitempty"`
	TrainerID       int64            `json:"trainerId"`
	From            *time.Time       `json:"from,omitempty"` // включительно
	To              *time.Time       `json:"to,omitempty"`   // не включительно
	Status          *string          `json:"status,omitempty"`
	IncludeInactive bool             `json:"includeInactive,omitempty"` // включая отменённые и перенесённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTrainerBookingsRequest) ToDomainFilter() (domain.TrainerBookingsFilter, error) {
	filter := domain.TrainerBookingsFilter{
		TrainerID:       r.TrainerID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return filter, errors.New("from must be before to")
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// TransitionRequest запрос на смену статуса бронирования
type TransitionRequest struct {
	UserID int64            `json:"userId"`
	Role   domain.ActorRole `json:"role,omitempty"`
	Notes  *string          `json:"notes,omitempty"` // только для complete
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"clientId"`
	TrainerID       int64     `json:"trainerId"`
	SessionType     string    `json:"sessionType"`
	Location        *string   `json:"location,omitempty"`
	ScheduledStart  time.Time `json:"scheduledStart"`
	ScheduledEnd    time.Time `json:"scheduledEnd"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Price           float64   `json:"price"`
	Notes           *string   `json:"notes,omitempty"`

	OriginalSessionID *int64  `json:"originalSessionId,omitempty"`
	RescheduleReason  *string `json:"rescheduleReason,omitempty"`
	RescheduledBy     *int64  `json:"rescheduledBy,omitempty"`

	ClientAttended  *bool `json:"clientAttended,omitempty"`
	TrainerAttended *bool `json:"trainerAttended,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancellationResponse запись аудита об отмене или неявке
type CancellationResponse struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"bookingId"`
	ClientID      int64     `json:"clientId"`
	TrainerID     int64     `json:"trainerId"`
	CancelledBy   string    `json:"cancelledBy"`
	Reason        string    `json:"reason"`
	IsEmergency   bool      `json:"isEmergency"`
	NoticeHours   float64   `json:"noticeHours"`
	FeeApplied    bool      `json:"feeApplied"`
	FeeAmount     float64   `json:"feeAmount"`
	FeeWaived     bool      `json:"feeWaived"`
	WaiverReason  *string   `json:"waiverReason,omitempty"`
	PolicyApplied bool      `json:"policyApplied"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.SessionBooking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                b.ID,
		ClientID:          b.ClientID,
		TrainerID:         b.TrainerID,
		SessionType:       b.SessionType,
		Location:          b.Location,
		ScheduledStart:    b.ScheduledStart,
		ScheduledEnd:      b.ScheduledEnd,
		DurationMinutes:   b.DurationMinutes,
		Status:            string(b.Status),
		Price:             b.Price,
		Notes:             b.Notes,
		OriginalSessionID: b.OriginalSessionID,
		RescheduleReason:  b.RescheduleReason,
		RescheduledBy:     b.RescheduledBy,
		ClientAttended:    b.ClientAttended,
		TrainerAttended:   b.TrainerAttended,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.SessionBooking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainCancellation конвертирует запись аудита в DTO
func FromDomainCancellation(c *domain.SessionCancellation) *CancellationResponse {
	if c == nil {
		return nil
	}

	return &CancellationResponse{
		ID:            c.ID,
		BookingID:     c.BookingID,
		ClientID:      c.ClientID,
		TrainerID:     c.TrainerID,
		CancelledBy:   string(c.CancelledBy),
		Reason:        c.Reason,
		IsEmergency:   c.IsEmergency,
		NoticeHours:   c.NoticeHours,
		FeeApplied:    c.FeeApplied,
		FeeAmount:     c.FeeAmount,
		FeeWaived:     c.FeeWaived,
		WaiverReason:  c.WaiverReason,
		PolicyApplied: c.PolicyApplied,
		CreatedAt:     c.CreatedAt,
	}
}
