package models

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// Request модели

// CreateSessionRequest запрос на создание групповой сессии
type CreateSessionRequest struct {
	UserID               int64            `json:"userId"`
	Role                 domain.ActorRole `json:"role,omitempty"`
	TrainerID            int64            `json:"trainerId"`
	Title                string           `json:"title"`
	ScheduledDate        time.Time        `json:"scheduledDate"`
	DurationMinutes      int              `json:"durationMinutes"`
	Price                float64          `json:"price"`
	MaxParticipants      int              `json:"maxParticipants"`
	MinParticipants      int              `json:"minParticipants"`
	AllowWaitlist        bool             `json:"allowWaitlist"`
	BookingDeadlineHours int              `json:"bookingDeadlineHours"`
}

// ToDomainSession конвертирует request в domain модель
func (r *CreateSessionRequest) ToDomainSession() *domain.GroupSession {
	return &domain.GroupSession{
		TrainerID:            r.TrainerID,
		Title:                r.Title,
		ScheduledDate:        r.ScheduledDate.UTC(),
		DurationMinutes:      r.DurationMinutes,
		Price:                r.Price,
		MaxParticipants:      r.MaxParticipants,
		MinParticipants:      r.MinParticipants,
		AllowWaitlist:        r.AllowWaitlist,
		BookingDeadlineHours: r.BookingDeadlineHours,
	}
}

// Response модели

// SessionResponse групповая сессия
type SessionResponse struct {
	ID                   int64     `json:"id"`
	TrainerID            int64     `json:"trainerId"`
	Title                string    `json:"title"`
	ScheduledDate        time.Time `json:"scheduledDate"`
	DurationMinutes      int       `json:"durationMinutes"`
	Price                float64   `json:"price"`
	MaxParticipants      int       `json:"maxParticipants"`
	MinParticipants      int       `json:"minParticipants"`
	CurrentParticipants  int       `json:"currentParticipants"`
	TotalRevenue         float64   `json:"totalRevenue"`
	AllowWaitlist        bool      `json:"allowWaitlist"`
	BookingDeadlineHours int       `json:"bookingDeadlineHours"`
	BookingDeadline      time.Time `json:"bookingDeadline"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// ParticipantResponse запись клиента на групповую сессию
type ParticipantResponse struct {
	ID               int64     `json:"id"`
	GroupSessionID   int64     `json:"groupSessionId"`
	ClientID         int64     `json:"clientId"`
	BookingStatus    string    `json:"bookingStatus"`
	WaitlistPosition *int      `json:"waitlistPosition"`
	AmountPaid       float64   `json:"amountPaid"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ParticipantListResponse участники групповой сессии
type ParticipantListResponse struct {
	GroupSessionID int64                 `json:"groupSessionId"`
	Participants   []ParticipantResponse `json:"participants"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(g *domain.GroupSession) *SessionResponse {
	if g == nil {
		return nil
	}

	return &SessionResponse{
		ID:                   g.ID,
		TrainerID:            g.TrainerID,
		Title:                g.Title,
		ScheduledDate:        g.ScheduledDate,
		DurationMinutes:      g.DurationMinutes,
		Price:                g.Price,
		MaxParticipants:      g.MaxParticipants,
		MinParticipants:      g.MinParticipants,
		CurrentParticipants:  g.CurrentParticipants,
		TotalRevenue:         g.TotalRevenue,
		AllowWaitlist:        g.AllowWaitlist,
		BookingDeadlineHours: g.BookingDeadlineHours,
		BookingDeadline:      g.BookingDeadline(),
		CreatedAt:            g.CreatedAt,
		UpdatedAt:            g.UpdatedAt,
	}
}

// FromDomainParticipant конвертирует domain модель в DTO
func FromDomainParticipant(p *domain.GroupSessionParticipant) *ParticipantResponse {
	if p == nil {
		return nil
	}

	return &ParticipantResponse{
		ID:               p.ID,
		GroupSessionID:   p.GroupSessionID,
		ClientID:         p.ClientID,
		BookingStatus:    string(p.BookingStatus),
		WaitlistPosition: p.WaitlistPosition,
		AmountPaid:       p.AmountPaid,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// FromDomainParticipantList конвертирует список участников в DTO
func FromDomainParticipantList(sessionID int64, participants []*domain.GroupSessionParticipant) *ParticipantListResponse {
	resp := &ParticipantListResponse{
		GroupSessionID: sessionID,
		Participants:   make([]ParticipantResponse, 0, len(participants)),
	}

	for _, p := range participants {
		resp.Participants = append(resp.Participants, *FromDomainParticipant(p))
	}

	return resp
}
