package models

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// Request модели

// UpdatePolicyRequest запрос на изменение политики отмены
// Все поля опциональны - обновляются только переданные значения
type UpdatePolicyRequest struct {
	UserID    int64            `json:"userId"`
	Role      domain.ActorRole `json:"role,omitempty"`
	TrainerID int64            `json:"trainerId"`

	AdvanceNoticeHours        *int     `json:"advanceNoticeHours,omitempty"`
	ChargeCancellationFee     *bool    `json:"chargeCancellationFee,omitempty"`
	CancellationFeeAmount     *float64 `json:"cancellationFeeAmount,omitempty"`
	CancellationFeePercentage *float64 `json:"cancellationFeePercentage,omitempty"`

	ChargeNoShowFee     *bool    `json:"chargeNoShowFee,omitempty"`
	NoShowFeeAmount     *float64 `json:"noShowFeeAmount,omitempty"`
	NoShowFeePercentage *float64 `json:"noShowFeePercentage,omitempty"`

	MaxReschedulesPerSession     *int `json:"maxReschedulesPerSession,omitempty"`
	RescheduleAdvanceNoticeHours *int `json:"rescheduleAdvanceNoticeHours,omitempty"`

	FirstTimeClientGrace *bool `json:"firstTimeClientGrace,omitempty"`
	EmergencyExceptions  *bool `json:"emergencyExceptions,omitempty"`
	IsActive             *bool `json:"isActive,omitempty"`
	AutoApplyPolicies    *bool `json:"autoApplyPolicies,omitempty"`
}

// ApplyToPolicy применяет переданные поля к политике
func (r *UpdatePolicyRequest) ApplyToPolicy(p *domain.CancellationPolicy) {
	if r.AdvanceNoticeHours != nil {
		p.AdvanceNoticeHours = *r.AdvanceNoticeHours
	}
	if r.ChargeCancellationFee != nil {
		p.ChargeCancellationFee = *r.ChargeCancellationFee
	}
	if r.CancellationFeeAmount != nil {
		p.CancellationFeeAmount = *r.CancellationFeeAmount
	}
	if r.CancellationFeePercentage != nil {
		p.CancellationFeePercentage = r.CancellationFeePercentage
	}
	if r.ChargeNoShowFee != nil {
		p.ChargeNoShowFee = *r.ChargeNoShowFee
	}
	if r.NoShowFeeAmount != nil {
		p.NoShowFeeAmount = *r.NoShowFeeAmount
	}
	if r.NoShowFeePercentage != nil {
		p.NoShowFeePercentage = r.NoShowFeePercentage
	}
	if r.MaxReschedulesPerSession != nil {
		p.MaxReschedulesPerSession = *r.MaxReschedulesPerSession
	}
	if r.RescheduleAdvanceNoticeHours != nil {
		p.RescheduleAdvanceNoticeHours = *r.RescheduleAdvanceNoticeHours
	}
	if r.FirstTimeClientGrace != nil {
		p.FirstTimeClientGrace = *r.FirstTimeClientGrace
	}
	if r.EmergencyExceptions != nil {
		p.EmergencyExceptions = *r.EmergencyExceptions
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	if r.AutoApplyPolicies != nil {
		p.AutoApplyPolicies = *r.AutoApplyPolicies
	}
}

// Response модели

// PolicyResponse политика отмены тренера
type PolicyResponse struct {
	TrainerID int64 `json:"trainerId"`

	AdvanceNoticeHours        int      `json:"advanceNoticeHours"`
	ChargeCancellationFee     bool     `json:"chargeCancellationFee"`
	CancellationFeeAmount     float64  `json:"cancellationFeeAmount"`
	CancellationFeePercentage *float64 `json:"cancellationFeePercentage,omitempty"`

	ChargeNoShowFee     bool     `json:"chargeNoShowFee"`
	NoShowFeeAmount     float64  `json:"noShowFeeAmount"`
	NoShowFeePercentage *float64 `json:"noShowFeePercentage,omitempty"`

	MaxReschedulesPerSession     int `json:"maxReschedulesPerSession"`
	RescheduleAdvanceNoticeHours int `json:"rescheduleAdvanceNoticeHours"`

	FirstTimeClientGrace bool `json:"firstTimeClientGrace"`
	EmergencyExceptions  bool `json:"emergencyExceptions"`
	IsActive             bool `json:"isActive"`
	AutoApplyPolicies    bool `json:"autoApplyPolicies"`

	// IsDefault true, если тренер ещё не сохранял свою политику
	IsDefault bool       `json:"isDefault"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.CancellationPolicy, isDefault bool) *PolicyResponse {
	if p == nil {
		return nil
	}

	resp := &PolicyResponse{
		TrainerID:                    p.TrainerID,
		AdvanceNoticeHours:           p.AdvanceNoticeHours,
		ChargeCancellationFee:        p.ChargeCancellationFee,
		CancellationFeeAmount:        p.CancellationFeeAmount,
		CancellationFeePercentage:    p.CancellationFeePercentage,
		ChargeNoShowFee:              p.ChargeNoShowFee,
		NoShowFeeAmount:              p.NoShowFeeAmount,
		NoShowFeePercentage:          p.NoShowFeePercentage,
		MaxReschedulesPerSession:     p.MaxReschedulesPerSession,
		RescheduleAdvanceNoticeHours: p.RescheduleAdvanceNoticeHours,
		FirstTimeClientGrace:         p.FirstTimeClientGrace,
		EmergencyExceptions:          p.EmergencyExceptions,
		IsActive:                     p.IsActive,
		AutoApplyPolicies:            p.AutoApplyPolicies,
		IsDefault:                    isDefault,
	}

	if !isDefault {
		resp.CreatedAt = &p.CreatedAt
		resp.UpdatedAt = &p.UpdatedAt
	}

	return resp
}
