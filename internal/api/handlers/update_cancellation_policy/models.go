package update_cancellation_policy

import (
	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/service/policy/models"
)

// UpdateCancellationPolicyRequest HTTP request model
// Все поля опциональны, диапазоны дополнительно проверяет сервис
type UpdateCancellationPolicyRequest struct {
	AdvanceNoticeHours        *int     `json:"advanceNoticeHours,omitempty" validate:"omitempty,min=0"`
	ChargeCancellationFee     *bool    `json:"chargeCancellationFee,omitempty"`
	CancellationFeeAmount     *float64 `json:"cancellationFeeAmount,omitempty" validate:"omitempty,min=0"`
	CancellationFeePercentage *float64 `json:"cancellationFeePercentage,omitempty" validate:"omitempty,min=0,max=100"`

	ChargeNoShowFee     *bool    `json:"chargeNoShowFee,omitempty"`
	NoShowFeeAmount     *float64 `json:"noShowFeeAmount,omitempty" validate:"omitempty,min=0"`
	NoShowFeePercentage *float64 `json:"noShowFeePercentage,omitempty" validate:"omitempty,min=0,max=100"`

	MaxReschedulesPerSession     *int `json:"maxReschedulesPerSession,omitempty" validate:"omitempty,min=0"`
	RescheduleAdvanceNoticeHours *int `json:"rescheduleAdvanceNoticeHours,omitempty" validate:"omitempty,min=0"`

	FirstTimeClientGrace *bool `json:"firstTimeClientGrace,omitempty"`
	EmergencyExceptions  *bool `json:"emergencyExceptions,omitempty"`
	IsActive             *bool `json:"isActive,omitempty"`
	AutoApplyPolicies    *bool `json:"autoApplyPolicies,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateCancellationPolicyRequest) ToServiceRequest(userID int64, role domain.ActorRole, trainerID int64) *models.UpdatePolicyRequest {
	return &models.UpdatePolicyRequest{
		UserID:                       userID,
		Role:                         role,
		TrainerID:                    trainerID,
		AdvanceNoticeHours:           r.AdvanceNoticeHours,
		ChargeCancellationFee:        r.ChargeCancellationFee,
		CancellationFeeAmount:        r.CancellationFeeAmount,
		CancellationFeePercentage:    r.CancellationFeePercentage,
		ChargeNoShowFee:              r.ChargeNoShowFee,
		NoShowFeeAmount:              r.NoShowFeeAmount,
		NoShowFeePercentage:          r.NoShowFeePercentage,
		MaxReschedulesPerSession:     r.MaxReschedulesPerSession,
		RescheduleAdvanceNoticeHours: r.RescheduleAdvanceNoticeHours,
		FirstTimeClientGrace:         r.FirstTimeClientGrace,
		EmergencyExceptions:          r.EmergencyExceptions,
		IsActive:                     r.IsActive,
		AutoApplyPolicies:            r.AutoApplyPolicies,
	}
}
