package domain

import (
	"math"
	"time"
)

// CancellationPolicy политика отмены тренера (одна на тренера)
type CancellationPolicy struct {
	TrainerID int64

	AdvanceNoticeHours        int
	ChargeCancellationFee     bool
	CancellationFeeAmount     float64
	CancellationFeePercentage *float64 // если задан - приоритетнее фиксированной суммы

	ChargeNoShowFee     bool
	NoShowFeeAmount     float64
	NoShowFeePercentage *float64

	MaxReschedulesPerSession     int
	RescheduleAdvanceNoticeHours int

	FirstTimeClientGrace bool
	EmergencyExceptions  bool
	IsActive             bool
	AutoApplyPolicies    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultCancellationPolicy политика, действующая пока тренер не сохранил свою
// Штрафы выключены, переносы ограничены значениями по умолчанию
func DefaultCancellationPolicy(trainerID int64) *CancellationPolicy {
	return &CancellationPolicy{
		TrainerID:                    trainerID,
		AdvanceNoticeHours:           DefaultAdvanceNoticeHours,
		MaxReschedulesPerSession:     DefaultMaxReschedulesPerSession,
		RescheduleAdvanceNoticeHours: DefaultRescheduleAdvanceNoticeHours,
		FirstTimeClientGrace:         true,
		EmergencyExceptions:          true,
		IsActive:                     true,
		AutoApplyPolicies:            true,
	}
}

// Enforced true, если политика должна применяться автоматически
func (p *CancellationPolicy) Enforced() bool {
	return p != nil && p.IsActive && p.AutoApplyPolicies
}

// CancellationFee штраф за позднюю отмену для цены price
func (p *CancellationPolicy) CancellationFee(price float64) float64 {
	return computeFee(price, p.CancellationFeePercentage, p.CancellationFeeAmount)
}

// NoShowFee штраф за неявку для цены price
func (p *CancellationPolicy) NoShowFee(price float64) float64 {
	return computeFee(price, p.NoShowFeePercentage, p.NoShowFeeAmount)
}

func computeFee(price float64, percentage *float64, amount float64) float64 {
	if percentage != nil && *percentage > 0 {
		return roundMoney(price * (*percentage / 100))
	}
	return roundMoney(amount)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// CancellationInput данные для расчёта штрафа при отмене
type CancellationInput struct {
	Policy      *CancellationPolicy // nil - политики нет
	Price       float64
	CancelledBy ActorRole
	NoticeHours float64
	IsEmergency bool
	// Количество прошлых отмен этим клиентом по его инициативе
	PriorClientCancellations int
}

// FeeDecision результат работы движка политик
type FeeDecision struct {
	PolicyApplied bool
	FeeApplied    bool
	FeeAmount     float64
	FeeWaived     bool
	WaiverReason  *string
}

// EvaluateCancellation считает штраф и отказ от него при отмене сессии
//
// Штраф начисляется только при отмене клиентом с уведомлением меньше AdvanceNoticeHours.
// Отказ от штрафа (первое совпадение): у клиента нет прошлых отмен по своей инициативе
// при FirstTimeClientGrace (кто бы ни отменял), затем экстренная отмена при EmergencyExceptions.
func EvaluateCancellation(in CancellationInput) FeeDecision {
	if !in.Policy.Enforced() {
		return FeeDecision{}
	}

	p := in.Policy
	decision := FeeDecision{PolicyApplied: true}

	var fee float64
	computed := false
	if in.CancelledBy == ActorClient && in.NoticeHours < float64(p.AdvanceNoticeHours) && p.ChargeCancellationFee {
		fee = p.CancellationFee(in.Price)
		computed = true
	}

	switch {
	case p.FirstTimeClientGrace && in.PriorClientCancellations == 0:
		decision.FeeWaived = true
		decision.WaiverReason = strPtr(WaiverFirstTimeClient)
	case in.IsEmergency && p.EmergencyExceptions:
		decision.FeeWaived = true
		decision.WaiverReason = strPtr(WaiverEmergency)
	}

	decision.FeeApplied = computed && !decision.FeeWaived
	if decision.FeeApplied {
		decision.FeeAmount = fee
	}

	return decision
}

// EvaluateNoShow считает штраф за неявку. Окно уведомления не учитывается
func EvaluateNoShow(policy *CancellationPolicy, price float64, party NoShowParty) FeeDecision {
	if !policy.Enforced() {
		return FeeDecision{}
	}

	decision := FeeDecision{PolicyApplied: true}
	if party.IncludesClient() && policy.ChargeNoShowFee {
		decision.FeeApplied = true
		decision.FeeAmount = policy.NoShowFee(price)
	}
	return decision
}

func strPtr(s string) *string {
	return &s
}
