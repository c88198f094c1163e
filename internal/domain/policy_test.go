package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/pkg/ptr"
)

func feePolicy() *CancellationPolicy {
	p := DefaultCancellationPolicy(1)
	p.AdvanceNoticeHours = 24
	p.ChargeCancellationFee = true
	p.CancellationFeePercentage = ptr.Ptr(20.0)
	p.CancellationFeeAmount = 15
	p.FirstTimeClientGrace = false
	p.EmergencyExceptions = false
	return p
}

func TestEvaluateCancellation_PercentageFee(t *testing.T) {
	d := EvaluateCancellation(CancellationInput{
		Policy:                   feePolicy(),
		Price:                    100,
		CancelledBy:              ActorClient,
		NoticeHours:              5,
		PriorClientCancellations: 3,
	})

	assert.True(t, d.PolicyApplied)
	assert.True(t, d.FeeApplied)
	assert.Equal(t, 20.0, d.FeeAmount)
	assert.False(t, d.FeeWaived)
	assert.Nil(t, d.WaiverReason)
}

func TestEvaluateCancellation_FlatFeeWhenNoPercentage(t *testing.T) {
	p := feePolicy()
	p.CancellationFeePercentage = nil

	d := EvaluateCancellation(CancellationInput{Policy: p, Price: 100, CancelledBy: ActorClient, NoticeHours: -2, PriorClientCancellations: 1})
	assert.True(t, d.FeeApplied)
	assert.Equal(t, 15.0, d.FeeAmount)
}

func TestEvaluateCancellation_EnoughNotice(t *testing.T) {
	d := EvaluateCancellation(CancellationInput{Policy: feePolicy(), Price: 100, CancelledBy: ActorClient, NoticeHours: 24, PriorClientCancellations: 1})
	assert.True(t, d.PolicyApplied)
	assert.False(t, d.FeeApplied)
	assert.Zero(t, d.FeeAmount)
}

func TestEvaluateCancellation_TrainerNeverCharged(t *testing.T) {
	d := EvaluateCancellation(CancellationInput{Policy: feePolicy(), Price: 100, CancelledBy: ActorTrainer, NoticeHours: 1, PriorClientCancellations: 1})
	assert.False(t, d.FeeApplied)
}

func TestEvaluateCancellation_NoPolicy(t *testing.T) {
	inactive := feePolicy()
	inactive.IsActive = false
	manual := feePolicy()
	manual.AutoApplyPolicies = false

	for _, p := range []*CancellationPolicy{nil, inactive, manual} {
		d := EvaluateCancellation(CancellationInput{Policy: p, Price: 100, CancelledBy: ActorClient, NoticeHours: 1})
		assert.Equal(t, FeeDecision{}, d)
	}
}

func TestEvaluateCancellation_FirstTimeGrace(t *testing.T) {
	p := feePolicy()
	p.FirstTimeClientGrace = true
	p.EmergencyExceptions = true

	d := EvaluateCancellation(CancellationInput{Policy: p, Price: 100, CancelledBy: ActorClient, NoticeHours: 1, IsEmergency: true})
	assert.True(t, d.FeeWaived)
	assert.False(t, d.FeeApplied)
	assert.Zero(t, d.FeeAmount)
	require.NotNil(t, d.WaiverReason)
	assert.Equal(t, WaiverFirstTimeClient, *d.WaiverReason)

	// без вычисленного штрафа отказ всё равно фиксируется
	d = EvaluateCancellation(CancellationInput{Policy: p, Price: 100, CancelledBy: ActorClient, NoticeHours: 100})
	assert.True(t, d.FeeWaived)
}

func TestEvaluateCancellation_GraceRegardlessOfCanceller(t *testing.T) {
	p := feePolicy()
	p.FirstTimeClientGrace = true
	p.EmergencyExceptions = true

	for _, by := range []ActorRole{ActorTrainer, ActorAdmin, ActorSystem} {
		d := EvaluateCancellation(CancellationInput{Policy: p, Price: 100, CancelledBy: by, NoticeHours: 1, IsEmergency: true})
		assert.True(t, d.FeeWaived, by)
		assert.False(t, d.FeeApplied, by)
		require.NotNil(t, d.WaiverReason, by)
		assert.Equal(t, WaiverFirstTimeClient, *d.WaiverReason, by)
	}
}

func TestEvaluateCancellation_EmergencyWaiver(t *testing.T) {
	p := feePolicy()
	p.FirstTimeClientGrace = true
	p.EmergencyExceptions = true

	d := EvaluateCancellation(CancellationInput{Policy: p, Price: 80, CancelledBy: ActorClient, NoticeHours: 1, IsEmergency: true, PriorClientCancellations: 2})
	assert.True(t, d.FeeWaived)
	assert.False(t, d.FeeApplied)
	require.NotNil(t, d.WaiverReason)
	assert.Equal(t, WaiverEmergency, *d.WaiverReason)

	p.EmergencyExceptions = false
	d = EvaluateCancellation(CancellationInput{Policy: p, Price: 80, CancelledBy: ActorClient, NoticeHours: 1, IsEmergency: true, PriorClientCancellations: 2})
	assert.True(t, d.FeeApplied)
	assert.Equal(t, 16.0, d.FeeAmount)
}

func TestEvaluateNoShow(t *testing.T) {
	p := DefaultCancellationPolicy(1)
	p.ChargeNoShowFee = true
	p.NoShowFeePercentage = ptr.Ptr(50.0)

	d := EvaluateNoShow(p, 90, NoShowClient)
	assert.True(t, d.PolicyApplied)
	assert.True(t, d.FeeApplied)
	assert.Equal(t, 45.0, d.FeeAmount)

	d = EvaluateNoShow(p, 90, NoShowBoth)
	assert.True(t, d.FeeApplied)

	d = EvaluateNoShow(p, 90, NoShowTrainer)
	assert.True(t, d.PolicyApplied)
	assert.False(t, d.FeeApplied)

	p.NoShowFeePercentage = nil
	p.NoShowFeeAmount = 30
	d = EvaluateNoShow(p, 90, NoShowClient)
	assert.Equal(t, 30.0, d.FeeAmount)

	assert.Equal(t, FeeDecision{}, EvaluateNoShow(nil, 90, NoShowClient))
}

func TestNoShowParty_Attendance(t *testing.T) {
	c, tr := NoShowClient.Attendance()
	assert.False(t, c)
	assert.True(t, tr)

	c, tr = NoShowBoth.Attendance()
	assert.False(t, c)
	assert.False(t, tr)

	assert.Equal(t, "No-show: both", NoShowReason(NoShowBoth))
}
