package mark_no_show

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-TrainingService/pkg/logger"
)

const (
	trainerID = int64(1)
	clientID  = int64(2)
)

var start = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T, store *usecasetest.Store, notifier *usecasetest.Notifier) *UseCase {
	t.Helper()
	uc := NewUseCase(
		&usecasetest.BookingRepo{S: store},
		&usecasetest.PolicyRepo{S: store},
		&usecasetest.CancellationRepo{S: store},
		notifier,
		&usecasetest.TxManager{Store: store},
		&usecasetest.Metrics{},
		logger.NewWithWriter(io.Discard, "error"),
	)
	return uc
}

func addBooking(store *usecasetest.Store, status domain.BookingStatus) *domain.SessionBooking {
	return store.AddBooking(&domain.SessionBooking{
		TrainerID:      trainerID,
		ClientID:       clientID,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Hour),
		Status:         status,
		Price:          80,
	})
}

func noShowPolicy() *domain.CancellationPolicy {
	p := domain.DefaultCancellationPolicy(trainerID)
	p.ChargeNoShowFee = true
	p.NoShowFeeAmount = 50
	return p
}

func TestMarkNoShow_ClientChargedFlatFee(t *testing.T) {
	store := usecasetest.NewStore()
	store.SetPolicy(noShowPolicy())
	b := addBooking(store, domain.StatusConfirmed)
	notifier := &usecasetest.Notifier{}
	uc := newUseCase(t, store, notifier)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: b.ID, ActorID: trainerID, Party: domain.NoShowClient})
	require.NoError(t, err)

	c := resp.Cancellation
	assert.Equal(t, domain.ActorSystem, c.CancelledBy)
	assert.Equal(t, "No-show: client", c.Reason)
	assert.Zero(t, c.NoticeHours)
	assert.True(t, c.PolicyApplied)
	assert.True(t, c.FeeApplied)
	assert.InDelta(t, 50.0, c.FeeAmount, 0.001)

	stored := store.Booking(b.ID)
	assert.Equal(t, domain.StatusNoShow, stored.Status)
	require.NotNil(t, stored.ClientAttended)
	require.NotNil(t, stored.TrainerAttended)
	assert.False(t, *stored.ClientAttended)
	assert.True(t, *stored.TrainerAttended)

	require.Len(t, notifier.Sent, 1)
	assert.Equal(t, clientID, notifier.Sent[0].UserID)
	assert.Equal(t, domain.NotifyBookingNoShow, notifier.Sent[0].Category)
	assert.Equal(t, "50.00", notifier.Sent[0].Vars["fee_amount"])
}

func TestMarkNoShow_TrainerNoShowHasNoFee(t *testing.T) {
	store := usecasetest.NewStore()
	store.SetPolicy(noShowPolicy())
	b := addBooking(store, domain.StatusInProgress)
	uc := newUseCase(t, store, &usecasetest.Notifier{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: b.ID, ActorID: clientID, Party: domain.NoShowTrainer})
	require.NoError(t, err)
	assert.False(t, resp.Cancellation.FeeApplied)

	stored := store.Booking(b.ID)
	assert.True(t, *stored.ClientAttended)
	assert.False(t, *stored.TrainerAttended)
}

func TestMarkNoShow_BothAbsentPercentageFee(t *testing.T) {
	store := usecasetest.NewStore()
	p := noShowPolicy()
	pct := 50.0
	p.NoShowFeePercentage = &pct
	store.SetPolicy(p)
	b := addBooking(store, domain.StatusConfirmed)
	uc := newUseCase(t, store, &usecasetest.Notifier{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: b.ID, ActorID: trainerID, Party: domain.NoShowBoth})
	require.NoError(t, err)
	assert.InDelta(t, 40.0, resp.Cancellation.FeeAmount, 0.001)
	assert.Equal(t, "No-show: both", resp.Cancellation.Reason)
}

func TestMarkNoShow_InvalidTransition(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusScheduled, domain.StatusPending, domain.StatusCancelled, domain.StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			store := usecasetest.NewStore()
			b := addBooking(store, status)
			uc := newUseCase(t, store, &usecasetest.Notifier{})

			_, err := uc.Execute(context.Background(), &Request{BookingID: b.ID, ActorID: trainerID, Party: domain.NoShowClient})
			assert.ErrorIs(t, err, ErrCannotMarkNoShow)
			assert.Empty(t, store.Cancellations())
		})
	}
}

func TestMarkNoShow_InvalidParty(t *testing.T) {
	store := usecasetest.NewStore()
	b := addBooking(store, domain.StatusConfirmed)
	uc := newUseCase(t, store, &usecasetest.Notifier{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: b.ID, ActorID: trainerID, Party: "nobody"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
