package cancel_group_booking

import (
	"context"
	"errors"
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
	clientID  = int64(1000) // первый confirmed участник
)

type fixture struct {
	store    *usecasetest.Store
	notifier *usecasetest.Notifier
	metrics  *usecasetest.Metrics
	uc       *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := usecasetest.NewStore()
	f := &fixture{
		store:    store,
		notifier: &usecasetest.Notifier{},
		metrics:  &usecasetest.Metrics{},
	}
	f.uc = NewUseCase(
		&usecasetest.GroupRepo{S: store},
		f.notifier,
		&usecasetest.TxManager{Store: store},
		f.metrics,
		logger.NewWithWriter(io.Discard, "error"),
	)
	return f
}

// session сессия с confirmed клиентами 1000..1000+taken-1 и очередью 2000..2000+waiting-1
func (f *fixture) session(capacity, taken, waiting int) *domain.GroupSession {
	g := f.store.AddSession(&domain.GroupSession{
		TrainerID:            trainerID,
		Title:                "Evening yoga",
		ScheduledDate:        time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC),
		DurationMinutes:      60,
		Price:                20,
		MaxParticipants:      capacity,
		CurrentParticipants:  taken,
		TotalRevenue:         float64(taken) * 20,
		AllowWaitlist:        waiting > 0,
		BookingDeadlineHours: 2,
	})
	for i := 0; i < taken; i++ {
		f.store.AddParticipant(&domain.GroupSessionParticipant{
			GroupSessionID: g.ID,
			ClientID:       int64(1000 + i),
			BookingStatus:  domain.ParticipantConfirmed,
			AmountPaid:     20,
		})
	}
	for i := 0; i < waiting; i++ {
		position := i + 1
		f.store.AddParticipant(&domain.GroupSessionParticipant{
			GroupSessionID:   g.ID,
			ClientID:         int64(2000 + i),
			BookingStatus:    domain.ParticipantWaitlisted,
			WaitlistPosition: &position,
			AmountPaid:       25,
		})
	}
	return g
}

func participant(t *testing.T, store *usecasetest.Store, sessionID, client int64) *domain.GroupSessionParticipant {
	t.Helper()
	for _, p := range store.Participants(sessionID) {
		if p.ClientID == client {
			return p
		}
	}
	t.Fatalf("participant %d not found", client)
	return nil
}

func request(sessionID, client int64) *Request {
	return &Request{SessionID: sessionID, ClientID: client, ActorID: client}
}

func TestCancelGroupBooking_PromotesWaitlistHead(t *testing.T) {
	f := newFixture(t)
	g := f.session(10, 10, 2)

	resp, err := f.uc.Execute(context.Background(), request(g.ID, clientID))
	require.NoError(t, err)

	assert.Equal(t, domain.ParticipantCancelled, participant(t, f.store, g.ID, clientID).BookingStatus)

	require.NotNil(t, resp.Promoted)
	assert.Equal(t, int64(2000), resp.Promoted.ClientID)
	promoted := participant(t, f.store, g.ID, 2000)
	assert.Equal(t, domain.ParticipantConfirmed, promoted.BookingStatus)
	assert.Nil(t, promoted.WaitlistPosition)

	second := participant(t, f.store, g.ID, 2001)
	assert.Equal(t, domain.ParticipantWaitlisted, second.BookingStatus)
	assert.Equal(t, 2, *second.WaitlistPosition)

	stored := f.store.Session(g.ID)
	assert.Equal(t, 10, stored.CurrentParticipants)
	assert.Equal(t, 9*20.0+25, stored.TotalRevenue)

	require.Len(t, f.notifier.Sent, 2)
	assert.Equal(t, domain.NotifyGroupBookingCancelled, f.notifier.Sent[0].Category)
	assert.Equal(t, int64(2000), f.notifier.Sent[1].UserID)
	assert.Equal(t, domain.NotifyGroupWaitlistPromoted, f.notifier.Sent[1].Category)
	assert.Equal(t, []string{"cancel_group_booking/cancelled", "group_waitlist/promoted"}, f.metrics.Events)
}

func TestCancelGroupBooking_NoWaitlist(t *testing.T) {
	f := newFixture(t)
	g := f.session(10, 3, 0)

	resp, err := f.uc.Execute(context.Background(), request(g.ID, clientID))
	require.NoError(t, err)
	assert.Nil(t, resp.Promoted)

	stored := f.store.Session(g.ID)
	assert.Equal(t, 2, stored.CurrentParticipants)
	assert.Equal(t, 40.0, stored.TotalRevenue)
	assert.Len(t, f.notifier.Sent, 1)
}

func TestCancelGroupBooking_WaitlistedCancelDoesNotPromote(t *testing.T) {
	f := newFixture(t)
	g := f.session(2, 2, 2)

	resp, err := f.uc.Execute(context.Background(), request(g.ID, 2000))
	require.NoError(t, err)
	assert.Nil(t, resp.Promoted)

	cancelled := participant(t, f.store, g.ID, 2000)
	assert.Equal(t, domain.ParticipantCancelled, cancelled.BookingStatus)
	assert.Nil(t, cancelled.WaitlistPosition)
	assert.Equal(t, domain.ParticipantWaitlisted, participant(t, f.store, g.ID, 2001).BookingStatus)
	assert.Equal(t, 2, f.store.Session(g.ID).CurrentParticipants)
}

func TestCancelGroupBooking_TwiceFails(t *testing.T) {
	f := newFixture(t)
	g := f.session(5, 1, 0)

	_, err := f.uc.Execute(context.Background(), request(g.ID, clientID))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request(g.ID, clientID))
	require.ErrorIs(t, err, ErrParticipantNotFound)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCancelGroupBooking_Access(t *testing.T) {
	f := newFixture(t)
	g := f.session(5, 3, 0)

	stranger := request(g.ID, clientID)
	stranger.ActorID = 77
	_, err := f.uc.Execute(context.Background(), stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	byTrainer := request(g.ID, clientID)
	byTrainer.ActorID = trainerID
	_, err = f.uc.Execute(context.Background(), byTrainer)
	assert.NoError(t, err)

	byAdmin := request(g.ID, clientID+1)
	byAdmin.ActorID = 500
	byAdmin.ActorRole = domain.ActorAdmin
	_, err = f.uc.Execute(context.Background(), byAdmin)
	assert.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request(12345, clientID))
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = f.uc.Execute(context.Background(), request(0, clientID))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancelGroupBooking_AtomicOnCounterFailure(t *testing.T) {
	f := newFixture(t)
	g := f.session(10, 10, 1)
	f.store.FailOn = "SyncCounters"

	_, err := f.uc.Execute(context.Background(), request(g.ID, clientID))
	require.ErrorIs(t, err, domain.ErrInternal)

	assert.Equal(t, domain.ParticipantConfirmed, participant(t, f.store, g.ID, clientID).BookingStatus)
	assert.Equal(t, domain.ParticipantWaitlisted, participant(t, f.store, g.ID, 2000).BookingStatus)
	assert.Empty(t, f.notifier.Sent)
}
