package bookings

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TrainingService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-TrainingService/pkg/logger"
	"github.com/m04kA/SMC-TrainingService/pkg/ptr"
)

const (
	trainerID = int64(1)
	clientID  = int64(2)
)

var monday = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store    *usecasetest.Store
	notifier *usecasetest.Notifier
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := usecasetest.NewStore()
	f := &fixture{store: store, notifier: &usecasetest.Notifier{}}
	f.svc = NewService(
		&usecasetest.BookingRepo{S: store},
		&usecasetest.CancellationRepo{S: store},
		f.notifier,
		&usecasetest.TxManager{Store: store},
		&usecasetest.Metrics{},
		logger.NewWithWriter(io.Discard, "error"),
	)
	return f
}

func (f *fixture) booking(status domain.BookingStatus, start time.Time, original *int64) *domain.SessionBooking {
	return f.store.AddBooking(&domain.SessionBooking{
		TrainerID:         trainerID,
		ClientID:          clientID,
		SessionType:       "strength",
		ScheduledStart:    start,
		ScheduledEnd:      start.Add(time.Hour),
		DurationMinutes:   60,
		Status:            status,
		Price:             100,
		OriginalSessionID: original,
	})
}

func TestService_GetByID_Access(t *testing.T) {
	f := newFixture(t)
	b := f.booking(domain.StatusConfirmed, monday, nil)

	resp, err := f.svc.GetByID(context.Background(), b.ID, clientID, "")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, trainerID, resp.TrainerID)

	_, err = f.svc.GetByID(context.Background(), b.ID, trainerID, "")
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), b.ID, 99, "")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), b.ID, 99, domain.ActorAdmin)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), 12345, clientID, "")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetClientBookings(t *testing.T) {
	f := newFixture(t)
	f.booking(domain.StatusConfirmed, monday, nil)
	f.booking(domain.StatusCancelled, monday.Add(2*time.Hour), nil)

	resp, err := f.svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		UserID: clientID, ClientID: clientID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = f.svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		UserID: clientID, ClientID: clientID, Status: ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "cancelled", resp.Bookings[0].Status)

	_, err = f.svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		UserID: clientID, ClientID: clientID, Status: ptr.Ptr("cancelled_by_user"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		UserID: trainerID, ClientID: clientID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetTrainerBookings(t *testing.T) {
	f := newFixture(t)
	f.booking(domain.StatusConfirmed, monday, nil)
	f.booking(domain.StatusRescheduled, monday.Add(2*time.Hour), nil)
	f.booking(domain.StatusScheduled, monday.AddDate(0, 0, 1), nil)

	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	resp, err := f.svc.GetTrainerBookings(context.Background(), &models.GetTrainerBookingsRequest{
		UserID: trainerID, TrainerID: trainerID, From: &from, To: &to,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "confirmed", resp.Bookings[0].Status)

	resp, err = f.svc.GetTrainerBookings(context.Background(), &models.GetTrainerBookingsRequest{
		UserID: trainerID, TrainerID: trainerID, From: &from, To: &to, IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	_, err = f.svc.GetTrainerBookings(context.Background(), &models.GetTrainerBookingsRequest{
		UserID: trainerID, TrainerID: trainerID, From: &to, To: &from,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.GetTrainerBookings(context.Background(), &models.GetTrainerBookingsRequest{
		UserID: clientID, TrainerID: trainerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetChain(t *testing.T) {
	f := newFixture(t)
	first := f.booking(domain.StatusRescheduled, monday, nil)
	second := f.booking(domain.StatusRescheduled, monday.Add(2*time.Hour), &first.ID)
	third := f.booking(domain.StatusScheduled, monday.Add(4*time.Hour), &second.ID)

	resp, err := f.svc.GetChain(context.Background(), third.ID, clientID, "")
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 3)
	assert.Equal(t, first.ID, resp.Bookings[0].ID)
	assert.Equal(t, third.ID, resp.Bookings[2].ID)
}

func TestService_GetCancellation(t *testing.T) {
	f := newFixture(t)
	b := f.booking(domain.StatusCancelled, monday, nil)
	open := f.booking(domain.StatusConfirmed, monday.Add(2*time.Hour), nil)
	f.store.AddCancellation(&domain.SessionCancellation{
		BookingID:   b.ID,
		ClientID:    clientID,
		TrainerID:   trainerID,
		CancelledBy: domain.ActorClient,
		FeeApplied:  true,
		FeeAmount:   20,
	})

	resp, err := f.svc.GetCancellation(context.Background(), b.ID, clientID, "")
	require.NoError(t, err)
	assert.Equal(t, "client", resp.CancelledBy)
	assert.Equal(t, 20.0, resp.FeeAmount)

	_, err = f.svc.GetCancellation(context.Background(), open.ID, clientID, "")
	assert.ErrorIs(t, err, ErrCancellationNotFound)
}

func TestService_TransitionFlow(t *testing.T) {
	f := newFixture(t)
	b := f.booking(domain.StatusScheduled, monday, nil)
	byTrainer := &models.TransitionRequest{UserID: trainerID}

	resp, err := f.svc.RequestConfirmation(context.Background(), b.ID, byTrainer)
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)

	resp, err = f.svc.Confirm(context.Background(), b.ID, &models.TransitionRequest{UserID: clientID})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	resp, err = f.svc.Start(context.Background(), b.ID, byTrainer)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", resp.Status)

	resp, err = f.svc.Complete(context.Background(), b.ID, &models.TransitionRequest{
		UserID: trainerID, Notes: ptr.Ptr("great form"),
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	stored := f.store.Booking(b.ID)
	assert.Equal(t, "great form", *stored.Notes)
	assert.True(t, *stored.ClientAttended)
	assert.True(t, *stored.TrainerAttended)

	// start без уведомления
	require.Len(t, f.notifier.Sent, 3)
	assert.Equal(t, domain.NotifyBookingConfirmed, f.notifier.Sent[1].Category)
	assert.Equal(t, trainerID, f.notifier.Sent[1].UserID)
	assert.Equal(t, domain.NotifyBookingCompleted, f.notifier.Sent[2].Category)
	assert.Equal(t, clientID, f.notifier.Sent[2].UserID)
}

func TestService_TransitionRejected(t *testing.T) {
	f := newFixture(t)
	scheduled := f.booking(domain.StatusScheduled, monday, nil)
	cancelled := f.booking(domain.StatusCancelled, monday.Add(2*time.Hour), nil)

	_, err := f.svc.Confirm(context.Background(), scheduled.ID, &models.TransitionRequest{UserID: trainerID})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = f.svc.Complete(context.Background(), cancelled.ID, &models.TransitionRequest{UserID: trainerID})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.RequestConfirmation(context.Background(), scheduled.ID, &models.TransitionRequest{UserID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.Confirm(context.Background(), 12345, &models.TransitionRequest{UserID: trainerID})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.Equal(t, domain.StatusScheduled, f.store.Booking(scheduled.ID).Status)
	assert.Empty(t, f.notifier.Sent)
}
