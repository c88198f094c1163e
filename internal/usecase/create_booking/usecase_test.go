package create_booking

import (
	"context"
	"errors"
	"io"
	"sync"
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

var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func at(hh, mm int) time.Time {
	return monday.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

type fixture struct {
	store    *usecasetest.Store
	users    *usecasetest.Users
	notifier *usecasetest.Notifier
	metrics  *usecasetest.Metrics
	uc       *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := usecasetest.NewStore()
	store.AddAvailability(&domain.AvailabilitySlot{
		TrainerID:              trainerID,
		DayOfWeek:              0,
		StartTime:              "09:00",
		EndTime:                "12:00",
		SessionDurationMinutes: 60,
		IsAvailable:            true,
		IsRecurring:            true,
	})

	f := &fixture{
		store:    store,
		users:    &usecasetest.Users{},
		notifier: &usecasetest.Notifier{},
		metrics:  &usecasetest.Metrics{},
	}
	f.uc = NewUseCase(
		&usecasetest.BookingRepo{S: store},
		&usecasetest.AvailabilityRepo{S: store},
		f.users,
		f.notifier,
		&usecasetest.TxManager{Store: store},
		f.metrics,
		logger.NewWithWriter(io.Discard, "error"),
	)
	f.uc.timeProvider = &usecasetest.Clock{T: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}
	return f
}

func request(start, end time.Time) *Request {
	return &Request{
		ActorID:     clientID,
		TrainerID:   trainerID,
		ClientID:    clientID,
		Start:       start,
		End:         end,
		SessionType: "strength",
		Price:       100,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), request(at(10, 0), at(11, 0)))
	require.NoError(t, err)

	b := resp.Booking
	assert.NotZero(t, b.ID)
	assert.Equal(t, domain.StatusScheduled, b.Status)
	assert.Equal(t, 60, b.DurationMinutes)
	assert.Equal(t, []int64{trainerID}, f.store.LockedTrainers)

	require.Len(t, f.notifier.Sent, 1)
	assert.Equal(t, trainerID, f.notifier.Sent[0].UserID, "client booked, trainer is notified")
	assert.Equal(t, domain.NotifyBookingCreated, f.notifier.Sent[0].Category)
	assert.Equal(t, []string{"create_booking/created"}, f.metrics.Events)
}

func TestCreateBooking_Conflict(t *testing.T) {
	f := newFixture(t)
	f.store.AddBooking(&domain.SessionBooking{
		TrainerID: trainerID, ClientID: 9,
		ScheduledStart: at(10, 0), ScheduledEnd: at(11, 0),
		Status: domain.StatusConfirmed,
	})

	_, err := f.uc.Execute(context.Background(), request(at(10, 30), at(11, 30)))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.notifier.Sent)
	assert.Len(t, f.store.Bookings(), 1)
}

func TestCreateBooking_TouchingIntervalsDoNotConflict(t *testing.T) {
	f := newFixture(t)
	f.store.AddBooking(&domain.SessionBooking{
		TrainerID: trainerID, ClientID: 9,
		ScheduledStart: at(10, 0), ScheduledEnd: at(11, 0),
		Status: domain.StatusConfirmed,
	})

	_, err := f.uc.Execute(context.Background(), request(at(11, 0), at(12, 0)))
	require.NoError(t, err)
}

func TestCreateBooking_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.store.AddBooking(&domain.SessionBooking{
		TrainerID: trainerID, ClientID: 9,
		ScheduledStart: at(10, 0), ScheduledEnd: at(11, 0),
		Status: domain.StatusCancelled,
	})

	_, err := f.uc.Execute(context.Background(), request(at(10, 0), at(11, 0)))
	require.NoError(t, err)
}

func TestCreateBooking_OutsideAvailability(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
	}{
		{"before window", at(8, 0), at(9, 0)},
		{"crosses window end", at(11, 30), at(12, 30)},
		{"wrong day", at(10, 0).AddDate(0, 0, 1), at(11, 0).AddDate(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.uc.Execute(context.Background(), request(tt.start, tt.end))
			assert.ErrorIs(t, err, ErrTrainerUnavailable)
		})
	}
}

func TestCreateBooking_SpecificDateOverride(t *testing.T) {
	f := newFixture(t)
	date := monday
	f.store.AddAvailability(&domain.AvailabilitySlot{
		TrainerID:    trainerID,
		DayOfWeek:    0,
		StartTime:    "14:00",
		EndTime:      "16:00",
		IsAvailable:  true,
		SpecificDate: &date,
	})

	_, err := f.uc.Execute(context.Background(), request(at(10, 0), at(11, 0)))
	assert.ErrorIs(t, err, ErrTrainerUnavailable, "weekly row is overridden for this date")

	_, err = f.uc.Execute(context.Background(), request(at(14, 0), at(15, 0)))
	require.NoError(t, err)
}

func TestCreateBooking_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{"end before start", func(r *Request) { r.End = r.Start.Add(-time.Hour) }, ErrInvalidInput},
		{"too short", func(r *Request) { r.End = r.Start.Add(10 * time.Minute) }, ErrInvalidInput},
		{"missing trainer", func(r *Request) { r.TrainerID = 0 }, ErrInvalidInput},
		{"negative price", func(r *Request) { r.Price = -1 }, ErrInvalidInput},
		{"empty type", func(r *Request) { r.SessionType = " " }, ErrInvalidInput},
		{"in the past", func(r *Request) {
			r.Start = time.Date(2025, 2, 24, 10, 0, 0, 0, time.UTC)
			r.End = r.Start.Add(time.Hour)
		}, ErrStartInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(at(10, 0), at(11, 0))
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateBooking_UnknownUsers(t *testing.T) {
	f := newFixture(t)
	f.users.Missing = map[int64]bool{clientID: true}

	_, err := f.uc.Execute(context.Background(), request(at(10, 0), at(11, 0)))
	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.users.Missing = nil
	f.users.Err = errors.New("connection refused")
	_, err = f.uc.Execute(context.Background(), request(at(10, 0), at(11, 0)))
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestCreateBooking_StorageFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn = "BookingRepo.Create"

	_, err := f.uc.Execute(context.Background(), request(at(10, 0), at(11, 0)))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.store.Bookings())
	assert.Empty(t, f.notifier.Sent)
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)

	const clients = 8
	errs := make([]error, clients)
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := request(at(10, 0), at(11, 0))
			req.ClientID = int64(10 + i)
			req.ActorID = req.ClientID
			_, errs[i] = f.uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotConflict)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.store.Bookings(), 1)
	assert.Len(t, f.store.LockedTrainers, clients)
	assert.Len(t, f.notifier.Sent, 1)
}
