package reschedule_booking

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
	clientID  = int64(2)
)

var (
	monday  = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
	now     = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
)

func at(day time.Time, hh, mm int) time.Time {
	return day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

type fixture struct {
	store    *usecasetest.Store
	notifier *usecasetest.Notifier
	metrics  *usecasetest.Metrics
	uc       *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := usecasetest.NewStore()
	for _, day := range []int{0, 1} {
		store.AddAvailability(&domain.AvailabilitySlot{
			TrainerID:              trainerID,
			DayOfWeek:              day,
			StartTime:              "09:00",
			EndTime:                "18:00",
			SessionDurationMinutes: 60,
			IsAvailable:            true,
			IsRecurring:            true,
		})
	}

	f := &fixture{
		store:    store,
		notifier: &usecasetest.Notifier{},
		metrics:  &usecasetest.Metrics{},
	}
	f.uc = NewUseCase(
		&usecasetest.BookingRepo{S: store},
		&usecasetest.AvailabilityRepo{S: store},
		&usecasetest.PolicyRepo{S: store},
		f.notifier,
		&usecasetest.TxManager{Store: store},
		f.metrics,
		logger.NewWithWriter(io.Discard, "error"),
	)
	f.uc.timeProvider = &usecasetest.Clock{T: now}
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

func request(id int64, start time.Time) *Request {
	return &Request{
		BookingID: id,
		ActorID:   clientID,
		NewStart:  start,
		NewEnd:    start.Add(time.Hour),
		Reason:    "work trip",
	}
}

func TestRescheduleBooking_Success(t *testing.T) {
	f := newFixture(t)
	orig := f.booking(domain.StatusConfirmed, at(monday, 9, 0), nil)

	resp, err := f.uc.Execute(context.Background(), request(orig.ID, at(tuesday, 10, 0)))
	require.NoError(t, err)

	successor := f.store.Booking(resp.Booking.ID)
	assert.Equal(t, domain.StatusScheduled, successor.Status)
	require.NotNil(t, successor.OriginalSessionID)
	assert.Equal(t, orig.ID, *successor.OriginalSessionID)
	assert.Equal(t, at(tuesday, 10, 0), successor.ScheduledStart)
	assert.Equal(t, 60, successor.DurationMinutes)
	assert.Equal(t, 100.0, successor.Price)
	assert.Equal(t, "strength", successor.SessionType)

	old := f.store.Booking(orig.ID)
	assert.Equal(t, domain.StatusRescheduled, old.Status)
	require.NotNil(t, old.RescheduleReason)
	assert.Equal(t, "work trip", *old.RescheduleReason)
	require.NotNil(t, old.RescheduledBy)
	assert.Equal(t, clientID, *old.RescheduledBy)

	assert.Equal(t, []int64{trainerID}, f.store.LockedTrainers)
	require.Len(t, f.notifier.Sent, 1)
	assert.Equal(t, trainerID, f.notifier.Sent[0].UserID)
	assert.Equal(t, domain.NotifyBookingRescheduled, f.notifier.Sent[0].Category)
	assert.Equal(t, []string{"reschedule_booking/rescheduled"}, f.metrics.Events)
}

func TestRescheduleBooking_OverlapWithItselfAllowed(t *testing.T) {
	f := newFixture(t)
	orig := f.booking(domain.StatusScheduled, at(monday, 9, 0), nil)

	resp, err := f.uc.Execute(context.Background(), request(orig.ID, at(monday, 9, 30)))
	require.NoError(t, err)
	assert.Equal(t, at(monday, 9, 30), resp.Booking.ScheduledStart)
}

func TestRescheduleBooking_ChainLimit(t *testing.T) {
	f := newFixture(t)
	first := f.booking(domain.StatusRescheduled, at(monday, 9, 0), nil)
	second := f.booking(domain.StatusRescheduled, at(monday, 11, 0), &first.ID)
	third := f.booking(domain.StatusConfirmed, at(monday, 13, 0), &second.ID)

	_, err := f.uc.Execute(context.Background(), request(third.ID, at(tuesday, 10, 0)))
	require.ErrorIs(t, err, ErrRescheduleLimit)
	assert.True(t, errors.Is(err, domain.ErrPolicyViolation))
	assert.Equal(t, domain.StatusConfirmed, f.store.Booking(third.ID).Status)
	assert.Len(t, f.store.Bookings(), 3)
	assert.Empty(t, f.notifier.Sent)
}

func TestRescheduleBooking_SecondInChainAllowed(t *testing.T) {
	f := newFixture(t)
	first := f.booking(domain.StatusRescheduled, at(monday, 9, 0), nil)
	second := f.booking(domain.StatusConfirmed, at(monday, 11, 0), &first.ID)

	resp, err := f.uc.Execute(context.Background(), request(second.ID, at(tuesday, 10, 0)))
	require.NoError(t, err)
	assert.Equal(t, second.ID, *resp.Booking.OriginalSessionID)
}

func TestRescheduleBooking_CustomLimit(t *testing.T) {
	f := newFixture(t)
	p := domain.DefaultCancellationPolicy(trainerID)
	p.MaxReschedulesPerSession = 0
	f.store.SetPolicy(p)
	orig := f.booking(domain.StatusConfirmed, at(monday, 9, 0), nil)

	_, err := f.uc.Execute(context.Background(), request(orig.ID, at(tuesday, 10, 0)))
	require.ErrorIs(t, err, ErrRescheduleLimit)
}

func TestRescheduleBooking_InsufficientNotice(t *testing.T) {
	f := newFixture(t)
	p := domain.DefaultCancellationPolicy(trainerID)
	p.RescheduleAdvanceNoticeHours = 72
	f.store.SetPolicy(p)
	orig := f.booking(domain.StatusConfirmed, at(monday, 9, 0), nil) // 49 часов до начала

	_, err := f.uc.Execute(context.Background(), request(orig.ID, at(tuesday, 10, 0)))
	require.ErrorIs(t, err, ErrInsufficientNotice)
	assert.Equal(t, []string{"reschedule_booking/rejected"}, f.metrics.Events)
}

func TestRescheduleBooking_InactivePolicySkipsLimits(t *testing.T) {
	f := newFixture(t)
	p := domain.DefaultCancellationPolicy(trainerID)
	p.RescheduleAdvanceNoticeHours = 72
	p.MaxReschedulesPerSession = 0
	p.IsActive = false
	f.store.SetPolicy(p)
	orig := f.booking(domain.StatusConfirmed, at(monday, 9, 0), nil)

	_, err := f.uc.Execute(context.Background(), request(orig.ID, at(tuesday, 10, 0)))
	require.NoError(t, err)
}

func TestRescheduleBooking_Conflict(t *testing.T) {
	f := newFixture(t)
	orig := f.booking(domain.StatusConfirmed, at(monday, 9, 0), nil)
	f.booking(domain.StatusScheduled, at(tuesday, 10, 30), nil)

	_, err := f.uc.Execute(context.Background(), request(orig.ID, at(tuesday, 10, 0)))
	require.ErrorIs(t, err, ErrSlotConflict)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, domain.StatusConfirmed, f.store.Booking(orig.ID).Status)
}

func TestRescheduleBooking_TrainerUnavailable(t *testing.T) {
	f := newFixture(t)
	orig := f.booking(domain.StatusConfirmed, at(monday, 9, 0), nil)

	_, err := f.uc.Execute(context.Background(), request(orig.ID, at(tuesday, 17, 30)))
	require.ErrorIs(t, err, ErrTrainerUnavailable)
}

func TestRescheduleBooking_InvalidStatus(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow, domain.StatusRescheduled,
	} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			orig := f.booking(status, at(monday, 9, 0), nil)

			_, err := f.uc.Execute(context.Background(), request(orig.ID, at(tuesday, 10, 0)))
			require.ErrorIs(t, err, ErrCannotReschedule)
			assert.True(t, errors.Is(err, domain.ErrInvalidStateTransition))
		})
	}
}

func TestRescheduleBooking_Errors(t *testing.T) {
	f := newFixture(t)
	orig := f.booking(domain.StatusConfirmed, at(monday, 9, 0), nil)

	stranger := request(orig.ID, at(tuesday, 10, 0))
	stranger.ActorID = 99
	_, err := f.uc.Execute(context.Background(), stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.uc.Execute(context.Background(), request(12345, at(tuesday, 10, 0)))
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.uc.Execute(context.Background(), request(orig.ID, now.Add(-time.Hour)))
	assert.ErrorIs(t, err, ErrStartInPast)

	bad := request(orig.ID, at(tuesday, 10, 0))
	bad.NewEnd = bad.NewStart
	_, err = f.uc.Execute(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	admin := request(orig.ID, at(tuesday, 10, 0))
	admin.ActorID = 500
	admin.ActorRole = domain.ActorAdmin
	resp, err := f.uc.Execute(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, int64(500), *resp.Original.RescheduledBy)
}

func TestRescheduleBooking_AtomicOnCreateFailure(t *testing.T) {
	f := newFixture(t)
	orig := f.booking(domain.StatusConfirmed, at(monday, 9, 0), nil)
	f.store.FailOn = "BookingRepo.Create"

	_, err := f.uc.Execute(context.Background(), request(orig.ID, at(tuesday, 10, 0)))
	require.ErrorIs(t, err, domain.ErrInternal)

	assert.Equal(t, domain.StatusConfirmed, f.store.Booking(orig.ID).Status)
	assert.Nil(t, f.store.Booking(orig.ID).RescheduleReason)
	assert.Len(t, f.store.Bookings(), 1)
	assert.Empty(t, f.notifier.Sent)
}

// staleTrainerRepo отдаёт устаревшего тренера при чтении без блокировки
type staleTrainerRepo struct {
	*usecasetest.BookingRepo
	trainerID int64
}

func (r *staleTrainerRepo) GetByID(ctx context.Context, id int64) (*domain.SessionBooking, error) {
	b, err := r.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.TrainerID = r.trainerID
	return b, nil
}

func TestRescheduleBooking_LocksCurrentTrainerAfterConcurrentChange(t *testing.T) {
	f := newFixture(t)
	orig := f.booking(domain.StatusConfirmed, at(monday, 9, 0), nil)
	f.booking(domain.StatusScheduled, at(tuesday, 10, 0), nil)
	f.uc.bookingRepo = &staleTrainerRepo{BookingRepo: &usecasetest.BookingRepo{S: f.store}, trainerID: 7}

	_, err := f.uc.Execute(context.Background(), request(orig.ID, at(tuesday, 10, 0)))
	require.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, []int64{7, trainerID}, f.store.LockedTrainers)

	resp, err := f.uc.Execute(context.Background(), request(orig.ID, at(tuesday, 12, 0)))
	require.NoError(t, err)
	assert.Equal(t, trainerID, resp.Booking.TrainerID)
	assert.Equal(t, []int64{7, trainerID, 7, trainerID}, f.store.LockedTrainers)
}
