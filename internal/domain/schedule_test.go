package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/pkg/ptr"
)

// 2025-03-03 - понедельник
var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hh, mm int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hh, mm, 0, 0, day.Location())
}

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{Start: at(monday, 10, 0), End: at(monday, 11, 0)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", base, true},
		{"inside", Interval{at(monday, 10, 15), at(monday, 10, 45)}, true},
		{"left overlap", Interval{at(monday, 9, 30), at(monday, 10, 30)}, true},
		{"right overlap", Interval{at(monday, 10, 30), at(monday, 11, 30)}, true},
		{"touching left", Interval{at(monday, 9, 0), at(monday, 10, 0)}, false},
		{"touching right", Interval{at(monday, 11, 0), at(monday, 12, 0)}, false},
		{"disjoint", Interval{at(monday, 13, 0), at(monday, 14, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestFindConflict(t *testing.T) {
	bookings := []*SessionBooking{
		{ID: 1, Status: StatusCancelled, ScheduledStart: at(monday, 9, 0), ScheduledEnd: at(monday, 10, 0)},
		{ID: 2, Status: StatusRescheduled, ScheduledStart: at(monday, 9, 0), ScheduledEnd: at(monday, 10, 0)},
		{ID: 3, Status: StatusConfirmed, ScheduledStart: at(monday, 10, 0), ScheduledEnd: at(monday, 11, 0)},
	}

	assert.Nil(t, FindConflict(bookings, NewInterval(at(monday, 9, 0), time.Hour), 0))

	c := FindConflict(bookings, NewInterval(at(monday, 10, 30), time.Hour), 0)
	require.NotNil(t, c)
	assert.Equal(t, int64(3), c.ID)

	assert.Nil(t, FindConflict(bookings, NewInterval(at(monday, 10, 30), time.Hour), 3))
}

func TestDayOfWeek(t *testing.T) {
	assert.Equal(t, 0, DayOfWeek(monday))
	assert.Equal(t, 6, DayOfWeek(monday.AddDate(0, 0, 6)))
}

func TestResolveAvailability_SpecificDateOverridesWeekly(t *testing.T) {
	rows := []*AvailabilitySlot{
		{ID: 1, DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00", IsAvailable: true, IsRecurring: true},
		{ID: 2, DayOfWeek: 0, StartTime: "14:00", EndTime: "16:00", IsAvailable: true, SpecificDate: ptr.Ptr(monday)},
	}

	windows := ResolveAvailability(rows, monday)
	require.Len(t, windows, 1)
	assert.Equal(t, at(monday, 14, 0), windows[0].Start)
	assert.Equal(t, at(monday, 16, 0), windows[0].End)

	nextMonday := monday.AddDate(0, 0, 7)
	windows = ResolveAvailability(rows, nextMonday)
	require.Len(t, windows, 1)
	assert.Equal(t, at(nextMonday, 9, 0), windows[0].Start)
}

func TestResolveAvailability_UnavailableOverrideClosesDay(t *testing.T) {
	rows := []*AvailabilitySlot{
		{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00", IsAvailable: true, IsRecurring: true},
		{DayOfWeek: 0, StartTime: "00:00", EndTime: "24:00", IsAvailable: false, SpecificDate: ptr.Ptr(monday)},
	}

	windows := ResolveAvailability(rows, monday)
	assert.Empty(t, windows)
	assert.False(t, IsAvailableAt(windows, at(monday, 10, 0)))
}

func TestResolveAvailability_IgnoresUnavailableWeeklyAndOtherDays(t *testing.T) {
	rows := []*AvailabilitySlot{
		{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00", IsAvailable: false},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
	}
	assert.Empty(t, ResolveAvailability(rows, monday))
}

func TestIsAvailableAt_HalfOpen(t *testing.T) {
	windows := []Interval{{Start: at(monday, 9, 0), End: at(monday, 12, 0)}}

	assert.True(t, IsAvailableAt(windows, at(monday, 9, 0)))
	assert.True(t, IsAvailableAt(windows, at(monday, 11, 59)))
	assert.False(t, IsAvailableAt(windows, at(monday, 12, 0)))
	assert.False(t, IsAvailableAt(windows, at(monday, 8, 59)))

	assert.True(t, FitsAvailability(windows, NewInterval(at(monday, 11, 0), time.Hour)))
	assert.False(t, FitsAvailability(windows, NewInterval(at(monday, 11, 30), time.Hour)))
}

func TestGenerateSlots_MondayScenario(t *testing.T) {
	rows := []*AvailabilitySlot{
		{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00", SessionDurationMinutes: 60, IsAvailable: true, IsRecurring: true},
	}
	bookings := []*SessionBooking{
		{ID: 7, Status: StatusConfirmed, ScheduledStart: at(monday, 10, 0), ScheduledEnd: at(monday, 11, 0)},
	}

	slots := GenerateSlots(ResolveAvailability(rows, monday), bookings, time.Hour, 30*time.Minute, time.Time{})

	require.Len(t, slots, 2)
	assert.Equal(t, at(monday, 9, 0), slots[0].Start)
	assert.Equal(t, at(monday, 10, 0), slots[0].End)
	assert.Equal(t, at(monday, 11, 0), slots[1].Start)
	assert.Equal(t, 60, slots[1].DurationMinutes)
}

func TestGenerateSlots_SoundAgainstBookings(t *testing.T) {
	windows := []Interval{{Start: at(monday, 6, 0), End: at(monday, 21, 0)}}
	bookings := []*SessionBooking{
		{ID: 1, Status: StatusScheduled, ScheduledStart: at(monday, 7, 15), ScheduledEnd: at(monday, 8, 0)},
		{ID: 2, Status: StatusPending, ScheduledStart: at(monday, 12, 0), ScheduledEnd: at(monday, 13, 30)},
		{ID: 3, Status: StatusCancelled, ScheduledStart: at(monday, 15, 0), ScheduledEnd: at(monday, 16, 0)},
	}

	for _, d := range []time.Duration{30 * time.Minute, 45 * time.Minute, time.Hour, 90 * time.Minute} {
		for _, s := range GenerateSlots(windows, bookings, d, 30*time.Minute, time.Time{}) {
			slot := Interval{Start: s.Start, End: s.End}
			assert.True(t, windows[0].Covers(slot))
			assert.Nil(t, FindConflict(bookings, slot, 0), "slot %s overlaps a booking", s.Start)
		}
	}

	// отменённая сессия не блокирует 15:00
	slots := GenerateSlots(windows, bookings, time.Hour, 30*time.Minute, time.Time{})
	var starts []time.Time
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	assert.Contains(t, starts, at(monday, 15, 0))
}

func TestGenerateSlots_SkipsPast(t *testing.T) {
	windows := []Interval{{Start: at(monday, 9, 0), End: at(monday, 12, 0)}}

	slots := GenerateSlots(windows, nil, time.Hour, 30*time.Minute, at(monday, 10, 10))
	require.Len(t, slots, 2)
	assert.Equal(t, at(monday, 10, 30), slots[0].Start)
	assert.Equal(t, at(monday, 11, 0), slots[1].Start)
}

func TestGenerateSlots_NoWindows(t *testing.T) {
	assert.Empty(t, GenerateSlots(nil, nil, time.Hour, 30*time.Minute, time.Time{}))
}
