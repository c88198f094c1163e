package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_Allowed(t *testing.T) {
	tests := []struct {
		from BookingStatus
		ev   BookingEvent
		want BookingStatus
	}{
		{StatusScheduled, EventRequestConfirmation, StatusPending},
		{StatusPending, EventConfirm, StatusConfirmed},
		{StatusConfirmed, EventStart, StatusInProgress},
		{StatusConfirmed, EventComplete, StatusCompleted},
		{StatusInProgress, EventComplete, StatusCompleted},
		{StatusScheduled, EventCancel, StatusCancelled},
		{StatusPending, EventCancel, StatusCancelled},
		{StatusConfirmed, EventCancel, StatusCancelled},
		{StatusInProgress, EventCancel, StatusCancelled},
		{StatusConfirmed, EventNoShow, StatusNoShow},
		{StatusInProgress, EventNoShow, StatusNoShow},
		{StatusScheduled, EventReschedule, StatusRescheduled},
		{StatusConfirmed, EventReschedule, StatusRescheduled},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.ev), func(t *testing.T) {
			got, err := Transition(tt.from, tt.ev)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransition_Rejected(t *testing.T) {
	tests := []struct {
		from BookingStatus
		ev   BookingEvent
	}{
		{StatusScheduled, EventConfirm},
		{StatusConfirmed, EventConfirm},
		{StatusScheduled, EventComplete},
		{StatusPending, EventComplete},
		{StatusCompleted, EventCancel},
		{StatusCancelled, EventCancel},
		{StatusRescheduled, EventCancel},
		{StatusNoShow, EventCancel},
		{StatusCompleted, EventReschedule},
		{StatusCancelled, EventReschedule},
		{StatusRescheduled, EventReschedule},
		{StatusScheduled, EventNoShow},
		{StatusPending, EventNoShow},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.ev), func(t *testing.T) {
			got, err := Transition(tt.from, tt.ev)
			require.ErrorIs(t, err, ErrInvalidStateTransition)
			assert.Equal(t, tt.from, got)
		})
	}
}

func TestTransition_TerminalStatesHaveNoExit(t *testing.T) {
	events := []BookingEvent{
		EventRequestConfirmation, EventConfirm, EventStart, EventComplete,
		EventCancel, EventNoShow, EventReschedule,
	}
	for _, st := range AllStatuses {
		if !st.IsTerminal() {
			continue
		}
		for _, ev := range events {
			assert.False(t, CanApply(st, ev), "%s --%s--> should be rejected", st, ev)
		}
	}
}

func TestTransition_UnknownEvent(t *testing.T) {
	_, err := Transition(StatusScheduled, BookingEvent("teleport"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSessionBooking_Apply(t *testing.T) {
	b := &SessionBooking{Status: StatusPending}
	require.NoError(t, b.Apply(EventConfirm))
	assert.Equal(t, StatusConfirmed, b.Status)

	err := b.Apply(EventConfirm)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	assert.Equal(t, StatusConfirmed, b.Status)
}
