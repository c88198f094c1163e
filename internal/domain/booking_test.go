package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveActor(t *testing.T) {
	b := &SessionBooking{ID: 1, ClientID: 10, TrainerID: 20}

	actor, err := b.ResolveActor(10, "")
	require.NoError(t, err)
	assert.Equal(t, ActorClient, actor.Role)

	actor, err = b.ResolveActor(20, ActorClient)
	require.NoError(t, err)
	assert.Equal(t, ActorTrainer, actor.Role, "роль определяется по сессии, а не по заголовку")

	actor, err = b.ResolveActor(99, ActorAdmin)
	require.NoError(t, err)
	assert.Equal(t, Actor{UserID: 99, Role: ActorAdmin}, actor)

	actor, err = b.ResolveActor(0, ActorSystem)
	require.NoError(t, err)
	assert.Equal(t, ActorSystem, actor.Role)

	_, err = b.ResolveActor(30, ActorTrainer)
	assert.True(t, errors.Is(err, ErrAccessDenied))
}

func TestCounterParty(t *testing.T) {
	b := &SessionBooking{ClientID: 10, TrainerID: 20}

	assert.Equal(t, int64(20), b.CounterParty(Actor{UserID: 10, Role: ActorClient}))
	assert.Equal(t, int64(10), b.CounterParty(Actor{UserID: 20, Role: ActorTrainer}))
	assert.Equal(t, int64(10), b.CounterParty(Actor{UserID: 1, Role: ActorAdmin}))
}

func TestParseActorRole(t *testing.T) {
	role, err := ParseActorRole("trainer")
	require.NoError(t, err)
	assert.Equal(t, ActorTrainer, role)

	_, err = ParseActorRole("owner")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBookingStatus_BlocksCalendar(t *testing.T) {
	assert.True(t, StatusScheduled.BlocksCalendar())
	assert.True(t, StatusCompleted.BlocksCalendar())
	assert.True(t, StatusNoShow.BlocksCalendar())
	assert.False(t, StatusCancelled.BlocksCalendar())
	assert.False(t, StatusRescheduled.BlocksCalendar())
}
