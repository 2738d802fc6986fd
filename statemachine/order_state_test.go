package statemachine

import (
	"testing"

	"superapp-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionFollowsSequence(t *testing.T) {
	seq := []models.OrderStatus{
		models.StatusPending,
		models.StatusAccepted,
		models.StatusAtStore,
		models.StatusOnTheWay,
		models.StatusDelivered,
	}
	for i := 0; i < len(seq)-1; i++ {
		assert.NoError(t, CanTransition(seq[i], seq[i+1], models.RoleDelivery), "%s -> %s", seq[i], seq[i+1])
	}
}

func TestCanTransitionRejectsSkipsAndBackwardMoves(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
	}{
		{models.StatusPending, models.StatusAtStore},
		{models.StatusPending, models.StatusDelivered},
		{models.StatusAccepted, models.StatusOnTheWay},
		{models.StatusOnTheWay, models.StatusAccepted},
		{models.StatusDelivered, models.StatusPending},
		{models.StatusPending, models.StatusCancelled},
		{models.StatusAccepted, models.StatusCancelled},
	}
	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to, models.RoleDelivery)
		require.Error(t, err, "%s -> %s", tc.from, tc.to)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
}

func TestCanTransitionChecksActor(t *testing.T) {
	err := CanTransition(models.StatusPending, models.StatusAccepted, models.RoleCustomer)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "customer")
}

func TestNext(t *testing.T) {
	next, ok := Next(models.StatusAtStore)
	require.True(t, ok)
	assert.Equal(t, models.StatusOnTheWay, next)

	_, ok = Next(models.StatusDelivered)
	assert.False(t, ok)
	assert.True(t, Terminal(models.StatusDelivered))
	assert.True(t, Terminal(models.StatusCancelled))
}

func TestGetAllTransitionsReturnsCopy(t *testing.T) {
	all := GetAllTransitions()
	require.Len(t, all, 4)
	all[0].To = models.StatusDelivered
	assert.Equal(t, models.StatusAccepted, GetAllTransitions()[0].To)
}
