package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to PickupStatus
		want     bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusScheduled, true},
		{StatusScheduled, StatusInProgress, true},
		{StatusScheduled, StatusPending, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusPending, false},
		{StatusInProgress, StatusScheduled, false},
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatesHaveNoEdges(t *testing.T) {
	all := []PickupStatus{StatusPending, StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}
	for _, from := range []PickupStatus{StatusCompleted, StatusCancelled} {
		assert.True(t, from.IsTerminal())
		for _, to := range all {
			assert.False(t, CanTransition(from, to), "%s -> %s must be rejected", from, to)
		}
	}
}

func TestPickupStatusValid(t *testing.T) {
	assert.True(t, StatusInProgress.Valid())
	assert.False(t, PickupStatus("archived").Valid())
	assert.False(t, StatusPending.IsTerminal())
}
