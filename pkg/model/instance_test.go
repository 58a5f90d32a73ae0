package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstance(t *testing.T) {
	for teams := 2; teams <= 40; teams += 2 {
		instance, err := NewInstance(teams)
		require.NoError(t, err)

		assert.Equal(t, teams-1, instance.Weeks)
		assert.Equal(t, teams/2, instance.Periods)
		assert.Equal(t, 2, instance.Slots)
		assert.Equal(t, teams*(teams-1)/2, instance.Weeks*instance.Periods)
		assert.Equal(t, instance.Pairs(), instance.Games())
	}
}

func TestNewInstanceRejectsInvalidTeamCounts(t *testing.T) {
	for _, teams := range []int{-2, 0, 1, 3, 7} {
		_, err := NewInstance(teams)
		assert.True(t, errors.Is(err, ErrInvalidInstance), "teams=%d", teams)
	}
}

func TestNormalizeTeams(t *testing.T) {
	assert.Equal(t, 6, NormalizeTeams(5))
	assert.Equal(t, 6, NormalizeTeams(6))
	assert.Equal(t, 2, NormalizeTeams(1))
}
