package model

import "fmt"

const Slots = 2

// Instance holds the dimensions of a single round-robin tournament with Teams teams.
// Each of the Weeks weeks is split into Periods periods and each period hosts one game
// made of two slots (home and away).
type Instance struct {
	Teams   int
	Weeks   int
	Periods int
	Slots   int
}

func NewInstance(teams int) (Instance, error) {
	if teams < 2 || teams%2 != 0 {
		return Instance{}, fmt.Errorf("%w: the number of teams must be even and at least 2: %v", ErrInvalidInstance, teams)
	}

	return Instance{
		Teams:   teams,
		Weeks:   teams - 1,
		Periods: (teams + 1) / 2,
		Slots:   Slots,
	}, nil
}

// NormalizeTeams rounds an odd team count up to the next even one
func NormalizeTeams(teams int) int {
	if teams%2 != 0 {
		return teams + 1
	}
	return teams
}

// Games returns the number of games played in the whole tournament (Weeks * Periods)
func (instance Instance) Games() int {
	return instance.Weeks * instance.Periods
}

// Pairs returns the number of distinct unordered pairs of teams
func (instance Instance) Pairs() int {
	return instance.Teams * (instance.Teams - 1) / 2
}

func (instance Instance) String() string {
	return fmt.Sprintf("n=%d (weeks=%d, periods=%d)", instance.Teams, instance.Weeks, instance.Periods)
}
