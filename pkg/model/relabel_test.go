package model

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every four-team tournament: the three perfect matchings spread over the weeks in any order,
// each game placed in either period and played in either orientation
func allFourTeamSchedules() []Schedule {
	matchings := [][2][2]int{
		{{1, 2}, {3, 4}},
		{{1, 3}, {2, 4}},
		{{1, 4}, {2, 3}},
	}
	orders := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	schedules := make([]Schedule, 0)
	for _, order := range orders {
		for placement := range 1 << 3 {
			for orientation := range 1 << 6 {
				rows := make([][][2]int, 3)
				for week := range 3 {
					games := matchings[order[week]]
					if placement&(1<<week) != 0 {
						games[0], games[1] = games[1], games[0]
					}
					rows[week] = make([][2]int, 2)
					for period, game := range games {
						if orientation&(1<<(2*week+period)) != 0 {
							game[0], game[1] = game[1], game[0]
						}
						rows[week][period] = game
					}
				}
				schedules = append(schedules, FromWeekMajor(rows))
			}
		}
	}
	return schedules
}

func scheduleKey(schedule Schedule) string {
	return fmt.Sprint(schedule.WeekMajor())
}

func TestFirstWeekOrientationLosesNoTournament(t *testing.T) {
	//** Arrange
	// The period cap is raised to three since no four-team tournament honors a cap of two
	instance := mustInstance(4)
	validator := NewValidator(Options{EnforceBalance: true, PeriodCap: 3})

	valid := make([]Schedule, 0)
	oriented := make(map[string]bool)
	for _, schedule := range allFourTeamSchedules() {
		if len(validator.Validate(instance, schedule)) != 0 {
			continue
		}
		valid = append(valid, schedule)
		if OrientedFirstWeek(schedule) {
			oriented[scheduleKey(schedule)] = true
		}
	}
	require.Len(t, valid, 1152)
	require.Len(t, oriented, 288)

	//** Act & Assert
	for _, schedule := range valid {
		relabeled := Relabel(schedule, CanonicalRelabeling(instance, schedule))

		assert.Empty(t, validator.Validate(instance, relabeled))
		assert.True(t, OrientedFirstWeek(relabeled))
		assert.True(t, oriented[scheduleKey(relabeled)], "%v has no oriented counterpart", schedule.WeekMajor())
	}
}

func TestCanonicalRelabelingKeepsSixTeamSchedulesValid(t *testing.T) {
	instance := mustInstance(6)
	validator := NewValidator(DefaultOptions())
	random := rand.New(rand.NewSource(7))

	for range 50 {
		//** Arrange
		permutation := append([]int{0}, random.Perm(instance.Teams)...)
		for team := 1; team <= instance.Teams; team++ {
			permutation[team]++
		}
		shuffled := Relabel(FromWeekMajor(sixTeamRows), permutation)
		require.Empty(t, validator.Validate(instance, shuffled))

		//** Act
		relabeled := Relabel(shuffled, CanonicalRelabeling(instance, shuffled))

		//** Assert
		assert.Empty(t, validator.Validate(instance, relabeled))
		assert.True(t, OrientedFirstWeek(relabeled))
	}
}

func TestRelabelIgnoresUnknownTeams(t *testing.T) {
	schedule := NewSchedule(1, 1, []Game{{Week: 0, Period: 0, Home: 1, Away: 9}})

	relabeled := Relabel(schedule, []int{0, 2, 1})

	assert.Equal(t, []Game{{Week: 0, Period: 0, Home: 2, Away: 9}}, relabeled.Games())
}
