package model

import (
	"testing"

	"github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidScheduleHasNoViolations(t *testing.T) {
	//** Arrange
	instance := mustInstance(6)
	schedule := FromWeekMajor(sixTeamRows)
	validator := NewValidator(DefaultOptions())

	//** Act
	violations := validator.Validate(instance, schedule)

	//** Assert
	assert.Empty(t, violations)
}

func TestValidScheduleCoversEveryPairOnce(t *testing.T) {
	instance := mustInstance(6)
	schedule := FromWeekMajor(sixTeamRows)
	require.Empty(t, NewValidator(DefaultOptions()).Validate(instance, schedule))

	pairs := make(map[[2]int]int)
	for _, game := range schedule.Games() {
		pairs[game.Pair()]++
	}

	assert.Len(t, pairs, instance.Pairs())
	for team1 := 1; team1 <= instance.Teams; team1++ {
		for team2 := team1 + 1; team2 <= instance.Teams; team2++ {
			assert.Equal(t, 1, pairs[[2]int{team1, team2}])
		}
	}
}

func TestFourTeamScheduleBreaksOnlyThePeriodCap(t *testing.T) {
	//** Arrange
	instance := mustInstance(4)
	schedule := FromWeekMajor(fourTeamRows)
	validator := NewValidator(Options{EnforceBalance: false, PeriodCap: 2})

	//** Act
	violations := validator.Validate(instance, schedule)

	//** Assert
	require.Len(t, violations, 1)
	assert.Equal(t, PeriodCapExceeded, violations[0].Kind)
	assert.Equal(t, 0, violations[0].Period)
	assert.Equal(t, []int{1}, violations[0].Teams)
	assert.Equal(t, 3, violations[0].Count)
}

func TestFourTeamScheduleWithBalance(t *testing.T) {
	g := gomega.NewWithT(t)
	instance := mustInstance(4)

	violations := NewValidator(DefaultOptions()).Validate(instance, FromWeekMajor(fourTeamRows))

	g.Expect(kinds(violations)).To(gomega.Equal([]ViolationKind{PeriodCapExceeded, HomeAwayImbalance, HomeAwayImbalance}))
	g.Expect(violations[1].Teams).To(gomega.Equal([]int{1}))
	g.Expect(violations[1].Count).To(gomega.Equal(3))
	g.Expect(violations[2].Teams).To(gomega.Equal([]int{4}))
	g.Expect(violations[2].Count).To(gomega.Equal(-3))
}

func TestReplacedGameIsReportedOnceForItsWeek(t *testing.T) {
	//** Arrange
	instance := mustInstance(6)
	rows := cloneRows(sixTeamRows)
	rows[1][1] = [2]int{1, 5} // Team 2 loses its week 1 game to team 1
	validator := NewValidator(Options{EnforceBalance: false})

	//** Act
	violations := validator.Validate(instance, FromWeekMajor(rows))

	//** Assert
	g := gomega.NewWithT(t)
	g.Expect(kinds(violations)).To(gomega.Equal([]ViolationKind{TeamDoubleBookedInWeek, PairingCountMismatch, PairingCountMismatch}))

	weekly := violations[0]
	g.Expect(weekly.Week).To(gomega.Equal(1))
	g.Expect(weekly.Period).To(gomega.Equal(NoLocation))
	g.Expect(weekly.Teams).To(gomega.Equal([]int{1, 2}))
	g.Expect(weekly.Detail).To(gomega.Equal("team 1 plays 2 games, team 2 plays 0 games"))

	g.Expect(violations[1].Teams).To(gomega.Equal([]int{1, 5}))
	g.Expect(violations[1].Count).To(gomega.Equal(2))
	g.Expect(violations[2].Teams).To(gomega.Equal([]int{2, 5}))
	g.Expect(violations[2].Count).To(gomega.Equal(0))
}

func TestReplacedGameKeepsCheckingBalance(t *testing.T) {
	instance := mustInstance(6)
	rows := cloneRows(sixTeamRows)
	rows[1][1] = [2]int{1, 5}

	violations := NewValidator(DefaultOptions()).Validate(instance, FromWeekMajor(rows))

	assert.Equal(t, []ViolationKind{TeamDoubleBookedInWeek, PairingCountMismatch, PairingCountMismatch, HomeAwayImbalance}, kinds(violations))
	assert.Equal(t, []int{1}, violations[3].Teams)
	assert.Equal(t, 2, violations[3].Count)
}

func TestMissingGameIsReportedAsIncomplete(t *testing.T) {
	//** Arrange
	instance := mustInstance(6)
	games := make([]Game, 0)
	for _, game := range FromWeekMajor(sixTeamRows).Games() {
		if game.Week == 1 && game.Period == 1 {
			continue
		}
		games = append(games, game)
	}

	//** Act
	violations := NewValidator(DefaultOptions()).Validate(instance, NewSchedule(instance.Periods, instance.Weeks, games))

	//** Assert
	require.Equal(t, []ViolationKind{IncompleteSchedule, TeamDoubleBookedInWeek, PairingCountMismatch}, kinds(violations))
	assert.Equal(t, 1, violations[0].Period)
	assert.Equal(t, 1, violations[0].Week)
	assert.Equal(t, 0, violations[0].Count)
	assert.Equal(t, []int{2, 5}, violations[1].Teams)
	assert.Equal(t, []int{2, 5}, violations[2].Teams)
}

func TestMalformedGamesDoNotPanic(t *testing.T) {
	//** Arrange
	instance := mustInstance(4)
	schedule := NewSchedule(instance.Periods, instance.Weeks, []Game{
		{Week: 0, Period: 0, Home: 1, Away: 1},
		{Week: 0, Period: 0, Home: 3, Away: 9},
		{Week: 7, Period: 4, Home: 2, Away: 4},
	})

	//** Act
	violations := NewValidator(DefaultOptions()).Validate(instance, schedule)

	//** Assert
	g := gomega.NewWithT(t)
	g.Expect(kinds(violations)).To(gomega.ContainElements(IncompleteSchedule, InvalidTeam, SelfPlay, TeamDoubleBookedInWeek, PairingCountMismatch))

	outside := violations[0]
	g.Expect(outside.Kind).To(gomega.Equal(IncompleteSchedule))
	g.Expect(outside.Week).To(gomega.Equal(7))
	g.Expect(outside.Detail).To(gomega.Equal("game booked outside the tournament grid"))

	// Cell (0, 0) is double-booked while the other five cells are empty
	incomplete := 0
	for _, violation := range violations {
		if violation.Kind == IncompleteSchedule {
			incomplete++
		}
	}
	g.Expect(incomplete).To(gomega.Equal(1 + instance.Games()))
}

func TestEmptyScheduleIsIncomplete(t *testing.T) {
	instance := mustInstance(4)

	violations := NewValidator(DefaultOptions()).Validate(instance, Schedule{})

	assert.Len(t, violations, instance.Games()+instance.Weeks+instance.Pairs())
	assert.Equal(t, IncompleteSchedule, violations[0].Kind)
}

func TestValidatorIsDeterministic(t *testing.T) {
	instance := mustInstance(6)
	rows := cloneRows(sixTeamRows)
	rows[0][0] = [2]int{2, 2}
	rows[3][2] = [2]int{1, 3}
	schedule := FromWeekMajor(rows)
	validator := NewValidator(DefaultOptions())

	first := validator.Validate(instance, schedule)
	second := validator.Validate(instance, schedule)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestValidateResults(t *testing.T) {
	//** Arrange
	instance := mustInstance(6)
	broken := cloneRows(sixTeamRows)
	broken[2][0] = [2]int{2, 2}
	results := Results{
		"pulp_cbc":       {Time: 3, Optimal: true, Sol: FromWeekMajor(sixTeamRows)},
		"gecode_default": {Time: 1, Optimal: true, Sol: FromWeekMajor(broken)},
		"z3":             FailedResult(DefaultCeiling),
	}

	//** Act
	verdicts := NewValidator(DefaultOptions()).ValidateResults(instance, results)

	//** Assert
	require.Len(t, verdicts, 3)
	assert.Equal(t, "gecode_default", verdicts[0].Approach)
	assert.Equal(t, Invalid, verdicts[0].Status)
	assert.NotEmpty(t, verdicts[0].Violations)

	assert.Equal(t, "pulp_cbc", verdicts[1].Approach)
	assert.Equal(t, Valid, verdicts[1].Status)
	assert.Empty(t, verdicts[1].Violations)

	assert.Equal(t, "z3", verdicts[2].Approach)
	assert.Equal(t, NoSolution, verdicts[2].Status)
	assert.Equal(t, DefaultCeiling, verdicts[2].Time)
}

func TestViolationString(t *testing.T) {
	violation := Violation{Kind: PeriodCapExceeded, Period: 0, Week: NoLocation, Teams: []int{1}, Count: 3, Detail: "too many"}

	assert.Equal(t, "PeriodCapExceeded at period 0, teams [1]: too many", violation.String())
}
