package model

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Game is a single match played in a (week, period) cell. Weeks and periods are 0-based
// whereas teams are 1-based.
type Game struct {
	Week   int
	Period int
	Home   int
	Away   int
}

// Involves checks whether the team plays the game, either home or away
func (game Game) Involves(team int) bool {
	return game.Home == team || game.Away == team
}

// Pair returns the teams of the game as an unordered pair (smaller id first)
func (game Game) Pair() [2]int {
	if game.Home < game.Away {
		return [2]int{game.Home, game.Away}
	}
	return [2]int{game.Away, game.Home}
}

func (game Game) String() string {
	return fmt.Sprintf("week %d, period %d: %d vs %d", game.Week, game.Period, game.Home, game.Away)
}

// Schedule is a read-only collection of games laid over a periods x weeks grid. A schedule
// built from untrusted input may leave cells empty or book a cell more than once; it is the
// validator's job to report it.
type Schedule struct {
	periods int
	weeks   int
	games   []Game
}

func NewSchedule(periods, weeks int, games []Game) Schedule {
	gamesCopy := slices.Clone(games)
	slices.SortStableFunc(gamesCopy, compareGames)
	return Schedule{
		periods: periods,
		weeks:   weeks,
		games:   gamesCopy,
	}
}

// emptyCell marks a cell without a game in the period-major layout
var emptyCell = [2]int{0, 0}

// FromPeriodMajor builds a schedule from nested arrays where sol[period][week] = [home, away].
// Cells holding [0, 0] stay empty.
func FromPeriodMajor(sol [][][2]int) Schedule {
	games := make([]Game, 0)
	weeks := 0
	for period, row := range sol {
		weeks = max(weeks, len(row))
		for week, game := range row {
			if game == emptyCell {
				continue
			}
			games = append(games, Game{Week: week, Period: period, Home: game[0], Away: game[1]})
		}
	}
	return NewSchedule(len(sol), weeks, games)
}

// FromWeekMajor builds a schedule from nested arrays where rows[week][period] = [home, away]
func FromWeekMajor(rows [][][2]int) Schedule {
	games := make([]Game, 0)
	periods := 0
	for week, row := range rows {
		periods = max(periods, len(row))
		for period, game := range row {
			games = append(games, Game{Week: week, Period: period, Home: game[0], Away: game[1]})
		}
	}
	return NewSchedule(periods, len(rows), games)
}

func (schedule Schedule) Periods() int {
	return schedule.periods
}

func (schedule Schedule) Weeks() int {
	return schedule.weeks
}

// Games returns a copy of the games sorted by week, then period
func (schedule Schedule) Games() []Game {
	return slices.Clone(schedule.games)
}

func (schedule Schedule) Len() int {
	return len(schedule.games)
}

func (schedule Schedule) IsEmpty() bool {
	return len(schedule.games) == 0
}

// Cell returns every game booked in the (period, week) cell
func (schedule Schedule) Cell(period, week int) []Game {
	return lo.Filter(schedule.games, func(game Game, _ int) bool {
		return game.Period == period && game.Week == week
	})
}

// Week returns every game booked in the week, sorted by period
func (schedule Schedule) Week(week int) []Game {
	return lo.Filter(schedule.games, func(game Game, _ int) bool {
		return game.Week == week
	})
}

// PeriodMajor returns the schedule as nested arrays where sol[period][week] = [home, away].
// Empty cells are left as [0, 0], which FromPeriodMajor reads back as empty since team 0
// does not exist. The layout holds one game per cell: when a cell is booked more than once the
// first game wins and games outside the grid are left out.
func (schedule Schedule) PeriodMajor() [][][2]int {
	sol := make([][][2]int, schedule.periods)
	for period := range sol {
		sol[period] = make([][2]int, schedule.weeks)
	}

	filled := make(map[[2]int]bool)
	for _, game := range schedule.games {
		if !schedule.inside(game) || filled[[2]int{game.Period, game.Week}] {
			continue
		}
		filled[[2]int{game.Period, game.Week}] = true
		sol[game.Period][game.Week] = [2]int{game.Home, game.Away}
	}
	return sol
}

// WeekMajor returns the schedule as nested arrays where rows[week][period] = [home, away]
func (schedule Schedule) WeekMajor() [][][2]int {
	sol := schedule.PeriodMajor()
	rows := make([][][2]int, schedule.weeks)
	for week := range rows {
		rows[week] = make([][2]int, schedule.periods)
		for period := range schedule.periods {
			rows[week][period] = sol[period][week]
		}
	}
	return rows
}

func (schedule Schedule) inside(game Game) bool {
	return game.Period >= 0 && game.Period < schedule.periods && game.Week >= 0 && game.Week < schedule.weeks
}

func compareGames(a, b Game) int {
	return cmp.Or(
		cmp.Compare(a.Week, b.Week),
		cmp.Compare(a.Period, b.Period),
	)
}
