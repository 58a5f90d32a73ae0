package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// An invariant recomputes one rule of the tournament from scratch and reports every place
// where the schedule breaks it
type invariant func(instance Instance, schedule Schedule, options Options) []Violation

func insideGrid(instance Instance, game Game) bool {
	return game.Period >= 0 && game.Period < instance.Periods && game.Week >= 0 && game.Week < instance.Weeks
}

func validTeam(instance Instance, team int) bool {
	return team >= 1 && team <= instance.Teams
}

// Games that can be trusted to carry two real, distinct teams inside the grid
func wellFormedGames(instance Instance, schedule Schedule) []Game {
	return lo.Filter(schedule.games, func(game Game, _ int) bool {
		return insideGrid(instance, game) &&
			validTeam(instance, game.Home) &&
			validTeam(instance, game.Away) &&
			game.Home != game.Away
	})
}

// Every (week, period) cell holds exactly one game
func slotOccupancy(instance Instance, schedule Schedule, _ Options) []Violation {
	violations := make([]Violation, 0)

	bookings := make(map[[2]int]int)
	for _, game := range schedule.games {
		if !insideGrid(instance, game) {
			violations = append(violations, Violation{
				Kind:   IncompleteSchedule,
				Period: game.Period,
				Week:   game.Week,
				Teams:  []int{game.Home, game.Away},
				Count:  1,
				Detail: "game booked outside the tournament grid",
			})
			continue
		}
		bookings[[2]int{game.Period, game.Week}]++
	}

	for period := range instance.Periods {
		for week := range instance.Weeks {
			count := bookings[[2]int{period, week}]
			if count == 1 {
				continue
			}

			detail := "empty cell"
			if count > 1 {
				detail = fmt.Sprintf("cell booked %d times", count)
			}
			violations = append(violations, Violation{
				Kind:   IncompleteSchedule,
				Period: period,
				Week:   week,
				Count:  count,
				Detail: detail,
			})
		}
	}

	return violations
}

// Both teams of every game are known teams
func teamRange(instance Instance, schedule Schedule, _ Options) []Violation {
	violations := make([]Violation, 0)
	for _, game := range schedule.games {
		unknown := lo.Filter([]int{game.Home, game.Away}, func(team int, _ int) bool {
			return !validTeam(instance, team)
		})
		if len(unknown) == 0 {
			continue
		}
		violations = append(violations, Violation{
			Kind:   InvalidTeam,
			Period: game.Period,
			Week:   game.Week,
			Teams:  []int{game.Home, game.Away},
			Count:  len(unknown),
			Detail: fmt.Sprintf("team ids %v are outside [1, %d]", unknown, instance.Teams),
		})
	}
	return violations
}

// No team plays against itself
func noSelfPlay(_ Instance, schedule Schedule, _ Options) []Violation {
	violations := make([]Violation, 0)
	for _, game := range schedule.games {
		if game.Home != game.Away {
			continue
		}
		violations = append(violations, Violation{
			Kind:   SelfPlay,
			Period: game.Period,
			Week:   game.Week,
			Teams:  []int{game.Home},
			Count:  1,
			Detail: fmt.Sprintf("team %d plays against itself", game.Home),
		})
	}
	return violations
}

// Every team plays exactly one game per week. A single violation is reported per week,
// listing every team whose game count differs from one; Count holds how many teams those are.
func oneGamePerWeek(instance Instance, schedule Schedule, _ Options) []Violation {
	violations := make([]Violation, 0)

	for week := range instance.Weeks {
		appearances := make(map[int]int)
		for _, game := range schedule.games {
			if game.Week != week || !insideGrid(instance, game) {
				continue
			}
			for _, team := range lo.Uniq([]int{game.Home, game.Away}) {
				appearances[team]++
			}
		}

		offending := lo.Filter(lo.RangeFrom(1, instance.Teams), func(team int, _ int) bool {
			return appearances[team] != 1
		})
		if len(offending) == 0 {
			continue
		}

		details := lo.Map(offending, func(team int, _ int) string {
			return fmt.Sprintf("team %d plays %d games", team, appearances[team])
		})
		violations = append(violations, Violation{
			Kind:   TeamDoubleBookedInWeek,
			Period: NoLocation,
			Week:   week,
			Teams:  offending,
			Count:  len(offending),
			Detail: strings.Join(details, ", "),
		})
	}

	return violations
}

// Every unordered pair of teams meets exactly once over the tournament
func exactlyOncePairing(instance Instance, schedule Schedule, _ Options) []Violation {
	meetings := lo.CountValuesBy(wellFormedGames(instance, schedule), func(game Game) [2]int {
		return game.Pair()
	})

	violations := make([]Violation, 0)
	for team1 := 1; team1 <= instance.Teams; team1++ {
		for team2 := team1 + 1; team2 <= instance.Teams; team2++ {
			count := meetings[[2]int{team1, team2}]
			if count == 1 {
				continue
			}
			violations = append(violations, Violation{
				Kind:   PairingCountMismatch,
				Period: NoLocation,
				Week:   NoLocation,
				Teams:  []int{team1, team2},
				Count:  count,
				Detail: fmt.Sprintf("teams %d and %d meet %d times", team1, team2, count),
			})
		}
	}
	return violations
}

// No team plays more than options.PeriodCap games in the same period
func periodCap(instance Instance, schedule Schedule, options Options) []Violation {
	appearances := make(map[[2]int]int)
	for _, game := range schedule.games {
		if !insideGrid(instance, game) {
			continue
		}
		for _, team := range lo.Uniq([]int{game.Home, game.Away}) {
			appearances[[2]int{game.Period, team}]++
		}
	}

	violations := make([]Violation, 0)
	for period := range instance.Periods {
		for team := 1; team <= instance.Teams; team++ {
			count := appearances[[2]int{period, team}]
			if count <= options.PeriodCap {
				continue
			}
			violations = append(violations, Violation{
				Kind:   PeriodCapExceeded,
				Period: period,
				Week:   NoLocation,
				Teams:  []int{team},
				Count:  count,
				Detail: fmt.Sprintf("team %d plays %d games in period %d (at most %d allowed)", team, count, period, options.PeriodCap),
			})
		}
	}
	return violations
}

// Every team's home and away game counts differ by at most one
func homeAwayBalance(instance Instance, schedule Schedule, options Options) []Violation {
	violations := make([]Violation, 0)
	if !options.EnforceBalance {
		return violations
	}

	games := wellFormedGames(instance, schedule)
	for team := 1; team <= instance.Teams; team++ {
		home := lo.CountBy(games, func(game Game) bool { return game.Home == team })
		away := lo.CountBy(games, func(game Game) bool { return game.Away == team })

		if difference := home - away; difference > 1 || difference < -1 {
			violations = append(violations, Violation{
				Kind:   HomeAwayImbalance,
				Period: NoLocation,
				Week:   NoLocation,
				Teams:  []int{team},
				Count:  difference,
				Detail: fmt.Sprintf("team %d plays %d home and %d away games", team, home, away),
			})
		}
	}
	return violations
}
