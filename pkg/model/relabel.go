package model

import "github.com/samber/lo"

// Relabel returns a copy of the schedule in which every team t is renamed to permutation[t].
// The permutation is indexed by team id, so permutation[0] is ignored.
func Relabel(schedule Schedule, permutation []int) Schedule {
	rename := func(team int) int {
		if team < 1 || team >= len(permutation) {
			return team
		}
		return permutation[team]
	}

	games := lo.Map(schedule.games, func(game Game, _ int) Game {
		return Game{Week: game.Week, Period: game.Period, Home: rename(game.Home), Away: rename(game.Away)}
	})
	return NewSchedule(schedule.periods, schedule.weeks, games)
}

// CanonicalRelabeling returns the team permutation that makes every game of the first week
// hosted by the team with the smaller id. Renaming teams preserves every invariant, so for a
// valid schedule the relabeled one is valid too and satisfies OrientedFirstWeek: the
// first-week orientation constraint never removes a tournament up to team names.
func CanonicalRelabeling(instance Instance, schedule Schedule) []int {
	permutation := lo.RangeFrom(0, instance.Teams+1)
	for _, game := range schedule.Week(0) {
		if game.Home > game.Away && validTeam(instance, game.Home) && validTeam(instance, game.Away) {
			permutation[game.Home], permutation[game.Away] = permutation[game.Away], permutation[game.Home]
		}
	}
	return permutation
}

// OrientedFirstWeek checks whether every game of the first week is hosted by the team with the smaller id
func OrientedFirstWeek(schedule Schedule) bool {
	return lo.EveryBy(schedule.Week(0), func(game Game) bool {
		return game.Home < game.Away
	})
}
