package encoder

import (
	"fmt"

	"github.com/limaJavier/roundrobin/pkg/linear"
	"github.com/limaJavier/roundrobin/pkg/model"
	"github.com/samber/lo"
)

type mipEncoder struct {
	options Options
}

// NewMIPEncoder returns an encoder whose program holds a binary indicator per
// (period, week, slot, team), with id model.Indexer.Index(period, week, slot, team-1).
// Conjunction variables used for pairing come after every indicator.
func NewMIPEncoder(options Options) Encoder[*linear.Program] {
	return &mipEncoder{options: options}
}

func (encoder *mipEncoder) Paradigm() Paradigm {
	return MIP
}

func (encoder *mipEncoder) Encode(instance model.Instance) (*linear.Program, error) {
	if _, err := model.NewInstance(instance.Teams); err != nil {
		return nil, err
	}

	indexer := model.NewInstanceIndexer(instance)
	program := linear.NewProgram(fmt.Sprintf("sts_%d", instance.Teams))
	program.NewBinaries(indexer.Size())

	x := func(period, week, slot, team int) linear.Variable {
		return linear.Variable(indexer.Index(uint64(period), uint64(week), uint64(slot), uint64(team-1)))
	}
	teams := lo.RangeFrom(1, instance.Teams)

	//** Every slot holds exactly one team
	cells(instance, func(period, week int) {
		for slot := range instance.Slots {
			program.AddSum(lo.Map(teams, func(team int, _ int) linear.Variable { return x(period, week, slot, team) }), linear.Equal, 1)
		}
	})

	//** No team plays against itself
	cells(instance, func(period, week int) {
		for _, team := range teams {
			program.AddSum([]linear.Variable{x(period, week, 0, team), x(period, week, 1, team)}, linear.LessEqual, 1)
		}
	})

	//** Every team plays exactly once per week
	for week := range instance.Weeks {
		for _, team := range teams {
			appearances := make([]linear.Variable, 0, 2*instance.Periods)
			for period := range instance.Periods {
				appearances = append(appearances, x(period, week, 0, team), x(period, week, 1, team))
			}
			program.AddSum(appearances, linear.Equal, 1)
		}
	}

	//** Every pair of teams meets exactly once
	for _, first := range teams {
		for second := first + 1; second <= instance.Teams; second++ {
			meetings := make([]linear.Variable, 0, 2*instance.Games())
			cells(instance, func(period, week int) {
				meetings = append(meetings,
					program.And(x(period, week, 0, first), x(period, week, 1, second)),
					program.And(x(period, week, 0, second), x(period, week, 1, first)),
				)
			})
			program.AddSum(meetings, linear.Equal, 1)
		}
	}

	//** Every team plays at most PeriodCap times in the same period
	for period := range instance.Periods {
		for _, team := range teams {
			appearances := make([]linear.Variable, 0, 2*instance.Weeks)
			for week := range instance.Weeks {
				appearances = append(appearances, x(period, week, 0, team), x(period, week, 1, team))
			}
			program.AddSum(appearances, linear.LessEqual, encoder.options.periodCap())
		}
	}

	if encoder.options.EnforceBalance {
		for _, team := range teams {
			homes, aways := make([]linear.Variable, 0, instance.Games()), make([]linear.Variable, 0, instance.Games())
			cells(instance, func(period, week int) {
				homes = append(homes, x(period, week, 0, team))
				aways = append(aways, x(period, week, 1, team))
			})
			difference := append(linear.Sum(homes...), linear.Negate(linear.Sum(aways...))...)
			program.Add(linear.Constraint{Terms: difference, Sense: linear.LessEqual, RHS: 1})
			program.Add(linear.Constraint{Terms: difference, Sense: linear.GreaterEqual, RHS: -1})
		}
	}

	//** The home team of each first-week game has the lower id
	if encoder.options.SymmetryBreaking {
		for period := range instance.Periods {
			homes := lo.Map(teams, func(team int, _ int) linear.Variable { return x(period, 0, 0, team) })
			aways := lo.Map(teams, func(team int, _ int) linear.Variable { return x(period, 0, 1, team) })
			terms := append(linear.Weighted(homes, teams), linear.Negate(linear.Weighted(aways, teams))...)
			program.Add(linear.Constraint{Terms: terms, Sense: linear.LessEqual, RHS: -1})
		}
	}

	return program, nil
}

// Decode expects the raw assignment to map the indicator of the team playing in each slot to 1
// and every other indicator to 0 (or nothing)
func (encoder *mipEncoder) Decode(instance model.Instance, formal *linear.Program, raw model.RawAssignment) (model.Schedule, error) {
	indexer := model.NewInstanceIndexer(instance)
	if formal.Variables() < indexer.Size() {
		return model.Schedule{}, fmt.Errorf("%w: program has %d variables, expected at least %d", model.ErrMalformedAssignment, formal.Variables(), indexer.Size())
	}

	games := make([]model.Game, 0, instance.Games())
	for week := range instance.Weeks {
		for period := range instance.Periods {
			var teams [2]int
			for slot := range instance.Slots {
				team, err := indicatedTeam(instance, raw, func(team int) uint64 {
					return indexer.Index(uint64(period), uint64(week), uint64(slot), uint64(team-1))
				})
				if err != nil {
					return model.Schedule{}, fmt.Errorf("%w at period %d, week %d, slot %d", err, period, week, slot)
				}
				teams[slot] = team
			}
			games = append(games, model.Game{Week: week, Period: period, Home: teams[0], Away: teams[1]})
		}
	}

	return model.NewSchedule(instance.Periods, instance.Weeks, games), nil
}
