package encoder

import (
	"fmt"

	"github.com/limaJavier/roundrobin/pkg/model"
	"github.com/limaJavier/roundrobin/pkg/smt"
)

type smtEncoder struct {
	options Options
}

// NewSMTEncoder returns an encoder whose script declares one integer per slot, identified by
// the slot's cell index, holding the team playing there
func NewSMTEncoder(options Options) Encoder[*smt.Script] {
	return &smtEncoder{options: options}
}

func (encoder *smtEncoder) Paradigm() Paradigm {
	return SMT
}

func (encoder *smtEncoder) Encode(instance model.Instance) (*smt.Script, error) {
	if _, err := model.NewInstance(instance.Teams); err != nil {
		return nil, err
	}

	indexer := model.NewInstanceIndexer(instance)
	script := smt.NewScript(fmt.Sprintf("sts_%d", instance.Teams))

	slots := make([][][2]smt.IntVar, instance.Periods)
	for period := range slots {
		slots[period] = make([][2]smt.IntVar, instance.Weeks)
	}
	cells(instance, func(period, week int) {
		for slot := range instance.Slots {
			id := indexer.Cell(uint64(period), uint64(week), uint64(slot))
			slots[period][week][slot] = script.Declare(id, 1, int64(instance.Teams))
		}
	})

	// indicator is 1 when the term equals the team and 0 otherwise
	indicator := func(term smt.Int, team int) smt.Int {
		return smt.Ite(smt.Eq(term, smt.Const(team)), smt.Const(1), smt.Const(0))
	}

	//** Every team plays exactly once per week
	for week := range instance.Weeks {
		weekSlots := make([]smt.Int, 0, 2*instance.Periods)
		for period := range instance.Periods {
			weekSlots = append(weekSlots, slots[period][week][0], slots[period][week][1])
		}
		script.Assert(smt.Distinct(weekSlots...))
	}

	//** Every pair of teams meets exactly once
	for first := 1; first <= instance.Teams; first++ {
		for second := first + 1; second <= instance.Teams; second++ {
			meetings := make([]smt.Int, 0, instance.Games())
			cells(instance, func(period, week int) {
				home, away := slots[period][week][0], slots[period][week][1]
				meets := smt.Or(
					smt.And(smt.Eq(home, smt.Const(first)), smt.Eq(away, smt.Const(second))),
					smt.And(smt.Eq(home, smt.Const(second)), smt.Eq(away, smt.Const(first))),
				)
				meetings = append(meetings, smt.Ite(meets, smt.Const(1), smt.Const(0)))
			})
			script.Assert(smt.Eq(smt.Sum(meetings...), smt.Const(1)))
		}
	}

	//** Every team plays at most PeriodCap times in the same period
	for period := range instance.Periods {
		for team := 1; team <= instance.Teams; team++ {
			appearances := make([]smt.Int, 0, 2*instance.Weeks)
			for week := range instance.Weeks {
				appearances = append(appearances, indicator(slots[period][week][0], team), indicator(slots[period][week][1], team))
			}
			script.Assert(smt.Le(smt.Sum(appearances...), smt.Const(encoder.options.periodCap())))
		}
	}

	if encoder.options.EnforceBalance {
		lower, upper := balanceBounds(instance)
		for team := 1; team <= instance.Teams; team++ {
			homeGames := make([]smt.Int, 0, instance.Games())
			cells(instance, func(period, week int) {
				homeGames = append(homeGames, indicator(slots[period][week][0], team))
			})
			total := smt.Sum(homeGames...)
			script.Assert(smt.And(smt.Le(smt.Const(lower), total), smt.Le(total, smt.Const(upper))))
		}
	}

	if encoder.options.SymmetryBreaking {
		for period := range instance.Periods {
			script.Assert(smt.Lt(slots[period][0][0], slots[period][0][1]))
		}
	}

	return script, nil
}

// Decode expects the raw assignment to map every cell index to the team playing there
func (encoder *smtEncoder) Decode(instance model.Instance, _ *smt.Script, raw model.RawAssignment) (model.Schedule, error) {
	indexer := model.NewInstanceIndexer(instance)

	games := make([]model.Game, 0, instance.Games())
	for week := range instance.Weeks {
		for period := range instance.Periods {
			var teams [2]int
			for slot := range instance.Slots {
				value, ok := raw[indexer.Cell(uint64(period), uint64(week), uint64(slot))]
				if !ok || value < 1 || value > int64(instance.Teams) {
					return model.Schedule{}, fmt.Errorf("%w: slot %d of period %d, week %d holds %v", model.ErrMalformedAssignment, slot, period, week, describeValue(value, ok))
				}
				teams[slot] = int(value)
			}
			games = append(games, model.Game{Week: week, Period: period, Home: teams[0], Away: teams[1]})
		}
	}

	return model.NewSchedule(instance.Periods, instance.Weeks, games), nil
}

func describeValue(value int64, ok bool) string {
	if !ok {
		return "no value"
	}
	return fmt.Sprintf("team %d", value)
}
