package encoder

import (
	"fmt"

	"github.com/limaJavier/roundrobin/pkg/cp"
	"github.com/limaJavier/roundrobin/pkg/model"
)

type cpEncoder struct {
	options Options
}

// NewCPEncoder returns an encoder whose formal model holds one integer variable per slot, its
// value being the team playing there. Variable v stands for the slot with cell index v+1.
func NewCPEncoder(options Options) Encoder[*cp.Model] {
	return &cpEncoder{options: options}
}

func (encoder *cpEncoder) Paradigm() Paradigm {
	return CP
}

func (encoder *cpEncoder) Encode(instance model.Instance) (*cp.Model, error) {
	if _, err := model.NewInstance(instance.Teams); err != nil {
		return nil, err
	}

	indexer := model.NewInstanceIndexer(instance)
	slotVar := func(period, week, slot int) cp.IntVar {
		return cp.IntVar(indexer.Cell(uint64(period), uint64(week), uint64(slot)) - 1)
	}

	formal := cp.NewModel(fmt.Sprintf("sts_%d", instance.Teams))
	formal.Search = encoder.options.Search
	for range instance.Periods * instance.Weeks * instance.Slots {
		formal.NewIntVar(1, instance.Teams)
	}

	homes, aways := make([]cp.IntVar, 0, instance.Games()), make([]cp.IntVar, 0, instance.Games())
	cells(instance, func(period, week int) {
		homes = append(homes, slotVar(period, week, 0))
		aways = append(aways, slotVar(period, week, 1))
	})

	//** Every team plays exactly once per week (which also rules out self-play)
	for week := range instance.Weeks {
		weekSlots := make([]cp.IntVar, 0, 2*instance.Periods)
		for period := range instance.Periods {
			weekSlots = append(weekSlots, slotVar(period, week, 0), slotVar(period, week, 1))
		}
		formal.Add(cp.AllDifferent{Vars: weekSlots})
	}

	//** Every pair of teams meets exactly once
	for first := 1; first <= instance.Teams; first++ {
		for second := first + 1; second <= instance.Teams; second++ {
			formal.Add(cp.PairOnce{Homes: homes, Aways: aways, First: first, Second: second})
		}
	}

	//** Every team plays at most PeriodCap times in the same period
	for period := range instance.Periods {
		periodSlots := make([]cp.IntVar, 0, 2*instance.Weeks)
		for week := range instance.Weeks {
			periodSlots = append(periodSlots, slotVar(period, week, 0), slotVar(period, week, 1))
		}
		for team := 1; team <= instance.Teams; team++ {
			formal.Add(cp.Among{Vars: periodSlots, Value: team, Min: 0, Max: encoder.options.periodCap()})
		}
	}

	if encoder.options.EnforceBalance {
		lower, upper := balanceBounds(instance)
		for team := 1; team <= instance.Teams; team++ {
			formal.Add(cp.Among{Vars: homes, Value: team, Min: lower, Max: upper})
		}
	}

	if encoder.options.SymmetryBreaking {
		for period := range instance.Periods {
			formal.Add(cp.Less{A: slotVar(period, 0, 0), B: slotVar(period, 0, 1)})
		}
	}

	return formal, nil
}

// Decode expects the raw assignment to map the indicator cp.Model.Literal(slot, team) to 1
// for the team playing in each slot and to 0 (or nothing) for every other team
func (encoder *cpEncoder) Decode(instance model.Instance, formal *cp.Model, raw model.RawAssignment) (model.Schedule, error) {
	indexer := model.NewInstanceIndexer(instance)
	if formal.Vars() != instance.Periods*instance.Weeks*instance.Slots {
		return model.Schedule{}, fmt.Errorf("%w: model has %d variables, expected %d", model.ErrMalformedAssignment, formal.Vars(), instance.Periods*instance.Weeks*instance.Slots)
	}

	games := make([]model.Game, 0, instance.Games())
	for week := range instance.Weeks {
		for period := range instance.Periods {
			var teams [2]int
			for slot := range instance.Slots {
				variable := cp.IntVar(indexer.Cell(uint64(period), uint64(week), uint64(slot)) - 1)
				team, err := indicatedTeam(instance, raw, func(team int) uint64 { return formal.Literal(variable, team) })
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

// indicatedTeam returns the only team whose indicator is set among the indicators given by
// literal, failing when zero or several are set or when an indicator is not Boolean
func indicatedTeam(instance model.Instance, raw model.RawAssignment, literal func(team int) uint64) (int, error) {
	set := make([]int, 0, 1)
	for team := 1; team <= instance.Teams; team++ {
		switch value := raw[literal(team)]; value {
		case 0:
		case 1:
			set = append(set, team)
		default:
			return 0, fmt.Errorf("%w: indicator of team %d has value %d", model.ErrMalformedAssignment, team, value)
		}
	}

	if len(set) != 1 {
		return 0, fmt.Errorf("%w: %d teams indicated", model.ErrMalformedAssignment, len(set))
	}
	return set[0], nil
}
