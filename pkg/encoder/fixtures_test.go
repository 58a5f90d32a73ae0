package encoder

import (
	"context"
	"time"

	"github.com/limaJavier/roundrobin/pkg/cp"
	"github.com/limaJavier/roundrobin/pkg/linear"
	"github.com/limaJavier/roundrobin/pkg/model"
	"github.com/limaJavier/roundrobin/pkg/smt"
)

// A valid six-team tournament, rows[week][period] = [home, away]
var sixTeamRows = [][][2]int{
	{{1, 2}, {3, 4}, {5, 6}},
	{{1, 3}, {2, 5}, {4, 6}},
	{{2, 6}, {3, 5}, {1, 4}},
	{{4, 5}, {6, 1}, {2, 3}},
	{{6, 3}, {4, 2}, {5, 1}},
}

func sixTeams() (model.Instance, model.Schedule) {
	instance, err := model.NewInstance(6)
	if err != nil {
		panic(err)
	}
	return instance, model.FromWeekMajor(sixTeamRows)
}

// Six teams with the first game of the first week played the other way around
func sixTeamsFlipped() (model.Instance, model.Schedule) {
	instance, _ := sixTeams()
	rows := make([][][2]int, len(sixTeamRows))
	for week, row := range sixTeamRows {
		rows[week] = append([][2]int{}, row...)
	}
	rows[0][0] = [2]int{2, 1}
	return instance, model.FromWeekMajor(rows)
}

func slotTeams(instance model.Instance, schedule model.Schedule, visit func(cell uint64, team int)) {
	indexer := model.NewInstanceIndexer(instance)
	for _, game := range schedule.Games() {
		visit(indexer.Cell(uint64(game.Period), uint64(game.Week), 0), game.Home)
		visit(indexer.Cell(uint64(game.Period), uint64(game.Week), 1), game.Away)
	}
}

func cpValues(instance model.Instance, schedule model.Schedule) []int {
	values := make([]int, instance.Periods*instance.Weeks*instance.Slots)
	slotTeams(instance, schedule, func(cell uint64, team int) { values[cell-1] = team })
	return values
}

func cpAssignment(instance model.Instance, formal *cp.Model, schedule model.Schedule) model.RawAssignment {
	raw := make(model.RawAssignment)
	slotTeams(instance, schedule, func(cell uint64, team int) {
		variable := cp.IntVar(cell - 1)
		domain := formal.Domain(variable)
		for value := domain.Min; value <= domain.Max; value++ {
			raw[formal.Literal(variable, value)] = 0
		}
		raw[formal.Literal(variable, team)] = 1
	})
	return raw
}

func smtAssignment(instance model.Instance, schedule model.Schedule) model.RawAssignment {
	raw := make(model.RawAssignment)
	slotTeams(instance, schedule, func(cell uint64, team int) { raw[cell] = int64(team) })
	return raw
}

func smtValues(raw model.RawAssignment) smt.Values {
	values := make(smt.Values, len(raw))
	for id, value := range raw {
		values[id] = value
	}
	return values
}

func mipAssignment(instance model.Instance, schedule model.Schedule) model.RawAssignment {
	indexer := model.NewInstanceIndexer(instance)
	raw := make(model.RawAssignment)
	for _, game := range schedule.Games() {
		raw[indexer.Index(uint64(game.Period), uint64(game.Week), 0, uint64(game.Home-1))] = 1
		raw[indexer.Index(uint64(game.Period), uint64(game.Week), 1, uint64(game.Away-1))] = 1
	}
	return raw
}

func mipValues(program *linear.Program, raw model.RawAssignment) []bool {
	values := make([]bool, program.Variables()+1)
	for id, value := range raw {
		values[id] = value == 1
	}
	return program.Complete(values)
}

// fakeProcedure hands back a fixed answer
type fakeProcedure[M any] struct {
	answer  model.Answer
	err     error
	timeout time.Duration
}

func (procedure *fakeProcedure[M]) Solve(_ context.Context, _ M, timeout time.Duration) (model.Answer, error) {
	procedure.timeout = timeout
	return procedure.answer, procedure.err
}
