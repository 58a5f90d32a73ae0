package solver

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/limaJavier/roundrobin/pkg/cp"
	"github.com/limaJavier/roundrobin/pkg/encoder"
	"github.com/limaJavier/roundrobin/pkg/model"
)

const pollInterval = 10 * time.Millisecond

type giniSolver struct{}

// NewGiniSolver returns an in-process CDCL solver answering constraint models through their
// CNF compilation
func NewGiniSolver() encoder.DecisionProcedure[*cp.Model] {
	return &giniSolver{}
}

func (solver *giniSolver) Solve(ctx context.Context, formal *cp.Model, timeout time.Duration) (model.Answer, error) {
	cnf := formal.CNF()

	g := gini.New()
	for _, clause := range cnf.Clauses {
		for _, literal := range clause {
			g.Add(z.Dimacs2Lit(int(literal)))
		}
		g.Add(z.LitNull)
	}

	if result := awaitGini(ctx, g.GoSolve(), timeout); result != 1 {
		return timedOutOr(result, -1), nil
	}

	assignment := make(model.RawAssignment, formal.Indicators())
	for id := uint64(1); id <= formal.Indicators(); id++ {
		if g.Value(z.Dimacs2Lit(int(id))) {
			assignment[id] = 1
		} else {
			assignment[id] = 0
		}
	}
	return model.Answer{Outcome: model.Satisfied, Assignment: assignment}, nil
}

type giniSearch interface {
	Test() (int, bool)
	Stop() int
}

// awaitGini polls a background search until it ends, the timeout elapses or the context is
// done. It returns 1 for sat, -1 for unsat and 0 when the search was stopped.
func awaitGini(ctx context.Context, search giniSearch, timeout time.Duration) int {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if result, done := search.Test(); done {
			return result
		}

		select {
		case <-ctx.Done():
			search.Stop()
			return 0
		case <-deadline.C:
			return search.Stop()
		case <-ticker.C:
		}
	}
}

// timedOutOr maps a solver status to the answer of an unsuccessful run: unsat when the status
// equals the unsat code and timeout otherwise
func timedOutOr(status, unsat int) model.Answer {
	if status == unsat {
		return model.Answer{Outcome: model.Infeasible}
	}
	return model.Answer{Outcome: model.Timeout}
}
