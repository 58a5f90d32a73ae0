package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/crillab/gophersat/solver"
	"github.com/limaJavier/roundrobin/pkg/encoder"
	"github.com/limaJavier/roundrobin/pkg/linear"
	"github.com/limaJavier/roundrobin/pkg/model"
	"github.com/samber/lo"
)

type gophersatSolver struct{}

// NewGophersatSolver returns an in-process pseudo-Boolean solver answering 0/1 programs.
// gophersat cannot be interrupted: a search outliving its timeout keeps running in the
// background until it ends and its answer is discarded.
func NewGophersatSolver() encoder.DecisionProcedure[*linear.Program] {
	return &gophersatSolver{}
}

func (gophersat *gophersatSolver) Solve(ctx context.Context, program *linear.Program, timeout time.Duration) (model.Answer, error) {
	constrs := make([]solver.PBConstr, 0, len(program.Constraints()))
	for _, constraint := range program.Constraints() {
		constrs = append(constrs, pbConstrs(constraint)...)
	}
	if len(constrs) == 0 {
		return model.Answer{}, fmt.Errorf("program %q has no constraints", program.Name)
	}

	type outcome struct {
		status solver.Status
		model  []bool
	}
	done := make(chan outcome, 1)
	go func() {
		s := solver.New(solver.ParsePBConstrs(constrs))
		status := s.Solve()
		if status == solver.Sat {
			done <- outcome{status: status, model: s.Model()}
			return
		}
		done <- outcome{status: status}
	}()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	select {
	case <-ctx.Done():
		return model.Answer{Outcome: model.Timeout}, nil
	case <-deadline.C:
		return model.Answer{Outcome: model.Timeout}, nil
	case result := <-done:
		switch result.status {
		case solver.Unsat:
			return model.Answer{Outcome: model.Infeasible}, nil
		case solver.Sat:
		default:
			return model.Answer{Outcome: model.Timeout}, nil
		}

		// Model()[i] is the value of variable i+1
		assignment := make(model.RawAssignment, program.Variables())
		for id := uint64(1); id <= program.Variables(); id++ {
			assignment[id] = lo.Ternary[int64](id <= uint64(len(result.model)) && result.model[id-1], 1, 0)
		}
		return model.Answer{Outcome: model.Satisfied, Assignment: assignment}, nil
	}
}

// pbConstrs translates a linear constraint into gophersat's "weighted sum >= bound" form
func pbConstrs(constraint linear.Constraint) []solver.PBConstr {
	literals := lo.Map(constraint.Terms, func(term linear.Term, _ int) int { return int(term.Variable) })
	weights := lo.Map(constraint.Terms, func(term linear.Term, _ int) int { return term.Coefficient })

	// gophersat rewrites the slices it receives, every constraint gets its own copies
	atLeast := func() solver.PBConstr {
		return solver.GtEq(append([]int{}, literals...), append([]int{}, weights...), constraint.RHS)
	}
	atMost := func() solver.PBConstr {
		return solver.LtEq(append([]int{}, literals...), append([]int{}, weights...), constraint.RHS)
	}

	switch constraint.Sense {
	case linear.GreaterEqual:
		return []solver.PBConstr{atLeast()}
	case linear.LessEqual:
		return []solver.PBConstr{atMost()}
	default:
		return []solver.PBConstr{atLeast(), atMost()}
	}
}
