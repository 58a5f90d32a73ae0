package solver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/limaJavier/roundrobin/pkg/encoder"
	"github.com/limaJavier/roundrobin/pkg/model"
	"github.com/limaJavier/roundrobin/pkg/smt"
)

const z3 = "z3"

type z3Solver struct{}

// NewZ3Solver returns a procedure piping SMT-LIB2 scripts into the z3 executable
func NewZ3Solver() encoder.DecisionProcedure[*smt.Script] {
	return &z3Solver{}
}

func (solver *z3Solver) Solve(ctx context.Context, script *smt.Script, timeout time.Duration) (model.Answer, error) {
	run, err := execute(ctx, z3, timeout+time.Second, strings.NewReader(script.SMTLIB()),
		"-smt2", "-in",
		fmt.Sprintf("-T:%d", timeoutSeconds(timeout)),
	)
	if err != nil {
		return model.Answer{}, err
	} else if run.killed {
		return model.Answer{Outcome: model.Timeout}, nil
	}

	// z3 exits with 1 when get-value follows an unsat answer, the status line decides
	status, values, err := smt.ParseOutput(run.stdout)
	if err != nil {
		return model.Answer{}, fmt.Errorf("an error occurred during z3 execution: %w : %v", err, run.stderr)
	}

	switch status {
	case smt.Unsat:
		return model.Answer{Outcome: model.Infeasible}, nil
	case smt.Unknown:
		return model.Answer{Outcome: model.Timeout}, nil
	}

	assignment := make(model.RawAssignment, len(values))
	for id, value := range values {
		assignment[id] = value
	}
	return model.Answer{Outcome: model.Satisfied, Assignment: assignment}, nil
}
