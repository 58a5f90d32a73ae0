package solver

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/limaJavier/roundrobin/pkg/cp"
	"github.com/limaJavier/roundrobin/pkg/encoder"
	"github.com/limaJavier/roundrobin/pkg/model"
)

const minizinc = "minizinc"

// MiniZinc backends
const (
	Gecode  = "gecode"
	Chuffed = "chuffed"
)

type minizincSolver struct {
	backend string
}

// NewMiniZincSolver returns a procedure running constraint models through the minizinc
// executable with the given backend solver
func NewMiniZincSolver(backend string) encoder.DecisionProcedure[*cp.Model] {
	return &minizincSolver{backend: backend}
}

func (solver *minizincSolver) Solve(ctx context.Context, formal *cp.Model, timeout time.Duration) (model.Answer, error) {
	modelFile, err := writeTempFile("sts-*.mzn", formal.MiniZinc())
	if err != nil {
		return model.Answer{}, err
	}
	defer os.Remove(modelFile) // Ensure the file is removed after execution

	// minizinc stops by itself at the time limit, the extra second lets it report so
	run, err := execute(ctx, minizinc, timeout+time.Second, nil,
		"--solver", solver.backend,
		"--time-limit", fmt.Sprint(timeout.Milliseconds()),
		modelFile,
	)
	if err != nil {
		return model.Answer{}, err
	} else if run.killed {
		return model.Answer{Outcome: model.Timeout}, nil
	} else if run.exitCode != 0 {
		return model.Answer{}, fmt.Errorf("an error occurred during minizinc (%v) execution: exit code %d : %v", solver.backend, run.exitCode, run.stderr)
	}

	values, found, err := formal.ParseMiniZincSolution(run.stdout)
	if err != nil {
		return model.Answer{}, err
	} else if !found {
		if strings.Contains(run.stdout, cp.Unsatisfiable) {
			return model.Answer{Outcome: model.Infeasible}, nil
		}
		return model.Answer{Outcome: model.Timeout}, nil
	}

	assignment := make(model.RawAssignment, len(values))
	for variable, value := range values {
		assignment[formal.Literal(cp.IntVar(variable), value)] = 1
	}
	return model.Answer{Outcome: model.Satisfied, Assignment: assignment}, nil
}
