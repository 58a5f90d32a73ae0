package solver

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/limaJavier/roundrobin/pkg/cp"
	"github.com/limaJavier/roundrobin/pkg/encoder"
	"github.com/limaJavier/roundrobin/pkg/model"
	"github.com/samber/lo"
)

const kissat = "kissat"

type kissatSolver struct{}

// NewKissatSolver returns a procedure feeding the CNF compilation of constraint models to
// the kissat executable
func NewKissatSolver() encoder.DecisionProcedure[*cp.Model] {
	return &kissatSolver{}
}

func (solver *kissatSolver) Solve(ctx context.Context, formal *cp.Model, timeout time.Duration) (model.Answer, error) {
	dimacs := formal.CNF().ToDIMACS() // Transform the model into DIMACS-CNF string format

	run, err := execute(ctx, kissat, timeout, strings.NewReader(dimacs), "-q", "--relaxed", fmt.Sprintf("--time=%d", timeoutSeconds(timeout)))
	if err != nil {
		return model.Answer{}, err
	}

	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
	switch {
	case run.killed || run.exitCode == 0:
		return model.Answer{Outcome: model.Timeout}, nil
	case run.exitCode == 20:
		return model.Answer{Outcome: model.Infeasible}, nil
	case run.exitCode != 10:
		return model.Answer{}, fmt.Errorf("an error occurred during kissat execution: exit code %d : %v", run.exitCode, run.stderr)
	}

	solution, err := parseSolution(run.stdout)
	if err != nil {
		return model.Answer{}, err
	}
	return model.Answer{Outcome: model.Satisfied, Assignment: indicatorAssignment(solution, formal.Indicators())}, nil
}

// parseSolution reads the literals of the "v" lines of a SAT competition output
func parseSolution(solverOutput string) ([]int64, error) {
	valueLines := lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
		return len(line) > 0 && line[0] == 'v'
	})

	literals := make([]int64, 0)
	for _, line := range valueLines {
		for _, field := range strings.Fields(line[1:]) {
			literal, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid literal in solver output: %v", err)
			}
			if literal != 0 {
				literals = append(literals, literal)
			}
		}
	}
	return literals, nil
}

// indicatorAssignment keeps the value of the variables 1..indicators from a list of literals
func indicatorAssignment(literals []int64, indicators uint64) model.RawAssignment {
	assignment := make(model.RawAssignment, indicators)
	for id := uint64(1); id <= indicators; id++ {
		assignment[id] = 0
	}
	for _, literal := range literals {
		if literal > 0 && uint64(literal) <= indicators {
			assignment[uint64(literal)] = 1
		}
	}
	return assignment
}
