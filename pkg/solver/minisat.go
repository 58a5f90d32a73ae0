package solver

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/limaJavier/roundrobin/pkg/cp"
	"github.com/limaJavier/roundrobin/pkg/encoder"
	"github.com/limaJavier/roundrobin/pkg/model"
)

const minisat = "minisat"

type minisatSolver struct{}

// NewMinisatSolver returns a procedure feeding the CNF compilation of constraint models to
// the minisat executable
func NewMinisatSolver() encoder.DecisionProcedure[*cp.Model] {
	return &minisatSolver{}
}

func (solver *minisatSolver) Solve(ctx context.Context, formal *cp.Model, timeout time.Duration) (model.Answer, error) {
	inputFile, err := writeTempFile("dimacs-*.cnf", formal.CNF().ToDIMACS())
	if err != nil {
		return model.Answer{}, err
	}
	defer os.Remove(inputFile) // Ensure the file is removed after execution

	outputFile, err := writeTempFile("minisat_output-*.cnf", "")
	if err != nil {
		return model.Answer{}, err
	}
	defer os.Remove(outputFile)

	// minisat has no wall clock limit, it is killed once the timeout elapses
	run, err := execute(ctx, minisat, timeout, nil, "-verb=0", inputFile, outputFile)
	if err != nil {
		return model.Answer{}, err
	}

	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
	switch {
	case run.killed:
		return model.Answer{Outcome: model.Timeout}, nil
	case run.exitCode == 20:
		return model.Answer{Outcome: model.Infeasible}, nil
	case run.exitCode != 10:
		return model.Answer{}, fmt.Errorf("an error occurred during minisat execution: exit code %d : %v", run.exitCode, run.stderr)
	}

	output, err := os.ReadFile(outputFile)
	if err != nil {
		return model.Answer{}, fmt.Errorf("failed to read output file: %v", err)
	}
	solution, err := parseMinisatSolution(string(output))
	if err != nil {
		return model.Answer{}, err
	}
	return model.Answer{Outcome: model.Satisfied, Assignment: indicatorAssignment(solution, formal.Indicators())}, nil
}

// parseMinisatSolution reads a minisat result file: a "SAT" header followed by a line of
// literals ending in 0
func parseMinisatSolution(solverOutput string) ([]int64, error) {
	lines := strings.Split(solverOutput, "\n")
	if strings.TrimSpace(lines[0]) != "SAT" || len(lines) < 2 {
		return nil, fmt.Errorf("unexpected minisat output header: %q", lines[0])
	}

	literals := make([]int64, 0)
	for _, field := range strings.Fields(lines[1]) {
		literal, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid literal in solver output: %v", err)
		}
		if literal != 0 {
			literals = append(literals, literal)
		}
	}
	return literals, nil
}
