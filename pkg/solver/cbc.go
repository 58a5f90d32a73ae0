package solver

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/limaJavier/roundrobin/pkg/encoder"
	"github.com/limaJavier/roundrobin/pkg/linear"
	"github.com/limaJavier/roundrobin/pkg/model"
)

const cbc = "cbc"

type cbcSolver struct{}

// NewCBCSolver returns a procedure solving 0/1 programs with the cbc executable through LP files
func NewCBCSolver() encoder.DecisionProcedure[*linear.Program] {
	return &cbcSolver{}
}

func (solver *cbcSolver) Solve(ctx context.Context, program *linear.Program, timeout time.Duration) (model.Answer, error) {
	var lp bytes.Buffer
	if err := program.WriteLP(&lp); err != nil {
		return model.Answer{}, fmt.Errorf("cannot write LP file: %w", err)
	}

	// Create temporary files to hold the program and the solution
	inputFile, err := writeTempFile("sts-*.lp", lp.String())
	if err != nil {
		return model.Answer{}, err
	}
	defer os.Remove(inputFile) // Ensure the file is removed after execution

	outputFile, err := writeTempFile("cbc_output-*.sol", "")
	if err != nil {
		return model.Answer{}, err
	}
	defer os.Remove(outputFile)

	run, err := execute(ctx, cbc, timeout+time.Second, nil,
		inputFile,
		"sec", fmt.Sprint(timeoutSeconds(timeout)),
		"solve",
		"solu", outputFile,
	)
	if err != nil {
		return model.Answer{}, err
	} else if run.killed {
		return model.Answer{Outcome: model.Timeout}, nil
	} else if run.exitCode != 0 {
		return model.Answer{}, fmt.Errorf("an error occurred during cbc execution: exit code %d : %v", run.exitCode, run.stderr)
	}

	solution, err := os.ReadFile(outputFile)
	if err != nil {
		return model.Answer{}, fmt.Errorf("cannot read cbc solution: %w", err)
	}
	return parseCBCSolution(string(solution), program.Variables())
}

// parseCBCSolution reads a cbc solution file: a status line followed by one
// "index name value reduced-cost" line per non-zero variable
func parseCBCSolution(solution string, variables uint64) (model.Answer, error) {
	lines := strings.Split(strings.TrimSpace(solution), "\n")
	status := strings.ToLower(strings.TrimSpace(lines[0]))

	switch {
	case strings.HasPrefix(status, "optimal"):
	case strings.HasPrefix(status, "infeasible"), strings.HasPrefix(status, "integer infeasible"):
		return model.Answer{Outcome: model.Infeasible}, nil
	case status == "":
		return model.Answer{Outcome: model.Timeout}, nil
	case strings.HasPrefix(status, "stopped"):
		if strings.Contains(status, "no integer solution") || len(lines) == 1 {
			return model.Answer{Outcome: model.Timeout}, nil
		}
		// Stopped with an integer solution at hand: a feasibility program needs nothing more
	default:
		return model.Answer{}, fmt.Errorf("unexpected cbc status %q", lines[0])
	}

	assignment := make(model.RawAssignment, variables)
	for id := uint64(1); id <= variables; id++ {
		assignment[id] = 0
	}
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		// Infeasible entries are marked with a leading "**"
		if len(fields) > 0 && fields[0] == "**" {
			fields = fields[1:]
		}
		if len(fields) < 3 {
			continue
		}

		variable, ok := linear.ParseVariableName(fields[1])
		if !ok || uint64(variable) > variables {
			return model.Answer{}, fmt.Errorf("unknown variable %q in cbc solution", fields[1])
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return model.Answer{}, fmt.Errorf("invalid value in cbc solution: %v", err)
		}
		assignment[uint64(variable)] = int64(math.Round(value))
	}
	return model.Answer{Outcome: model.Satisfied, Assignment: assignment}, nil
}
