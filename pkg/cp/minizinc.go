package cp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	SolutionSeparator = "----------"
	Unsatisfiable     = "=====UNSATISFIABLE====="
	Unknown           = "=====UNKNOWN====="
)

var ErrMiniZincOutput = errors.New("malformed MiniZinc output")

// MiniZinc renders the model as a MiniZinc program. Variable i is declared as x{i+1}, which is
// the name the solver reports it under.
func (model *Model) MiniZinc() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%% %v\n", model.Name)
	builder.WriteString("include \"globals.mzn\";\n\n")

	for variable, domain := range model.domains {
		fmt.Fprintf(&builder, "var %d..%d: %v;\n", domain.Min, domain.Max, varName(IntVar(variable)))
	}
	builder.WriteString("\n")

	for _, constraint := range model.constraints {
		fmt.Fprintf(&builder, "constraint %v;\n", constraint.minizinc())
	}
	builder.WriteString("\n")

	if model.Search == InputOrder {
		builder.WriteString("solve satisfy;\n")
	} else {
		all := lo.Map(lo.Range(len(model.domains)), func(i int, _ int) IntVar { return IntVar(i) })
		fmt.Fprintf(&builder, "solve :: int_search(%v, %v, indomain_min) satisfy;\n", varList(all), model.Search)
	}
	return builder.String()
}

// ParseMiniZincSolution reads the values of the model's variables from the default (dzn) output
// of a MiniZinc run. found is false when the output reports no solution.
func (model *Model) ParseMiniZincSolution(output string) (values []int, found bool, err error) {
	if !strings.Contains(output, SolutionSeparator) {
		return nil, false, nil
	}

	values = make([]int, len(model.domains))
	assigned := make([]bool, len(model.domains))
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == SolutionSeparator {
			break
		}
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}

		name, value, ok := strings.Cut(strings.TrimSuffix(line, ";"), "=")
		if !ok {
			return nil, false, fmt.Errorf("%w: unexpected line %q", ErrMiniZincOutput, line)
		}
		name = strings.TrimSpace(name)
		index, err := strconv.Atoi(strings.TrimPrefix(name, "x"))
		if !strings.HasPrefix(name, "x") || err != nil || index < 1 || index > len(values) {
			return nil, false, fmt.Errorf("%w: unknown variable %q", ErrMiniZincOutput, name)
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, false, fmt.Errorf("%w: invalid value for %v: %v", ErrMiniZincOutput, name, err)
		}
		values[index-1], assigned[index-1] = parsed, true
	}

	if missing := lo.IndexOf(assigned, false); missing != -1 {
		return nil, false, fmt.Errorf("%w: no value for %v", ErrMiniZincOutput, varName(IntVar(missing)))
	}
	return values, true, nil
}
