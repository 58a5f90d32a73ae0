package linear

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const termsPerLine = 8

// VariableName is the name a variable gets in LP files
func VariableName(variable Variable) string {
	return "x" + strconv.FormatUint(uint64(variable), 10)
}

// ParseVariableName is the inverse of VariableName
func ParseVariableName(name string) (Variable, bool) {
	if !strings.HasPrefix(name, "x") {
		return 0, false
	}
	index, err := strconv.ParseUint(name[1:], 10, 64)
	if err != nil || index == 0 {
		return 0, false
	}
	return Variable(index), true
}

// WriteLP writes the program in CPLEX LP format with a constant objective, which any
// MIP solver accepting LP files treats as a feasibility problem
func (program *Program) WriteLP(writer io.Writer) error {
	buffered := bufio.NewWriter(writer)

	fmt.Fprintf(buffered, "\\ Problem: %v\n", program.Name)
	buffered.WriteString("Minimize\n")
	if program.variables > 0 {
		fmt.Fprintf(buffered, " obj: 0 %v\n", VariableName(1))
	} else {
		buffered.WriteString(" obj:\n")
	}

	buffered.WriteString("Subject To\n")
	for i, constraint := range program.constraints {
		fmt.Fprintf(buffered, " c%d: %v %v %d\n", i+1, formatTerms(constraint.Terms), constraint.Sense, constraint.RHS)
	}

	if program.variables > 0 {
		buffered.WriteString("Binaries\n")
		for variable := Variable(1); uint64(variable) <= program.variables; variable++ {
			fmt.Fprintf(buffered, " %v", VariableName(variable))
			if uint64(variable)%termsPerLine == 0 {
				buffered.WriteString("\n")
			}
		}
		buffered.WriteString("\n")
	}
	buffered.WriteString("End\n")

	return buffered.Flush()
}

func formatTerms(terms []Term) string {
	if len(terms) == 0 {
		return "0 " + VariableName(1)
	}

	var builder strings.Builder
	for i, term := range terms {
		if i > 0 && i%termsPerLine == 0 {
			builder.WriteString("\n  ")
		}

		coefficient := term.Coefficient
		switch {
		case i == 0 && coefficient < 0:
			builder.WriteString("- ")
			coefficient = -coefficient
		case i > 0 && coefficient < 0:
			builder.WriteString(" - ")
			coefficient = -coefficient
		case i > 0:
			builder.WriteString(" + ")
		}

		if coefficient != 1 {
			fmt.Fprintf(&builder, "%d ", coefficient)
		}
		builder.WriteString(VariableName(term.Variable))
	}
	return builder.String()
}
