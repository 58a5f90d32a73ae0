package smt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Status is the answer of a check-sat command
type Status string

const (
	Sat     Status = "sat"
	Unsat   Status = "unsat"
	Unknown Status = "unknown"
)

var ErrSolverOutput = errors.New("malformed SMT solver output")

// ParseOutput reads the check-sat status and, when satisfiable, the get-value response of a
// solver run on a script rendered by SMTLIB
func ParseOutput(output string) (Status, Values, error) {
	trimmed := strings.TrimSpace(output)
	statusLine, rest, _ := strings.Cut(trimmed, "\n")
	status := Status(strings.TrimSpace(statusLine))

	switch status {
	case Unsat, Unknown:
		return status, nil, nil
	case "timeout":
		return Unknown, nil, nil
	case Sat:
	default:
		return "", nil, fmt.Errorf("%w: unexpected status %q", ErrSolverOutput, statusLine)
	}

	values, err := parseValues(rest)
	if err != nil {
		return "", nil, err
	}
	return Sat, values, nil
}

// parseValues reads a response of the form ((x1 3) (x2 (- 1)) ...)
func parseValues(response string) (Values, error) {
	tokens := tokenize(response)
	values := make(Values)
	if len(tokens) == 0 {
		return values, nil
	}
	if tokens[0] != "(" || tokens[len(tokens)-1] != ")" {
		return nil, fmt.Errorf("%w: get-value response is not a list", ErrSolverOutput)
	}

	tokens = tokens[1 : len(tokens)-1]
	for len(tokens) > 0 {
		var (
			id    uint64
			value int64
			err   error
		)
		switch {
		case len(tokens) >= 4 && tokens[0] == "(" && tokens[3] == ")":
			id, err = parseName(tokens[1])
			if err == nil {
				value, err = strconv.ParseInt(tokens[2], 10, 64)
			}
			tokens = tokens[4:]
		case len(tokens) >= 7 && tokens[0] == "(" && tokens[2] == "(" && tokens[3] == "-" && tokens[5] == ")" && tokens[6] == ")":
			id, err = parseName(tokens[1])
			if err == nil {
				value, err = strconv.ParseInt(tokens[4], 10, 64)
				value = -value
			}
			tokens = tokens[7:]
		default:
			return nil, fmt.Errorf("%w: unexpected get-value entry near %q", ErrSolverOutput, strings.Join(tokens, " "))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSolverOutput, err)
		}
		values[id] = value
	}
	return values, nil
}

func parseName(name string) (uint64, error) {
	if !strings.HasPrefix(name, "x") {
		return 0, fmt.Errorf("unknown variable %q", name)
	}
	return strconv.ParseUint(name[1:], 10, 64)
}

func tokenize(text string) []string {
	text = strings.ReplaceAll(text, "(", " ( ")
	text = strings.ReplaceAll(text, ")", " ) ")
	return strings.Fields(text)
}
