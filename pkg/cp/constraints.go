package cp

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type Constraint interface {
	// Checks whether the constraint holds for the values (indexed by variable)
	Satisfied(values []int) bool
	// Renders the constraint as a MiniZinc expression
	minizinc() string
}

// AllDifferent forces every variable to take a distinct value
type AllDifferent struct {
	Vars []IntVar
}

func (constraint AllDifferent) Satisfied(values []int) bool {
	taken := lo.Map(constraint.Vars, func(variable IntVar, _ int) int { return values[variable] })
	return len(lo.Uniq(taken)) == len(taken)
}

func (constraint AllDifferent) minizinc() string {
	return fmt.Sprintf("alldifferent(%v)", varList(constraint.Vars))
}

// Less forces A < B
type Less struct {
	A IntVar
	B IntVar
}

func (constraint Less) Satisfied(values []int) bool {
	return values[constraint.A] < values[constraint.B]
}

func (constraint Less) minizinc() string {
	return fmt.Sprintf("%v < %v", varName(constraint.A), varName(constraint.B))
}

// Among forces the number of variables taking Value to lie in [Min, Max]
type Among struct {
	Vars  []IntVar
	Value int
	Min   int
	Max   int
}

func (constraint Among) Satisfied(values []int) bool {
	count := lo.CountBy(constraint.Vars, func(variable IntVar) bool { return values[variable] == constraint.Value })
	return count >= constraint.Min && count <= constraint.Max
}

func (constraint Among) minizinc() string {
	terms := lo.Map(constraint.Vars, func(variable IntVar, _ int) string {
		return fmt.Sprintf("bool2int(%v = %d)", varName(variable), constraint.Value)
	})
	return fmt.Sprintf("sum([%v]) in %d..%d", strings.Join(terms, ", "), constraint.Min, constraint.Max)
}

// PairOnce forces exactly one position i where {Homes[i], Aways[i]} = {First, Second}
type PairOnce struct {
	Homes  []IntVar
	Aways  []IntVar
	First  int
	Second int
}

func (constraint PairOnce) Satisfied(values []int) bool {
	meetings := lo.CountBy(lo.Range(len(constraint.Homes)), func(i int) bool {
		home, away := values[constraint.Homes[i]], values[constraint.Aways[i]]
		return (home == constraint.First && away == constraint.Second) || (home == constraint.Second && away == constraint.First)
	})
	return meetings == 1
}

func (constraint PairOnce) minizinc() string {
	terms := lo.Map(lo.Range(len(constraint.Homes)), func(i int, _ int) string {
		home, away := varName(constraint.Homes[i]), varName(constraint.Aways[i])
		return fmt.Sprintf("bool2int((%v = %d /\\ %v = %d) \\/ (%v = %d /\\ %v = %d))",
			home, constraint.First, away, constraint.Second,
			home, constraint.Second, away, constraint.First,
		)
	})
	return fmt.Sprintf("sum([%v]) = 1", strings.Join(terms, ", "))
}

func varName(variable IntVar) string {
	return fmt.Sprintf("x%d", variable+1)
}

func varList(vars []IntVar) string {
	return "[" + strings.Join(lo.Map(vars, func(variable IntVar, _ int) string { return varName(variable) }), ", ") + "]"
}
