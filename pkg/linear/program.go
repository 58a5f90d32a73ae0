// Package linear models 0/1 integer linear programs: binary variables, linear constraints
// over them and the linearization of Boolean conjunctions.
package linear

import (
	"fmt"

	"github.com/samber/lo"
)

// Variable is a binary decision variable identified by a 1-based index
type Variable uint64

// Term is a coefficient applied to a variable
type Term struct {
	Coefficient int
	Variable    Variable
}

type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
	Equal
)

var senseSymbols = map[Sense]string{
	LessEqual:    "<=",
	GreaterEqual: ">=",
	Equal:        "=",
}

func (sense Sense) String() string {
	return senseSymbols[sense]
}

// Constraint states that the sum of its terms relates to RHS according to Sense
type Constraint struct {
	Terms []Term
	Sense Sense
	RHS   int
}

// Holds checks whether the constraint is satisfied by the given 0/1 values (indexed by variable)
func (constraint Constraint) Holds(values []bool) bool {
	sum := lo.SumBy(constraint.Terms, func(term Term) int {
		if int(term.Variable) < len(values) && values[term.Variable] {
			return term.Coefficient
		}
		return 0
	})

	switch constraint.Sense {
	case LessEqual:
		return sum <= constraint.RHS
	case GreaterEqual:
		return sum >= constraint.RHS
	default:
		return sum == constraint.RHS
	}
}

// Program is a feasibility 0/1 linear program. Variables are numbered from 1 in creation order.
type Program struct {
	Name         string
	variables    uint64
	constraints  []Constraint
	conjunctions []Conjunction
}

func NewProgram(name string) *Program {
	return &Program{
		Name:         name,
		constraints:  make([]Constraint, 0),
		conjunctions: make([]Conjunction, 0),
	}
}

// NewBinary introduces a fresh binary variable
func (program *Program) NewBinary() Variable {
	program.variables++
	return Variable(program.variables)
}

// NewBinaries introduces count fresh binary variables with consecutive indices
func (program *Program) NewBinaries(count uint64) []Variable {
	return lo.Times(int(count), func(_ int) Variable { return program.NewBinary() })
}

func (program *Program) Variables() uint64 {
	return program.variables
}

func (program *Program) Constraints() []Constraint {
	return program.constraints
}

func (program *Program) Add(constraint Constraint) {
	for _, term := range constraint.Terms {
		if term.Variable == 0 || uint64(term.Variable) > program.variables {
			panic(fmt.Sprintf("variable %d does not belong to program %q", term.Variable, program.Name))
		}
	}
	program.constraints = append(program.constraints, constraint)
}

// AddSum adds the constraint sum(variables) <sense> rhs
func (program *Program) AddSum(variables []Variable, sense Sense, rhs int) {
	program.Add(Constraint{Terms: Sum(variables...), Sense: sense, RHS: rhs})
}

// Sum returns the terms of the unweighted sum of the variables
func Sum(variables ...Variable) []Term {
	return lo.Map(variables, func(variable Variable, _ int) Term {
		return Term{Coefficient: 1, Variable: variable}
	})
}

// Weighted returns the terms of sum(coefficients[i] * variables[i])
func Weighted(variables []Variable, coefficients []int) []Term {
	return lo.Map(variables, func(variable Variable, i int) Term {
		return Term{Coefficient: coefficients[i], Variable: variable}
	})
}

// Negate returns the terms multiplied by -1
func Negate(terms []Term) []Term {
	return lo.Map(terms, func(term Term, _ int) Term {
		return Term{Coefficient: -term.Coefficient, Variable: term.Variable}
	})
}

// Violated returns the indices of the constraints that the values do not satisfy. values is
// indexed by variable, so values[0] is ignored.
func (program *Program) Violated(values []bool) []int {
	violated := make([]int, 0)
	for i, constraint := range program.constraints {
		if !constraint.Holds(values) {
			violated = append(violated, i)
		}
	}
	return violated
}

// Feasible checks whether the values satisfy every constraint of the program
func (program *Program) Feasible(values []bool) bool {
	return len(program.Violated(values)) == 0
}
