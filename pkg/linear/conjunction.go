package linear

// Conjunction records that M is the linearized product (logical AND) of A and B
type Conjunction struct {
	M Variable
	A Variable
	B Variable
}

// And introduces a fresh binary m constrained to equal a AND b without multiplying variables:
//
//	m <= a
//	m <= b
//	m >= a + b - 1
//
// In every feasible 0/1 assignment m is 1 if and only if both a and b are 1.
func (program *Program) And(a, b Variable) Variable {
	m := program.NewBinary()

	program.Add(Constraint{
		Terms: []Term{{Coefficient: 1, Variable: m}, {Coefficient: -1, Variable: a}},
		Sense: LessEqual,
		RHS:   0,
	})
	program.Add(Constraint{
		Terms: []Term{{Coefficient: 1, Variable: m}, {Coefficient: -1, Variable: b}},
		Sense: LessEqual,
		RHS:   0,
	})
	program.Add(Constraint{
		Terms: []Term{{Coefficient: 1, Variable: m}, {Coefficient: -1, Variable: a}, {Coefficient: -1, Variable: b}},
		Sense: GreaterEqual,
		RHS:   -1,
	})

	program.conjunctions = append(program.conjunctions, Conjunction{M: m, A: a, B: b})
	return m
}

func (program *Program) Conjunctions() []Conjunction {
	return program.conjunctions
}

// Complete returns a copy of values, grown to cover every variable, where each conjunction
// variable is set to the AND of its operands. Conjunctions are completed in creation order,
// so a conjunction may use an earlier one as operand.
func (program *Program) Complete(values []bool) []bool {
	completed := make([]bool, program.variables+1)
	copy(completed, values)
	for _, conjunction := range program.conjunctions {
		completed[conjunction.M] = completed[conjunction.A] && completed[conjunction.B]
	}
	return completed
}
