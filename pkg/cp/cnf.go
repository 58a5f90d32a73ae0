package cp

import (
	"fmt"
	"strings"
)

// CNF is a propositional formula in conjunctive normal form. Literals follow DIMACS
// conventions: variable i is the literal i and its negation is -i.
type CNF struct {
	Variables uint64
	Clauses   [][]int64
}

func (cnf CNF) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", cnf.Variables, len(cnf.Clauses))
	for _, clause := range cnf.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// Satisfied checks whether the truth values (indexed by variable, values[0] ignored) satisfy every clause
func (cnf CNF) Satisfied(values []bool) bool {
	for _, clause := range cnf.Clauses {
		satisfied := false
		for _, literal := range clause {
			variable := literal
			if variable < 0 {
				variable = -variable
			}
			value := int(variable) < len(values) && values[variable]
			if (literal > 0) == value {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// CNF compiles the model with the direct encoding: variable v taking value k is the Boolean
// Literal(v, k). Ids 1..Indicators() are therefore the value indicators and any id above
// them is an auxiliary variable introduced by the cardinality encodings.
func (model *Model) CNF() CNF {
	compiler := &cnfCompiler{model: model, next: model.indicators}

	for variable := range model.domains {
		compiler.exactlyOneValue(IntVar(variable))
	}
	for _, constraint := range model.constraints {
		switch constraint := constraint.(type) {
		case AllDifferent:
			compiler.allDifferent(constraint)
		case Less:
			compiler.less(constraint)
		case Among:
			compiler.among(constraint)
		case PairOnce:
			compiler.pairOnce(constraint)
		default:
			panic(fmt.Sprintf("constraint %T cannot be compiled to CNF", constraint))
		}
	}

	return CNF{Variables: compiler.next, Clauses: compiler.clauses}
}

type cnfCompiler struct {
	model   *Model
	next    uint64
	clauses [][]int64
}

func (compiler *cnfCompiler) fresh() int64 {
	compiler.next++
	return int64(compiler.next)
}

func (compiler *cnfCompiler) add(literals ...int64) {
	compiler.clauses = append(compiler.clauses, literals)
}

func (compiler *cnfCompiler) literal(variable IntVar, value int) int64 {
	return int64(compiler.model.Literal(variable, value))
}

func (compiler *cnfCompiler) exactlyOneValue(variable IntVar) {
	domain := compiler.model.Domain(variable)
	literals := make([]int64, 0, domain.Size())
	for value := domain.Min; value <= domain.Max; value++ {
		literals = append(literals, compiler.literal(variable, value))
	}
	compiler.add(literals...)
	compiler.atMostOnePairwise(literals)
}

func (compiler *cnfCompiler) allDifferent(constraint AllDifferent) {
	values := make(map[int][]int64)
	minimum, maximum := 0, -1
	for i, variable := range constraint.Vars {
		domain := compiler.model.Domain(variable)
		if i == 0 || domain.Min < minimum {
			minimum = domain.Min
		}
		if i == 0 || domain.Max > maximum {
			maximum = domain.Max
		}
		for value := domain.Min; value <= domain.Max; value++ {
			values[value] = append(values[value], compiler.literal(variable, value))
		}
	}

	for value := minimum; value <= maximum; value++ {
		compiler.atMostOnePairwise(values[value])
	}
	// When there are as many variables as values every value must be taken
	if maximum-minimum+1 == len(constraint.Vars) {
		for value := minimum; value <= maximum; value++ {
			compiler.add(values[value]...)
		}
	}
}

func (compiler *cnfCompiler) less(constraint Less) {
	first, second := compiler.model.Domain(constraint.A), compiler.model.Domain(constraint.B)
	for a := first.Min; a <= first.Max; a++ {
		for b := second.Min; b <= second.Max && b <= a; b++ {
			compiler.add(-compiler.literal(constraint.A, a), -compiler.literal(constraint.B, b))
		}
	}
}

func (compiler *cnfCompiler) among(constraint Among) {
	literals := make([]int64, 0, len(constraint.Vars))
	for _, variable := range constraint.Vars {
		if literal := compiler.literal(variable, constraint.Value); literal != 0 {
			literals = append(literals, literal)
		}
	}
	compiler.atLeast(literals, constraint.Min)
	compiler.atMost(literals, constraint.Max)
}

func (compiler *cnfCompiler) pairOnce(constraint PairOnce) {
	meetings := make([]int64, 0, 2*len(constraint.Homes))
	for i := range constraint.Homes {
		home, away := constraint.Homes[i], constraint.Aways[i]
		for _, orientation := range [][2]int{{constraint.First, constraint.Second}, {constraint.Second, constraint.First}} {
			homeLiteral, awayLiteral := compiler.literal(home, orientation[0]), compiler.literal(away, orientation[1])
			if homeLiteral == 0 || awayLiteral == 0 {
				continue
			}
			meetings = append(meetings, compiler.and(homeLiteral, awayLiteral))
		}
	}
	compiler.atLeast(meetings, 1)
	compiler.atMost(meetings, 1)
}

// and introduces a fresh variable equivalent to a AND b
func (compiler *cnfCompiler) and(a, b int64) int64 {
	conjunction := compiler.fresh()
	compiler.add(-conjunction, a)
	compiler.add(-conjunction, b)
	compiler.add(conjunction, -a, -b)
	return conjunction
}

func (compiler *cnfCompiler) atMostOnePairwise(literals []int64) {
	for i := range literals {
		for j := i + 1; j < len(literals); j++ {
			compiler.add(-literals[i], -literals[j])
		}
	}
}

func (compiler *cnfCompiler) atLeast(literals []int64, k int) {
	switch {
	case k <= 0:
		return
	case k > len(literals):
		// Unsatisfiable bound
		contradiction := compiler.fresh()
		compiler.add(contradiction)
		compiler.add(-contradiction)
	case k == 1:
		compiler.add(literals...)
	case k == len(literals):
		for _, literal := range literals {
			compiler.add(literal)
		}
	default:
		negated := make([]int64, len(literals))
		for i, literal := range literals {
			negated[i] = -literal
		}
		compiler.atMost(negated, len(literals)-k)
	}
}

// atMost encodes sum(literals) <= k with a sequential counter: register s[i][j] holds when
// at least j+1 of the first i+1 literals are true.
func (compiler *cnfCompiler) atMost(literals []int64, k int) {
	n := len(literals)
	if k >= n {
		return
	}
	if k <= 0 {
		for _, literal := range literals {
			compiler.add(-literal)
		}
		return
	}

	registers := make([][]int64, n-1)
	for i := range registers {
		registers[i] = make([]int64, k)
		for j := range registers[i] {
			registers[i][j] = compiler.fresh()
		}
	}

	compiler.add(-literals[0], registers[0][0])
	for j := 1; j < k; j++ {
		compiler.add(-registers[0][j])
	}
	for i := 1; i < n-1; i++ {
		compiler.add(-literals[i], registers[i][0])
		compiler.add(-registers[i-1][0], registers[i][0])
		for j := 1; j < k; j++ {
			compiler.add(-literals[i], -registers[i-1][j-1], registers[i][j])
			compiler.add(-registers[i-1][j], registers[i][j])
		}
		compiler.add(-literals[i], -registers[i-1][k-1])
	}
	compiler.add(-literals[n-1], -registers[n-2][k-1])
}
