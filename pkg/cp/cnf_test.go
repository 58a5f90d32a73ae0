package cp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteral(t *testing.T) {
	//** Arrange
	model := NewModel("literals")
	x := model.NewIntVar(1, 3)
	y := model.NewIntVar(0, 1)

	//** Act & Assert
	assert.Equal(t, uint64(1), model.Literal(x, 1))
	assert.Equal(t, uint64(3), model.Literal(x, 3))
	assert.Equal(t, uint64(4), model.Literal(y, 0))
	assert.Equal(t, uint64(5), model.Literal(y, 1))
	assert.Equal(t, uint64(0), model.Literal(x, 4))
	assert.Equal(t, uint64(5), model.Indicators())
}

func TestCNFPreservesSolutions(t *testing.T) {
	testCases := []struct {
		name  string
		build func() *Model
		count int
	}{
		{
			name: "all different with ordering",
			build: func() *Model {
				model := NewModel("alldifferent")
				vars := []IntVar{model.NewIntVar(1, 3), model.NewIntVar(1, 3), model.NewIntVar(1, 3)}
				model.Add(AllDifferent{Vars: vars})
				model.Add(Less{A: vars[0], B: vars[1]})
				return model
			},
			count: 3,
		},
		{
			name: "among with upper bound",
			build: func() *Model {
				model := NewModel("among")
				vars := []IntVar{model.NewIntVar(0, 1), model.NewIntVar(0, 1), model.NewIntVar(0, 1), model.NewIntVar(0, 1)}
				model.Add(Among{Vars: vars, Value: 1, Min: 1, Max: 2})
				return model
			},
			count: 10,
		},
		{
			name: "among with lower bound",
			build: func() *Model {
				model := NewModel("among")
				vars := []IntVar{model.NewIntVar(0, 1), model.NewIntVar(0, 1), model.NewIntVar(0, 1)}
				model.Add(Among{Vars: vars, Value: 1, Min: 2, Max: 3})
				return model
			},
			count: 4,
		},
		{
			name: "pair once",
			build: func() *Model {
				model := NewModel("pair")
				vars := []IntVar{model.NewIntVar(1, 2), model.NewIntVar(1, 2), model.NewIntVar(1, 2), model.NewIntVar(1, 2)}
				model.Add(PairOnce{Homes: []IntVar{vars[0], vars[2]}, Aways: []IntVar{vars[1], vars[3]}, First: 1, Second: 2})
				return model
			},
			count: 8,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			//** Arrange
			model := testCase.build()

			//** Act
			expected := modelSolutions(model)
			actual := cnfSolutions(t, model)

			//** Assert
			assert.Len(t, expected, testCase.count)
			assert.Equal(t, expected, actual)
		})
	}
}

func TestCNFUnsatisfiableBound(t *testing.T) {
	//** Arrange
	model := NewModel("unsat")
	vars := []IntVar{model.NewIntVar(0, 1), model.NewIntVar(0, 1)}
	model.Add(Among{Vars: vars, Value: 1, Min: 3, Max: 3})

	//** Act
	solutions := cnfSolutions(t, model)

	//** Assert
	assert.Empty(t, solutions)
}

func TestToDIMACS(t *testing.T) {
	//** Arrange
	cnf := CNF{Variables: 3, Clauses: [][]int64{{1, -2}, {2, 3}, {-1}}}

	//** Act
	dimacs := cnf.ToDIMACS()

	//** Assert
	assert.Equal(t, "p cnf 3 3\n1 -2 0\n2 3 0\n-1 0\n", dimacs)
}

// Enumerates the value tuples satisfying the model
func modelSolutions(model *Model) map[string]bool {
	solutions := make(map[string]bool)
	values := make([]int, model.Vars())
	var enumerate func(variable int)
	enumerate = func(variable int) {
		if variable == model.Vars() {
			if model.Satisfied(values) {
				solutions[fmt.Sprint(values)] = true
			}
			return
		}
		domain := model.Domain(IntVar(variable))
		for value := domain.Min; value <= domain.Max; value++ {
			values[variable] = value
			enumerate(variable + 1)
		}
	}
	enumerate(0)
	return solutions
}

// Enumerates every model of the compiled CNF and projects it onto the value tuple it encodes
func cnfSolutions(t *testing.T, model *Model) map[string]bool {
	cnf := model.CNF()
	require.LessOrEqual(t, cnf.Variables, uint64(20))

	solutions := make(map[string]bool)
	for mask := uint64(0); mask < 1<<cnf.Variables; mask++ {
		truth := make([]bool, cnf.Variables+1)
		for variable := uint64(1); variable <= cnf.Variables; variable++ {
			truth[variable] = mask&(1<<(variable-1)) != 0
		}
		if !cnf.Satisfied(truth) {
			continue
		}

		values := make([]int, model.Vars())
		for variable := range values {
			domain := model.Domain(IntVar(variable))
			for value := domain.Min; value <= domain.Max; value++ {
				if truth[model.Literal(IntVar(variable), value)] {
					values[variable] = value
				}
			}
		}
		solutions[fmt.Sprint(values)] = true
	}
	return solutions
}
