package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermsEvaluate(t *testing.T) {
	//** Arrange
	x, y, z := IntVar{ID: 1}, IntVar{ID: 2}, IntVar{ID: 3}
	values := Values{1: 3, 2: 5, 3: 3}

	testCases := []struct {
		name     string
		term     Bool
		expected bool
	}{
		{"equal", Eq(x, z), true},
		{"less", Lt(y, x), false},
		{"less or equal", Le(x, z), true},
		{"distinct", Distinct(x, y, z), false},
		{"distinct pair", Distinct(x, y), true},
		{"and", And(Eq(x, z), Lt(x, y)), true},
		{"or", Or(Eq(x, y), Eq(y, z)), false},
		{"not", Not(Eq(x, y)), true},
		{"empty and", And(), true},
		{"empty or", Or(), false},
		{"ite sum", Eq(Sum(Ite(Eq(x, z), Const(1), Const(0)), Ite(Eq(x, y), Const(1), Const(0))), Const(1)), true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			//** Act
			holds := testCase.term.Holds(values)

			//** Assert
			assert.Equal(t, testCase.expected, holds)
		})
	}
}

func TestTermsRender(t *testing.T) {
	x, y := IntVar{ID: 1}, IntVar{ID: 2}

	assert.Equal(t, "(distinct x1 x2)", Distinct(x, y).String())
	assert.Equal(t, "(= (+ (ite (< x1 x2) 1 0) x2) (- 4))", Eq(Sum(Ite(Lt(x, y), Const(1), Const(0)), y), Const(-4)).String())
	assert.Equal(t, "(or (not (<= x1 x2)) true)", Or(Not(Le(x, y)), And()).String())
	assert.Equal(t, "x1", Sum(x).String())
	assert.Equal(t, "0", Sum().String())
}

func TestScript(t *testing.T) {
	//** Arrange
	script := NewScript("pair")
	home := script.Declare(1, 1, 2)
	away := script.Declare(2, 1, 2)
	script.Assert(Distinct(home, away))
	script.Assert(Lt(home, away))

	t.Run("SMT-LIB", func(t *testing.T) {
		//** Act
		text := script.SMTLIB()

		//** Assert
		expected := "; pair\n" +
			"(set-logic QF_LIA)\n" +
			"(set-option :produce-models true)\n" +
			"(declare-fun x1 () Int)\n" +
			"(declare-fun x2 () Int)\n" +
			"(assert (and (<= 1 x1) (<= x1 2)))\n" +
			"(assert (and (<= 1 x2) (<= x2 2)))\n" +
			"(assert (distinct x1 x2))\n" +
			"(assert (< x1 x2))\n" +
			"(check-sat)\n" +
			"(get-value (x1 x2))\n" +
			"(exit)\n"
		assert.Equal(t, expected, text)
	})

	t.Run("Satisfied", func(t *testing.T) {
		assert.True(t, script.Satisfied(Values{1: 1, 2: 2}))
		assert.False(t, script.Satisfied(Values{1: 2, 2: 1}))
		assert.False(t, script.Satisfied(Values{1: 1, 2: 3}))
		assert.False(t, script.Satisfied(Values{1: 1}))
	})

	t.Run("Duplicate declaration", func(t *testing.T) {
		assert.Panics(t, func() { script.Declare(1, 1, 2) })
	})
}

func TestParseOutput(t *testing.T) {
	t.Run("Satisfiable", func(t *testing.T) {
		//** Act
		status, values, err := ParseOutput("sat\n((x1 1)\n (x2 2)\n (x7 (- 3)))\n")

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, Sat, status)
		assert.Equal(t, Values{1: 1, 2: 2, 7: -3}, values)
	})

	t.Run("Unsatisfiable", func(t *testing.T) {
		//** Act
		status, values, err := ParseOutput("unsat\n(error \"line 12 column 10: model is not available\")\n")

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, Unsat, status)
		assert.Nil(t, values)
	})

	t.Run("Timeout", func(t *testing.T) {
		status, _, err := ParseOutput("timeout\n")

		require.NoError(t, err)
		assert.Equal(t, Unknown, status)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, _, err := ParseOutput("segmentation fault\n")

		assert.ErrorIs(t, err, ErrSolverOutput)
	})

	t.Run("Malformed values", func(t *testing.T) {
		_, _, err := ParseOutput("sat\n((x1 1) (y2 2))\n")

		assert.ErrorIs(t, err, ErrSolverOutput)
	})
}
