// Package smt builds quantifier-free linear integer arithmetic (QF_LIA) scripts, evaluates
// them against candidate models and renders them in SMT-LIB2.
package smt

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Values maps variable ids to their integer value
type Values map[uint64]int64

// Int is an integer-sorted term
type Int interface {
	Value(values Values) int64
	String() string
}

// Bool is a Boolean-sorted term
type Bool interface {
	Holds(values Values) bool
	String() string
}

// IntVar is an uninterpreted integer constant identified by ID
type IntVar struct {
	ID uint64
}

func (variable IntVar) Value(values Values) int64 {
	return values[variable.ID]
}

func (variable IntVar) String() string {
	return fmt.Sprintf("x%d", variable.ID)
}

type Const int64

func (constant Const) Value(_ Values) int64 {
	return int64(constant)
}

func (constant Const) String() string {
	if constant < 0 {
		return fmt.Sprintf("(- %d)", -int64(constant))
	}
	return fmt.Sprintf("%d", int64(constant))
}

type sum []Int

// Sum adds the terms, an empty sum being 0
func Sum(terms ...Int) Int {
	switch len(terms) {
	case 0:
		return Const(0)
	case 1:
		return terms[0]
	}
	return sum(terms)
}

func (terms sum) Value(values Values) int64 {
	return lo.SumBy(terms, func(term Int) int64 { return term.Value(values) })
}

func (terms sum) String() string {
	return application("+", terms)
}

type ite struct {
	condition Bool
	then      Int
	otherwise Int
}

// Ite is the term equal to then when the condition holds, otherwise to otherwise
func Ite(condition Bool, then, otherwise Int) Int {
	return ite{condition: condition, then: then, otherwise: otherwise}
}

func (term ite) Value(values Values) int64 {
	if term.condition.Holds(values) {
		return term.then.Value(values)
	}
	return term.otherwise.Value(values)
}

func (term ite) String() string {
	return fmt.Sprintf("(ite %v %v %v)", term.condition, term.then, term.otherwise)
}

type comparison struct {
	operator string
	left     Int
	right    Int
}

func Eq(left, right Int) Bool {
	return comparison{operator: "=", left: left, right: right}
}

func Le(left, right Int) Bool {
	return comparison{operator: "<=", left: left, right: right}
}

func Lt(left, right Int) Bool {
	return comparison{operator: "<", left: left, right: right}
}

func (term comparison) Holds(values Values) bool {
	left, right := term.left.Value(values), term.right.Value(values)
	switch term.operator {
	case "=":
		return left == right
	case "<=":
		return left <= right
	default:
		return left < right
	}
}

func (term comparison) String() string {
	return fmt.Sprintf("(%v %v %v)", term.operator, term.left, term.right)
}

type distinct []Int

// Distinct holds when every term takes a different value
func Distinct(terms ...Int) Bool {
	return distinct(terms)
}

func (terms distinct) Holds(values Values) bool {
	evaluated := lo.Map(terms, func(term Int, _ int) int64 { return term.Value(values) })
	return len(lo.Uniq(evaluated)) == len(evaluated)
}

func (terms distinct) String() string {
	if len(terms) < 2 {
		return "true"
	}
	return application("distinct", terms)
}

type connective struct {
	operator string
	operands []Bool
}

func And(operands ...Bool) Bool {
	return connective{operator: "and", operands: operands}
}

func Or(operands ...Bool) Bool {
	return connective{operator: "or", operands: operands}
}

func (term connective) Holds(values Values) bool {
	holds := func(operand Bool) bool { return operand.Holds(values) }
	if term.operator == "and" {
		return lo.EveryBy(term.operands, holds)
	}
	return lo.SomeBy(term.operands, holds)
}

func (term connective) String() string {
	switch len(term.operands) {
	case 0:
		return fmt.Sprint(term.operator == "and")
	case 1:
		return term.operands[0].String()
	}
	return application(term.operator, term.operands)
}

type not struct {
	operand Bool
}

func Not(operand Bool) Bool {
	return not{operand: operand}
}

func (term not) Holds(values Values) bool {
	return !term.operand.Holds(values)
}

func (term not) String() string {
	return fmt.Sprintf("(not %v)", term.operand)
}

func application[T fmt.Stringer](operator string, operands []T) string {
	return "(" + operator + " " + strings.Join(lo.Map(operands, func(operand T, _ int) string { return operand.String() }), " ") + ")"
}
