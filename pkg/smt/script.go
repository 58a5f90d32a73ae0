package smt

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const Logic = "QF_LIA"

// Declaration is an integer variable bounded to [Min, Max]
type Declaration struct {
	Var IntVar
	Min int64
	Max int64
}

// Script is a satisfiability query: bounded integer declarations and assertions over them
type Script struct {
	Name         string
	declarations []Declaration
	declared     map[uint64]bool
	assertions   []Bool
}

func NewScript(name string) *Script {
	return &Script{
		Name:         name,
		declarations: make([]Declaration, 0),
		declared:     make(map[uint64]bool),
		assertions:   make([]Bool, 0),
	}
}

// Declare introduces the integer variable id ranging over [min, max]
func (script *Script) Declare(id uint64, min, max int64) IntVar {
	if script.declared[id] {
		panic(fmt.Sprintf("variable %d declared twice in script %q", id, script.Name))
	}
	script.declared[id] = true
	variable := IntVar{ID: id}
	script.declarations = append(script.declarations, Declaration{Var: variable, Min: min, Max: max})
	return variable
}

func (script *Script) Declarations() []Declaration {
	return script.declarations
}

func (script *Script) Assert(assertion Bool) {
	script.assertions = append(script.assertions, assertion)
}

func (script *Script) Assertions() []Bool {
	return script.assertions
}

// Satisfied checks whether values assigns every declared variable within its bounds and
// satisfies every assertion
func (script *Script) Satisfied(values Values) bool {
	inBounds := lo.EveryBy(script.declarations, func(declaration Declaration) bool {
		value, ok := values[declaration.Var.ID]
		return ok && value >= declaration.Min && value <= declaration.Max
	})
	return inBounds && lo.EveryBy(script.assertions, func(assertion Bool) bool {
		return assertion.Holds(values)
	})
}

// SMTLIB renders the script in SMT-LIB2, asking for the value of every declared variable
func (script *Script) SMTLIB() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "; %v\n", script.Name)
	fmt.Fprintf(&builder, "(set-logic %v)\n", Logic)
	builder.WriteString("(set-option :produce-models true)\n")

	for _, declaration := range script.declarations {
		fmt.Fprintf(&builder, "(declare-fun %v () Int)\n", declaration.Var)
	}
	for _, declaration := range script.declarations {
		bounds := And(
			Le(Const(declaration.Min), declaration.Var),
			Le(declaration.Var, Const(declaration.Max)),
		)
		fmt.Fprintf(&builder, "(assert %v)\n", bounds)
	}
	for _, assertion := range script.assertions {
		fmt.Fprintf(&builder, "(assert %v)\n", assertion)
	}

	builder.WriteString("(check-sat)\n")
	if len(script.declarations) > 0 {
		names := lo.Map(script.declarations, func(declaration Declaration, _ int) string { return declaration.Var.String() })
		fmt.Fprintf(&builder, "(get-value (%v))\n", strings.Join(names, " "))
	}
	builder.WriteString("(exit)\n")
	return builder.String()
}
