// Package cp holds finite-domain constraint models: integer variables over closed ranges
// and the global constraints a round-robin schedule needs. A model can be checked against a
// candidate assignment, rendered as MiniZinc or compiled into CNF over value indicators.
package cp

import (
	"fmt"

	"github.com/samber/lo"
)

// IntVar is a 0-based reference to an integer variable of a model
type IntVar int

// Domain is the closed range [Min, Max] of values a variable may take
type Domain struct {
	Min int
	Max int
}

func (domain Domain) Size() int {
	return domain.Max - domain.Min + 1
}

func (domain Domain) Contains(value int) bool {
	return value >= domain.Min && value <= domain.Max
}

// Search selects the variable ordering heuristic requested from the solver
type Search int

const (
	InputOrder Search = iota
	FirstFail
	DomWDeg
)

var searchNames = map[Search]string{
	InputOrder: "input_order",
	FirstFail:  "first_fail",
	DomWDeg:    "dom_w_deg",
}

func (search Search) String() string {
	return searchNames[search]
}

// Model is a finite-domain constraint satisfaction problem
type Model struct {
	Name        string
	Search      Search
	domains     []Domain
	offsets     []uint64 // Number of value indicators owned by the variables before each one
	indicators  uint64
	constraints []Constraint
}

func NewModel(name string) *Model {
	return &Model{
		Name:        name,
		domains:     make([]Domain, 0),
		offsets:     make([]uint64, 0),
		constraints: make([]Constraint, 0),
	}
}

func (model *Model) NewIntVar(min, max int) IntVar {
	if max < min {
		panic(fmt.Sprintf("empty domain [%d, %d]", min, max))
	}
	model.domains = append(model.domains, Domain{Min: min, Max: max})
	model.offsets = append(model.offsets, model.indicators)
	model.indicators += uint64(max - min + 1)
	return IntVar(len(model.domains) - 1)
}

func (model *Model) Vars() int {
	return len(model.domains)
}

func (model *Model) Domain(variable IntVar) Domain {
	return model.domains[variable]
}

func (model *Model) Add(constraint Constraint) {
	model.constraints = append(model.constraints, constraint)
}

func (model *Model) Constraints() []Constraint {
	return model.constraints
}

// Indicators returns the number of value indicators of the model, i.e. the sum of every domain's size
func (model *Model) Indicators() uint64 {
	return model.indicators
}

// Literal returns the 1-based id of the indicator "variable == value", or 0 when the value
// lies outside the variable's domain
func (model *Model) Literal(variable IntVar, value int) uint64 {
	domain := model.domains[variable]
	if !domain.Contains(value) {
		return 0
	}
	return model.offsets[variable] + uint64(value-domain.Min) + 1
}

// Satisfied checks whether the values (indexed by variable) lie in their domains and satisfy every constraint
func (model *Model) Satisfied(values []int) bool {
	if len(values) != len(model.domains) {
		return false
	}
	inDomains := lo.EveryBy(lo.Range(len(values)), func(i int) bool {
		return model.domains[i].Contains(values[i])
	})
	return inDomains && lo.EveryBy(model.constraints, func(constraint Constraint) bool {
		return constraint.Satisfied(values)
	})
}
