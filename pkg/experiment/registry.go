package experiment

import (
	"context"
	"slices"

	"github.com/limaJavier/roundrobin/pkg/cp"
	"github.com/limaJavier/roundrobin/pkg/encoder"
	"github.com/limaJavier/roundrobin/pkg/model"
	"github.com/limaJavier/roundrobin/pkg/solver"
	"github.com/samber/lo"
)

// Approach pairs an encoder with a decision procedure under a name
type Approach struct {
	Name     string
	Paradigm encoder.Paradigm
	// Whether the approach runs inside the process, i.e. needs no external executable
	InProcess bool
	Run       func(ctx context.Context, options encoder.Options, instance model.Instance, budget encoder.Budget) (model.Result, error)
}

func newApproach[M any](name string, inProcess bool, newEncoder func(encoder.Options) encoder.Encoder[M], procedure encoder.DecisionProcedure[M], search cp.Search) Approach {
	return Approach{
		Name:      name,
		Paradigm:  newEncoder(encoder.Options{}).Paradigm(),
		InProcess: inProcess,
		Run: func(ctx context.Context, options encoder.Options, instance model.Instance, budget encoder.Budget) (model.Result, error) {
			options.Search = search
			return encoder.Run(ctx, newEncoder(options), procedure, instance, budget)
		},
	}
}

var registry = lo.KeyBy([]Approach{
	newApproach("gecode", false, encoder.NewCPEncoder, solver.NewMiniZincSolver(solver.Gecode), cp.InputOrder),
	newApproach("gecode_first_fail", false, encoder.NewCPEncoder, solver.NewMiniZincSolver(solver.Gecode), cp.FirstFail),
	newApproach("gecode_dom_w_deg", false, encoder.NewCPEncoder, solver.NewMiniZincSolver(solver.Gecode), cp.DomWDeg),
	newApproach("chuffed", false, encoder.NewCPEncoder, solver.NewMiniZincSolver(solver.Chuffed), cp.InputOrder),
	newApproach("kissat", false, encoder.NewCPEncoder, solver.NewKissatSolver(), cp.InputOrder),
	newApproach("minisat", false, encoder.NewCPEncoder, solver.NewMinisatSolver(), cp.InputOrder),
	newApproach("gini", true, encoder.NewCPEncoder, solver.NewGiniSolver(), cp.InputOrder),
	newApproach("z3", false, encoder.NewSMTEncoder, solver.NewZ3Solver(), cp.InputOrder),
	newApproach("cbc", false, encoder.NewMIPEncoder, solver.NewCBCSolver(), cp.InputOrder),
	newApproach("gophersat", true, encoder.NewMIPEncoder, solver.NewGophersatSolver(), cp.InputOrder),
}, func(approach Approach) string { return approach.Name })

// Lookup returns the registered approach with the given name
func Lookup(name string) (Approach, bool) {
	approach, ok := registry[name]
	return approach, ok
}

// ApproachNames returns the names of every registered approach in lexicographic order
func ApproachNames() []string {
	names := lo.Keys(registry)
	slices.Sort(names)
	return names
}

// InProcessApproachNames returns the names of the approaches needing no external executable
func InProcessApproachNames() []string {
	return lo.Filter(ApproachNames(), func(name string, _ int) bool { return registry[name].InProcess })
}
