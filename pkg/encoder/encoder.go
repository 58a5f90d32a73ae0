// Package encoder turns a round-robin instance into the formal model of a solving paradigm
// (constraint programming, SMT or mixed-integer programming) and turns the answers of decision
// procedures back into schedules.
package encoder

import (
	"context"
	"fmt"
	"time"

	"github.com/limaJavier/roundrobin/pkg/cp"
	"github.com/limaJavier/roundrobin/pkg/model"
)

type Paradigm string

const (
	CP  Paradigm = "CP"
	SMT Paradigm = "SMT"
	MIP Paradigm = "MIP"
)

// Options tune the constraints every encoder emits
type Options struct {
	// Bound the home/away difference of every team to one
	EnforceBalance bool
	// Orient every game of the first week from the lower to the higher team id
	SymmetryBreaking bool
	// Games a team may play in the same period over the whole tournament
	PeriodCap int
	// Search heuristic annotated on constraint models
	Search cp.Search
}

func DefaultOptions() Options {
	return Options{
		EnforceBalance:   true,
		SymmetryBreaking: true,
		PeriodCap:        model.DefaultPeriodCap,
		Search:           cp.InputOrder,
	}
}

func (options Options) periodCap() int {
	if options.PeriodCap < 1 {
		return model.DefaultPeriodCap
	}
	return options.PeriodCap
}

// Encoder builds the formal model M of an instance and reads schedules back from answers to it
type Encoder[M any] interface {
	Paradigm() Paradigm
	Encode(instance model.Instance) (M, error)
	// Decode maps a satisfying assignment of formal onto a schedule, failing with
	// model.ErrMalformedAssignment when a slot cannot be resolved to exactly one team
	Decode(instance model.Instance, formal M, raw model.RawAssignment) (model.Schedule, error)
}

// DecisionProcedure answers satisfiability questions about formal models of type M
type DecisionProcedure[M any] interface {
	Solve(ctx context.Context, formal M, timeout time.Duration) (model.Answer, error)
}

// Budget bounds a single run
type Budget struct {
	Timeout time.Duration
	// Time (in seconds) reported by runs that did not produce a schedule
	Ceiling int
}

func DefaultBudget() Budget {
	return Budget{
		Timeout: model.DefaultCeiling * time.Second,
		Ceiling: model.DefaultCeiling,
	}
}

func (budget Budget) withDefaults() Budget {
	defaults := DefaultBudget()
	if budget.Timeout <= 0 {
		budget.Timeout = defaults.Timeout
	}
	if budget.Ceiling <= 0 {
		budget.Ceiling = defaults.Ceiling
	}
	return budget
}

// Run encodes the instance, asks the procedure for a schedule and normalizes the answer into
// a Result. Infeasible and timed out runs are not errors: they yield a failure Result. A failure
// Result also accompanies every returned error.
func Run[M any](ctx context.Context, encoder Encoder[M], procedure DecisionProcedure[M], instance model.Instance, budget Budget) (model.Result, error) {
	budget = budget.withDefaults()
	failed := model.FailedResult(budget.Ceiling)

	//** Encode
	formal, err := encoder.Encode(instance)
	if err != nil {
		return failed, fmt.Errorf("cannot encode %v as %v: %w", instance, encoder.Paradigm(), err)
	}

	//** Solve
	start := time.Now()
	answer, err := procedure.Solve(ctx, formal, budget.Timeout)
	elapsed := time.Since(start)
	if err != nil {
		return failed, err
	} else if answer.Outcome != model.Satisfied {
		return failed, nil
	}

	//** Decode
	schedule, err := encoder.Decode(instance, formal, answer.Assignment)
	if err != nil {
		return failed, err
	}

	return model.Result{
		Time:    int(elapsed / time.Second),
		Optimal: true,
		Sol:     schedule,
	}, nil
}

// balanceBounds returns the range of home games a team may play when its home/away
// difference is at most one
func balanceBounds(instance model.Instance) (lower, upper int) {
	return (instance.Weeks - 1) / 2, (instance.Weeks + 1) / 2
}

// cells enumerates every (period, week) pair in week-major order
func cells(instance model.Instance, visit func(period, week int)) {
	for week := range instance.Weeks {
		for period := range instance.Periods {
			visit(period, week)
		}
	}
}
