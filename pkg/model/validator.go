package model

import "github.com/samber/lo"

const DefaultPeriodCap = 2

// Options selects which optional invariants the validator enforces
type Options struct {
	// Whether every team must play as many home as away games (give or take one)
	EnforceBalance bool
	// Maximum number of games a team may play in the same period; values below one fall back to DefaultPeriodCap
	PeriodCap int
}

func DefaultOptions() Options {
	return Options{
		EnforceBalance: true,
		PeriodCap:      DefaultPeriodCap,
	}
}

// Validator re-derives every tournament invariant from a schedule, without trusting the
// encoder that produced it. It holds no state between calls.
type Validator struct {
	options    Options
	invariants []invariant
}

func NewValidator(options Options) *Validator {
	if options.PeriodCap < 1 {
		options.PeriodCap = DefaultPeriodCap
	}

	return &Validator{
		options: options,
		invariants: []invariant{
			slotOccupancy,
			teamRange,
			noSelfPlay,
			oneGamePerWeek,
			exactlyOncePairing,
			periodCap,
			homeAwayBalance,
		},
	}
}

func (validator *Validator) Options() Options {
	return validator.options
}

// Validate checks every invariant, never stopping at the first finding, and returns the
// violations in a deterministic order. An empty slice means the schedule is valid.
func (validator *Validator) Validate(instance Instance, schedule Schedule) []Violation {
	violations := make([]Violation, 0)
	for _, check := range validator.invariants {
		violations = append(violations, check(instance, schedule, validator.options)...)
	}
	return violations
}

type VerdictStatus int

const (
	Valid VerdictStatus = iota
	Invalid
	NoSolution
)

var verdictStatusNames = map[VerdictStatus]string{
	Valid:      "valid",
	Invalid:    "invalid",
	NoSolution: "no solution",
}

func (status VerdictStatus) String() string {
	return verdictStatusNames[status]
}

// Verdict is the validation outcome of the result one approach stored for an instance
type Verdict struct {
	Approach   string
	Status     VerdictStatus
	Optimal    bool
	Time       int
	Violations []Violation
}

// ValidateResults validates every stored result against the same invariant set, sorted by
// approach name. Results that report no solution and carry none are not validated.
func (validator *Validator) ValidateResults(instance Instance, results Results) []Verdict {
	return lo.Map(results.Approaches(), func(approach string, _ int) Verdict {
		result := results[approach]
		verdict := Verdict{
			Approach:   approach,
			Optimal:    result.Optimal,
			Time:       result.Time,
			Violations: []Violation{},
		}

		if !result.Optimal && result.Sol.IsEmpty() {
			verdict.Status = NoSolution
			return verdict
		}

		verdict.Violations = validator.Validate(instance, result.Sol)
		if len(verdict.Violations) == 0 {
			verdict.Status = Valid
		} else {
			verdict.Status = Invalid
		}
		return verdict
	})
}
