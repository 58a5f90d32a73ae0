package model

// RawAssignment maps the ids of a formal model's decision variables to the values a
// decision procedure chose for them. Indicator variables take 0 or 1; integer variables
// take the team id they were assigned.
type RawAssignment map[uint64]int64

// Outcome is the terminal state reported by a decision procedure
type Outcome int

const (
	Satisfied Outcome = iota
	Infeasible
	Timeout
)

var outcomeNames = map[Outcome]string{
	Satisfied:  "satisfied",
	Infeasible: "infeasible",
	Timeout:    "timeout",
}

func (outcome Outcome) String() string {
	return outcomeNames[outcome]
}

// Answer is what a decision procedure hands back: an assignment when Satisfied, nothing otherwise
type Answer struct {
	Outcome    Outcome
	Assignment RawAssignment
}
