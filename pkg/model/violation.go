package model

import (
	"fmt"
	"strings"
)

type ViolationKind int

const (
	IncompleteSchedule ViolationKind = iota
	InvalidTeam
	SelfPlay
	TeamDoubleBookedInWeek
	PairingCountMismatch
	PeriodCapExceeded
	HomeAwayImbalance
)

var violationKindNames = map[ViolationKind]string{
	IncompleteSchedule:     "IncompleteSchedule",
	InvalidTeam:            "InvalidTeam",
	SelfPlay:               "SelfPlay",
	TeamDoubleBookedInWeek: "TeamDoubleBookedInWeek",
	PairingCountMismatch:   "PairingCountMismatch",
	PeriodCapExceeded:      "PeriodCapExceeded",
	HomeAwayImbalance:      "HomeAwayImbalance",
}

func (kind ViolationKind) String() string {
	return violationKindNames[kind]
}

// NoLocation marks a Violation coordinate (period or week) that does not apply
const NoLocation = -1

// Violation is a single finding of the validator. Period and Week hold NoLocation when the
// invariant is not bound to them; Teams holds the teams involved (if any) and Count the
// measured quantity that broke the invariant.
type Violation struct {
	Kind   ViolationKind
	Period int
	Week   int
	Teams  []int
	Count  int
	Detail string
}

// Location renders the coordinates of the violation, e.g. "period 1, week 3, teams [2 5]"
func (violation Violation) Location() string {
	parts := make([]string, 0, 3)
	if violation.Period != NoLocation {
		parts = append(parts, fmt.Sprintf("period %d", violation.Period))
	}
	if violation.Week != NoLocation {
		parts = append(parts, fmt.Sprintf("week %d", violation.Week))
	}
	if len(violation.Teams) > 0 {
		parts = append(parts, fmt.Sprintf("teams %v", violation.Teams))
	}
	return strings.Join(parts, ", ")
}

func (violation Violation) String() string {
	return fmt.Sprintf("%v at %v: %v", violation.Kind, violation.Location(), violation.Detail)
}
