package model

// A valid six-team tournament, rows[week][period] = [home, away]
var sixTeamRows = [][][2]int{
	{{1, 2}, {3, 4}, {5, 6}},
	{{1, 3}, {2, 5}, {4, 6}},
	{{2, 6}, {3, 5}, {1, 4}},
	{{4, 5}, {6, 1}, {2, 3}},
	{{6, 3}, {4, 2}, {5, 1}},
}

// Four teams admit no schedule honoring the period cap of two: team 1 plays every game in period 0
var fourTeamRows = [][][2]int{
	{{1, 2}, {3, 4}},
	{{1, 3}, {2, 4}},
	{{1, 4}, {2, 3}},
}

func mustInstance(teams int) Instance {
	instance, err := NewInstance(teams)
	if err != nil {
		panic(err)
	}
	return instance
}

func cloneRows(rows [][][2]int) [][][2]int {
	clone := make([][][2]int, len(rows))
	for week, row := range rows {
		clone[week] = make([][2]int, len(row))
		copy(clone[week], row)
	}
	return clone
}

func kinds(violations []Violation) []ViolationKind {
	result := make([]ViolationKind, 0, len(violations))
	for _, violation := range violations {
		result = append(result, violation.Kind)
	}
	return result
}
