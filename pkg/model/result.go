package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"reflect"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// DefaultCeiling is the time (in seconds) reported by runs that did not find a schedule
const DefaultCeiling = 300

// Result is the normalized outcome of one approach on one instance, whatever paradigm produced it
type Result struct {
	Time    int
	Optimal bool
	Obj     *int
	Sol     Schedule
}

// FailedResult returns the result of a run that did not find a schedule within its budget
func FailedResult(ceiling int) Result {
	return Result{
		Time:    ceiling,
		Optimal: false,
	}
}

type rawResult struct {
	Time    int       `json:"time" mapstructure:"time"`
	Optimal bool      `json:"optimal" mapstructure:"optimal"`
	Obj     *int      `json:"obj" mapstructure:"obj"`
	Sol     [][][]int `json:"sol" mapstructure:"sol"`
}

func (result Result) MarshalJSON() ([]byte, error) {
	raw := rawResult{
		Time:    result.Time,
		Optimal: result.Optimal,
		Obj:     result.Obj,
		Sol:     [][][]int{},
	}
	if !result.Sol.IsEmpty() {
		raw.Sol = lo.Map(result.Sol.PeriodMajor(), func(row [][2]int, _ int) [][]int {
			return lo.Map(row, func(game [2]int, _ int) []int { return []int{game[0], game[1]} })
		})
	}
	return json.Marshal(raw)
}

// Results maps approach names to the result each produced on the same instance
type Results map[string]Result

// Approaches returns the approach names in lexicographic order
func (results Results) Approaches() []string {
	approaches := lo.Keys(results)
	slices.Sort(approaches)
	return approaches
}

func (results Results) WriteFile(file string) error {
	bytes, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal results: %w", err)
	}
	return os.WriteFile(file, bytes, 0666)
}

func LoadResults(file string) (Results, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read results file: %w", err)
	}
	return ParseResults(bytes)
}

func ParseResults(bytes []byte) (Results, error) {
	var resultsJson map[string]any
	if err := json.Unmarshal(bytes, &resultsJson); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResults, err)
	}

	var rawResults map[string]rawResult
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncKind(rejectFractions),
		Result:     &rawResults,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(resultsJson); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResults, err)
	}

	results := make(Results, len(rawResults))
	for approach, raw := range rawResults {
		sol := make([][][2]int, len(raw.Sol))
		for period, row := range raw.Sol {
			sol[period] = make([][2]int, len(row))
			for week, game := range row {
				if len(game) != 2 {
					return nil, fmt.Errorf("%w: approach \"%v\" has a game with %d teams at period %d, week %d", ErrMalformedResults, approach, len(game), period, week)
				}
				sol[period][week] = [2]int{game[0], game[1]}
			}
		}
		results[approach] = Result{Time: raw.Time, Optimal: raw.Optimal, Obj: raw.Obj, Sol: FromPeriodMajor(sol)}
	}
	return results, nil
}

// rejectFractions stops JSON numbers with a fractional part from being truncated into integers
func rejectFractions(from reflect.Kind, to reflect.Kind, data any) (any, error) {
	if from != reflect.Float64 || to != reflect.Int {
		return data, nil
	}
	if value := data.(float64); value != math.Trunc(value) {
		return nil, fmt.Errorf("%v is not an integer", value)
	}
	return data, nil
}
