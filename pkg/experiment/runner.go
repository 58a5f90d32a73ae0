package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/limaJavier/roundrobin/pkg/encoder"
	"github.com/limaJavier/roundrobin/pkg/model"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Report gathers the results of every approach of one paradigm on one instance size
type Report struct {
	// Identifier of the experiment run that produced the report, empty for checked files
	Run      string
	Teams    int
	Paradigm encoder.Paradigm
	File     string
	Results  model.Results
	Verdicts []model.Verdict
}

// Valid checks whether no stored schedule of the report violates a constraint
func (report Report) Valid() bool {
	return !lo.SomeBy(report.Verdicts, func(verdict model.Verdict) bool { return verdict.Status == model.Invalid })
}

type Runner struct {
	config     Config
	approaches []Approach
	logger     *slog.Logger
}

// NewRunner resolves the configured approaches. A nil logger discards every record.
func NewRunner(config Config, logger *slog.Logger) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	approaches := make([]Approach, 0, len(config.Approaches))
	for _, name := range config.Approaches {
		approach, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown approach \"%v\"", name)
		}
		approaches = append(approaches, approach)
	}
	return newRunner(config, approaches, logger), nil
}

func newRunner(config Config, approaches []Approach, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{config: config, approaches: approaches, logger: logger}
}

type reportKey struct {
	teams    int
	paradigm encoder.Paradigm
}

// Run evaluates every (instance, approach) combination, at most Parallelism at a time, then
// writes one result file per paradigm and instance and validates its schedules. A failing
// approach does not stop the grid: it is logged and recorded as a failure result.
func (runner *Runner) Run(ctx context.Context) ([]Report, error) {
	options, budget := runner.config.Options(), runner.config.Budget()
	run := uuid.NewString()
	runLogger := runner.logger.With("run", run)

	var mutex sync.Mutex
	results := make(map[reportKey]model.Results)

	instances := make([]model.Instance, 0, len(runner.config.Instances))
	for _, teams := range runner.config.Instances {
		instance, err := model.NewInstance(teams)
		if err != nil {
			return nil, err
		}
		instances = append(instances, instance)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runner.config.Parallelism)

	for _, instance := range instances {
		teams := instance.Teams
		for _, approach := range runner.approaches {
			g.Go(func() error {
				logger := runLogger.With("teams", teams, "approach", approach.Name)
				logger.Debug("Running approach")

				start := time.Now()
				result, err := approach.Run(gCtx, options, instance, budget)
				if err != nil {
					logger.Error("Approach failed", "error", err)
					result = model.FailedResult(budget.Ceiling)
				} else {
					logger.Info("Approach finished",
						"outcome", lo.Ternary(result.Optimal, "solved", "unsolved"),
						"seconds", result.Time,
						"elapsed", time.Since(start).Round(time.Millisecond),
					)
				}

				mutex.Lock()
				defer mutex.Unlock()
				key := reportKey{teams: teams, paradigm: approach.Paradigm}
				if results[key] == nil {
					results[key] = make(model.Results)
				}
				results[key][approach.Name] = result
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	keys := lo.Keys(results)
	slices.SortFunc(keys, compareKeys)

	validator := model.NewValidator(runner.config.ValidatorOptions())
	reports := make([]Report, 0, len(keys))
	for _, key := range keys {
		file := ResultFile(runner.config.Output, key.paradigm, key.teams)
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return nil, fmt.Errorf("cannot create results directory: %w", err)
		}
		if err := results[key].WriteFile(file); err != nil {
			return nil, err
		}

		report := newReport(validator, key.teams, key.paradigm, file, results[key])
		report.Run = run
		logReport(runLogger, report)
		reports = append(reports, report)
	}
	return reports, nil
}

func newReport(validator *model.Validator, teams int, paradigm encoder.Paradigm, file string, results model.Results) Report {
	instance, _ := model.NewInstance(teams)
	return Report{
		Teams:    teams,
		Paradigm: paradigm,
		File:     file,
		Results:  results,
		Verdicts: validator.ValidateResults(instance, results),
	}
}

func logReport(runLogger *slog.Logger, report Report) {
	for _, verdict := range report.Verdicts {
		logger := runLogger.With("teams", report.Teams, "approach", verdict.Approach, "status", verdict.Status.String())
		if verdict.Status == model.Invalid {
			logger.Warn("Invalid schedule", "violations", len(verdict.Violations), "first", verdict.Violations[0].String())
		} else {
			logger.Info("Checked schedule")
		}
	}
}

// ResultFile returns the path of the result file of a paradigm on an instance size
func ResultFile(output string, paradigm encoder.Paradigm, teams int) string {
	return filepath.Join(output, string(paradigm), strconv.Itoa(teams)+".json")
}

// CheckResults loads every result file found under output (as written by Runner.Run) and
// validates the schedules it holds
func CheckResults(output string, options model.Options) ([]Report, error) {
	validator := model.NewValidator(options)
	reports := make([]Report, 0)

	for _, paradigm := range []encoder.Paradigm{encoder.CP, encoder.SMT, encoder.MIP} {
		files, err := filepath.Glob(filepath.Join(output, string(paradigm), "*.json"))
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			teams, err := strconv.Atoi(strings.TrimSuffix(filepath.Base(file), ".json"))
			if err != nil {
				continue
			}
			if _, err := model.NewInstance(teams); err != nil {
				return nil, fmt.Errorf("result file %v: %w", file, err)
			}

			results, err := model.LoadResults(file)
			if err != nil {
				return nil, fmt.Errorf("result file %v: %w", file, err)
			}
			reports = append(reports, newReport(validator, teams, paradigm, file, results))
		}
	}

	slices.SortFunc(reports, func(a, b Report) int {
		return compareKeys(reportKey{teams: a.Teams, paradigm: a.Paradigm}, reportKey{teams: b.Teams, paradigm: b.Paradigm})
	})
	return reports, nil
}

func compareKeys(a, b reportKey) int {
	if a.paradigm != b.paradigm {
		return strings.Compare(string(a.paradigm), string(b.paradigm))
	}
	return a.teams - b.teams
}
