package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/limaJavier/roundrobin/pkg/encoder"
	"github.com/limaJavier/roundrobin/pkg/experiment"
	"github.com/limaJavier/roundrobin/pkg/model"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// constraintFlags holds the constraint toggles shared by solve and check
type constraintFlags struct {
	noBalance  bool
	noSymmetry bool
	periodCap  int
}

func (flags *constraintFlags) register(cmd *cobra.Command, symmetry bool) {
	cmd.Flags().BoolVar(&flags.noBalance, "no-balance", false, "Do not require home/away balance")
	cmd.Flags().IntVar(&flags.periodCap, "period-cap", model.DefaultPeriodCap, "Maximum number of games a team plays in the same period")
	if symmetry {
		cmd.Flags().BoolVar(&flags.noSymmetry, "no-symmetry", false, "Do not orient the games of the first week")
	}
}

func (flags constraintFlags) encoderOptions() encoder.Options {
	return encoder.Options{
		EnforceBalance:   !flags.noBalance,
		SymmetryBreaking: !flags.noSymmetry,
		PeriodCap:        flags.periodCap,
	}
}

func (flags constraintFlags) validatorOptions() model.Options {
	return model.Options{
		EnforceBalance: !flags.noBalance,
		PeriodCap:      flags.periodCap,
	}
}

type solveSettings struct {
	constraintFlags
	teams    int
	approach string
	timeout  time.Duration
	ceiling  int
	out      string
}

func newSolveCmd() *cobra.Command {
	settings := solveSettings{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Schedule one tournament with one approach",
		Long: fmt.Sprintf(`Schedule one tournament with one approach and validate the schedule.
Odd team counts are rounded up to the next even one.
Allowed approaches are: %v.

Exit codes: %d when a valid schedule is found, %d when none is found and %d when the
schedule is invalid.`, strings.Join(experiment.ApproachNames(), ", "), exitSolved, exitNoResult, exitInvalid),
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			code, err := solve(ctx, settings, os.Stdout)
			if err != nil {
				log.Fatalf("an error occurred while scheduling: %v", err)
			}
			os.Exit(code)
		},
	}

	cmd.Flags().IntVarP(&settings.teams, "teams", "n", 6, "Number of teams")
	cmd.Flags().StringVarP(&settings.approach, "approach", "a", "gini", "Approach used to schedule the tournament")
	cmd.Flags().DurationVarP(&settings.timeout, "timeout", "t", model.DefaultCeiling*time.Second, "Time given to the solver")
	cmd.Flags().IntVar(&settings.ceiling, "ceiling", model.DefaultCeiling, "Time (in seconds) recorded when no schedule is found")
	cmd.Flags().StringVarP(&settings.out, "out", "o", "", "Path to the file where the results will be written; if empty, they'll be written into the Standard Output")
	settings.constraintFlags.register(cmd, true)
	return cmd
}

// solve runs a single approach and writes its results file, returning the exit code
func solve(ctx context.Context, settings solveSettings, stdout io.Writer) (int, error) {
	approach, ok := experiment.Lookup(strings.ToLower(settings.approach))
	if !ok {
		return 0, fmt.Errorf("%v is not a valid approach", settings.approach)
	}

	instance, err := model.NewInstance(model.NormalizeTeams(settings.teams))
	if err != nil {
		return 0, err
	}

	budget := encoder.Budget{Timeout: settings.timeout, Ceiling: settings.ceiling}
	result, err := approach.Run(ctx, settings.encoderOptions(), instance, budget)
	if err != nil {
		return 0, err
	}

	results := model.Results{approach.Name: result}
	if settings.out == "" {
		bytes, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return 0, fmt.Errorf("an error occurred while building output json: %w", err)
		}
		fmt.Fprintln(stdout, string(bytes))
	} else if err := results.WriteFile(settings.out); err != nil {
		return 0, fmt.Errorf("an error occurred while writing to the output file: %w", err)
	}

	if !result.Optimal {
		return exitNoResult, nil
	}
	violations := model.NewValidator(settings.validatorOptions()).Validate(instance, result.Sol)
	for _, violation := range violations {
		log.Println(violation)
	}
	return lo.Ternary(len(violations) == 0, exitSolved, exitInvalid), nil
}

type checkSettings struct {
	constraintFlags
	teams int
}

func newCheckCmd() *cobra.Command {
	settings := checkSettings{}
	cmd := &cobra.Command{
		Use:   "check [results file or directory]",
		Short: "Validate every schedule stored in a results file or an output directory",
		Long: fmt.Sprintf(`Validate every schedule stored in a results file (named <teams>.json unless
--teams is given) or in an output directory laid out as <paradigm>/<teams>.json.
Exits with %d when any schedule is invalid.`, exitInvalid),
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			reports, err := check(args[0], settings)
			if err != nil {
				log.Fatalf("an error occurred while checking results: %v", err)
			}
			printReports(os.Stdout, reports)
			if !lo.EveryBy(reports, experiment.Report.Valid) {
				os.Exit(exitInvalid)
			}
		},
	}

	cmd.Flags().IntVarP(&settings.teams, "teams", "n", 0, "Number of teams of a single results file")
	settings.constraintFlags.register(cmd, false)
	return cmd
}

func check(target string, settings checkSettings) ([]experiment.Report, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return experiment.CheckResults(target, settings.validatorOptions())
	}

	teams := settings.teams
	if teams == 0 {
		teams, err = strconv.Atoi(strings.TrimSuffix(filepath.Base(target), filepath.Ext(target)))
		if err != nil {
			return nil, fmt.Errorf("cannot infer the number of teams from %v, use --teams", target)
		}
	}
	instance, err := model.NewInstance(teams)
	if err != nil {
		return nil, err
	}

	results, err := model.LoadResults(target)
	if err != nil {
		return nil, err
	}
	return []experiment.Report{{
		Teams:    teams,
		File:     target,
		Results:  results,
		Verdicts: model.NewValidator(settings.validatorOptions()).ValidateResults(instance, results),
	}}, nil
}

func newRunCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "run [experiment file]",
		Short: "Run an experiment grid described by a YAML file",
		Long: fmt.Sprintf(`Run every (instance, approach) combination of a YAML experiment file, store the
results per paradigm and instance size and validate them.
Exits with %d when any schedule is invalid.`, exitInvalid),
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			config, err := experiment.LoadConfig(args[0])
			if err != nil {
				log.Fatalf("cannot load experiment: %v", err)
			}
			if output != "" {
				config.Output = output
			}

			runner, err := experiment.NewRunner(config, newLogger())
			if err != nil {
				log.Fatalf("cannot prepare experiment: %v", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			reports, err := runner.Run(ctx)
			if err != nil {
				log.Fatalf("an error occurred during the experiment: %v", err)
			}
			printReports(os.Stdout, reports)
			if !lo.EveryBy(reports, experiment.Report.Valid) {
				os.Exit(exitInvalid)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Overrides the output directory of the experiment file")
	return cmd
}

func printReports(out io.Writer, reports []experiment.Report) {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer writer.Flush()

	fmt.Fprintln(writer, "FILE\tAPPROACH\tSTATUS\tTIME\tVIOLATIONS")
	for _, report := range reports {
		for _, verdict := range report.Verdicts {
			fmt.Fprintf(writer, "%v\t%v\t%v\t%d\t%d\n", report.File, verdict.Approach, verdict.Status, verdict.Time, len(verdict.Violations))
		}
	}
	for _, report := range reports {
		for _, verdict := range report.Verdicts {
			for _, violation := range verdict.Violations {
				fmt.Fprintf(writer, "%v: %v: %v\n", report.File, verdict.Approach, violation)
			}
		}
	}
}
