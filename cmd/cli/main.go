package main

import (
	"log"
	"log/slog"
	"os"
	"path"
	"slices"

	"github.com/limaJavier/roundrobin/pkg/solver"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// Exit codes shared with the benchmark
const (
	exitSolved   = 10
	exitNoResult = 20
	exitInvalid  = 15
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "roundrobin",
		Short: "Schedule single round-robin tournaments with CP, SMT and MIP solvers",
		Long: `roundrobin encodes the single round-robin tournament scheduling problem for
several solving paradigms, runs the selected solvers and validates every schedule
they produce.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setConfigPath()
		},
	}
)

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Also log the start of every run")
	rootCmd.AddCommand(newSolveCmd(), newCheckCmd(), newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger logs text to a terminal and JSON lines everywhere else
func newLogger() *slog.Logger {
	options := &slog.HandlerOptions{Level: lo.Ternary(verbose, slog.LevelDebug, slog.LevelInfo)}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, options))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, options))
}

// setConfigPath points the solver package at the config.json lying next to the executable.
// Without it every solver is looked up on PATH.
func setConfigPath() {
	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("cannot determine executable path: %v", err)
	}
	execPath = path.Dir(execPath)

	files, err := os.ReadDir(execPath)
	if err != nil {
		log.Fatalf("cannot read executable's directory: %v", err)
	}
	fileNames := lo.Map(files, func(file os.DirEntry, _ int) string { return file.Name() })

	if slices.Contains(fileNames, "config.json") {
		solver.ConfigPath = execPath + "/config.json"
	}
}
