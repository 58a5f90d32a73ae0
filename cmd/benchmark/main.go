package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/limaJavier/roundrobin/pkg/experiment"
	"github.com/limaJavier/roundrobin/pkg/model"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const (
	defaultExecutablePath         = "../../bin/roundrobin"
	KB                            = 1024
	MB                    float32 = 1024 * 1024
)

// Exit codes of the solve command
const (
	exitSolved   = 10
	exitNoResult = 20
	exitInvalid  = 15
)

type ResultType int

const (
	solved ResultType = iota
	unsolved
	timeout
	invalid
)

var resultTypes = map[ResultType]string{
	solved:   "solved",
	unsolved: "unsolved",
	timeout:  "timeout",
	invalid:  "invalid",
}

type InstanceMetadata struct {
	Teams   int
	Weeks   int
	Periods int
	Games   int
}

type BenchmarkResult struct {
	Approach      string
	Paradigm      string
	Instance      InstanceMetadata
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
}

var (
	executablePath string
	instances      []int
	approaches     []string
	timeLimit      time.Duration
	outFile        string

	rootCmd = &cobra.Command{
		Use:   "benchmark",
		Short: "Measure time, memory and CPU usage of every approach on every instance size",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func main() {
	rootCmd.Flags().StringVar(&executablePath, "executable", defaultExecutablePath, "Path to the roundrobin executable")
	rootCmd.Flags().IntSliceVarP(&instances, "teams", "n", []int{6, 8, 10}, "Team counts to benchmark")
	rootCmd.Flags().StringSliceVarP(&approaches, "approaches", "a", experiment.ApproachNames(), "Approaches to benchmark")
	rootCmd.Flags().DurationVarP(&timeLimit, "timeout", "t", model.DefaultCeiling*time.Second, "Time given to each run")
	rootCmd.Flags().StringVarP(&outFile, "out", "o", "benchmark_results.csv", "CSV file receiving the measurements")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() {
	tests := getInstances()
	results := make([]BenchmarkResult, 0, len(tests)*len(approaches))

	for _, test := range tests {
		for _, name := range approaches {
			approach, ok := experiment.Lookup(name)
			if !ok {
				log.Fatalf("%v is not a valid approach", name)
			}
			fmt.Printf("Benchmarking %v teams with approach \"%v\"\n", test.Teams, approach.Name)

			duration, maxMemory, cpuPercentage, result := measure(approach.Name, test.Teams)

			results = append(results, BenchmarkResult{
				Approach:      approach.Name,
				Paradigm:      string(approach.Paradigm),
				Instance:      test,
				Duration:      duration,
				Memory:        maxMemory,
				CpuPercentage: cpuPercentage,
				Result:        result,
			})
		}
	}

	file, err := os.Create(outFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()
	toCsv(file, results)
}

func getInstances() []InstanceMetadata {
	teams := lo.Uniq(lo.Map(instances, func(teams int, _ int) int { return model.NormalizeTeams(teams) }))
	return lo.Map(teams, func(teams int, _ int) InstanceMetadata {
		instance, err := model.NewInstance(teams)
		if err != nil {
			log.Fatalf("invalid instance: %v", err)
		}
		return InstanceMetadata{
			Teams:   instance.Teams,
			Weeks:   instance.Weeks,
			Periods: instance.Periods,
			Games:   instance.Games(),
		}
	})
}

func measure(approach string, teams int) (duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "solve", "-n", strconv.Itoa(teams), "-a", approach, "-t", timeLimit.String(), "-o", os.DevNull)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	switch cmd.ProcessState.ExitCode() {
	case exitSolved:
		result = solved
	case exitInvalid:
		result = invalid
	case exitNoResult:
		result = lo.Ternary(duration >= timeLimit.Milliseconds(), timeout, unsolved)
	default:
		log.Fatalf("an error occurred during the execution of \"roundrobin\" with %v teams using approach \"%v\": %v\n", teams, approach, stdErr.String())
	}

	return duration, maxMemory, cpuPercentage, result
}

func toCsv(out io.Writer, results []BenchmarkResult) {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	header := []string{"Approach", "Paradigm", "Teams", "Weeks", "Periods", "Games", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Approach,
			result.Paradigm,
			fmt.Sprintf("%d", result.Instance.Teams),
			fmt.Sprintf("%d", result.Instance.Weeks),
			fmt.Sprintf("%d", result.Instance.Periods),
			fmt.Sprintf("%d", result.Instance.Games),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

// Maximum resident set size is reported in kilobytes
func parseMemoryLine(line string) float32 {
	memoryStr := strings.TrimSpace(strings.Split(line, ":")[1])
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) * KB / MB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.TrimSpace(strings.Split(line, ":")[1])
	percentageStr = strings.TrimSuffix(percentageStr, "%")
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
