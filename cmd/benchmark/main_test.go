package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, int64(60*1000+1000+120), parseDuration("00:01:01.12"))
	assert.Equal(t, int64(60*60*1000+60*1000+1000+120), parseDuration("01:01:01.12"))
	assert.Equal(t, int64(60*1000+1000+120), parseDuration("1:01.12"))
	assert.Equal(t, int64(120), parseDuration("0:00.12"))
	assert.Equal(t, int64(120), parseDuration("00:00:00.12"))
}

func TestParseTimeReport(t *testing.T) {
	assert.Equal(t, int64(2500), parseDurationLine("\tElapsed (wall clock) time (h:mm:ss or m:ss): 0:02.50"))
	assert.Equal(t, float32(2), parseMemoryLine("\tMaximum resident set size (kbytes): 2048"))
	assert.Equal(t, int64(97), parseCpuPercentageLine("\tPercent of CPU this job got: 97%"))
}

func TestGetInstances(t *testing.T) {
	defer func(previous []int) { instances = previous }(instances)
	instances = []int{5, 6, 8}

	tests := getInstances()

	require.Len(t, tests, 2)
	assert.Equal(t, InstanceMetadata{Teams: 6, Weeks: 5, Periods: 3, Games: 15}, tests[0])
	assert.Equal(t, 28, tests[1].Games)
}

func TestToCsv(t *testing.T) {
	//** Arrange
	var out bytes.Buffer
	results := []BenchmarkResult{{
		Approach:      "gini",
		Paradigm:      "CP",
		Instance:      InstanceMetadata{Teams: 6, Weeks: 5, Periods: 3, Games: 15},
		Duration:      120,
		Memory:        10.5,
		CpuPercentage: 99,
		Result:        solved,
	}}

	//** Act
	toCsv(&out, results)

	//** Assert
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Approach,Paradigm,Teams,Weeks,Periods,Games,Duration(ms),Memory(MB),CPU(%),Result", lines[0])
	assert.Equal(t, "gini,CP,6,5,3,15,120,10.5,99,solved", lines[1])
}
