package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/limaJavier/roundrobin/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve(t *testing.T) {
	t.Run("Writes a valid schedule", func(t *testing.T) {
		//** Arrange
		out := filepath.Join(t.TempDir(), "6.json")
		settings := solveSettings{
			constraintFlags: constraintFlags{periodCap: model.DefaultPeriodCap},
			teams:           5,
			approach:        "GINI",
			timeout:         time.Minute,
			ceiling:         model.DefaultCeiling,
			out:             out,
		}

		//** Act
		code, err := solve(context.Background(), settings, &bytes.Buffer{})

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, exitSolved, code)

		reports, err := check(out, checkSettings{constraintFlags: settings.constraintFlags})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, 6, reports[0].Teams)
		assert.True(t, reports[0].Valid())
		assert.Equal(t, model.Valid, reports[0].Verdicts[0].Status)
	})

	t.Run("Reports unsatisfiable instances", func(t *testing.T) {
		//** Arrange
		var stdout bytes.Buffer
		settings := solveSettings{
			constraintFlags: constraintFlags{periodCap: model.DefaultPeriodCap},
			teams:           4,
			approach:        "gini",
			timeout:         time.Minute,
			ceiling:         model.DefaultCeiling,
		}

		//** Act
		code, err := solve(context.Background(), settings, &stdout)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, exitNoResult, code)
		results, err := model.ParseResults(stdout.Bytes())
		require.NoError(t, err)
		assert.Equal(t, model.DefaultCeiling, results["gini"].Time)
		assert.False(t, results["gini"].Optimal)
		assert.True(t, results["gini"].Sol.IsEmpty())
	})

	t.Run("Unknown approach", func(t *testing.T) {
		_, err := solve(context.Background(), solveSettings{teams: 6, approach: "gurobi"}, &bytes.Buffer{})

		assert.Error(t, err)
	})
}

func TestCheck(t *testing.T) {
	//** Arrange
	directory := t.TempDir()
	file := filepath.Join(directory, "results.json")
	content := `{"broken": {"time": 3, "optimal": true, "obj": null, "sol": [[[1, 2], [1, 3], [2, 3]]]}}`
	require.NoError(t, os.WriteFile(file, []byte(content), 0666))

	//** Act
	_, inferErr := check(file, checkSettings{})
	reports, err := check(file, checkSettings{teams: 4, constraintFlags: constraintFlags{periodCap: model.DefaultPeriodCap}})

	//** Assert
	assert.Error(t, inferErr)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.False(t, reports[0].Valid())
	assert.Equal(t, model.Invalid, reports[0].Verdicts[0].Status)

	var printed bytes.Buffer
	printReports(&printed, reports)
	assert.Contains(t, printed.String(), "broken")
	assert.Contains(t, printed.String(), "invalid")
}
