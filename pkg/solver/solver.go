// Package solver implements the decision procedures that answer the formal models built by
// package encoder: in-process SAT and pseudo-Boolean solvers, and external executables
// (kissat, minisat, minizinc, z3, cbc) driven through their command lines.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/mitchellh/mapstructure"
)

// ConfigPath locates the JSON file mapping solver names to executable paths
var ConfigPath = "config.json"

// ExecutablePath returns the path configured for the solver in ConfigPath, or the solver's
// name (to be looked up in PATH) when there is no configuration for it
func ExecutablePath(solver string) (string, error) {
	content, err := os.ReadFile(ConfigPath)
	if errors.Is(err, os.ErrNotExist) {
		return solver, nil
	} else if err != nil {
		return "", fmt.Errorf("cannot read %v file: %w", ConfigPath, err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(content, &inputJson); err != nil {
		return "", fmt.Errorf("cannot read %v file: %w", ConfigPath, err)
	}

	var config map[string]string
	if err := mapstructure.Decode(inputJson, &config); err != nil {
		return "", fmt.Errorf("invalid solver paths in %v: %w", ConfigPath, err)
	}

	path, ok := config[solver]
	if !ok || path == "" {
		return solver, nil
	}
	return path, nil
}

// execution is the outcome of running an external solver
type execution struct {
	stdout   string
	stderr   string
	exitCode int
	// The run was killed because it exceeded its timeout or its context was cancelled
	killed bool
}

// execute runs the solver executable with the given arguments and standard input, killing it
// once the timeout elapses or the context is done. A non-zero exit code is not an error:
// solvers use exit codes to report their answer.
func execute(ctx context.Context, solver string, timeout time.Duration, stdin io.Reader, args ...string) (execution, error) {
	path, err := ExecutablePath(solver)
	if err != nil {
		return execution{}, err
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, path, args...)
	cmd.Stdin = stdin
	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	result := execution{stdout: stdOut.String(), stderr: stderr.String()}
	if runCtx.Err() != nil {
		result.killed = true
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.exitCode = exitErr.ExitCode()
		return result, nil
	} else if err != nil {
		return result, fmt.Errorf("an error occurred during %v execution: %v : %v", solver, err.Error(), stderr.String())
	}
	return result, nil
}

// writeTempFile stores content in a fresh temporary file whose name follows pattern. The
// caller removes the file.
func writeTempFile(pattern, content string) (string, error) {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %v", err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to write temporary file: %v", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to close temporary file: %v", err)
	}
	return tmpFile.Name(), nil
}

// timeoutSeconds rounds a timeout up to whole seconds, as solver command lines expect
func timeoutSeconds(timeout time.Duration) int {
	return int((timeout + time.Second - 1) / time.Second)
}
