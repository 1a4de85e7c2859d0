package harness

import (
	"bytes"
	"os"
	"os/exec"
	"sort"
	"strings"
	"testing"
)

// Run executes the okrcoach CLI to completion in workDir and returns its
// stdout, stderr, and exit code. A non-zero exit is not a test failure;
// callers assert on the code.
func Run(t *testing.T, binPath, workDir string, args []string) (string, string, int) {
	t.Helper()

	cmd := exec.Command(binPath, args...)
	cmd.Dir = workDir

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		ee, ok := err.(*exec.ExitError)
		if !ok {
			t.Fatalf("run %s: %v", binPath, err)
		}
		exitCode = ee.ExitCode()
	}

	return stdout.String(), stderr.String(), exitCode
}

// mergeEnv layers overrides on top of the test process environment,
// sorted for deterministic exec.Cmd input.
func mergeEnv(overrides map[string]string) []string {
	env := make(map[string]string, len(overrides))
	for _, entry := range os.Environ() {
		key, val, _ := strings.Cut(entry, "=")
		env[key] = val
	}
	for k, v := range overrides {
		env[k] = v
	}

	merged := make([]string, 0, len(env))
	for k, v := range env {
		merged = append(merged, k+"="+v)
	}
	sort.Strings(merged)
	return merged
}
