package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestSingleRun(t *testing.T) {
	code, out, _ := runCLI(t, "S, I0, S", "--random_seed", "20170217")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "Running one simulation...\nFinal city: ['R', 'R', 'R']\nDays simulated: 3\n", out)
}

func TestFlagsBeforeCity(t *testing.T) {
	code, out, _ := runCLI(t, "--days-contagious", "1", "--random_seed=5", "S, I0, S")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Days simulated: 2\n")
}

func TestAverageRun(t *testing.T) {
	code, out, _ := runCLI(t, "S, I0, S", "--task-type", "average", "--num-trials", "20", "--random_seed", "1")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "Running multiple trials...\n"+
		"Over 20 trial(s), on average, it took 3.0 days for the number of infections to reach zero\n", out)
}

func TestAverageSummary(t *testing.T) {
	code, out, _ := runCLI(t, "S, I0, S", "--task-type", "average", "--num-trials", "4", "--random_seed", "9", "--summary")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Base seed: 9, std dev: 0.00, median: 3.0, min: 3, max: 3\n")
}

func TestInvalidCity(t *testing.T) {
	for _, city := range []string{"S, Q", "S, I", ""} {
		t.Run(city, func(t *testing.T) {
			code, out, _ := runCLI(t, city)
			assert.Equal(t, exitFailure, code)
			assert.Equal(t, "Error: people in the city must be susceptible ('S'), recovered ('R'), "+
				"vaccinated ('V'), or infected ('Ix', where *x* is an integer)\n", out)
		})
	}
}

func TestUsageErrors(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "missing argument CITY")

	code, _, _ = runCLI(t, "S", "S")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI(t, "S", "--task-type", "batch")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI(t, "S", "--vaccine-effectiveness", "1.5")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI(t, "S", "--days-contagious", "0")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI(t, "S", "--random_seed", "abc")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI(t, "S", "--num-trials", "0", "--task-type", "average")
	assert.Equal(t, exitUsage, code)
}

func TestSeedRange(t *testing.T) {
	code, _, stderr := runCLI(t, "S, I0, S", "--random_seed", "9007199254740993")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "random_seed")

	code, _, stderr = runCLI(t, "S, I0, S", "--random_seed", "-9007199254740993", "--remote", "127.0.0.1:1")
	assert.Equal(t, exitUsage, code, "out of range seeds never reach the remote daemon")
	assert.Contains(t, stderr, "random_seed")

	code, out, _ := runCLI(t, "S, I0, S", "--random_seed", "9007199254740992")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Days simulated: 3\n")

	code, _, _ = runCLI(t, "S", "--task-type", "average", "--chart", "x.png")
	assert.Equal(t, exitUsage, code)
}

func TestConfigFileWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: warn
experiment:
  city: "S, I0, S"
  days_contagious: 1
  random_seed: 3
`), 0o644))

	code, out, _ := runCLI(t, "--config", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Days simulated: 2\n")

	code, out, _ = runCLI(t, "--config", path, "--days-contagious", "2")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Days simulated: 3\n")

	code, out, _ = runCLI(t, "--config", path, "S, S")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Days simulated: 0\n")
}

func TestChartOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	code, _, _ := runCLI(t, "S, I0, S, S", "--random_seed", "1", "--chart", path)
	require.Equal(t, exitOK, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestDebugDayTrace(t *testing.T) {
	code, _, stderr := runCLI(t, "S, I0, S", "--random_seed", "1", "--log-level", "debug")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "day simulated")
	assert.Contains(t, stderr, "day=3")
}
