package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s-kondo-09/quantum-physics/config"
)

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = parseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = parseLevel("loud")
	assert.Error(t, err)
}

func TestRunSlopeSweep(t *testing.T) {
	e, err := config.Parse([]byte(`
experiment: slope-sweep
model: linear
sign: plus
center: crossing
mode: plain
parameters: {twist: 0}
grid: {from: -1, to: 1, points: 5, exclude: 0}
workers: 2
`))
	require.NoError(t, err)

	var out bytes.Buffer
	report := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, run(context.Background(), e, &out, report))

	assert.Contains(t, out.String(), "probability")
	assert.Contains(t, out.String(), "excluded zone")

	html, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(html), "slope-sweep of the linear model")
}

func TestRunCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
experiment: rate-sweep
model: linear
sign: plus
center: crossing
mode: plain
parameters: {twist: 0}
grid: {from: 0.5, to: 2, points: 4}
`), 0o644))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"run", "--config", path, "--log-level", "warn"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "landau-zener")
	assert.Contains(t, out.String(), "0.969")

	rootCmd.SetArgs([]string{"run", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, rootCmd.Execute())
}
