package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSumCommand(t *testing.T) {
	stdout, stderr, err := execute(t, "sum",
		"--input-size=100000", "--reduce-threshold=1000", "--pool-parallelism=2", "--reduce-tasks=4")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "sequential"))
	assert.True(t, strings.HasPrefix(lines[1], "parallel"))
	assert.True(t, strings.HasPrefix(lines[2], "chunked"))
	assert.Contains(t, stderr, "generating input")
}

func TestBenchCommand(t *testing.T) {
	stdout, _, err := execute(t, "bench",
		"--input-size=20000", "--reduce-threshold=500", "--bench-runs=2", "--pool-parallelism=1")
	require.NoError(t, err)

	assert.Contains(t, stdout, "VARIANT")
	assert.Contains(t, stdout, "sequential")
	assert.Contains(t, stdout, "parallel")
	assert.Contains(t, stdout, "chunked")
	assert.NotContains(t, stdout, "false")
}

func TestEmptyInput(t *testing.T) {
	stdout, _, err := execute(t, "sum", "--input-size=0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "parallel   0\n")
}

func TestRejectsOddInputSize(t *testing.T) {
	_, _, err := execute(t, "sum", "--input-size=7")
	assert.ErrorContains(t, err, "input.size")
}

func TestDebugLogging(t *testing.T) {
	_, stderr, err := execute(t, "sum", "--input-size=1000", "--log-level=debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "run finished")
}
