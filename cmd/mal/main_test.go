package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ToucheSir/mal/pkg/evaluator"
)

func writeProgram(t *testing.T, name, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestHelpCommand(t *testing.T) {
	assert.Equal(t, 0, dispatch([]string{"help"}))
	assert.Equal(t, 0, dispatch([]string{"help", "forms"}))
	assert.Equal(t, 0, dispatch([]string{"help", "mac"}))
	assert.Equal(t, 0, dispatch([]string{"help", "stdlib", "--index"}))
	assert.Equal(t, 1, dispatch([]string{"help", "nope"}))
	assert.Equal(t, 1, dispatch([]string{"help", "forms", "--index"}))
	assert.Equal(t, 0, dispatch([]string{"version"}))
}

func TestRunExitCodes(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"ok", "(def! x (+ 1 2))", 0},
		{"throw", `(throw "boom")`, 3},
		{"lookup", "(undefined-fn)", 4},
		{"read", "(+ 1", 2},
		{"argv", `(if (= *ARGV* (list "a" "-b")) nil (throw "bad argv"))`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProgram(t, "prog.mal", tt.source)
			assert.Equal(t, tt.want, dispatch([]string{path, "a", "-b"}))
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	assert.Equal(t, 1, dispatch([]string{"run", filepath.Join(t.TempDir(), "missing.mal")}))
	assert.Equal(t, 1, dispatch([]string{"run"}))
}

func TestRunTrace(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	prog := writeProgram(t, "prog.mal", "(try* (throw 1) (catch* e e))")
	tracePath := filepath.Join(t.TempDir(), "trace.jsonl")

	require.Equal(t, 0, dispatch([]string{"run", "--trace", tracePath, "--stats", prog}))

	f, err := os.Open(tracePath)
	require.NoError(t, err)
	defer f.Close()

	var kinds []evaluator.TraceEventType
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev evaluator.TraceEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		kinds = append(kinds, ev.Event)
	}
	require.NoError(t, scanner.Err())
	assert.Contains(t, kinds, evaluator.TraceTryStart)
	assert.Contains(t, kinds, evaluator.TraceCatch)
}

func TestRunPreloadFromConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	lib := writeProgram(t, "lib.mal", "(def! answer 42)")
	cfgPath := writeProgram(t, "mal.toml", "preload = [\""+lib+"\"]\n")
	prog := writeProgram(t, "prog.mal", `(if (= answer 42) nil (throw "preload missing"))`)

	assert.Equal(t, 0, dispatch([]string{"run", "--config", cfgPath, prog}))
	assert.Equal(t, 4, dispatch([]string{"run", prog}))
}

func TestCheckCommand(t *testing.T) {
	ok := writeProgram(t, "ok.mal", "(def! f (fn* (x) (if x 1 2)))")
	bad := writeProgram(t, "bad.mal", "(if)")
	broken := writeProgram(t, "broken.mal", "(def! x")

	assert.Equal(t, 0, dispatch([]string{"check", ok}))
	assert.Equal(t, 0, dispatch([]string{"check", "--pretty", ok}))
	assert.Equal(t, 2, dispatch([]string{"check", bad}))
	assert.Equal(t, 2, dispatch([]string{"check", ok, broken}))
	assert.Equal(t, 1, dispatch([]string{"check", filepath.Join(t.TempDir(), "missing.mal")}))
	assert.Equal(t, 1, dispatch([]string{"check"}))
}

func TestFmtCommand(t *testing.T) {
	path := writeProgram(t, "messy.mal", "(def!   x\n   [1   2])")
	assert.Equal(t, 0, dispatch([]string{"fmt", path}))

	require.Equal(t, 0, dispatch([]string{"fmt", "--write", path}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "(def! x [1 2])\n", string(data))

	broken := writeProgram(t, "broken.mal", "(")
	assert.Equal(t, 2, dispatch([]string{"fmt", broken}))
	assert.Equal(t, 1, dispatch([]string{"fmt"}))
}
