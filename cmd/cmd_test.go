package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// execute runs the root command with the given args and captures its
// output, returning the status Execute() would exit with.
func execute(t *testing.T, args ...string) (int, string) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	return Execute(), out.String()
}

// shConfig writes a config that wraps /bin/sh so tests can script the
// "checker" without a real one installed.
func shConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	contents := []byte(`checker: sh
strict_flags:
  - -c
color: never
watch:
  include:
    - "**/*.py"
  runs_per_minute: 60
`)
	if err := os.WriteFile(filepath.Join(dir, "strictcheck.yaml"), contents, 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCheckPropagatesExitCode(t *testing.T) {
	dir := shConfig(t)

	code, _ := execute(t, "check", "--config", dir, "--", "exit 42")

	assert.Equal(t, 42, code)
}

func TestCheckSuccess(t *testing.T) {
	dir := shConfig(t)

	code, out := execute(t, "check", "--config", dir, "--", "echo checked")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "checked")
}

func TestCheckCheckerNotFound(t *testing.T) {
	dir := t.TempDir()
	contents := []byte(`checker: strictcheck-no-such-checker
color: never
watch:
  include:
    - "**/*.py"
  runs_per_minute: 60
`)
	if err := os.WriteFile(filepath.Join(dir, "strictcheck.yaml"), contents, 0644); err != nil {
		t.Fatal(err)
	}

	code, _ := execute(t, "check", "--config", dir)

	assert.Equal(t, 127, code)
}

func TestPrintDefaultInvocation(t *testing.T) {
	code, out := execute(t, "print", "--config", t.TempDir())

	assert.Equal(t, 0, code)
	assert.Equal(t,
		"mypy --strict-optional --disallow-untyped-defs --disallow-untyped-calls --disallow-incomplete-defs\n",
		out)
}

func TestPrintForwardsArgsInOrder(t *testing.T) {
	code, out := execute(t, "print", "--config", t.TempDir(), "main.py", "state/core.py")

	assert.Equal(t, 0, code)
	assert.Equal(t,
		"mypy --strict-optional --disallow-untyped-defs --disallow-untyped-calls --disallow-incomplete-defs main.py state/core.py\n",
		out)
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origWd)

	code, _ := execute(t, "init")
	assert.Equal(t, 0, code)

	_, err = os.Stat(filepath.Join(dir, "strictcheck.yaml"))
	assert.Nil(t, err)
}

func TestReportWithoutRunLog(t *testing.T) {
	code, out := execute(t, "report", "--config", t.TempDir())

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "run_log")
}

func TestCheckRecordsRunLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "runs.jsonl")
	contents := []byte(`checker: sh
strict_flags:
  - -c
color: never
run_log: ` + logPath + `
watch:
  include:
    - "**/*.py"
  runs_per_minute: 60
`)
	if err := os.WriteFile(filepath.Join(dir, "strictcheck.yaml"), contents, 0644); err != nil {
		t.Fatal(err)
	}

	code, _ := execute(t, "check", "--config", dir, "--", "exit 3")
	assert.Equal(t, 3, code)

	code, out := execute(t, "report", "--config", dir)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "runs: 1")
	assert.Contains(t, out, "failed: 1")
}
