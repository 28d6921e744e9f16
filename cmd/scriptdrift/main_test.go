package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspace struct {
	dir     string
	catalog string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	t.Setenv("SUMMARIZER_BACKEND", "none")

	dir := t.TempDir()
	write := func(name, text string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
		return path
	}

	base := write("B_cohort.sql", "SELECT 1;\nFROM foo;\n")
	live := write("T_cohort.sql", "SELECT 1;\nFROM bar;\n")
	catalog := write("catalog.yaml", fmt.Sprintf(`scripts:
  - name: Cohort Script
    baseline: %s
    live: %s
  - name: Broken Script
    baseline: %s
    live: %s
`, base, live, base, filepath.Join(dir, "missing.sql")))

	return workspace{dir: dir, catalog: catalog}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestScriptsCmd(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := run(t, "scripts", "--catalog", ws.catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Cohort Script")
	assert.Contains(t, out, "Broken Script")
}

func TestCheckCmd(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := run(t, "check", "Cohort Script", "--catalog", ws.catalog, "--verify")
	require.NoError(t, err)

	assert.Contains(t, out, "== Cohort Script ==")
	assert.Contains(t, out, "⚠ Error generating summary: summarizer disabled")
	assert.Contains(t, out, "- FROM foo;\n+ FROM bar;")
	assert.Contains(t, out, "New lines added:\nFROM bar;\n\nLines removed:\nFROM foo;")
}

func TestCheckCmd_FetchFailure(t *testing.T) {
	ws := newWorkspace(t)

	out, errOut, err := run(t, "check", "--catalog", ws.catalog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 scripts could not be compared: Broken Script")
	assert.Contains(t, errOut, "Broken Script: Failed to load scripts for comparison.")
	assert.Contains(t, out, "== Cohort Script ==")
	assert.NotContains(t, out, "== Broken Script ==")
}

func TestCheckCmd_UnknownScript(t *testing.T) {
	ws := newWorkspace(t)

	_, _, err := run(t, "check", "Nope", "--catalog", ws.catalog)
	assert.ErrorContains(t, err, "Unknown script: Nope")
}

func TestCompareCmd_JSON(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := run(t, "compare",
		filepath.Join(ws.dir, "B_cohort.sql"),
		"file://"+filepath.Join(ws.dir, "T_cohort.sql"),
		"--json", "--hints")
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)

	rep := results[0]["report"].(map[string]any)
	counts := rep["counts"].(map[string]any)
	assert.EqualValues(t, 1, counts["added"])
	assert.EqualValues(t, 1, counts["removed"])
}

func TestCompareCmd_Errors(t *testing.T) {
	ws := newWorkspace(t)

	_, errOut, err := run(t, "compare", filepath.Join(ws.dir, "nope.sql"), filepath.Join(ws.dir, "T_cohort.sql"))
	require.Error(t, err)
	assert.Contains(t, errOut, "Failed to load scripts for comparison.")

	_, _, err = run(t, "compare", "only-one")
	assert.Error(t, err)

	_, _, err = run(t, "compare", "a", "b", "--summarizer", "bart")
	assert.ErrorContains(t, err, "unknown summarizer backend")
}
