// Package main provides tests for the leapstep CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapstep/internal/cli"
	"github.com/leapstack-labs/leapstep/internal/cli/config"
	"github.com/leapstack-labs/leapstep/internal/cli/output"
	clitestutil "github.com/leapstack-labs/leapstep/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command from dir and returns its standard output.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(dir)
	t.Cleanup(config.ResetConfig)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "leapstep v")
}

func TestHelpCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "--help")
	require.NoError(t, err)
	for _, expected := range []string{"export", "inspect", "structure", "history", "completion"} {
		assert.Contains(t, out, expected)
	}
}

func TestExportCommand(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	out, err := run(t, dir, "export", "bolted.yaml", "--schema", "ap242", "--output", "json")
	require.NoError(t, err)

	var result output.ExportOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "completed", result.Status)
	assert.Equal(t, "ap242", result.Schema)
	assert.Equal(t, "bolted.stp", result.Output)

	data, err := os.ReadFile(filepath.Join(dir, "bolted.stp"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "AP242_MANAGED_MODEL_BASED_3D_ENGINEERING_MIM_LF")
	_, err = os.Stat(filepath.Join(dir, ".leapstep", "ledger.db"))
	assert.NoError(t, err, "the ledger lives in the project")
}

func TestExportCommand_MultiFile(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	out, err := run(t, dir, "export", "bolted.yaml", "out/main.stp", "--multi-file", "--prefix", "p_", "--output", "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "## Extern files")
	for _, name := range []string{"main.stp", "p_Bolt.stp", "p_Plate.stp"} {
		_, err := os.Stat(filepath.Join(dir, "out", name))
		assert.NoError(t, err, name)
	}
	main, err := os.ReadFile(filepath.Join(dir, "out", "main.stp"))
	require.NoError(t, err)
	assert.Contains(t, string(main), "DOCUMENT_FILE('p_Bolt.stp'")
}

func TestExportCommand_NoColors(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	_, err := run(t, dir, "export", "bolted.yaml", "--no-colors", "--no-shuo", "--no-dimtol", "--no-ledger")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "bolted.stp"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "COLOUR")
	_, err = os.Stat(filepath.Join(dir, ".leapstep", "ledger.db"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportCommand_Errors(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	_, err := run(t, dir, "export", "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load document")

	_, err = run(t, dir, "export", "bolted.yaml", "--schema", "iges")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestHistoryCommand(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	_, err := run(t, dir, "export", "bolted.yaml")
	require.NoError(t, err)
	_, err = run(t, dir, "export", "cyclic.yaml")
	require.Error(t, err)

	out, err := run(t, dir, "history", "--output", "json")
	require.NoError(t, err)
	var history output.HistoryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &history))
	require.Len(t, history.Exports, 2)
	statuses := []string{history.Exports[0].Status, history.Exports[1].Status}
	assert.ElementsMatch(t, []string{"completed", "failed"}, statuses)

	out, err = run(t, dir, "history", "--output", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Export History")
	assert.Contains(t, out, "bolted.yaml")

	id := history.Exports[0].ID
	out, err = run(t, dir, "history", id, "--output", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "- **Document:** ")

	_, err = run(t, dir, "history", "no-such-id")
	assert.Error(t, err)
}

func TestStructureCommand(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	out, err := run(t, dir, "structure", "bolted.yaml", "--output", "json")
	require.NoError(t, err)

	var result output.StructureOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 4, result.Nodes)
	require.Len(t, result.Levels, 3)
	assert.Equal(t, "Root", result.Levels[2].Labels[0].Name)
}

func TestCompletionCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "completion", "bash")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "leapstep"), "completion script should name the command")
}
