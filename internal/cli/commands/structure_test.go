package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapstep/internal/cli/config"
	"github.com/leapstack-labs/leapstep/internal/cli/output"
	clitestutil "github.com/leapstack-labs/leapstep/internal/cli/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs cmd with args under the default configuration.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestStructureCommand(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	out, err := execute(t, NewStructureCommand(), filepath.Join(dir, "bolted.yaml"))
	require.NoError(t, err)

	clitestutil.AssertNoANSI(t, out)
	clitestutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Product Structure")
	assert.Contains(t, out, "## Level 0")
	assert.Contains(t, out, "## Level 2")
	assert.Contains(t, out, "Root (uses")
	assert.Contains(t, out, "**Total:** 4 definitions, 3 usages")
}

func TestStructureCommand_Cyclic(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	out, err := execute(t, NewStructureCommand(), filepath.Join(dir, "cyclic.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid product structure")
	assert.Contains(t, out, "## Cycles")
}

func TestInspectCommand(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	out, err := execute(t, NewInspectCommand(), filepath.Join(dir, "bolted.yaml"), "--no-colors")
	require.NoError(t, err)

	clitestutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Inspect ")
	assert.Contains(t, out, "| PRODUCT |")
	assert.Contains(t, out, "- **Schema:** ap214")
}

func TestInspectOutput(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)
	tr := clitestutil.NewTestRendererJSON()
	cc := testContext(t, tr)

	doc, err := loadDocument(filepath.Join(dir, "bolted.yaml"))
	require.NoError(t, err)
	w := newTestWriter(t, cc)
	require.NoError(t, w.Transfer(doc, cc.Cfg.Mode(), ""))

	result := inspectOutput("bolted.yaml", w)
	require.NoError(t, tr.JSON(result))

	var decoded output.InspectOutput
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &decoded))
	assert.Equal(t, w.Graph().Len(), decoded.Records)
	total := 0
	for i, k := range decoded.Kinds {
		total += k.Count
		if i > 0 {
			assert.GreaterOrEqual(t, decoded.Kinds[i-1].Count, k.Count, "kinds are sorted by count")
		}
	}
	assert.Equal(t, decoded.Records, total)
}
