package output

import (
	"bytes"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode Mode, tty bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		tty  bool
		want Mode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{"", false, ModeMarkdown},
		{ModeText, false, ModeText},
		{ModeJSON, true, ModeJSON},
	}
	for _, tt := range tests {
		r, _, _ := newTestRenderer(tt.mode, tt.tty)
		assert.Equal(t, tt.want, r.EffectiveMode(), "mode %q tty %v", tt.mode, tt.tty)
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestRenderer_Markdown(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeMarkdown, false)

	r.Header(2, "Extern files")
	r.StatusLine("Bolt.stp", "success", "0:1:1:2")
	r.Success("done")
	r.Muted("ledger.db")
	r.Warning("1 naming conflict")

	assert.Equal(t, "## Extern files\n\n- Bolt.stp (success): 0:1:1:2\n**done**\n_ledger.db_\n", out.String())
	assert.Equal(t, "> **Warning:** 1 naming conflict\n", errOut.String())
}

func TestRenderer_TextWithoutTTY(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText, false)

	r.StatusLine("Nut.stp", "failed", "")
	r.Header(1, "Export")

	assert.Equal(t, "✗ Nut.stp\nExport\n", out.String())
}

func TestRenderer_Table(t *testing.T) {
	rows := []table.Row{{"Bolt.stp", "written"}, {"Nut.stp", "failed"}}

	r, out, _ := newTestRenderer(ModeMarkdown, false)
	r.Table(table.Row{"File", "Status"}, rows)
	assert.Contains(t, out.String(), "| Nut.stp | failed |")

	r, out, _ = newTestRenderer(ModeText, false)
	r.Table(table.Row{"File", "Status"}, rows)
	assert.Contains(t, out.String(), "│ Bolt.stp │ written │")

	r, out, _ = newTestRenderer(ModeJSON, false)
	r.Table(table.Row{"File"}, rows)
	assert.Empty(t, out.String())
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)
	require.NoError(t, r.JSON(KindCount{Kind: "PRODUCT", Count: 2}))
	assert.JSONEq(t, `{"kind":"PRODUCT","count":2}`, out.String())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "### Levels", FormatHeader(3, "Levels"))
	assert.Equal(t, "# Top", FormatHeader(0, "Top"))
	assert.Equal(t, "- **Schema:** ap214", FormatKeyValue("Schema", "ap214"))
	assert.Equal(t, "```step\nISO-10303-21;\n```", FormatCodeBlock("step", "ISO-10303-21;\n"))
}
