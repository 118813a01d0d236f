package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// Table writes rows under header: a light box table in text mode and a
// pipe table in markdown mode. Nothing is written for JSON.
func (r *Renderer) Table(header table.Row, rows []table.Row) {
	mode := r.EffectiveMode()
	if mode == ModeJSON {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	if mode == ModeMarkdown {
		t.RenderMarkdown()
		r.Println()
		return
	}
	t.Render()
}
