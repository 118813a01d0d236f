package commands

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leapstep/internal/cli/output"
	"github.com/leapstack-labs/leapstep/pkg/stepcaf"
	"github.com/spf13/cobra"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <document>",
		Short: "Show the entities a document translates into",
		Long: `Translate a document without writing any file and count the
resulting entity instances by kind.

Useful to check the effect of schema and pass settings before exporting.`,
		Example: `  # Count entities for AP242
  leapstep inspect bolted.yaml --schema ap242

  # As JSON
  leapstep inspect bolted.yaml --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
	addModeFlags(cmd)
	return cmd
}

func runInspect(cmd *cobra.Command, docPath string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	doc, err := loadDocument(docPath)
	if err != nil {
		return err
	}
	w := stepcaf.New(cc.Cfg.WriterConfig(cc.Logger))
	if err := w.Transfer(doc, cc.Cfg.Mode(), cc.Cfg.Prefix); err != nil {
		return fmt.Errorf("failed to transfer document: %w", err)
	}

	result := inspectOutput(docPath, w)
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		inspectMarkdown(r, result)
	default:
		inspectText(r, result)
	}
	return nil
}

func inspectOutput(docPath string, w *stepcaf.Writer) *output.InspectOutput {
	g := w.Graph()
	counts := make(map[string]int)
	for _, id := range g.Members() {
		counts[string(g.Kind(id))]++
	}
	kinds := make([]output.KindCount, 0, len(counts))
	for k, n := range counts {
		kinds = append(kinds, output.KindCount{Kind: k, Count: n})
	}
	sort.Slice(kinds, func(i, j int) bool {
		if kinds[i].Count != kinds[j].Count {
			return kinds[i].Count > kinds[j].Count
		}
		return kinds[i].Kind < kinds[j].Kind
	})

	result := &output.InspectOutput{
		Document: docPath,
		Schema:   w.Schema().String(),
		Records:  g.Len(),
		Kinds:    kinds,
	}
	for _, d := range w.Diagnostics() {
		result.Diagnostics = append(result.Diagnostics, output.DiagnosticInfo{
			Kind:    d.Kind.String(),
			Label:   d.Subject,
			Message: d.Message,
		})
	}
	return result
}

func kindRows(kinds []output.KindCount) []table.Row {
	rows := make([]table.Row, 0, len(kinds))
	for _, k := range kinds {
		rows = append(rows, table.Row{k.Kind, k.Count})
	}
	return rows
}

func inspectText(r *output.Renderer, result *output.InspectOutput) {
	styles := r.Styles()
	r.Header(1, result.Document)
	r.Table(table.Row{"Entity", "Count"}, kindRows(result.Kinds))
	r.Println(styles.Muted.Render(fmt.Sprintf("Total: %d records (%s)", result.Records, result.Schema)))
	for _, d := range result.Diagnostics {
		r.Printf("%s %s %s\n", styles.Warning.Render(d.Kind), styles.Path.Render(d.Label), d.Message)
	}
}

func inspectMarkdown(r *output.Renderer, result *output.InspectOutput) {
	r.Println(output.FormatHeader(1, "Inspect "+result.Document))
	r.Println("")
	r.Println(output.FormatKeyValue("Schema", result.Schema))
	r.Println(output.FormatKeyValue("Records", fmt.Sprintf("%d", result.Records)))
	r.Println("")
	r.Table(table.Row{"Entity", "Count"}, kindRows(result.Kinds))
	if len(result.Diagnostics) > 0 {
		r.Println(output.FormatHeader(2, "Diagnostics"))
		r.Println("")
		for _, d := range result.Diagnostics {
			r.Printf("- `%s` %s: %s\n", d.Kind, d.Label, d.Message)
		}
	}
}
