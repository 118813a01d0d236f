package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leapstep/internal/cli/output"
	"github.com/leapstack-labs/leapstep/internal/state"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [export-id]",
		Short: "Show recorded exports",
		Long: `List the most recent exports recorded in the ledger, or show one
export with its extern files.`,
		Example: `  # Last 20 exports
  leapstep history

  # One export
  leapstep history 5f0c...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runHistoryShow(cmd, args[0])
			}
			return runHistory(cmd, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of exports to list")
	return cmd
}

func runHistory(cmd *cobra.Command, limit int) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	store, err := openLedger(cc.Cfg, cc.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	exports, err := store.ListExports(cmd.Context(), limit)
	if err != nil {
		return err
	}

	result := output.HistoryOutput{Exports: make([]output.HistoryEntry, 0, len(exports))}
	for _, e := range exports {
		result.Exports = append(result.Exports, historyEntry(e))
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Export History"))
		r.Println("")
	default:
		r.Header(1, "Export History")
	}
	if len(exports) == 0 {
		r.Muted("No exports recorded in " + cc.Cfg.StatePath)
		return nil
	}
	rows := make([]table.Row, 0, len(exports))
	for _, e := range result.Exports {
		rows = append(rows, table.Row{
			shortID(e.ID),
			e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			e.Document,
			e.Schema,
			e.Mode,
			e.Status,
			e.Records,
		})
	}
	r.Table(table.Row{"ID", "Started", "Document", "Schema", "Mode", "Status", "Records"}, rows)
	return nil
}

func runHistoryShow(cmd *cobra.Command, id string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	store, err := openLedger(cc.Cfg, cc.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	e, err := store.GetExport(cmd.Context(), id)
	if err != nil {
		return err
	}
	result := output.ExportOutput{
		ID:       e.ID,
		Document: e.Document,
		Output:   e.Output,
		Schema:   e.Schema,
		Mode:     e.Mode,
		Status:   string(e.Status),
		Records:  e.Records,
		Error:    e.Error,
	}
	for _, f := range e.Files {
		result.Files = append(result.Files, output.ExternFileInfo(f))
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(result)
	}
	r.Header(1, "Export "+e.ID)
	r.Println(output.FormatKeyValue("Document", e.Document))
	r.Println(output.FormatKeyValue("Output", e.Output))
	r.Println(output.FormatKeyValue("Status", string(e.Status)))
	r.Println(output.FormatKeyValue("Schema", e.Schema+", "+e.Mode))
	r.Println(output.FormatKeyValue("Records", fmt.Sprintf("%d", e.Records)))
	r.Println(output.FormatKeyValue("Diagnostics", fmt.Sprintf("%d", e.Diagnostics)))
	if e.Error != "" {
		r.Println(output.FormatKeyValue("Error", e.Error))
	}
	if len(result.Files) > 0 {
		r.Println("")
		r.Table(table.Row{"File", "Label", "Status"}, fileRows(result.Files))
	}
	return nil
}

func historyEntry(e *state.Export) output.HistoryEntry {
	return output.HistoryEntry{
		ID:          e.ID,
		Document:    e.Document,
		Output:      e.Output,
		Schema:      e.Schema,
		Mode:        e.Mode,
		Status:      string(e.Status),
		Records:     e.Records,
		Diagnostics: e.Diagnostics,
		StartedAt:   e.StartedAt,
		CompletedAt: e.CompletedAt,
		Error:       e.Error,
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
