package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leapstep/internal/cli/output"
	"github.com/leapstack-labs/leapstep/internal/diag"
	"github.com/leapstack-labs/leapstep/internal/extern"
	"github.com/leapstack-labs/leapstep/internal/state"
	"github.com/leapstack-labs/leapstep/pkg/stepcaf"
	"github.com/spf13/cobra"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Document string
	Output   string
	Watch    bool
	NoLedger bool
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <document> [output]",
		Short: "Write a document as STEP",
		Long: `Translate an assembly document into a STEP exchange file.

The output defaults to the document path with the configured extension.
In multi-file mode every leaf part is written into its own file next to
the main file, and the main file refers to them.

Every export is recorded in the ledger (see 'leapstep history').`,
		Example: `  # Export with the configured schema
  leapstep export bolted.yaml

  # AP242, one file per part, prefixed names
  leapstep export bolted.yaml out/bolted.stp --schema ap242 --multi-file --prefix p_

  # Skip colours and layers
  leapstep export bolted.yaml --no-colors --no-layers

  # Re-export on every change
  leapstep export bolted.yaml --watch`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Document = args[0]
			if len(args) > 1 {
				opts.Output = args[1]
			}
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-export whenever the document changes")
	cmd.Flags().BoolVar(&opts.NoLedger, "no-ledger", false, "Do not record the export in the ledger")
	addModeFlags(cmd)

	return cmd
}

// addModeFlags registers the flags turning off writer passes.
func addModeFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-colors", false, "Do not write colours or visibility")
	cmd.Flags().Bool("no-names", false, "Do not write product and occurrence names")
	cmd.Flags().Bool("no-layers", false, "Do not write layers")
	cmd.Flags().Bool("no-props", false, "Do not write validation properties")
	cmd.Flags().Bool("no-shuo", false, "Do not write styled higher usage occurrences")
	cmd.Flags().Bool("no-dimtol", false, "Do not write GD&T")
	cmd.Flags().Bool("no-materials", false, "Do not write materials")
	cmd.Flags().Bool("subshape-names", false, "Name representation items after sub-shape labels")
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	cc := NewCommandContext(cmd)
	if cmd.Flags().Changed("subshape-names") {
		on, _ := cmd.Flags().GetBool("subshape-names")
		cc.Cfg.Modes.SubShapeNames = on
	}
	if opts.Output == "" {
		opts.Output = strings.TrimSuffix(opts.Document, filepath.Ext(opts.Document)) + cc.Cfg.Extension
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var ledger state.Store
	if !opts.NoLedger {
		store, err := openLedger(cc.Cfg, cc.Logger)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		ledger = store
	}

	result, err := exportDocument(ctx, cc, ledger, opts.Document, opts.Output)
	renderExport(cc.Renderer, result)
	if !opts.Watch {
		return err
	}
	if err != nil {
		cc.Renderer.Warning(err.Error())
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cc.Renderer.Muted("Watching " + opts.Document + " (Ctrl+C to stop)")
	return watchFile(ctx, opts.Document, cc.Logger, defaultDebounce, func() {
		result, err := exportDocument(ctx, cc, ledger, opts.Document, opts.Output)
		renderExport(cc.Renderer, result)
		if err != nil {
			cc.Renderer.Warning(err.Error())
		}
	})
}

// exportDocument loads, translates and writes one document, recording the
// outcome in ledger when it is not nil.
func exportDocument(ctx context.Context, cc *CommandContext, ledger state.Store, docPath, outPath string) (*output.ExportOutput, error) {
	cfg := cc.Cfg
	result := &output.ExportOutput{
		Document: docPath,
		Output:   outPath,
		Schema:   cfg.Schema.String(),
		Mode:     cfg.Mode().String(),
	}

	var entry *state.Export
	if ledger != nil {
		entry = &state.Export{Document: docPath, Output: outPath, Schema: result.Schema, Mode: result.Mode}
		if err := ledger.BeginExport(ctx, entry); err != nil {
			return result, err
		}
		result.ID = entry.ID
	}

	w := stepcaf.New(cfg.WriterConfig(cc.Logger))
	doc, err := loadDocument(docPath)
	if err == nil {
		err = w.Perform(ctx, doc, outPath)
	}

	result.Records = w.Graph().Len()
	for _, d := range w.Diagnostics() {
		result.Diagnostics = append(result.Diagnostics, output.DiagnosticInfo{
			Kind:    d.Kind.String(),
			Label:   d.Subject,
			Message: d.Message,
		})
	}
	var files []state.ExternFile
	for _, f := range w.ExternFiles() {
		ef := state.ExternFile{Name: f.Name, Label: f.Label.Entry(), Status: f.Status.String()}
		if f.Err != nil {
			ef.Error = f.Err.Error()
		}
		files = append(files, ef)
		result.Files = append(result.Files, output.ExternFileInfo(ef))
	}
	result.Status = string(exportStatus(err, w.Diagnostics(), outPath))
	if err != nil {
		result.Error = err.Error()
	}

	if ledger != nil {
		if ferr := ledger.RecordExternFiles(ctx, entry.ID, files); ferr != nil {
			cc.Logger.Warn("failed to record extern files", "error", ferr)
		}
		outcome := state.Outcome{
			Status:      state.ExportStatus(result.Status),
			Records:     result.Records,
			Diagnostics: len(result.Diagnostics),
			Error:       result.Error,
		}
		if cerr := ledger.CompleteExport(ctx, entry.ID, outcome); cerr != nil {
			cc.Logger.Warn("failed to complete export record", "error", cerr)
		}
	}
	return result, err
}

// exportStatus is partial when only extern files failed: the main file
// was written and refers to them.
func exportStatus(err error, diags []diag.Diagnostic, outPath string) state.ExportStatus {
	if err == nil {
		return state.ExportCompleted
	}
	if !errors.Is(err, extern.ErrWriteFailed) {
		return state.ExportFailed
	}
	for _, d := range diags {
		if d.Kind == diag.IOFailure && d.Subject == outPath {
			return state.ExportFailed
		}
	}
	if _, serr := os.Stat(outPath); serr != nil {
		return state.ExportFailed
	}
	return state.ExportPartial
}

func renderExport(r *output.Renderer, result *output.ExportOutput) {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		_ = r.JSON(result)
	case output.ModeMarkdown:
		exportMarkdown(r, result)
	default:
		exportText(r, result)
	}
}

func exportText(r *output.Renderer, result *output.ExportOutput) {
	styles := r.Styles()
	switch state.ExportStatus(result.Status) {
	case state.ExportCompleted:
		r.Success(fmt.Sprintf("Wrote %s (%d records)", result.Output, result.Records))
	case state.ExportPartial:
		r.Println(styles.Warning.Render(fmt.Sprintf("Wrote %s, some extern files failed", result.Output)))
	default:
		r.Println(styles.Error.Render("Export of " + result.Document + " failed"))
	}
	r.Printf("  %s %s, %s\n", styles.Muted.Render("schema:"), result.Schema, result.Mode)
	if len(result.Files) > 0 {
		r.Println("")
		r.Table(table.Row{"File", "Label", "Status"}, fileRows(result.Files))
	}
	if len(result.Diagnostics) > 0 {
		r.Println("")
		r.Println(styles.Header2.Render("Diagnostics"))
		for _, d := range result.Diagnostics {
			r.Printf("  %s %s %s\n", styles.Warning.Render(d.Kind), styles.Path.Render(d.Label), d.Message)
		}
	}
}

func exportMarkdown(r *output.Renderer, result *output.ExportOutput) {
	r.Println(output.FormatHeader(1, "Export "+result.Document))
	r.Println("")
	r.Println(output.FormatKeyValue("Output", result.Output))
	r.Println(output.FormatKeyValue("Status", result.Status))
	r.Println(output.FormatKeyValue("Schema", result.Schema))
	r.Println(output.FormatKeyValue("Mode", result.Mode))
	r.Println(output.FormatKeyValue("Records", fmt.Sprintf("%d", result.Records)))
	if result.ID != "" {
		r.Println(output.FormatKeyValue("Ledger ID", result.ID))
	}
	r.Println("")
	if len(result.Files) > 0 {
		r.Println(output.FormatHeader(2, "Extern files"))
		r.Println("")
		r.Table(table.Row{"File", "Label", "Status"}, fileRows(result.Files))
	}
	if len(result.Diagnostics) > 0 {
		r.Println(output.FormatHeader(2, "Diagnostics"))
		r.Println("")
		for _, d := range result.Diagnostics {
			r.Printf("- `%s` %s: %s\n", d.Kind, d.Label, d.Message)
		}
		r.Println("")
	}
}

func fileRows(files []output.ExternFileInfo) []table.Row {
	rows := make([]table.Row, 0, len(files))
	for _, f := range files {
		status := f.Status
		if f.Error != "" {
			status += ": " + f.Error
		}
		rows = append(rows, table.Row{f.Name, f.Label, status})
	}
	return rows
}
