package stepcaf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapstep/internal/diag"
	"github.com/leapstack-labs/leapstep/internal/extern"
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

const preprocessor = "leapstep"

// Write writes the main graph to path and every pending extern file next
// to it. Every file is attempted; the failures are joined.
func (w *Writer) Write(ctx context.Context, path string) error {
	if w.g.Len() == 0 {
		return ErrNothingTransferred
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if mainName := filepath.Base(path); w.ext.Len() > 0 {
		if renamed, ok := w.ext.Reserve(mainName); ok {
			w.renameExternRefs(mainName, renamed)
		}
	}

	var errs []error
	if w.ext.Len() > 0 {
		write := func(_ context.Context, f *extern.File, p string) error {
			return w.writeGraph(f.Graph, p)
		}
		if err := w.ext.WriteAll(ctx, dir, w.cfg.Parallelism, write); err != nil {
			errs = append(errs, err)
		}
	}
	if err := w.writeGraph(w.g, path); err != nil {
		w.sink.Report(diag.IOFailure, path, err.Error())
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	w.logger.Info("wrote exchange files", "path", path, "records", w.g.Len(), "extern_files", w.ext.Len())
	return nil
}

// Perform transfers the free shapes of doc in the configured mode and
// writes the result to path.
func (w *Writer) Perform(ctx context.Context, doc *xcaf.Document, path string) error {
	if err := w.Transfer(doc, w.cfg.Mode, w.cfg.Prefix); err != nil {
		return fmt.Errorf("failed to transfer document: %w", err)
	}
	return w.Write(ctx, path)
}

// renameExternRefs points the document files of the main graph named from
// at to.
func (w *Writer) renameExternRefs(from, to string) {
	for _, id := range w.g.ByKind(m.DocumentFile) {
		if v, ok := w.g.Field(id, "id"); ok && v == m.Str(from) {
			w.setString(id, "id", to)
		}
	}
}

func (w *Writer) header(name string) m.Header {
	return m.Header{
		Description:  "leapstep model",
		Name:         name,
		Timestamp:    w.cfg.Now().UTC().Format("2006-01-02T15:04:05"),
		Author:       w.cfg.Author,
		Organization: w.cfg.Organization,
		Preprocessor: preprocessor,
		Originating:  preprocessor,
		Schemas:      []string{w.cfg.Schema.Identifier()},
	}
}

func (w *Writer) writeGraph(g *m.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := g.WriteFile(f, w.header(filepath.Base(path))); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
