// Package state keeps a ledger of exports in SQLite.
// It records every export run with its outcome and the status of each
// extern file written for it.
package state

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an export id is unknown.
var ErrNotFound = errors.New("export not found")

// ExportStatus is the outcome of an export.
type ExportStatus string

// Export statuses. Partial means the main file was written but at least
// one extern file failed.
const (
	ExportRunning   ExportStatus = "running"
	ExportCompleted ExportStatus = "completed"
	ExportPartial   ExportStatus = "partial"
	ExportFailed    ExportStatus = "failed"
)

// Export is one export run.
type Export struct {
	ID          string
	Document    string
	Output      string
	Schema      string
	Mode        string
	Status      ExportStatus
	Records     int
	Diagnostics int
	StartedAt   time.Time
	CompletedAt *time.Time
	Error       string
	Files       []ExternFile
}

// ExternFile is the recorded outcome of one extern file.
type ExternFile struct {
	Name   string
	Label  string
	Status string
	Error  string
}

// Outcome is what CompleteExport records.
type Outcome struct {
	Status      ExportStatus
	Records     int
	Diagnostics int
	Error       string
}

// Store is the export ledger.
type Store interface {
	BeginExport(ctx context.Context, e *Export) error
	CompleteExport(ctx context.Context, id string, o Outcome) error
	RecordExternFiles(ctx context.Context, id string, files []ExternFile) error
	GetExport(ctx context.Context, id string) (*Export, error)
	ListExports(ctx context.Context, limit int) ([]*Export, error)
	Close() error
}
