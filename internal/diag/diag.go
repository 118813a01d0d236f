// Package diag collects the non-fatal findings of a transfer.
//
// A transfer never stops on a missing link or a malformed annotation: the
// smallest affected unit is skipped, a diagnostic is recorded and logged,
// and translation continues.
package diag

import (
	"context"
	"fmt"
	"log/slog"
)

// Kind classifies a diagnostic.
type Kind int

// Diagnostic kinds.
const (
	// StructuralMiss is an expected link of the output graph that could not be found.
	StructuralMiss Kind = iota
	// InvalidInput is a null shape, unbound label or malformed annotation.
	InvalidInput
	// NamingConflict is an extern file name that had to be suffixed.
	NamingConflict
	// IOFailure is a file that could not be written.
	IOFailure
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case StructuralMiss:
		return "structural-miss"
	case InvalidInput:
		return "invalid-input"
	case NamingConflict:
		return "naming-conflict"
	case IOFailure:
		return "io-failure"
	default:
		return "unknown"
	}
}

// Diagnostic is one finding.
type Diagnostic struct {
	Kind    Kind
	Subject string // label entry or file name
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Subject, d.Message)
}

// Sink records diagnostics and logs them.
type Sink struct {
	logger *slog.Logger
	items  []Diagnostic
}

// New creates a sink. A nil logger discards log output.
func New(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sink{logger: logger}
}

// Report records a diagnostic. Naming conflicts are resolved automatically
// and only logged at debug level.
func (s *Sink) Report(kind Kind, subject, msg string) {
	s.items = append(s.items, Diagnostic{Kind: kind, Subject: subject, Message: msg})
	level := slog.LevelWarn
	if kind == NamingConflict {
		level = slog.LevelDebug
	}
	s.logger.Log(context.Background(), level, msg, "kind", kind.String(), "subject", subject)
}

// Miss records a StructuralMiss.
func (s *Sink) Miss(subject, format string, args ...any) {
	s.Report(StructuralMiss, subject, fmt.Sprintf(format, args...))
}

// Invalid records an InvalidInput.
func (s *Sink) Invalid(subject, format string, args ...any) {
	s.Report(InvalidInput, subject, fmt.Sprintf(format, args...))
}

// All returns the recorded diagnostics in order.
func (s *Sink) All() []Diagnostic {
	return append([]Diagnostic(nil), s.items...)
}

// Count returns the number of diagnostics of a kind.
func (s *Sink) Count(kind Kind) int {
	n := 0
	for _, d := range s.items {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of diagnostics.
func (s *Sink) Len() int { return len(s.items) }
