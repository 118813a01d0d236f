// Package extern manages the files of a multi-file export: one file per
// leaf shape, named without collisions and tracked with a per-file status.
package extern

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapstep/internal/diag"
	"github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// ErrWriteFailed is wrapped by the error of every file that could not be written.
var ErrWriteFailed = errors.New("extern file write failed")

// Status is the state of an extern file.
type Status int

// File statuses.
const (
	Pending Status = iota
	Written
	Failed
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Written:
		return "written"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// File is one extern file.
type File struct {
	Name  string
	Label *xcaf.Label
	Graph *stepmodel.Graph
	// Transferred reports whether the shape was translated into Graph.
	Transferred bool
	Status      Status
	Err         error
}

// Manager allocates names and tracks the extern files of one writer.
type Manager struct {
	ext     string
	sink    *diag.Sink
	used    map[string]struct{}
	next    map[string]int
	files   []*File
	byName  map[string]*File
	byLabel map[*xcaf.Label]*File
}

// New creates a manager for files with the given extension (".stp" when empty).
func New(ext string, sink *diag.Sink) *Manager {
	if ext == "" {
		ext = ".stp"
	}
	if sink == nil {
		sink = diag.New(nil)
	}
	return &Manager{
		ext:     ext,
		sink:    sink,
		used:    make(map[string]struct{}),
		next:    make(map[string]int),
		byName:  make(map[string]*File),
		byLabel: make(map[*xcaf.Label]*File),
	}
}

// AllocateName reserves a file name for prefix+base. An occupied name is
// suffixed with _1, _2, ... in order; numbers are never reused.
func (m *Manager) AllocateName(base, prefix string) string {
	stem := sanitize(prefix + base)
	name := stem + m.ext
	if _, taken := m.used[name]; !taken {
		m.used[name] = struct{}{}
		return name
	}
	return m.suffixed(stem, name)
}

// Reserve marks name as taken by a file the manager does not write, such
// as the main file. A recorded file holding name is renamed with the next
// free suffix and marked pending; the new name is returned.
func (m *Manager) Reserve(name string) (string, bool) {
	m.used[name] = struct{}{}
	f, clash := m.byName[name]
	if !clash {
		return "", false
	}
	renamed := m.suffixed(strings.TrimSuffix(name, m.ext), name)
	delete(m.byName, name)
	f.Name = renamed
	f.Status, f.Err = Pending, nil
	m.byName[renamed] = f
	return renamed, true
}

func (m *Manager) suffixed(stem, name string) string {
	for k := m.next[stem] + 1; ; k++ {
		candidate := stem + "_" + strconv.Itoa(k) + m.ext
		if _, taken := m.used[candidate]; taken {
			continue
		}
		m.next[stem] = k
		m.used[candidate] = struct{}{}
		m.sink.Report(diag.NamingConflict, name, "renamed to "+candidate)
		return candidate
	}
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	if s == "" || s == "." || s == ".." {
		return "file"
	}
	return s
}

// Record adds a file for a label under a name obtained from AllocateName.
func (m *Manager) Record(l *xcaf.Label, name string, g *stepmodel.Graph, transferred bool) *File {
	f := &File{Name: name, Label: l, Graph: g, Transferred: transferred}
	m.used[name] = struct{}{}
	m.files = append(m.files, f)
	m.byName[name] = f
	if l != nil {
		m.byLabel[l] = f
	}
	return f
}

// SetStatus records the outcome of writing a file.
func (m *Manager) SetStatus(name string, st Status, err error) {
	f, ok := m.byName[name]
	if !ok {
		return
	}
	f.Status = st
	f.Err = err
}

// Files returns the files in recording order.
func (m *Manager) Files() []*File { return append([]*File(nil), m.files...) }

// ByName returns the file with the given name.
func (m *Manager) ByName(name string) (*File, bool) {
	f, ok := m.byName[name]
	return f, ok
}

// ByLabel returns the file recorded for a label.
func (m *Manager) ByLabel(l *xcaf.Label) (*File, bool) {
	f, ok := m.byLabel[l]
	return f, ok
}

// Len returns the number of files.
func (m *Manager) Len() int { return len(m.files) }

// ResolveAbsolutePath resolves an extern file name against the directory of
// the main file.
func ResolveAbsolutePath(mainFileDir, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(mainFileDir, name)
}

// WriteFunc writes one file to path.
type WriteFunc func(ctx context.Context, f *File, path string) error

// WriteAll writes every pending file into dir with at most parallelism
// writers at once. Every file is attempted; the failures are joined.
func (m *Manager) WriteAll(ctx context.Context, dir string, parallelism int, write WriteFunc) error {
	if parallelism < 1 {
		parallelism = 1
	}
	errs := make([]error, len(m.files))
	var eg errgroup.Group
	eg.SetLimit(parallelism)
	for i, f := range m.files {
		if f.Status == Written {
			continue
		}
		eg.Go(func() error {
			path := ResolveAbsolutePath(dir, f.Name)
			if err := ctx.Err(); err != nil {
				errs[i] = fmt.Errorf("%s: %w: %w", f.Name, ErrWriteFailed, err)
				return nil
			}
			if err := write(ctx, f, path); err != nil {
				errs[i] = fmt.Errorf("%s: %w: %w", f.Name, ErrWriteFailed, err)
			}
			return nil
		})
	}
	_ = eg.Wait()

	for i, f := range m.files {
		switch {
		case errs[i] != nil:
			f.Status, f.Err = Failed, errs[i]
			m.sink.Report(diag.IOFailure, f.Name, errs[i].Error())
		case f.Status != Written:
			f.Status, f.Err = Written, nil
		}
	}
	return errors.Join(errs...)
}
