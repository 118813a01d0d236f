package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

var errNotOpened = errors.New("database not opened")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	now    func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store. A nil logger discards output.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger, now: time.Now}
}

// Open opens the database at path and migrates it.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// an in-memory database lives in a single connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	s.db = db
	s.path = path
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		s.db = nil
		return err
	}
	s.logger.Debug("opened export ledger", slog.String("path", path))
	return nil
}

// OpenDB uses an already opened database. It does not migrate.
func (s *SQLiteStore) OpenDB(db *sql.DB) {
	s.db = db
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func generateID() string {
	return uuid.New().String()
}

// BeginExport inserts e as a running export, filling ID and StartedAt.
func (s *SQLiteStore) BeginExport(ctx context.Context, e *Export) error {
	if s.db == nil {
		return errNotOpened
	}
	e.ID = generateID()
	e.Status = ExportRunning
	e.StartedAt = s.now().UTC()

	s.logger.Debug("beginning export", slog.String("id", e.ID), slog.String("document", e.Document))
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (id, document, output, schema_name, mode, status, started_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Document, e.Output, e.Schema, e.Mode, string(e.Status), e.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}
	return nil
}

// CompleteExport records the outcome of an export.
func (s *SQLiteStore) CompleteExport(ctx context.Context, id string, o Outcome) error {
	if s.db == nil {
		return errNotOpened
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE exports SET status = ?, records = ?, diagnostics = ?, completed_at = ?, error = ? WHERE id = ?`,
		string(o.Status), o.Records, o.Diagnostics, s.now().UTC(), nullString(o.Error), id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete export: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to complete export: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// RecordExternFiles replaces the extern file table of an export.
func (s *SQLiteStore) RecordExternFiles(ctx context.Context, id string, files []ExternFile) (err error) {
	if s.db == nil {
		return errNotOpened
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM extern_files WHERE export_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear extern files: %w", err)
	}
	for _, f := range files {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO extern_files (export_id, name, label, status, error) VALUES (?, ?, ?, ?, ?)`,
			id, f.Name, f.Label, f.Status, nullString(f.Error),
		)
		if err != nil {
			return fmt.Errorf("failed to record extern file %s: %w", f.Name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit extern files: %w", err)
	}
	return nil
}

const exportColumns = `id, document, output, schema_name, mode, status, records, diagnostics, started_at, completed_at, error`

type scanner interface {
	Scan(dest ...any) error
}

func scanExport(row scanner) (*Export, error) {
	e := &Export{}
	var status string
	var completedAt sql.NullTime
	var errMsg sql.NullString
	err := row.Scan(&e.ID, &e.Document, &e.Output, &e.Schema, &e.Mode, &status,
		&e.Records, &e.Diagnostics, &e.StartedAt, &completedAt, &errMsg)
	if err != nil {
		return nil, err
	}
	e.Status = ExportStatus(status)
	if completedAt.Valid {
		t := completedAt.Time
		e.CompletedAt = &t
	}
	e.Error = errMsg.String
	return e, nil
}

// GetExport returns an export with its extern files.
func (s *SQLiteStore) GetExport(ctx context.Context, id string) (*Export, error) {
	if s.db == nil {
		return nil, errNotOpened
	}
	e, err := scanExport(s.db.QueryRowContext(ctx, `SELECT `+exportColumns+` FROM exports WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, label, status, error FROM extern_files WHERE export_id = ? ORDER BY name`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get extern files: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var f ExternFile
		var errMsg sql.NullString
		if err := rows.Scan(&f.Name, &f.Label, &f.Status, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan extern file: %w", err)
		}
		f.Error = errMsg.String
		e.Files = append(e.Files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get extern files: %w", err)
	}
	return e, nil
}

// ListExports returns the most recent exports, newest first.
func (s *SQLiteStore) ListExports(ctx context.Context, limit int) ([]*Export, error) {
	if s.db == nil {
		return nil, errNotOpened
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+exportColumns+` FROM exports ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Export
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	return out, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
