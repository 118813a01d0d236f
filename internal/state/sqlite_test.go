package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/leapstep/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// clock returns a store clock advancing one minute per call.
func clock() func() time.Time {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(":memory:"))

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	for _, table := range []string{"exports", "extern_files"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		require.NoError(t, err, table)
		_ = rows.Close()
	}
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(path))
	e := &Export{Document: "bolt.yaml", Output: "bolt.stp", Schema: "ap214", Mode: "single"}
	require.NoError(t, store.BeginExport(context.Background(), e))
	require.NoError(t, store.Close())

	reopened := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, reopened.Open(path), "migrating twice is a no-op")
	defer func() { _ = reopened.Close() }()
	got, err := reopened.GetExport(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, "bolt.yaml", got.Document)
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)
	ctx := context.Background()

	assert.ErrorIs(t, store.BeginExport(ctx, &Export{}), errNotOpened)
	assert.ErrorIs(t, store.CompleteExport(ctx, "x", Outcome{}), errNotOpened)
	assert.ErrorIs(t, store.RecordExternFiles(ctx, "x", nil), errNotOpened)
	_, err := store.GetExport(ctx, "x")
	assert.ErrorIs(t, err, errNotOpened)
	_, err = store.ListExports(ctx, 1)
	assert.ErrorIs(t, err, errNotOpened)
	assert.ErrorIs(t, store.Migrate(), errNotOpened)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_ExportLifecycle(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		files   []ExternFile
	}{
		{
			name:    "completed single file",
			outcome: Outcome{Status: ExportCompleted, Records: 120},
		},
		{
			name:    "partial multi file",
			outcome: Outcome{Status: ExportPartial, Records: 40, Diagnostics: 1, Error: "Part_1.stp: extern file write failed"},
			files: []ExternFile{
				{Name: "Part.stp", Label: "0:1:1:1", Status: "written"},
				{Name: "Part_1.stp", Label: "0:1:1:2", Status: "failed", Error: "permission denied"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t)
			store.now = clock()
			ctx := context.Background()

			e := &Export{Document: "doc.yaml", Output: "out.stp", Schema: "ap242", Mode: "multi-file"}
			require.NoError(t, store.BeginExport(ctx, e))
			assert.NotEmpty(t, e.ID)
			assert.Equal(t, ExportRunning, e.Status)

			running, err := store.GetExport(ctx, e.ID)
			require.NoError(t, err)
			assert.Equal(t, ExportRunning, running.Status)
			assert.Nil(t, running.CompletedAt)

			require.NoError(t, store.RecordExternFiles(ctx, e.ID, tt.files))
			require.NoError(t, store.CompleteExport(ctx, e.ID, tt.outcome))

			got, err := store.GetExport(ctx, e.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome.Status, got.Status)
			assert.Equal(t, tt.outcome.Records, got.Records)
			assert.Equal(t, tt.outcome.Diagnostics, got.Diagnostics)
			assert.Equal(t, tt.outcome.Error, got.Error)
			assert.Equal(t, "ap242", got.Schema)
			require.NotNil(t, got.CompletedAt)
			assert.True(t, got.CompletedAt.After(got.StartedAt))
			assert.Equal(t, tt.files, got.Files)
		})
	}
}

func TestSQLiteStore_RecordExternFilesReplaces(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	e := &Export{Document: "doc.yaml", Output: "out.stp", Schema: "ap214", Mode: "multi-file"}
	require.NoError(t, store.BeginExport(ctx, e))

	require.NoError(t, store.RecordExternFiles(ctx, e.ID, []ExternFile{{Name: "A.stp", Label: "0:1:1:1", Status: "pending"}}))
	require.NoError(t, store.RecordExternFiles(ctx, e.ID, []ExternFile{{Name: "A.stp", Label: "0:1:1:1", Status: "written"}}))

	got, err := store.GetExport(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, got.Files, 1)
	assert.Equal(t, "written", got.Files[0].Status)

	err = store.RecordExternFiles(ctx, "unknown", []ExternFile{{Name: "B.stp", Status: "written"}})
	assert.Error(t, err, "extern files need an export")
}

func TestSQLiteStore_NotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.GetExport(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	err = store.CompleteExport(ctx, "missing", Outcome{Status: ExportFailed})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_ListExports(t *testing.T) {
	store := setupTestStore(t)
	store.now = clock()
	ctx := context.Background()

	var ids []string
	for _, doc := range []string{"a.yaml", "b.yaml", "c.yaml"} {
		e := &Export{Document: doc, Output: "out.stp", Schema: "ap214", Mode: "single"}
		require.NoError(t, store.BeginExport(ctx, e))
		ids = append(ids, e.ID)
	}

	all, err := store.ListExports(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c.yaml", all[0].Document, "newest first")
	assert.Equal(t, ids[0], all[2].ID)

	two, err := store.ListExports(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}
