package state

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := NewSQLiteStore(nil)
	store.OpenDB(db)
	return store, mock
}

func TestSQLiteStore_FailurePaths(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		run       func(s *SQLiteStore) error
		errMsg    string
	}{
		{
			name: "begin insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO exports").WillReturnError(assert.AnError)
			},
			run: func(s *SQLiteStore) error {
				return s.BeginExport(context.Background(), &Export{Document: "d.yaml"})
			},
			errMsg: "failed to create export",
		},
		{
			name: "complete update fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE exports").WillReturnError(assert.AnError)
			},
			run: func(s *SQLiteStore) error {
				return s.CompleteExport(context.Background(), "id", Outcome{Status: ExportCompleted})
			},
			errMsg: "failed to complete export",
		},
		{
			name: "rows affected fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE exports").WillReturnResult(sqlmock.NewErrorResult(assert.AnError))
			},
			run: func(s *SQLiteStore) error {
				return s.CompleteExport(context.Background(), "id", Outcome{Status: ExportCompleted})
			},
			errMsg: "failed to complete export",
		},
		{
			name: "begin transaction fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(assert.AnError)
			},
			run: func(s *SQLiteStore) error {
				return s.RecordExternFiles(context.Background(), "id", nil)
			},
			errMsg: "failed to begin transaction",
		},
		{
			name: "insert rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM extern_files").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("INSERT INTO extern_files").WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			run: func(s *SQLiteStore) error {
				return s.RecordExternFiles(context.Background(), "id", []ExternFile{{Name: "A.stp", Status: "written"}})
			},
			errMsg: "failed to record extern file A.stp",
		},
		{
			name: "commit fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM extern_files").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit().WillReturnError(assert.AnError)
			},
			run: func(s *SQLiteStore) error {
				return s.RecordExternFiles(context.Background(), "id", nil)
			},
			errMsg: "failed to commit extern files",
		},
		{
			name: "list query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM exports").WillReturnError(assert.AnError)
			},
			run: func(s *SQLiteStore) error {
				_, err := s.ListExports(context.Background(), 5)
				return err
			},
			errMsg: "failed to list exports",
		},
		{
			name: "list scan fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM exports").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("only-one-column"))
			},
			run: func(s *SQLiteStore) error {
				_, err := s.ListExports(context.Background(), 5)
				return err
			},
			errMsg: "failed to scan export",
		},
		{
			name: "get query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM exports WHERE id").WillReturnError(assert.AnError)
			},
			run: func(s *SQLiteStore) error {
				_, err := s.GetExport(context.Background(), "id")
				return err
			},
			errMsg: "failed to get export",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := mockStore(t)
			tt.setupMock(mock)

			err := tt.run(store)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
