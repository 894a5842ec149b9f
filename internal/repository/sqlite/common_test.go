package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	apperrors "task-cli/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockResult implements sql.Result for testing
type MockResult struct {
	lastInsertID int64
	rowsAffected int64
	insertErr    error
	rowsErr      error
}

func (mr *MockResult) LastInsertId() (int64, error) {
	return mr.lastInsertID, mr.insertErr
}

func (mr *MockResult) RowsAffected() (int64, error) {
	return mr.rowsAffected, mr.rowsErr
}

func TestHandleDatabaseError(t *testing.T) {
	result := HandleDatabaseError("test operation", errors.New("database connection failed"))

	assert.ErrorIs(t, result, apperrors.ErrDatabase)
	assert.Contains(t, result.Error(), "test operation")
	assert.Contains(t, result.Error(), "database connection failed")
}

func TestHandleNoRowsError(t *testing.T) {
	err := HandleNoRowsError(sql.ErrNoRows, "task", "abc")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "task not found: abc")

	other := errors.New("boom")
	assert.Equal(t, other, HandleNoRowsError(other, "task", "abc"))
}

func TestValidateRowsAffected(t *testing.T) {
	tests := []struct {
		name           string
		result         sql.Result
		expectError    bool
		expectNotFound bool
	}{
		{"Successful update", &MockResult{rowsAffected: 1}, false, false},
		{"No rows affected", &MockResult{rowsAffected: 0}, true, true},
		{"Error getting rows affected", &MockResult{rowsErr: errors.New("database error")}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateRowsAffected(tt.result, "task", "123")

			if !tt.expectError {
				assert.NoError(t, result)
				return
			}
			if tt.expectNotFound {
				assert.ErrorIs(t, result, apperrors.ErrNotFound)
			} else {
				assert.ErrorIs(t, result, apperrors.ErrDatabase)
				assert.Contains(t, result.Error(), "database error")
			}
		})
	}
}

func TestExecuteHelpers_AgainstDatabase(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := ExecuteWithLastInsertID(ctx, repo.db, `INSERT INTO tags (name) VALUES (?)`, "work")
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	n, err := ExecuteCountingRows(ctx, repo.db, `UPDATE tags SET name = ? WHERE name = ?`, "office", "missing")
	require.NoError(t, err)
	assert.Zero(t, n)

	err = ExecuteWithRowsAffected(ctx, repo.db, `UPDATE tags SET name = ? WHERE name = ?`, "tag", "missing", "office", "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = ExecuteCountingRows(ctx, repo.db, `UPDATE no_such_table SET x = 1`)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)

	tag, err := QuerySingle(ctx, repo.db, `SELECT id, name FROM tags WHERE name = ?`, ScanTag, "tag", "work", "work")
	require.NoError(t, err)
	assert.Equal(t, id, tag.ID)

	_, err = QuerySingle(ctx, repo.db, `SELECT id, name FROM tags WHERE name = ?`, ScanTag, "tag", "nope", "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
