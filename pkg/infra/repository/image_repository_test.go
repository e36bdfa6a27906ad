package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/NeuralTrust/TrustImage/pkg/domain/image"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{name: "lock not available", err: &pgconn.PgError{Code: "55P03", Message: "canceling statement due to lock timeout"}, transient: true},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, transient: true},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, transient: true},
		{name: "wrapped lock error", err: fmt.Errorf("delete: %w", &pgconn.PgError{Code: "55P03"}), transient: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}},
		{name: "plain error", err: errors.New("connection refused")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			assert.Equal(t, tt.transient, errors.Is(got, image.ErrTransientLock))
			if !tt.transient {
				assert.Same(t, tt.err, got)
			}
		})
	}
	assert.NoError(t, classifyError(nil))
}

func TestLockTimeoutStatement(t *testing.T) {
	assert.Equal(t, "SET LOCAL lock_timeout = '2000ms'", lockTimeoutStatement(2*time.Second))
	assert.Equal(t, "SET LOCAL lock_timeout = '250ms'", lockTimeoutStatement(250*time.Millisecond))
}

// recordingConn is a database/sql connection that records every statement and
// answers deletes with a fixed row count.
type recordingConn struct {
	mu         sync.Mutex
	statements []string
	args       [][]driver.NamedValue
	rows       int64
	failDelete error
	commits    int
	rollbacks  int
}

func (c *recordingConn) Connect(context.Context) (driver.Conn, error) { return c, nil }
func (c *recordingConn) Driver() driver.Driver                       { return c }
func (c *recordingConn) Open(string) (driver.Conn, error)            { return c, nil }
func (c *recordingConn) Close() error                                { return nil }
func (c *recordingConn) Begin() (driver.Tx, error)                   { return c, nil }

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements not supported")
}

func (c *recordingConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return c, nil
}

func (c *recordingConn) Commit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commits++
	return nil
}

func (c *recordingConn) Rollback() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rollbacks++
	return nil
}

func (c *recordingConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statements = append(c.statements, query)
	c.args = append(c.args, args)
	if strings.HasPrefix(query, "DELETE") {
		if c.failDelete != nil {
			return nil, c.failDelete
		}
		return driver.RowsAffected(c.rows), nil
	}
	return driver.RowsAffected(0), nil
}

func newRecordingRepository(t *testing.T, conn *recordingConn) image.Repository {
	t.Helper()
	sqlDB := sql.OpenDB(conn)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	return NewImageRepository(db, 250*time.Millisecond)
}

func TestImageRepository_DeleteByFingerprint(t *testing.T) {
	t.Run("returns rows removed", func(t *testing.T) {
		conn := &recordingConn{rows: 3}
		repo := newRecordingRepository(t, conn)

		removed, err := repo.DeleteByFingerprint(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(3), removed)

		require.Len(t, conn.statements, 2)
		assert.Equal(t, "SET LOCAL lock_timeout = '250ms'", conn.statements[0])
		assert.Contains(t, conn.statements[1], `DELETE FROM "history"`)
		assert.Contains(t, conn.statements[1], "hash = $1")
		require.Len(t, conn.args[1], 1)
		assert.Equal(t, "abc123", conn.args[1][0].Value)
		assert.Equal(t, 1, conn.commits)
		assert.Zero(t, conn.rollbacks)
	})

	t.Run("zero rows is success", func(t *testing.T) {
		conn := &recordingConn{}
		repo := newRecordingRepository(t, conn)

		removed, err := repo.DeleteByFingerprint(context.Background(), "already-gone")
		require.NoError(t, err)
		assert.Zero(t, removed)
		assert.Equal(t, 1, conn.commits)
		assert.Zero(t, conn.rollbacks)
	})

	t.Run("lock timeout is transient and rolls back", func(t *testing.T) {
		conn := &recordingConn{failDelete: &pgconn.PgError{Code: "55P03", Message: "canceling statement due to lock timeout"}}
		repo := newRecordingRepository(t, conn)

		removed, err := repo.DeleteByFingerprint(context.Background(), "abc123")
		require.Error(t, err)
		assert.ErrorIs(t, err, image.ErrTransientLock)
		assert.Zero(t, removed)
		assert.Zero(t, conn.commits)
		assert.Equal(t, 1, conn.rollbacks)
	})
}
