package sql

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/syssam/fixture/dialect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	drv := NewStatsDriver(OpenDB(dialect.Postgres, db),
		WithSlowThreshold(0),
		WithSlowQueryLog(zerolog.New(&buf)),
	)

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("DELETE FROM role").WillReturnError(errors.New("boom"))

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT 1", []any{}, rows))
	require.NoError(t, rows.Close())
	require.Error(t, drv.Exec(context.Background(), "DELETE FROM role", []any{}, nil))

	s := drv.QueryStats().Stats()
	assert.Equal(t, int64(1), s.TotalQueries)
	assert.Equal(t, int64(1), s.TotalExecs)
	assert.Equal(t, int64(2), s.Statements())
	assert.Equal(t, int64(1), s.Errors)
	assert.Equal(t, int64(2), s.SlowQueries)
	assert.Contains(t, buf.String(), "slow query detected")
	assert.Contains(t, s.String(), "queries=1 execs=1")

	drv.QueryStats().Reset()
	assert.Zero(t, drv.QueryStats().Stats().Statements())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsDriverTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := NewStatsDriver(OpenDB(dialect.SQLite, db))
	drv.SetSlowThreshold(time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO role").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Exec(context.Background(), "INSERT INTO role DEFAULT VALUES", []any{}, nil))
	require.NoError(t, tx.Commit())

	s := drv.QueryStats().Stats()
	assert.Equal(t, int64(1), s.TotalExecs)
	assert.Zero(t, s.SlowQueries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebugDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	drv := NewDebugDriver(OpenDB(dialect.MySQL, db), zerolog.New(&buf).Level(zerolog.DebugLevel))

	mock.ExpectExec("INSERT INTO role").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectBegin()
	mock.ExpectRollback()

	require.NoError(t, drv.Exec(context.Background(), "INSERT INTO role () VALUES ()", []any{}, nil))
	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	out := buf.String()
	assert.Contains(t, out, "INSERT INTO role () VALUES ()")
	assert.Contains(t, out, "begin transaction")
	assert.Contains(t, out, "rollback transaction")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsDriverSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := NewStatsDriver(OpenDB(dialect.SQLite, db))
	mock.ExpectExec("PRAGMA foreign_keys = OFF").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "role"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("PRAGMA foreign_keys = ON").WillReturnResult(sqlmock.NewResult(0, 0))

	// Sessions taken through a Store are counted as well.
	sess, err := OpenStore(drv).Session(context.Background())
	require.NoError(t, err)
	require.IsType(t, &StatsSession{}, sess)
	for _, query := range []string{"PRAGMA foreign_keys = OFF", `DELETE FROM "role"`, "PRAGMA foreign_keys = ON"} {
		require.NoError(t, sess.Exec(context.Background(), query, []any{}, nil))
	}
	require.NoError(t, sess.Close())

	assert.Equal(t, int64(3), drv.QueryStats().Stats().TotalExecs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebugDriverSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	drv := NewDebugDriver(OpenDB(dialect.MySQL, db), zerolog.New(&buf).Level(zerolog.DebugLevel))
	mock.ExpectExec("SET FOREIGN_KEY_CHECKS = 0").WillReturnResult(sqlmock.NewResult(0, 0))

	sess, err := OpenStore(drv).Session(context.Background())
	require.NoError(t, err)
	require.IsType(t, &DebugSession{}, sess)
	require.NoError(t, sess.Exec(context.Background(), "SET FOREIGN_KEY_CHECKS = 0", []any{}, nil))
	require.NoError(t, sess.Close())

	out := buf.String()
	assert.Contains(t, out, "acquire session")
	assert.Contains(t, out, "SET FOREIGN_KEY_CHECKS = 0")
	assert.Contains(t, out, "release session")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWrappedDrivers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	stats := NewStatsDriver(NewDebugDriver(OpenDB(dialect.Postgres, db), zerolog.New(&buf).Level(zerolog.DebugLevel)))
	assert.Equal(t, dialect.Postgres, stats.Dialect())

	mock.ExpectExec(`TRUNCATE "role" CASCADE`).WillReturnResult(sqlmock.NewResult(0, 0))
	sess, err := stats.Session(context.Background())
	require.NoError(t, err)
	require.NoError(t, sess.Exec(context.Background(), `TRUNCATE "role" CASCADE`, []any{}, nil))
	require.NoError(t, sess.Close())

	assert.Equal(t, int64(1), stats.QueryStats().Stats().TotalExecs)
	assert.Contains(t, buf.String(), `TRUNCATE \"role\" CASCADE`)
	require.NoError(t, mock.ExpectationsWereMet())
}
