package repos_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablefinder/internal/domain"
	"tablefinder/internal/repos"
)

func TestSnapshotIsReadOnlyRepeatableReadOnServers(t *testing.T) {
	for _, driver := range []string{"mysql", "pgx"} {
		db, _, err := sqlmock.New()
		require.NoError(t, err)

		opts := repos.SnapshotOptions(repos.NewSQLStore(sqlx.NewDb(db, driver)))
		if assert.NotNil(t, opts, driver) {
			assert.True(t, opts.ReadOnly, driver)
			assert.Equal(t, sql.LevelRepeatableRead, opts.Isolation, driver)
		}
		_ = db.Close()
	}

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	assert.Nil(t, repos.SnapshotOptions(repos.NewSQLStore(sqlx.NewDb(db, "sqlite"))),
		"sqlite keeps the driver default transaction")
}

func TestMySQLAddTableUsesLastInsertID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO tables\(guests_number_min, guests_number_max\) VALUES \(\?, \?\)$`).
		WithArgs(2, 4).
		WillReturnResult(sqlmock.NewResult(42, 1))

	s := repos.NewSQLStore(sqlx.NewDb(db, "mysql"))
	tb, err := s.AddTable(context.Background(), 2, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.Table{ID: 42, GuestsMin: 2, GuestsMax: 4}, tb)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAddTableUsesReturning(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`VALUES \(\$1, \$2\) RETURNING id`).
		WithArgs(5, 8).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	s := repos.NewSQLStore(sqlx.NewDb(db, "pgx"))
	tb, err := s.AddTable(context.Background(), 5, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(7), tb.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLViewRunsInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM tables").
		WillReturnRows(sqlmock.NewRows([]string{"id", "guests_number_min", "guests_number_max"}).AddRow(1, 2, 4))
	mock.ExpectQuery(`WHERE booking_date = \? AND booking_time = \?`).
		WithArgs("2024-06-01", "19:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"table_id"}))
	mock.ExpectCommit()

	s := repos.NewSQLStore(sqlx.NewDb(db, "mysql"))
	ctx := context.Background()
	err = s.View(ctx, func(c domain.Catalog, l domain.Ledger) error {
		if _, err := c.ListTables(ctx); err != nil {
			return err
		}
		refs, err := l.ListBookings(ctx, "2024-06-01", "19:00:00")
		assert.Empty(t, refs)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
