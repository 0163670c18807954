package repos_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablefinder/internal/domain"
	"tablefinder/internal/repos"
)

func sqliteStore(t *testing.T, seed bool) *repos.SQLStore {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:", seed)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repos.NewSQLStore(db)
}

func TestOpenDBSeedsEmptyCatalogOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.db")
	db, err := repos.OpenDB("sqlite", path, true)
	require.NoError(t, err)
	defer db.Close()

	s := repos.NewSQLStore(db)
	tables, err := s.ListTables(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, tables)
	for i := 1; i < len(tables); i++ {
		assert.Less(t, tables[i-1].ID, tables[i].ID)
	}

	// reopening the same database must not seed again
	db2, err := repos.OpenDB("sqlite", path, true)
	require.NoError(t, err)
	defer db2.Close()
	again, err := repos.NewSQLStore(db2).ListTables(context.Background())
	require.NoError(t, err)
	assert.Len(t, again, len(tables))
}

func TestOpenDBRejectsUnknownDriver(t *testing.T) {
	_, err := repos.OpenDB("oracle", "x", false)
	assert.Error(t, err)
}

func TestSQLStoreAddAndView(t *testing.T) {
	ctx := context.Background()
	s := sqliteStore(t, false)

	t1, err := s.AddTable(ctx, 2, 4)
	require.NoError(t, err)
	t2, err := s.AddTable(ctx, 4, 6)
	require.NoError(t, err)

	b, err := s.AddBooking(ctx, t1.ID, "2025-07-10", "18:30")
	require.NoError(t, err)
	assert.Equal(t, "18:30:00", b.Time)
	assert.NotEmpty(t, b.ID)

	err = s.View(ctx, func(c domain.Catalog, l domain.Ledger) error {
		tables, err := c.ListTables(ctx)
		if err != nil {
			return err
		}
		assert.Equal(t, []domain.Table{t1, t2}, tables)

		refs, err := l.ListBookings(ctx, "2025-07-10", "18:30:00")
		if err != nil {
			return err
		}
		assert.Equal(t, []domain.BookingRef{{TableID: t1.ID}}, refs)

		other, err := l.ListBookings(ctx, "2025-07-10", "19:00:00")
		assert.Empty(t, other)
		assert.NotNil(t, other)
		return err
	})
	require.NoError(t, err)
}

func TestSQLStoreRejectsDuplicateAndBadBookings(t *testing.T) {
	ctx := context.Background()
	s := sqliteStore(t, false)
	tb, err := s.AddTable(ctx, 1, 2)
	require.NoError(t, err)

	_, err = s.AddBooking(ctx, tb.ID, "2025-07-10", "18:30:00")
	require.NoError(t, err)
	_, err = s.AddBooking(ctx, tb.ID, "2025-07-10", "18:30")
	assert.Error(t, err, "same slot after normalization")

	_, err = s.AddBooking(ctx, tb.ID, "10/07/2025", "18:30")
	assert.True(t, domain.IsValidation(err))

	_, err = s.AddTable(ctx, 5, 3)
	assert.True(t, domain.IsValidation(err))
}

func TestSQLStoreViewPropagatesQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, guests_number_min").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	s := repos.NewSQLStore(sqlx.NewDb(db, "sqlmock"))
	err = s.View(context.Background(), func(c domain.Catalog, _ domain.Ledger) error {
		_, err := c.ListTables(context.Background())
		return err
	})
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreViewBeginFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	s := repos.NewSQLStore(sqlx.NewDb(db, "sqlmock"))
	called := false
	err = s.View(context.Background(), func(domain.Catalog, domain.Ledger) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreViewReadsInsideOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM tables").
		WillReturnRows(sqlmock.NewRows([]string{"id", "guests_number_min", "guests_number_max"}).
			AddRow(1, 2, 4).AddRow(2, 3, 6))
	mock.ExpectQuery("FROM bookings").
		WithArgs("2025-07-10", "18:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"table_id"}).AddRow(2))
	mock.ExpectCommit()

	s := repos.NewSQLStore(sqlx.NewDb(db, "sqlmock"))
	ctx := context.Background()
	err = s.View(ctx, func(c domain.Catalog, l domain.Ledger) error {
		tables, err := c.ListTables(ctx)
		if err != nil {
			return err
		}
		assert.Len(t, tables, 2)
		refs, err := l.ListBookings(ctx, "2025-07-10", "18:00:00")
		assert.Equal(t, []domain.BookingRef{{TableID: 2}}, refs)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
