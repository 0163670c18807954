package repos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablefinder/internal/domain"
	"tablefinder/internal/repos"
)

func TestMemoryStoreOrdersCatalogByID(t *testing.T) {
	s := repos.NewMemoryStore(
		domain.Table{ID: 7, GuestsMin: 1, GuestsMax: 2},
		domain.Table{ID: 3, GuestsMin: 2, GuestsMax: 4},
	)
	added, err := s.AddTable(context.Background(), 4, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(8), added.ID)

	tables, err := s.ListTables(context.Background())
	require.NoError(t, err)
	ids := []int64{}
	for _, tb := range tables {
		ids = append(ids, tb.ID)
	}
	assert.Equal(t, []int64{3, 7, 8}, ids)
}

func TestMemoryStoreBookings(t *testing.T) {
	ctx := context.Background()
	s := repos.NewMemoryStore(domain.Table{ID: 1, GuestsMin: 2, GuestsMax: 4})

	b, err := s.AddBooking(ctx, 1, "2025-07-10", "18:30")
	require.NoError(t, err)
	assert.Equal(t, "18:30:00", b.Time)

	_, err = s.AddBooking(ctx, 1, "2025-07-10", "18:30:00")
	assert.Error(t, err, "duplicate slot")
	_, err = s.AddBooking(ctx, 42, "2025-07-10", "18:30")
	assert.Error(t, err, "unknown table")
	_, err = s.AddBooking(ctx, 1, "2025-07-10", "25:00")
	assert.True(t, domain.IsValidation(err))

	err = s.View(ctx, func(_ domain.Catalog, l domain.Ledger) error {
		refs, err := l.ListBookings(ctx, "2025-07-10", "18:30:00")
		assert.Equal(t, []domain.BookingRef{{TableID: 1}}, refs)
		return err
	})
	require.NoError(t, err)
}

func TestMemoryStoreViewHonoursCancelledContext(t *testing.T) {
	s := repos.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.View(ctx, func(domain.Catalog, domain.Ledger) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenMemorySeeds(t *testing.T) {
	b, err := repos.Open("memory", "", true)
	require.NoError(t, err)
	defer b.Close()
	tables, err := b.ListTables(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, tables)
	assert.NoError(t, b.Ping(context.Background()))
}
