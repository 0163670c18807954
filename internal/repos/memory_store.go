package repos

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"tablefinder/internal/domain"
	"tablefinder/internal/validate"
)

// MemoryStore keeps the catalog and ledger in process. Readers inside View
// hold the read lock for the whole callback, so writers never interleave
// with a search.
type MemoryStore struct {
	mu       sync.RWMutex
	tables   []domain.Table
	bookings []domain.Booking
	nextID   int64
}

func NewMemoryStore(tables ...domain.Table) *MemoryStore {
	s := &MemoryStore{}
	for _, t := range tables {
		s.tables = append(s.tables, t)
		if t.ID > s.nextID {
			s.nextID = t.ID
		}
	}
	return s
}

func (s *MemoryStore) View(ctx context.Context, fn func(domain.Catalog, domain.Ledger) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := memView{s}
	return fn(v, v)
}

func (s *MemoryStore) ListTables(ctx context.Context) ([]domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyTables(), nil
}

func (s *MemoryStore) AddTable(_ context.Context, min, max int) (domain.Table, error) {
	if !validate.Capacity(min, max) {
		return domain.Table{}, domain.ValidationError{Field: "capacity", Msg: "need 0 < min <= max"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := domain.Table{ID: s.nextID, GuestsMin: min, GuestsMax: max}
	s.tables = append(s.tables, t)
	return t, nil
}

func (s *MemoryStore) AddBooking(_ context.Context, tableID int64, date, time string) (domain.Booking, error) {
	b, err := newBooking(tableID, date, time)
	if err != nil {
		return domain.Booking{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	known := false
	for _, t := range s.tables {
		if t.ID == tableID {
			known = true
			break
		}
	}
	if !known {
		return domain.Booking{}, fmt.Errorf("table %d does not exist", tableID)
	}
	for _, x := range s.bookings {
		if x.TableID == b.TableID && x.Date == b.Date && x.Time == b.Time {
			return domain.Booking{}, fmt.Errorf("table %d already booked at %s %s", tableID, b.Date, b.Time)
		}
	}
	s.bookings = append(s.bookings, b)
	return b, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemoryStore) Close() error { return nil }

// copyTables returns the catalog sorted by id. Callers hold mu.
func (s *MemoryStore) copyTables() []domain.Table {
	out := make([]domain.Table, len(s.tables))
	copy(out, s.tables)
	slices.SortFunc(out, func(a, b domain.Table) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// memView reads without locking; it only exists inside View.
type memView struct{ s *MemoryStore }

func (v memView) ListTables(ctx context.Context) ([]domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.s.copyTables(), nil
}

func (v memView) ListBookings(ctx context.Context, date, time string) ([]domain.BookingRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []domain.BookingRef{}
	for _, b := range v.s.bookings {
		if b.Date == date && b.Time == time {
			out = append(out, domain.BookingRef{TableID: b.TableID})
		}
	}
	return out, nil
}
