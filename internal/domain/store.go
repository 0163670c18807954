package domain

import "context"

// Catalog lists every table. Callers filter.
type Catalog interface {
	ListTables(ctx context.Context) ([]Table, error)
}

// Ledger lists the bookings held for one exact slot.
type Ledger interface {
	ListBookings(ctx context.Context, date, time string) ([]BookingRef, error)
}

// Store hands out a Catalog and a Ledger that share one consistent view for
// the duration of fn.
type Store interface {
	View(ctx context.Context, fn func(Catalog, Ledger) error) error
}
