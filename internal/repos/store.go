package repos

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tablefinder/internal/domain"
)

// Backend is the storage surface the process needs: snapshot reads for
// search plus the write and probe paths used by the CLI and health check.
type Backend interface {
	domain.Store
	ListTables(ctx context.Context) ([]domain.Table, error)
	AddTable(ctx context.Context, min, max int) (domain.Table, error)
	AddBooking(ctx context.Context, tableID int64, date, time string) (domain.Booking, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open returns the backend for driver. "memory" needs no dsn.
func Open(driver, dsn string, seed bool) (Backend, error) {
	if driver == "memory" {
		s := NewMemoryStore()
		if seed {
			for _, t := range demoTables {
				if _, err := s.AddTable(context.Background(), t[0], t[1]); err != nil {
					return nil, err
				}
			}
		}
		return s, nil
	}
	db, err := OpenDB(driver, dsn, seed)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return NewSQLStore(db), nil
}

// SQLStore serves the catalog and ledger from a relational database.
type SQLStore struct {
	db     *sqlx.DB
	txOpts *sql.TxOptions
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	s := &SQLStore{db: db}
	for _, d := range dialects {
		if d.sqlDriver == db.DriverName() {
			s.txOpts = d.snapshot
		}
	}
	return s
}

// View runs fn against a single read transaction so the catalog and the
// ledger it sees belong to the same state. fn must not touch the pool.
func (s *SQLStore) View(ctx context.Context, fn func(domain.Catalog, domain.Ledger) error) error {
	tx, err := s.db.BeginTxx(ctx, s.txOpts)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewTableRepo(tx), NewBookingRepo(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) ListTables(ctx context.Context) ([]domain.Table, error) {
	return NewTableRepo(s.db).ListTables(ctx)
}

func (s *SQLStore) AddTable(ctx context.Context, min, max int) (domain.Table, error) {
	return NewTableRepo(s.db).Add(ctx, min, max)
}

func (s *SQLStore) AddBooking(ctx context.Context, tableID int64, date, time string) (domain.Booking, error) {
	return NewBookingRepo(s.db).Add(ctx, tableID, date, time)
}

func (s *SQLStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error { return s.db.Close() }
