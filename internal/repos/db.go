package repos

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	applog "tablefinder/internal/log"
)

type dialect struct {
	sqlDriver string
	schema    []string
	// snapshot is the transaction used by SQLStore.View.
	snapshot *sql.TxOptions
}

var dialects = map[string]dialect{
	"sqlite": {
		sqlDriver: "sqlite",
		schema: []string{
			`PRAGMA foreign_keys = ON`,
			`CREATE TABLE IF NOT EXISTS tables(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  guests_number_min INTEGER NOT NULL CHECK (guests_number_min > 0),
  guests_number_max INTEGER NOT NULL CHECK (guests_number_max >= guests_number_min),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
)`,
			`CREATE TABLE IF NOT EXISTS bookings(
  id TEXT PRIMARY KEY,
  table_id INTEGER NOT NULL REFERENCES tables(id) ON DELETE CASCADE,
  booking_date TEXT NOT NULL, -- YYYY-MM-DD
  booking_time TEXT NOT NULL, -- HH:MM:SS
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(table_id, booking_date, booking_time)
)`,
			`CREATE INDEX IF NOT EXISTS idx_bookings_slot ON bookings(booking_date, booking_time)`,
		},
	},
	"postgres": {
		sqlDriver: "pgx",
		schema: []string{
			`CREATE TABLE IF NOT EXISTS tables(
  id BIGSERIAL PRIMARY KEY,
  guests_number_min INTEGER NOT NULL CHECK (guests_number_min > 0),
  guests_number_max INTEGER NOT NULL CHECK (guests_number_max >= guests_number_min),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
			`CREATE TABLE IF NOT EXISTS bookings(
  id TEXT PRIMARY KEY,
  table_id BIGINT NOT NULL REFERENCES tables(id) ON DELETE CASCADE,
  booking_date DATE NOT NULL,
  booking_time TIME NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE(table_id, booking_date, booking_time)
)`,
			`CREATE INDEX IF NOT EXISTS idx_bookings_slot ON bookings(booking_date, booking_time)`,
		},
		snapshot: &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true},
	},
	"mysql": {
		sqlDriver: "mysql",
		schema: []string{
			`CREATE TABLE IF NOT EXISTS tables(
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  guests_number_min INT NOT NULL,
  guests_number_max INT NOT NULL,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  CHECK (guests_number_min > 0),
  CHECK (guests_number_max >= guests_number_min)
)`,
			`CREATE TABLE IF NOT EXISTS bookings(
  id VARCHAR(36) PRIMARY KEY,
  table_id BIGINT NOT NULL,
  booking_date DATE NOT NULL,
  booking_time TIME NOT NULL,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  UNIQUE KEY uq_bookings_slot_table (table_id, booking_date, booking_time),
  KEY idx_bookings_slot (booking_date, booking_time),
  FOREIGN KEY (table_id) REFERENCES tables(id) ON DELETE CASCADE
)`,
		},
		snapshot: &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true},
	},
}

// demoTables is the floor plan seeded into an empty catalog.
var demoTables = [][2]int{{1, 2}, {2, 4}, {2, 4}, {4, 6}, {5, 8}, {8, 12}}

// OpenDB connects with one of the supported drivers (sqlite, postgres,
// mysql), bootstraps the schema and optionally seeds the catalog.
func OpenDB(driver, dsn string, seed bool) (*sqlx.DB, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	db, err := sqlx.Open(d.sqlDriver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// one connection keeps :memory: databases and the foreign_keys pragma stable
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := ensureSchema(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, err
	}
	if seed {
		if err := seedIfEmpty(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sqlx.DB, d dialect) error {
	for _, stmt := range d.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}

func seedIfEmpty(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM tables`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.Info(nil, "seed.tables", map[string]any{"count": len(demoTables)})

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	q := tx.Rebind(`INSERT INTO tables(guests_number_min, guests_number_max) VALUES (?, ?)`)
	for _, t := range demoTables {
		if _, err := tx.ExecContext(ctx, q, t[0], t[1]); err != nil {
			return err
		}
	}
	return tx.Commit()
}
