package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"tablefinder/internal/domain"
	"tablefinder/internal/validate"
)

// TableRepo reads and writes the catalog. q is either the pool or a
// snapshot transaction.
type TableRepo struct{ q sqlx.ExtContext }

func NewTableRepo(q sqlx.ExtContext) *TableRepo { return &TableRepo{q: q} }

// ListTables returns the whole catalog in id order.
func (r *TableRepo) ListTables(ctx context.Context) ([]domain.Table, error) {
	out := []domain.Table{}
	err := sqlx.SelectContext(ctx, r.q, &out, `
  SELECT id, guests_number_min, guests_number_max
  FROM tables
  ORDER BY id
`)
	return out, err
}

func (r *TableRepo) Add(ctx context.Context, min, max int) (domain.Table, error) {
	if !validate.Capacity(min, max) {
		return domain.Table{}, domain.ValidationError{Field: "capacity", Msg: "need 0 < min <= max"}
	}
	t := domain.Table{GuestsMin: min, GuestsMax: max}

	if r.q.DriverName() == "mysql" {
		res, err := r.q.ExecContext(ctx,
			`INSERT INTO tables(guests_number_min, guests_number_max) VALUES (?, ?)`, min, max)
		if err != nil {
			return domain.Table{}, err
		}
		t.ID, err = res.LastInsertId()
		return t, err
	}

	err := r.q.QueryRowxContext(ctx, r.q.Rebind(
		`INSERT INTO tables(guests_number_min, guests_number_max) VALUES (?, ?) RETURNING id`), min, max).Scan(&t.ID)
	return t, err
}
