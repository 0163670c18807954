package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tablefinder/internal/domain"
	"tablefinder/internal/validate"
)

type BookingRepo struct{ q sqlx.ExtContext }

func NewBookingRepo(q sqlx.ExtContext) *BookingRepo { return &BookingRepo{q: q} }

// ListBookings returns the bookings held for the exact slot. date and time
// must already be in canonical form.
func (r *BookingRepo) ListBookings(ctx context.Context, date, time string) ([]domain.BookingRef, error) {
	out := []domain.BookingRef{}
	err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(`
  SELECT table_id
  FROM bookings
  WHERE booking_date = ? AND booking_time = ?
`), date, time)
	return out, err
}

// Add records a booking. Date and time are normalized first so every row
// in the ledger shares the representation the search compares against.
func (r *BookingRepo) Add(ctx context.Context, tableID int64, date, time string) (domain.Booking, error) {
	b, err := newBooking(tableID, date, time)
	if err != nil {
		return domain.Booking{}, err
	}
	_, err = r.q.ExecContext(ctx, r.q.Rebind(`
  INSERT INTO bookings(id, table_id, booking_date, booking_time)
  VALUES (?, ?, ?, ?)
`), b.ID, b.TableID, b.Date, b.Time)
	if err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

func newBooking(tableID int64, date, time string) (domain.Booking, error) {
	if tableID <= 0 {
		return domain.Booking{}, domain.ValidationError{Field: "table_id", Msg: "must be positive"}
	}
	d, ok := validate.Date(date)
	if !ok {
		return domain.Booking{}, domain.ValidationError{Field: "date", Msg: "want YYYY-MM-DD"}
	}
	t, ok := validate.SlotTime(time, 0)
	if !ok {
		return domain.Booking{}, domain.ValidationError{Field: "time", Msg: "want HH:MM or HH:MM:SS"}
	}
	return domain.Booking{ID: uuid.NewString(), TableID: tableID, Date: d, Time: t}, nil
}
