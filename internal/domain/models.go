package domain

// Table is a physical table in the restaurant catalog. The capacity range is
// inclusive on both ends.
type Table struct {
	ID        int64 `db:"id" json:"id"`
	GuestsMin int   `db:"guests_number_min" json:"guests_number_min"`
	GuestsMax int   `db:"guests_number_max" json:"guests_number_max"`
}

// Fits reports whether a party of n guests can be seated at t.
func (t Table) Fits(n int) bool {
	return t.GuestsMin <= n && n <= t.GuestsMax
}

// Booking is one ledger entry. Date is YYYY-MM-DD, Time is HH:MM:SS.
type Booking struct {
	ID      string `db:"id" json:"id"`
	TableID int64  `db:"table_id" json:"table_id"`
	Date    string `db:"booking_date" json:"booking_date"`
	Time    string `db:"booking_time" json:"booking_time"`
}

// BookingRef is the part of a booking the availability search needs.
type BookingRef struct {
	TableID int64 `db:"table_id"`
}

// AvailabilityQuery is one search request. It is never persisted.
type AvailabilityQuery struct {
	Date   string
	Time   string
	Guests int
}
