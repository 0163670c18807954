package services

import (
	"context"

	"tablefinder/internal/domain"
	"tablefinder/internal/validate"
)

type AvailabilityService struct {
	Store domain.Store
	// SlotMinutes, when > 0, restricts requested times to a minute grid.
	SlotMinutes int
}

func NewAvailabilityService(store domain.Store, slotMinutes int) *AvailabilityService {
	return &AvailabilityService{Store: store, SlotMinutes: slotMinutes}
}

// Normalize validates q and rewrites date and time into the representation
// the ledger stores.
func (s *AvailabilityService) Normalize(q domain.AvailabilityQuery) (domain.AvailabilityQuery, error) {
	if q.Date == "" {
		return q, domain.ValidationError{Field: "date", Msg: "is required"}
	}
	d, ok := validate.Date(q.Date)
	if !ok {
		return q, domain.ValidationError{Field: "date", Msg: "must be a calendar date (YYYY-MM-DD)"}
	}
	if q.Time == "" {
		return q, domain.ValidationError{Field: "time", Msg: "is required"}
	}
	t, ok := validate.SlotTime(q.Time, s.SlotMinutes)
	if !ok {
		if s.SlotMinutes > 0 {
			return q, domain.ValidationError{Field: "time", Msg: "must be a time of day on the booking grid"}
		}
		return q, domain.ValidationError{Field: "time", Msg: "must be a time of day (HH:MM or HH:MM:SS)"}
	}
	if q.Guests < 1 {
		return q, domain.ValidationError{Field: "guests", Msg: "must be a whole number of at least 1"}
	}
	return domain.AvailabilityQuery{Date: d, Time: t, Guests: q.Guests}, nil
}

// Search returns the tables that can seat q.Guests and have no booking for
// the exact (date, time) slot, in catalog order. Both reads come from one
// store snapshot. The result is never nil on success.
func (s *AvailabilityService) Search(ctx context.Context, q domain.AvailabilityQuery) ([]domain.Table, error) {
	q, err := s.Normalize(q)
	if err != nil {
		return nil, err
	}

	var out []domain.Table
	err = s.Store.View(ctx, func(cat domain.Catalog, led domain.Ledger) error {
		tables, err := cat.ListTables(ctx)
		if err != nil {
			return domain.StorageUnavailable{Op: "list tables", Err: err}
		}

		eligible := make([]domain.Table, 0, len(tables))
		for _, t := range tables {
			if t.Fits(q.Guests) {
				eligible = append(eligible, t)
			}
		}
		if len(eligible) == 0 {
			out = eligible
			return nil
		}

		refs, err := led.ListBookings(ctx, q.Date, q.Time)
		if err != nil {
			return domain.StorageUnavailable{Op: "list bookings", Err: err}
		}
		booked := make(map[int64]struct{}, len(refs))
		for _, r := range refs {
			booked[r.TableID] = struct{}{}
		}

		out = eligible[:0]
		for _, t := range eligible {
			if _, taken := booked[t.ID]; !taken {
				out = append(out, t)
			}
		}
		return nil
	})
	if err != nil {
		if !domain.IsStorageUnavailable(err) {
			err = domain.StorageUnavailable{Op: "snapshot", Err: err}
		}
		return nil, err
	}
	return out, nil
}
