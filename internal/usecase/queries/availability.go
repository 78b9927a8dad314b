package queries

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability_mock.go -package=queriesmock

import (
	"context"
	"time"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/pricing"
	"rental-engine/internal/infra"

	"github.com/google/uuid"
)

const maxCalendarDays = 366

type AvailabilityQueries interface {
	IsRangeFree(ctx context.Context, listingID uuid.UUID, start, end time.Time) (bool, error)
	Calendar(ctx context.Context, listingID uuid.UUID, from, to time.Time) (*CalendarView, error)
}

type CalendarReadStore interface {
	Days(ctx context.Context, listingID uuid.UUID, from, to time.Time) ([]availability.Day, error)
	Reservations(ctx context.Context, listingID uuid.UUID, span availability.Span) ([]availability.Reservation, error)
}

type availabilityQueriesImpl struct {
	listings ListingReadStore
	calendar CalendarReadStore
}

func NewAvailabilityQueries(listings ListingReadStore, calendar CalendarReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{listings: listings, calendar: calendar}
}

func (q *availabilityQueriesImpl) IsRangeFree(ctx context.Context, listingID uuid.UUID, start, end time.Time) (bool, error) {
	span, err := availability.NewSpan(start, end)
	if err != nil {
		return false, pricing.ErrInvalidRange
	}
	if err := q.ensureListing(ctx, listingID); err != nil {
		return false, err
	}
	return q.listings.IsRangeFree(ctx, listingID, span)
}

// Calendar renders one entry per UTC day in [from, to). Days without an explicit entry are
// available; Booked marks days touched by a live reservation.
func (q *availabilityQueriesImpl) Calendar(ctx context.Context, listingID uuid.UUID, from, to time.Time) (*CalendarView, error) {
	from, to = availability.DayOf(from), availability.DayOf(to)
	span, err := availability.NewSpan(from, to)
	if err != nil || to.Sub(from) > maxCalendarDays*24*time.Hour {
		return nil, ErrCalendarRange
	}
	if err := q.ensureListing(ctx, listingID); err != nil {
		return nil, err
	}

	days, err := q.calendar.Days(ctx, listingID, from, to)
	if err != nil {
		return nil, err
	}
	reservations, err := q.calendar.Reservations(ctx, listingID, span)
	if err != nil {
		return nil, err
	}

	explicit := make(map[time.Time]availability.Day, len(days))
	for _, d := range days {
		explicit[availability.DayOf(d.Date)] = d
	}
	booked := make(map[time.Time]struct{})
	reserved := make([]ReservedSpanView, 0, len(reservations))
	for _, r := range reservations {
		reserved = append(reserved, ReservedSpanView{StartAt: r.Span.Start(), EndAt: r.Span.End()})
		for _, d := range r.Span.Days() {
			booked[d] = struct{}{}
		}
	}

	view := &CalendarView{ListingID: listingID, From: from, To: to, Reserved: reserved}
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		entry := CalendarDayView{Date: d.Format(time.DateOnly), Available: true}
		if e, ok := explicit[d]; ok {
			entry.Available = e.Available
			entry.PriceOverride = money(e.PriceOverride)
		}
		_, entry.Booked = booked[d]
		view.Days = append(view.Days, entry)
	}
	return view, nil
}

func (q *availabilityQueriesImpl) ensureListing(ctx context.Context, listingID uuid.UUID) error {
	if _, err := q.listings.ListingByID(ctx, listingID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrListingNotFound
		}
		return err
	}
	return nil
}
