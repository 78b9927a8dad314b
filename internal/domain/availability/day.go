package availability

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Day is an explicit per-day calendar entry. Days without an entry are available.
type Day struct {
	ListingID     uuid.UUID
	Date          time.Time
	Available     bool
	PriceOverride *decimal.Decimal
}

func OpenDay(listingID uuid.UUID, date time.Time) Day {
	return Day{ListingID: listingID, Date: DayOf(date), Available: true}
}

// Reservation holds a span of a listing for a booking.
type Reservation struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	HolderID  uuid.UUID
	Span      Span
	CreatedAt time.Time
}

// Blocks reports whether any explicit day in days is unavailable within span.
func Blocks(days []Day, span Span) bool {
	touched := make(map[time.Time]struct{})
	for _, d := range span.Days() {
		touched[d] = struct{}{}
	}
	for _, d := range days {
		if d.Available {
			continue
		}
		if _, ok := touched[DayOf(d.Date)]; ok {
			return true
		}
	}
	return false
}
