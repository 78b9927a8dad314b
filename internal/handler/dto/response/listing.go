package response

import (
	"time"

	"rental-engine/internal/domain/listing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddOnRateResponse struct {
	Kind       string  `json:"kind"`
	PricePerKm *string `json:"price_per_km,omitempty"`
	FlatFee    string  `json:"flat_fee"`
}

type ListingResponse struct {
	ID            uuid.UUID           `json:"id"`
	HostID        uuid.UUID           `json:"host_id"`
	Title         string              `json:"title"`
	Active        bool                `json:"active"`
	Currency      string              `json:"currency"`
	PricePerDay   string              `json:"price_per_day"`
	HourlyAllowed bool                `json:"hourly_allowed"`
	PricePerHour  *string             `json:"price_per_hour,omitempty"`
	AddOns        []AddOnRateResponse `json:"add_ons"`
	Caution       *string             `json:"caution,omitempty"`
	Policy        string              `json:"confirmation_policy"`
}

func FromListing(l *listing.Listing) ListingResponse {
	rc := l.RateCard()
	addOns := make([]AddOnRateResponse, 0, len(l.AddOns()))
	for _, a := range l.AddOns() {
		addOns = append(addOns, AddOnRateResponse{
			Kind:       string(a.Kind),
			PricePerKm: money(a.PricePerKm),
			FlatFee:    a.FlatFee.StringFixed(2),
		})
	}
	return ListingResponse{
		ID:            l.ID(),
		HostID:        l.HostID(),
		Title:         l.Title(),
		Active:        l.Active(),
		Currency:      rc.Currency,
		PricePerDay:   rc.PricePerDay.StringFixed(2),
		HourlyAllowed: rc.HourlyAllowed,
		PricePerHour:  money(rc.PricePerHour),
		AddOns:        addOns,
		Caution:       money(l.Caution()),
		Policy:        l.Policy().String(),
	}
}

type RangeFreeResponse struct {
	ListingID uuid.UUID `json:"listing_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Free      bool      `json:"free"`
}

func money(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}
