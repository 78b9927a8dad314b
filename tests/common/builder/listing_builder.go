//go:build unit || e2e

package builder

import (
	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/pricing"
	"rental-engine/internal/pkg/patch"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ListingBuilder struct {
	ID       uuid.UUID
	HostID   uuid.UUID
	Title    string
	Active   bool
	RateCard pricing.RateCard
	Location pricing.Coordinates
	AddOns   []pricing.AddOnRate
	Caution  *decimal.Decimal
	Policy   listing.ConfirmationPolicy
}

// NewListingBuilder defaults to 45/day with 10% off from three days, instant confirmation.
func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{
		ID:     uuid.New(),
		HostID: uuid.New(),
		Title:  "Compact car",
		Active: true,
		RateCard: pricing.RateCard{
			PricePerDay: decimal.NewFromInt(45),
			Currency:    "EUR",
			Discounts:   pricing.DiscountTiers{ThreeDays: patch.Ptr(decimal.NewFromInt(10))},
		},
		Location: pricing.Coordinates{Latitude: 48.8566, Longitude: 2.3522},
		AddOns: []pricing.AddOnRate{
			{Kind: pricing.AddOnSecondDriver, FlatFee: decimal.NewFromInt(15)},
		},
		Caution: patch.Ptr(decimal.NewFromInt(300)),
		Policy:  listing.PolicyInstant,
	}
}

func (b *ListingBuilder) With(mutate func(*ListingBuilder)) *ListingBuilder {
	mutate(b)
	return b
}

func (b *ListingBuilder) WithPolicy(p listing.ConfirmationPolicy) *ListingBuilder {
	b.Policy = p
	return b
}

func (b *ListingBuilder) WithActive(active bool) *ListingBuilder {
	b.Active = active
	return b
}

func (b *ListingBuilder) WithHourlyRate(rate decimal.Decimal) *ListingBuilder {
	b.RateCard.HourlyAllowed = true
	b.RateCard.PricePerHour = &rate
	return b
}

func (b *ListingBuilder) BuildDomain() (*listing.Listing, error) {
	return listing.New(listing.Params{
		ID:       b.ID,
		HostID:   b.HostID,
		Title:    b.Title,
		Active:   b.Active,
		RateCard: b.RateCard,
		Location: b.Location,
		AddOns:   b.AddOns,
		Caution:  b.Caution,
		Policy:   b.Policy,
	})
}

func (b *ListingBuilder) MustBuild() *listing.Listing {
	l, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return l
}
