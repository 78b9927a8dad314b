package request

import (
	"time"

	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/pricing"
	"rental-engine/internal/pkg/patch"
	"rental-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountTiersRequest struct {
	ThreeDays  *decimal.Decimal `json:"three_days,omitempty"`
	SevenDays  *decimal.Decimal `json:"seven_days,omitempty"`
	ThirtyDays *decimal.Decimal `json:"thirty_days,omitempty"`
}

type RateCardRequest struct {
	PricePerDay   decimal.Decimal      `json:"price_per_day"`
	Currency      string               `json:"currency" binding:"required,len=3"`
	HourlyAllowed bool                 `json:"hourly_allowed"`
	PricePerHour  *decimal.Decimal     `json:"price_per_hour,omitempty"`
	Discounts     DiscountTiersRequest `json:"discounts"`
}

type AddOnRateRequest struct {
	Kind       string           `json:"kind" binding:"required,oneof=delivery flexible_return second_driver"`
	PricePerKm *decimal.Decimal `json:"price_per_km,omitempty"`
	FlatFee    decimal.Decimal  `json:"flat_fee"`
}

type UpsertListingRequest struct {
	// HostID is honoured for admins only; hosts always write their own listings.
	HostID   *uuid.UUID         `json:"host_id,omitempty"`
	Title    string             `json:"title" binding:"required,max=200"`
	Active   *bool              `json:"active" binding:"required"`
	RateCard RateCardRequest    `json:"rate_card"`
	Location CoordinatesRequest `json:"location"`
	AddOns   []AddOnRateRequest `json:"add_ons,omitempty" binding:"omitempty,dive"`
	Caution  *decimal.Decimal   `json:"caution,omitempty"`
	Policy   string             `json:"confirmation_policy" binding:"required,oneof=instant manual_approval"`
}

func (r UpsertListingRequest) ToParams(id uuid.UUID) listing.Params {
	addOns := make([]pricing.AddOnRate, 0, len(r.AddOns))
	for _, a := range r.AddOns {
		addOns = append(addOns, pricing.AddOnRate{
			Kind:       pricing.AddOnKind(a.Kind),
			PricePerKm: a.PricePerKm,
			FlatFee:    a.FlatFee,
		})
	}
	return listing.Params{
		ID:     id,
		HostID: patch.Coalesce(r.HostID, uuid.Nil),
		Title:  r.Title,
		Active: *r.Active,
		RateCard: pricing.RateCard{
			PricePerDay:   r.RateCard.PricePerDay,
			Currency:      r.RateCard.Currency,
			HourlyAllowed: r.RateCard.HourlyAllowed,
			PricePerHour:  r.RateCard.PricePerHour,
			Discounts: pricing.DiscountTiers{
				ThreeDays:  r.RateCard.Discounts.ThreeDays,
				SevenDays:  r.RateCard.Discounts.SevenDays,
				ThirtyDays: r.RateCard.Discounts.ThirtyDays,
			},
		},
		Location: r.Location.ToDomain(),
		AddOns:   addOns,
		Caution:  r.Caution,
		Policy:   listing.ConfirmationPolicy(r.Policy),
	}
}

type SetAvailabilityRequest struct {
	Available     *bool            `json:"available" binding:"required"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
}

func (r SetAvailabilityRequest) ToCommand(listingID uuid.UUID, date time.Time) commands.SetAvailabilityRequest {
	return commands.SetAvailabilityRequest{
		ListingID:     listingID,
		Date:          date,
		Available:     *r.Available,
		PriceOverride: r.PriceOverride,
	}
}

type CalendarQuery struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02" time_utc:"1"`
}

type RangeQuery struct {
	StartAt time.Time `form:"start_at" binding:"required"`
	EndAt   time.Time `form:"end_at" binding:"required"`
}
