package converter

import (
	"encoding/json"

	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/pricing"
	"rental-engine/internal/infra/sqlc"
	"rental-engine/internal/pkg/pgconv"

	"github.com/shopspring/decimal"
)

type addOnRateJSON struct {
	Kind       string  `json:"kind"`
	PricePerKm *string `json:"price_per_km,omitempty"`
	FlatFee    string  `json:"flat_fee"`
}

func ListingToUpsertParams(l *listing.Listing) (sqlc.UpsertListingParams, error) {
	rates := make([]addOnRateJSON, 0, len(l.AddOns()))
	for _, r := range l.AddOns() {
		item := addOnRateJSON{Kind: string(r.Kind), FlatFee: r.FlatFee.String()}
		if r.PricePerKm != nil {
			perKm := r.PricePerKm.String()
			item.PricePerKm = &perKm
		}
		rates = append(rates, item)
	}
	addOns, err := json.Marshal(rates)
	if err != nil {
		return sqlc.UpsertListingParams{}, err
	}

	rc := l.RateCard()
	return sqlc.UpsertListingParams{
		ID:                 l.ID(),
		HostID:             l.HostID(),
		Title:              l.Title(),
		Active:             l.Active(),
		Currency:           rc.Currency,
		PricePerDayCents:   pgconv.CentsFromDecimal(rc.PricePerDay),
		HourlyAllowed:      rc.HourlyAllowed,
		PricePerHourCents:  pgconv.CentsPtrFromDecimal(rc.PricePerHour),
		Discount3Days:      pgconv.DecimalPtrToText(rc.Discounts.ThreeDays),
		Discount7Days:      pgconv.DecimalPtrToText(rc.Discounts.SevenDays),
		Discount30Days:     pgconv.DecimalPtrToText(rc.Discounts.ThirtyDays),
		Latitude:           l.Location().Latitude,
		Longitude:          l.Location().Longitude,
		AddOns:             addOns,
		CautionCents:       pgconv.CentsPtrFromDecimal(l.Caution()),
		ConfirmationPolicy: l.Policy().String(),
	}, nil
}

func ListingFromRow(row sqlc.Listing) (*listing.Listing, error) {
	var discounts pricing.DiscountTiers
	var err error
	if discounts.ThreeDays, err = pgconv.DecimalPtrFromText(row.Discount3Days); err != nil {
		return nil, err
	}
	if discounts.SevenDays, err = pgconv.DecimalPtrFromText(row.Discount7Days); err != nil {
		return nil, err
	}
	if discounts.ThirtyDays, err = pgconv.DecimalPtrFromText(row.Discount30Days); err != nil {
		return nil, err
	}

	var rates []addOnRateJSON
	if len(row.AddOns) > 0 {
		if err := json.Unmarshal(row.AddOns, &rates); err != nil {
			return nil, err
		}
	}
	addOns := make([]pricing.AddOnRate, 0, len(rates))
	for _, r := range rates {
		fee, err := decimal.NewFromString(r.FlatFee)
		if err != nil {
			return nil, pgconv.ErrInvalidDecimalValue
		}
		rate := pricing.AddOnRate{Kind: pricing.AddOnKind(r.Kind), FlatFee: fee}
		if r.PricePerKm != nil {
			perKm, err := decimal.NewFromString(*r.PricePerKm)
			if err != nil {
				return nil, pgconv.ErrInvalidDecimalValue
			}
			rate.PricePerKm = &perKm
		}
		addOns = append(addOns, rate)
	}

	return listing.New(listing.Params{
		ID:     row.ID,
		HostID: row.HostID,
		Title:  row.Title,
		Active: row.Active,
		RateCard: pricing.RateCard{
			PricePerDay:   pgconv.DecimalFromCents(row.PricePerDayCents),
			Currency:      row.Currency,
			HourlyAllowed: row.HourlyAllowed,
			PricePerHour:  pgconv.DecimalPtrFromCents(row.PricePerHourCents),
			Discounts:     discounts,
		},
		Location: pricing.Coordinates{Latitude: row.Latitude, Longitude: row.Longitude},
		AddOns:   addOns,
		Caution:  pgconv.DecimalPtrFromCents(row.CautionCents),
		Policy:   listing.ConfirmationPolicy(row.ConfirmationPolicy),
	})
}
