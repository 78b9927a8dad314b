package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillingMode string

const (
	BillingHourly BillingMode = "hourly"
	BillingDaily  BillingMode = "daily"
)

func (m BillingMode) String() string {
	return string(m)
}

// Quote is an immutable price computation for one booking range.
type Quote struct {
	BasePrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	FinalPrice      decimal.Decimal
	Currency        string
	BillingMode     BillingMode
	// Units counts hours for hourly billing and days for daily billing.
	Units int
	Hours int
	Days  int
	// DiscountTierDays is the threshold that produced the discount, zero when none applied.
	DiscountTierDays int
}

// Calculate prices the half-open range [start, end) against a rate card.
// It is pure: equal inputs always produce equal quotes.
func Calculate(start, end time.Time, rc RateCard) (Quote, error) {
	if !end.After(start) {
		return Quote{}, ErrInvalidRange
	}
	if err := rc.Validate(); err != nil {
		return Quote{}, err
	}

	hours := ceilHours(end.Sub(start))
	days := (hours + 23) / 24

	var (
		mode  BillingMode
		units int
		rate  decimal.Decimal
	)
	switch {
	case rc.hourlyUsable():
		mode, units, rate = BillingHourly, hours, *rc.PricePerHour
	case rc.PricePerDay.IsPositive():
		mode, units, rate = BillingDaily, days, rc.PricePerDay
	default:
		return Quote{}, ErrInvalidRange
	}

	percent, tierDays := selectDiscount(days, rc.Discounts)

	exactBase := rate.Mul(decimal.NewFromInt(int64(units)))
	exactFinal := exactBase.Mul(hundred.Sub(percent)).Div(hundred)

	return Quote{
		BasePrice:        roundMoney(exactBase),
		DiscountPercent:  percent,
		FinalPrice:       roundMoney(exactFinal),
		Currency:         rc.Currency,
		BillingMode:      mode,
		Units:            units,
		Hours:            hours,
		Days:             days,
		DiscountTierDays: tierDays,
	}, nil
}

// Tier eligibility is always measured in days, whatever the billing mode.
func selectDiscount(days int, tiers DiscountTiers) (decimal.Decimal, int) {
	for _, t := range tiers.ordered() {
		if days < t.days {
			continue
		}
		if t.percent != nil && t.percent.IsPositive() {
			return *t.percent, t.days
		}
	}
	return decimal.Zero, 0
}

func ceilHours(d time.Duration) int {
	h := d / time.Hour
	if d%time.Hour != 0 {
		h++
	}
	return int(h)
}

// roundMoney rounds half-up to cents; amounts here are never negative.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
