package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRange    = errors.New("invalid booking range")
	ErrInvalidRateCard = errors.New("invalid rate card")
)

var hundred = decimal.NewFromInt(100)

// HasCentPrecision reports whether d carries at most two decimal places. Stored prices,
// percents and deposits are kept at that scale.
func HasCentPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}

// DiscountTiers holds optional percentages keyed by minimum rental length in days.
type DiscountTiers struct {
	ThreeDays  *decimal.Decimal
	SevenDays  *decimal.Decimal
	ThirtyDays *decimal.Decimal
}

type tier struct {
	days    int
	percent *decimal.Decimal
}

// ordered from the longest threshold down; the first eligible tier wins
func (d DiscountTiers) ordered() []tier {
	return []tier{
		{days: 30, percent: d.ThirtyDays},
		{days: 7, percent: d.SevenDays},
		{days: 3, percent: d.ThreeDays},
	}
}

type RateCard struct {
	PricePerDay   decimal.Decimal
	Currency      string
	HourlyAllowed bool
	PricePerHour  *decimal.Decimal
	Discounts     DiscountTiers
}

func (rc RateCard) Validate() error {
	if len(strings.TrimSpace(rc.Currency)) != 3 {
		return ErrInvalidRateCard
	}
	if rc.PricePerDay.IsNegative() || !HasCentPrecision(rc.PricePerDay) {
		return ErrInvalidRateCard
	}
	if rc.PricePerHour != nil && (rc.PricePerHour.IsNegative() || !HasCentPrecision(*rc.PricePerHour)) {
		return ErrInvalidRateCard
	}
	for _, t := range rc.Discounts.ordered() {
		if t.percent == nil {
			continue
		}
		if t.percent.IsNegative() || t.percent.GreaterThanOrEqual(hundred) || !HasCentPrecision(*t.percent) {
			return ErrInvalidRateCard
		}
	}
	return nil
}

func (rc RateCard) hourlyUsable() bool {
	return rc.HourlyAllowed && rc.PricePerHour != nil && rc.PricePerHour.IsPositive()
}
