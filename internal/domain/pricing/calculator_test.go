//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"rental-engine/internal/domain/pricing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

var start = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func dailyCard() pricing.RateCard {
	return pricing.RateCard{
		PricePerDay: dec("100"),
		Currency:    "EUR",
		Discounts: pricing.DiscountTiers{
			ThreeDays:  decPtr("5"),
			SevenDays:  decPtr("10"),
			ThirtyDays: decPtr("20"),
		},
	}
}

type quoteCase struct {
	name     string
	duration time.Duration
	mutate   func(*pricing.RateCard)
	base     string
	percent  string
	final    string
	mode     pricing.BillingMode
	units    int
	errIs    error
}

func runQuoteCases(t *testing.T, cases []quoteCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rc := dailyCard()
			if tc.mutate != nil {
				tc.mutate(&rc)
			}
			q, err := pricing.Calculate(start, start.Add(tc.duration), rc)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.True(t, q.BasePrice.Equal(dec(tc.base)), "base: got %s want %s", q.BasePrice, tc.base)
			assert.True(t, q.DiscountPercent.Equal(dec(tc.percent)), "percent: got %s want %s", q.DiscountPercent, tc.percent)
			assert.True(t, q.FinalPrice.Equal(dec(tc.final)), "final: got %s want %s", q.FinalPrice, tc.final)
			assert.Equal(t, tc.mode, q.BillingMode)
			assert.Equal(t, tc.units, q.Units)
			assert.Equal(t, "EUR", q.Currency)
		})
	}
}

func TestCalculate(t *testing.T) {
	day := 24 * time.Hour

	t.Run("range validation", func(t *testing.T) {
		runQuoteCases(t, []quoteCase{
			{name: "end equals start", duration: 0, errIs: pricing.ErrInvalidRange},
			{name: "end before start", duration: -time.Hour, errIs: pricing.ErrInvalidRange},
			{
				name:     "no usable rate",
				duration: day,
				mutate:   func(rc *pricing.RateCard) { rc.PricePerDay = decimal.Zero },
				errIs:    pricing.ErrInvalidRange,
			},
			{
				name:     "hourly allowed without hourly rate and no daily rate",
				duration: time.Hour,
				mutate: func(rc *pricing.RateCard) {
					rc.PricePerDay = decimal.Zero
					rc.HourlyAllowed = true
				},
				errIs: pricing.ErrInvalidRange,
			},
			{
				name:     "discount of one hundred percent is rejected",
				duration: day,
				mutate:   func(rc *pricing.RateCard) { rc.Discounts.ThreeDays = decPtr("100") },
				errIs:    pricing.ErrInvalidRateCard,
			},
			{
				name:     "currency must be an ISO code",
				duration: day,
				mutate:   func(rc *pricing.RateCard) { rc.Currency = "EURO" },
				errIs:    pricing.ErrInvalidRateCard,
			},
		})
	})

	t.Run("ceiling rounding of hours and days", func(t *testing.T) {
		runQuoteCases(t, []quoteCase{
			{name: "one minute bills one day", duration: time.Minute, base: "100", percent: "0", final: "100", mode: pricing.BillingDaily, units: 1},
			{name: "exactly 24h is one day", duration: day, base: "100", percent: "0", final: "100", mode: pricing.BillingDaily, units: 1},
			{name: "25h is two days", duration: 25 * time.Hour, base: "200", percent: "0", final: "200", mode: pricing.BillingDaily, units: 2},
			{name: "48h and one second is three days", duration: 2*day + time.Second, base: "300", percent: "5", final: "285", mode: pricing.BillingDaily, units: 3},
		})
	})

	t.Run("discount tier selection", func(t *testing.T) {
		runQuoteCases(t, []quoteCase{
			{name: "2 days has no discount", duration: 2 * day, base: "200", percent: "0", final: "200", mode: pricing.BillingDaily, units: 2},
			{name: "3 days uses the 3-day tier", duration: 3 * day, base: "300", percent: "5", final: "285", mode: pricing.BillingDaily, units: 3},
			{name: "6 days still uses the 3-day tier", duration: 6 * day, base: "600", percent: "5", final: "570", mode: pricing.BillingDaily, units: 6},
			{name: "7 days uses the 7-day tier", duration: 7 * day, base: "700", percent: "10", final: "630", mode: pricing.BillingDaily, units: 7},
			{name: "29 days uses the 7-day tier", duration: 29 * day, base: "2900", percent: "10", final: "2610", mode: pricing.BillingDaily, units: 29},
			{name: "30 days uses the 30-day tier", duration: 30 * day, base: "3000", percent: "20", final: "2400", mode: pricing.BillingDaily, units: 30},
			{
				name:     "zero percent tier falls through to the next eligible tier",
				duration: 30 * day,
				mutate:   func(rc *pricing.RateCard) { rc.Discounts.ThirtyDays = decPtr("0") },
				base:     "3000", percent: "10", final: "2700", mode: pricing.BillingDaily, units: 30,
			},
			{
				name:     "absent tier falls through to the next eligible tier",
				duration: 8 * day,
				mutate:   func(rc *pricing.RateCard) { rc.Discounts.SevenDays = nil },
				base:     "800", percent: "5", final: "760", mode: pricing.BillingDaily, units: 8,
			},
			{
				name:     "no tiers configured",
				duration: 30 * day,
				mutate:   func(rc *pricing.RateCard) { rc.Discounts = pricing.DiscountTiers{} },
				base:     "3000", percent: "0", final: "3000", mode: pricing.BillingDaily, units: 30,
			},
		})
	})

	t.Run("hourly precedence", func(t *testing.T) {
		hourly := func(rc *pricing.RateCard) {
			rc.HourlyAllowed = true
			rc.PricePerHour = decPtr("10")
		}
		runQuoteCases(t, []quoteCase{
			{name: "5h at 10 per hour", duration: 5 * time.Hour, mutate: hourly, base: "50", percent: "0", final: "50", mode: pricing.BillingHourly, units: 5},
			{name: "partial hour rounds up", duration: 4*time.Hour + time.Minute, mutate: hourly, base: "50", percent: "0", final: "50", mode: pricing.BillingHourly, units: 5},
			{name: "hourly billing still takes the day-based tier", duration: 73 * time.Hour, mutate: hourly, base: "730", percent: "5", final: "693.5", mode: pricing.BillingHourly, units: 73},
			{
				name:     "hourly rate ignored when not allowed",
				duration: 5 * time.Hour,
				mutate:   func(rc *pricing.RateCard) { rc.PricePerHour = decPtr("10") },
				base:     "100", percent: "0", final: "100", mode: pricing.BillingDaily, units: 1,
			},
			{
				name:     "zero hourly rate falls back to daily",
				duration: 5 * time.Hour,
				mutate: func(rc *pricing.RateCard) {
					rc.HourlyAllowed = true
					rc.PricePerHour = decPtr("0")
				},
				base: "100", percent: "0", final: "100", mode: pricing.BillingDaily, units: 1,
			},
		})
	})

	t.Run("rounding is half-up to cents", func(t *testing.T) {
		runQuoteCases(t, []quoteCase{
			{
				name:     "fractional discount result",
				duration: 3 * 24 * time.Hour,
				mutate: func(rc *pricing.RateCard) {
					rc.PricePerDay = dec("33.33")
					rc.Discounts.ThreeDays = decPtr("10")
				},
				base: "99.99", percent: "10", final: "89.99", mode: pricing.BillingDaily, units: 3,
			},
			{
				name:     "exact half cent rounds up",
				duration: 3 * 24 * time.Hour,
				mutate: func(rc *pricing.RateCard) {
					rc.PricePerDay = dec("3.35")
					rc.Discounts.ThreeDays = decPtr("50")
				},
				base: "10.05", percent: "50", final: "5.03", mode: pricing.BillingDaily, units: 3,
			},
		})
	})

	t.Run("three day rental at 45 per day with ten percent", func(t *testing.T) {
		rc := pricing.RateCard{
			PricePerDay: dec("45"),
			Currency:    "EUR",
			Discounts:   pricing.DiscountTiers{ThreeDays: decPtr("10")},
		}
		q, err := pricing.Calculate(start, start.Add(72*time.Hour), rc)
		require.NoError(t, err)
		assert.True(t, q.BasePrice.Equal(dec("135")))
		assert.True(t, q.FinalPrice.Equal(dec("121.50")))
		assert.Equal(t, 3, q.Days)
		assert.Equal(t, 3, q.DiscountTierDays)
	})

	t.Run("pure and deterministic", func(t *testing.T) {
		rc := dailyCard()
		rc.HourlyAllowed = true
		rc.PricePerHour = decPtr("7.77")
		end := start.Add(90*time.Hour + 17*time.Minute)

		first, err := pricing.Calculate(start, end, rc)
		require.NoError(t, err)
		for range 20 {
			again, err := pricing.Calculate(start, end, rc)
			require.NoError(t, err)
			if diff := cmp.Diff(first, again, decimalEqual); diff != "" {
				t.Fatalf("quote changed between calls (-first +again):\n%s", diff)
			}
		}
		assert.Equal(t, "7.77", rc.PricePerHour.String(), "rate card must not be mutated")
	})
}
