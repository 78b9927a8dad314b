//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"rental-engine/internal/domain/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	paris  = pricing.Coordinates{Latitude: 48.8566, Longitude: 2.3522}
	london = pricing.Coordinates{Latitude: 51.5074, Longitude: -0.1278}
)

func TestDistanceKm(t *testing.T) {
	assert.InDelta(t, 343.5, pricing.DistanceKm(paris, london), 1.0)
	assert.InDelta(t, pricing.DistanceKm(paris, london), pricing.DistanceKm(london, paris), 1e-9)
	assert.Zero(t, pricing.DistanceKm(paris, paris))
}

func TestPriceAddOn(t *testing.T) {
	t.Run("distance based fee", func(t *testing.T) {
		rate := pricing.AddOnRate{Kind: pricing.AddOnDelivery, PricePerKm: decPtr("0.50")}
		fee, err := pricing.PriceAddOn(rate, paris, pricing.AddOnRequest{Kind: pricing.AddOnDelivery, Destination: &london})
		require.NoError(t, err)
		require.NotNil(t, fee.DistanceKm)

		amount, _ := fee.Amount.Float64()
		assert.InDelta(t, *fee.DistanceKm*0.5, amount, 0.006)
		assert.True(t, fee.Amount.Equal(fee.Amount.Round(2)), "fee carries at most two decimals")
	})

	t.Run("flat fee when no per-km rate", func(t *testing.T) {
		rate := pricing.AddOnRate{Kind: pricing.AddOnSecondDriver, FlatFee: dec("15")}
		fee, err := pricing.PriceAddOn(rate, paris, pricing.AddOnRequest{Kind: pricing.AddOnSecondDriver})
		require.NoError(t, err)
		assert.True(t, fee.Amount.Equal(dec("15")))
		assert.Nil(t, fee.DistanceKm)
	})

	t.Run("distance based fee needs a destination", func(t *testing.T) {
		rate := pricing.AddOnRate{Kind: pricing.AddOnFlexibleReturn, PricePerKm: decPtr("1")}
		_, err := pricing.PriceAddOn(rate, paris, pricing.AddOnRequest{Kind: pricing.AddOnFlexibleReturn})
		assert.ErrorIs(t, err, pricing.ErrMissingLocation)
	})

	t.Run("negative rates are rejected", func(t *testing.T) {
		rate := pricing.AddOnRate{Kind: pricing.AddOnDelivery, FlatFee: dec("-1")}
		_, err := pricing.PriceAddOn(rate, paris, pricing.AddOnRequest{Kind: pricing.AddOnDelivery})
		assert.ErrorIs(t, err, pricing.ErrInvalidAddOnRate)
	})
}

func TestPriceAddOnsAndTotal(t *testing.T) {
	rates := []pricing.AddOnRate{
		{Kind: pricing.AddOnSecondDriver, FlatFee: dec("15")},
		{Kind: pricing.AddOnDelivery, FlatFee: dec("20")},
	}

	t.Run("fees are added after the discount", func(t *testing.T) {
		rc := pricing.RateCard{
			PricePerDay: dec("45"),
			Currency:    "EUR",
			Discounts:   pricing.DiscountTiers{ThreeDays: decPtr("10")},
		}
		q, err := pricing.Calculate(start, start.Add(72*time.Hour), rc)
		require.NoError(t, err)

		fees, err := pricing.PriceAddOns(rates, paris, []pricing.AddOnRequest{
			{Kind: pricing.AddOnSecondDriver},
			{Kind: pricing.AddOnDelivery},
		})
		require.NoError(t, err)
		require.Len(t, fees, 2)
		assert.True(t, pricing.Total(q, fees).Equal(dec("156.50")))
	})

	t.Run("unknown add-on", func(t *testing.T) {
		_, err := pricing.PriceAddOns(rates, paris, []pricing.AddOnRequest{{Kind: pricing.AddOnFlexibleReturn}})
		assert.ErrorIs(t, err, pricing.ErrUnknownAddOn)
	})

	t.Run("duplicate add-on", func(t *testing.T) {
		_, err := pricing.PriceAddOns(rates, paris, []pricing.AddOnRequest{
			{Kind: pricing.AddOnSecondDriver},
			{Kind: pricing.AddOnSecondDriver},
		})
		assert.ErrorIs(t, err, pricing.ErrDuplicateAddOn)
	})
}
