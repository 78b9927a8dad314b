//go:build unit

package availability_test

import (
	"testing"
	"time"

	"rental-engine/internal/domain/availability"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)

func span(t *testing.T, fromHours, toHours int) availability.Span {
	t.Helper()
	s, err := availability.NewSpan(base.Add(time.Duration(fromHours)*time.Hour), base.Add(time.Duration(toHours)*time.Hour))
	require.NoError(t, err)
	return s
}

func TestNewSpan(t *testing.T) {
	_, err := availability.NewSpan(base, base)
	assert.ErrorIs(t, err, availability.ErrInvalidSpan)

	_, err = availability.NewSpan(base, base.Add(-time.Minute))
	assert.ErrorIs(t, err, availability.ErrInvalidSpan)
}

func TestSpanOverlaps(t *testing.T) {
	cases := []struct {
		name    string
		a, b    [2]int
		overlap bool
	}{
		{name: "identical", a: [2]int{0, 24}, b: [2]int{0, 24}, overlap: true},
		{name: "partial", a: [2]int{0, 24}, b: [2]int{12, 36}, overlap: true},
		{name: "contained", a: [2]int{0, 72}, b: [2]int{24, 48}, overlap: true},
		{name: "touching end to start", a: [2]int{0, 24}, b: [2]int{24, 48}, overlap: false},
		{name: "disjoint", a: [2]int{0, 10}, b: [2]int{20, 30}, overlap: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := span(t, tc.a[0], tc.a[1])
			b := span(t, tc.b[0], tc.b[1])
			assert.Equal(t, tc.overlap, a.Overlaps(b))
			assert.Equal(t, tc.overlap, b.Overlaps(a))
		})
	}
}

func TestSpanDays(t *testing.T) {
	t.Run("exclusive end at midnight", func(t *testing.T) {
		days := span(t, 0, 72).Days()
		require.Len(t, days, 3)
		assert.Equal(t, base, days[0])
		assert.Equal(t, base.AddDate(0, 0, 2), days[2])
	})

	t.Run("intra-day span", func(t *testing.T) {
		assert.Len(t, span(t, 10, 15).Days(), 1)
	})

	t.Run("crossing midnight", func(t *testing.T) {
		assert.Len(t, span(t, 20, 26).Days(), 2)
	})
}

func TestBlocks(t *testing.T) {
	listingID := uuid.New()
	blocked := availability.Day{ListingID: listingID, Date: base.AddDate(0, 0, 1), Available: false}
	open := availability.OpenDay(listingID, base.AddDate(0, 0, 5))

	assert.True(t, availability.Blocks([]availability.Day{blocked, open}, span(t, 0, 72)))
	assert.False(t, availability.Blocks([]availability.Day{blocked, open}, span(t, 0, 24)))
	assert.False(t, availability.Blocks([]availability.Day{open}, span(t, 100, 140)))
	assert.False(t, availability.Blocks(nil, span(t, 0, 24)))
}
