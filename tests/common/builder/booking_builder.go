//go:build unit || e2e

package builder

import (
	"time"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/pricing"
	reqdto "rental-engine/internal/handler/dto/request"
	"rental-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	GuestID   uuid.UUID
	HostID    uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	RateCard  pricing.RateCard
	AddOns    []pricing.AddOnFee
	CreatedAt time.Time
}

// NewBookingBuilder produces a three day booking starting two days after CreatedAt.
func NewBookingBuilder() *BookingBuilder {
	created := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	start := created.Add(48 * time.Hour)
	threeDay := decimal.NewFromInt(10)
	return &BookingBuilder{
		ID:        uuid.New(),
		ListingID: uuid.New(),
		GuestID:   uuid.New(),
		HostID:    uuid.New(),
		StartAt:   start,
		EndAt:     start.Add(72 * time.Hour),
		RateCard: pricing.RateCard{
			PricePerDay: decimal.NewFromInt(45),
			Currency:    "EUR",
			Discounts:   pricing.DiscountTiers{ThreeDays: &threeDay},
		},
		CreatedAt: created,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) ForListing(l interface {
	ID() uuid.UUID
	HostID() uuid.UUID
	RateCard() pricing.RateCard
}) *BookingBuilder {
	b.ListingID = l.ID()
	b.HostID = l.HostID()
	b.RateCard = l.RateCard()
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	span, err := availability.NewSpan(b.StartAt, b.EndAt)
	if err != nil {
		return nil, err
	}
	q, err := pricing.Calculate(b.StartAt, b.EndAt, b.RateCard)
	if err != nil {
		return nil, err
	}
	return booking.New(booking.NewParams{
		ID:        b.ID,
		ListingID: b.ListingID,
		GuestID:   b.GuestID,
		HostID:    b.HostID,
		Span:      span,
		Quote:     q,
		AddOns:    b.AddOns,
		At:        b.CreatedAt,
	})
}

func (b *BookingBuilder) MustBuild() *booking.Booking {
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return bk
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ListingID: b.ListingID,
		StartAt:   b.StartAt,
		EndAt:     b.EndAt,
	}
}

func (b *BookingBuilder) BuildCreateCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ListingID: b.ListingID,
		StartAt:   b.StartAt,
		EndAt:     b.EndAt,
	}
}
