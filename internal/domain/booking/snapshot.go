package booking

import (
	"time"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is the persisted form of a Booking.
type Snapshot struct {
	ID           uuid.UUID
	ListingID    uuid.UUID
	GuestID      uuid.UUID
	HostID       uuid.UUID
	StartAt      time.Time
	EndAt        time.Time
	Quote        pricing.Quote
	AddOns       []pricing.AddOnFee
	Total        decimal.Decimal
	Caution      *decimal.Decimal
	Status       Status
	History      []StatusChange
	CancelReason *string
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (b *Booking) Snapshot() Snapshot {
	addOns := make([]pricing.AddOnFee, len(b.addOns))
	copy(addOns, b.addOns)
	history := make([]StatusChange, len(b.history))
	copy(history, b.history)

	return Snapshot{
		ID:           b.id,
		ListingID:    b.listingID,
		GuestID:      b.guestID,
		HostID:       b.hostID,
		StartAt:      b.span.Start(),
		EndAt:        b.span.End(),
		Quote:        b.quote,
		AddOns:       addOns,
		Total:        b.total,
		Caution:      b.caution,
		Status:       b.status,
		History:      history,
		CancelReason: b.cancelReason,
		Version:      b.version,
		CreatedAt:    b.createdAt,
		UpdatedAt:    b.updatedAt,
	}
}

func Reconstruct(s Snapshot) (*Booking, error) {
	if !s.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	span, err := availability.NewSpan(s.StartAt, s.EndAt)
	if err != nil {
		return nil, err
	}
	addOns := make([]pricing.AddOnFee, len(s.AddOns))
	copy(addOns, s.AddOns)
	history := make([]StatusChange, len(s.History))
	copy(history, s.History)

	return &Booking{
		id:           s.ID,
		listingID:    s.ListingID,
		guestID:      s.GuestID,
		hostID:       s.HostID,
		span:         span,
		quote:        s.Quote,
		addOns:       addOns,
		total:        s.Total,
		caution:      s.Caution,
		status:       s.Status,
		history:      history,
		cancelReason: s.CancelReason,
		version:      s.Version,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}, nil
}
