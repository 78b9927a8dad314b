package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Snapshot struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	ProviderRef string
	Amount      decimal.Decimal
	Currency    string
	Status      IntentStatus
	Refund      Refund
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (i *Intent) Snapshot() Snapshot {
	return Snapshot{
		ID:          i.id,
		BookingID:   i.bookingID,
		ProviderRef: i.providerRef,
		Amount:      i.amount,
		Currency:    i.currency,
		Status:      i.status,
		Refund:      i.refund,
		Version:     i.version,
		CreatedAt:   i.createdAt,
		UpdatedAt:   i.updatedAt,
	}
}

func Reconstruct(s Snapshot) (*Intent, error) {
	if !s.Status.IsValid() || !s.Refund.Status.IsValid() {
		return nil, ErrInvalidIntent
	}
	return &Intent{
		id:          s.ID,
		bookingID:   s.BookingID,
		providerRef: s.ProviderRef,
		amount:      s.Amount,
		currency:    s.Currency,
		status:      s.Status,
		refund:      s.Refund,
		version:     s.Version,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
	}, nil
}
