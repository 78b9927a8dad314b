package queries

import (
	"time"

	"github.com/google/uuid"
)

// Money is rendered as fixed two-decimal strings throughout the read side.

type AddOnFeeView struct {
	Kind       string   `json:"kind"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Amount     string   `json:"amount"`
}

type QuoteView struct {
	ListingID        uuid.UUID      `json:"listing_id"`
	StartAt          time.Time      `json:"start_at"`
	EndAt            time.Time      `json:"end_at"`
	Currency         string         `json:"currency"`
	BillingMode      string         `json:"billing_mode"`
	Units            int            `json:"units"`
	Hours            int            `json:"hours"`
	Days             int            `json:"days"`
	BasePrice        string         `json:"base_price"`
	DiscountPercent  string         `json:"discount_percent"`
	DiscountTierDays *int           `json:"discount_tier_days,omitempty"`
	FinalPrice       string         `json:"final_price"`
	AddOns           []AddOnFeeView `json:"add_ons"`
	Total            string         `json:"total"`
	Caution          *string        `json:"caution,omitempty"`
	Available        bool           `json:"available"`
}

type StatusChangeView struct {
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
	ActorID   uuid.UUID `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Reason    string    `json:"reason,omitempty"`
}

type RefundView struct {
	Status         string     `json:"status"`
	Amount         string     `json:"amount,omitempty"`
	Partial        bool       `json:"partial"`
	Reason         string     `json:"reason,omitempty"`
	Attempts       int        `json:"attempts"`
	NextAttemptAt  *time.Time `json:"next_attempt_at,omitempty"`
	LastError      *string    `json:"last_error,omitempty"`
	ResolvedBy     *uuid.UUID `json:"resolved_by,omitempty"`
	ResolutionNote *string    `json:"resolution_note,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

type PaymentView struct {
	ID          uuid.UUID  `json:"id"`
	ProviderRef string     `json:"provider_ref"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	Refund      RefundView `json:"refund"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type BookingView struct {
	ID           uuid.UUID          `json:"id"`
	ListingID    uuid.UUID          `json:"listing_id"`
	GuestID      uuid.UUID          `json:"guest_id"`
	HostID       uuid.UUID          `json:"host_id"`
	Status       string             `json:"status"`
	StartAt      time.Time          `json:"start_at"`
	EndAt        time.Time          `json:"end_at"`
	Quote        QuoteView          `json:"quote"`
	Total        string             `json:"total"`
	Currency     string             `json:"currency"`
	Caution      *string            `json:"caution,omitempty"`
	CancelReason *string            `json:"cancel_reason,omitempty"`
	History      []StatusChangeView `json:"history"`
	Payment      *PaymentView       `json:"payment,omitempty"`
	// Resolved is false while the booking is open or a refund is still outstanding.
	Resolved  bool      `json:"resolved"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID        uuid.UUID `json:"id"`
	ListingID uuid.UUID `json:"listing_id"`
	Status    string    `json:"status"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Total     string    `json:"total"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

type CalendarDayView struct {
	Date          string  `json:"date"`
	Available     bool    `json:"available"`
	Booked        bool    `json:"booked"`
	PriceOverride *string `json:"price_override,omitempty"`
}

type ReservedSpanView struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type CalendarView struct {
	ListingID uuid.UUID          `json:"listing_id"`
	From      time.Time          `json:"from"`
	To        time.Time          `json:"to"`
	Days      []CalendarDayView  `json:"days"`
	Reserved  []ReservedSpanView `json:"reserved"`
}
