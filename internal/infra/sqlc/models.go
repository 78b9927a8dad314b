package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Listing struct {
	ID                 uuid.UUID
	HostID             uuid.UUID
	Title              string
	Active             bool
	Currency           string
	PricePerDayCents   int64
	HourlyAllowed      bool
	PricePerHourCents  pgtype.Int8
	Discount3Days      pgtype.Text
	Discount7Days      pgtype.Text
	Discount30Days     pgtype.Text
	Latitude           float64
	Longitude          float64
	AddOns             []byte
	CautionCents       pgtype.Int8
	ConfirmationPolicy string
	CreatedAt          pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
}

type AvailabilityDay struct {
	ListingID          uuid.UUID
	Day                pgtype.Date
	Available          bool
	PriceOverrideCents pgtype.Int8
}

type Reservation struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	HolderID  uuid.UUID
	StartAt   pgtype.Timestamptz
	EndAt     pgtype.Timestamptz
	CreatedAt pgtype.Timestamptz
}

type Booking struct {
	ID               uuid.UUID
	ListingID        uuid.UUID
	GuestID          uuid.UUID
	HostID           uuid.UUID
	StartAt          pgtype.Timestamptz
	EndAt            pgtype.Timestamptz
	Currency         string
	BillingMode      string
	Units            int32
	Hours            int32
	Days             int32
	BasePriceCents   int64
	DiscountPercent  string
	DiscountTierDays int32
	FinalPriceCents  int64
	AddOns           []byte
	TotalCents       int64
	CautionCents     pgtype.Int8
	Status           string
	CancelReason     pgtype.Text
	Version          int32
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

type BookingStatusChange struct {
	BookingID uuid.UUID
	Seq       int32
	Status    string
	At        pgtype.Timestamptz
	ActorID   uuid.UUID
	ActorRole string
	Reason    string
}

type PaymentIntent struct {
	ID                   uuid.UUID
	BookingID            uuid.UUID
	ProviderRef          string
	AmountCents          int64
	Currency             string
	Status               string
	RefundStatus         string
	RefundAmountCents    int64
	RefundPartial        bool
	RefundReason         string
	RefundAttempts       int32
	RefundNextAttemptAt  pgtype.Timestamptz
	RefundLastError      pgtype.Text
	RefundResolvedBy     pgtype.UUID
	RefundResolutionNote pgtype.Text
	RefundCompletedAt    pgtype.Timestamptz
	Version              int32
	CreatedAt            pgtype.Timestamptz
	UpdatedAt            pgtype.Timestamptz
}

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	RunAt    pgtype.Timestamptz
	Attempts int32
}
