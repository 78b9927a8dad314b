package shared

import (
	"context"
	"time"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/payment"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic.
	// fn may run more than once and must not call external services.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Listings() ListingRepository
	Bookings() BookingRepository
	Ledger() AvailabilityLedger
	Payments() PaymentRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

type CommandReads interface {
	ListingByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// LatestIntent returns the most recent payment intent of a booking.
	LatestIntent(ctx context.Context, bookingID uuid.UUID) (*payment.Intent, error)
	DueRefunds(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
	StalePendingBookings(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error)
}

type ListingRepository interface {
	Upsert(ctx context.Context, l *listing.Listing) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// LockByID reads the booking and holds it until the transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// Save persists status, history and cancel reason. A stale version yields KindConflict.
	Save(ctx context.Context, b *booking.Booking) error
}

// AvailabilityLedger is the per-listing record of reserved spans and explicit calendar days.
type AvailabilityLedger interface {
	IsRangeFree(ctx context.Context, listingID uuid.UUID, span availability.Span) (bool, error)
	// Reserve is an atomic check-and-insert. It fails with availability.ErrConflict
	// when the span overlaps a reservation or touches an unavailable day.
	Reserve(ctx context.Context, listingID uuid.UUID, span availability.Span, holderID uuid.UUID) (availability.Reservation, error)
	// Release frees the reservations contained in span and reports how many were freed.
	Release(ctx context.Context, listingID uuid.UUID, span availability.Span) (int, error)
	SetDay(ctx context.Context, day availability.Day) error
}

type PaymentRepository interface {
	Create(ctx context.Context, in *payment.Intent) error
	LockByID(ctx context.Context, id uuid.UUID) (*payment.Intent, error)
	LockByProviderRef(ctx context.Context, providerRef string) (*payment.Intent, error)
	LockLatestByBooking(ctx context.Context, bookingID uuid.UUID) (*payment.Intent, error)
	Save(ctx context.Context, in *payment.Intent) error
}

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int
}

// NotificationRepository is the transactional outbox.
type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
	// ClaimDue takes queued jobs whose run time has passed and pushes their run time to
	// leaseUntil, so no other relay picks them up while they are being published.
	ClaimDue(ctx context.Context, now, leaseUntil time.Time, limit int) ([]NotificationJob, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastErr string, nextRunAt time.Time) error
}
