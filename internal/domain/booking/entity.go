package booking

import (
	"errors"
	"time"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/pricing"
	"rental-engine/internal/domain/user"
	"rental-engine/internal/domain/verification"
	"rental-engine/internal/pkg/patch"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTransition   = errors.New("transition not allowed from current status")
	ErrAlreadyTerminal     = errors.New("booking already completed or cancelled")
	ErrPaymentNotSettled   = errors.New("payment does not cover the booking total")
	ErrApprovalNotRequired = errors.New("listing confirms bookings without host approval")
	ErrOutsideUsageWindow  = errors.New("action outside the booked period")
	ErrRentalStarted       = errors.New("rental period has already started")
)

type StatusChange struct {
	Status    Status
	At        time.Time
	ActorID   uuid.UUID
	ActorRole user.Role
	Reason    string
}

type Booking struct {
	id           uuid.UUID
	listingID    uuid.UUID
	guestID      uuid.UUID
	hostID       uuid.UUID
	span         availability.Span
	quote        pricing.Quote
	addOns       []pricing.AddOnFee
	total        decimal.Decimal
	caution      *decimal.Decimal
	status       Status
	history      []StatusChange
	cancelReason *string
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

type NewParams struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	GuestID   uuid.UUID
	HostID    uuid.UUID
	Span      availability.Span
	Quote     pricing.Quote
	AddOns    []pricing.AddOnFee
	Caution   *decimal.Decimal
	At        time.Time
}

// New creates a Pending booking. Price is frozen from the quote.
func New(p NewParams) (*Booking, error) {
	if p.Quote.FinalPrice.IsNegative() {
		return nil, pricing.ErrInvalidRange
	}
	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	addOns := make([]pricing.AddOnFee, len(p.AddOns))
	copy(addOns, p.AddOns)

	return &Booking{
		id:        id,
		listingID: p.ListingID,
		guestID:   p.GuestID,
		hostID:    p.HostID,
		span:      p.Span,
		quote:     p.Quote,
		addOns:    addOns,
		total:     pricing.Total(p.Quote, addOns),
		caution:   p.Caution,
		status:    StatusPending,
		history: []StatusChange{{
			Status:    StatusPending,
			At:        p.At,
			ActorID:   p.GuestID,
			ActorRole: user.RoleGuest,
		}},
		createdAt: p.At,
		updatedAt: p.At,
	}, nil
}

// Apply is the single transition function. Duplicate and stale deliveries return
// an Outcome with Applied=false and no error so callers can acknowledge them.
func (b *Booking) Apply(ev Event, in GuardInput) (Outcome, error) {
	r, ok := transitions[ev]
	if !ok {
		return Outcome{}, ErrInvalidEvent
	}

	from := b.status
	noop := Outcome{From: from, To: from}

	switch {
	case from == StatusCancelled:
		if r.async {
			noop.Reason = NoopStale
			return noop, nil
		}
		return noop, ErrInvalidTransition
	case from == r.to || from.rank() > r.to.rank():
		noop.Reason = NoopDuplicate
		return noop, nil
	case from != r.from:
		return noop, ErrInvalidTransition
	}

	switch ev {
	case EventPaymentSucceeded:
		if in.Policy == listing.PolicyManualApproval {
			noop.Reason = NoopAwaitingApproval
			return noop, nil
		}
		if !in.PaymentSettled {
			return noop, ErrPaymentNotSettled
		}
	case EventHostAccepted:
		if in.Policy != listing.PolicyManualApproval {
			return noop, ErrApprovalNotRequired
		}
	case EventCheckIn:
		if !b.InUsageWindow(in.At) {
			return noop, ErrOutsideUsageWindow
		}
		if err := verification.Require(in.Verification); err != nil {
			return noop, err
		}
	}

	b.moveTo(r.to, in.At, in.Actor, "")
	return Outcome{Applied: true, From: from, To: r.to}, nil
}

// Cancel is allowed before the rental starts. Once a confirmed booking reaches its start
// only admins and the system may still cancel it. Refund handling is the caller's concern.
func (b *Booking) Cancel(actor user.Actor, reason string, at time.Time) error {
	switch b.status {
	case StatusCompleted, StatusCancelled:
		return ErrAlreadyTerminal
	case StatusInProgress:
		return ErrInvalidTransition
	case StatusConfirmed:
		if !at.Before(b.span.Start()) && !actor.IsPrivileged() {
			return ErrRentalStarted
		}
	}
	b.cancelReason = &reason
	b.moveTo(StatusCancelled, at, actor, reason)
	return nil
}

func (b *Booking) moveTo(to Status, at time.Time, actor user.Actor, reason string) {
	b.status = to
	b.updatedAt = at
	b.history = append(b.history, StatusChange{
		Status:    to,
		At:        at,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Reason:    reason,
	})
}

// InUsageWindow reports whether at falls within [start, end], both ends included.
func (b *Booking) InUsageWindow(at time.Time) bool {
	return !at.Before(b.span.Start()) && !at.After(b.span.End())
}

// IsParty reports whether the user is the guest or the host of the booking.
func (b *Booking) IsParty(userID uuid.UUID) bool {
	return userID == b.guestID || userID == b.hostID
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) ListingID() uuid.UUID       { return b.listingID }
func (b *Booking) GuestID() uuid.UUID         { return b.guestID }
func (b *Booking) HostID() uuid.UUID          { return b.hostID }
func (b *Booking) Span() availability.Span    { return b.span }
func (b *Booking) Quote() pricing.Quote       { return b.quote }
func (b *Booking) AddOns() []pricing.AddOnFee { return b.addOns }
func (b *Booking) Total() decimal.Decimal     { return b.total }
func (b *Booking) Currency() string           { return b.quote.Currency }
func (b *Booking) Caution() *decimal.Decimal  { return patch.Clone(b.caution) }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) History() []StatusChange    { return b.history }
func (b *Booking) CancelReason() *string      { return b.cancelReason }
func (b *Booking) Version() int               { return b.version }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }
