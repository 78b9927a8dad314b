package commands

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking_mock.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/payment"
	"rental-engine/internal/domain/pricing"
	"rental-engine/internal/domain/user"
	"rental-engine/internal/domain/verification"
	"rental-engine/internal/infra"
	"rental-engine/internal/pkg/clock"
	"rental-engine/internal/pkg/errs"
	"rental-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	ListingID uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	AddOns    []pricing.AddOnRequest
}

type CancelRequest struct {
	BookingID uuid.UUID
	Reason    string
	// RefundAmount overrides the full refund. Admins only.
	RefundAmount *decimal.Decimal
}

type SetAvailabilityRequest struct {
	ListingID     uuid.UUID
	Date          time.Time
	Available     bool
	PriceOverride *decimal.Decimal
}

type BookingResult struct {
	Booking *booking.Booking
	// Intent is nil when no payment was opened.
	Intent *payment.Intent
}

type TransitionResult struct {
	Booking *booking.Booking
	Outcome booking.Outcome
}

type CancelResult struct {
	Booking *booking.Booking
	Intent  *payment.Intent
	// RefundErr is set when the immediate refund attempt failed; a retry is scheduled.
	RefundErr error
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest, actor user.Actor) (*BookingResult, error)
	Transition(ctx context.Context, bookingID uuid.UUID, ev booking.Event, actor user.Actor) (*TransitionResult, error)
	Cancel(ctx context.Context, req CancelRequest, actor user.Actor) (*CancelResult, error)
	SetAvailability(ctx context.Context, req SetAvailabilityRequest, actor user.Actor) error
	UpsertListing(ctx context.Context, params listing.Params, actor user.Actor) (*listing.Listing, error)
}

type bookingUseCaseImpl struct {
	uow      shared.UnitOfWork
	verifier shared.VerificationService
	clock    clock.Clock
	flow     *paymentFlow
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	processor shared.PaymentProcessor,
	verifier shared.VerificationService,
	clk clock.Clock,
	settings Settings,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:      uow,
		verifier: verifier,
		clock:    clk,
		flow:     newPaymentFlow(uow, processor, clk, settings),
	}
}

// CreateBooking prices the request, then reserves the range and stores the booking in one
// transaction. Opening the payment afterwards is best effort; the guest can retry it.
func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, req CreateBookingRequest, actor user.Actor) (*BookingResult, error) {
	if actor.Role != user.RoleGuest && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	l, err := uc.uow.CommandReads().ListingByID(ctx, req.ListingID)
	if err != nil {
		return nil, storageErr(err, ErrListingNotFound)
	}
	if err := l.EnsureBookable(); err != nil {
		return nil, err
	}
	if l.IsHost(actor.ID) {
		return nil, ErrForbidden
	}

	quote, fees, err := l.Quote(req.StartAt, req.EndAt, req.AddOns)
	if err != nil {
		return nil, err
	}
	span, err := availability.NewSpan(req.StartAt, req.EndAt)
	if err != nil {
		return nil, pricing.ErrInvalidRange
	}

	now := uc.clock.Now()
	b, err := booking.New(booking.NewParams{
		ListingID: l.ID(),
		GuestID:   actor.ID,
		HostID:    l.HostID(),
		Span:      span,
		Quote:     quote,
		AddOns:    fees,
		Caution:   l.Caution(),
		At:        now,
	})
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Ledger().Reserve(ctx, l.ID(), span, b.ID()); err != nil {
			return storageErr(err, ErrListingNotFound)
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			return storageErr(err, ErrBookingNotFound)
		}
		ev := bookingEvent(b, now)
		ev.Amount = b.Total().StringFixed(2)
		ev.Currency = b.Currency()
		return enqueue(ctx, tx, TopicBookingCreated, ev)
	})
	if err != nil {
		if errs.Is(err, availability.ErrConflict) {
			slog.Info("booking rejected, range unavailable",
				"listing_id", l.ID(),
				"start_at", span.Start(),
				"end_at", span.End())
		}
		return nil, err
	}

	slog.Info("booking created",
		"booking_id", b.ID(),
		"listing_id", l.ID(),
		"total", b.Total().StringFixed(2))

	res, err := uc.flow.start(ctx, b)
	if err != nil {
		slog.Warn("booking created without payment intent", "booking_id", b.ID(), "error", err.Error())
		return &BookingResult{Booking: b}, nil
	}
	return &BookingResult{Booking: res.Booking, Intent: res.Intent}, nil
}

func (uc *bookingUseCaseImpl) Transition(ctx context.Context, bookingID uuid.UUID, ev booking.Event, actor user.Actor) (*TransitionResult, error) {
	current, err := uc.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		return nil, storageErr(err, ErrBookingNotFound)
	}
	if err := authorizeTransition(current, ev, actor); err != nil {
		return nil, err
	}

	// The verification lookup is remote and stays outside the transaction.
	status := verification.StatusNone
	if ev == booking.EventCheckIn {
		status, err = uc.verifier.Status(ctx, current.GuestID())
		if err != nil {
			slog.Warn("verification lookup failed", "guest_id", current.GuestID(), "error", err.Error())
			return nil, errs.Mark(err, ErrVerificationUnavailable)
		}
	}

	var result TransitionResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().LockByID(ctx, bookingID)
		if err != nil {
			return storageErr(err, ErrBookingNotFound)
		}
		l, err := tx.Reads().ListingByID(ctx, b.ListingID())
		if err != nil {
			return storageErr(err, ErrListingNotFound)
		}

		settled := false
		if ev == booking.EventPaymentSucceeded {
			settled, err = paymentSettled(ctx, tx, b, actor)
			if err != nil {
				return err
			}
		}

		now := uc.clock.Now()
		out, err := b.Apply(ev, booking.GuardInput{
			At:             now,
			Actor:          actor,
			Policy:         l.Policy(),
			PaymentSettled: settled,
			Verification:   status,
		})
		if err != nil {
			return err
		}
		result = TransitionResult{Booking: b, Outcome: out}
		if !out.Applied {
			return nil
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return storageErr(err, ErrBookingNotFound)
		}
		bev := bookingEvent(b, now)
		bev.From = out.From.String()
		return enqueue(ctx, tx, TopicBookingChanged, bev)
	})
	if err != nil {
		return nil, err
	}

	if result.Outcome.Applied {
		slog.Info("booking transitioned",
			"booking_id", bookingID,
			"event", ev,
			"from", result.Outcome.From,
			"to", result.Outcome.To)
	} else {
		slog.Info("booking event ignored",
			"booking_id", bookingID,
			"event", ev,
			"reason", result.Outcome.Reason)
	}
	return &result, nil
}

// paymentSettled treats an admin-sent PaymentSucceeded as a manual settlement.
func paymentSettled(ctx context.Context, tx shared.Tx, b *booking.Booking, actor user.Actor) (bool, error) {
	if actor.IsAdmin() {
		return true, nil
	}
	in, err := tx.Payments().LockLatestByBooking(ctx, b.ID())
	if infra.IsKind(err, infra.KindNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storageErr(err, ErrPaymentNotFound)
	}
	return in.Covers(b.Total()), nil
}

func authorizeTransition(b *booking.Booking, ev booking.Event, actor user.Actor) error {
	switch ev {
	case booking.EventPaymentSucceeded:
		if actor.IsPrivileged() {
			return nil
		}
	case booking.EventHostAccepted:
		if actor.ID == b.HostID() || actor.IsPrivileged() {
			return nil
		}
	case booking.EventCheckIn, booking.EventCheckOut:
		if b.IsParty(actor.ID) || actor.IsPrivileged() {
			return nil
		}
	default:
		return booking.ErrInvalidEvent
	}
	return ErrForbidden
}

// Cancel releases the range and opens a refund for a settled payment in the same
// transaction. The first refund attempt runs right after commit.
func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, req CancelRequest, actor user.Actor) (*CancelResult, error) {
	current, err := uc.uow.CommandReads().BookingByID(ctx, req.BookingID)
	if err != nil {
		return nil, storageErr(err, ErrBookingNotFound)
	}
	if !current.IsParty(actor.ID) && !actor.IsPrivileged() {
		return nil, ErrForbidden
	}
	if req.RefundAmount != nil && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	refundID, err := uc.cancelInTx(ctx, req, actor)
	if err != nil {
		return nil, err
	}

	result := &CancelResult{}
	if refundID != nil {
		_, result.RefundErr = uc.flow.refunds.attempt(ctx, *refundID)
		if result.RefundErr != nil && !errs.Is(result.RefundErr, ErrRefundFailure) {
			return nil, result.RefundErr
		}
	}

	cur, err := uc.flow.current(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	result.Booking = cur.Booking
	result.Intent = cur.Intent
	return result, nil
}

func (uc *bookingUseCaseImpl) cancelInTx(ctx context.Context, req CancelRequest, actor user.Actor) (*uuid.UUID, error) {
	var refundID *uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		refundID = nil
		b, err := tx.Bookings().LockByID(ctx, req.BookingID)
		if err != nil {
			return storageErr(err, ErrBookingNotFound)
		}
		now := uc.clock.Now()
		if err := b.Cancel(actor, req.Reason, now); err != nil {
			return err
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return storageErr(err, ErrBookingNotFound)
		}
		if _, err := tx.Ledger().Release(ctx, b.ListingID(), b.Span()); err != nil {
			return storageErr(err, ErrListingNotFound)
		}
		ev := bookingEvent(b, now)
		ev.Reason = req.Reason
		if err := enqueue(ctx, tx, TopicBookingCancelled, ev); err != nil {
			return err
		}

		in, err := tx.Payments().LockLatestByBooking(ctx, b.ID())
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		if err != nil {
			return storageErr(err, ErrPaymentNotFound)
		}
		if in.Status() != payment.IntentSucceeded {
			return nil
		}
		if err := in.RequestRefund(req.RefundAmount, req.Reason, now); err != nil {
			return err
		}
		if err := tx.Payments().Save(ctx, in); err != nil {
			return storageErr(err, ErrPaymentNotFound)
		}
		id := in.ID()
		refundID = &id
		rev := bookingEvent(b, now).withPayment(in, in.Refund().Amount.StringFixed(2))
		rev.Reason = req.Reason
		return enqueue(ctx, tx, TopicRefundRequested, rev)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("booking cancelled",
		"booking_id", req.BookingID,
		"actor_role", actor.Role,
		"refund_requested", refundID != nil)
	return refundID, nil
}

func (uc *bookingUseCaseImpl) SetAvailability(ctx context.Context, req SetAvailabilityRequest, actor user.Actor) error {
	l, err := uc.uow.CommandReads().ListingByID(ctx, req.ListingID)
	if err != nil {
		return storageErr(err, ErrListingNotFound)
	}
	if !l.IsHost(actor.ID) && !actor.IsPrivileged() {
		return ErrForbidden
	}
	if req.PriceOverride != nil && (req.PriceOverride.IsNegative() || !pricing.HasCentPrecision(*req.PriceOverride)) {
		return ErrInvalidPriceOverride
	}
	day := availability.Day{
		ListingID:     req.ListingID,
		Date:          availability.DayOf(req.Date),
		Available:     req.Available,
		PriceOverride: req.PriceOverride,
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return storageErr(tx.Ledger().SetDay(ctx, day), ErrListingNotFound)
	})
}

// UpsertListing records the booking-relevant snapshot of a catalogue listing.
func (uc *bookingUseCaseImpl) UpsertListing(ctx context.Context, params listing.Params, actor user.Actor) (*listing.Listing, error) {
	switch {
	case actor.IsPrivileged():
	case actor.Role == user.RoleHost:
		params.HostID = actor.ID
	default:
		return nil, ErrForbidden
	}

	existing, err := uc.uow.CommandReads().ListingByID(ctx, params.ID)
	switch {
	case err == nil:
		if !existing.IsHost(actor.ID) && !actor.IsPrivileged() {
			return nil, ErrForbidden
		}
	case !infra.IsKind(err, infra.KindNotFound):
		return nil, storageErr(err, ErrListingNotFound)
	}

	l, err := listing.New(params)
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return storageErr(tx.Listings().Upsert(ctx, l), ErrListingNotFound)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}
