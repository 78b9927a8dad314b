package commands

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/commands/payment_mock.go -package=commandsmock

import (
	"context"
	"log/slog"
	"strings"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/payment"
	"rental-engine/internal/domain/user"
	"rental-engine/internal/infra"
	"rental-engine/internal/pkg/clock"
	"rental-engine/internal/pkg/errs"
	"rental-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentResult struct {
	Booking *booking.Booking
	Intent  *payment.Intent
}

// WebhookEvent is a processor notification. An empty Status means the processor must be
// asked for the current state of ProviderRef.
type WebhookEvent struct {
	DeliveryID  string
	ProviderRef string
	Status      shared.ProcessorStatus
}

type WebhookResult struct {
	Duplicate bool
	Outcome   booking.Outcome
}

type PaymentCommands interface {
	StartPayment(ctx context.Context, bookingID uuid.UUID, actor user.Actor) (*PaymentResult, error)
	ConfirmPayment(ctx context.Context, bookingID uuid.UUID, actor user.Actor) (*PaymentResult, error)
	HandlePaymentWebhook(ctx context.Context, ev WebhookEvent) (*WebhookResult, error)
	ResolveRefund(ctx context.Context, bookingID uuid.UUID, note string, actor user.Actor) (*PaymentResult, error)
}

type paymentUseCaseImpl struct {
	flow    *paymentFlow
	deduper shared.WebhookDeduper
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	processor shared.PaymentProcessor,
	deduper shared.WebhookDeduper,
	clk clock.Clock,
	settings Settings,
) PaymentCommands {
	return &paymentUseCaseImpl{
		flow:    newPaymentFlow(uow, processor, clk, settings),
		deduper: deduper,
	}
}

func (uc *paymentUseCaseImpl) StartPayment(ctx context.Context, bookingID uuid.UUID, actor user.Actor) (*PaymentResult, error) {
	b, err := uc.flow.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		return nil, storageErr(err, ErrBookingNotFound)
	}
	if actor.ID != b.GuestID() && !actor.IsPrivileged() {
		return nil, ErrForbidden
	}
	return uc.flow.start(ctx, b)
}

func (uc *paymentUseCaseImpl) ConfirmPayment(ctx context.Context, bookingID uuid.UUID, actor user.Actor) (*PaymentResult, error) {
	reads := uc.flow.uow.CommandReads()
	b, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		return nil, storageErr(err, ErrBookingNotFound)
	}
	if actor.ID != b.GuestID() && !actor.IsPrivileged() {
		return nil, ErrForbidden
	}
	in, err := reads.LatestIntent(ctx, bookingID)
	if err != nil {
		return nil, storageErr(err, ErrPaymentNotFound)
	}
	if in.Status() != payment.IntentPending {
		return &PaymentResult{Booking: b, Intent: in}, nil
	}

	if _, err := uc.flow.settle(ctx, in.ProviderRef(), ""); err != nil {
		return nil, err
	}
	return uc.flow.current(ctx, bookingID)
}

// HandlePaymentWebhook tolerates redelivery and out-of-order delivery. A delivery is
// forgotten again when processing fails so the processor's retry is not swallowed.
func (uc *paymentUseCaseImpl) HandlePaymentWebhook(ctx context.Context, ev WebhookEvent) (*WebhookResult, error) {
	ev.ProviderRef = strings.TrimSpace(ev.ProviderRef)
	if ev.ProviderRef == "" {
		return nil, ErrInvalidWebhook
	}
	switch ev.Status {
	case "", shared.ProcessorPending, shared.ProcessorSucceeded, shared.ProcessorFailed:
	default:
		return nil, ErrInvalidWebhook
	}

	key, dedupe := webhookDedupeKey(ev)
	if dedupe {
		first, err := uc.deduper.FirstDelivery(ctx, key)
		if err != nil {
			slog.Warn("webhook dedupe unavailable, processing anyway", "key", key, "error", err.Error())
			first = true
		}
		if !first {
			slog.Info("duplicate payment webhook ignored", "key", key)
			return &WebhookResult{Duplicate: true}, nil
		}
	}

	out, err := uc.flow.settle(ctx, ev.ProviderRef, ev.Status)
	if err != nil {
		if dedupe {
			if fErr := uc.deduper.Forget(context.WithoutCancel(ctx), key); fErr != nil {
				slog.Warn("failed to forget webhook delivery", "key", key, "error", fErr.Error())
			}
		}
		return nil, err
	}
	return &WebhookResult{Outcome: out}, nil
}

// webhookDedupeKey identifies a delivery. A notification with neither a delivery id nor a
// status says only "look again", so successive ones are distinct and all reach settle.
func webhookDedupeKey(ev WebhookEvent) (string, bool) {
	switch {
	case ev.DeliveryID != "":
		return ev.DeliveryID, true
	case ev.Status != "":
		return ev.ProviderRef + ":" + string(ev.Status), true
	default:
		return "", false
	}
}

func (uc *paymentUseCaseImpl) ResolveRefund(ctx context.Context, bookingID uuid.UUID, note string, actor user.Actor) (*PaymentResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	err := uc.flow.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		in, err := tx.Payments().LockLatestByBooking(ctx, bookingID)
		if err != nil {
			return storageErr(err, ErrPaymentNotFound)
		}
		b, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			return storageErr(err, ErrBookingNotFound)
		}
		now := uc.flow.clock.Now()
		if err := in.ResolveRefundManually(actor.ID, note, now); err != nil {
			return err
		}
		if err := tx.Payments().Save(ctx, in); err != nil {
			return storageErr(err, ErrPaymentNotFound)
		}
		ev := bookingEvent(b, now).withPayment(in, in.Refund().Amount.StringFixed(2))
		ev.Reason = note
		return enqueue(ctx, tx, TopicRefundResolved, ev)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("refund resolved manually", "booking_id", bookingID, "admin_id", actor.ID)
	return uc.flow.current(ctx, bookingID)
}

// paymentFlow holds the payment steps shared by booking and payment use cases.
type paymentFlow struct {
	uow       shared.UnitOfWork
	processor shared.PaymentProcessor
	clock     clock.Clock
	settings  Settings
	refunds   *refundRunner
}

func newPaymentFlow(uow shared.UnitOfWork, processor shared.PaymentProcessor, clk clock.Clock, settings Settings) *paymentFlow {
	return &paymentFlow{
		uow:       uow,
		processor: processor,
		clock:     clk,
		settings:  settings,
		refunds: &refundRunner{
			uow:       uow,
			processor: processor,
			clock:     clk,
			settings:  settings,
		},
	}
}

func (f *paymentFlow) current(ctx context.Context, bookingID uuid.UUID) (*PaymentResult, error) {
	reads := f.uow.CommandReads()
	b, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		return nil, storageErr(err, ErrBookingNotFound)
	}
	in, err := reads.LatestIntent(ctx, bookingID)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, storageErr(err, ErrPaymentNotFound)
	}
	return &PaymentResult{Booking: b, Intent: in}, nil
}

// start opens a payment intent for the booking total. An open or settled intent is reused.
func (f *paymentFlow) start(ctx context.Context, b *booking.Booking) (*PaymentResult, error) {
	if b.Status() != booking.StatusPending && b.Status() != booking.StatusConfirmed {
		return nil, booking.ErrInvalidTransition
	}
	latest, err := f.uow.CommandReads().LatestIntent(ctx, b.ID())
	switch {
	case err == nil && latest.Status() != payment.IntentFailed:
		return &PaymentResult{Booking: b, Intent: latest}, nil
	case err != nil && !infra.IsKind(err, infra.KindNotFound):
		return nil, storageErr(err, ErrPaymentNotFound)
	}
	if b.Status() == booking.StatusConfirmed && latest == nil {
		// confirmed by the host before payment; payment is still owed
		slog.Info("collecting payment for host-confirmed booking", "booking_id", b.ID())
	}

	intentID := uuid.New()
	callCtx, cancel := withTimeout(ctx, f.settings.ProcessorTimeout)
	res, err := f.processor.CreateIntent(callCtx, shared.IntentRequest{
		BookingID:      b.ID(),
		Amount:         b.Total(),
		Currency:       b.Currency(),
		Description:    "booking " + b.ID().String(),
		IdempotencyKey: intentID.String(),
	})
	cancel()
	if err != nil {
		slog.Warn("payment intent creation failed", "booking_id", b.ID(), "error", err.Error())
		return nil, errs.Mark(err, ErrPaymentFailure)
	}

	in, err := payment.NewIntent(payment.NewIntentParams{
		ID:          intentID,
		BookingID:   b.ID(),
		ProviderRef: res.ProviderRef,
		Amount:      b.Total(),
		Currency:    b.Currency(),
		At:          f.clock.Now(),
	})
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentFailure)
	}
	err = f.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		return storageErr(tx.Payments().Create(ctx, in), ErrPaymentNotFound)
	})
	if err != nil {
		return nil, err
	}

	if res.Status != shared.ProcessorPending {
		if _, err := f.settle(ctx, res.ProviderRef, res.Status); err != nil {
			return nil, err
		}
	}
	return f.current(ctx, b.ID())
}

// settle applies a processor status to the intent and drives the booking with it.
// An empty status is looked up through the processor first.
func (f *paymentFlow) settle(ctx context.Context, providerRef string, status shared.ProcessorStatus) (booking.Outcome, error) {
	if status == "" {
		callCtx, cancel := withTimeout(ctx, f.settings.ProcessorTimeout)
		res, err := f.processor.Confirm(callCtx, providerRef)
		cancel()
		if err != nil {
			return booking.Outcome{}, errs.Mark(err, ErrPaymentFailure)
		}
		status = res.Status
	}

	var (
		outcome  booking.Outcome
		refundID *uuid.UUID
	)
	err := f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		refundID = nil
		in, err := tx.Payments().LockByProviderRef(ctx, providerRef)
		if err != nil {
			return storageErr(err, ErrPaymentNotFound)
		}
		b, err := tx.Bookings().LockByID(ctx, in.BookingID())
		if err != nil {
			return storageErr(err, ErrBookingNotFound)
		}
		outcome = booking.Outcome{From: b.Status(), To: b.Status()}
		now := f.clock.Now()

		switch status {
		case shared.ProcessorFailed:
			if !in.MarkFailed(now) {
				return nil
			}
			if err := tx.Payments().Save(ctx, in); err != nil {
				return storageErr(err, ErrPaymentNotFound)
			}
			ev := bookingEvent(b, now).withPayment(in, in.Amount().StringFixed(2))
			return enqueue(ctx, tx, TopicPaymentFailed, ev)
		case shared.ProcessorSucceeded:
		default:
			return nil
		}

		dirty := in.MarkSucceeded(now)
		if dirty {
			ev := bookingEvent(b, now).withPayment(in, in.Amount().StringFixed(2))
			if err := enqueue(ctx, tx, TopicPaymentSucceeded, ev); err != nil {
				return err
			}
		}

		if b.Status() == booking.StatusCancelled && in.Status() == payment.IntentSucceeded && in.Refund().Status == payment.RefundNone {
			if err := in.RequestRefund(nil, "payment settled after cancellation", now); err != nil {
				return err
			}
			dirty = true
			id := in.ID()
			refundID = &id
			ev := bookingEvent(b, now).withPayment(in, in.Refund().Amount.StringFixed(2))
			ev.Reason = in.Refund().Reason
			if err := enqueue(ctx, tx, TopicRefundRequested, ev); err != nil {
				return err
			}
		}
		if dirty {
			if err := tx.Payments().Save(ctx, in); err != nil {
				return storageErr(err, ErrPaymentNotFound)
			}
		}

		l, err := tx.Reads().ListingByID(ctx, b.ListingID())
		if err != nil {
			return storageErr(err, ErrListingNotFound)
		}
		out, err := b.Apply(booking.EventPaymentSucceeded, booking.GuardInput{
			At:             now,
			Actor:          user.SystemActor(),
			Policy:         l.Policy(),
			PaymentSettled: in.Covers(b.Total()),
		})
		if errs.Is(err, booking.ErrPaymentNotSettled) {
			slog.Warn("payment does not cover booking total",
				"booking_id", b.ID(),
				"amount", in.Amount().String(),
				"total", b.Total().String())
			return nil
		}
		if err != nil {
			return err
		}
		outcome = out
		if !out.Applied {
			return nil
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return storageErr(err, ErrBookingNotFound)
		}
		ev := bookingEvent(b, now)
		ev.From = out.From.String()
		return enqueue(ctx, tx, TopicBookingChanged, ev)
	})
	if err != nil {
		return booking.Outcome{}, err
	}

	if outcome.Reason == booking.NoopStale {
		slog.Info("payment success for cancelled booking", "provider_ref", providerRef)
	}
	if refundID != nil {
		if _, err := f.refunds.attempt(ctx, *refundID); err != nil && !errs.Is(err, ErrRefundFailure) {
			return outcome, err
		}
	}
	return outcome, nil
}
