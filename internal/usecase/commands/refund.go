package commands

import (
	"context"
	"log/slog"
	"time"

	"rental-engine/internal/domain/payment"
	"rental-engine/internal/pkg/clock"
	"rental-engine/internal/pkg/errs"
	"rental-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// refundRunner performs one refund attempt: claim under lease, call the processor outside any
// transaction, then record the outcome. Booking, payment and maintenance use cases share it.
type refundRunner struct {
	uow       shared.UnitOfWork
	processor shared.PaymentProcessor
	clock     clock.Clock
	settings  Settings
}

func (r *refundRunner) attempt(ctx context.Context, intentID uuid.UUID) (payment.Refund, error) {
	var (
		refund  payment.Refund
		req     shared.RefundRequest
		claimed bool
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		in, err := tx.Payments().LockByID(ctx, intentID)
		if err != nil {
			return storageErr(err, ErrPaymentNotFound)
		}
		claimed = in.ClaimRefund(r.clock.Now(), r.settings.Refunds)
		refund = in.Refund()
		if !claimed {
			return nil
		}
		req = shared.RefundRequest{
			ProviderRef:    in.ProviderRef(),
			Amount:         refund.Amount,
			Partial:        refund.Partial,
			IdempotencyKey: "refund-" + in.ID().String(),
		}
		return storageErr(tx.Payments().Save(ctx, in), ErrPaymentNotFound)
	})
	if err != nil || !claimed {
		return refund, err
	}

	callCtx, cancel := withTimeout(ctx, r.settings.ProcessorTimeout)
	callErr := r.processor.Refund(callCtx, req)
	cancel()

	// The processor already acted; the outcome is recorded even if the caller went away.
	err = r.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		in, err := tx.Payments().LockByID(ctx, intentID)
		if err != nil {
			return storageErr(err, ErrPaymentNotFound)
		}
		if in.Refund().Status != payment.RefundProcessing {
			refund = in.Refund()
			slog.Warn("refund settled elsewhere during processor call",
				"payment_id", intentID,
				"refund_status", refund.Status)
			return nil
		}
		b, err := tx.Reads().BookingByID(ctx, in.BookingID())
		if err != nil {
			return storageErr(err, ErrBookingNotFound)
		}

		now := r.clock.Now()
		topic := ""
		if callErr == nil {
			in.RecordRefundSuccess(now)
			topic = TopicRefundSucceeded
		} else if in.RecordRefundFailure(callErr.Error(), now, r.settings.Refunds) {
			topic = TopicRefundEscalated
		}
		if err := tx.Payments().Save(ctx, in); err != nil {
			return storageErr(err, ErrPaymentNotFound)
		}
		refund = in.Refund()
		if topic == "" {
			return nil
		}
		ev := bookingEvent(b, now).withPayment(in, refund.Amount.StringFixed(2))
		if callErr != nil {
			ev.Reason = callErr.Error()
		}
		return enqueue(ctx, tx, topic, ev)
	})
	if err != nil {
		return refund, err
	}

	if callErr != nil {
		level := slog.LevelWarn
		if refund.Status == payment.RefundEscalated {
			level = slog.LevelError
		}
		slog.Log(ctx, level, "refund attempt failed",
			"payment_id", intentID,
			"attempts", refund.Attempts,
			"refund_status", refund.Status,
			"error", callErr.Error())
		return refund, errs.Mark(callErr, ErrRefundFailure)
	}
	return refund, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
