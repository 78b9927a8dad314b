package commands

//go:generate mockgen -source=maintenance.go -destination=../../../tests/mock/commands/maintenance_mock.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/user"
	"rental-engine/internal/pkg/clock"
	"rental-engine/internal/pkg/errs"
	"rental-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	expiryReason       = "payment not completed in time"
	maxRelayRetryDelay = time.Hour
	defaultRelayLease  = time.Minute
)

// MaintenanceCommands are driven by background workers.
type MaintenanceCommands interface {
	RetryDueRefunds(ctx context.Context) (int, error)
	ExpireStalePending(ctx context.Context) (int, error)
	RelayOutbox(ctx context.Context) (int, error)
}

type maintenanceUseCaseImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	clock     clock.Clock
	settings  Settings
	refunds   *refundRunner
	bookings  *bookingUseCaseImpl
}

func NewMaintenanceUseCase(
	uow shared.UnitOfWork,
	processor shared.PaymentProcessor,
	publisher shared.EventPublisher,
	clk clock.Clock,
	settings Settings,
) MaintenanceCommands {
	flow := newPaymentFlow(uow, processor, clk, settings)
	return &maintenanceUseCaseImpl{
		uow:       uow,
		publisher: publisher,
		clock:     clk,
		settings:  settings,
		refunds:   flow.refunds,
		bookings:  &bookingUseCaseImpl{uow: uow, clock: clk, flow: flow},
	}
}

// RetryDueRefunds returns the number of refunds that succeeded in this pass.
func (uc *maintenanceUseCaseImpl) RetryDueRefunds(ctx context.Context) (int, error) {
	ids, err := uc.uow.CommandReads().DueRefunds(ctx, uc.clock.Now(), uc.settings.RefundBatch)
	if err != nil {
		return 0, storageErr(err, ErrPaymentNotFound)
	}
	succeeded := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return succeeded, ctx.Err()
		}
		_, err := uc.refunds.attempt(ctx, id)
		switch {
		case err == nil:
			succeeded++
		case errs.Is(err, ErrRefundFailure):
			// recorded and rescheduled by the runner
		default:
			slog.Error("refund retry aborted", "payment_id", id, "error", err.Error())
		}
	}
	return succeeded, nil
}

// ExpireStalePending cancels bookings that stayed Pending longer than the configured TTL.
func (uc *maintenanceUseCaseImpl) ExpireStalePending(ctx context.Context) (int, error) {
	if uc.settings.PendingTTL <= 0 {
		return 0, nil
	}
	cutoff := uc.clock.Now().Add(-uc.settings.PendingTTL)
	ids, err := uc.uow.CommandReads().StalePendingBookings(ctx, cutoff, uc.settings.SweepBatch)
	if err != nil {
		return 0, storageErr(err, ErrBookingNotFound)
	}

	expired := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}
		_, err := uc.bookings.cancelInTx(ctx, CancelRequest{BookingID: id, Reason: expiryReason}, user.SystemActor())
		switch {
		case err == nil:
			expired++
		case errs.IsAny(err, booking.ErrAlreadyTerminal, booking.ErrInvalidTransition):
			// state moved on since the scan
		default:
			slog.Error("failed to expire pending booking", "booking_id", id, "error", err.Error())
		}
	}
	return expired, nil
}

// RelayOutbox publishes queued notification jobs. Delivery is at least once. Jobs are
// claimed in one transaction and settled in another; publishing happens in between.
func (uc *maintenanceUseCaseImpl) RelayOutbox(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	lease := uc.settings.RelayLease
	if lease <= 0 {
		lease = defaultRelayLease
	}

	var jobs []shared.NotificationJob
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		jobs, err = tx.Notifications().ClaimDue(ctx, now, now.Add(lease), uc.settings.RelayBatch)
		return err
	})
	if err != nil {
		return 0, storageErr(err, ErrDatabaseOperationFailed)
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	failures := make(map[uuid.UUID]error, len(jobs))
	for _, job := range jobs {
		if ctx.Err() != nil {
			// unpublished jobs come back when their lease runs out
			break
		}
		if pubErr := uc.publisher.Publish(ctx, job.Topic, job.Payload); pubErr != nil {
			slog.Warn("failed to publish notification job",
				"job_id", job.ID,
				"topic", job.Topic,
				"attempts", job.Attempts+1,
				"error", pubErr.Error())
			failures[job.ID] = pubErr
			continue
		}
		failures[job.ID] = nil
	}

	sent := 0
	err = uc.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		for _, job := range jobs {
			pubErr, attempted := failures[job.ID]
			switch {
			case !attempted:
			case pubErr != nil:
				next := now.Add(relayBackoff(uc.settings.RelayRetryDelay, job.Attempts))
				if err := tx.Notifications().MarkFailed(ctx, job.ID, pubErr.Error(), next); err != nil {
					return err
				}
			default:
				if err := tx.Notifications().MarkSent(ctx, job.ID, now); err != nil {
					return err
				}
				sent++
			}
		}
		return nil
	})
	if err != nil {
		return 0, storageErr(err, ErrDatabaseOperationFailed)
	}
	return sent, nil
}

func relayBackoff(base time.Duration, attempts int) time.Duration {
	if base <= 0 {
		base = time.Second
	}
	wait := base
	for i := 0; i < attempts && wait < maxRelayRetryDelay; i++ {
		wait *= 2
	}
	if wait > maxRelayRetryDelay {
		return maxRelayRetryDelay
	}
	return wait
}
