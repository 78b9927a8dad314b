//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/user"
	"rental-engine/internal/domain/verification"
	"rental-engine/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	system = user.SystemActor()
	admin  = user.Actor{Role: user.RoleAdmin}
)

func newBooking(t *testing.T) (*booking.Booking, *builder.BookingBuilder) {
	t.Helper()
	b := builder.NewBookingBuilder()
	bk, err := b.BuildDomain()
	require.NoError(t, err)
	return bk, b
}

func settled(at time.Time) booking.GuardInput {
	return booking.GuardInput{At: at, Actor: system, Policy: listing.PolicyInstant, PaymentSettled: true}
}

// drive moves a fresh booking along the happy path up to the requested status.
func drive(t *testing.T, to booking.Status) (*booking.Booking, *builder.BookingBuilder) {
	t.Helper()
	bk, b := newBooking(t)
	if to == booking.StatusPending {
		return bk, b
	}
	_, err := bk.Apply(booking.EventPaymentSucceeded, settled(b.CreatedAt))
	require.NoError(t, err)
	if to == booking.StatusConfirmed {
		return bk, b
	}
	_, err = bk.Apply(booking.EventCheckIn, booking.GuardInput{
		At: b.StartAt, Actor: user.Actor{ID: b.GuestID, Role: user.RoleGuest}, Verification: verification.StatusApproved,
	})
	require.NoError(t, err)
	if to == booking.StatusInProgress {
		return bk, b
	}
	_, err = bk.Apply(booking.EventCheckOut, booking.GuardInput{At: b.EndAt, Actor: admin})
	require.NoError(t, err)
	return bk, b
}

func TestNewBooking(t *testing.T) {
	bk, b := newBooking(t)

	assert.Equal(t, booking.StatusPending, bk.Status())
	assert.True(t, bk.Total().Equal(decimal.RequireFromString("121.50")))
	assert.Equal(t, "EUR", bk.Currency())
	require.Len(t, bk.History(), 1)
	assert.Equal(t, booking.StatusPending, bk.History()[0].Status)
	assert.Equal(t, b.GuestID, bk.History()[0].ActorID)
	assert.True(t, bk.IsParty(b.GuestID))
	assert.True(t, bk.IsParty(b.HostID))
}

type applyCase struct {
	name    string
	from    booking.Status
	event   booking.Event
	input   func(b *builder.BookingBuilder) booking.GuardInput
	errIs   error
	applied bool
	reason  booking.NoopReason
	want    booking.Status
}

func TestApply(t *testing.T) {
	instant := func(b *builder.BookingBuilder) booking.GuardInput { return settled(b.CreatedAt) }
	manual := func(b *builder.BookingBuilder) booking.GuardInput {
		return booking.GuardInput{At: b.CreatedAt, Actor: user.Actor{ID: b.HostID, Role: user.RoleHost}, Policy: listing.PolicyManualApproval, PaymentSettled: true}
	}
	checkIn := func(status verification.Status, offset time.Duration) func(b *builder.BookingBuilder) booking.GuardInput {
		return func(b *builder.BookingBuilder) booking.GuardInput {
			return booking.GuardInput{At: b.StartAt.Add(offset), Actor: user.Actor{ID: b.GuestID, Role: user.RoleGuest}, Verification: status}
		}
	}

	cases := []applyCase{
		{name: "payment confirms instant listing", from: booking.StatusPending, event: booking.EventPaymentSucceeded, input: instant, applied: true, want: booking.StatusConfirmed},
		{
			name: "partial payment does not confirm", from: booking.StatusPending, event: booking.EventPaymentSucceeded,
			input: func(b *builder.BookingBuilder) booking.GuardInput {
				in := settled(b.CreatedAt)
				in.PaymentSettled = false
				return in
			},
			errIs: booking.ErrPaymentNotSettled, want: booking.StatusPending,
		},
		{
			name: "payment waits for host on manual approval listing", from: booking.StatusPending, event: booking.EventPaymentSucceeded,
			input: manual, reason: booking.NoopAwaitingApproval, want: booking.StatusPending,
		},
		{name: "host accepts manual approval listing", from: booking.StatusPending, event: booking.EventHostAccepted, input: manual, applied: true, want: booking.StatusConfirmed},
		{name: "host accept on instant listing is rejected", from: booking.StatusPending, event: booking.EventHostAccepted, input: instant, errIs: booking.ErrApprovalNotRequired, want: booking.StatusPending},
		{name: "duplicate payment success is a no-op", from: booking.StatusConfirmed, event: booking.EventPaymentSucceeded, input: instant, reason: booking.NoopDuplicate, want: booking.StatusConfirmed},
		{name: "late payment success after check-in is a no-op", from: booking.StatusInProgress, event: booking.EventPaymentSucceeded, input: instant, reason: booking.NoopDuplicate, want: booking.StatusInProgress},
		{name: "payment success on cancelled booking is a no-op", from: booking.StatusCancelled, event: booking.EventPaymentSucceeded, input: instant, reason: booking.NoopStale, want: booking.StatusCancelled},
		{name: "host accept on cancelled booking is illegal", from: booking.StatusCancelled, event: booking.EventHostAccepted, input: manual, errIs: booking.ErrInvalidTransition, want: booking.StatusCancelled},
		{name: "check-in from pending is illegal", from: booking.StatusPending, event: booking.EventCheckIn, input: checkIn(verification.StatusApproved, 0), errIs: booking.ErrInvalidTransition, want: booking.StatusPending},
		{name: "check-in when approved and in window", from: booking.StatusConfirmed, event: booking.EventCheckIn, input: checkIn(verification.StatusApproved, time.Hour), applied: true, want: booking.StatusInProgress},
		{name: "check-in before start", from: booking.StatusConfirmed, event: booking.EventCheckIn, input: checkIn(verification.StatusApproved, -time.Minute), errIs: booking.ErrOutsideUsageWindow, want: booking.StatusConfirmed},
		{name: "check-in exactly at end is allowed", from: booking.StatusConfirmed, event: booking.EventCheckIn, input: checkIn(verification.StatusApproved, 72*time.Hour), applied: true, want: booking.StatusInProgress},
		{name: "check-in after end", from: booking.StatusConfirmed, event: booking.EventCheckIn, input: checkIn(verification.StatusApproved, 72*time.Hour+time.Second), errIs: booking.ErrOutsideUsageWindow, want: booking.StatusConfirmed},
		{name: "check-in while verification pending", from: booking.StatusConfirmed, event: booking.EventCheckIn, input: checkIn(verification.StatusPending, 0), errIs: verification.ErrVerificationRequired, want: booking.StatusConfirmed},
		{name: "check-in with rejected verification", from: booking.StatusConfirmed, event: booking.EventCheckIn, input: checkIn(verification.StatusRejected, 0), errIs: verification.ErrVerificationRequired, want: booking.StatusConfirmed},
		{name: "check-out completes", from: booking.StatusInProgress, event: booking.EventCheckOut, input: checkIn(verification.StatusNone, 72*time.Hour), applied: true, want: booking.StatusCompleted},
		{name: "check-out from confirmed is illegal", from: booking.StatusConfirmed, event: booking.EventCheckOut, input: checkIn(verification.StatusNone, 0), errIs: booking.ErrInvalidTransition, want: booking.StatusConfirmed},
		{name: "repeated check-out is a no-op", from: booking.StatusCompleted, event: booking.EventCheckOut, input: checkIn(verification.StatusNone, 80*time.Hour), reason: booking.NoopDuplicate, want: booking.StatusCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var (
				bk *booking.Booking
				b  *builder.BookingBuilder
			)
			if tc.from == booking.StatusCancelled {
				bk, b = newBooking(t)
				require.NoError(t, bk.Cancel(system, "payment timeout", b.CreatedAt))
			} else {
				bk, b = drive(t, tc.from)
			}
			historyBefore := len(bk.History())

			out, err := bk.Apply(tc.event, tc.input(b))
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.applied, out.Applied)
			assert.Equal(t, tc.reason, out.Reason)
			assert.Equal(t, tc.want, bk.Status())

			if tc.applied {
				require.Len(t, bk.History(), historyBefore+1)
				last := bk.History()[len(bk.History())-1]
				assert.Equal(t, tc.want, last.Status)
			} else {
				assert.Len(t, bk.History(), historyBefore, "no-ops and failures must not touch history")
			}
		})
	}

	t.Run("unknown event", func(t *testing.T) {
		bk, b := newBooking(t)
		_, err := bk.Apply(booking.Event("teleport"), settled(b.CreatedAt))
		assert.ErrorIs(t, err, booking.ErrInvalidEvent)
	})

	t.Run("redelivery is idempotent", func(t *testing.T) {
		bk, b := newBooking(t)
		for i := range 5 {
			out, err := bk.Apply(booking.EventPaymentSucceeded, settled(b.CreatedAt))
			require.NoError(t, err)
			assert.Equal(t, i == 0, out.Applied)
		}
		assert.Equal(t, booking.StatusConfirmed, bk.Status())
		assert.Len(t, bk.History(), 2)
	})
}

func TestCancel(t *testing.T) {
	cases := []struct {
		from  booking.Status
		errIs error
	}{
		{from: booking.StatusPending},
		{from: booking.StatusConfirmed},
		{from: booking.StatusInProgress, errIs: booking.ErrInvalidTransition},
		{from: booking.StatusCompleted, errIs: booking.ErrAlreadyTerminal},
	}
	for _, tc := range cases {
		t.Run("from "+tc.from.String(), func(t *testing.T) {
			bk, b := drive(t, tc.from)
			guest := user.Actor{ID: b.GuestID, Role: user.RoleGuest}
			err := bk.Cancel(guest, "change of plans", b.CreatedAt.Add(time.Hour))
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.from, bk.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, booking.StatusCancelled, bk.Status())
			require.NotNil(t, bk.CancelReason())
			assert.Equal(t, "change of plans", *bk.CancelReason())
			last := bk.History()[len(bk.History())-1]
			assert.Equal(t, user.RoleGuest, last.ActorRole)
			assert.Equal(t, "change of plans", last.Reason)
		})
	}

	t.Run("confirmed booking after start", func(t *testing.T) {
		actors := []struct {
			name  string
			actor func(b *builder.BookingBuilder) user.Actor
			errIs error
		}{
			{name: "guest", actor: func(b *builder.BookingBuilder) user.Actor { return user.Actor{ID: b.GuestID, Role: user.RoleGuest} }, errIs: booking.ErrRentalStarted},
			{name: "host", actor: func(b *builder.BookingBuilder) user.Actor { return user.Actor{ID: b.HostID, Role: user.RoleHost} }, errIs: booking.ErrRentalStarted},
			{name: "admin", actor: func(*builder.BookingBuilder) user.Actor { return admin }},
		}
		for _, tc := range actors {
			t.Run(tc.name, func(t *testing.T) {
				bk, b := drive(t, booking.StatusConfirmed)
				err := bk.Cancel(tc.actor(b), "late", b.StartAt)
				if tc.errIs != nil {
					require.ErrorIs(t, err, tc.errIs)
					assert.Equal(t, booking.StatusConfirmed, bk.Status())
					return
				}
				require.NoError(t, err)
				assert.Equal(t, booking.StatusCancelled, bk.Status())
			})
		}
	})

	t.Run("second cancel reports already terminal", func(t *testing.T) {
		bk, b := newBooking(t)
		require.NoError(t, bk.Cancel(system, "payment timeout", b.CreatedAt))
		assert.ErrorIs(t, bk.Cancel(admin, "again", b.CreatedAt), booking.ErrAlreadyTerminal)
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	bk, _ := drive(t, booking.StatusConfirmed)
	snap := bk.Snapshot()

	restored, err := booking.Reconstruct(snap)
	require.NoError(t, err)
	assert.Equal(t, snap, restored.Snapshot())

	snap.History[0].Reason = "mutated"
	assert.Empty(t, bk.History()[0].Reason, "snapshot must not alias aggregate state")

	snap.Status = "teleported"
	_, err = booking.Reconstruct(snap)
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
}
