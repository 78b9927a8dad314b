//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/payment"
	"rental-engine/internal/domain/pricing"
	"rental-engine/internal/domain/user"
	"rental-engine/internal/domain/verification"
	"rental-engine/internal/pkg/errs"
	"rental-engine/internal/usecase/commands"
	"rental-engine/internal/usecase/shared"
	"rental-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	commandSuite
}

func TestBookingCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) TestEndToEndScenario() {
	var captured shared.IntentRequest
	s.processor.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req shared.IntentRequest) (shared.IntentResult, error) {
			captured = req
			return shared.IntentResult{ProviderRef: "pi_e2e", Status: shared.ProcessorPending}, nil
		})

	created, err := s.bookings.CreateBooking(s.ctx, s.request(s.listing), s.guest)
	s.Require().NoError(err)
	b := created.Booking
	s.Equal(booking.StatusPending, b.Status())
	s.True(b.Quote().BasePrice.Equal(decimal.NewFromInt(135)))
	s.True(b.Quote().DiscountPercent.Equal(decimal.NewFromInt(10)))
	s.True(b.Total().Equal(decimal.RequireFromString("121.50")))
	s.Require().NotNil(created.Intent)
	s.Equal(payment.IntentPending, created.Intent.Status())
	s.True(captured.Amount.Equal(decimal.RequireFromString("121.50")))
	s.Equal("EUR", captured.Currency)

	res := s.deliver("evt-1", "pi_e2e", shared.ProcessorSucceeded)
	s.True(res.Outcome.Applied)
	s.Equal(booking.StatusConfirmed, res.Outcome.To)

	var refund shared.RefundRequest
	s.processor.EXPECT().Refund(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req shared.RefundRequest) error {
			refund = req
			return nil
		})

	s.clock.Add(time.Hour)
	cancelled, err := s.bookings.Cancel(s.ctx, commands.CancelRequest{BookingID: b.ID(), Reason: "plans changed"}, s.guest)
	s.Require().NoError(err)
	s.NoError(cancelled.RefundErr)
	s.Equal(booking.StatusCancelled, cancelled.Booking.Status())
	s.Equal("pi_e2e", refund.ProviderRef)
	s.True(refund.Amount.Equal(decimal.RequireFromString("121.50")))
	s.False(refund.Partial)
	s.Equal(payment.RefundSucceeded, cancelled.Intent.Refund().Status)
	s.Equal(payment.IntentRefunded, cancelled.Intent.Status())

	free, err := s.store.IsRangeFree(s.ctx, s.listing.ID(), b.Span())
	s.Require().NoError(err)
	s.True(free)
}

func (s *BookingCommandsTestSuite) TestCreateBookingValidation() {
	s.Run("inverted range", func() {
		req := s.request(s.listing)
		req.EndAt = req.StartAt.Add(-time.Hour)
		_, err := s.bookings.CreateBooking(s.ctx, req, s.guest)
		s.ErrorIs(err, pricing.ErrInvalidRange)
	})

	s.Run("unknown listing", func() {
		req := s.request(s.listing)
		req.ListingID = uuid.New()
		_, err := s.bookings.CreateBooking(s.ctx, req, s.guest)
		s.True(errs.Is(err, commands.ErrListingNotFound))
	})

	s.Run("inactive listing", func() {
		inactive := s.seedListing(builder.NewListingBuilder().WithActive(false))
		_, err := s.bookings.CreateBooking(s.ctx, s.request(inactive), s.guest)
		s.ErrorIs(err, listing.ErrListingInactive)
	})

	s.Run("hosts cannot book", func() {
		_, err := s.bookings.CreateBooking(s.ctx, s.request(s.listing), s.host)
		s.ErrorIs(err, commands.ErrForbidden)
	})

	s.Run("unknown add-on", func() {
		req := s.request(s.listing)
		req.AddOns = []pricing.AddOnRequest{{Kind: pricing.AddOnDelivery}}
		_, err := s.bookings.CreateBooking(s.ctx, req, s.guest)
		s.ErrorIs(err, pricing.ErrUnknownAddOn)
	})
}

func (s *BookingCommandsTestSuite) TestCreateBookingWithAddOn() {
	s.expectIntent("pi_addon")
	req := s.request(s.listing)
	req.AddOns = []pricing.AddOnRequest{{Kind: pricing.AddOnSecondDriver}}

	res, err := s.bookings.CreateBooking(s.ctx, req, s.guest)
	s.Require().NoError(err)
	s.True(res.Booking.Total().Equal(decimal.RequireFromString("136.50")))
	s.Require().Len(res.Booking.AddOns(), 1)
}

func (s *BookingCommandsTestSuite) TestOverlappingBookingConflicts() {
	first := s.confirmedBooking("pi_first")

	req := s.request(s.listing)
	req.StartAt = first.Booking.Span().Start().Add(48 * time.Hour)
	req.EndAt = req.StartAt.Add(96 * time.Hour)
	_, err := s.bookings.CreateBooking(s.ctx, req, user.Actor{ID: uuid.New(), Role: user.RoleGuest})
	s.ErrorIs(err, availability.ErrConflict)

	req.StartAt = first.Booking.Span().End()
	req.EndAt = req.StartAt.Add(24 * time.Hour)
	s.expectIntent("pi_adjacent")
	_, err = s.bookings.CreateBooking(s.ctx, req, user.Actor{ID: uuid.New(), Role: user.RoleGuest})
	s.NoError(err, "adjacent ranges do not overlap")
}

func (s *BookingCommandsTestSuite) TestConcurrentCreateSingleWinner() {
	var refs atomic.Int32
	s.processor.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, shared.IntentRequest) (shared.IntentResult, error) {
			refs.Add(1)
			return shared.IntentResult{ProviderRef: uuid.NewString(), Status: shared.ProcessorPending}, nil
		}).AnyTimes()

	req := s.request(s.listing)
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
		others    atomic.Int32
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guest := user.Actor{ID: uuid.New(), Role: user.RoleGuest}
			_, err := s.bookings.CreateBooking(s.ctx, req, guest)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, availability.ErrConflict):
				conflicts.Add(1)
			default:
				others.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load())
	s.Equal(int32(99), conflicts.Load())
	s.Equal(int32(0), others.Load())
	s.Equal(int32(1), refs.Load(), "payment is only opened for the winner")
}

func (s *BookingCommandsTestSuite) TestCreateBookingSurvivesPaymentFailure() {
	s.processor.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
		Return(shared.IntentResult{}, errors.New("processor unavailable"))

	res, err := s.bookings.CreateBooking(s.ctx, s.request(s.listing), s.guest)
	s.Require().NoError(err)
	s.Equal(booking.StatusPending, res.Booking.Status())
	s.Nil(res.Intent)

	s.processor.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
		Return(shared.IntentResult{}, errors.New("processor unavailable"))
	_, err = s.payments.StartPayment(s.ctx, res.Booking.ID(), s.guest)
	s.True(errs.Is(err, commands.ErrPaymentFailure))

	s.expectIntent("pi_retry")
	started, err := s.payments.StartPayment(s.ctx, res.Booking.ID(), s.guest)
	s.Require().NoError(err)
	s.Equal("pi_retry", started.Intent.ProviderRef())
}

func (s *BookingCommandsTestSuite) TestTransitionAuthorization() {
	res := s.createBooking("pi_auth")
	id := res.Booking.ID()

	_, err := s.bookings.Transition(s.ctx, id, booking.EventPaymentSucceeded, s.guest)
	s.ErrorIs(err, commands.ErrForbidden)

	_, err = s.bookings.Transition(s.ctx, id, booking.EventHostAccepted, s.guest)
	s.ErrorIs(err, commands.ErrForbidden)

	stranger := user.Actor{ID: uuid.New(), Role: user.RoleGuest}
	_, err = s.bookings.Transition(s.ctx, id, booking.EventCheckOut, stranger)
	s.ErrorIs(err, commands.ErrForbidden)

	_, err = s.bookings.Transition(s.ctx, uuid.New(), booking.EventCheckIn, s.guest)
	s.True(errs.Is(err, commands.ErrBookingNotFound))
}

func (s *BookingCommandsTestSuite) TestAdminManualSettlementConfirms() {
	res := s.createBooking("pi_manual")

	out, err := s.bookings.Transition(s.ctx, res.Booking.ID(), booking.EventPaymentSucceeded, s.admin)
	s.Require().NoError(err)
	s.True(out.Outcome.Applied)
	s.Equal(booking.StatusConfirmed, out.Booking.Status())
}

func (s *BookingCommandsTestSuite) TestCheckInRequiresVerification() {
	res := s.confirmedBooking("pi_kyc")
	id := res.Booking.ID()

	s.clock.Set(res.Booking.Span().Start().Add(time.Hour))
	s.verifier.EXPECT().Status(gomock.Any(), s.guest.ID).Return(verification.StatusPendingReview, nil)
	_, err := s.bookings.Transition(s.ctx, id, booking.EventCheckIn, s.guest)
	s.ErrorIs(err, verification.ErrVerificationRequired)

	s.verifier.EXPECT().Status(gomock.Any(), s.guest.ID).Return(verification.StatusNone, errors.New("timeout"))
	_, err = s.bookings.Transition(s.ctx, id, booking.EventCheckIn, s.guest)
	s.True(errs.Is(err, commands.ErrVerificationUnavailable))

	s.verifier.EXPECT().Status(gomock.Any(), s.guest.ID).Return(verification.StatusApproved, nil)
	out, err := s.bookings.Transition(s.ctx, id, booking.EventCheckIn, s.guest)
	s.Require().NoError(err)
	s.Equal(booking.StatusInProgress, out.Booking.Status())

	_, err = s.bookings.Cancel(s.ctx, commands.CancelRequest{BookingID: id}, s.guest)
	s.ErrorIs(err, booking.ErrInvalidTransition, "rental in progress cannot be cancelled")

	s.clock.Set(res.Booking.Span().End().Add(-time.Hour))
	out, err = s.bookings.Transition(s.ctx, id, booking.EventCheckOut, s.host)
	s.Require().NoError(err)
	s.Equal(booking.StatusCompleted, out.Booking.Status())

	out, err = s.bookings.Transition(s.ctx, id, booking.EventCheckOut, s.host)
	s.Require().NoError(err)
	s.False(out.Outcome.Applied)
	s.Equal(booking.NoopDuplicate, out.Outcome.Reason)

	_, err = s.bookings.Cancel(s.ctx, commands.CancelRequest{BookingID: id}, s.admin)
	s.ErrorIs(err, booking.ErrAlreadyTerminal)
}

func (s *BookingCommandsTestSuite) TestManualApprovalListing() {
	manual := s.seedListing(builder.NewListingBuilder().
		WithPolicy(listing.PolicyManualApproval).
		With(func(b *builder.ListingBuilder) { b.HostID = s.host.ID }))

	s.expectIntent("pi_approval")
	res, err := s.bookings.CreateBooking(s.ctx, s.request(manual), s.guest)
	s.Require().NoError(err)

	hook := s.deliver("evt-approval", "pi_approval", shared.ProcessorSucceeded)
	s.False(hook.Outcome.Applied)
	s.Equal(booking.NoopAwaitingApproval, hook.Outcome.Reason)

	out, err := s.bookings.Transition(s.ctx, res.Booking.ID(), booking.EventHostAccepted, s.host)
	s.Require().NoError(err)
	s.True(out.Outcome.Applied)
	s.Equal(booking.StatusConfirmed, out.Booking.Status())
}

func (s *BookingCommandsTestSuite) TestHostAcceptOnInstantListing() {
	res := s.createBooking("pi_instant")
	_, err := s.bookings.Transition(s.ctx, res.Booking.ID(), booking.EventHostAccepted, s.host)
	s.ErrorIs(err, booking.ErrApprovalNotRequired)
}

func (s *BookingCommandsTestSuite) TestCancelPendingWithoutRefund() {
	res := s.createBooking("pi_pending")

	stranger := user.Actor{ID: uuid.New(), Role: user.RoleGuest}
	_, err := s.bookings.Cancel(s.ctx, commands.CancelRequest{BookingID: res.Booking.ID()}, stranger)
	s.ErrorIs(err, commands.ErrForbidden)

	amount := decimal.NewFromInt(10)
	_, err = s.bookings.Cancel(s.ctx, commands.CancelRequest{BookingID: res.Booking.ID(), RefundAmount: &amount}, s.guest)
	s.ErrorIs(err, commands.ErrForbidden, "partial refunds are an admin decision")

	out, err := s.bookings.Cancel(s.ctx, commands.CancelRequest{BookingID: res.Booking.ID(), Reason: "host asked"}, s.host)
	s.Require().NoError(err)
	s.Equal(booking.StatusCancelled, out.Booking.Status())
	s.Require().NotNil(out.Intent)
	s.Equal(payment.RefundNone, out.Intent.Refund().Status)

	_, err = s.bookings.Cancel(s.ctx, commands.CancelRequest{BookingID: res.Booking.ID()}, s.guest)
	s.ErrorIs(err, booking.ErrAlreadyTerminal)
}

func (s *BookingCommandsTestSuite) TestAdminPartialRefund() {
	res := s.confirmedBooking("pi_partial")

	var refund shared.RefundRequest
	s.processor.EXPECT().Refund(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req shared.RefundRequest) error {
			refund = req
			return nil
		})

	amount := decimal.RequireFromString("60.75")
	out, err := s.bookings.Cancel(s.ctx, commands.CancelRequest{BookingID: res.Booking.ID(), Reason: "goodwill", RefundAmount: &amount}, s.admin)
	s.Require().NoError(err)
	s.True(refund.Partial)
	s.True(refund.Amount.Equal(amount))
	s.Equal(payment.IntentPartiallyRefunded, out.Intent.Status())
}

func (s *BookingCommandsTestSuite) TestCancelAfterStart() {
	res := s.confirmedBooking("pi_started")
	id := res.Booking.ID()

	s.clock.Set(res.Booking.Span().Start().Add(24 * time.Hour))
	_, err := s.bookings.Cancel(s.ctx, commands.CancelRequest{BookingID: id, Reason: "too late"}, s.guest)
	s.ErrorIs(err, booking.ErrRentalStarted)
	_, err = s.bookings.Cancel(s.ctx, commands.CancelRequest{BookingID: id, Reason: "too late"}, s.host)
	s.ErrorIs(err, booking.ErrRentalStarted)

	b, err := s.store.BookingByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(booking.StatusConfirmed, b.Status())
	in, err := s.store.LatestIntent(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(payment.RefundNone, in.Refund().Status, "no refund for a rejected cancellation")
	free, err := s.store.IsRangeFree(s.ctx, s.listing.ID(), res.Booking.Span())
	s.Require().NoError(err)
	s.False(free)

	s.processor.EXPECT().Refund(gomock.Any(), gomock.Any()).Return(nil)
	out, err := s.bookings.Cancel(s.ctx, commands.CancelRequest{BookingID: id, Reason: "no-show"}, s.admin)
	s.Require().NoError(err)
	s.Equal(booking.StatusCancelled, out.Booking.Status())
}

func (s *BookingCommandsTestSuite) TestSetAvailability() {
	blocked := s.request(s.listing).StartAt.Add(24 * time.Hour)

	err := s.bookings.SetAvailability(s.ctx, commands.SetAvailabilityRequest{ListingID: s.listing.ID(), Date: blocked}, s.guest)
	s.ErrorIs(err, commands.ErrForbidden)

	negative := decimal.NewFromInt(-1)
	err = s.bookings.SetAvailability(s.ctx, commands.SetAvailabilityRequest{ListingID: s.listing.ID(), Date: blocked, Available: true, PriceOverride: &negative}, s.host)
	s.ErrorIs(err, commands.ErrInvalidPriceOverride)

	err = s.bookings.SetAvailability(s.ctx, commands.SetAvailabilityRequest{ListingID: s.listing.ID(), Date: blocked}, s.host)
	s.Require().NoError(err)

	_, err = s.bookings.CreateBooking(s.ctx, s.request(s.listing), s.guest)
	s.ErrorIs(err, availability.ErrConflict)

	err = s.bookings.SetAvailability(s.ctx, commands.SetAvailabilityRequest{ListingID: s.listing.ID(), Date: blocked, Available: true}, s.admin)
	s.Require().NoError(err)

	s.expectIntent("pi_reopened")
	_, err = s.bookings.CreateBooking(s.ctx, s.request(s.listing), s.guest)
	s.NoError(err)
}

func (s *BookingCommandsTestSuite) TestUpsertListing() {
	params := listing.Params{
		Title:    "Van",
		Active:   true,
		RateCard: s.listing.RateCard(),
		Policy:   listing.PolicyInstant,
	}

	_, err := s.bookings.UpsertListing(s.ctx, params, s.guest)
	s.ErrorIs(err, commands.ErrForbidden)

	l, err := s.bookings.UpsertListing(s.ctx, params, s.host)
	s.Require().NoError(err)
	s.Equal(s.host.ID, l.HostID())

	otherHost := user.Actor{ID: uuid.New(), Role: user.RoleHost}
	params.ID = l.ID()
	_, err = s.bookings.UpsertListing(s.ctx, params, otherHost)
	s.ErrorIs(err, commands.ErrForbidden)

	params.Active = false
	updated, err := s.bookings.UpsertListing(s.ctx, params, s.host)
	s.Require().NoError(err)
	s.False(updated.Active())
}
