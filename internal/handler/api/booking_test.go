//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/payment"
	"rental-engine/internal/domain/pricing"
	"rental-engine/internal/domain/user"
	"rental-engine/internal/domain/verification"
	"rental-engine/internal/handler/api"
	resdto "rental-engine/internal/handler/dto/response"
	"rental-engine/internal/pkg/errs"
	"rental-engine/internal/usecase/commands"
	"rental-engine/internal/usecase/queries"
	"rental-engine/tests/common/builder"
	"rental-engine/tests/common/httptest"
	"rental-engine/tests/common/testutil"
	commandsmock "rental-engine/tests/mock/commands"
	queriesmock "rental-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockPayments *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler

	actor   user.Actor
	booking *booking.Booking
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockPayments, s.mockQueries)

	s.booking = builder.NewBookingBuilder().MustBuild()
	s.actor = user.Actor{ID: s.booking.GuestID(), Role: user.RoleGuest}

	s.router.Use(fakeAuth(&s.actor))
	s.router.POST("/api/quotes", s.handler.Quote)
	s.router.POST("/api/bookings", s.handler.Create)
	s.router.GET("/api/bookings", s.handler.List)
	s.router.GET("/api/bookings/:id", s.handler.Get)
	s.router.POST("/api/bookings/:id/transitions", s.handler.Transition)
	s.router.POST("/api/bookings/:id/cancel", s.handler.Cancel)
	s.router.POST("/api/bookings/:id/payment", s.handler.StartPayment)
	s.router.POST("/api/bookings/:id/payment/confirm", s.handler.ConfirmPayment)
	s.router.POST("/api/bookings/:id/refund/resolve", s.handler.ResolveRefund)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *BookingHandlerTestSuite) bookingURL(suffix string) string {
	return "/api/bookings/" + s.booking.ID().String() + suffix
}

// ================================================================================
// TestQuote
// ================================================================================

func (s *BookingHandlerTestSuite) TestQuote() {
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

	s.Run("success: returns the priced quote", func() {
		s.mockQueries.EXPECT().Quote(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req queries.QuoteRequest) (*queries.QuoteView, error) {
				s.Equal(reqBody.ListingID, req.ListingID)
				s.True(reqBody.StartAt.Equal(req.StartAt))
				return &queries.QuoteView{ListingID: req.ListingID, Total: "121.50", Available: true}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/quotes", reqBody, "token")

		var body queries.QuoteView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("121.50", body.Total)
		s.True(body.Available)
	})

	s.Run("error: unknown listing is 404", func() {
		s.mockQueries.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(nil, queries.ErrListingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/quotes", reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: add-on not offered is 400", func() {
		s.mockQueries.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(nil, errs.Wrap(pricing.ErrUnknownAddOn, "quote"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/quotes", reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/api/bookings"
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

	validation := []testCaseBooking{
		{name: "missing field: listing_id", mutate: testutil.Field("listing_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: start_at", mutate: testutil.Field("start_at", nil), expectCode: http.StatusBadRequest},
		{name: "unknown add-on kind", mutate: testutil.Field("add_ons", []map[string]any{{"kind": "jetpack"}}), expectCode: http.StatusBadRequest},
		{name: "latitude out of range", mutate: testutil.Field("add_ons", []map[string]any{{"kind": "delivery", "destination": map[string]any{"latitude": 91, "longitude": 0}}}), expectCode: http.StatusBadRequest},
	}

	s.Run("success: 201 with location header", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actor).
			DoAndReturn(func(_ context.Context, req commands.CreateBookingRequest, _ user.Actor) (*commands.BookingResult, error) {
				s.Equal(reqBody.ListingID, req.ListingID)
				s.True(reqBody.EndAt.Equal(req.EndAt))
				return &commands.BookingResult{Booking: s.booking}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(s.booking.ID(), body.ID)
		s.Equal("pending", body.Status)
		s.Equal("121.50", body.Total)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + s.booking.ID().String()})
	})

	s.Run("delivery add-on is passed through", func() {
		withDelivery := testutil.DtoMap(s.T(), reqBody, testutil.Field("add_ons", []map[string]any{
			{"kind": "delivery", "destination": map[string]any{"latitude": 48.85, "longitude": 2.35}},
		}))
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actor).
			DoAndReturn(func(_ context.Context, req commands.CreateBookingRequest, _ user.Actor) (*commands.BookingResult, error) {
				s.Require().Len(req.AddOns, 1)
				s.Equal("delivery", string(req.AddOns[0].Kind))
				s.Require().NotNil(req.AddOns[0].Destination)
				s.InDelta(48.85, req.AddOns[0].Destination.Latitude, 1e-9)
				return &commands.BookingResult{Booking: s.booking}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, withDelivery, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 on validation errors", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "range taken", err: availability.ErrConflict, expectCode: http.StatusConflict, expectMsg: "Range not available"},
		{name: "listing missing", err: errs.Mark(errors.New("no rows"), commands.ErrListingNotFound), expectCode: http.StatusNotFound, expectMsg: "Not found"},
		{name: "host booking own listing", err: commands.ErrForbidden, expectCode: http.StatusForbidden, expectMsg: "Forbidden"},
		{name: "storage failure", err: errs.Mark(errors.New("conn reset"), commands.ErrDatabaseOperationFailed), expectCode: http.StatusInternalServerError, expectMsg: "Internal server error"},
	}
	for _, tc := range errorCases {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("success: first page with next cursor", func() {
		items := []*queries.BookingListItem{{ID: s.booking.ID(), Status: "pending", Total: "121.50"}}
		s.mockQueries.EXPECT().ListBookings(gomock.Any(), s.actor, (*queries.Cursor)(nil), 0).
			Return(items, &queries.Cursor{After: "next-page"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings", nil, "token")

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 1)
		s.Equal("next-page", body.NextCursor)
	})

	s.Run("success: cursor and limit are forwarded", func() {
		s.mockQueries.EXPECT().ListBookings(gomock.Any(), s.actor, &queries.Cursor{After: "abc"}, 5).
			Return(nil, nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?after=abc&limit=5", nil, "token")

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
		s.Empty(body.NextCursor)
	})

	s.Run("error: limit above 100", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?limit=101", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: malformed cursor", func() {
		s.mockQueries.EXPECT().ListBookings(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?after=zzz", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("success", func() {
		view := queries.NewBookingView(s.booking, nil)
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), s.actor, s.booking.ID()).Return(&view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.bookingURL(""), nil, "token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.booking.ID(), body.ID)
		s.Len(body.History, 1)
		s.False(body.Resolved)
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: not a party", func() {
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, queries.ErrBookingAccess)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.bookingURL(""), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}

// ================================================================================
// TestTransition
// ================================================================================

func (s *BookingHandlerTestSuite) TestTransition() {
	url := s.bookingURL("/transitions")

	s.Run("success: applied transition", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), s.booking.ID(), booking.EventCheckIn, s.actor).
			Return(&commands.TransitionResult{
				Booking: s.booking,
				Outcome: booking.Outcome{Applied: true, From: booking.StatusConfirmed, To: booking.StatusInProgress},
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"event": "check_in"}, "token")

		var body resdto.TransitionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Applied)
		s.Empty(body.Reason)
	})

	s.Run("success: duplicate event is a no-op", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), s.booking.ID(), booking.EventPaymentSucceeded, s.actor).
			Return(&commands.TransitionResult{
				Booking: s.booking,
				Outcome: booking.Outcome{Reason: booking.NoopDuplicate},
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"event": "payment_succeeded"}, "token")

		var body resdto.TransitionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Applied)
		s.Equal("duplicate", body.Reason)
	})

	s.Run("error: unknown event", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"event": "teleport"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "verification missing", err: verification.ErrVerificationRequired, expectCode: http.StatusForbidden, expectMsg: "verification required"},
		{name: "invalid transition", err: booking.ErrInvalidTransition, expectCode: http.StatusConflict, expectMsg: ""},
		{name: "already terminal", err: booking.ErrAlreadyTerminal, expectCode: http.StatusConflict, expectMsg: ""},
		{name: "payment not settled", err: booking.ErrPaymentNotSettled, expectCode: http.StatusUnprocessableEntity, expectMsg: "Precondition failed"},
		{name: "verification service down", err: errs.Mark(errors.New("timeout"), commands.ErrVerificationUnavailable), expectCode: http.StatusServiceUnavailable, expectMsg: ""},
	}
	for _, tc := range errorCases {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().Transition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"event": "check_in"}, "token")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	url := s.bookingURL("/cancel")

	s.Run("success: refund retry pending", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), commands.CancelRequest{BookingID: s.booking.ID(), Reason: "plans changed"}, s.actor).
			Return(&commands.CancelResult{Booking: s.booking, RefundErr: errors.New("processor down")}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "plans changed"}, "token")

		var body resdto.CancelResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.RefundPending)
	})

	s.Run("partial refund amount is forwarded", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), s.actor).
			DoAndReturn(func(_ context.Context, req commands.CancelRequest, _ user.Actor) (*commands.CancelResult, error) {
				s.Require().NotNil(req.RefundAmount)
				s.Equal("40", req.RefundAmount.String())
				return &commands.CancelResult{Booking: s.booking}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "damage", "refund_amount": "40"}, "token")

		var body resdto.CancelResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.RefundPending)
	})

	s.Run("error: reason required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: already cancelled", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, booking.ErrAlreadyTerminal)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "again"}, "token")
		httptest.AssertErrorReason(s.T(), rec, http.StatusConflict, booking.ErrAlreadyTerminal.Error())
	})
}

// ================================================================================
// TestPayments
// ================================================================================

func (s *BookingHandlerTestSuite) TestPayments() {
	s.Run("start payment", func() {
		s.mockPayments.EXPECT().StartPayment(gomock.Any(), s.booking.ID(), s.actor).
			Return(&commands.PaymentResult{Booking: s.booking}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.bookingURL("/payment"), nil, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("start payment: processor failure is 502", func() {
		s.mockPayments.EXPECT().StartPayment(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("gateway timeout"), commands.ErrPaymentFailure))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.bookingURL("/payment"), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Payment processor unavailable")
	})

	s.Run("confirm payment", func() {
		s.mockPayments.EXPECT().ConfirmPayment(gomock.Any(), s.booking.ID(), s.actor).
			Return(&commands.PaymentResult{Booking: s.booking}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.bookingURL("/payment/confirm"), nil, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("resolve refund", func() {
		s.mockPayments.EXPECT().ResolveRefund(gomock.Any(), s.booking.ID(), "refunded by bank transfer", s.actor).
			Return(&commands.PaymentResult{Booking: s.booking}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.bookingURL("/refund/resolve"),
			map[string]any{"note": "refunded by bank transfer"}, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("resolve refund: nothing outstanding", func() {
		s.mockPayments.EXPECT().ResolveRefund(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(payment.ErrRefundNotOutstanding, "resolve"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.bookingURL("/refund/resolve"),
			map[string]any{"note": "n/a"}, "token")
		httptest.AssertErrorReason(s.T(), rec, http.StatusConflict, payment.ErrRefundNotOutstanding.Error())
	})
}
