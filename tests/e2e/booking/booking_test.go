//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/user"
	"rental-engine/internal/handler/dto/response"
	"rental-engine/internal/handler/middleware"
	"rental-engine/tests/common/authtest"
	"rental-engine/tests/common/dbtest"
	"rental-engine/tests/common/httptest"
	"rental-engine/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingE2ETestSuite struct {
	e2e.SharedSuite

	tokens  *authtest.JWTHelper
	startAt time.Time
	endAt   time.Time
}

func TestBookingE2ESuite(t *testing.T) {
	suite.Run(t, new(BookingE2ETestSuite))
}

func (s *BookingE2ETestSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.tokens = authtest.NewJWTHelper(s.Config.JWT)
	s.startAt = time.Now().UTC().AddDate(0, 0, 30).Truncate(24 * time.Hour)
	s.endAt = s.startAt.Add(48 * time.Hour)
}

func (s *BookingE2ETestSuite) upsertListing(hostToken string, policy string) uuid.UUID {
	id := uuid.New()
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, "/api/listings/"+id.String(), map[string]any{
		"title":  "Cargo bike",
		"active": true,
		"rate_card": map[string]any{
			"price_per_day": "50",
			"currency":      "EUR",
		},
		"location":            map[string]any{"latitude": 41.39, "longitude": 2.17},
		"caution":             "200",
		"confirmation_policy": policy,
	}, hostToken)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	return id
}

func (s *BookingE2ETestSuite) createBooking(guestToken string, listingID uuid.UUID) (*response.BookingResponse, int) {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", map[string]any{
		"listing_id": listingID,
		"start_at":   s.startAt.Format(time.RFC3339),
		"end_at":     s.endAt.Format(time.RFC3339),
	}, guestToken)
	if rec.Code == http.StatusConflict {
		httptest.AssertErrorReason(s.T(), rec, http.StatusConflict, availability.ErrConflict.Error())
	}
	if rec.Code != http.StatusCreated {
		return nil, rec.Code
	}
	var body response.BookingResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
	return &body, rec.Code
}

func (s *BookingE2ETestSuite) TestInstantBookingLifecycle() {
	s.Run("pay, confirm, cancel with full refund", func() {
		_, hostToken := s.tokens.ActorToken(s.T(), user.RoleHost)
		guest, guestToken := s.tokens.ActorToken(s.T(), user.RoleGuest)
		listingID := s.upsertListing(hostToken, "instant")

		created, code := s.createBooking(guestToken, listingID)
		s.Require().Equal(http.StatusCreated, code)
		s.Equal("pending", created.Status)
		s.Equal(guest.ID, created.GuestID)
		s.Equal("100.00", created.Total)
		s.Require().NotNil(created.Payment)
		s.Equal("pending", created.Payment.Status)
		s.Equal(1, dbtest.CountReservations(s.T(), s.DB, listingID))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("/api/bookings/%s/payment/confirm", created.ID), nil, guestToken)
		var confirmed response.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &confirmed)
		s.Equal("confirmed", confirmed.Status)
		s.Equal("succeeded", confirmed.Payment.Status)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("/api/bookings/%s/cancel", created.ID), map[string]any{"reason": "trip called off"}, guestToken)
		var cancelled response.CancelResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cancelled)
		s.Equal("cancelled", cancelled.Booking.Status)
		s.False(cancelled.RefundPending)
		s.Require().NotNil(cancelled.Booking.Payment)
		s.Equal("succeeded", cancelled.Booking.Payment.Refund.Status)
		s.Equal("100.00", cancelled.Booking.Payment.Refund.Amount)
		s.True(cancelled.Booking.Resolved)
		s.Equal(0, dbtest.CountReservations(s.T(), s.DB, listingID))

		s.Contains(dbtest.QueuedTopics(s.T(), s.DB), "booking.created")
	})
}

func (s *BookingE2ETestSuite) TestDoubleBooking() {
	s.Run("second guest is turned away until the range is released", func() {
		_, hostToken := s.tokens.ActorToken(s.T(), user.RoleHost)
		_, firstToken := s.tokens.ActorToken(s.T(), user.RoleGuest)
		_, secondToken := s.tokens.ActorToken(s.T(), user.RoleGuest)
		listingID := s.upsertListing(hostToken, "instant")

		first, code := s.createBooking(firstToken, listingID)
		s.Require().Equal(http.StatusCreated, code)

		_, code = s.createBooking(secondToken, listingID)
		s.Equal(http.StatusConflict, code)
		s.Equal(1, dbtest.CountReservations(s.T(), s.DB, listingID))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("/api/listings/%s/availability/free?start_at=%s&end_at=%s", listingID,
				s.startAt.Format(time.RFC3339), s.endAt.Format(time.RFC3339)), nil, "")
		var free response.RangeFreeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &free)
		s.False(free.Free)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("/api/bookings/%s/cancel", first.ID), map[string]any{"reason": "changed my mind"}, firstToken)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		_, code = s.createBooking(secondToken, listingID)
		s.Equal(http.StatusCreated, code)
	})
}

func (s *BookingE2ETestSuite) TestPaymentWebhook() {
	s.Run("redelivery is acknowledged without a second transition", func() {
		_, hostToken := s.tokens.ActorToken(s.T(), user.RoleHost)
		_, guestToken := s.tokens.ActorToken(s.T(), user.RoleGuest)
		listingID := s.upsertListing(hostToken, "manual_approval")

		created, code := s.createBooking(guestToken, listingID)
		s.Require().Equal(http.StatusCreated, code)
		s.Require().NotNil(created.Payment)

		headers := map[string]string{middleware.WebhookTokenHeader: s.Config.Payments.WebhookToken}
		body := map[string]any{
			"delivery_id":  "evt-" + created.ID.String(),
			"provider_ref": created.Payment.ProviderRef,
			"status":       "succeeded",
		}

		rec := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/webhooks/payments", body, headers)
		var first response.WebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &first)
		s.False(first.Duplicate)

		rec = httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/webhooks/payments", body, headers)
		var second response.WebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &second)
		s.True(second.Duplicate)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings/"+created.ID.String(), nil, guestToken)
		var current response.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &current)
		s.Equal("pending", current.Status, "manual approval waits for the host")
		s.Equal("succeeded", current.Payment.Status)
	})
}
