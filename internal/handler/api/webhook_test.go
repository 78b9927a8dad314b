//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/handler/api"
	resdto "rental-engine/internal/handler/dto/response"
	"rental-engine/internal/handler/middleware"
	"rental-engine/internal/usecase/commands"
	"rental-engine/internal/usecase/shared"
	"rental-engine/tests/common/httptest"
	commandsmock "rental-engine/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const webhookPath = "/api/webhooks/payments"

type WebhookHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockPayments *commandsmock.MockPaymentCommands
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)

	h := api.NewWebhookHandler(s.mockPayments)
	s.router.POST(webhookPath, middleware.RequireWebhookToken("secret"), h.Payments)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) headers(extra map[string]string) map[string]string {
	h := map[string]string{middleware.WebhookTokenHeader: "secret"}
	for k, v := range extra {
		h[k] = v
	}
	return h
}

func (s *WebhookHandlerTestSuite) TestPayments() {
	s.Run("success: engine shape confirms the booking", func() {
		s.mockPayments.EXPECT().HandlePaymentWebhook(gomock.Any(), commands.WebhookEvent{
			DeliveryID:  "evt-1",
			ProviderRef: "pay-1",
			Status:      shared.ProcessorSucceeded,
		}).Return(&commands.WebhookResult{Outcome: booking.Outcome{
			Applied: true,
			From:    booking.StatusPending,
			To:      booking.StatusConfirmed,
		}}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, webhookPath,
			map[string]any{"delivery_id": "evt-1", "provider_ref": "pay-1", "status": "succeeded"}, s.headers(nil))

		var body resdto.WebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Applied)
		s.False(body.Duplicate)
		s.Equal("confirmed", body.Status)
	})

	s.Run("success: processor shape uses the delivery header", func() {
		s.mockPayments.EXPECT().HandlePaymentWebhook(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev commands.WebhookEvent) (*commands.WebhookResult, error) {
				s.Equal("req-9", ev.DeliveryID)
				s.Equal("123456", ev.ProviderRef)
				s.Empty(ev.Status)
				return &commands.WebhookResult{Duplicate: true}, nil
			})

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, webhookPath,
			map[string]any{"type": "payment", "data": map[string]any{"id": "123456"}},
			s.headers(map[string]string{middleware.DeliveryIDHeader: "req-9"}))

		var body resdto.WebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Duplicate)
		s.False(body.Applied)
		s.Empty(body.Status)
	})

	s.Run("success: late notification is a no-op", func() {
		s.mockPayments.EXPECT().HandlePaymentWebhook(gomock.Any(), gomock.Any()).
			Return(&commands.WebhookResult{Outcome: booking.Outcome{
				From:   booking.StatusCancelled,
				To:     booking.StatusCancelled,
				Reason: booking.NoopStale,
			}}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, webhookPath,
			map[string]any{"delivery_id": "evt-2", "provider_ref": "pay-1", "status": "failed"}, s.headers(nil))

		var body resdto.WebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Applied)
		s.Equal(string(booking.NoopStale), body.Reason)
	})

	s.Run("error: missing token", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, webhookPath,
			map[string]any{"provider_ref": "pay-1", "status": "succeeded"}, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid webhook token")
	})

	s.Run("error: wrong token", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, webhookPath,
			map[string]any{"provider_ref": "pay-1", "status": "succeeded"},
			map[string]string{middleware.WebhookTokenHeader: "guess"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid webhook token")
	})

	s.Run("error: unknown status", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, webhookPath,
			map[string]any{"provider_ref": "pay-1", "status": "refunded"}, s.headers(nil))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: no provider reference", func() {
		s.mockPayments.EXPECT().HandlePaymentWebhook(gomock.Any(), gomock.Any()).Return(nil, commands.ErrInvalidWebhook)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, webhookPath,
			map[string]any{"status": "succeeded"}, s.headers(nil))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
