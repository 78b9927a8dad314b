package api

import (
	"net/http"

	reqdto "rental-engine/internal/handler/dto/request"
	resdto "rental-engine/internal/handler/dto/response"
	"rental-engine/internal/handler/httperr"
	"rental-engine/internal/handler/middleware"
	"rental-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	payments commands.PaymentCommands
}

func NewWebhookHandler(payments commands.PaymentCommands) *WebhookHandler {
	return &WebhookHandler{payments: payments}
}

// @Summary Payment processor webhook
// @Description Redelivered and out-of-order notifications are acknowledged without side effects
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Webhook-Token header string true "Shared webhook secret"
// @Param request body reqdto.PaymentWebhookRequest true "Notification"
// @Success 200 {object} resdto.WebhookResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/webhooks/payments [post]
func (h *WebhookHandler) Payments(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.payments.HandlePaymentWebhook(c.Request.Context(), req.ToCommand(c.GetHeader(middleware.DeliveryIDHeader)))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWebhookResult(res))
}
