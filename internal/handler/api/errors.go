package api

import (
	"net/http"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/payment"
	"rental-engine/internal/domain/pricing"
	"rental-engine/internal/domain/verification"
	"rental-engine/internal/handler/httperr"
	"rental-engine/internal/pkg/errs"
	"rental-engine/internal/usecase/commands"
	"rental-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	targets []error
	status  int
	message string
}

// checked in order; the first match wins
var errorMappings = []errorMapping{
	{
		targets: []error{
			commands.ErrListingNotFound, commands.ErrBookingNotFound, commands.ErrPaymentNotFound,
			queries.ErrListingNotFound, queries.ErrBookingNotFound,
		},
		status:  http.StatusNotFound,
		message: "Not found",
	},
	{
		targets: []error{verification.ErrVerificationRequired},
		status:  http.StatusForbidden,
		message: "verification required",
	},
	{
		targets: []error{commands.ErrForbidden, queries.ErrBookingAccess},
		status:  http.StatusForbidden,
		message: "Forbidden",
	},
	{
		targets: []error{availability.ErrConflict},
		status:  http.StatusConflict,
		message: "Range not available",
	},
	{
		targets: []error{
			booking.ErrInvalidTransition, booking.ErrAlreadyTerminal, commands.ErrConcurrentUpdate,
			payment.ErrRefundNotAllowed, payment.ErrRefundNotOutstanding,
		},
		status:  http.StatusConflict,
		message: "Booking state does not allow this action",
	},
	{
		targets: []error{
			booking.ErrPaymentNotSettled, booking.ErrApprovalNotRequired, booking.ErrOutsideUsageWindow, booking.ErrRentalStarted,
			listing.ErrListingInactive,
		},
		status:  http.StatusUnprocessableEntity,
		message: "Precondition failed",
	},
	{
		targets: []error{
			pricing.ErrInvalidRange, availability.ErrInvalidSpan, pricing.ErrInvalidRateCard,
			pricing.ErrUnknownAddOn, pricing.ErrDuplicateAddOn, pricing.ErrMissingLocation, pricing.ErrInvalidAddOnRate,
			listing.ErrInvalidPolicy, listing.ErrInvalidCaution, booking.ErrInvalidEvent, payment.ErrInvalidRefundAmount,
			commands.ErrInvalidPriceOverride, commands.ErrInvalidWebhook,
			queries.ErrInvalidCursor, queries.ErrCalendarRange,
		},
		status:  http.StatusBadRequest,
		message: "Invalid request",
	},
	{
		targets: []error{commands.ErrPaymentFailure, commands.ErrRefundFailure},
		status:  http.StatusBadGateway,
		message: "Payment processor unavailable",
	},
	{
		targets: []error{commands.ErrVerificationUnavailable},
		status:  http.StatusServiceUnavailable,
		message: "Verification service unavailable",
	},
}

// abortWithUseCaseError translates use case and domain errors into the HTTP error envelope.
// Mapped errors carry the failed rule as error.reason.
func abortWithUseCaseError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		for _, target := range m.targets {
			if errs.Is(err, target) {
				httperr.AbortWithReason(c, m.status, err, m.message, target.Error())
				return
			}
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
