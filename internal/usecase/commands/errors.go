package commands

import (
	"rental-engine/internal/infra"
	"rental-engine/internal/pkg/errs"
)

var (
	ErrListingNotFound         = errs.New("listing not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrPaymentNotFound         = errs.New("payment not found")
	ErrForbidden               = errs.New("actor not allowed to perform this action")
	ErrPaymentFailure          = errs.New("payment processor failure")
	ErrRefundFailure           = errs.New("refund processor failure")
	ErrVerificationUnavailable = errs.New("verification status unavailable")
	ErrConcurrentUpdate        = errs.New("record changed concurrently")
	ErrInvalidPriceOverride    = errs.New("price override must not be negative")
	ErrInvalidWebhook          = errs.New("invalid payment webhook")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// storageErr maps repository errors onto use case errors. Domain errors pass through.
func storageErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, notFound)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, ErrConcurrentUpdate)
	case infra.IsKind(err, infra.KindDBFailure), infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, ErrDatabaseOperationFailed)
	default:
		return err
	}
}
