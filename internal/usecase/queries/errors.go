package queries

import "rental-engine/internal/pkg/errs"

var (
	ErrListingNotFound = errs.New("listing not found")
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingAccess   = errs.New("booking access denied")
	ErrCalendarRange   = errs.New("calendar range must be between 1 and 366 days")
)
