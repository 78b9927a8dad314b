package verification

import (
	"errors"
	"strings"
)

var (
	ErrVerificationRequired = errors.New("identity verification required")
	ErrUnknownStatus        = errors.New("unknown verification status")
)

type Status string

const (
	StatusNone          Status = "none"
	StatusPending       Status = "pending"
	StatusPendingReview Status = "pending_review"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNone, StatusPending, StatusPendingReview, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) IsApproved() bool {
	return s == StatusApproved
}

// ParseStatus accepts provider spellings; "verified" means approved.
func ParseStatus(raw string) (Status, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "":
		return StatusNone, nil
	case "verified":
		return StatusApproved, nil
	case "in_review", "review":
		return StatusPendingReview, nil
	}
	s := Status(v)
	if !s.IsValid() {
		return "", ErrUnknownStatus
	}
	return s, nil
}

// Require is the soft gate before a guest may start using a booked item.
func Require(s Status) error {
	if !s.IsApproved() {
		return ErrVerificationRequired
	}
	return nil
}
