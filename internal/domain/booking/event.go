package booking

import (
	"errors"
	"time"

	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/user"
	"rental-engine/internal/domain/verification"
)

var ErrInvalidEvent = errors.New("invalid booking event")

type Event string

const (
	EventPaymentSucceeded Event = "payment_succeeded"
	EventHostAccepted     Event = "host_accepted"
	EventCheckIn          Event = "check_in"
	EventCheckOut         Event = "check_out"
)

func (e Event) String() string {
	return string(e)
}

func ParseEvent(s string) (Event, error) {
	e := Event(s)
	if _, ok := transitions[e]; !ok {
		return "", ErrInvalidEvent
	}
	return e, nil
}

type rule struct {
	from Status
	to   Status
	// async events arrive from outside (processor callbacks) and may be redelivered late
	async bool
}

var transitions = map[Event]rule{
	EventPaymentSucceeded: {from: StatusPending, to: StatusConfirmed, async: true},
	EventHostAccepted:     {from: StatusPending, to: StatusConfirmed},
	EventCheckIn:          {from: StatusConfirmed, to: StatusInProgress},
	EventCheckOut:         {from: StatusInProgress, to: StatusCompleted},
}

// GuardInput carries the facts guards need. Verification is only read for check-in.
type GuardInput struct {
	At             time.Time
	Actor          user.Actor
	Policy         listing.ConfirmationPolicy
	PaymentSettled bool
	Verification   verification.Status
}

type NoopReason string

const (
	NoopNone             NoopReason = ""
	NoopDuplicate        NoopReason = "duplicate"
	NoopStale            NoopReason = "stale"
	NoopAwaitingApproval NoopReason = "awaiting_host_approval"
)

type Outcome struct {
	Applied bool
	From    Status
	To      Status
	Reason  NoopReason
}
