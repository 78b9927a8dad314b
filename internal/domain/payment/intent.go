package payment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidIntent        = errors.New("invalid payment intent")
	ErrRefundNotAllowed     = errors.New("refund not allowed for this payment")
	ErrInvalidRefundAmount  = errors.New("refund amount must be positive and not exceed the captured amount")
	ErrRefundNotOutstanding = errors.New("no outstanding refund to resolve")
)

type Refund struct {
	Status         RefundStatus
	Amount         decimal.Decimal
	Partial        bool
	Reason         string
	Attempts       int
	NextAttemptAt  *time.Time
	LastError      *string
	ResolvedBy     *uuid.UUID
	ResolutionNote *string
	CompletedAt    *time.Time
}

// Intent is one attempt to collect the booking amount through the processor.
type Intent struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	providerRef string
	amount      decimal.Decimal
	currency    string
	status      IntentStatus
	refund      Refund
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

type NewIntentParams struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	ProviderRef string
	Amount      decimal.Decimal
	Currency    string
	At          time.Time
}

func NewIntent(p NewIntentParams) (*Intent, error) {
	if strings.TrimSpace(p.ProviderRef) == "" || !p.Amount.IsPositive() || p.BookingID == uuid.Nil {
		return nil, ErrInvalidIntent
	}
	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Intent{
		id:          id,
		bookingID:   p.BookingID,
		providerRef: p.ProviderRef,
		amount:      p.Amount,
		currency:    p.Currency,
		status:      IntentPending,
		refund:      Refund{Status: RefundNone},
		createdAt:   p.At,
		updatedAt:   p.At,
	}, nil
}

// MarkSucceeded returns false when the intent was not pending, which makes
// redelivered callbacks harmless.
func (i *Intent) MarkSucceeded(at time.Time) bool {
	if i.status != IntentPending {
		return false
	}
	i.status = IntentSucceeded
	i.updatedAt = at
	return true
}

func (i *Intent) MarkFailed(at time.Time) bool {
	if i.status != IntentPending {
		return false
	}
	i.status = IntentFailed
	i.updatedAt = at
	return true
}

// Covers reports whether the intent settled at least total.
func (i *Intent) Covers(total decimal.Decimal) bool {
	return i.status == IntentSucceeded && i.amount.GreaterThanOrEqual(total)
}

// RequestRefund opens a refund. A nil amount refunds everything captured.
func (i *Intent) RequestRefund(amount *decimal.Decimal, reason string, at time.Time) error {
	if i.status != IntentSucceeded || i.refund.Status != RefundNone {
		return ErrRefundNotAllowed
	}
	refundAmount := i.amount
	partial := false
	if amount != nil {
		if !amount.IsPositive() || amount.GreaterThan(i.amount) {
			return ErrInvalidRefundAmount
		}
		refundAmount = *amount
		partial = amount.LessThan(i.amount)
	}
	next := at
	i.refund = Refund{
		Status:        RefundRequested,
		Amount:        refundAmount,
		Partial:       partial,
		Reason:        reason,
		NextAttemptAt: &next,
	}
	i.updatedAt = at
	return nil
}

// RefundDue reports whether a worker may attempt the refund now.
func (i *Intent) RefundDue(now time.Time) bool {
	switch i.refund.Status {
	case RefundRequested, RefundFailed, RefundProcessing:
		return i.refund.NextAttemptAt == nil || !now.Before(*i.refund.NextAttemptAt)
	default:
		return false
	}
}

// ClaimRefund reserves the next attempt for the caller for one lease period.
func (i *Intent) ClaimRefund(now time.Time, policy RetryPolicy) bool {
	if !i.RefundDue(now) {
		return false
	}
	leaseEnd := now.Add(policy.Lease)
	i.refund.Status = RefundProcessing
	i.refund.Attempts++
	i.refund.NextAttemptAt = &leaseEnd
	i.updatedAt = now
	return true
}

func (i *Intent) RecordRefundSuccess(at time.Time) {
	i.refund.Status = RefundSucceeded
	i.refund.NextAttemptAt = nil
	i.refund.LastError = nil
	i.refund.CompletedAt = &at
	if i.refund.Partial {
		i.status = IntentPartiallyRefunded
	} else {
		i.status = IntentRefunded
	}
	i.updatedAt = at
}

// RecordRefundFailure schedules the next attempt, or escalates once attempts are exhausted.
func (i *Intent) RecordRefundFailure(cause string, at time.Time, policy RetryPolicy) (escalated bool) {
	i.refund.LastError = &cause
	i.updatedAt = at
	if i.refund.Attempts >= policy.MaxAttempts {
		i.refund.Status = RefundEscalated
		i.refund.NextAttemptAt = nil
		return true
	}
	next := at.Add(policy.Backoff(i.refund.Attempts))
	i.refund.Status = RefundFailed
	i.refund.NextAttemptAt = &next
	return false
}

// ResolveRefundManually records that an operator settled the refund outside the processor.
func (i *Intent) ResolveRefundManually(by uuid.UUID, note string, at time.Time) error {
	if !i.refund.Status.Outstanding() {
		return ErrRefundNotOutstanding
	}
	i.refund.Status = RefundManuallyResolved
	i.refund.ResolvedBy = &by
	i.refund.ResolutionNote = &note
	i.refund.NextAttemptAt = nil
	i.refund.CompletedAt = &at
	i.updatedAt = at
	return nil
}

func (i *Intent) ID() uuid.UUID           { return i.id }
func (i *Intent) BookingID() uuid.UUID    { return i.bookingID }
func (i *Intent) ProviderRef() string     { return i.providerRef }
func (i *Intent) Amount() decimal.Decimal { return i.amount }
func (i *Intent) Currency() string        { return i.currency }
func (i *Intent) Status() IntentStatus    { return i.status }
func (i *Intent) Refund() Refund          { return i.refund }
func (i *Intent) Version() int            { return i.version }
func (i *Intent) CreatedAt() time.Time    { return i.createdAt }
func (i *Intent) UpdatedAt() time.Time    { return i.updatedAt }
