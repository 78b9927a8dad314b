package commands

import (
	"context"
	"encoding/json"
	"time"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/payment"
	"rental-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

const jobKindEvent = "event"

const (
	TopicBookingCreated   = "booking.created"
	TopicBookingChanged   = "booking.status_changed"
	TopicBookingCancelled = "booking.cancelled"
	TopicPaymentSucceeded = "payment.succeeded"
	TopicPaymentFailed    = "payment.failed"
	TopicRefundRequested  = "refund.requested"
	TopicRefundSucceeded  = "refund.succeeded"
	TopicRefundEscalated  = "refund.escalated"
	TopicRefundResolved   = "refund.resolved"
)

// BookingEvent is the payload relayed to the broker for every topic above.
type BookingEvent struct {
	BookingID uuid.UUID  `json:"booking_id"`
	ListingID uuid.UUID  `json:"listing_id"`
	GuestID   uuid.UUID  `json:"guest_id"`
	Status    string     `json:"status"`
	From      string     `json:"from,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	PaymentID *uuid.UUID `json:"payment_id,omitempty"`
	Amount    string     `json:"amount,omitempty"`
	Currency  string     `json:"currency,omitempty"`
	At        time.Time  `json:"at"`
}

func bookingEvent(b *booking.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		BookingID: b.ID(),
		ListingID: b.ListingID(),
		GuestID:   b.GuestID(),
		Status:    b.Status().String(),
		At:        at,
	}
}

func (e BookingEvent) withPayment(in *payment.Intent, amount string) BookingEvent {
	id := in.ID()
	e.PaymentID = &id
	e.Amount = amount
	e.Currency = in.Currency()
	return e
}

func enqueue(ctx context.Context, tx shared.Tx, topic string, ev BookingEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, jobKindEvent, topic, payload, ev.At)
}
