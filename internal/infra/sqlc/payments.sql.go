package sqlc

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const paymentIntentColumns = `id, booking_id, provider_ref, amount_cents, currency, status, refund_status,
       refund_amount_cents, refund_partial, refund_reason, refund_attempts, refund_next_attempt_at,
       refund_last_error, refund_resolved_by, refund_resolution_note, refund_completed_at, version,
       created_at, updated_at`

func scanPaymentIntent(row interface{ Scan(...any) error }) (PaymentIntent, error) {
	var i PaymentIntent
	err := row.Scan(
		&i.ID,
		&i.BookingID,
		&i.ProviderRef,
		&i.AmountCents,
		&i.Currency,
		&i.Status,
		&i.RefundStatus,
		&i.RefundAmountCents,
		&i.RefundPartial,
		&i.RefundReason,
		&i.RefundAttempts,
		&i.RefundNextAttemptAt,
		&i.RefundLastError,
		&i.RefundResolvedBy,
		&i.RefundResolutionNote,
		&i.RefundCompletedAt,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createPaymentIntent = `
INSERT INTO payment_intents (
    id, booking_id, provider_ref, amount_cents, currency, status, refund_status,
    refund_amount_cents, refund_partial, refund_reason, refund_attempts, refund_next_attempt_at,
    refund_last_error, refund_resolved_by, refund_resolution_note, refund_completed_at, version,
    created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
)`

func (q *Queries) CreatePaymentIntent(ctx context.Context, db DBTX, arg PaymentIntent) error {
	_, err := db.Exec(ctx, createPaymentIntent,
		arg.ID,
		arg.BookingID,
		arg.ProviderRef,
		arg.AmountCents,
		arg.Currency,
		arg.Status,
		arg.RefundStatus,
		arg.RefundAmountCents,
		arg.RefundPartial,
		arg.RefundReason,
		arg.RefundAttempts,
		arg.RefundNextAttemptAt,
		arg.RefundLastError,
		arg.RefundResolvedBy,
		arg.RefundResolutionNote,
		arg.RefundCompletedAt,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getPaymentIntentByIDForUpdate = `SELECT ` + paymentIntentColumns + `
FROM payment_intents WHERE id = $1 FOR UPDATE`

func (q *Queries) GetPaymentIntentByIDForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (PaymentIntent, error) {
	return scanPaymentIntent(db.QueryRow(ctx, getPaymentIntentByIDForUpdate, id))
}

const getPaymentIntentByProviderRefForUpdate = `SELECT ` + paymentIntentColumns + `
FROM payment_intents WHERE provider_ref = $1 FOR UPDATE`

func (q *Queries) GetPaymentIntentByProviderRefForUpdate(ctx context.Context, db DBTX, providerRef string) (PaymentIntent, error) {
	return scanPaymentIntent(db.QueryRow(ctx, getPaymentIntentByProviderRefForUpdate, providerRef))
}

const getLatestPaymentIntentByBooking = `SELECT ` + paymentIntentColumns + `
FROM payment_intents WHERE booking_id = $1
ORDER BY seq DESC
LIMIT 1`

func (q *Queries) GetLatestPaymentIntentByBooking(ctx context.Context, db DBTX, bookingID uuid.UUID) (PaymentIntent, error) {
	return scanPaymentIntent(db.QueryRow(ctx, getLatestPaymentIntentByBooking, bookingID))
}

const getLatestPaymentIntentByBookingForUpdate = getLatestPaymentIntentByBooking + ` FOR UPDATE`

func (q *Queries) GetLatestPaymentIntentByBookingForUpdate(ctx context.Context, db DBTX, bookingID uuid.UUID) (PaymentIntent, error) {
	return scanPaymentIntent(db.QueryRow(ctx, getLatestPaymentIntentByBookingForUpdate, bookingID))
}

const updatePaymentIntent = `
UPDATE payment_intents SET
    status = $3,
    refund_status = $4,
    refund_amount_cents = $5,
    refund_partial = $6,
    refund_reason = $7,
    refund_attempts = $8,
    refund_next_attempt_at = $9,
    refund_last_error = $10,
    refund_resolved_by = $11,
    refund_resolution_note = $12,
    refund_completed_at = $13,
    updated_at = $14,
    version = version + 1
WHERE id = $1 AND version = $2`

// UpdatePaymentIntent writes the mutable columns of arg. Zero rows means the version moved on.
func (q *Queries) UpdatePaymentIntent(ctx context.Context, db DBTX, arg PaymentIntent) (int64, error) {
	tag, err := db.Exec(ctx, updatePaymentIntent,
		arg.ID,
		arg.Version,
		arg.Status,
		arg.RefundStatus,
		arg.RefundAmountCents,
		arg.RefundPartial,
		arg.RefundReason,
		arg.RefundAttempts,
		arg.RefundNextAttemptAt,
		arg.RefundLastError,
		arg.RefundResolvedBy,
		arg.RefundResolutionNote,
		arg.RefundCompletedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listDueRefundIntentIDs = `
SELECT id FROM payment_intents
WHERE refund_status IN ('requested', 'processing', 'failed')
  AND (refund_next_attempt_at IS NULL OR refund_next_attempt_at <= $1)
ORDER BY refund_next_attempt_at NULLS FIRST
LIMIT $2`

func (q *Queries) ListDueRefundIntentIDs(ctx context.Context, db DBTX, now time.Time, limit int32) ([]uuid.UUID, error) {
	return collectIDs(db.Query(ctx, listDueRefundIntentIDs, now, limit))
}
