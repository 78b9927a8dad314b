package converter

import (
	"rental-engine/internal/domain/payment"
	"rental-engine/internal/infra/sqlc"
	"rental-engine/internal/pkg/pgconv"
)

func IntentToRow(in *payment.Intent) sqlc.PaymentIntent {
	s := in.Snapshot()
	return sqlc.PaymentIntent{
		ID:                   s.ID,
		BookingID:            s.BookingID,
		ProviderRef:          s.ProviderRef,
		AmountCents:          pgconv.CentsFromDecimal(s.Amount),
		Currency:             s.Currency,
		Status:               s.Status.String(),
		RefundStatus:         s.Refund.Status.String(),
		RefundAmountCents:    pgconv.CentsFromDecimal(s.Refund.Amount),
		RefundPartial:        s.Refund.Partial,
		RefundReason:         s.Refund.Reason,
		RefundAttempts:       int32(s.Refund.Attempts),
		RefundNextAttemptAt:  pgconv.TimePtrToPgtype(s.Refund.NextAttemptAt),
		RefundLastError:      pgconv.StringPtrToPgtype(s.Refund.LastError),
		RefundResolvedBy:     pgconv.UUIDPtrToPgtype(s.Refund.ResolvedBy),
		RefundResolutionNote: pgconv.StringPtrToPgtype(s.Refund.ResolutionNote),
		RefundCompletedAt:    pgconv.TimePtrToPgtype(s.Refund.CompletedAt),
		Version:              int32(s.Version),
		CreatedAt:            pgconv.TimeToPgtype(s.CreatedAt),
		UpdatedAt:            pgconv.TimeToPgtype(s.UpdatedAt),
	}
}

func IntentFromRow(row sqlc.PaymentIntent) (*payment.Intent, error) {
	return payment.Reconstruct(payment.Snapshot{
		ID:          row.ID,
		BookingID:   row.BookingID,
		ProviderRef: row.ProviderRef,
		Amount:      pgconv.DecimalFromCents(row.AmountCents),
		Currency:    row.Currency,
		Status:      payment.IntentStatus(row.Status),
		Refund: payment.Refund{
			Status:         payment.RefundStatus(row.RefundStatus),
			Amount:         pgconv.DecimalFromCents(row.RefundAmountCents),
			Partial:        row.RefundPartial,
			Reason:         row.RefundReason,
			Attempts:       int(row.RefundAttempts),
			NextAttemptAt:  pgconv.TimePtrFromPgtype(row.RefundNextAttemptAt),
			LastError:      pgconv.StringPtrFromPgtype(row.RefundLastError),
			ResolvedBy:     pgconv.UUIDPtrFromPgtype(row.RefundResolvedBy),
			ResolutionNote: pgconv.StringPtrFromPgtype(row.RefundResolutionNote),
			CompletedAt:    pgconv.TimePtrFromPgtype(row.RefundCompletedAt),
		},
		Version:   int(row.Version),
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}
