package converter

import (
	"encoding/json"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/pricing"
	"rental-engine/internal/domain/user"
	"rental-engine/internal/infra/sqlc"
	"rental-engine/internal/pkg/pgconv"

	"github.com/shopspring/decimal"
)

type addOnFeeJSON struct {
	Kind       string   `json:"kind"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Amount     string   `json:"amount"`
}

func BookingToCreateParams(b *booking.Booking) (sqlc.CreateBookingParams, error) {
	fees := make([]addOnFeeJSON, 0, len(b.AddOns()))
	for _, f := range b.AddOns() {
		fees = append(fees, addOnFeeJSON{Kind: string(f.Kind), DistanceKm: f.DistanceKm, Amount: f.Amount.String()})
	}
	addOns, err := json.Marshal(fees)
	if err != nil {
		return sqlc.CreateBookingParams{}, err
	}

	q := b.Quote()
	return sqlc.CreateBookingParams{
		ID:               b.ID(),
		ListingID:        b.ListingID(),
		GuestID:          b.GuestID(),
		HostID:           b.HostID(),
		StartAt:          pgconv.TimeToPgtype(b.Span().Start()),
		EndAt:            pgconv.TimeToPgtype(b.Span().End()),
		Currency:         q.Currency,
		BillingMode:      q.BillingMode.String(),
		Units:            int32(q.Units),
		Hours:            int32(q.Hours),
		Days:             int32(q.Days),
		BasePriceCents:   pgconv.CentsFromDecimal(q.BasePrice),
		DiscountPercent:  q.DiscountPercent.String(),
		DiscountTierDays: int32(q.DiscountTierDays),
		FinalPriceCents:  pgconv.CentsFromDecimal(q.FinalPrice),
		AddOns:           addOns,
		TotalCents:       pgconv.CentsFromDecimal(b.Total()),
		CautionCents:     pgconv.CentsPtrFromDecimal(b.Caution()),
		Status:           b.Status().String(),
		CancelReason:     pgconv.StringPtrToPgtype(b.CancelReason()),
		Version:          int32(b.Version()),
		CreatedAt:        pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:        pgconv.TimeToPgtype(b.UpdatedAt()),
	}, nil
}

func BookingToUpdateParams(b *booking.Booking) sqlc.UpdateBookingParams {
	return sqlc.UpdateBookingParams{
		ID:           b.ID(),
		Version:      int32(b.Version()),
		Status:       b.Status().String(),
		CancelReason: pgconv.StringPtrToPgtype(b.CancelReason()),
		UpdatedAt:    pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

// HistoryToRows numbers status changes from zero in the order they happened.
func HistoryToRows(b *booking.Booking) []sqlc.BookingStatusChange {
	rows := make([]sqlc.BookingStatusChange, 0, len(b.History()))
	for i, h := range b.History() {
		rows = append(rows, sqlc.BookingStatusChange{
			BookingID: b.ID(),
			Seq:       int32(i),
			Status:    h.Status.String(),
			At:        pgconv.TimeToPgtype(h.At),
			ActorID:   h.ActorID,
			ActorRole: h.ActorRole.String(),
			Reason:    h.Reason,
		})
	}
	return rows
}

func BookingFromRow(row sqlc.Booking, history []sqlc.BookingStatusChange) (*booking.Booking, error) {
	var fees []addOnFeeJSON
	if len(row.AddOns) > 0 {
		if err := json.Unmarshal(row.AddOns, &fees); err != nil {
			return nil, err
		}
	}
	addOns := make([]pricing.AddOnFee, 0, len(fees))
	for _, f := range fees {
		amount, err := decimal.NewFromString(f.Amount)
		if err != nil {
			return nil, pgconv.ErrInvalidDecimalValue
		}
		addOns = append(addOns, pricing.AddOnFee{Kind: pricing.AddOnKind(f.Kind), DistanceKm: f.DistanceKm, Amount: amount})
	}
	percent, err := decimal.NewFromString(row.DiscountPercent)
	if err != nil {
		return nil, pgconv.ErrInvalidDecimalValue
	}

	changes := make([]booking.StatusChange, 0, len(history))
	for _, h := range history {
		changes = append(changes, booking.StatusChange{
			Status:    booking.Status(h.Status),
			At:        pgconv.TimeFromPgtype(h.At),
			ActorID:   h.ActorID,
			ActorRole: user.Role(h.ActorRole),
			Reason:    h.Reason,
		})
	}

	return booking.Reconstruct(booking.Snapshot{
		ID:        row.ID,
		ListingID: row.ListingID,
		GuestID:   row.GuestID,
		HostID:    row.HostID,
		StartAt:   pgconv.TimeFromPgtype(row.StartAt),
		EndAt:     pgconv.TimeFromPgtype(row.EndAt),
		Quote: pricing.Quote{
			BasePrice:        pgconv.DecimalFromCents(row.BasePriceCents),
			DiscountPercent:  percent,
			FinalPrice:       pgconv.DecimalFromCents(row.FinalPriceCents),
			Currency:         row.Currency,
			BillingMode:      pricing.BillingMode(row.BillingMode),
			Units:            int(row.Units),
			Hours:            int(row.Hours),
			Days:             int(row.Days),
			DiscountTierDays: int(row.DiscountTierDays),
		},
		AddOns:       addOns,
		Total:        pgconv.DecimalFromCents(row.TotalCents),
		Caution:      pgconv.DecimalPtrFromCents(row.CautionCents),
		Status:       booking.Status(row.Status),
		History:      changes,
		CancelReason: pgconv.StringPtrFromPgtype(row.CancelReason),
		Version:      int(row.Version),
		CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:    pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}
