package readstore

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/readstore/booking_mock.go -package=readstoremock

import (
	"context"
	"time"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/payment"
	"rental-engine/internal/infra"
	"rental-engine/internal/infra/repository/converter"
	"rental-engine/internal/infra/sqlc"
	"rental-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingViewQueries interface {
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Booking, error)
	ListBookingStatusChanges(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) ([]sqlc.BookingStatusChange, error)
	GetLatestPaymentIntentByBooking(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) (sqlc.PaymentIntent, error)
	ListBookingsByPartyFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByPartyFirstPageParams) ([]sqlc.Booking, error)
	ListBookingsByPartyKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByPartyKeysetParams) ([]sqlc.Booking, error)
	ListDueRefundIntentIDs(ctx context.Context, db sqlc.DBTX, now time.Time, limit int32) ([]uuid.UUID, error)
	ListStalePendingBookingIDs(ctx context.Context, db sqlc.DBTX, createdBefore time.Time, limit int32) ([]uuid.UUID, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	history, err := r.queries.ListBookingStatusChanges(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking history", err)
	}

	b, err := converter.BookingFromRow(row, history)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking", err)
	}
	return b, nil
}

func (r *BookingReadStore) LatestIntent(ctx context.Context, bookingID uuid.UUID) (*payment.Intent, error) {
	row, err := r.queries.GetLatestPaymentIntentByBooking(ctx, r.db, bookingID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment intent not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find latest payment intent", err)
	}

	in, err := converter.IntentFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode payment intent", err)
	}
	return in, nil
}

// BookingsFirstPage lists bookings where partyID is guest or host, newest first.
// List pages carry no status history.
func (r *BookingReadStore) BookingsFirstPage(ctx context.Context, partyID uuid.UUID, limit int32) ([]*booking.Booking, error) {
	rows, err := r.queries.ListBookingsByPartyFirstPage(ctx, r.db, sqlc.ListBookingsByPartyFirstPageParams{
		PartyID: partyID,
		Limit:   limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings first page", err)
	}
	return decodeBookings(rows)
}

func (r *BookingReadStore) BookingsKeyset(ctx context.Context, partyID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*booking.Booking, error) {
	rows, err := r.queries.ListBookingsByPartyKeyset(ctx, r.db, sqlc.ListBookingsByPartyKeysetParams{
		PartyID:   partyID,
		CreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		ID:        lastID,
		Limit:     limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings with keyset", err)
	}
	return decodeBookings(rows)
}

func (r *BookingReadStore) DueRefunds(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListDueRefundIntentIDs(ctx, r.db, now, int32(limit))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list due refunds", err)
	}
	return ids, nil
}

func (r *BookingReadStore) StalePendingBookings(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListStalePendingBookingIDs(ctx, r.db, createdBefore, int32(limit))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stale pending bookings", err)
	}
	return ids, nil
}

func decodeBookings(rows []sqlc.Booking) ([]*booking.Booking, error) {
	result := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := converter.BookingFromRow(row, nil)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode booking", err)
		}
		result = append(result, b)
	}
	return result, nil
}
