package repository

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/repository/booking_mock.go -package=repositorymock

import (
	"context"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/infra"
	"rental-engine/internal/infra/repository/converter"
	"rental-engine/internal/infra/sqlc"
	"rental-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) error
	GetBookingByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Booking, error)
	UpdateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingParams) (int64, error)
	InsertBookingStatusChange(ctx context.Context, db sqlc.DBTX, arg sqlc.BookingStatusChange) error
	ListBookingStatusChanges(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) ([]sqlc.BookingStatusChange, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	params, err := converter.BookingToCreateParams(b)
	if err != nil {
		return infra.WrapRepoErr("failed to encode booking add-ons", err)
	}
	if err := r.queries.CreateBooking(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return r.appendHistory(ctx, b)
}

func (r *BookingRepository) LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByIDForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
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

func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	n, err := r.queries.UpdateBooking(ctx, r.db, converter.BookingToUpdateParams(b))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("booking was modified concurrently", nil, infra.KindConflict)
	}
	return r.appendHistory(ctx, b)
}

// appendHistory writes every status change; rows already stored are left untouched.
func (r *BookingRepository) appendHistory(ctx context.Context, b *booking.Booking) error {
	for _, row := range converter.HistoryToRows(b) {
		if err := r.queries.InsertBookingStatusChange(ctx, r.db, row); err != nil {
			return infra.WrapRepoErr("failed to record booking status change", err)
		}
	}
	return nil
}
