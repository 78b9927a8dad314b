package repository

//go:generate mockgen -source=ledger.go -destination=../../../tests/mock/repository/ledger_mock.go -package=repositorymock

import (
	"context"
	"time"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/infra"
	"rental-engine/internal/infra/sqlc"
	"rental-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type LedgerWriteQueries interface {
	CountOverlappingReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.SpanParams) (int64, error)
	CountBlockedDays(ctx context.Context, db sqlc.DBTX, arg sqlc.DayRangeParams) (int64, error)
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) (pgtype.Timestamptz, error)
	DeleteReservationsWithin(ctx context.Context, db sqlc.DBTX, arg sqlc.SpanParams) (int64, error)
	UpsertAvailabilityDay(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertAvailabilityDayParams) error
}

// LedgerRepository keeps reservations in a range column guarded by an exclusion
// constraint, so two overlapping spans can never both commit.
type LedgerRepository struct {
	queries LedgerWriteQueries
	db      sqlc.DBTX
	now     func() time.Time
}

func NewLedgerRepository(queries LedgerWriteQueries, db sqlc.DBTX, now func() time.Time) *LedgerRepository {
	return &LedgerRepository{
		queries: queries,
		db:      db,
		now:     now,
	}
}

func (r *LedgerRepository) IsRangeFree(ctx context.Context, listingID uuid.UUID, span availability.Span) (bool, error) {
	overlapping, err := r.queries.CountOverlappingReservations(ctx, r.db, spanParams(listingID, span))
	if err != nil {
		return false, infra.WrapRepoErr("failed to count overlapping reservations", err)
	}
	if overlapping > 0 {
		return false, nil
	}

	blocked, err := r.queries.CountBlockedDays(ctx, r.db, dayRangeParams(listingID, span))
	if err != nil {
		return false, infra.WrapRepoErr("failed to count blocked days", err)
	}
	return blocked == 0, nil
}

func (r *LedgerRepository) Reserve(ctx context.Context, listingID uuid.UUID, span availability.Span, holderID uuid.UUID) (availability.Reservation, error) {
	free, err := r.IsRangeFree(ctx, listingID, span)
	if err != nil {
		return availability.Reservation{}, err
	}
	if !free {
		return availability.Reservation{}, availability.ErrConflict
	}

	res := availability.Reservation{
		ID:        uuid.New(),
		ListingID: listingID,
		HolderID:  holderID,
		Span:      span,
	}
	createdAt, err := r.queries.CreateReservation(ctx, r.db, sqlc.CreateReservationParams{
		ID:        res.ID,
		ListingID: listingID,
		HolderID:  holderID,
		StartAt:   pgconv.TimeToPgtype(span.Start()),
		EndAt:     pgconv.TimeToPgtype(span.End()),
	})
	if err != nil {
		if infra.IsPgCode(err, infra.PgExclusionViolation) {
			return availability.Reservation{}, availability.ErrConflict
		}
		return availability.Reservation{}, infra.WrapRepoErr("failed to create reservation", err)
	}
	res.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return res, nil
}

func (r *LedgerRepository) Release(ctx context.Context, listingID uuid.UUID, span availability.Span) (int, error) {
	n, err := r.queries.DeleteReservationsWithin(ctx, r.db, spanParams(listingID, span))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release reservations", err)
	}
	return int(n), nil
}

func (r *LedgerRepository) SetDay(ctx context.Context, day availability.Day) error {
	err := r.queries.UpsertAvailabilityDay(ctx, r.db, sqlc.UpsertAvailabilityDayParams{
		ListingID:          day.ListingID,
		Day:                pgconv.DateToPgtype(availability.DayOf(day.Date)),
		Available:          day.Available,
		PriceOverrideCents: pgconv.CentsPtrFromDecimal(day.PriceOverride),
		UpdatedAt:          r.now(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to set availability day", err)
	}
	return nil
}

func spanParams(listingID uuid.UUID, span availability.Span) sqlc.SpanParams {
	return sqlc.SpanParams{
		ListingID: listingID,
		StartAt:   pgconv.TimeToPgtype(span.Start()),
		EndAt:     pgconv.TimeToPgtype(span.End()),
	}
}

func dayRangeParams(listingID uuid.UUID, span availability.Span) sqlc.DayRangeParams {
	days := span.Days()
	return sqlc.DayRangeParams{
		ListingID: listingID,
		FromDay:   pgconv.DateToPgtype(days[0]),
		ToDay:     pgconv.DateToPgtype(days[len(days)-1]),
	}
}
