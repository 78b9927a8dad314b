package readstore

//go:generate mockgen -source=listing.go -destination=../../../tests/mock/readstore/listing_mock.go -package=readstoremock

import (
	"context"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/listing"
	"rental-engine/internal/infra"
	"rental-engine/internal/infra/repository/converter"
	"rental-engine/internal/infra/sqlc"
	"rental-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ListingViewQueries interface {
	GetListingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Listing, error)
	CountOverlappingReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.SpanParams) (int64, error)
	CountBlockedDays(ctx context.Context, db sqlc.DBTX, arg sqlc.DayRangeParams) (int64, error)
}

type ListingReadStore struct {
	queries ListingViewQueries
	db      sqlc.DBTX
}

func NewListingReadStore(queries ListingViewQueries, db sqlc.DBTX) *ListingReadStore {
	return &ListingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ListingReadStore) ListingByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	row, err := r.queries.GetListingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find listing by ID", err)
	}

	l, err := converter.ListingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode listing", err)
	}
	return l, nil
}

// IsRangeFree is the non-locking variant used for quotes and calendar checks.
func (r *ListingReadStore) IsRangeFree(ctx context.Context, listingID uuid.UUID, span availability.Span) (bool, error) {
	overlapping, err := r.queries.CountOverlappingReservations(ctx, r.db, sqlc.SpanParams{
		ListingID: listingID,
		StartAt:   pgconv.TimeToPgtype(span.Start()),
		EndAt:     pgconv.TimeToPgtype(span.End()),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to count overlapping reservations", err)
	}
	if overlapping > 0 {
		return false, nil
	}

	days := span.Days()
	blocked, err := r.queries.CountBlockedDays(ctx, r.db, sqlc.DayRangeParams{
		ListingID: listingID,
		FromDay:   pgconv.DateToPgtype(days[0]),
		ToDay:     pgconv.DateToPgtype(days[len(days)-1]),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to count blocked days", err)
	}
	return blocked == 0, nil
}
