package repository

//go:generate mockgen -source=listing.go -destination=../../../tests/mock/repository/listing_mock.go -package=repositorymock

import (
	"context"

	"rental-engine/internal/domain/listing"
	"rental-engine/internal/infra"
	"rental-engine/internal/infra/repository/converter"
	"rental-engine/internal/infra/sqlc"
)

type ListingWriteQueries interface {
	UpsertListing(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertListingParams) error
}

type ListingRepository struct {
	queries ListingWriteQueries
	db      sqlc.DBTX
}

func NewListingRepository(queries ListingWriteQueries, db sqlc.DBTX) *ListingRepository {
	return &ListingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ListingRepository) Upsert(ctx context.Context, l *listing.Listing) error {
	params, err := converter.ListingToUpsertParams(l)
	if err != nil {
		return infra.WrapRepoErr("failed to encode listing add-ons", err)
	}
	if err := r.queries.UpsertListing(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to upsert listing", err)
	}
	return nil
}
