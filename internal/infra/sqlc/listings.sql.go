package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const listingColumns = `id, host_id, title, active, currency, price_per_day_cents, hourly_allowed,
       price_per_hour_cents, discount_3_days::text, discount_7_days::text, discount_30_days::text,
       latitude, longitude, add_ons, caution_cents, confirmation_policy, created_at, updated_at`

func scanListing(row interface{ Scan(...any) error }) (Listing, error) {
	var i Listing
	err := row.Scan(
		&i.ID,
		&i.HostID,
		&i.Title,
		&i.Active,
		&i.Currency,
		&i.PricePerDayCents,
		&i.HourlyAllowed,
		&i.PricePerHourCents,
		&i.Discount3Days,
		&i.Discount7Days,
		&i.Discount30Days,
		&i.Latitude,
		&i.Longitude,
		&i.AddOns,
		&i.CautionCents,
		&i.ConfirmationPolicy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getListingByID = `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

func (q *Queries) GetListingByID(ctx context.Context, db DBTX, id uuid.UUID) (Listing, error) {
	return scanListing(db.QueryRow(ctx, getListingByID, id))
}

const upsertListing = `
INSERT INTO listings (
    id, host_id, title, active, currency, price_per_day_cents, hourly_allowed,
    price_per_hour_cents, discount_3_days, discount_7_days, discount_30_days,
    latitude, longitude, add_ons, caution_cents, confirmation_policy
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9::text::numeric, $10::text::numeric, $11::text::numeric,
    $12, $13, $14::jsonb, $15, $16
)
ON CONFLICT (id) DO UPDATE SET
    host_id = EXCLUDED.host_id,
    title = EXCLUDED.title,
    active = EXCLUDED.active,
    currency = EXCLUDED.currency,
    price_per_day_cents = EXCLUDED.price_per_day_cents,
    hourly_allowed = EXCLUDED.hourly_allowed,
    price_per_hour_cents = EXCLUDED.price_per_hour_cents,
    discount_3_days = EXCLUDED.discount_3_days,
    discount_7_days = EXCLUDED.discount_7_days,
    discount_30_days = EXCLUDED.discount_30_days,
    latitude = EXCLUDED.latitude,
    longitude = EXCLUDED.longitude,
    add_ons = EXCLUDED.add_ons,
    caution_cents = EXCLUDED.caution_cents,
    confirmation_policy = EXCLUDED.confirmation_policy,
    updated_at = now()`

type UpsertListingParams struct {
	ID                 uuid.UUID
	HostID             uuid.UUID
	Title              string
	Active             bool
	Currency           string
	PricePerDayCents   int64
	HourlyAllowed      bool
	PricePerHourCents  pgtype.Int8
	Discount3Days      pgtype.Text
	Discount7Days      pgtype.Text
	Discount30Days     pgtype.Text
	Latitude           float64
	Longitude          float64
	AddOns             []byte
	CautionCents       pgtype.Int8
	ConfirmationPolicy string
}

func (q *Queries) UpsertListing(ctx context.Context, db DBTX, arg UpsertListingParams) error {
	_, err := db.Exec(ctx, upsertListing,
		arg.ID,
		arg.HostID,
		arg.Title,
		arg.Active,
		arg.Currency,
		arg.PricePerDayCents,
		arg.HourlyAllowed,
		arg.PricePerHourCents,
		arg.Discount3Days,
		arg.Discount7Days,
		arg.Discount30Days,
		arg.Latitude,
		arg.Longitude,
		arg.AddOns,
		arg.CautionCents,
		arg.ConfirmationPolicy,
	)
	return err
}
