package sqlc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Spans are always half-open so touching reservations do not collide.

const createReservation = `
INSERT INTO reservations (id, listing_id, holder_id, span, created_at)
VALUES ($1, $2, $3, tstzrange($4, $5, '[)'), now())
RETURNING created_at`

type CreateReservationParams struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	HolderID  uuid.UUID
	StartAt   pgtype.Timestamptz
	EndAt     pgtype.Timestamptz
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (pgtype.Timestamptz, error) {
	var createdAt pgtype.Timestamptz
	err := db.QueryRow(ctx, createReservation,
		arg.ID,
		arg.ListingID,
		arg.HolderID,
		arg.StartAt,
		arg.EndAt,
	).Scan(&createdAt)
	return createdAt, err
}

const countOverlappingReservations = `
SELECT count(*) FROM reservations
WHERE listing_id = $1 AND span && tstzrange($2, $3, '[)')`

type SpanParams struct {
	ListingID uuid.UUID
	StartAt   pgtype.Timestamptz
	EndAt     pgtype.Timestamptz
}

func (q *Queries) CountOverlappingReservations(ctx context.Context, db DBTX, arg SpanParams) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, countOverlappingReservations, arg.ListingID, arg.StartAt, arg.EndAt).Scan(&n)
	return n, err
}

const countBlockedDays = `
SELECT count(*) FROM availability_days
WHERE listing_id = $1 AND NOT available AND day >= $2 AND day <= $3`

type DayRangeParams struct {
	ListingID uuid.UUID
	FromDay   pgtype.Date
	ToDay     pgtype.Date
}

// CountBlockedDays counts unavailable days in the inclusive range.
func (q *Queries) CountBlockedDays(ctx context.Context, db DBTX, arg DayRangeParams) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, countBlockedDays, arg.ListingID, arg.FromDay, arg.ToDay).Scan(&n)
	return n, err
}

const deleteReservationsWithin = `
DELETE FROM reservations
WHERE listing_id = $1 AND span <@ tstzrange($2, $3, '[)')`

func (q *Queries) DeleteReservationsWithin(ctx context.Context, db DBTX, arg SpanParams) (int64, error) {
	tag, err := db.Exec(ctx, deleteReservationsWithin, arg.ListingID, arg.StartAt, arg.EndAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listReservationsOverlapping = `
SELECT id, listing_id, holder_id, lower(span), upper(span), created_at
FROM reservations
WHERE listing_id = $1 AND span && tstzrange($2, $3, '[)')
ORDER BY lower(span)`

func (q *Queries) ListReservationsOverlapping(ctx context.Context, db DBTX, arg SpanParams) ([]Reservation, error) {
	rows, err := db.Query(ctx, listReservationsOverlapping, arg.ListingID, arg.StartAt, arg.EndAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Reservation
	for rows.Next() {
		var i Reservation
		if err := rows.Scan(&i.ID, &i.ListingID, &i.HolderID, &i.StartAt, &i.EndAt, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const upsertAvailabilityDay = `
INSERT INTO availability_days (listing_id, day, available, price_override_cents, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (listing_id, day) DO UPDATE SET
    available = EXCLUDED.available,
    price_override_cents = EXCLUDED.price_override_cents,
    updated_at = EXCLUDED.updated_at`

type UpsertAvailabilityDayParams struct {
	ListingID          uuid.UUID
	Day                pgtype.Date
	Available          bool
	PriceOverrideCents pgtype.Int8
	UpdatedAt          time.Time
}

func (q *Queries) UpsertAvailabilityDay(ctx context.Context, db DBTX, arg UpsertAvailabilityDayParams) error {
	_, err := db.Exec(ctx, upsertAvailabilityDay,
		arg.ListingID,
		arg.Day,
		arg.Available,
		arg.PriceOverrideCents,
		arg.UpdatedAt,
	)
	return err
}

const listAvailabilityDays = `
SELECT listing_id, day, available, price_override_cents
FROM availability_days
WHERE listing_id = $1 AND day >= $2 AND day <= $3
ORDER BY day`

// ListAvailabilityDays returns explicit entries in the inclusive day range.
func (q *Queries) ListAvailabilityDays(ctx context.Context, db DBTX, arg DayRangeParams) ([]AvailabilityDay, error) {
	rows, err := db.Query(ctx, listAvailabilityDays, arg.ListingID, arg.FromDay, arg.ToDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AvailabilityDay
	for rows.Next() {
		var i AvailabilityDay
		if err := rows.Scan(&i.ListingID, &i.Day, &i.Available, &i.PriceOverrideCents); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
