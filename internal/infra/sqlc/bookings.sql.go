package sqlc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, listing_id, guest_id, host_id, start_at, end_at, currency, billing_mode,
       units, hours, days, base_price_cents, discount_percent::text, discount_tier_days,
       final_price_cents, add_ons, total_cents, caution_cents, status, cancel_reason, version,
       created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (Booking, error) {
	var i Booking
	err := row.Scan(
		&i.ID,
		&i.ListingID,
		&i.GuestID,
		&i.HostID,
		&i.StartAt,
		&i.EndAt,
		&i.Currency,
		&i.BillingMode,
		&i.Units,
		&i.Hours,
		&i.Days,
		&i.BasePriceCents,
		&i.DiscountPercent,
		&i.DiscountTierDays,
		&i.FinalPriceCents,
		&i.AddOns,
		&i.TotalCents,
		&i.CautionCents,
		&i.Status,
		&i.CancelReason,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectBookings(rows pgx.Rows, err error) ([]Booking, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Booking
	for rows.Next() {
		i, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createBooking = `
INSERT INTO bookings (
    id, listing_id, guest_id, host_id, start_at, end_at, currency, billing_mode, units, hours,
    days, base_price_cents, discount_percent, discount_tier_days, final_price_cents, add_ons,
    total_cents, caution_cents, status, cancel_reason, version, created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::text::numeric, $14, $15, $16::jsonb,
    $17, $18, $19, $20, $21, $22, $23
)`

type CreateBookingParams struct {
	ID               uuid.UUID
	ListingID        uuid.UUID
	GuestID          uuid.UUID
	HostID           uuid.UUID
	StartAt          pgtype.Timestamptz
	EndAt            pgtype.Timestamptz
	Currency         string
	BillingMode      string
	Units            int32
	Hours            int32
	Days             int32
	BasePriceCents   int64
	DiscountPercent  string
	DiscountTierDays int32
	FinalPriceCents  int64
	AddOns           []byte
	TotalCents       int64
	CautionCents     pgtype.Int8
	Status           string
	CancelReason     pgtype.Text
	Version          int32
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

func (q *Queries) CreateBooking(ctx context.Context, db DBTX, arg CreateBookingParams) error {
	_, err := db.Exec(ctx, createBooking,
		arg.ID,
		arg.ListingID,
		arg.GuestID,
		arg.HostID,
		arg.StartAt,
		arg.EndAt,
		arg.Currency,
		arg.BillingMode,
		arg.Units,
		arg.Hours,
		arg.Days,
		arg.BasePriceCents,
		arg.DiscountPercent,
		arg.DiscountTierDays,
		arg.FinalPriceCents,
		arg.AddOns,
		arg.TotalCents,
		arg.CautionCents,
		arg.Status,
		arg.CancelReason,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getBookingByID = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

func (q *Queries) GetBookingByID(ctx context.Context, db DBTX, id uuid.UUID) (Booking, error) {
	return scanBooking(db.QueryRow(ctx, getBookingByID, id))
}

const getBookingByIDForUpdate = getBookingByID + ` FOR UPDATE`

func (q *Queries) GetBookingByIDForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Booking, error) {
	return scanBooking(db.QueryRow(ctx, getBookingByIDForUpdate, id))
}

const updateBooking = `
UPDATE bookings
SET status = $3, cancel_reason = $4, updated_at = $5, version = version + 1
WHERE id = $1 AND version = $2`

type UpdateBookingParams struct {
	ID           uuid.UUID
	Version      int32
	Status       string
	CancelReason pgtype.Text
	UpdatedAt    pgtype.Timestamptz
}

// UpdateBooking returns the number of rows written; zero means the version moved on.
func (q *Queries) UpdateBooking(ctx context.Context, db DBTX, arg UpdateBookingParams) (int64, error) {
	tag, err := db.Exec(ctx, updateBooking, arg.ID, arg.Version, arg.Status, arg.CancelReason, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const insertBookingStatusChange = `
INSERT INTO booking_status_history (booking_id, seq, status, at, actor_id, actor_role, reason)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (booking_id, seq) DO NOTHING`

func (q *Queries) InsertBookingStatusChange(ctx context.Context, db DBTX, arg BookingStatusChange) error {
	_, err := db.Exec(ctx, insertBookingStatusChange,
		arg.BookingID,
		arg.Seq,
		arg.Status,
		arg.At,
		arg.ActorID,
		arg.ActorRole,
		arg.Reason,
	)
	return err
}

const listBookingStatusChanges = `
SELECT booking_id, seq, status, at, actor_id, actor_role, reason
FROM booking_status_history
WHERE booking_id = $1
ORDER BY seq`

func (q *Queries) ListBookingStatusChanges(ctx context.Context, db DBTX, bookingID uuid.UUID) ([]BookingStatusChange, error) {
	rows, err := db.Query(ctx, listBookingStatusChanges, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BookingStatusChange
	for rows.Next() {
		var i BookingStatusChange
		if err := rows.Scan(&i.BookingID, &i.Seq, &i.Status, &i.At, &i.ActorID, &i.ActorRole, &i.Reason); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listBookingsByPartyFirstPage = `SELECT ` + bookingColumns + `
FROM bookings
WHERE guest_id = $1 OR host_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

type ListBookingsByPartyFirstPageParams struct {
	PartyID uuid.UUID
	Limit   int32
}

func (q *Queries) ListBookingsByPartyFirstPage(ctx context.Context, db DBTX, arg ListBookingsByPartyFirstPageParams) ([]Booking, error) {
	return collectBookings(db.Query(ctx, listBookingsByPartyFirstPage, arg.PartyID, arg.Limit))
}

const listBookingsByPartyKeyset = `SELECT ` + bookingColumns + `
FROM bookings
WHERE (guest_id = $1 OR host_id = $1) AND (created_at, id) < ($2::timestamptz, $3::uuid)
ORDER BY created_at DESC, id DESC
LIMIT $4`

type ListBookingsByPartyKeysetParams struct {
	PartyID   uuid.UUID
	CreatedAt pgtype.Timestamptz
	ID        uuid.UUID
	Limit     int32
}

func (q *Queries) ListBookingsByPartyKeyset(ctx context.Context, db DBTX, arg ListBookingsByPartyKeysetParams) ([]Booking, error) {
	return collectBookings(db.Query(ctx, listBookingsByPartyKeyset, arg.PartyID, arg.CreatedAt, arg.ID, arg.Limit))
}

const listStalePendingBookingIDs = `
SELECT id FROM bookings
WHERE status = 'pending' AND created_at < $1
ORDER BY created_at
LIMIT $2`

func (q *Queries) ListStalePendingBookingIDs(ctx context.Context, db DBTX, createdBefore time.Time, limit int32) ([]uuid.UUID, error) {
	return collectIDs(db.Query(ctx, listStalePendingBookingIDs, createdBefore, limit))
}

func collectIDs(rows pgx.Rows, err error) ([]uuid.UUID, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
