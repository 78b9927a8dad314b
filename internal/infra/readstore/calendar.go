package readstore

//go:generate mockgen -source=calendar.go -destination=../../../tests/mock/readstore/calendar_mock.go -package=readstoremock

import (
	"context"
	"time"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/infra"
	"rental-engine/internal/infra/sqlc"
	"rental-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CalendarViewQueries interface {
	ListAvailabilityDays(ctx context.Context, db sqlc.DBTX, arg sqlc.DayRangeParams) ([]sqlc.AvailabilityDay, error)
	ListReservationsOverlapping(ctx context.Context, db sqlc.DBTX, arg sqlc.SpanParams) ([]sqlc.Reservation, error)
}

type CalendarReadStore struct {
	queries CalendarViewQueries
	db      sqlc.DBTX
}

func NewCalendarReadStore(queries CalendarViewQueries, db sqlc.DBTX) *CalendarReadStore {
	return &CalendarReadStore{
		queries: queries,
		db:      db,
	}
}

// Days returns explicit calendar entries for dates in [from, to).
func (r *CalendarReadStore) Days(ctx context.Context, listingID uuid.UUID, from, to time.Time) ([]availability.Day, error) {
	rows, err := r.queries.ListAvailabilityDays(ctx, r.db, sqlc.DayRangeParams{
		ListingID: listingID,
		FromDay:   pgconv.DateToPgtype(availability.DayOf(from)),
		ToDay:     pgconv.DateToPgtype(availability.DayOf(to.Add(-time.Nanosecond))),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability days", err)
	}

	days := make([]availability.Day, 0, len(rows))
	for _, row := range rows {
		days = append(days, availability.Day{
			ListingID:     row.ListingID,
			Date:          pgconv.DateFromPgtype(row.Day),
			Available:     row.Available,
			PriceOverride: pgconv.DecimalPtrFromCents(row.PriceOverrideCents),
		})
	}
	return days, nil
}

func (r *CalendarReadStore) Reservations(ctx context.Context, listingID uuid.UUID, span availability.Span) ([]availability.Reservation, error) {
	rows, err := r.queries.ListReservationsOverlapping(ctx, r.db, sqlc.SpanParams{
		ListingID: listingID,
		StartAt:   pgconv.TimeToPgtype(span.Start()),
		EndAt:     pgconv.TimeToPgtype(span.End()),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	result := make([]availability.Reservation, 0, len(rows))
	for _, row := range rows {
		s, err := availability.NewSpan(pgconv.TimeFromPgtype(row.StartAt), pgconv.TimeFromPgtype(row.EndAt))
		if err != nil {
			return nil, infra.WrapRepoErr("stored reservation has an empty span", err)
		}
		result = append(result, availability.Reservation{
			ID:        row.ID,
			ListingID: row.ListingID,
			HolderID:  row.HolderID,
			Span:      s,
			CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return result, nil
}
