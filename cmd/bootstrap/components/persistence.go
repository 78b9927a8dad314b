package components

import (
	"context"

	"rental-engine/internal/infra/db"
	"rental-engine/internal/infra/memstore"
	"rental-engine/internal/infra/readstore"
	"rental-engine/internal/infra/sqlc"
	"rental-engine/internal/infra/uow"
	"rental-engine/internal/pkg/clock"
	"rental-engine/internal/pkg/config"
	"rental-engine/internal/pkg/errs"
	"rental-engine/internal/usecase/queries"
	"rental-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStorage,
	),
)

// Storage is the write side and the read stores of one backend.
type Storage struct {
	fx.Out

	UoW      shared.UnitOfWork
	Listings queries.ListingReadStore
	Bookings queries.BookingReadStore
	Calendar queries.CalendarReadStore
}

func NewStorage(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) (Storage, error) {
	switch cfg.DB.Driver {
	case config.DBDriverMemory:
		store := memstore.New()
		return Storage{UoW: store, Listings: store, Bookings: store, Calendar: store}, nil

	case config.DBDriverPostgres:
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return Storage{}, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				if cleanup != nil {
					cleanup()
				}
				return nil
			},
		})

		q := sqlc.New()
		return Storage{
			UoW:      uow.NewPostgresUoW(pool, q, clk),
			Listings: readstore.NewListingReadStore(q, pool),
			Bookings: readstore.NewBookingReadStore(q, pool),
			Calendar: readstore.NewCalendarReadStore(q, pool),
		}, nil

	default:
		return Storage{}, errs.Newf("unknown DB_DRIVER %q", cfg.DB.Driver)
	}
}
