package repository

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/repository/payment_mock.go -package=repositorymock

import (
	"context"

	"rental-engine/internal/domain/payment"
	"rental-engine/internal/infra"
	"rental-engine/internal/infra/repository/converter"
	"rental-engine/internal/infra/sqlc"
	"rental-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PaymentWriteQueries interface {
	CreatePaymentIntent(ctx context.Context, db sqlc.DBTX, arg sqlc.PaymentIntent) error
	GetPaymentIntentByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.PaymentIntent, error)
	GetPaymentIntentByProviderRefForUpdate(ctx context.Context, db sqlc.DBTX, providerRef string) (sqlc.PaymentIntent, error)
	GetLatestPaymentIntentByBookingForUpdate(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) (sqlc.PaymentIntent, error)
	UpdatePaymentIntent(ctx context.Context, db sqlc.DBTX, arg sqlc.PaymentIntent) (int64, error)
}

type PaymentRepository struct {
	queries PaymentWriteQueries
	db      sqlc.DBTX
}

func NewPaymentRepository(queries PaymentWriteQueries, db sqlc.DBTX) *PaymentRepository {
	return &PaymentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, in *payment.Intent) error {
	if err := r.queries.CreatePaymentIntent(ctx, r.db, converter.IntentToRow(in)); err != nil {
		return infra.WrapRepoErr("failed to create payment intent", err)
	}
	return nil
}

func (r *PaymentRepository) LockByID(ctx context.Context, id uuid.UUID) (*payment.Intent, error) {
	row, err := r.queries.GetPaymentIntentByIDForUpdate(ctx, r.db, id)
	return r.decode(row, err)
}

func (r *PaymentRepository) LockByProviderRef(ctx context.Context, providerRef string) (*payment.Intent, error) {
	row, err := r.queries.GetPaymentIntentByProviderRefForUpdate(ctx, r.db, providerRef)
	return r.decode(row, err)
}

func (r *PaymentRepository) LockLatestByBooking(ctx context.Context, bookingID uuid.UUID) (*payment.Intent, error) {
	row, err := r.queries.GetLatestPaymentIntentByBookingForUpdate(ctx, r.db, bookingID)
	return r.decode(row, err)
}

func (r *PaymentRepository) Save(ctx context.Context, in *payment.Intent) error {
	n, err := r.queries.UpdatePaymentIntent(ctx, r.db, converter.IntentToRow(in))
	if err != nil {
		return infra.WrapRepoErr("failed to update payment intent", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("payment intent was modified concurrently", nil, infra.KindConflict)
	}
	return nil
}

func (r *PaymentRepository) decode(row sqlc.PaymentIntent, err error) (*payment.Intent, error) {
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment intent not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock payment intent", err)
	}
	in, err := converter.IntentFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode payment intent", err)
	}
	return in, nil
}
