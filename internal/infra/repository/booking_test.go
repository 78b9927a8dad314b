//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/user"
	"rental-engine/internal/infra"
	"rental-engine/internal/infra/repository"
	"rental-engine/internal/infra/repository/converter"
	"rental-engine/internal/infra/sqlc"
	"rental-engine/tests/common/builder"
	repositorymock "rental-engine/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Create Booking Tests
// =============================================================================

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockBookingWriteQueries, *booking.Booking, sqlc.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: booking and its first status change are written",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, db sqlc.DBTX) {
				mock.EXPECT().CreateBooking(ctx, db, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.CreateBookingParams) error {
						assert.Equal(t, b.ID(), arg.ID)
						assert.Equal(t, "pending", arg.Status)
						assert.Equal(t, int64(12150), arg.TotalCents)
						return nil
					})
				mock.EXPECT().InsertBookingStatusChange(ctx, db, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.BookingStatusChange) error {
						assert.Equal(t, int32(0), arg.Seq)
						assert.Equal(t, "pending", arg.Status)
						return nil
					})
			},
		},
		{
			name: "error: duplicate booking id",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, _ *booking.Booking, db sqlc.DBTX) {
				dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
				mock.EXPECT().CreateBooking(ctx, db, gomock.Any()).Return(dup)
			},
			expectedError: true,
			expectKind:    infra.KindDuplicateKey,
		},
		{
			name: "error: history insert fails",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, _ *booking.Booking, db sqlc.DBTX) {
				mock.EXPECT().CreateBooking(ctx, db, gomock.Any()).Return(nil)
				mock.EXPECT().InsertBookingStatusChange(ctx, db, gomock.Any()).Return(errors.New("connection reset"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries, mockDB)

			b, err := builder.NewBookingBuilder().BuildDomain()
			require.NoError(t, err)

			tc.setupMock(mockQueries, b, mockDB)

			actualError := repo.Create(ctx, b)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

// =============================================================================
// Lock Booking Tests
// =============================================================================

func TestBookingRepository_LockByID(t *testing.T) {
	ctx := context.Background()
	stored := builder.NewBookingBuilder().MustBuild()
	params, err := converter.BookingToCreateParams(stored)
	require.NoError(t, err)
	row := sqlc.Booking(params)
	history := converter.HistoryToRows(stored)

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockBookingWriteQueries, sqlc.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: booking is rebuilt with its history",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, db sqlc.DBTX) {
				mock.EXPECT().GetBookingByIDForUpdate(ctx, db, stored.ID()).Return(row, nil)
				mock.EXPECT().ListBookingStatusChanges(ctx, db, stored.ID()).Return(history, nil)
			},
		},
		{
			name: "error: booking not found",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, db sqlc.DBTX) {
				mock.EXPECT().GetBookingByIDForUpdate(ctx, db, stored.ID()).Return(sqlc.Booking{}, pgx.ErrNoRows)
			},
			expectedError: true,
			expectKind:    infra.KindNotFound,
		},
		{
			name: "error: history query fails",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, db sqlc.DBTX) {
				mock.EXPECT().GetBookingByIDForUpdate(ctx, db, stored.ID()).Return(row, nil)
				mock.EXPECT().ListBookingStatusChanges(ctx, db, stored.ID()).Return(nil, errors.New("timeout"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries, mockDB)

			tc.setupMock(mockQueries, mockDB)

			got, actualError := repo.LockByID(ctx, stored.ID())

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, actualError)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, actualError)
			assert.Equal(t, stored.ID(), got.ID())
			assert.Equal(t, booking.StatusPending, got.Status())
			assert.True(t, stored.Total().Equal(got.Total()))
			assert.Equal(t, stored.Span(), got.Span())
			assert.Len(t, got.History(), 1)
			assert.Equal(t, stored.Version(), got.Version())
		})
	}
}

// =============================================================================
// Save Booking Tests
// =============================================================================

func TestBookingRepository_Save(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockBookingWriteQueries, sqlc.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: status and history are persisted",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, db sqlc.DBTX) {
				mock.EXPECT().UpdateBooking(ctx, db, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.UpdateBookingParams) (int64, error) {
						assert.Equal(t, "cancelled", arg.Status)
						assert.Equal(t, "plans changed", arg.CancelReason.String)
						return 1, nil
					})
				mock.EXPECT().InsertBookingStatusChange(ctx, db, gomock.Any()).Return(nil).Times(2)
			},
		},
		{
			name: "error: version moved on",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, db sqlc.DBTX) {
				mock.EXPECT().UpdateBooking(ctx, db, gomock.Any()).Return(int64(0), nil)
			},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
		{
			name: "error: update fails",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, db sqlc.DBTX) {
				mock.EXPECT().UpdateBooking(ctx, db, gomock.Any()).Return(int64(0), errors.New("connection reset"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries, mockDB)

			b := builder.NewBookingBuilder().MustBuild()
			guest := user.Actor{ID: b.GuestID(), Role: user.RoleGuest}
			require.NoError(t, b.Cancel(guest, "plans changed", b.CreatedAt().Add(time.Hour)))

			tc.setupMock(mockQueries, mockDB)

			actualError := repo.Save(ctx, b)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

func TestBookingRepository_UnknownID(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewBookingRepository(mockQueries, mockDB)

	id := uuid.New()
	mockQueries.EXPECT().GetBookingByIDForUpdate(gomock.Any(), mockDB, id).Return(sqlc.Booking{}, errors.New("boom"))

	_, err := repo.LockByID(context.Background(), id)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}

// =============================================================================
// Helpers
// =============================================================================

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use sqlc mock instead.")
}
