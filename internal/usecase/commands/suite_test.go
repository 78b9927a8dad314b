//go:build unit

package commands_test

import (
	"context"
	"time"

	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/payment"
	"rental-engine/internal/domain/user"
	"rental-engine/internal/infra/memstore"
	"rental-engine/internal/pkg/clock"
	"rental-engine/internal/usecase/commands"
	"rental-engine/internal/usecase/shared"
	"rental-engine/tests/common/builder"
	sharedmock "rental-engine/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var testStart = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

type commandSuite struct {
	suite.Suite
	ctx context.Context

	ctrl      *gomock.Controller
	store     *memstore.Store
	clock     *clock.MockClock
	processor *sharedmock.MockPaymentProcessor
	verifier  *sharedmock.MockVerificationService
	deduper   *sharedmock.MockWebhookDeduper
	publisher *sharedmock.MockEventPublisher
	settings  commands.Settings

	bookings    commands.BookingCommands
	payments    commands.PaymentCommands
	maintenance commands.MaintenanceCommands

	listing *listing.Listing
	guest   user.Actor
	host    user.Actor
	admin   user.Actor
}

func (s *commandSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.store = memstore.New()
	s.clock = clock.NewMockClock(testStart)
	s.processor = sharedmock.NewMockPaymentProcessor(s.ctrl)
	s.verifier = sharedmock.NewMockVerificationService(s.ctrl)
	s.deduper = sharedmock.NewMockWebhookDeduper(s.ctrl)
	s.publisher = sharedmock.NewMockEventPublisher(s.ctrl)
	s.settings = commands.Settings{
		ProcessorTimeout: time.Second,
		Refunds: payment.RetryPolicy{
			MaxAttempts: 3,
			BaseBackoff: time.Minute,
			MaxBackoff:  10 * time.Minute,
			Lease:       30 * time.Second,
		},
		PendingTTL:      30 * time.Minute,
		SweepBatch:      10,
		RefundBatch:     10,
		RelayBatch:      50,
		RelayRetryDelay: time.Second,
	}
	s.rebuild()

	s.host = user.Actor{ID: uuid.New(), Role: user.RoleHost}
	s.guest = user.Actor{ID: uuid.New(), Role: user.RoleGuest}
	s.admin = user.Actor{ID: uuid.New(), Role: user.RoleAdmin}
	s.listing = s.seedListing(builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
		b.HostID = s.host.ID
	}))
}

func (s *commandSuite) rebuild() {
	s.bookings = commands.NewBookingUseCase(s.store, s.processor, s.verifier, s.clock, s.settings)
	s.payments = commands.NewPaymentUseCase(s.store, s.processor, s.deduper, s.clock, s.settings)
	s.maintenance = commands.NewMaintenanceUseCase(s.store, s.processor, s.publisher, s.clock, s.settings)
}

func (s *commandSuite) seedListing(b *builder.ListingBuilder) *listing.Listing {
	l := b.MustBuild()
	s.Require().NoError(s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Listings().Upsert(ctx, l)
	}))
	return l
}

// request is the three day booking from the pricing examples: 45/day, 10% off, 121.50.
func (s *commandSuite) request(l *listing.Listing) commands.CreateBookingRequest {
	return builder.NewBookingBuilder().ForListing(l).BuildCreateCommand()
}

func (s *commandSuite) expectIntent(ref string) {
	s.processor.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
		Return(shared.IntentResult{ProviderRef: ref, Status: shared.ProcessorPending}, nil)
}

func (s *commandSuite) createBooking(ref string) *commands.BookingResult {
	s.expectIntent(ref)
	res, err := s.bookings.CreateBooking(s.ctx, s.request(s.listing), s.guest)
	s.Require().NoError(err)
	return res
}

func (s *commandSuite) deliver(deliveryID, ref string, status shared.ProcessorStatus) *commands.WebhookResult {
	s.deduper.EXPECT().FirstDelivery(gomock.Any(), deliveryID).Return(true, nil)
	res, err := s.payments.HandlePaymentWebhook(s.ctx, commands.WebhookEvent{
		DeliveryID:  deliveryID,
		ProviderRef: ref,
		Status:      status,
	})
	s.Require().NoError(err)
	return res
}

func (s *commandSuite) confirmedBooking(ref string) *commands.BookingResult {
	res := s.createBooking(ref)
	s.deliver("evt-"+ref, ref, shared.ProcessorSucceeded)
	return res
}
