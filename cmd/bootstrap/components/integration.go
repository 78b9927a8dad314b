package components

import (
	"context"
	"log/slog"

	"rental-engine/internal/infra/broker"
	"rental-engine/internal/infra/cache"
	"rental-engine/internal/infra/identity"
	"rental-engine/internal/infra/payments"
	"rental-engine/internal/pkg/clock"
	"rental-engine/internal/pkg/config"
	"rental-engine/internal/pkg/errs"
	"rental-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

// IntegrationModule selects the adapters for the external collaborators.
var IntegrationModule = fx.Module("integration",
	fx.Provide(
		NewPaymentProcessor,
		NewVerificationService,
		NewWebhookDeduper,
		NewEventPublisher,
	),
)

func NewPaymentProcessor(cfg config.Config, logger *slog.Logger) (shared.PaymentProcessor, error) {
	switch cfg.Payments.Mode {
	case config.PaymentsModeMercadoPago:
		p, err := payments.NewMercadoPagoProcessor(cfg.Payments.AccessToken, cfg.Payments.PayerEmail, cfg.Payments.CallTimeout)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.PaymentsModeSandbox:
		logger.Warn("payments run against the in-process sandbox")
		return payments.NewSandboxProcessor(), nil
	default:
		return nil, errs.Newf("unknown PAYMENTS_MODE %q", cfg.Payments.Mode)
	}
}

func NewVerificationService(cfg config.Config) (shared.VerificationService, error) {
	switch cfg.Verification.Source {
	case config.VerificationSourceDynamoDB:
		client, err := identity.NewDynamoClient(context.Background(), cfg.Verification)
		if err != nil {
			return nil, err
		}
		return identity.NewDynamoReader(client, cfg.Verification.Table, cfg.Verification.Timeout), nil
	case config.VerificationSourceStatic:
		r, err := identity.NewStaticReader(cfg.Verification.StaticStatus)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, errs.Newf("unknown VERIFICATION_SOURCE %q", cfg.Verification.Source)
	}
}

func NewWebhookDeduper(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) (shared.WebhookDeduper, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryDeduper(cfg.Redis.DedupeTTL, clk.Now), nil
	}
	client, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return cache.NewRedisDeduper(client, cfg.Redis.DedupeTTL), nil
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) shared.EventPublisher {
	if !cfg.Broker.Enabled {
		return broker.NewLogPublisher()
	}
	pub := broker.NewAMQPPublisher(cfg.Broker.Exchange, broker.DialExchange(cfg.Broker.URL, cfg.Broker.Exchange), clk.Now)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub
}
