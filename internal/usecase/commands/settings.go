package commands

import (
	"time"

	"rental-engine/internal/domain/payment"
	"rental-engine/internal/pkg/config"
)

type Settings struct {
	ProcessorTimeout time.Duration
	Refunds          payment.RetryPolicy
	PendingTTL       time.Duration
	SweepBatch       int
	RefundBatch      int
	RelayBatch       int
	RelayRetryDelay  time.Duration
	// RelayLease hides claimed jobs from other relays while they are published.
	RelayLease time.Duration
}

func SettingsFromConfig(cfg config.Config) Settings {
	return Settings{
		ProcessorTimeout: cfg.Payments.CallTimeout,
		Refunds: payment.RetryPolicy{
			MaxAttempts: cfg.Payments.RefundMaxAttempts,
			BaseBackoff: cfg.Payments.RefundBaseBackoff,
			MaxBackoff:  cfg.Payments.RefundMaxBackoff,
			Lease:       cfg.Payments.RefundLease,
		},
		PendingTTL:      cfg.Booking.PendingTTL,
		SweepBatch:      cfg.Booking.SweepBatch,
		RefundBatch:     cfg.Payments.RefundRetryBatch,
		RelayBatch:      cfg.Broker.RelayBatch,
		RelayRetryDelay: cfg.Broker.RelayInterval,
		RelayLease:      cfg.Broker.RelayLease,
	}
}
