package shared

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/ports_mock.go -package=sharedmock

import (
	"context"

	"rental-engine/internal/domain/verification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProcessorStatus string

const (
	ProcessorPending   ProcessorStatus = "pending"
	ProcessorSucceeded ProcessorStatus = "succeeded"
	ProcessorFailed    ProcessorStatus = "failed"
)

type IntentRequest struct {
	BookingID      uuid.UUID
	Amount         decimal.Decimal
	Currency       string
	Description    string
	IdempotencyKey string
}

type IntentResult struct {
	ProviderRef string
	Status      ProcessorStatus
}

type RefundRequest struct {
	ProviderRef    string
	Amount         decimal.Decimal
	Partial        bool
	IdempotencyKey string
}

// PaymentProcessor is the external payment provider. Calls are never made inside a transaction.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, req IntentRequest) (IntentResult, error)
	Confirm(ctx context.Context, providerRef string) (IntentResult, error)
	Refund(ctx context.Context, req RefundRequest) error
}

type VerificationService interface {
	Status(ctx context.Context, userID uuid.UUID) (verification.Status, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// WebhookDeduper remembers processed webhook deliveries.
type WebhookDeduper interface {
	// FirstDelivery records key and reports whether it was unseen.
	FirstDelivery(ctx context.Context, key string) (bool, error)
	// Forget drops key so a redelivery is processed again.
	Forget(ctx context.Context, key string) error
}
