package payments

import (
	"context"
	"log/slog"
	"strings"

	"rental-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

const sandboxRefPrefix = "sb_"

// SandboxProcessor settles every payment on Confirm and accepts every refund.
type SandboxProcessor struct{}

func NewSandboxProcessor() *SandboxProcessor {
	return &SandboxProcessor{}
}

func (p *SandboxProcessor) CreateIntent(_ context.Context, req shared.IntentRequest) (shared.IntentResult, error) {
	ref := sandboxRefPrefix + uuid.NewString()
	slog.Info("sandbox payment created", "booking_id", req.BookingID.String(), "provider_ref", ref, "amount", req.Amount.StringFixed(2))
	return shared.IntentResult{ProviderRef: ref, Status: shared.ProcessorPending}, nil
}

func (p *SandboxProcessor) Confirm(_ context.Context, providerRef string) (shared.IntentResult, error) {
	if !strings.HasPrefix(providerRef, sandboxRefPrefix) {
		return shared.IntentResult{}, ErrInvalidProviderRef
	}
	return shared.IntentResult{ProviderRef: providerRef, Status: shared.ProcessorSucceeded}, nil
}

func (p *SandboxProcessor) Refund(_ context.Context, req shared.RefundRequest) error {
	if !strings.HasPrefix(req.ProviderRef, sandboxRefPrefix) {
		return ErrInvalidProviderRef
	}
	slog.Info("sandbox refund accepted", "provider_ref", req.ProviderRef, "amount", req.Amount.StringFixed(2), "partial", req.Partial)
	return nil
}
