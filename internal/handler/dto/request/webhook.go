package request

import (
	"rental-engine/internal/usecase/commands"
	"rental-engine/internal/usecase/shared"
)

// PaymentWebhookRequest accepts the engine's own shape and the processor's
// {"type":"payment","data":{"id":...}} notification. The latter carries no status,
// so the current state is fetched from the processor.
type PaymentWebhookRequest struct {
	DeliveryID  string `json:"delivery_id,omitempty"`
	ProviderRef string `json:"provider_ref,omitempty"`
	Status      string `json:"status,omitempty" binding:"omitempty,oneof=pending succeeded failed"`
	Type        string `json:"type,omitempty"`
	Data        *struct {
		ID string `json:"id"`
	} `json:"data,omitempty"`

	// Processor envelope; accepted so unknown-field rejection does not refuse real deliveries.
	Action      string `json:"action,omitempty"`
	APIVersion  string `json:"api_version,omitempty"`
	ID          any    `json:"id,omitempty"`
	LiveMode    bool   `json:"live_mode,omitempty"`
	DateCreated string `json:"date_created,omitempty"`
	UserID      any    `json:"user_id,omitempty"`
}

func (r PaymentWebhookRequest) ToCommand(deliveryHeader string) commands.WebhookEvent {
	ref := r.ProviderRef
	if ref == "" && r.Data != nil {
		ref = r.Data.ID
	}
	delivery := r.DeliveryID
	if delivery == "" {
		delivery = deliveryHeader
	}
	return commands.WebhookEvent{
		DeliveryID:  delivery,
		ProviderRef: ref,
		Status:      shared.ProcessorStatus(r.Status),
	}
}
