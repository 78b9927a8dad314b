package payments

//go:generate mockgen -source=mercadopago.go -destination=../../../tests/mock/payments/mercadopago_mock.go -package=paymentsmock

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"rental-engine/internal/pkg/errs"
	"rental-engine/internal/usecase/shared"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
)

var (
	ErrMissingAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrInvalidProviderRef = errors.New("provider reference is not a Mercado Pago payment id")
)

// PaymentAPI is the part of the Mercado Pago payment client the processor calls.
type PaymentAPI interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Get(ctx context.Context, id int) (*payment.Response, error)
	Capture(ctx context.Context, id int) (*payment.Response, error)
}

type RefundAPI interface {
	Create(ctx context.Context, paymentID int) (*refund.Response, error)
	CreatePartialRefund(ctx context.Context, paymentID int, amount float64) (*refund.Response, error)
}

type MercadoPagoProcessor struct {
	payments    PaymentAPI
	refunds     RefundAPI
	payerEmail  string
	callTimeout time.Duration
}

func NewMercadoPagoProcessor(accessToken, payerEmail string, callTimeout time.Duration) (*MercadoPagoProcessor, error) {
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, errs.Wrap(err, "failed creating mercado pago config")
	}
	slog.Info("Mercado Pago client initialized")
	return NewMercadoPagoProcessorWithClients(payment.NewClient(cfg), refund.NewClient(cfg), payerEmail, callTimeout), nil
}

func NewMercadoPagoProcessorWithClients(payments PaymentAPI, refunds RefundAPI, payerEmail string, callTimeout time.Duration) *MercadoPagoProcessor {
	return &MercadoPagoProcessor{
		payments:    payments,
		refunds:     refunds,
		payerEmail:  payerEmail,
		callTimeout: callTimeout,
	}
}

// CreateIntent opens an uncaptured payment; Confirm captures it.
func (p *MercadoPagoProcessor) CreateIntent(ctx context.Context, req shared.IntentRequest) (shared.IntentResult, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	resp, err := p.payments.Create(ctx, payment.Request{
		TransactionAmount: req.Amount.InexactFloat64(),
		Description:       req.Description,
		ExternalReference: req.BookingID.String(),
		Capture:           false,
		Payer:             &payment.PayerRequest{Email: p.payerEmail},
		Metadata:          map[string]any{"idempotency_key": req.IdempotencyKey, "currency": req.Currency},
	})
	if err != nil {
		slog.Warn("mercado pago create failed", "booking_id", req.BookingID.String(), "error", err.Error())
		return shared.IntentResult{}, errs.Wrap(err, "mercado pago create payment")
	}

	slog.Info("mercado pago payment created", "provider_ref", resp.ID, "status", resp.Status)
	return shared.IntentResult{
		ProviderRef: strconv.Itoa(resp.ID),
		Status:      MapStatus(resp.Status),
	}, nil
}

func (p *MercadoPagoProcessor) Confirm(ctx context.Context, providerRef string) (shared.IntentResult, error) {
	id, err := strconv.Atoi(providerRef)
	if err != nil {
		return shared.IntentResult{}, ErrInvalidProviderRef
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	resp, err := p.payments.Get(ctx, id)
	if err != nil {
		return shared.IntentResult{}, errs.Wrap(err, "mercado pago get payment")
	}
	if resp.Status == "authorized" {
		resp, err = p.payments.Capture(ctx, id)
		if err != nil {
			return shared.IntentResult{}, errs.Wrap(err, "mercado pago capture payment")
		}
	}

	return shared.IntentResult{ProviderRef: providerRef, Status: MapStatus(resp.Status)}, nil
}

func (p *MercadoPagoProcessor) Refund(ctx context.Context, req shared.RefundRequest) error {
	id, err := strconv.Atoi(req.ProviderRef)
	if err != nil {
		return ErrInvalidProviderRef
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	if req.Partial {
		_, err = p.refunds.CreatePartialRefund(ctx, id, req.Amount.InexactFloat64())
	} else {
		_, err = p.refunds.Create(ctx, id)
	}
	if err != nil {
		slog.Warn("mercado pago refund failed", "provider_ref", req.ProviderRef, "partial", req.Partial, "error", err.Error())
		return errs.Wrap(err, "mercado pago refund")
	}
	return nil
}

func (p *MercadoPagoProcessor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.callTimeout)
}

// MapStatus folds Mercado Pago payment statuses into the processor states the engine tracks.
func MapStatus(status string) shared.ProcessorStatus {
	switch status {
	case "approved":
		return shared.ProcessorSucceeded
	case "rejected", "cancelled", "refunded", "charged_back":
		return shared.ProcessorFailed
	default:
		// pending, in_process, in_mediation, authorized
		return shared.ProcessorPending
	}
}
