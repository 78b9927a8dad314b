package request

import (
	"time"

	"rental-engine/internal/domain/pricing"
	"rental-engine/internal/usecase/commands"
	"rental-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CoordinatesRequest struct {
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`
}

func (r CoordinatesRequest) ToDomain() pricing.Coordinates {
	return pricing.Coordinates{Latitude: r.Latitude, Longitude: r.Longitude}
}

type AddOnRequest struct {
	Kind        string              `json:"kind" binding:"required,oneof=delivery flexible_return second_driver"`
	Destination *CoordinatesRequest `json:"destination,omitempty"`
}

func addOnsToDomain(in []AddOnRequest) []pricing.AddOnRequest {
	out := make([]pricing.AddOnRequest, 0, len(in))
	for _, a := range in {
		req := pricing.AddOnRequest{Kind: pricing.AddOnKind(a.Kind)}
		if a.Destination != nil {
			dest := a.Destination.ToDomain()
			req.Destination = &dest
		}
		out = append(out, req)
	}
	return out
}

type QuoteRequest struct {
	ListingID uuid.UUID      `json:"listing_id" binding:"required"`
	StartAt   time.Time      `json:"start_at" binding:"required"`
	EndAt     time.Time      `json:"end_at" binding:"required"`
	AddOns    []AddOnRequest `json:"add_ons,omitempty" binding:"omitempty,dive"`
}

func (r QuoteRequest) ToQuery() queries.QuoteRequest {
	return queries.QuoteRequest{
		ListingID: r.ListingID,
		StartAt:   r.StartAt,
		EndAt:     r.EndAt,
		AddOns:    addOnsToDomain(r.AddOns),
	}
}

type CreateBookingRequest struct {
	ListingID uuid.UUID      `json:"listing_id" binding:"required"`
	StartAt   time.Time      `json:"start_at" binding:"required"`
	EndAt     time.Time      `json:"end_at" binding:"required"`
	AddOns    []AddOnRequest `json:"add_ons,omitempty" binding:"omitempty,dive"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ListingID: r.ListingID,
		StartAt:   r.StartAt,
		EndAt:     r.EndAt,
		AddOns:    addOnsToDomain(r.AddOns),
	}
}

type TransitionRequest struct {
	Event string `json:"event" binding:"required,oneof=payment_succeeded host_accepted check_in check_out"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
	// admin only
	RefundAmount *decimal.Decimal `json:"refund_amount,omitempty"`
}

func (r CancelRequest) ToCommand(bookingID uuid.UUID) commands.CancelRequest {
	return commands.CancelRequest{
		BookingID:    bookingID,
		Reason:       r.Reason,
		RefundAmount: r.RefundAmount,
	}
}

type ResolveRefundRequest struct {
	Note string `json:"note" binding:"required,max=1000"`
}

type ListBookingsQuery struct {
	After string `form:"after"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q ListBookingsQuery) Cursor() *queries.Cursor {
	if q.After == "" {
		return nil
	}
	return &queries.Cursor{After: q.After}
}
