package response

import (
	"rental-engine/internal/usecase/commands"
	"rental-engine/internal/usecase/queries"
)

type BookingResponse = queries.BookingView

func FromBookingResult(res *commands.BookingResult) BookingResponse {
	return queries.NewBookingView(res.Booking, res.Intent)
}

type TransitionResponse struct {
	Booking BookingResponse `json:"booking"`
	Applied bool            `json:"applied"`
	// Reason explains an ignored event (duplicate, stale, awaiting_host_approval).
	Reason string `json:"reason,omitempty"`
}

func FromTransitionResult(res *commands.TransitionResult) TransitionResponse {
	return TransitionResponse{
		Booking: queries.NewBookingView(res.Booking, nil),
		Applied: res.Outcome.Applied,
		Reason:  string(res.Outcome.Reason),
	}
}

type CancelResponse struct {
	Booking BookingResponse `json:"booking"`
	// RefundPending is true when the first refund attempt failed and a retry is scheduled.
	RefundPending bool `json:"refund_pending"`
}

func FromCancelResult(res *commands.CancelResult) CancelResponse {
	return CancelResponse{
		Booking:       queries.NewBookingView(res.Booking, res.Intent),
		RefundPending: res.RefundErr != nil,
	}
}

func FromPaymentResult(res *commands.PaymentResult) BookingResponse {
	return queries.NewBookingView(res.Booking, res.Intent)
}

type BookingListResponse struct {
	Items      []*queries.BookingListItem `json:"items"`
	NextCursor string                     `json:"next_cursor,omitempty"`
}

func FromBookingList(items []*queries.BookingListItem, next *queries.Cursor) BookingListResponse {
	resp := BookingListResponse{Items: items}
	if resp.Items == nil {
		resp.Items = []*queries.BookingListItem{}
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}

type WebhookResponse struct {
	Duplicate bool   `json:"duplicate"`
	Applied   bool   `json:"applied"`
	Status    string `json:"status,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func FromWebhookResult(res *commands.WebhookResult) WebhookResponse {
	resp := WebhookResponse{
		Duplicate: res.Duplicate,
		Applied:   res.Outcome.Applied,
		Reason:    string(res.Outcome.Reason),
	}
	if res.Outcome.Applied {
		resp.Status = res.Outcome.To.String()
	}
	return resp
}
