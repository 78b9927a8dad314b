package queries

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/queries/booking_mock.go -package=queriesmock

import (
	"context"
	"time"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/payment"
	"rental-engine/internal/domain/pricing"
	"rental-engine/internal/domain/user"
	"rental-engine/internal/infra"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type QuoteRequest struct {
	ListingID uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	AddOns    []pricing.AddOnRequest
}

type BookingQueries interface {
	Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error)
	GetBooking(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error)
	ListBookings(ctx context.Context, actor user.Actor, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type ListingReadStore interface {
	ListingByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
	IsRangeFree(ctx context.Context, listingID uuid.UUID, span availability.Span) (bool, error)
}

type BookingReadStore interface {
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	LatestIntent(ctx context.Context, bookingID uuid.UUID) (*payment.Intent, error)
	BookingsFirstPage(ctx context.Context, partyID uuid.UUID, limit int32) ([]*booking.Booking, error)
	BookingsKeyset(ctx context.Context, partyID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*booking.Booking, error)
}

type bookingQueriesImpl struct {
	listings ListingReadStore
	bookings BookingReadStore
}

func NewBookingQueries(listings ListingReadStore, bookings BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{listings: listings, bookings: bookings}
}

// Quote prices a prospective booking. It has no side effects; Available is informational
// and the range may be taken before a booking is created.
func (q *bookingQueriesImpl) Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error) {
	l, err := q.listings.ListingByID(ctx, req.ListingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if err := l.EnsureBookable(); err != nil {
		return nil, err
	}
	quote, fees, err := l.Quote(req.StartAt, req.EndAt, req.AddOns)
	if err != nil {
		return nil, err
	}
	span, err := availability.NewSpan(req.StartAt, req.EndAt)
	if err != nil {
		return nil, pricing.ErrInvalidRange
	}
	free, err := q.listings.IsRangeFree(ctx, l.ID(), span)
	if err != nil {
		return nil, err
	}

	view := toQuoteView(l.ID(), span, quote, fees, pricing.Total(quote, fees))
	view.Caution = money(l.Caution())
	view.Available = free
	return &view, nil
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error) {
	b, err := q.bookings.BookingByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !b.IsParty(actor.ID) && !actor.IsPrivileged() {
		return nil, ErrBookingAccess
	}

	in, err := q.bookings.LatestIntent(ctx, id)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}
	view := NewBookingView(b, in)
	return &view, nil
}

// ListBookings pages through the bookings the actor is a guest or host of, newest first.
func (q *bookingQueriesImpl) ListBookings(ctx context.Context, actor user.Actor, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*booking.Booking
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.bookings.BookingsFirstPage(ctx, actor.ID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.bookings.BookingsKeyset(ctx, actor.ID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt(), last.ID())}
		rows = rows[:limit]
	}
	items := make([]*BookingListItem, 0, len(rows))
	for _, b := range rows {
		items = append(items, &BookingListItem{
			ID:        b.ID(),
			ListingID: b.ListingID(),
			Status:    b.Status().String(),
			StartAt:   b.Span().Start(),
			EndAt:     b.Span().End(),
			Total:     b.Total().StringFixed(2),
			Currency:  b.Currency(),
			CreatedAt: b.CreatedAt(),
		})
	}
	return items, next, nil
}

func NewBookingView(b *booking.Booking, in *payment.Intent) BookingView {
	history := make([]StatusChangeView, 0, len(b.History()))
	for _, h := range b.History() {
		history = append(history, StatusChangeView{
			Status:    h.Status.String(),
			At:        h.At,
			ActorID:   h.ActorID,
			ActorRole: h.ActorRole.String(),
			Reason:    h.Reason,
		})
	}

	view := BookingView{
		ID:           b.ID(),
		ListingID:    b.ListingID(),
		GuestID:      b.GuestID(),
		HostID:       b.HostID(),
		Status:       b.Status().String(),
		StartAt:      b.Span().Start(),
		EndAt:        b.Span().End(),
		Quote:        toQuoteView(b.ListingID(), b.Span(), b.Quote(), b.AddOns(), b.Total()),
		Total:        b.Total().StringFixed(2),
		Currency:     b.Currency(),
		Caution:      money(b.Caution()),
		CancelReason: b.CancelReason(),
		History:      history,
		Resolved:     b.Status().IsTerminal(),
		Version:      b.Version(),
		CreatedAt:    b.CreatedAt(),
		UpdatedAt:    b.UpdatedAt(),
	}
	if in != nil {
		p := toPaymentView(in)
		view.Payment = &p
		if in.Refund().Status.Outstanding() {
			view.Resolved = false
		}
	}
	return view
}

func toPaymentView(in *payment.Intent) PaymentView {
	r := in.Refund()
	refund := RefundView{
		Status:         string(r.Status),
		Partial:        r.Partial,
		Reason:         r.Reason,
		Attempts:       r.Attempts,
		NextAttemptAt:  r.NextAttemptAt,
		LastError:      r.LastError,
		ResolvedBy:     r.ResolvedBy,
		ResolutionNote: r.ResolutionNote,
		CompletedAt:    r.CompletedAt,
	}
	if r.Status != payment.RefundNone {
		refund.Amount = r.Amount.StringFixed(2)
	}
	return PaymentView{
		ID:          in.ID(),
		ProviderRef: in.ProviderRef(),
		Amount:      in.Amount().StringFixed(2),
		Currency:    in.Currency(),
		Status:      in.Status().String(),
		Refund:      refund,
		UpdatedAt:   in.UpdatedAt(),
	}
}

func toQuoteView(listingID uuid.UUID, span availability.Span, q pricing.Quote, fees []pricing.AddOnFee, total decimal.Decimal) QuoteView {
	addOns := make([]AddOnFeeView, 0, len(fees))
	for _, f := range fees {
		addOns = append(addOns, AddOnFeeView{
			Kind:       string(f.Kind),
			DistanceKm: f.DistanceKm,
			Amount:     f.Amount.StringFixed(2),
		})
	}
	var tier *int
	if q.DiscountTierDays > 0 {
		days := q.DiscountTierDays
		tier = &days
	}
	return QuoteView{
		ListingID:        listingID,
		StartAt:          span.Start(),
		EndAt:            span.End(),
		Currency:         q.Currency,
		BillingMode:      q.BillingMode.String(),
		Units:            q.Units,
		Hours:            q.Hours,
		Days:             q.Days,
		BasePrice:        q.BasePrice.StringFixed(2),
		DiscountPercent:  q.DiscountPercent.String(),
		DiscountTierDays: tier,
		FinalPrice:       q.FinalPrice.StringFixed(2),
		AddOns:           addOns,
		Total:            total.StringFixed(2),
	}
}

func money(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}
