package memstore

import (
	"context"
	"sort"
	"time"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/payment"
	"rental-engine/internal/infra"
	"rental-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type memTx struct {
	st *state
}

func (t *memTx) Listings() shared.ListingRepository           { return (*listingRepo)(t) }
func (t *memTx) Bookings() shared.BookingRepository           { return (*bookingRepo)(t) }
func (t *memTx) Ledger() shared.AvailabilityLedger            { return (*ledger)(t) }
func (t *memTx) Payments() shared.PaymentRepository           { return (*paymentRepo)(t) }
func (t *memTx) Notifications() shared.NotificationRepository { return (*outbox)(t) }
func (t *memTx) Reads() shared.CommandReads                   { return (*txReads)(t) }

type listingRepo memTx

func (r *listingRepo) Upsert(_ context.Context, l *listing.Listing) error {
	r.st.listings[l.ID()] = l
	return nil
}

type bookingRepo memTx

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if _, exists := r.st.bookings[b.ID()]; exists {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	r.st.bookings[b.ID()] = b.Snapshot()
	return nil
}

func (r *bookingRepo) LockByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.st.booking(id)
}

func (r *bookingRepo) Save(_ context.Context, b *booking.Booking) error {
	current, ok := r.st.bookings[b.ID()]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if current.Version != b.Version() {
		return infra.WrapRepoErr("booking was modified concurrently", nil, infra.KindConflict)
	}
	snap := b.Snapshot()
	snap.Version = current.Version + 1
	r.st.bookings[b.ID()] = snap
	return nil
}

type ledger memTx

func (l *ledger) IsRangeFree(_ context.Context, listingID uuid.UUID, span availability.Span) (bool, error) {
	return l.st.isFree(listingID, span), nil
}

func (l *ledger) Reserve(_ context.Context, listingID uuid.UUID, span availability.Span, holderID uuid.UUID) (availability.Reservation, error) {
	if !l.st.isFree(listingID, span) {
		return availability.Reservation{}, availability.ErrConflict
	}
	res := availability.Reservation{
		ID:        uuid.New(),
		ListingID: listingID,
		HolderID:  holderID,
		Span:      span,
		CreatedAt: time.Now().UTC(),
	}
	l.st.reservations[listingID] = append(l.st.reservations[listingID], res)
	return res, nil
}

func (l *ledger) Release(_ context.Context, listingID uuid.UUID, span availability.Span) (int, error) {
	current := l.st.reservations[listingID]
	kept := make([]availability.Reservation, 0, len(current))
	for _, r := range current {
		if span.Contains(r.Span) {
			continue
		}
		kept = append(kept, r)
	}
	l.st.reservations[listingID] = kept
	return len(current) - len(kept), nil
}

func (l *ledger) SetDay(_ context.Context, day availability.Day) error {
	day.Date = availability.DayOf(day.Date)
	l.st.days[keyOf(day.ListingID, day.Date)] = day
	return nil
}

type paymentRepo memTx

func (r *paymentRepo) Create(_ context.Context, in *payment.Intent) error {
	for _, stored := range r.st.intents {
		if stored.snap.ProviderRef == in.ProviderRef() {
			return infra.WrapRepoErr("provider reference already recorded", nil, infra.KindDuplicateKey)
		}
	}
	r.st.intents[in.ID()] = storedIntent{snap: in.Snapshot(), seq: r.st.nextSeq()}
	return nil
}

func (r *paymentRepo) LockByID(_ context.Context, id uuid.UUID) (*payment.Intent, error) {
	return r.st.intent(id)
}

func (r *paymentRepo) LockByProviderRef(_ context.Context, providerRef string) (*payment.Intent, error) {
	for id, stored := range r.st.intents {
		if stored.snap.ProviderRef == providerRef {
			return r.st.intent(id)
		}
	}
	return nil, infra.WrapRepoErr("payment intent not found", nil, infra.KindNotFound)
}

func (r *paymentRepo) LockLatestByBooking(_ context.Context, bookingID uuid.UUID) (*payment.Intent, error) {
	return r.st.latestIntent(bookingID)
}

func (r *paymentRepo) Save(_ context.Context, in *payment.Intent) error {
	current, ok := r.st.intents[in.ID()]
	if !ok {
		return infra.WrapRepoErr("payment intent not found", nil, infra.KindNotFound)
	}
	if current.snap.Version != in.Version() {
		return infra.WrapRepoErr("payment intent was modified concurrently", nil, infra.KindConflict)
	}
	snap := in.Snapshot()
	snap.Version = current.snap.Version + 1
	r.st.intents[in.ID()] = storedIntent{snap: snap, seq: current.seq}
	return nil
}

type outbox memTx

func (o *outbox) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	o.st.jobs = append(o.st.jobs, storedJob{
		job: shared.NotificationJob{
			ID:      uuid.New(),
			Kind:    kind,
			Topic:   topic,
			Payload: append([]byte(nil), payload...),
		},
		runAt:  runAt,
		status: jobQueued,
	})
	return nil
}

func (o *outbox) ClaimDue(_ context.Context, now, leaseUntil time.Time, limit int) ([]shared.NotificationJob, error) {
	idx := make([]int, 0)
	for i, j := range o.st.jobs {
		if j.status == jobQueued && !j.runAt.After(now) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool { return o.st.jobs[idx[a]].runAt.Before(o.st.jobs[idx[b]].runAt) })

	jobs := make([]shared.NotificationJob, 0, len(idx))
	for n, i := range idx {
		if limit > 0 && n >= limit {
			break
		}
		o.st.jobs[i].runAt = leaseUntil
		jobs = append(jobs, o.st.jobs[i].job)
	}
	return jobs, nil
}

func (o *outbox) MarkSent(_ context.Context, id uuid.UUID, at time.Time) error {
	return o.update(id, func(j *storedJob) {
		j.status = jobSent
		j.sentAt = &at
	})
}

func (o *outbox) MarkFailed(_ context.Context, id uuid.UUID, lastErr string, nextRunAt time.Time) error {
	return o.update(id, func(j *storedJob) {
		j.job.Attempts++
		j.lastError = lastErr
		j.runAt = nextRunAt
	})
}

func (o *outbox) update(id uuid.UUID, fn func(j *storedJob)) error {
	for i := range o.st.jobs {
		if o.st.jobs[i].job.ID == id {
			fn(&o.st.jobs[i])
			return nil
		}
	}
	return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
}

type txReads memTx

func (r *txReads) ListingByID(_ context.Context, id uuid.UUID) (*listing.Listing, error) {
	return r.st.listing(id)
}

func (r *txReads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.st.booking(id)
}

func (r *txReads) LatestIntent(_ context.Context, bookingID uuid.UUID) (*payment.Intent, error) {
	return r.st.latestIntent(bookingID)
}

func (r *txReads) DueRefunds(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	return r.st.dueRefunds(now, limit), nil
}

func (r *txReads) StalePendingBookings(_ context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	return r.st.stalePending(createdBefore, limit), nil
}
