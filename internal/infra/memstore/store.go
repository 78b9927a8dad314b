// Package memstore keeps all booking state in process memory. Each transaction works on a
// private copy of the state that replaces the shared one only on commit, so a failed
// transaction leaves nothing behind.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"rental-engine/internal/domain/availability"
	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/listing"
	"rental-engine/internal/domain/payment"
	"rental-engine/internal/infra"
	"rental-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type dayKey struct {
	listingID uuid.UUID
	day       int64
}

func keyOf(listingID uuid.UUID, date time.Time) dayKey {
	return dayKey{listingID: listingID, day: availability.DayOf(date).Unix()}
}

type storedIntent struct {
	snap payment.Snapshot
	seq  int64
}

type storedJob struct {
	job       shared.NotificationJob
	runAt     time.Time
	status    string
	lastError string
	sentAt    *time.Time
}

const (
	jobQueued = "queued"
	jobSent   = "sent"
)

type state struct {
	listings     map[uuid.UUID]*listing.Listing
	bookings     map[uuid.UUID]booking.Snapshot
	intents      map[uuid.UUID]storedIntent
	days         map[dayKey]availability.Day
	reservations map[uuid.UUID][]availability.Reservation
	jobs         []storedJob
	seq          int64
}

func newState() *state {
	return &state{
		listings:     make(map[uuid.UUID]*listing.Listing),
		bookings:     make(map[uuid.UUID]booking.Snapshot),
		intents:      make(map[uuid.UUID]storedIntent),
		days:         make(map[dayKey]availability.Day),
		reservations: make(map[uuid.UUID][]availability.Reservation),
	}
}

// clone copies the containers. Stored values are never mutated in place.
func (s *state) clone() *state {
	c := &state{
		listings:     make(map[uuid.UUID]*listing.Listing, len(s.listings)),
		bookings:     make(map[uuid.UUID]booking.Snapshot, len(s.bookings)),
		intents:      make(map[uuid.UUID]storedIntent, len(s.intents)),
		days:         make(map[dayKey]availability.Day, len(s.days)),
		reservations: make(map[uuid.UUID][]availability.Reservation, len(s.reservations)),
		jobs:         make([]storedJob, len(s.jobs)),
		seq:          s.seq,
	}
	for k, v := range s.listings {
		c.listings[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.intents {
		c.intents[k] = v
	}
	for k, v := range s.days {
		c.days[k] = v
	}
	for k, v := range s.reservations {
		c.reservations[k] = append([]availability.Reservation(nil), v...)
	}
	copy(c.jobs, s.jobs)
	return c
}

func (s *state) nextSeq() int64 {
	s.seq++
	return s.seq
}

type Store struct {
	mu sync.Mutex
	st *state
}

func New() *Store {
	return &Store{st: newState()}
}

// Within serializes transactions. fn must not call back into the Store outside tx.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return &storeReads{store: s}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

func (s *Store) ListingByID(_ context.Context, id uuid.UUID) (l *listing.Listing, err error) {
	s.read(func(st *state) { l, err = st.listing(id) })
	return l, err
}

func (s *Store) BookingByID(_ context.Context, id uuid.UUID) (b *booking.Booking, err error) {
	s.read(func(st *state) { b, err = st.booking(id) })
	return b, err
}

func (s *Store) LatestIntent(_ context.Context, bookingID uuid.UUID) (in *payment.Intent, err error) {
	s.read(func(st *state) { in, err = st.latestIntent(bookingID) })
	return in, err
}

func (s *Store) IsRangeFree(_ context.Context, listingID uuid.UUID, span availability.Span) (free bool, err error) {
	s.read(func(st *state) { free = st.isFree(listingID, span) })
	return free, nil
}

// Days returns explicit calendar entries for dates in [from, to).
func (s *Store) Days(_ context.Context, listingID uuid.UUID, from, to time.Time) ([]availability.Day, error) {
	var out []availability.Day
	s.read(func(st *state) {
		for k, d := range st.days {
			if k.listingID != listingID {
				continue
			}
			if !d.Date.Before(availability.DayOf(from)) && d.Date.Before(to) {
				out = append(out, d)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) Reservations(_ context.Context, listingID uuid.UUID, span availability.Span) ([]availability.Reservation, error) {
	var out []availability.Reservation
	s.read(func(st *state) {
		for _, r := range st.reservations[listingID] {
			if r.Span.Overlaps(span) {
				out = append(out, r)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Span.Start().Before(out[j].Span.Start()) })
	return out, nil
}

// BookingsFirstPage lists bookings where partyID is guest or host, newest first.
func (s *Store) BookingsFirstPage(_ context.Context, partyID uuid.UUID, limit int32) (out []*booking.Booking, err error) {
	s.read(func(st *state) { out, err = st.partyBookings(partyID, nil, uuid.Nil, limit) })
	return out, err
}

// BookingsKeyset continues BookingsFirstPage after (lastCreatedAt, lastID).
func (s *Store) BookingsKeyset(_ context.Context, partyID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) (out []*booking.Booking, err error) {
	s.read(func(st *state) { out, err = st.partyBookings(partyID, &lastCreatedAt, lastID, limit) })
	return out, err
}

func (st *state) listing(id uuid.UUID) (*listing.Listing, error) {
	l, ok := st.listings[id]
	if !ok {
		return nil, infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)
	}
	return l, nil
}

func (st *state) booking(id uuid.UUID) (*booking.Booking, error) {
	snap, ok := st.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	b, err := booking.Reconstruct(snap)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct booking", err)
	}
	return b, nil
}

func (st *state) intent(id uuid.UUID) (*payment.Intent, error) {
	stored, ok := st.intents[id]
	if !ok {
		return nil, infra.WrapRepoErr("payment intent not found", nil, infra.KindNotFound)
	}
	in, err := payment.Reconstruct(stored.snap)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct payment intent", err)
	}
	return in, nil
}

func (st *state) latestIntent(bookingID uuid.UUID) (*payment.Intent, error) {
	var (
		latest uuid.UUID
		seq    int64
	)
	for id, stored := range st.intents {
		if stored.snap.BookingID == bookingID && stored.seq > seq {
			latest, seq = id, stored.seq
		}
	}
	if seq == 0 {
		return nil, infra.WrapRepoErr("payment intent not found", nil, infra.KindNotFound)
	}
	return st.intent(latest)
}

func (st *state) isFree(listingID uuid.UUID, span availability.Span) bool {
	for _, r := range st.reservations[listingID] {
		if r.Span.Overlaps(span) {
			return false
		}
	}
	for _, d := range span.Days() {
		if day, ok := st.days[keyOf(listingID, d)]; ok && !day.Available {
			return false
		}
	}
	return true
}

type storeReads struct {
	store *Store
}

func (r *storeReads) ListingByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	return r.store.ListingByID(ctx, id)
}

func (r *storeReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.store.BookingByID(ctx, id)
}

func (r *storeReads) LatestIntent(ctx context.Context, bookingID uuid.UUID) (*payment.Intent, error) {
	return r.store.LatestIntent(ctx, bookingID)
}

func (r *storeReads) DueRefunds(_ context.Context, now time.Time, limit int) (ids []uuid.UUID, err error) {
	r.store.read(func(st *state) { ids = st.dueRefunds(now, limit) })
	return ids, nil
}

func (r *storeReads) StalePendingBookings(_ context.Context, createdBefore time.Time, limit int) (ids []uuid.UUID, err error) {
	r.store.read(func(st *state) { ids = st.stalePending(createdBefore, limit) })
	return ids, nil
}

func (st *state) dueRefunds(now time.Time, limit int) []uuid.UUID {
	type due struct {
		id uuid.UUID
		at time.Time
	}
	var candidates []due
	for id, stored := range st.intents {
		in, err := payment.Reconstruct(stored.snap)
		if err != nil || !in.RefundDue(now) {
			continue
		}
		at := now
		if next := in.Refund().NextAttemptAt; next != nil {
			at = *next
		}
		candidates = append(candidates, due{id: id, at: at})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].at.Before(candidates[j].at) })

	ids := make([]uuid.UUID, 0, len(candidates))
	for i, c := range candidates {
		if limit > 0 && i >= limit {
			break
		}
		ids = append(ids, c.id)
	}
	return ids
}

func (st *state) stalePending(createdBefore time.Time, limit int) []uuid.UUID {
	var snaps []booking.Snapshot
	for _, snap := range st.bookings {
		if snap.Status == booking.StatusPending && snap.CreatedAt.Before(createdBefore) {
			snaps = append(snaps, snap)
		}
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].CreatedAt.Before(snaps[j].CreatedAt) })

	ids := make([]uuid.UUID, 0, len(snaps))
	for i, snap := range snaps {
		if limit > 0 && i >= limit {
			break
		}
		ids = append(ids, snap.ID)
	}
	return ids
}

func (st *state) partyBookings(partyID uuid.UUID, after *time.Time, afterID uuid.UUID, limit int32) ([]*booking.Booking, error) {
	snaps := make([]booking.Snapshot, 0)
	for _, snap := range st.bookings {
		if snap.GuestID != partyID && snap.HostID != partyID {
			continue
		}
		if after != nil && !olderThan(snap, *after, afterID) {
			continue
		}
		snaps = append(snaps, snap)
	}
	sort.Slice(snaps, func(i, j int) bool {
		return olderThan(snaps[j], snaps[i].CreatedAt, snaps[i].ID)
	})
	if limit > 0 && len(snaps) > int(limit) {
		snaps = snaps[:limit]
	}

	out := make([]*booking.Booking, 0, len(snaps))
	for _, snap := range snaps {
		b, err := booking.Reconstruct(snap)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to reconstruct booking", err)
		}
		out = append(out, b)
	}
	return out, nil
}

// olderThan orders by (created_at, id) descending, matching the SQL keyset.
func olderThan(snap booking.Snapshot, createdAt time.Time, id uuid.UUID) bool {
	if !snap.CreatedAt.Equal(createdAt) {
		return snap.CreatedAt.Before(createdAt)
	}
	return snap.ID.String() < id.String()
}
