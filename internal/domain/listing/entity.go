package listing

import (
	"errors"
	"time"

	"rental-engine/internal/domain/pricing"
	"rental-engine/internal/pkg/patch"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrListingInactive = errors.New("listing is not active")
	ErrInvalidPolicy   = errors.New("invalid confirmation policy")
	ErrInvalidCaution  = errors.New("invalid caution amount")
)

type ConfirmationPolicy string

const (
	// PolicyInstant confirms as soon as payment succeeds.
	PolicyInstant ConfirmationPolicy = "instant"
	// PolicyManualApproval waits for the host to accept.
	PolicyManualApproval ConfirmationPolicy = "manual_approval"
)

func (p ConfirmationPolicy) String() string {
	return string(p)
}

func (p ConfirmationPolicy) IsValid() bool {
	switch p {
	case PolicyInstant, PolicyManualApproval:
		return true
	default:
		return false
	}
}

// Listing is the snapshot of a rentable item the booking engine needs.
// Catalogue management lives elsewhere.
type Listing struct {
	id       uuid.UUID
	hostID   uuid.UUID
	title    string
	active   bool
	rateCard pricing.RateCard
	location pricing.Coordinates
	addOns   []pricing.AddOnRate
	caution  *decimal.Decimal
	policy   ConfirmationPolicy
}

type Params struct {
	ID       uuid.UUID
	HostID   uuid.UUID
	Title    string
	Active   bool
	RateCard pricing.RateCard
	Location pricing.Coordinates
	AddOns   []pricing.AddOnRate
	Caution  *decimal.Decimal
	Policy   ConfirmationPolicy
}

func New(p Params) (*Listing, error) {
	if !p.Policy.IsValid() {
		return nil, ErrInvalidPolicy
	}
	if err := p.RateCard.Validate(); err != nil {
		return nil, err
	}
	if p.Caution != nil && (p.Caution.IsNegative() || !pricing.HasCentPrecision(*p.Caution)) {
		return nil, ErrInvalidCaution
	}
	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	addOns := make([]pricing.AddOnRate, len(p.AddOns))
	copy(addOns, p.AddOns)
	return &Listing{
		id:       id,
		hostID:   p.HostID,
		title:    p.Title,
		active:   p.Active,
		rateCard: p.RateCard,
		location: p.Location,
		addOns:   addOns,
		caution:  patch.Clone(p.Caution),
		policy:   p.Policy,
	}, nil
}

func (l *Listing) EnsureBookable() error {
	if !l.active {
		return ErrListingInactive
	}
	return nil
}

func (l *Listing) IsHost(userID uuid.UUID) bool {
	return l.hostID == userID
}

// Quote prices a rental of this listing including the requested add-ons.
func (l *Listing) Quote(start, end time.Time, reqs []pricing.AddOnRequest) (pricing.Quote, []pricing.AddOnFee, error) {
	q, err := pricing.Calculate(start, end, l.rateCard)
	if err != nil {
		return pricing.Quote{}, nil, err
	}
	fees, err := pricing.PriceAddOns(l.addOns, l.location, reqs)
	if err != nil {
		return pricing.Quote{}, nil, err
	}
	return q, fees, nil
}

func (l *Listing) ID() uuid.UUID                 { return l.id }
func (l *Listing) HostID() uuid.UUID             { return l.hostID }
func (l *Listing) Title() string                 { return l.title }
func (l *Listing) Active() bool                  { return l.active }
func (l *Listing) RateCard() pricing.RateCard    { return l.rateCard }
func (l *Listing) Location() pricing.Coordinates { return l.location }
func (l *Listing) AddOns() []pricing.AddOnRate   { return l.addOns }
func (l *Listing) Caution() *decimal.Decimal     { return patch.Clone(l.caution) }
func (l *Listing) Policy() ConfirmationPolicy    { return l.policy }
