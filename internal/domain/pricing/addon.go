package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownAddOn     = errors.New("add-on not offered by listing")
	ErrDuplicateAddOn   = errors.New("add-on requested more than once")
	ErrMissingLocation  = errors.New("add-on requires a destination")
	ErrInvalidAddOnRate = errors.New("invalid add-on rate")
)

type AddOnKind string

const (
	AddOnDelivery       AddOnKind = "delivery"
	AddOnFlexibleReturn AddOnKind = "flexible_return"
	AddOnSecondDriver   AddOnKind = "second_driver"
)

func (k AddOnKind) IsValid() bool {
	switch k {
	case AddOnDelivery, AddOnFlexibleReturn, AddOnSecondDriver:
		return true
	default:
		return false
	}
}

// AddOnRate is what a listing charges for one add-on. A positive PricePerKm makes the
// fee distance based; otherwise FlatFee applies.
type AddOnRate struct {
	Kind       AddOnKind
	PricePerKm *decimal.Decimal
	FlatFee    decimal.Decimal
}

func (r AddOnRate) distanceBased() bool {
	return r.PricePerKm != nil && r.PricePerKm.IsPositive()
}

type AddOnRequest struct {
	Kind        AddOnKind
	Destination *Coordinates
}

type AddOnFee struct {
	Kind       AddOnKind
	DistanceKm *float64
	Amount     decimal.Decimal
}

// PriceAddOn computes one add-on fee. Add-on fees are never discounted.
func PriceAddOn(rate AddOnRate, origin Coordinates, req AddOnRequest) (AddOnFee, error) {
	if rate.FlatFee.IsNegative() || (rate.PricePerKm != nil && rate.PricePerKm.IsNegative()) {
		return AddOnFee{}, ErrInvalidAddOnRate
	}
	if !rate.distanceBased() {
		return AddOnFee{Kind: rate.Kind, Amount: roundMoney(rate.FlatFee)}, nil
	}
	if req.Destination == nil {
		return AddOnFee{}, ErrMissingLocation
	}

	km := DistanceKm(origin, *req.Destination)
	amount := decimal.NewFromFloat(km).Mul(*rate.PricePerKm)
	return AddOnFee{Kind: rate.Kind, DistanceKm: &km, Amount: roundMoney(amount)}, nil
}

// PriceAddOns prices every requested add-on against the listing's offered rates.
func PriceAddOns(rates []AddOnRate, origin Coordinates, reqs []AddOnRequest) ([]AddOnFee, error) {
	byKind := make(map[AddOnKind]AddOnRate, len(rates))
	for _, r := range rates {
		byKind[r.Kind] = r
	}

	seen := make(map[AddOnKind]struct{}, len(reqs))
	fees := make([]AddOnFee, 0, len(reqs))
	for _, req := range reqs {
		if _, dup := seen[req.Kind]; dup {
			return nil, ErrDuplicateAddOn
		}
		seen[req.Kind] = struct{}{}

		rate, ok := byKind[req.Kind]
		if !ok {
			return nil, ErrUnknownAddOn
		}
		fee, err := PriceAddOn(rate, origin, req)
		if err != nil {
			return nil, err
		}
		fees = append(fees, fee)
	}
	return fees, nil
}

// Total is the amount charged for a booking: the discounted rental plus add-on fees.
func Total(q Quote, fees []AddOnFee) decimal.Decimal {
	total := q.FinalPrice
	for _, f := range fees {
		total = total.Add(f.Amount)
	}
	return total
}
