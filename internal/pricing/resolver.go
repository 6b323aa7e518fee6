package pricing

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reasons an item is not orderable.
const (
	ReasonItemInactive        = "item_inactive"
	ReasonCategoryInactive    = "category_inactive"
	ReasonOutsideAvailability = "outside_availability"
)

// Prices are an item's base price and optional per-tender overrides.
type Prices struct {
	Base decimal.Decimal
	Card *decimal.Decimal
	Cash *decimal.Decimal
}

// Item is the slice of a menu item the resolver needs.
type Item struct {
	ID                    uuid.UUID
	Code                  string
	Active                bool
	Prices                Prices
	InheritModifierGroups bool
	ModifierGroupIDs      []uuid.UUID
	TaxID                 *uuid.UUID
}

// Category is the slice of a menu category the resolver needs.
type Category struct {
	ID               uuid.UUID
	Active           bool
	ModifierGroupIDs []uuid.UUID
	TaxID            *uuid.UUID
}

// Input bundles everything needed to resolve one item. Now must already be in
// the outlet's local time zone. Availabilities are those linked to the item
// or its category.
type Input struct {
	Item           Item
	Category       *Category
	Events         []TimeEvent
	Availabilities []Availability
	Now            time.Time
}

// Result is the resolved state of an item at an instant.
type Result struct {
	Orderable  bool
	Reason     string
	Price      decimal.Decimal
	CardPrice  *decimal.Decimal
	CashPrice  *decimal.Decimal
	EventCode  string
	Adjustment Adjustment
}

// Resolve computes orderability and effective prices. It is pure and never
// fails on well-formed input.
func Resolve(in Input) Result {
	base := in.Item.Prices
	res := Result{
		Price:     base.Base.Round(2),
		CardPrice: roundPtr(base.Card),
		CashPrice: roundPtr(base.Cash),
	}

	if reason := gate(in); reason != "" {
		res.Reason = reason
		return res
	}
	res.Orderable = true

	ev, ok := MatchEvent(in.Events, in.Now)
	if !ok {
		return res
	}
	adj := ev.Adjustment.Effective()
	if adj.Kind == NoAdjustment {
		return res
	}

	res.EventCode = ev.Code
	res.Adjustment = adj
	res.Price = adj.Apply(base.Base).Round(2)
	if base.Card != nil {
		p := adj.Apply(*base.Card).Round(2)
		res.CardPrice = &p
	}
	if base.Cash != nil {
		p := adj.Apply(*base.Cash).Round(2)
		res.CashPrice = &p
	}
	return res
}

func gate(in Input) string {
	if !in.Item.Active {
		return ReasonItemInactive
	}
	if in.Category != nil && !in.Category.Active {
		return ReasonCategoryInactive
	}
	for _, a := range in.Availabilities {
		if !a.Allows(in.Now) {
			return ReasonOutsideAvailability
		}
	}
	return ""
}

// MatchEvent returns the first event in effect at now, ordered by ascending
// code. At most one event applies; adjustments never stack.
func MatchEvent(events []TimeEvent, now time.Time) (TimeEvent, bool) {
	if len(events) == 0 {
		return TimeEvent{}, false
	}
	sorted := make([]TimeEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	for _, e := range sorted {
		if e.Matches(now) {
			return e, true
		}
	}
	return TimeEvent{}, false
}

// PriceFor picks the tender-specific price from a result, falling back to
// the base price.
func (r Result) PriceFor(tender string) decimal.Decimal {
	switch tender {
	case TenderCard:
		if r.CardPrice != nil {
			return *r.CardPrice
		}
	case TenderCash:
		if r.CashPrice != nil {
			return *r.CashPrice
		}
	}
	return r.Price
}

// Tender types with dedicated prices.
const (
	TenderCard = "CARD"
	TenderCash = "CASH"
)

func roundPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := d.Round(2)
	return &v
}
