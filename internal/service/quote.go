package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/menuhq/pos-admin/internal/pricing"
)

// Errors returned by the quote service.
var (
	ErrEmptyLines         = errors.New("lines are required")
	ErrInvalidQuantity    = errors.New("quantity must be > 0")
	ErrInvalidItemID      = errors.New("invalid item_id")
	ErrItemUnavailable    = errors.New("item is not orderable at this time")
	ErrInvalidModifierID  = errors.New("invalid modifier_id")
	ErrModifierNotFound   = errors.New("modifier not found")
	ErrModifierNotAllowed = errors.New("modifier does not belong to the item's modifier groups")
	ErrDuplicateModifier  = errors.New("modifier selected more than once")
	ErrModifierMinimum    = errors.New("too few modifiers selected for group")
	ErrModifierMaximum    = errors.New("too many modifiers selected for group")
	ErrInvalidTender      = errors.New("tender must be CARD or CASH")
)

var hundred = decimal.NewFromInt(100)

// SnapshotSource provides an outlet's catalog snapshot.
// Satisfied by *MenuService.
type SnapshotSource interface {
	Snapshot(ctx context.Context, outletID uuid.UUID) (*Snapshot, error)
}

// QuoteRequest is the validated input for pricing a cart.
type QuoteRequest struct {
	OutletID uuid.UUID
	At       time.Time
	Tender   string
	Lines    []QuoteLineRequest
}

// QuoteLineRequest is a single cart line.
type QuoteLineRequest struct {
	ItemID      string
	Quantity    int32
	ModifierIDs []string
}

type QuoteModifier struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type QuoteLine struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	EventCode string          `json:"event_code,omitempty"`
	Modifiers []QuoteModifier `json:"modifiers"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxName   string          `json:"tax_name,omitempty"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

// Quote is a priced cart. Totals are sums of the rounded line amounts.
type Quote struct {
	OutletID uuid.UUID       `json:"outlet_id"`
	At       time.Time       `json:"at"`
	Tender   string          `json:"tender,omitempty"`
	Lines    []QuoteLine     `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// QuoteService prices carts against the resolved menu.
type QuoteService struct {
	source SnapshotSource
	now    func() time.Time
}

func NewQuoteService(source SnapshotSource) *QuoteService {
	return &QuoteService{source: source, now: time.Now}
}

// Quote validates and prices every line at req.At (now when zero). The first
// invalid line aborts the quote with an error naming its index.
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if len(req.Lines) == 0 {
		return nil, ErrEmptyLines
	}
	switch req.Tender {
	case "", pricing.TenderCard, pricing.TenderCash:
	default:
		return nil, ErrInvalidTender
	}

	snap, err := s.source.Snapshot(ctx, req.OutletID)
	if err != nil {
		return nil, err
	}
	at := req.At
	if at.IsZero() {
		at = s.now()
	}

	c := compileCatalog(snap)
	q := &Quote{
		OutletID: req.OutletID,
		At:       at.In(c.loc),
		Tender:   req.Tender,
		Lines:    make([]QuoteLine, 0, len(req.Lines)),
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}

	for i, l := range req.Lines {
		line, err := c.quoteLine(l, at, req.Tender)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: %w", i, err)
		}
		q.Lines = append(q.Lines, line)
		q.Subtotal = q.Subtotal.Add(line.Subtotal)
		q.Tax = q.Tax.Add(line.Tax)
		q.Total = q.Total.Add(line.Total)
	}
	return q, nil
}

func (c *catalog) quoteLine(l QuoteLineRequest, at time.Time, tender string) (QuoteLine, error) {
	if l.Quantity <= 0 {
		return QuoteLine{}, ErrInvalidQuantity
	}
	itemID, err := uuid.Parse(l.ItemID)
	if err != nil {
		return QuoteLine{}, ErrInvalidItemID
	}
	it, ok := c.items[itemID]
	if !ok {
		return QuoteLine{}, ErrItemNotFound
	}

	entry := c.resolve(it, at)
	if !entry.Orderable {
		return QuoteLine{}, fmt.Errorf("%w: %s", ErrItemUnavailable, entry.Reason)
	}

	mods, err := c.selectModifiers(entry, l.ModifierIDs)
	if err != nil {
		return QuoteLine{}, err
	}

	unit := entry.PriceFor(tender)
	for _, m := range mods {
		unit = unit.Add(m.Price)
	}

	line := QuoteLine{
		ItemID:    entry.ItemID,
		Code:      entry.Code,
		Name:      entry.Name,
		Quantity:  l.Quantity,
		UnitPrice: unit,
		EventCode: entry.EventCode,
		Modifiers: mods,
		Subtotal:  unit.Mul(decimal.NewFromInt32(l.Quantity)).Round(2),
		TaxRate:   decimal.Zero,
		Tax:       decimal.Zero,
	}
	if entry.Tax != nil {
		line.TaxName = entry.Tax.Name
		line.TaxRate = entry.Tax.Rate
		line.Tax = line.Subtotal.Mul(entry.Tax.Rate).Div(hundred).Round(2)
	}
	line.Total = line.Subtotal.Add(line.Tax)
	return line, nil
}

// selectModifiers checks the chosen modifiers against the item's effective
// groups and each group's min/max selection.
func (c *catalog) selectModifiers(entry MenuEntry, ids []string) ([]QuoteModifier, error) {
	allowed := make(map[uuid.UUID]bool, len(entry.ModifierGroupIDs))
	for _, gid := range entry.ModifierGroupIDs {
		allowed[gid] = true
	}

	seen := make(map[uuid.UUID]bool, len(ids))
	perGroup := make(map[uuid.UUID]int32)
	mods := make([]QuoteModifier, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrInvalidModifierID
		}
		ref, ok := c.modifiers[id]
		if !ok {
			return nil, ErrModifierNotFound
		}
		if !allowed[ref.groupID] {
			return nil, ErrModifierNotAllowed
		}
		if seen[id] {
			return nil, ErrDuplicateModifier
		}
		seen[id] = true
		perGroup[ref.groupID]++
		mods = append(mods, QuoteModifier{ID: id, Name: ref.modifier.Name, Price: ref.modifier.Price})
	}

	for _, gid := range entry.ModifierGroupIDs {
		g := c.groups[gid]
		n := perGroup[gid]
		if n < g.MinSelect {
			return nil, fmt.Errorf("%w %q: need %d", ErrModifierMinimum, g.Name, g.MinSelect)
		}
		if g.MaxSelect != nil && n > *g.MaxSelect {
			return nil, fmt.Errorf("%w %q: at most %d", ErrModifierMaximum, g.Name, *g.MaxSelect)
		}
	}
	return mods, nil
}

// PriceFor picks the tender-specific price, falling back to the effective
// price.
func (e MenuEntry) PriceFor(tender string) decimal.Decimal {
	switch tender {
	case pricing.TenderCard:
		if e.CardPrice != nil {
			return *e.CardPrice
		}
	case pricing.TenderCash:
		if e.CashPrice != nil {
			return *e.CashPrice
		}
	}
	return e.Price
}
