package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMultipleAdjustments = errors.New("at most one of amount_add, amount_discount, percent_add, percent_discount may be set")
	ErrNegativeAdjustment  = errors.New("adjustment must be >= 0")
	ErrPercentTooLarge     = errors.New("percent_discount must be <= 100")
	ErrEmptyEventCode      = errors.New("event code is required")
	ErrEmptyEventName      = errors.New("event name is required")
)

var hundred = decimal.NewFromInt(100)

// AdjustmentKind identifies how an event changes a price.
type AdjustmentKind int

const (
	NoAdjustment AdjustmentKind = iota
	AmountAdd
	AmountDiscount
	PercentAdd
	PercentDiscount
)

func (k AdjustmentKind) String() string {
	switch k {
	case AmountAdd:
		return "AMOUNT_ADD"
	case AmountDiscount:
		return "AMOUNT_DISCOUNT"
	case PercentAdd:
		return "PERCENT_ADD"
	case PercentDiscount:
		return "PERCENT_DISCOUNT"
	default:
		return "NONE"
	}
}

// Adjustment is a single resolved price change.
type Adjustment struct {
	Kind  AdjustmentKind
	Value decimal.Decimal
}

// Apply returns the adjusted price, floored at zero and not yet rounded.
func (a Adjustment) Apply(price decimal.Decimal) decimal.Decimal {
	var out decimal.Decimal
	switch a.Kind {
	case AmountAdd:
		out = price.Add(a.Value)
	case AmountDiscount:
		out = price.Sub(a.Value)
	case PercentAdd:
		out = price.Mul(hundred.Add(a.Value)).Div(hundred)
	case PercentDiscount:
		out = price.Mul(hundred.Sub(a.Value)).Div(hundred)
	default:
		out = price
	}
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// AdjustmentSet mirrors the four mutually exclusive adjustment columns of an
// event as they are stored.
type AdjustmentSet struct {
	AmountAdd       *decimal.Decimal
	AmountDiscount  *decimal.Decimal
	PercentAdd      *decimal.Decimal
	PercentDiscount *decimal.Decimal
}

// Validate enforces the write-time rules: at most one field, non-negative,
// and a percent discount no larger than 100.
func (s AdjustmentSet) Validate() error {
	set := 0
	for _, v := range []*decimal.Decimal{s.AmountAdd, s.AmountDiscount, s.PercentAdd, s.PercentDiscount} {
		if v == nil {
			continue
		}
		set++
		if v.IsNegative() {
			return ErrNegativeAdjustment
		}
	}
	if set > 1 {
		return ErrMultipleAdjustments
	}
	if s.PercentDiscount != nil && s.PercentDiscount.GreaterThan(hundred) {
		return ErrPercentTooLarge
	}
	return nil
}

// Effective picks the adjustment to apply. When more than one field is set
// (validation bypassed) the precedence is
// amountAdd > amountDiscount > percentAdd > percentDiscount.
func (s AdjustmentSet) Effective() Adjustment {
	switch {
	case s.AmountAdd != nil:
		return Adjustment{Kind: AmountAdd, Value: *s.AmountAdd}
	case s.AmountDiscount != nil:
		return Adjustment{Kind: AmountDiscount, Value: *s.AmountDiscount}
	case s.PercentAdd != nil:
		return Adjustment{Kind: PercentAdd, Value: *s.PercentAdd}
	case s.PercentDiscount != nil:
		return Adjustment{Kind: PercentDiscount, Value: *s.PercentDiscount}
	}
	return Adjustment{Kind: NoAdjustment}
}

// Week holds an optional window per weekday, indexed by time.Weekday.
type Week [7]Window

// TimeEvent is a named day/time rule with an optional price adjustment.
// Values are immutable: the With* methods return validated copies.
type TimeEvent struct {
	Code       string
	Name       string
	Active     bool
	Dates      DateRange
	Windows    Week
	Adjustment AdjustmentSet
}

// NewTimeEvent returns an active event with no windows, no date bounds and no
// price effect.
func NewTimeEvent(code, name string) (TimeEvent, error) {
	e := TimeEvent{Code: strings.TrimSpace(code), Name: strings.TrimSpace(name), Active: true}
	if e.Code == "" {
		return TimeEvent{}, ErrEmptyEventCode
	}
	if e.Name == "" {
		return TimeEvent{}, ErrEmptyEventName
	}
	return e, nil
}

// WithActive returns a copy with the active flag set.
func (e TimeEvent) WithActive(active bool) TimeEvent {
	e.Active = active
	return e
}

// WithWindow returns a copy that applies on day during w.
func (e TimeEvent) WithWindow(day time.Weekday, w Window) (TimeEvent, error) {
	if w.Start >= w.End {
		return TimeEvent{}, fmt.Errorf("%s: %w", day, ErrInvalidWindow)
	}
	e.Windows[day] = w
	return e, nil
}

// WithoutWindow returns a copy that no longer applies on day.
func (e TimeEvent) WithoutWindow(day time.Weekday) TimeEvent {
	e.Windows[day] = Window{}
	return e
}

// WithDates returns a copy bounded by r.
func (e TimeEvent) WithDates(r DateRange) (TimeEvent, error) {
	if _, err := NewDateRange(r.From, r.To); err != nil {
		return TimeEvent{}, err
	}
	e.Dates = r
	return e, nil
}

// WithAdjustment returns a copy carrying the given adjustment.
func (e TimeEvent) WithAdjustment(s AdjustmentSet) (TimeEvent, error) {
	if err := s.Validate(); err != nil {
		return TimeEvent{}, err
	}
	e.Adjustment = s
	return e, nil
}

// Validate checks every invariant the constructors enforce. Used on events
// assembled from request payloads.
func (e TimeEvent) Validate() error {
	if strings.TrimSpace(e.Code) == "" {
		return ErrEmptyEventCode
	}
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyEventName
	}
	for day, w := range e.Windows {
		if w.IsZero() {
			continue
		}
		if w.Start >= w.End || w.End > endOfDay {
			return fmt.Errorf("%s: %w", time.Weekday(day), ErrInvalidWindow)
		}
	}
	if _, err := NewDateRange(e.Dates.From, e.Dates.To); err != nil {
		return err
	}
	return e.Adjustment.Validate()
}

// Matches reports whether the event is in effect at now (already in outlet
// local time).
func (e TimeEvent) Matches(now time.Time) bool {
	if !e.Active {
		return false
	}
	if !e.Dates.Contains(DateOf(now)) {
		return false
	}
	w := e.Windows[now.Weekday()]
	if w.IsZero() {
		return false
	}
	return w.Contains(ClockOf(now))
}
