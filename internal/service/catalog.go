package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/menuhq/pos-admin/internal/pricing"
)

// catalog is a Snapshot compiled into resolver inputs and lookup maps.
type catalog struct {
	snap           *Snapshot
	loc            *time.Location
	events         []pricing.TimeEvent
	availabilities map[uuid.UUID]pricing.Availability
	categories     map[uuid.UUID]*SnapCategory
	items          map[uuid.UUID]*SnapItem
	taxes          map[uuid.UUID]SnapTax
	groups         map[uuid.UUID]*SnapModifierGroup
	modifiers      map[uuid.UUID]modifierRef
}

type modifierRef struct {
	groupID  uuid.UUID
	modifier SnapModifier
}

func compileCatalog(s *Snapshot) *catalog {
	c := &catalog{
		snap:           s,
		loc:            outletLocation(s.Timezone),
		availabilities: make(map[uuid.UUID]pricing.Availability, len(s.Availabilities)),
		categories:     make(map[uuid.UUID]*SnapCategory, len(s.Categories)),
		items:          make(map[uuid.UUID]*SnapItem, len(s.Items)),
		taxes:          make(map[uuid.UUID]SnapTax, len(s.Taxes)),
		groups:         make(map[uuid.UUID]*SnapModifierGroup, len(s.ModifierGroups)),
		modifiers:      make(map[uuid.UUID]modifierRef),
	}

	for _, e := range s.Events {
		ev, err := compileEvent(e)
		if err != nil {
			log.Warn().Err(err).Str("event", e.Code).Str("outlet_id", s.OutletID.String()).Msg("skipping invalid time event")
			continue
		}
		c.events = append(c.events, ev)
	}

	for _, a := range s.Availabilities {
		av, err := compileAvailability(a)
		if err != nil {
			// Fail closed: a broken schedule hides its items rather than showing them always.
			log.Warn().Err(err).Str("availability", a.Name).Str("outlet_id", s.OutletID.String()).Msg("invalid availability treated as never open")
			av = pricing.Availability{Name: a.Name, Active: a.Active}
		}
		c.availabilities[a.ID] = av
	}

	for i := range s.Categories {
		c.categories[s.Categories[i].ID] = &s.Categories[i]
	}
	for i := range s.Items {
		c.items[s.Items[i].ID] = &s.Items[i]
	}
	for _, t := range s.Taxes {
		c.taxes[t.ID] = t
	}
	for i := range s.ModifierGroups {
		g := &s.ModifierGroups[i]
		c.groups[g.ID] = g
		for _, m := range g.Modifiers {
			c.modifiers[m.ID] = modifierRef{groupID: g.ID, modifier: m}
		}
	}
	return c
}

func outletLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Warn().Err(err).Str("timezone", tz).Msg("unknown outlet timezone, using UTC")
		return time.UTC
	}
	return loc
}

func compileEvent(e SnapEvent) (pricing.TimeEvent, error) {
	ev, err := pricing.NewTimeEvent(e.Code, e.Name)
	if err != nil {
		return pricing.TimeEvent{}, err
	}
	ev = ev.WithActive(e.Active)

	var r pricing.DateRange
	if e.StartDate != nil {
		d, err := pricing.ParseDate(*e.StartDate)
		if err != nil {
			return pricing.TimeEvent{}, err
		}
		r.From = &d
	}
	if e.EndDate != nil {
		d, err := pricing.ParseDate(*e.EndDate)
		if err != nil {
			return pricing.TimeEvent{}, err
		}
		r.To = &d
	}
	if ev, err = ev.WithDates(r); err != nil {
		return pricing.TimeEvent{}, err
	}

	for _, w := range e.Windows {
		win, err := pricing.NewWindow(w.Start, w.End)
		if err != nil {
			return pricing.TimeEvent{}, fmt.Errorf("%s window: %w", w.Day, err)
		}
		if ev, err = ev.WithWindow(w.Day, win); err != nil {
			return pricing.TimeEvent{}, err
		}
	}

	// Adjustments were validated on write. A row with several set still
	// resolves, using the resolver's fixed precedence.
	ev.Adjustment = pricing.AdjustmentSet{
		AmountAdd:       e.AmountAdd,
		AmountDiscount:  e.AmountDiscount,
		PercentAdd:      e.PercentAdd,
		PercentDiscount: e.PercentDiscount,
	}
	return ev, nil
}

func compileAvailability(a SnapAvailability) (pricing.Availability, error) {
	rows := make([]pricing.ScheduleRow, 0, len(a.Rows))
	for _, r := range a.Rows {
		row, err := compileRow(r)
		if err != nil {
			return pricing.Availability{}, err
		}
		rows = append(rows, row)
	}
	av, err := pricing.NewAvailability(a.Name, rows)
	if err != nil {
		return pricing.Availability{}, err
	}
	av.Active = a.Active
	return av, nil
}

func compileRow(r SnapRow) (pricing.ScheduleRow, error) {
	day, all, err := pricing.ParseDay(r.Day)
	if err != nil {
		return pricing.ScheduleRow{}, err
	}
	row := pricing.ScheduleRow{AllDays: all, Day: day}
	if r.Start == "" && r.End == "" {
		row.AllTimes = true
		return row, nil
	}
	w, err := pricing.NewWindow(r.Start, r.End)
	if err != nil {
		return pricing.ScheduleRow{}, err
	}
	row.Window = w
	return row, nil
}

// MenuEntry is one item resolved at an instant.
type MenuEntry struct {
	ItemID           uuid.UUID
	Code             string
	Name             string
	CategoryID       uuid.UUID
	CategoryCode     string
	CategoryName     string
	Orderable        bool
	Reason           string
	BasePrice        decimal.Decimal
	Price            decimal.Decimal
	CardPrice        *decimal.Decimal
	CashPrice        *decimal.Decimal
	EventCode        string
	Adjustment       string
	ModifierGroupIDs []uuid.UUID
	Tax              *SnapTax
}

func (c *catalog) pricingCategory(id uuid.UUID) (*SnapCategory, *pricing.Category) {
	sc, ok := c.categories[id]
	if !ok {
		// Only active categories are loaded; a missing one was deactivated.
		return nil, &pricing.Category{ID: id, Active: false}
	}
	return sc, &pricing.Category{
		ID:               sc.ID,
		Active:           true,
		ModifierGroupIDs: sc.ModifierGroupIDs,
		TaxID:            sc.TaxID,
	}
}

func (c *catalog) linkedAvailabilities(ids ...*uuid.UUID) []pricing.Availability {
	var out []pricing.Availability
	for _, id := range ids {
		if id == nil {
			continue
		}
		if av, ok := c.availabilities[*id]; ok {
			out = append(out, av)
		}
	}
	return out
}

// resolve runs the rule resolver for one item. at is converted to the
// outlet's timezone first.
func (c *catalog) resolve(it *SnapItem, at time.Time) MenuEntry {
	sc, cat := c.pricingCategory(it.CategoryID)

	var catAvailability *uuid.UUID
	if sc != nil {
		catAvailability = sc.AvailabilityID
	}

	item := pricing.Item{
		ID:     it.ID,
		Code:   it.Code,
		Active: !it.Inactive,
		Prices: pricing.Prices{
			Base: it.BasePrice,
			Card: it.CardPrice,
			Cash: it.CashPrice,
		},
		InheritModifierGroups: it.InheritModifierGroups,
		ModifierGroupIDs:      it.ModifierGroupIDs,
		TaxID:                 it.TaxID,
	}

	res := pricing.Resolve(pricing.Input{
		Item:           item,
		Category:       cat,
		Events:         c.events,
		Availabilities: c.linkedAvailabilities(it.AvailabilityID, catAvailability),
		Now:            at.In(c.loc),
	})

	entry := MenuEntry{
		ItemID:     it.ID,
		Code:       it.Code,
		Name:       it.Name,
		CategoryID: it.CategoryID,
		Orderable:  res.Orderable,
		Reason:     res.Reason,
		BasePrice:  it.BasePrice.Round(2),
		Price:      res.Price,
		CardPrice:  res.CardPrice,
		CashPrice:  res.CashPrice,
		EventCode:  res.EventCode,
	}
	if res.EventCode != "" {
		entry.Adjustment = res.Adjustment.Kind.String()
	}
	if sc != nil {
		entry.CategoryCode = sc.Code
		entry.CategoryName = sc.Name
	}

	for _, gid := range pricing.EffectiveModifierGroups(item, cat) {
		if _, ok := c.groups[gid]; ok {
			entry.ModifierGroupIDs = append(entry.ModifierGroupIDs, gid)
		}
	}
	if taxID := pricing.EffectiveTax(item, cat); taxID != nil {
		if t, ok := c.taxes[*taxID]; ok {
			entry.Tax = &t
		}
	}
	return entry
}
