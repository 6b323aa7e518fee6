package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/menuhq/pos-admin/internal/database"
)

// Snapshot is an outlet's active catalog as read in one transaction. It is
// the unit cached in Redis, so every field is JSON-stable.
type Snapshot struct {
	OutletID       uuid.UUID           `json:"outlet_id"`
	OutletName     string              `json:"outlet_name"`
	Timezone       string              `json:"timezone"`
	LoadedAt       time.Time           `json:"loaded_at"`
	Categories     []SnapCategory      `json:"categories"`
	Items          []SnapItem          `json:"items"`
	ModifierGroups []SnapModifierGroup `json:"modifier_groups"`
	Taxes          []SnapTax           `json:"taxes"`
	Events         []SnapEvent         `json:"events"`
	Availabilities []SnapAvailability  `json:"availabilities"`
}

type SnapCategory struct {
	ID               uuid.UUID   `json:"id"`
	Code             string      `json:"code"`
	Name             string      `json:"name"`
	SortOrder        int32       `json:"sort_order"`
	TaxID            *uuid.UUID  `json:"tax_id,omitempty"`
	AvailabilityID   *uuid.UUID  `json:"availability_id,omitempty"`
	ModifierGroupIDs []uuid.UUID `json:"modifier_group_ids"`
}

type SnapItem struct {
	ID                    uuid.UUID        `json:"id"`
	CategoryID            uuid.UUID        `json:"category_id"`
	Code                  string           `json:"code"`
	Name                  string           `json:"name"`
	BasePrice             decimal.Decimal  `json:"base_price"`
	CardPrice             *decimal.Decimal `json:"card_price,omitempty"`
	CashPrice             *decimal.Decimal `json:"cash_price,omitempty"`
	TaxID                 *uuid.UUID       `json:"tax_id,omitempty"`
	AvailabilityID        *uuid.UUID       `json:"availability_id,omitempty"`
	InheritModifierGroups bool             `json:"inherit_modifier_groups"`
	ModifierGroupIDs      []uuid.UUID      `json:"modifier_group_ids"`
	Inactive              bool             `json:"inactive,omitempty"`
}

type SnapModifierGroup struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	MinSelect int32          `json:"min_select"`
	MaxSelect *int32         `json:"max_select,omitempty"`
	Modifiers []SnapModifier `json:"modifiers"`
}

type SnapModifier struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type SnapTax struct {
	ID   uuid.UUID       `json:"id"`
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

type SnapWindow struct {
	Day   time.Weekday `json:"day"`
	Start string       `json:"start"`
	End   string       `json:"end"`
}

type SnapEvent struct {
	ID              uuid.UUID        `json:"id"`
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	Active          bool             `json:"active"`
	StartDate       *string          `json:"start_date,omitempty"`
	EndDate         *string          `json:"end_date,omitempty"`
	Windows         []SnapWindow     `json:"windows"`
	AmountAdd       *decimal.Decimal `json:"amount_add,omitempty"`
	AmountDiscount  *decimal.Decimal `json:"amount_discount,omitempty"`
	PercentAdd      *decimal.Decimal `json:"percent_add,omitempty"`
	PercentDiscount *decimal.Decimal `json:"percent_discount,omitempty"`
}

// SnapRow has empty Start and End for an all-times row.
type SnapRow struct {
	Day   string `json:"day"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type SnapAvailability struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
	Rows   []SnapRow `json:"rows"`
}

// catalogRows is everything read for one snapshot.
type catalogRows struct {
	outlet           database.Outlet
	categories       []database.Category
	items            []database.MenuItem
	categoryGroups   []database.CategoryModifierGroup
	itemGroups       []database.ItemModifierGroup
	modifierGroups   []database.ModifierGroup
	modifiers        []database.Modifier
	taxes            []database.Tax
	events           []database.TimeEvent
	windows          []database.TimeEventWindow
	availabilities   []database.Availability
	availabilityRows []database.AvailabilityRow
}

func buildSnapshot(rows catalogRows, loadedAt time.Time) *Snapshot {
	s := &Snapshot{
		OutletID:   rows.outlet.ID,
		OutletName: rows.outlet.Name,
		Timezone:   rows.outlet.Timezone,
		LoadedAt:   loadedAt,
	}

	catGroups := make(map[uuid.UUID][]uuid.UUID)
	for _, l := range rows.categoryGroups {
		catGroups[l.CategoryID] = append(catGroups[l.CategoryID], l.ModifierGroupID)
	}
	itemGroups := make(map[uuid.UUID][]uuid.UUID)
	for _, l := range rows.itemGroups {
		itemGroups[l.MenuItemID] = append(itemGroups[l.MenuItemID], l.ModifierGroupID)
	}

	for _, c := range rows.categories {
		s.Categories = append(s.Categories, SnapCategory{
			ID:               c.ID,
			Code:             c.Code,
			Name:             c.Name,
			SortOrder:        c.SortOrder,
			TaxID:            uuidPtr(c.TaxID),
			AvailabilityID:   uuidPtr(c.AvailabilityID),
			ModifierGroupIDs: catGroups[c.ID],
		})
	}

	for _, it := range rows.items {
		s.Items = append(s.Items, SnapItem{
			ID:                    it.ID,
			CategoryID:            it.CategoryID,
			Code:                  it.Code,
			Name:                  it.Name,
			BasePrice:             numericToDecimal(it.BasePrice),
			CardPrice:             numericToDecimalPtr(it.CardPrice),
			CashPrice:             numericToDecimalPtr(it.CashPrice),
			TaxID:                 uuidPtr(it.TaxID),
			AvailabilityID:        uuidPtr(it.AvailabilityID),
			InheritModifierGroups: it.InheritModifierGroups,
			ModifierGroupIDs:      itemGroups[it.ID],
			Inactive:              !it.IsActive,
		})
	}

	mods := make(map[uuid.UUID][]SnapModifier)
	for _, m := range rows.modifiers {
		mods[m.ModifierGroupID] = append(mods[m.ModifierGroupID], SnapModifier{
			ID:    m.ID,
			Name:  m.Name,
			Price: numericToDecimal(m.Price),
		})
	}
	for _, g := range rows.modifierGroups {
		s.ModifierGroups = append(s.ModifierGroups, SnapModifierGroup{
			ID:        g.ID,
			Name:      g.Name,
			MinSelect: g.MinSelect,
			MaxSelect: int32Ptr(g.MaxSelect),
			Modifiers: mods[g.ID],
		})
	}

	for _, t := range rows.taxes {
		s.Taxes = append(s.Taxes, SnapTax{ID: t.ID, Name: t.Name, Rate: numericToDecimal(t.Rate)})
	}

	windows := make(map[uuid.UUID][]SnapWindow)
	for _, w := range rows.windows {
		windows[w.EventID] = append(windows[w.EventID], SnapWindow{
			Day:   time.Weekday(w.DayOfWeek),
			Start: w.StartTime,
			End:   w.EndTime,
		})
	}
	for _, e := range rows.events {
		s.Events = append(s.Events, SnapEvent{
			ID:              e.ID,
			Code:            e.Code,
			Name:            e.Name,
			Active:          e.IsActive,
			StartDate:       datePtr(e.StartDate),
			EndDate:         datePtr(e.EndDate),
			Windows:         windows[e.ID],
			AmountAdd:       numericToDecimalPtr(e.AmountAdd),
			AmountDiscount:  numericToDecimalPtr(e.AmountDiscount),
			PercentAdd:      numericToDecimalPtr(e.PercentAdd),
			PercentDiscount: numericToDecimalPtr(e.PercentDiscount),
		})
	}

	avRows := make(map[uuid.UUID][]SnapRow)
	for _, r := range rows.availabilityRows {
		avRows[r.AvailabilityID] = append(avRows[r.AvailabilityID], SnapRow{
			Day:   r.Day,
			Start: textOrEmpty(r.StartTime),
			End:   textOrEmpty(r.EndTime),
		})
	}
	for _, a := range rows.availabilities {
		s.Availabilities = append(s.Availabilities, SnapAvailability{
			ID:     a.ID,
			Name:   a.Name,
			Active: a.IsActive,
			Rows:   avRows[a.ID],
		})
	}

	return s
}
