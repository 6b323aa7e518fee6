package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"

	"github.com/menuhq/pos-admin/internal/enum"
)

// table is one COPY batch. Tables are copied in slice order, parents first.
type table struct {
	name    string
	columns []string
	rows    [][]any
}

type plan struct {
	tables []*table
	owner  uuid.UUID
}

func (p *plan) table(name string) *table {
	for _, t := range p.tables {
		if t.name == name {
			return t
		}
	}
	t := &table{name: name, columns: columnsFor[name]}
	p.tables = append(p.tables, t)
	return t
}

func (p *plan) rowCount() int {
	n := 0
	for _, t := range p.tables {
		n += len(t.rows)
	}
	return n
}

var columnsFor = map[string][]string{
	"outlets":                  {"id", "name", "timezone"},
	"users":                    {"id", "outlet_id", "email", "hashed_password", "full_name", "role", "pin"},
	"taxes":                    {"id", "outlet_id", "name", "rate"},
	"availabilities":           {"id", "outlet_id", "name"},
	"availability_rows":        {"id", "availability_id", "day", "start_time", "end_time", "sort_order"},
	"prep_zones":               {"id", "outlet_id", "name"},
	"menu_masters":             {"id", "outlet_id", "name", "prep_zone_id", "sort_order"},
	"categories":               {"id", "outlet_id", "menu_master_id", "code", "name", "description", "sort_order", "tax_id", "availability_id"},
	"modifier_groups":          {"id", "outlet_id", "name", "min_select", "max_select", "sort_order"},
	"modifiers":                {"id", "modifier_group_id", "name", "price", "sort_order"},
	"category_modifier_groups": {"category_id", "modifier_group_id"},
	"menu_items":               {"id", "outlet_id", "category_id", "code", "name", "description", "base_price", "card_price", "cash_price", "inherit_modifier_groups"},
	"time_events":              {"id", "outlet_id", "code", "name", "start_date", "percent_discount"},
	"time_event_windows":       {"event_id", "day_of_week", "start_time", "end_time"},
}

// tableOrder satisfies every foreign key in the schema.
var tableOrder = []string{
	"outlets", "users", "taxes", "availabilities", "availability_rows",
	"prep_zones", "menu_masters", "categories", "modifier_groups", "modifiers",
	"category_modifier_groups", "menu_items", "time_events", "time_event_windows",
}

var weekdays = map[string]time.Weekday{
	enum.DaySunday: time.Sunday, enum.DayMonday: time.Monday, enum.DayTuesday: time.Tuesday,
	enum.DayWednesday: time.Wednesday, enum.DayThursday: time.Thursday,
	enum.DayFriday: time.Friday, enum.DaySaturday: time.Saturday,
}

func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// code builds a short unique category or item code such as "CAT-3K9F2A".
func code(prefix string) string {
	return prefix + "-" + strings.ToUpper(cuid.Slug())
}

// buildPlan generates the sample catalog. hashedPassword is stored for every
// seeded user; staff additionally get a PIN.
func buildPlan(cfg seedConfig, fake faker.Faker, hashedPassword string) (*plan, error) {
	if cfg.Outlets < 1 || cfg.Categories < 1 || cfg.ItemsPerCategory < 1 {
		return nil, fmt.Errorf("outlets, categories and items_per_category must be positive")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	seen := make(map[time.Weekday]bool)
	for _, d := range cfg.HappyHourDays {
		day, ok := weekdays[strings.ToUpper(d)]
		if !ok {
			return nil, fmt.Errorf("happy_hour_days: unknown day %q", d)
		}
		if seen[day] {
			return nil, fmt.Errorf("happy_hour_days: %s listed twice", day)
		}
		seen[day] = true
	}

	p := &plan{}
	for _, name := range tableOrder {
		p.table(name)
	}

	for o := 0; o < cfg.Outlets; o++ {
		outletID := uuid.New()
		p.table("outlets").rows = append(p.table("outlets").rows, []any{outletID, fake.Company().Name(), cfg.Timezone})

		if o == 0 {
			p.owner = uuid.New()
			p.table("users").rows = append(p.table("users").rows,
				[]any{p.owner, outletID, cfg.OwnerEmail, hashedPassword, cfg.OwnerName, enum.UserRoleOwner, nil})
		}
		for _, role := range []string{enum.UserRoleManager, enum.UserRoleStaff} {
			email := fmt.Sprintf("%s.%d@%s", strings.ToLower(role), o+1, fake.Internet().Domain())
			p.table("users").rows = append(p.table("users").rows,
				[]any{uuid.New(), outletID, email, hashedPassword, fake.Person().Name(), role, fake.Numerify("######")})
		}

		taxID := uuid.New()
		p.table("taxes").rows = append(p.table("taxes").rows, []any{taxID, outletID, "PPN", numeric(decimal.NewFromInt(11))})

		breakfastID := uuid.New()
		p.table("availabilities").rows = append(p.table("availabilities").rows, []any{breakfastID, outletID, "Breakfast"})
		p.table("availability_rows").rows = append(p.table("availability_rows").rows,
			[]any{uuid.New(), breakfastID, enum.DayAll, "06:00", "11:00", int32(0)},
			[]any{uuid.New(), breakfastID, enum.DaySunday, nil, nil, int32(1)})

		zoneID := uuid.New()
		p.table("prep_zones").rows = append(p.table("prep_zones").rows, []any{zoneID, outletID, "Kitchen"})
		masterID := uuid.New()
		p.table("menu_masters").rows = append(p.table("menu_masters").rows, []any{masterID, outletID, "Main Menu", zoneID, int32(0)})

		groupID := uuid.New()
		p.table("modifier_groups").rows = append(p.table("modifier_groups").rows,
			[]any{groupID, outletID, "Extras", int32(0), int32(2), int32(0)})
		for i := 0; i < 3; i++ {
			price := decimal.NewFromInt(int64(fake.IntBetween(1, 5) * 1000))
			p.table("modifiers").rows = append(p.table("modifiers").rows,
				[]any{uuid.New(), groupID, fake.Food().Vegetable(), numeric(price), int32(i)})
		}

		for c := 0; c < cfg.Categories; c++ {
			categoryID := uuid.New()
			var availability any
			if c == 0 {
				availability = breakfastID
			}
			p.table("categories").rows = append(p.table("categories").rows,
				[]any{categoryID, outletID, masterID, code("CAT"), title(fake.Lorem().Word()), fake.Lorem().Sentence(6), int32(c), taxID, availability})
			if c%2 == 1 {
				p.table("category_modifier_groups").rows = append(p.table("category_modifier_groups").rows, []any{categoryID, groupID})
			}

			for i := 0; i < cfg.ItemsPerCategory; i++ {
				base := decimal.NewFromInt(int64(fake.IntBetween(10, 80) * 1000))
				var card any
				if i%3 == 0 {
					card = numeric(base.Add(decimal.NewFromInt(1000)))
				}
				p.table("menu_items").rows = append(p.table("menu_items").rows,
					[]any{uuid.New(), outletID, categoryID, code("ITM"), fake.Food().Fruit() + " " + title(fake.Lorem().Word()),
						fake.Lorem().Sentence(8), numeric(base), card, nil, true})
			}
		}

		if len(cfg.HappyHourDays) > 0 {
			eventID := uuid.New()
			p.table("time_events").rows = append(p.table("time_events").rows,
				[]any{eventID, outletID, "HAPPY_HOUR", "Happy Hour", pgtype.Date{Time: time.Now().UTC().Truncate(24 * time.Hour), Valid: true}, numeric(decimal.NewFromInt(20))})
			for _, d := range cfg.HappyHourDays {
				p.table("time_event_windows").rows = append(p.table("time_event_windows").rows,
					[]any{eventID, int16(weekdays[strings.ToUpper(d)]), "15:00", "18:00"})
			}
		}
	}
	return p, nil
}
