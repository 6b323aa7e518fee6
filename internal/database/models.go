package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Outlet struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID             uuid.UUID   `json:"id"`
	OutletID       uuid.UUID   `json:"outlet_id"`
	Email          string      `json:"email"`
	HashedPassword string      `json:"hashed_password"`
	FullName       string      `json:"full_name"`
	Role           string      `json:"role"`
	Pin            pgtype.Text `json:"pin"`
	IsActive       bool        `json:"is_active"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type Tax struct {
	ID        uuid.UUID      `json:"id"`
	OutletID  uuid.UUID      `json:"outlet_id"`
	Name      string         `json:"name"`
	Rate      pgtype.Numeric `json:"rate"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
}

type PrepZone struct {
	ID        uuid.UUID `json:"id"`
	OutletID  uuid.UUID `json:"outlet_id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Printer struct {
	ID         uuid.UUID   `json:"id"`
	OutletID   uuid.UUID   `json:"outlet_id"`
	PrepZoneID pgtype.UUID `json:"prep_zone_id"`
	Name       string      `json:"name"`
	IpAddress  string      `json:"ip_address"`
	Port       int32       `json:"port"`
	IsActive   bool        `json:"is_active"`
	CreatedAt  time.Time   `json:"created_at"`
}

type MenuMaster struct {
	ID         uuid.UUID   `json:"id"`
	OutletID   uuid.UUID   `json:"outlet_id"`
	Name       string      `json:"name"`
	PrepZoneID pgtype.UUID `json:"prep_zone_id"`
	SortOrder  int32       `json:"sort_order"`
	IsActive   bool        `json:"is_active"`
	CreatedAt  time.Time   `json:"created_at"`
}

type Category struct {
	ID             uuid.UUID   `json:"id"`
	OutletID       uuid.UUID   `json:"outlet_id"`
	MenuMasterID   pgtype.UUID `json:"menu_master_id"`
	Code           string      `json:"code"`
	Name           string      `json:"name"`
	Description    pgtype.Text `json:"description"`
	Color          pgtype.Text `json:"color"`
	SortOrder      int32       `json:"sort_order"`
	TaxID          pgtype.UUID `json:"tax_id"`
	AvailabilityID pgtype.UUID `json:"availability_id"`
	IsActive       bool        `json:"is_active"`
	CreatedAt      time.Time   `json:"created_at"`
}

type MenuItem struct {
	ID                    uuid.UUID      `json:"id"`
	OutletID              uuid.UUID      `json:"outlet_id"`
	CategoryID            uuid.UUID      `json:"category_id"`
	Code                  string         `json:"code"`
	Name                  string         `json:"name"`
	Description           pgtype.Text    `json:"description"`
	BasePrice             pgtype.Numeric `json:"base_price"`
	CardPrice             pgtype.Numeric `json:"card_price"`
	CashPrice             pgtype.Numeric `json:"cash_price"`
	TaxID                 pgtype.UUID    `json:"tax_id"`
	AvailabilityID        pgtype.UUID    `json:"availability_id"`
	InheritModifierGroups bool           `json:"inherit_modifier_groups"`
	ImageUrl              pgtype.Text    `json:"image_url"`
	IsActive              bool           `json:"is_active"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

type ModifierGroup struct {
	ID        uuid.UUID   `json:"id"`
	OutletID  uuid.UUID   `json:"outlet_id"`
	Name      string      `json:"name"`
	MinSelect int32       `json:"min_select"`
	MaxSelect pgtype.Int4 `json:"max_select"`
	SortOrder int32       `json:"sort_order"`
	IsActive  bool        `json:"is_active"`
}

type Modifier struct {
	ID              uuid.UUID      `json:"id"`
	ModifierGroupID uuid.UUID      `json:"modifier_group_id"`
	Name            string         `json:"name"`
	Price           pgtype.Numeric `json:"price"`
	SortOrder       int32          `json:"sort_order"`
	IsActive        bool           `json:"is_active"`
}

type CategoryModifierGroup struct {
	CategoryID      uuid.UUID `json:"category_id"`
	ModifierGroupID uuid.UUID `json:"modifier_group_id"`
}

type ItemModifierGroup struct {
	MenuItemID      uuid.UUID `json:"menu_item_id"`
	ModifierGroupID uuid.UUID `json:"modifier_group_id"`
}

type TimeEvent struct {
	ID              uuid.UUID      `json:"id"`
	OutletID        uuid.UUID      `json:"outlet_id"`
	Code            string         `json:"code"`
	Name            string         `json:"name"`
	IsActive        bool           `json:"is_active"`
	StartDate       pgtype.Date    `json:"start_date"`
	EndDate         pgtype.Date    `json:"end_date"`
	AmountAdd       pgtype.Numeric `json:"amount_add"`
	AmountDiscount  pgtype.Numeric `json:"amount_discount"`
	PercentAdd      pgtype.Numeric `json:"percent_add"`
	PercentDiscount pgtype.Numeric `json:"percent_discount"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type TimeEventWindow struct {
	EventID   uuid.UUID `json:"event_id"`
	DayOfWeek int16     `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

type Availability struct {
	ID        uuid.UUID `json:"id"`
	OutletID  uuid.UUID `json:"outlet_id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type AvailabilityRow struct {
	ID             uuid.UUID   `json:"id"`
	AvailabilityID uuid.UUID   `json:"availability_id"`
	Day            string      `json:"day"`
	StartTime      pgtype.Text `json:"start_time"`
	EndTime        pgtype.Text `json:"end_time"`
	SortOrder      int32       `json:"sort_order"`
}
