package enum

// ── Group A: CHECK constrained in DB ──

const (
	UserRoleOwner   = "OWNER"
	UserRoleManager = "MANAGER"
	UserRoleStaff   = "STAFF"
)

const (
	DayAll       = "ALL_DAYS"
	DaySunday    = "SUNDAY"
	DayMonday    = "MONDAY"
	DayTuesday   = "TUESDAY"
	DayWednesday = "WEDNESDAY"
	DayThursday  = "THURSDAY"
	DayFriday    = "FRIDAY"
	DaySaturday  = "SATURDAY"
)

// ── Group B: Wire labels (no DB constraint) ──

const (
	TenderCard = "CARD"
	TenderCash = "CASH"
)

const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionAttached = "attached"
	ActionDetached = "detached"
)

const (
	EntityTax           = "tax"
	EntityPrepZone      = "prep_zone"
	EntityPrinter       = "printer"
	EntityMenuMaster    = "menu_master"
	EntityCategory      = "category"
	EntityItem          = "item"
	EntityModifierGroup = "modifier_group"
	EntityModifier      = "modifier"
	EntityEvent         = "event"
	EntityAvailability  = "availability"
)

// WriteRoles may change menu configuration; STAFF is read-only.
var WriteRoles = []string{UserRoleOwner, UserRoleManager}
