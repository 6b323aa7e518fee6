package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/menuhq/pos-admin/internal/database"
)

// --- Mock implementations ---

// mockTx implements pgx.Tx with only the methods we need.
// The unused methods panic so we catch accidental calls.
type mockTx struct {
	commitErr error
	committed bool
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { panic("not implemented") }
func (m *mockTx) Commit(ctx context.Context) error {
	m.committed = m.commitErr == nil
	return m.commitErr
}
func (m *mockTx) Rollback(ctx context.Context) error { return nil }
func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}
func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}
func (m *mockTx) LargeObjects() pgx.LargeObjects { panic("not implemented") }
func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}
func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not implemented")
}
func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not implemented")
}
func (m *mockTx) Conn() *pgx.Conn { panic("not implemented") }

// mockTxBeginner implements ReadTxBeginner and records the options used.
type mockTxBeginner struct {
	tx    *mockTx
	err   error
	opts  pgx.TxOptions
	calls int
}

func (m *mockTxBeginner) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	m.calls++
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.tx, nil
}

// mockCatalogStore implements CatalogStore over in-memory rows.
type mockCatalogStore struct {
	outlet           database.Outlet
	outletErr        error
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
	itemsErr         error
}

func (m *mockCatalogStore) GetOutlet(ctx context.Context, id uuid.UUID) (database.Outlet, error) {
	return m.outlet, m.outletErr
}
func (m *mockCatalogStore) ListCategoriesByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.Category, error) {
	return m.categories, nil
}
func (m *mockCatalogStore) ListCatalogItemsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.MenuItem, error) {
	return m.items, m.itemsErr
}
func (m *mockCatalogStore) ListCategoryModifierGroupsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.CategoryModifierGroup, error) {
	return m.categoryGroups, nil
}
func (m *mockCatalogStore) ListItemModifierGroupsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.ItemModifierGroup, error) {
	return m.itemGroups, nil
}
func (m *mockCatalogStore) ListModifierGroupsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.ModifierGroup, error) {
	return m.modifierGroups, nil
}
func (m *mockCatalogStore) ListModifiersByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.Modifier, error) {
	return m.modifiers, nil
}
func (m *mockCatalogStore) ListTaxesByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.Tax, error) {
	return m.taxes, nil
}
func (m *mockCatalogStore) ListTimeEventsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.TimeEvent, error) {
	return m.events, nil
}
func (m *mockCatalogStore) ListTimeEventWindowsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.TimeEventWindow, error) {
	return m.windows, nil
}
func (m *mockCatalogStore) ListAvailabilitiesByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.Availability, error) {
	return m.availabilities, nil
}
func (m *mockCatalogStore) ListAvailabilityRowsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.AvailabilityRow, error) {
	return m.availabilityRows, nil
}

// --- Test helpers ---

func makeNumeric(val string) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(val)
	return n
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fixture ids shared by the catalog built in cafeStore.
var (
	cafeOutletID   = uuid.MustParse("0b0e1a52-0000-4000-8000-000000000001")
	drinksCatID    = uuid.MustParse("0b0e1a52-0000-4000-8000-000000000010")
	breakfastCatID = uuid.MustParse("0b0e1a52-0000-4000-8000-000000000011")
	latteID        = uuid.MustParse("0b0e1a52-0000-4000-8000-000000000100")
	omeletteID     = uuid.MustParse("0b0e1a52-0000-4000-8000-000000000101")
	sizeGroupID    = uuid.MustParse("0b0e1a52-0000-4000-8000-000000001000")
	syrupGroupID   = uuid.MustParse("0b0e1a52-0000-4000-8000-000000001001")
	largeModID     = uuid.MustParse("0b0e1a52-0000-4000-8000-000000010000")
	regularModID   = uuid.MustParse("0b0e1a52-0000-4000-8000-000000010001")
	vanillaModID   = uuid.MustParse("0b0e1a52-0000-4000-8000-000000010002")
	caramelModID   = uuid.MustParse("0b0e1a52-0000-4000-8000-000000010003")
	ppnTaxID       = uuid.MustParse("0b0e1a52-0000-4000-8000-000000100000")
	happyHourID    = uuid.MustParse("0b0e1a52-0000-4000-8000-000001000000")
	morningID      = uuid.MustParse("0b0e1a52-0000-4000-8000-000010000000")
)

// cafeStore is an outlet in Asia/Jakarta with:
//   - LATTE (250, card 260) in DRINKS, which carries the 10% PPN tax and
//     SIZE (pick exactly one) plus SYRUP (at most one) modifier groups.
//   - OMELETTE (400) in BREAKFAST, gated by a weekday 06:00-10:00 availability.
//   - HAPPY, a weekday 15:00-18:00 event taking 50 off.
func cafeStore() *mockCatalogStore {
	one := pgtype.Int4{Int32: 1, Valid: true}

	var windows []database.TimeEventWindow
	for d := int16(1); d <= 5; d++ {
		windows = append(windows, database.TimeEventWindow{EventID: happyHourID, DayOfWeek: d, StartTime: "15:00", EndTime: "18:00"})
	}
	var rows []database.AvailabilityRow
	for _, day := range []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"} {
		rows = append(rows, database.AvailabilityRow{
			ID:             uuid.New(),
			AvailabilityID: morningID,
			Day:            day,
			StartTime:      pgtype.Text{String: "06:00", Valid: true},
			EndTime:        pgtype.Text{String: "10:00", Valid: true},
		})
	}

	return &mockCatalogStore{
		outlet: database.Outlet{ID: cafeOutletID, Name: "Kopi Sudut", Timezone: "Asia/Jakarta", IsActive: true},
		categories: []database.Category{
			{ID: drinksCatID, OutletID: cafeOutletID, Code: "DRINKS", Name: "Drinks", SortOrder: 1, TaxID: pgUUID(ppnTaxID), IsActive: true},
			{ID: breakfastCatID, OutletID: cafeOutletID, Code: "BREAKFAST", Name: "Breakfast", SortOrder: 0, AvailabilityID: pgUUID(morningID), IsActive: true},
		},
		items: []database.MenuItem{
			{ID: latteID, OutletID: cafeOutletID, CategoryID: drinksCatID, Code: "LATTE", Name: "Latte", BasePrice: makeNumeric("250"), CardPrice: makeNumeric("260"), InheritModifierGroups: true, IsActive: true},
			{ID: omeletteID, OutletID: cafeOutletID, CategoryID: breakfastCatID, Code: "OMELETTE", Name: "Omelette", BasePrice: makeNumeric("400"), InheritModifierGroups: true, IsActive: true},
		},
		categoryGroups: []database.CategoryModifierGroup{
			{CategoryID: drinksCatID, ModifierGroupID: sizeGroupID},
			{CategoryID: drinksCatID, ModifierGroupID: syrupGroupID},
		},
		modifierGroups: []database.ModifierGroup{
			{ID: sizeGroupID, OutletID: cafeOutletID, Name: "Size", MinSelect: 1, MaxSelect: one, IsActive: true},
			{ID: syrupGroupID, OutletID: cafeOutletID, Name: "Syrup", MinSelect: 0, MaxSelect: one, IsActive: true},
		},
		modifiers: []database.Modifier{
			{ID: regularModID, ModifierGroupID: sizeGroupID, Name: "Regular", Price: makeNumeric("0"), IsActive: true},
			{ID: largeModID, ModifierGroupID: sizeGroupID, Name: "Large", Price: makeNumeric("30"), IsActive: true},
			{ID: vanillaModID, ModifierGroupID: syrupGroupID, Name: "Vanilla", Price: makeNumeric("15"), IsActive: true},
			{ID: caramelModID, ModifierGroupID: syrupGroupID, Name: "Caramel", Price: makeNumeric("15"), IsActive: true},
		},
		taxes: []database.Tax{
			{ID: ppnTaxID, OutletID: cafeOutletID, Name: "PPN", Rate: makeNumeric("10"), IsActive: true},
		},
		events: []database.TimeEvent{
			{ID: happyHourID, OutletID: cafeOutletID, Code: "HAPPY", Name: "Happy Hour", IsActive: true, AmountDiscount: makeNumeric("50")},
		},
		windows:          windows,
		availabilities:   []database.Availability{{ID: morningID, OutletID: cafeOutletID, Name: "Weekday mornings", IsActive: true}},
		availabilityRows: rows,
	}
}

func newTestMenuService(store *mockCatalogStore) (*MenuService, *mockTxBeginner) {
	pool := &mockTxBeginner{tx: &mockTx{}}
	newStore := func(db database.DBTX) CatalogStore { return store }
	return NewMenuService(pool, newStore, nil, nil), pool
}
