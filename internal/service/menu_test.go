package service

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menuhq/pos-admin/internal/cache"
	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/metrics"
	"github.com/menuhq/pos-admin/internal/pricing"
)

// Monday 19 October 2026 in Asia/Jakarta (UTC+7).
var (
	mondayHappyHour = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)  // 16:00 local
	mondayEvening   = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) // 19:00 local
	mondayMorning   = time.Date(2026, 10, 19, 1, 0, 0, 0, time.UTC)  // 08:00 local
)

func entryByCode(t *testing.T, m *Menu, code string) MenuEntry {
	t.Helper()
	for _, e := range m.Items {
		if e.Code == code {
			return e
		}
	}
	t.Fatalf("item %s not in menu", code)
	return MenuEntry{}
}

func TestMenu_HappyHourDiscount(t *testing.T) {
	svc, pool := newTestMenuService(cafeStore())

	menu, err := svc.Menu(context.Background(), cafeOutletID, mondayHappyHour)
	require.NoError(t, err)

	latte := entryByCode(t, menu, "LATTE")
	assert.True(t, latte.Orderable)
	assert.True(t, latte.Price.Equal(dec("200")), "price = %s", latte.Price)
	require.NotNil(t, latte.CardPrice)
	assert.True(t, latte.CardPrice.Equal(dec("210")), "card = %s", latte.CardPrice)
	assert.Nil(t, latte.CashPrice)
	assert.Equal(t, "HAPPY", latte.EventCode)
	assert.Equal(t, "AMOUNT_DISCOUNT", latte.Adjustment)
	assert.True(t, latte.BasePrice.Equal(dec("250")))

	assert.Equal(t, pgx.ReadOnly, pool.opts.AccessMode)
	assert.Equal(t, pgx.RepeatableRead, pool.opts.IsoLevel)
	assert.True(t, pool.tx.committed)
	assert.Equal(t, "Asia/Jakarta", menu.Timezone)
	assert.Equal(t, 16, menu.At.Hour())
}

func TestMenu_OutsideEventWindowUsesBasePrice(t *testing.T) {
	svc, _ := newTestMenuService(cafeStore())

	menu, err := svc.Menu(context.Background(), cafeOutletID, mondayEvening)
	require.NoError(t, err)

	latte := entryByCode(t, menu, "LATTE")
	assert.True(t, latte.Price.Equal(dec("250")))
	assert.Empty(t, latte.EventCode)
	assert.Empty(t, latte.Adjustment)
}

func TestMenu_CategoryAvailabilityGatesItem(t *testing.T) {
	svc, _ := newTestMenuService(cafeStore())

	menu, err := svc.Menu(context.Background(), cafeOutletID, mondayMorning)
	require.NoError(t, err)
	assert.True(t, entryByCode(t, menu, "OMELETTE").Orderable)

	menu, err = svc.Menu(context.Background(), cafeOutletID, mondayEvening)
	require.NoError(t, err)
	omelette := entryByCode(t, menu, "OMELETTE")
	assert.False(t, omelette.Orderable)
	assert.Equal(t, pricing.ReasonOutsideAvailability, omelette.Reason)
	assert.True(t, omelette.Price.Equal(dec("400")))
}

func TestMenu_InactiveAvailabilityDoesNotGate(t *testing.T) {
	store := cafeStore()
	store.availabilities[0].IsActive = false
	svc, _ := newTestMenuService(store)

	menu, err := svc.Menu(context.Background(), cafeOutletID, mondayEvening)
	require.NoError(t, err)
	assert.True(t, entryByCode(t, menu, "OMELETTE").Orderable)
}

func TestMenu_InvalidAvailabilityFailsClosed(t *testing.T) {
	store := cafeStore()
	store.availabilityRows[0].StartTime.String = "11:00" // after its 10:00 end
	svc, _ := newTestMenuService(store)

	menu, err := svc.Menu(context.Background(), cafeOutletID, mondayMorning)
	require.NoError(t, err)
	assert.False(t, entryByCode(t, menu, "OMELETTE").Orderable)
}

func TestMenu_MissingCategoryMakesItemUnorderable(t *testing.T) {
	store := cafeStore()
	store.categories = store.categories[1:] // DRINKS deactivated
	svc, _ := newTestMenuService(store)

	menu, err := svc.Menu(context.Background(), cafeOutletID, mondayHappyHour)
	require.NoError(t, err)
	latte := entryByCode(t, menu, "LATTE")
	assert.False(t, latte.Orderable)
	assert.Equal(t, pricing.ReasonCategoryInactive, latte.Reason)
}

func TestMenu_InheritsModifierGroupsAndTax(t *testing.T) {
	svc, _ := newTestMenuService(cafeStore())

	menu, err := svc.Menu(context.Background(), cafeOutletID, mondayEvening)
	require.NoError(t, err)

	latte := entryByCode(t, menu, "LATTE")
	assert.Equal(t, []uuid.UUID{sizeGroupID, syrupGroupID}, latte.ModifierGroupIDs)
	require.NotNil(t, latte.Tax)
	assert.Equal(t, "PPN", latte.Tax.Name)

	omelette := entryByCode(t, menu, "OMELETTE")
	assert.Empty(t, omelette.ModifierGroupIDs)
	assert.Nil(t, omelette.Tax)
}

func TestMenu_OrdersByCategorySortThenCode(t *testing.T) {
	svc, _ := newTestMenuService(cafeStore())

	menu, err := svc.Menu(context.Background(), cafeOutletID, mondayEvening)
	require.NoError(t, err)
	require.Len(t, menu.Items, 2)
	assert.Equal(t, "OMELETTE", menu.Items[0].Code)
	assert.Equal(t, "LATTE", menu.Items[1].Code)
}

func TestMenu_MultiplySetEventUsesPrecedence(t *testing.T) {
	brokenID := uuid.New()
	store := cafeStore()
	store.events = append(store.events, database.TimeEvent{
		ID: brokenID, OutletID: cafeOutletID, Code: "AAA", Name: "Legacy", IsActive: true,
		AmountAdd: makeNumeric("10"), AmountDiscount: makeNumeric("50"),
	})
	store.windows = append(store.windows, database.TimeEventWindow{EventID: brokenID, DayOfWeek: 1, StartTime: "15:00", EndTime: "18:00"})
	svc, _ := newTestMenuService(store)

	menu, err := svc.Menu(context.Background(), cafeOutletID, mondayHappyHour)
	require.NoError(t, err)
	latte := entryByCode(t, menu, "LATTE")
	assert.Equal(t, "AAA", latte.EventCode)
	assert.Equal(t, "AMOUNT_ADD", latte.Adjustment)
	assert.True(t, latte.Price.Equal(dec("260")), "price = %s", latte.Price)
}

func TestMenu_UnparseableEventWindowIsSkipped(t *testing.T) {
	brokenID := uuid.New()
	store := cafeStore()
	store.events = append(store.events, database.TimeEvent{
		ID: brokenID, OutletID: cafeOutletID, Code: "AAA", Name: "Broken", IsActive: true,
		AmountAdd: makeNumeric("10"),
	})
	store.windows = append(store.windows, database.TimeEventWindow{EventID: brokenID, DayOfWeek: 1, StartTime: "18:00", EndTime: "15:00"})
	svc, _ := newTestMenuService(store)

	menu, err := svc.Menu(context.Background(), cafeOutletID, mondayHappyHour)
	require.NoError(t, err)
	assert.Equal(t, "HAPPY", entryByCode(t, menu, "LATTE").EventCode)
}

func TestSnapshot_OutletNotFound(t *testing.T) {
	store := cafeStore()
	store.outletErr = pgx.ErrNoRows
	svc, _ := newTestMenuService(store)

	_, err := svc.Snapshot(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOutletNotFound)
}

func TestSnapshot_PropagatesQueryErrors(t *testing.T) {
	store := cafeStore()
	store.itemsErr = errors.New("connection reset")
	svc, pool := newTestMenuService(store)

	_, err := svc.Snapshot(context.Background(), cafeOutletID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list items")
	assert.False(t, pool.tx.committed)
}

func TestSnapshot_BeginTxError(t *testing.T) {
	pool := &mockTxBeginner{err: errors.New("pool closed")}
	svc := NewMenuService(pool, func(db database.DBTX) CatalogStore { return cafeStore() }, nil, nil)

	_, err := svc.Snapshot(context.Background(), cafeOutletID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin tx")
}

func TestSnapshot_CachedInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	m := metrics.New()
	pool := &mockTxBeginner{tx: &mockTx{}}
	svc := NewMenuService(pool, func(db database.DBTX) CatalogStore { return cafeStore() },
		cache.NewSnapshotCache(rdb, time.Minute), m)
	ctx := context.Background()

	first, err := svc.Snapshot(ctx, cafeOutletID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.Key(cafeOutletID)))

	second, err := svc.Snapshot(ctx, cafeOutletID)
	require.NoError(t, err)
	assert.Equal(t, 1, pool.calls, "second read should come from cache")
	assert.Equal(t, first.OutletName, second.OutletName)
	require.Len(t, second.Items, len(first.Items))
	assert.True(t, second.Items[0].BasePrice.Equal(first.Items[0].BasePrice))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotCache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotCache.WithLabelValues("hit")))

	// A menu resolved from the cached snapshot still applies the event.
	menu, err := svc.Menu(ctx, cafeOutletID, mondayHappyHour)
	require.NoError(t, err)
	assert.True(t, entryByCode(t, menu, "LATTE").Price.Equal(dec("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventMatches.WithLabelValues("HAPPY")))
}

// invalidatingStore simulates a write committing while a snapshot loads.
type invalidatingStore struct {
	*mockCatalogStore
	snapshots *cache.SnapshotCache
}

func (s invalidatingStore) ListAvailabilityRowsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.AvailabilityRow, error) {
	if err := s.snapshots.Invalidate(ctx, outletID); err != nil {
		return nil, err
	}
	return s.mockCatalogStore.ListAvailabilityRowsByOutlet(ctx, outletID)
}

func TestSnapshot_WriteDuringLoadIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	snapshots := cache.NewSnapshotCache(rdb, time.Hour)

	m := metrics.New()
	pool := &mockTxBeginner{tx: &mockTx{}}
	racing := true
	svc := NewMenuService(pool, func(db database.DBTX) CatalogStore {
		if racing {
			return invalidatingStore{mockCatalogStore: cafeStore(), snapshots: snapshots}
		}
		return cafeStore()
	}, snapshots, m)
	ctx := context.Background()

	_, err := svc.Snapshot(ctx, cafeOutletID)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.Key(cafeOutletID)), "snapshot read before the write must not be cached")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotCache.WithLabelValues("stale")))

	racing = false
	_, err = svc.Snapshot(ctx, cafeOutletID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.Key(cafeOutletID)))
	assert.Equal(t, 2, pool.calls)
}

func TestResolveItem(t *testing.T) {
	svc, _ := newTestMenuService(cafeStore())

	entry, err := svc.ResolveItem(context.Background(), cafeOutletID, latteID, mondayHappyHour)
	require.NoError(t, err)
	assert.True(t, entry.PriceFor(pricing.TenderCard).Equal(dec("210")))
	assert.True(t, entry.PriceFor(pricing.TenderCash).Equal(dec("200")))

	_, err = svc.ResolveItem(context.Background(), cafeOutletID, uuid.New(), mondayHappyHour)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestResolveItem_DeactivatedItem(t *testing.T) {
	store := cafeStore()
	store.items[0].IsActive = false // LATTE
	svc, _ := newTestMenuService(store)

	entry, err := svc.ResolveItem(context.Background(), cafeOutletID, latteID, mondayHappyHour)
	require.NoError(t, err)
	assert.False(t, entry.Orderable)
	assert.Equal(t, pricing.ReasonItemInactive, entry.Reason)
	assert.True(t, entry.Price.Equal(dec("250")), "inactive item keeps its base price")

	menu, err := svc.Menu(context.Background(), cafeOutletID, mondayHappyHour)
	require.NoError(t, err)
	require.Len(t, menu.Items, 1)
	assert.Equal(t, "OMELETTE", menu.Items[0].Code)
}

func TestMenu_PriceList(t *testing.T) {
	svc, _ := newTestMenuService(cafeStore())

	menu, err := svc.Menu(context.Background(), cafeOutletID, mondayHappyHour)
	require.NoError(t, err)

	list := menu.PriceList()
	assert.Equal(t, "Kopi Sudut", list.OutletName)
	require.Len(t, list.Rows, 2)
	row := list.Rows[1]
	assert.Equal(t, "LATTE", row.Code)
	assert.Equal(t, "Drinks", row.Category)
	assert.True(t, row.EffectivePrice.Equal(dec("200")))
	assert.Equal(t, "HAPPY", row.EventCode)
}
