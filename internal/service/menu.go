package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/export"
	"github.com/menuhq/pos-admin/internal/metrics"
)

var (
	ErrOutletNotFound = errors.New("outlet not found")
	ErrItemNotFound   = errors.New("menu item not found in outlet")
)

// ReadTxBeginner starts a transaction with explicit options.
// Satisfied by *pgxpool.Pool.
type ReadTxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// CatalogStore defines the reads that make up a Snapshot.
// Satisfied by *database.Queries (and its WithTx variant).
type CatalogStore interface {
	GetOutlet(ctx context.Context, id uuid.UUID) (database.Outlet, error)
	ListCategoriesByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.Category, error)
	ListCatalogItemsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.MenuItem, error)
	ListCategoryModifierGroupsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.CategoryModifierGroup, error)
	ListItemModifierGroupsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.ItemModifierGroup, error)
	ListModifierGroupsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.ModifierGroup, error)
	ListModifiersByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.Modifier, error)
	ListTaxesByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.Tax, error)
	ListTimeEventsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.TimeEvent, error)
	ListTimeEventWindowsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.TimeEventWindow, error)
	ListAvailabilitiesByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.Availability, error)
	ListAvailabilityRowsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.AvailabilityRow, error)
}

// NewCatalogStore creates a CatalogStore from a DBTX (pool or tx).
type NewCatalogStore func(db database.DBTX) CatalogStore

// SnapshotCache is satisfied by *cache.SnapshotCache. Set must refuse the
// write when the generation moved since it was read.
type SnapshotCache interface {
	Get(ctx context.Context, outletID uuid.UUID, out any) (bool, error)
	Generation(ctx context.Context, outletID uuid.UUID) (int64, error)
	Set(ctx context.Context, outletID uuid.UUID, gen int64, v any) (bool, error)
}

// Menu is an outlet's effective menu at one instant.
type Menu struct {
	OutletID   uuid.UUID
	OutletName string
	Timezone   string
	At         time.Time
	Items      []MenuEntry
}

// MenuService loads catalog snapshots and runs the rule resolver over them.
type MenuService struct {
	pool     ReadTxBeginner
	newStore NewCatalogStore
	cache    SnapshotCache
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewMenuService creates a MenuService. cache and m may be nil.
func NewMenuService(pool ReadTxBeginner, newStore NewCatalogStore, cache SnapshotCache, m *metrics.Metrics) *MenuService {
	return &MenuService{pool: pool, newStore: newStore, cache: cache, metrics: m, now: time.Now}
}

// Snapshot returns the outlet's catalog, from cache when possible.
func (s *MenuService) Snapshot(ctx context.Context, outletID uuid.UUID) (*Snapshot, error) {
	cacheable := false
	var gen int64
	if s.cache != nil {
		var snap Snapshot
		hit, err := s.cache.Get(ctx, outletID, &snap)
		switch {
		case err != nil:
			s.countCache("error")
			log.Warn().Err(err).Str("outlet_id", outletID.String()).Msg("snapshot cache read failed")
		case hit:
			s.countCache("hit")
			return &snap, nil
		default:
			s.countCache("miss")
			if gen, err = s.cache.Generation(ctx, outletID); err != nil {
				log.Warn().Err(err).Str("outlet_id", outletID.String()).Msg("snapshot generation read failed")
			} else {
				cacheable = true
			}
		}
	}

	snap, err := s.loadSnapshot(ctx, outletID)
	if err != nil {
		return nil, err
	}

	if cacheable {
		stored, err := s.cache.Set(ctx, outletID, gen, snap)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("outlet_id", outletID.String()).Msg("snapshot cache write failed")
		case !stored:
			s.countCache("stale")
			log.Debug().Str("outlet_id", outletID.String()).Msg("catalog changed during load, snapshot not cached")
		}
	}
	return snap, nil
}

func (s *MenuService) countCache(result string) {
	if s.metrics != nil {
		s.metrics.SnapshotCache.WithLabelValues(result).Inc()
	}
}

// loadSnapshot reads every catalog table in one read-only repeatable-read
// transaction so the snapshot is consistent.
func (s *MenuService) loadSnapshot(ctx context.Context, outletID uuid.UUID) (*Snapshot, error) {
	start := s.now()

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	var rows catalogRows
	rows.outlet, err = store.GetOutlet(ctx, outletID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOutletNotFound
		}
		return nil, fmt.Errorf("get outlet: %w", err)
	}
	if rows.categories, err = store.ListCategoriesByOutlet(ctx, outletID); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if rows.items, err = store.ListCatalogItemsByOutlet(ctx, outletID); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if rows.categoryGroups, err = store.ListCategoryModifierGroupsByOutlet(ctx, outletID); err != nil {
		return nil, fmt.Errorf("list category modifier groups: %w", err)
	}
	if rows.itemGroups, err = store.ListItemModifierGroupsByOutlet(ctx, outletID); err != nil {
		return nil, fmt.Errorf("list item modifier groups: %w", err)
	}
	if rows.modifierGroups, err = store.ListModifierGroupsByOutlet(ctx, outletID); err != nil {
		return nil, fmt.Errorf("list modifier groups: %w", err)
	}
	if rows.modifiers, err = store.ListModifiersByOutlet(ctx, outletID); err != nil {
		return nil, fmt.Errorf("list modifiers: %w", err)
	}
	if rows.taxes, err = store.ListTaxesByOutlet(ctx, outletID); err != nil {
		return nil, fmt.Errorf("list taxes: %w", err)
	}
	if rows.events, err = store.ListTimeEventsByOutlet(ctx, outletID); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if rows.windows, err = store.ListTimeEventWindowsByOutlet(ctx, outletID); err != nil {
		return nil, fmt.Errorf("list event windows: %w", err)
	}
	if rows.availabilities, err = store.ListAvailabilitiesByOutlet(ctx, outletID); err != nil {
		return nil, fmt.Errorf("list availabilities: %w", err)
	}
	if rows.availabilityRows, err = store.ListAvailabilityRowsByOutlet(ctx, outletID); err != nil {
		return nil, fmt.Errorf("list availability rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	if s.metrics != nil {
		s.metrics.SnapshotLoadDuration.Observe(s.now().Sub(start).Seconds())
	}
	return buildSnapshot(rows, s.now().UTC()), nil
}

// Menu resolves every active item of the outlet at the instant at. A zero at
// means now. Deactivated items are left out.
func (s *MenuService) Menu(ctx context.Context, outletID uuid.UUID, at time.Time) (*Menu, error) {
	snap, err := s.Snapshot(ctx, outletID)
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = s.now()
	}

	c := compileCatalog(snap)
	menu := &Menu{
		OutletID:   snap.OutletID,
		OutletName: snap.OutletName,
		Timezone:   c.loc.String(),
		At:         at.In(c.loc),
		Items:      make([]MenuEntry, 0, len(snap.Items)),
	}
	for i := range snap.Items {
		if snap.Items[i].Inactive {
			continue
		}
		entry := c.resolve(&snap.Items[i], at)
		s.countResolution(entry)
		menu.Items = append(menu.Items, entry)
	}

	sortOrder := make(map[uuid.UUID]int32, len(snap.Categories))
	for _, cat := range snap.Categories {
		sortOrder[cat.ID] = cat.SortOrder
	}
	sort.SliceStable(menu.Items, func(i, j int) bool {
		a, b := menu.Items[i], menu.Items[j]
		if sortOrder[a.CategoryID] != sortOrder[b.CategoryID] {
			return sortOrder[a.CategoryID] < sortOrder[b.CategoryID]
		}
		if a.CategoryCode != b.CategoryCode {
			return a.CategoryCode < b.CategoryCode
		}
		return a.Code < b.Code
	})
	return menu, nil
}

// ResolveItem resolves a single item at the instant at. A deactivated item
// resolves as not orderable.
func (s *MenuService) ResolveItem(ctx context.Context, outletID, itemID uuid.UUID, at time.Time) (*MenuEntry, error) {
	snap, err := s.Snapshot(ctx, outletID)
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = s.now()
	}

	c := compileCatalog(snap)
	it, ok := c.items[itemID]
	if !ok {
		return nil, ErrItemNotFound
	}
	entry := c.resolve(it, at)
	s.countResolution(entry)
	return &entry, nil
}

func (s *MenuService) countResolution(e MenuEntry) {
	if s.metrics == nil {
		return
	}
	outcome := "orderable"
	if !e.Orderable {
		outcome = "unavailable"
	}
	s.metrics.Resolutions.WithLabelValues(outcome).Inc()
	if e.EventCode != "" {
		s.metrics.EventMatches.WithLabelValues(e.EventCode).Inc()
	}
}

// PriceList flattens the menu for export.
func (m *Menu) PriceList() export.PriceList {
	list := export.PriceList{OutletName: m.OutletName, At: m.At, Rows: make([]export.PriceRow, 0, len(m.Items))}
	for _, e := range m.Items {
		list.Rows = append(list.Rows, export.PriceRow{
			Code:           e.Code,
			Name:           e.Name,
			Category:       e.CategoryName,
			BasePrice:      e.BasePrice,
			EffectivePrice: e.Price,
			CardPrice:      e.CardPrice,
			CashPrice:      e.CashPrice,
			Orderable:      e.Orderable,
			Reason:         e.Reason,
			EventCode:      e.EventCode,
		})
	}
	return list
}
