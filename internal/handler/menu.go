package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/menuhq/pos-admin/internal/export"
	"github.com/menuhq/pos-admin/internal/service"
)

// MenuReader resolves an outlet's effective menu.
// Satisfied by *service.MenuService.
type MenuReader interface {
	Menu(ctx context.Context, outletID uuid.UUID, at time.Time) (*service.Menu, error)
}

// SnapshotUploader stores a price list snapshot and returns its object key.
// Satisfied by *export.SnapshotUploader.
type SnapshotUploader interface {
	Upload(ctx context.Context, outletID uuid.UUID, list export.PriceList) (string, error)
}

// MenuHandler serves the resolved menu and its exports.
type MenuHandler struct {
	menus    MenuReader
	uploader SnapshotUploader
}

// NewMenuHandler creates a MenuHandler. uploader may be nil when no bucket
// is configured; snapshot requests then answer 503.
func NewMenuHandler(menus MenuReader, uploader SnapshotUploader) *MenuHandler {
	return &MenuHandler{menus: menus, uploader: uploader}
}

// RegisterRoutes mounts on /outlets/{oid}/menu.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Get("/export.xlsx", h.ExportXLSX)
	r.Post("/snapshots", h.Snapshot)
}

type taxResponseLite struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Rate string    `json:"rate"`
}

type menuEntryResponse struct {
	ItemID           uuid.UUID        `json:"item_id"`
	Code             string           `json:"code"`
	Name             string           `json:"name"`
	CategoryID       uuid.UUID        `json:"category_id"`
	CategoryCode     string           `json:"category_code"`
	CategoryName     string           `json:"category_name"`
	Orderable        bool             `json:"orderable"`
	Reason           string           `json:"reason,omitempty"`
	BasePrice        string           `json:"base_price"`
	Price            string           `json:"price"`
	CardPrice        *string          `json:"card_price"`
	CashPrice        *string          `json:"cash_price"`
	EventCode        string           `json:"event_code,omitempty"`
	Adjustment       string           `json:"adjustment,omitempty"`
	ModifierGroupIDs []uuid.UUID      `json:"modifier_group_ids"`
	Tax              *taxResponseLite `json:"tax"`
}

func toMenuEntryResponse(e service.MenuEntry) menuEntryResponse {
	resp := menuEntryResponse{
		ItemID:           e.ItemID,
		Code:             e.Code,
		Name:             e.Name,
		CategoryID:       e.CategoryID,
		CategoryCode:     e.CategoryCode,
		CategoryName:     e.CategoryName,
		Orderable:        e.Orderable,
		Reason:           e.Reason,
		BasePrice:        e.BasePrice.StringFixed(2),
		Price:            e.Price.StringFixed(2),
		CardPrice:        decimalPtrString(e.CardPrice),
		CashPrice:        decimalPtrString(e.CashPrice),
		EventCode:        e.EventCode,
		Adjustment:       e.Adjustment,
		ModifierGroupIDs: e.ModifierGroupIDs,
	}
	if resp.ModifierGroupIDs == nil {
		resp.ModifierGroupIDs = []uuid.UUID{}
	}
	if e.Tax != nil {
		resp.Tax = &taxResponseLite{ID: e.Tax.ID, Name: e.Tax.Name, Rate: e.Tax.Rate.String()}
	}
	return resp
}

type menuResponse struct {
	OutletID   uuid.UUID           `json:"outlet_id"`
	OutletName string              `json:"outlet_name"`
	Timezone   string              `json:"timezone"`
	At         time.Time           `json:"at"`
	Items      []menuEntryResponse `json:"items"`
}

// parseAt reads ?at= as RFC3339. Absent means the zero time, which the
// services treat as now.
func parseAt(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// load resolves the menu or writes the error response.
func (h *MenuHandler) load(w http.ResponseWriter, r *http.Request) (*service.Menu, bool) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return nil, false
	}
	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "at must be an RFC3339 timestamp")
		return nil, false
	}

	menu, err := h.menus.Menu(r.Context(), outletID, at)
	if err != nil {
		if errors.Is(err, service.ErrOutletNotFound) {
			writeError(w, http.StatusNotFound, "outlet not found")
			return nil, false
		}
		serverError(w, r, "resolve menu", err)
		return nil, false
	}
	return menu, true
}

// Get returns every active item resolved at ?at=.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	menu, ok := h.load(w, r)
	if !ok {
		return
	}

	resp := menuResponse{
		OutletID:   menu.OutletID,
		OutletName: menu.OutletName,
		Timezone:   menu.Timezone,
		At:         menu.At,
		Items:      make([]menuEntryResponse, len(menu.Items)),
	}
	for i, e := range menu.Items {
		resp.Items[i] = toMenuEntryResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ExportXLSX downloads the resolved price list as a spreadsheet.
func (h *MenuHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	menu, ok := h.load(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, menu.PriceList()); err != nil {
		serverError(w, r, "write xlsx", err)
		return
	}

	filename := fmt.Sprintf("menu-%s.xlsx", menu.At.Format("20060102-1504"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Warn().Err(err).Msg("xlsx export write interrupted")
	}
}

type snapshotResponse struct {
	Key  string    `json:"key"`
	At   time.Time `json:"at"`
	Rows int       `json:"rows"`
}

// Snapshot uploads the resolved price list as parquet.
func (h *MenuHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshot storage is not configured")
		return
	}
	menu, ok := h.load(w, r)
	if !ok {
		return
	}

	list := menu.PriceList()
	key, err := h.uploader.Upload(r.Context(), menu.OutletID, list)
	if err != nil {
		serverError(w, r, "upload snapshot", err)
		return
	}

	log.Info().Str("outlet_id", menu.OutletID.String()).Str("key", key).Int("rows", len(list.Rows)).Msg("menu snapshot uploaded")
	writeJSON(w, http.StatusCreated, snapshotResponse{Key: key, At: menu.At, Rows: len(list.Rows)})
}
