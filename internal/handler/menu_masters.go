package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/enum"
)

// MenuMasterStore defines the database methods needed by menu master
// handlers. Satisfied by *database.Queries.
type MenuMasterStore interface {
	ListMenuMastersByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.MenuMaster, error)
	CreateMenuMaster(ctx context.Context, arg database.CreateMenuMasterParams) (database.MenuMaster, error)
	UpdateMenuMaster(ctx context.Context, arg database.UpdateMenuMasterParams) (database.MenuMaster, error)
	SoftDeleteMenuMaster(ctx context.Context, arg database.SoftDeleteMenuMasterParams) (uuid.UUID, error)
}

// MenuMasterHandler manages the top-level menu sections categories hang off.
type MenuMasterHandler struct {
	store    MenuMasterStore
	notifier Notifier
}

func NewMenuMasterHandler(store MenuMasterStore, notifier Notifier) *MenuMasterHandler {
	return &MenuMasterHandler{store: store, notifier: notifier}
}

// RegisterRoutes mounts on /outlets/{oid}/menu-masters.
func (h *MenuMasterHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type menuMasterRequest struct {
	Name       string  `json:"name"`
	PrepZoneID *string `json:"prep_zone_id"`
	SortOrder  int32   `json:"sort_order"`
}

type menuMasterResponse struct {
	ID         uuid.UUID  `json:"id"`
	OutletID   uuid.UUID  `json:"outlet_id"`
	Name       string     `json:"name"`
	PrepZoneID *uuid.UUID `json:"prep_zone_id"`
	SortOrder  int32      `json:"sort_order"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toMenuMasterResponse(m database.MenuMaster) menuMasterResponse {
	return menuMasterResponse{
		ID:         m.ID,
		OutletID:   m.OutletID,
		Name:       m.Name,
		PrepZoneID: uuidPtr(m.PrepZoneID),
		SortOrder:  m.SortOrder,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
	}
}

func (h *MenuMasterHandler) List(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}

	masters, err := h.store.ListMenuMastersByOutlet(r.Context(), outletID)
	if err != nil {
		serverError(w, r, "list menu masters", err)
		return
	}
	resp := make([]menuMasterResponse, len(masters))
	for i, m := range masters {
		resp[i] = toMenuMasterResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *MenuMasterHandler) Create(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	var req menuMasterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	zoneID, err := parseOptionalUUID(req.PrepZoneID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prep_zone_id")
		return
	}

	m, err := h.store.CreateMenuMaster(r.Context(), database.CreateMenuMasterParams{
		OutletID:   outletID,
		Name:       strings.TrimSpace(req.Name),
		PrepZoneID: zoneID,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			writeError(w, http.StatusBadRequest, "prep zone not found")
			return
		}
		serverError(w, r, "create menu master", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityMenuMaster, enum.ActionCreated, m.ID)
	writeJSON(w, http.StatusCreated, toMenuMasterResponse(m))
}

func (h *MenuMasterHandler) Update(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu master ID")
		return
	}
	var req menuMasterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	zoneID, err := parseOptionalUUID(req.PrepZoneID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prep_zone_id")
		return
	}

	m, err := h.store.UpdateMenuMaster(r.Context(), database.UpdateMenuMasterParams{
		Name:       strings.TrimSpace(req.Name),
		PrepZoneID: zoneID,
		SortOrder:  req.SortOrder,
		ID:         id,
		OutletID:   outletID,
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			writeError(w, http.StatusNotFound, "menu master not found")
		case isForeignKeyViolation(err):
			writeError(w, http.StatusBadRequest, "prep zone not found")
		default:
			serverError(w, r, "update menu master", err)
		}
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityMenuMaster, enum.ActionUpdated, m.ID)
	writeJSON(w, http.StatusOK, toMenuMasterResponse(m))
}

func (h *MenuMasterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu master ID")
		return
	}

	if _, err := h.store.SoftDeleteMenuMaster(r.Context(), database.SoftDeleteMenuMasterParams{ID: id, OutletID: outletID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "menu master not found")
			return
		}
		serverError(w, r, "delete menu master", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityMenuMaster, enum.ActionDeleted, id)
	w.WriteHeader(http.StatusNoContent)
}
