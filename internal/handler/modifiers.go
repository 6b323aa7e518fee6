package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/enum"
)

// ModifierStore defines the database methods needed by modifier handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ModifierStore interface {
	// Modifier groups
	ListModifierGroupsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.ModifierGroup, error)
	GetModifierGroup(ctx context.Context, arg database.GetModifierGroupParams) (database.ModifierGroup, error)
	CreateModifierGroup(ctx context.Context, arg database.CreateModifierGroupParams) (database.ModifierGroup, error)
	UpdateModifierGroup(ctx context.Context, arg database.UpdateModifierGroupParams) (database.ModifierGroup, error)
	SoftDeleteModifierGroup(ctx context.Context, arg database.SoftDeleteModifierGroupParams) (uuid.UUID, error)

	// Modifiers
	ListModifiersByGroup(ctx context.Context, modifierGroupID uuid.UUID) ([]database.Modifier, error)
	CreateModifier(ctx context.Context, arg database.CreateModifierParams) (database.Modifier, error)
	UpdateModifier(ctx context.Context, arg database.UpdateModifierParams) (database.Modifier, error)
	SoftDeleteModifier(ctx context.Context, arg database.SoftDeleteModifierParams) (uuid.UUID, error)
}

// ModifierHandler handles modifier group and modifier CRUD endpoints.
type ModifierHandler struct {
	store    ModifierStore
	notifier Notifier
}

// NewModifierHandler creates a new ModifierHandler.
func NewModifierHandler(store ModifierStore, notifier Notifier) *ModifierHandler {
	return &ModifierHandler{store: store, notifier: notifier}
}

// RegisterRoutes registers modifier group and modifier endpoints on the given Chi router.
// Expected to be mounted at /outlets/{oid}/modifier-groups
func (h *ModifierHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ListGroups)
	r.Post("/", h.CreateGroup)
	r.Put("/{mgid}", h.UpdateGroup)
	r.Delete("/{mgid}", h.DeleteGroup)

	r.Get("/{mgid}/modifiers", h.ListModifiers)
	r.Post("/{mgid}/modifiers", h.CreateModifier)
	r.Put("/{mgid}/modifiers/{mid}", h.UpdateModifier)
	r.Delete("/{mgid}/modifiers/{mid}", h.DeleteModifier)
}

// --- Request / Response types ---

type modifierGroupRequest struct {
	Name      string `json:"name"`
	MinSelect *int32 `json:"min_select"`
	MaxSelect *int32 `json:"max_select"`
	SortOrder int32  `json:"sort_order"`
}

type modifierGroupResponse struct {
	ID        uuid.UUID `json:"id"`
	OutletID  uuid.UUID `json:"outlet_id"`
	Name      string    `json:"name"`
	MinSelect int32     `json:"min_select"`
	MaxSelect *int32    `json:"max_select"`
	IsActive  bool      `json:"is_active"`
	SortOrder int32     `json:"sort_order"`
}

func toModifierGroupResponse(mg database.ModifierGroup) modifierGroupResponse {
	resp := modifierGroupResponse{
		ID:        mg.ID,
		OutletID:  mg.OutletID,
		Name:      mg.Name,
		MinSelect: mg.MinSelect,
		IsActive:  mg.IsActive,
		SortOrder: mg.SortOrder,
	}

	if mg.MaxSelect.Valid {
		val := mg.MaxSelect.Int32
		resp.MaxSelect = &val
	}

	return resp
}

// selection validates the bounds. A nil max_select means unlimited.
func (req modifierGroupRequest) selection() (int32, pgtype.Int4, string) {
	minSelect := int32(0)
	if req.MinSelect != nil {
		minSelect = *req.MinSelect
	}
	if minSelect < 0 {
		return 0, pgtype.Int4{}, "min_select must be >= 0"
	}

	var maxSelect pgtype.Int4
	if req.MaxSelect != nil {
		if *req.MaxSelect < 1 {
			return 0, pgtype.Int4{}, "max_select must be >= 1"
		}
		if *req.MaxSelect < minSelect {
			return 0, pgtype.Int4{}, "max_select must be >= min_select"
		}
		maxSelect = pgtype.Int4{Int32: *req.MaxSelect, Valid: true}
	}
	return minSelect, maxSelect, ""
}

type modifierRequest struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	SortOrder int32  `json:"sort_order"`
}

type modifierResponse struct {
	ID              uuid.UUID `json:"id"`
	ModifierGroupID uuid.UUID `json:"modifier_group_id"`
	Name            string    `json:"name"`
	Price           string    `json:"price"`
	IsActive        bool      `json:"is_active"`
	SortOrder       int32     `json:"sort_order"`
}

func toModifierResponse(m database.Modifier) modifierResponse {
	return modifierResponse{
		ID:              m.ID,
		ModifierGroupID: m.ModifierGroupID,
		Name:            m.Name,
		Price:           numericToString(m.Price),
		IsActive:        m.IsActive,
		SortOrder:       m.SortOrder,
	}
}

// parse defaults an empty price to zero.
func (req modifierRequest) parse() (string, pgtype.Numeric, string) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", pgtype.Numeric{}, "name is required"
	}
	priceStr := req.Price
	if priceStr == "" {
		priceStr = "0"
	}
	price, err := parsePrice(priceStr)
	if err != nil {
		if errors.Is(err, errNegativePrice) {
			return "", pgtype.Numeric{}, "price must be >= 0"
		}
		return "", pgtype.Numeric{}, "invalid price"
	}
	return name, price, ""
}

// --- Helpers ---

// verifyModifierGroupOwnership checks that the modifier group belongs to the
// outlet. Returns outlet ID and modifier group ID, or writes an error response.
func (h *ModifierHandler) verifyModifierGroupOwnership(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return uuid.Nil, uuid.Nil, false
	}

	mgID, err := urlUUID(r, "mgid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid modifier group ID")
		return uuid.Nil, uuid.Nil, false
	}

	_, err = h.store.GetModifierGroup(r.Context(), database.GetModifierGroupParams{
		ID:       mgID,
		OutletID: outletID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "modifier group not found")
			return uuid.Nil, uuid.Nil, false
		}
		serverError(w, r, "verify modifier group ownership", err)
		return uuid.Nil, uuid.Nil, false
	}

	return outletID, mgID, true
}

// --- Modifier Group Handlers ---

// ListGroups returns all active modifier groups of the outlet.
func (h *ModifierHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}

	groups, err := h.store.ListModifierGroupsByOutlet(r.Context(), outletID)
	if err != nil {
		serverError(w, r, "list modifier groups", err)
		return
	}

	resp := make([]modifierGroupResponse, len(groups))
	for i, mg := range groups {
		resp[i] = toModifierGroupResponse(mg)
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateGroup adds a new modifier group to the outlet.
func (h *ModifierHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}

	var req modifierGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	minSelect, maxSelect, msg := req.selection()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	mg, err := h.store.CreateModifierGroup(r.Context(), database.CreateModifierGroupParams{
		OutletID:  outletID,
		Name:      strings.TrimSpace(req.Name),
		MinSelect: minSelect,
		MaxSelect: maxSelect,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			writeError(w, http.StatusBadRequest, "outlet not found")
			return
		}
		serverError(w, r, "create modifier group", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityModifierGroup, enum.ActionCreated, mg.ID)
	writeJSON(w, http.StatusCreated, toModifierGroupResponse(mg))
}

// UpdateGroup modifies an existing modifier group.
func (h *ModifierHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	mgID, err := urlUUID(r, "mgid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid modifier group ID")
		return
	}

	var req modifierGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	minSelect, maxSelect, msg := req.selection()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	mg, err := h.store.UpdateModifierGroup(r.Context(), database.UpdateModifierGroupParams{
		Name:      strings.TrimSpace(req.Name),
		MinSelect: minSelect,
		MaxSelect: maxSelect,
		SortOrder: req.SortOrder,
		ID:        mgID,
		OutletID:  outletID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "modifier group not found")
			return
		}
		serverError(w, r, "update modifier group", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityModifierGroup, enum.ActionUpdated, mg.ID)
	writeJSON(w, http.StatusOK, toModifierGroupResponse(mg))
}

// DeleteGroup soft-deletes a modifier group. Links from categories and items
// stay but the resolver ignores inactive groups.
func (h *ModifierHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	mgID, err := urlUUID(r, "mgid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid modifier group ID")
		return
	}

	_, err = h.store.SoftDeleteModifierGroup(r.Context(), database.SoftDeleteModifierGroupParams{
		ID:       mgID,
		OutletID: outletID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "modifier group not found")
			return
		}
		serverError(w, r, "delete modifier group", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityModifierGroup, enum.ActionDeleted, mgID)
	w.WriteHeader(http.StatusNoContent)
}

// --- Modifier Handlers ---

// ListModifiers returns all active modifiers in a modifier group.
func (h *ModifierHandler) ListModifiers(w http.ResponseWriter, r *http.Request) {
	_, mgID, ok := h.verifyModifierGroupOwnership(w, r)
	if !ok {
		return
	}

	modifiers, err := h.store.ListModifiersByGroup(r.Context(), mgID)
	if err != nil {
		serverError(w, r, "list modifiers", err)
		return
	}

	resp := make([]modifierResponse, len(modifiers))
	for i, m := range modifiers {
		resp[i] = toModifierResponse(m)
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateModifier adds a new modifier to a modifier group.
func (h *ModifierHandler) CreateModifier(w http.ResponseWriter, r *http.Request) {
	outletID, mgID, ok := h.verifyModifierGroupOwnership(w, r)
	if !ok {
		return
	}

	var req modifierRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, price, msg := req.parse()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	m, err := h.store.CreateModifier(r.Context(), database.CreateModifierParams{
		ModifierGroupID: mgID,
		Name:            name,
		Price:           price,
		SortOrder:       req.SortOrder,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			writeError(w, http.StatusBadRequest, "invalid modifier_group_id")
			return
		}
		serverError(w, r, "create modifier", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityModifier, enum.ActionCreated, m.ID)
	writeJSON(w, http.StatusCreated, toModifierResponse(m))
}

// UpdateModifier modifies an existing modifier.
func (h *ModifierHandler) UpdateModifier(w http.ResponseWriter, r *http.Request) {
	outletID, mgID, ok := h.verifyModifierGroupOwnership(w, r)
	if !ok {
		return
	}

	modID, err := urlUUID(r, "mid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid modifier ID")
		return
	}

	var req modifierRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, price, msg := req.parse()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	m, err := h.store.UpdateModifier(r.Context(), database.UpdateModifierParams{
		Name:            name,
		Price:           price,
		SortOrder:       req.SortOrder,
		ID:              modID,
		ModifierGroupID: mgID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "modifier not found")
			return
		}
		serverError(w, r, "update modifier", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityModifier, enum.ActionUpdated, m.ID)
	writeJSON(w, http.StatusOK, toModifierResponse(m))
}

// DeleteModifier soft-deletes a modifier.
func (h *ModifierHandler) DeleteModifier(w http.ResponseWriter, r *http.Request) {
	outletID, mgID, ok := h.verifyModifierGroupOwnership(w, r)
	if !ok {
		return
	}

	modID, err := urlUUID(r, "mid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid modifier ID")
		return
	}

	_, err = h.store.SoftDeleteModifier(r.Context(), database.SoftDeleteModifierParams{
		ID:              modID,
		ModifierGroupID: mgID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "modifier not found")
			return
		}
		serverError(w, r, "delete modifier", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityModifier, enum.ActionDeleted, modID)
	w.WriteHeader(http.StatusNoContent)
}
