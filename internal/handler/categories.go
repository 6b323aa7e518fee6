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

// CategoryStore defines the database methods needed by category handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type CategoryStore interface {
	ListCategoriesByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.Category, error)
	GetCategory(ctx context.Context, arg database.GetCategoryParams) (database.Category, error)
	CreateCategory(ctx context.Context, arg database.CreateCategoryParams) (database.Category, error)
	UpdateCategory(ctx context.Context, arg database.UpdateCategoryParams) (database.Category, error)
	SoftDeleteCategory(ctx context.Context, arg database.SoftDeleteCategoryParams) (uuid.UUID, error)
	ListCategoryModifierGroupIDs(ctx context.Context, categoryID uuid.UUID) ([]uuid.UUID, error)
	GetModifierGroup(ctx context.Context, arg database.GetModifierGroupParams) (database.ModifierGroup, error)
	AttachCategoryModifierGroup(ctx context.Context, arg database.AttachCategoryModifierGroupParams) error
	DetachCategoryModifierGroup(ctx context.Context, arg database.DetachCategoryModifierGroupParams) (int64, error)
}

// CategoryHandler handles category CRUD endpoints.
type CategoryHandler struct {
	store    CategoryStore
	notifier Notifier
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(store CategoryStore, notifier Notifier) *CategoryHandler {
	return &CategoryHandler{store: store, notifier: notifier}
}

// RegisterRoutes registers category endpoints on the given Chi router.
// Expected to be mounted inside an outlet-scoped subrouter: /outlets/{oid}/categories
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Put("/{id}/modifier-groups/{mgid}", h.AttachModifierGroup)
	r.Delete("/{id}/modifier-groups/{mgid}", h.DetachModifierGroup)
}

// --- Request / Response types ---

type categoryRequest struct {
	MenuMasterID   *string `json:"menu_master_id"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Color          string  `json:"color"`
	SortOrder      int32   `json:"sort_order"`
	TaxID          *string `json:"tax_id"`
	AvailabilityID *string `json:"availability_id"`
}

type categoryResponse struct {
	ID               uuid.UUID   `json:"id"`
	OutletID         uuid.UUID   `json:"outlet_id"`
	MenuMasterID     *uuid.UUID  `json:"menu_master_id"`
	Code             string      `json:"code"`
	Name             string      `json:"name"`
	Description      *string     `json:"description"`
	Color            *string     `json:"color"`
	SortOrder        int32       `json:"sort_order"`
	TaxID            *uuid.UUID  `json:"tax_id"`
	AvailabilityID   *uuid.UUID  `json:"availability_id"`
	IsActive         bool        `json:"is_active"`
	CreatedAt        time.Time   `json:"created_at"`
	ModifierGroupIDs []uuid.UUID `json:"modifier_group_ids,omitempty"`
}

func toCategoryResponse(c database.Category) categoryResponse {
	return categoryResponse{
		ID:             c.ID,
		OutletID:       c.OutletID,
		MenuMasterID:   uuidPtr(c.MenuMasterID),
		Code:           c.Code,
		Name:           c.Name,
		Description:    textPtr(c.Description),
		Color:          textPtr(c.Color),
		SortOrder:      c.SortOrder,
		TaxID:          uuidPtr(c.TaxID),
		AvailabilityID: uuidPtr(c.AvailabilityID),
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
	}
}

// parse validates the body into create params; the caller fills in ids.
func (req categoryRequest) parse() (database.CreateCategoryParams, string) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" {
		return database.CreateCategoryParams{}, "code is required"
	}
	if name == "" {
		return database.CreateCategoryParams{}, "name is required"
	}
	master, err := parseOptionalUUID(req.MenuMasterID)
	if err != nil {
		return database.CreateCategoryParams{}, "invalid menu_master_id"
	}
	tax, err := parseOptionalUUID(req.TaxID)
	if err != nil {
		return database.CreateCategoryParams{}, "invalid tax_id"
	}
	avail, err := parseOptionalUUID(req.AvailabilityID)
	if err != nil {
		return database.CreateCategoryParams{}, "invalid availability_id"
	}
	return database.CreateCategoryParams{
		MenuMasterID:   master,
		Code:           code,
		Name:           name,
		Description:    optText(req.Description),
		Color:          optText(req.Color),
		SortOrder:      req.SortOrder,
		TaxID:          tax,
		AvailabilityID: avail,
	}, ""
}

// --- Handlers ---

// List returns all active categories for the outlet.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}

	categories, err := h.store.ListCategoriesByOutlet(r.Context(), outletID)
	if err != nil {
		serverError(w, r, "list categories", err)
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one category with its linked modifier groups.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	categoryID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	c, err := h.store.GetCategory(r.Context(), database.GetCategoryParams{ID: categoryID, OutletID: outletID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		serverError(w, r, "get category", err)
		return
	}
	groups, err := h.store.ListCategoryModifierGroupIDs(r.Context(), categoryID)
	if err != nil {
		serverError(w, r, "list category modifier groups", err)
		return
	}

	resp := toCategoryResponse(c)
	resp.ModifierGroupIDs = groups
	writeJSON(w, http.StatusOK, resp)
}

// Create creates a new category in the outlet.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	params, msg := req.parse()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	params.OutletID = outletID

	c, err := h.store.CreateCategory(r.Context(), params)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			writeError(w, http.StatusConflict, "category code already exists")
		case isForeignKeyViolation(err):
			writeError(w, http.StatusBadRequest, "referenced menu master, tax or availability not found")
		default:
			serverError(w, r, "create category", err)
		}
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityCategory, enum.ActionCreated, c.ID)
	writeJSON(w, http.StatusCreated, toCategoryResponse(c))
}

// Update replaces a category's fields.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	categoryID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category ID")
		return
	}
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, msg := req.parse()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	c, err := h.store.UpdateCategory(r.Context(), database.UpdateCategoryParams{
		MenuMasterID:   p.MenuMasterID,
		Code:           p.Code,
		Name:           p.Name,
		Description:    p.Description,
		Color:          p.Color,
		SortOrder:      p.SortOrder,
		TaxID:          p.TaxID,
		AvailabilityID: p.AvailabilityID,
		ID:             categoryID,
		OutletID:       outletID,
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			writeError(w, http.StatusNotFound, "category not found")
		case isUniqueViolation(err):
			writeError(w, http.StatusConflict, "category code already exists")
		case isForeignKeyViolation(err):
			writeError(w, http.StatusBadRequest, "referenced menu master, tax or availability not found")
		default:
			serverError(w, r, "update category", err)
		}
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityCategory, enum.ActionUpdated, c.ID)
	writeJSON(w, http.StatusOK, toCategoryResponse(c))
}

// Delete soft-deletes a category. Its items stop being orderable.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	categoryID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	if _, err := h.store.SoftDeleteCategory(r.Context(), database.SoftDeleteCategoryParams{ID: categoryID, OutletID: outletID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		serverError(w, r, "delete category", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityCategory, enum.ActionDeleted, categoryID)
	w.WriteHeader(http.StatusNoContent)
}

// AttachModifierGroup links a modifier group of the same outlet. Repeating
// the call is a no-op.
func (h *CategoryHandler) AttachModifierGroup(w http.ResponseWriter, r *http.Request) {
	outletID, categoryID, groupID, ok := h.linkParams(w, r)
	if !ok {
		return
	}
	if _, err := h.store.GetModifierGroup(r.Context(), database.GetModifierGroupParams{ID: groupID, OutletID: outletID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "modifier group not found")
			return
		}
		serverError(w, r, "get modifier group", err)
		return
	}

	err := h.store.AttachCategoryModifierGroup(r.Context(), database.AttachCategoryModifierGroupParams{CategoryID: categoryID, ModifierGroupID: groupID})
	if err != nil {
		serverError(w, r, "attach category modifier group", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityCategory, enum.ActionAttached, categoryID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) DetachModifierGroup(w http.ResponseWriter, r *http.Request) {
	outletID, categoryID, groupID, ok := h.linkParams(w, r)
	if !ok {
		return
	}

	n, err := h.store.DetachCategoryModifierGroup(r.Context(), database.DetachCategoryModifierGroupParams{CategoryID: categoryID, ModifierGroupID: groupID})
	if err != nil {
		serverError(w, r, "detach category modifier group", err)
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, "modifier group not linked")
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityCategory, enum.ActionDetached, categoryID)
	w.WriteHeader(http.StatusNoContent)
}

// linkParams parses the link URL and checks the category belongs to the outlet.
func (h *CategoryHandler) linkParams(w http.ResponseWriter, r *http.Request) (outletID, categoryID, groupID uuid.UUID, ok bool) {
	var err error
	if outletID, err = urlUUID(r, "oid"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	if categoryID, err = urlUUID(r, "id"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid category ID")
		return
	}
	if groupID, err = urlUUID(r, "mgid"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid modifier group ID")
		return
	}
	if _, err = h.store.GetCategory(r.Context(), database.GetCategoryParams{ID: categoryID, OutletID: outletID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		serverError(w, r, "get category", err)
		return
	}
	return outletID, categoryID, groupID, true
}
