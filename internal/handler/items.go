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
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/enum"
	"github.com/menuhq/pos-admin/internal/service"
)

// ItemStore defines the database methods needed by menu item handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ItemStore interface {
	ListMenuItemsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.MenuItem, error)
	GetMenuItem(ctx context.Context, arg database.GetMenuItemParams) (database.MenuItem, error)
	CreateMenuItem(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error)
	UpdateMenuItem(ctx context.Context, arg database.UpdateMenuItemParams) (database.MenuItem, error)
	SoftDeleteMenuItem(ctx context.Context, arg database.SoftDeleteMenuItemParams) (uuid.UUID, error)
	ListItemModifierGroupIDs(ctx context.Context, menuItemID uuid.UUID) ([]uuid.UUID, error)
	GetModifierGroup(ctx context.Context, arg database.GetModifierGroupParams) (database.ModifierGroup, error)
	AttachItemModifierGroup(ctx context.Context, arg database.AttachItemModifierGroupParams) error
	DetachItemModifierGroup(ctx context.Context, arg database.DetachItemModifierGroupParams) (int64, error)
}

// ItemResolver prices a single item at an instant.
// Satisfied by *service.MenuService.
type ItemResolver interface {
	ResolveItem(ctx context.Context, outletID, itemID uuid.UUID, at time.Time) (*service.MenuEntry, error)
}

// ItemHandler handles menu item CRUD and single-item price resolution.
type ItemHandler struct {
	store    ItemStore
	resolver ItemResolver
	notifier Notifier
}

func NewItemHandler(store ItemStore, resolver ItemResolver, notifier Notifier) *ItemHandler {
	return &ItemHandler{store: store, resolver: resolver, notifier: notifier}
}

// RegisterRoutes mounts on /outlets/{oid}/items.
func (h *ItemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/price", h.Price)
	r.Put("/{id}/modifier-groups/{mgid}", h.AttachModifierGroup)
	r.Delete("/{id}/modifier-groups/{mgid}", h.DetachModifierGroup)
}

// --- Request / Response types ---

type itemRequest struct {
	CategoryID            string  `json:"category_id"`
	Code                  string  `json:"code"`
	Name                  string  `json:"name"`
	Description           string  `json:"description"`
	BasePrice             string  `json:"base_price"`
	CardPrice             *string `json:"card_price"`
	CashPrice             *string `json:"cash_price"`
	TaxID                 *string `json:"tax_id"`
	AvailabilityID        *string `json:"availability_id"`
	InheritModifierGroups *bool   `json:"inherit_modifier_groups"`
	ImageURL              string  `json:"image_url"`
}

type itemResponse struct {
	ID                    uuid.UUID   `json:"id"`
	OutletID              uuid.UUID   `json:"outlet_id"`
	CategoryID            uuid.UUID   `json:"category_id"`
	Code                  string      `json:"code"`
	Name                  string      `json:"name"`
	Description           *string     `json:"description"`
	BasePrice             string      `json:"base_price"`
	CardPrice             *string     `json:"card_price"`
	CashPrice             *string     `json:"cash_price"`
	TaxID                 *uuid.UUID  `json:"tax_id"`
	AvailabilityID        *uuid.UUID  `json:"availability_id"`
	InheritModifierGroups bool        `json:"inherit_modifier_groups"`
	ImageURL              *string     `json:"image_url"`
	IsActive              bool        `json:"is_active"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
	ModifierGroupIDs      []uuid.UUID `json:"modifier_group_ids,omitempty"`
}

func toItemResponse(it database.MenuItem) itemResponse {
	return itemResponse{
		ID:                    it.ID,
		OutletID:              it.OutletID,
		CategoryID:            it.CategoryID,
		Code:                  it.Code,
		Name:                  it.Name,
		Description:           textPtr(it.Description),
		BasePrice:             numericToString(it.BasePrice),
		CardPrice:             numericToStringPtr(it.CardPrice),
		CashPrice:             numericToStringPtr(it.CashPrice),
		TaxID:                 uuidPtr(it.TaxID),
		AvailabilityID:        uuidPtr(it.AvailabilityID),
		InheritModifierGroups: it.InheritModifierGroups,
		ImageURL:              textPtr(it.ImageUrl),
		IsActive:              it.IsActive,
		CreatedAt:             it.CreatedAt,
		UpdatedAt:             it.UpdatedAt,
	}
}

type itemFields struct {
	categoryID     uuid.UUID
	code, name     string
	basePrice      pgtype.Numeric
	cardPrice      pgtype.Numeric
	cashPrice      pgtype.Numeric
	taxID          pgtype.UUID
	availabilityID pgtype.UUID
	inherit        bool
}

// parse returns the validated fields or a client-facing message.
func (req itemRequest) parse() (itemFields, string) {
	var f itemFields
	var err error
	if f.categoryID, err = uuid.Parse(req.CategoryID); err != nil {
		return f, "category_id is required"
	}
	if f.code = strings.TrimSpace(req.Code); f.code == "" {
		return f, "code is required"
	}
	if f.name = strings.TrimSpace(req.Name); f.name == "" {
		return f, "name is required"
	}
	if f.basePrice, err = parsePrice(req.BasePrice); err != nil {
		return f, "base_price must be a non-negative decimal"
	}
	if f.cardPrice, err = parseOptionalPrice(req.CardPrice); err != nil {
		return f, "card_price must be a non-negative decimal"
	}
	if f.cashPrice, err = parseOptionalPrice(req.CashPrice); err != nil {
		return f, "cash_price must be a non-negative decimal"
	}
	if f.taxID, err = parseOptionalUUID(req.TaxID); err != nil {
		return f, "invalid tax_id"
	}
	if f.availabilityID, err = parseOptionalUUID(req.AvailabilityID); err != nil {
		return f, "invalid availability_id"
	}
	f.inherit = req.InheritModifierGroups == nil || *req.InheritModifierGroups
	return f, ""
}

// --- Handlers ---

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}

	items, err := h.store.ListMenuItemsByOutlet(r.Context(), outletID)
	if err != nil {
		serverError(w, r, "list items", err)
		return
	}

	// Optional filter: ?category_id=uuid
	var categoryID uuid.UUID
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		if categoryID, err = uuid.Parse(raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
	}

	resp := make([]itemResponse, 0, len(items))
	for _, it := range items {
		if categoryID != uuid.Nil && it.CategoryID != categoryID {
			continue
		}
		resp = append(resp, toItemResponse(it))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	itemID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	it, err := h.store.GetMenuItem(r.Context(), database.GetMenuItemParams{ID: itemID, OutletID: outletID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		serverError(w, r, "get item", err)
		return
	}
	groups, err := h.store.ListItemModifierGroupIDs(r.Context(), itemID)
	if err != nil {
		serverError(w, r, "list item modifier groups", err)
		return
	}

	resp := toItemResponse(it)
	resp.ModifierGroupIDs = groups
	writeJSON(w, http.StatusOK, resp)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	f, msg := req.parse()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	it, err := h.store.CreateMenuItem(r.Context(), database.CreateMenuItemParams{
		OutletID:              outletID,
		CategoryID:            f.categoryID,
		Code:                  f.code,
		Name:                  f.name,
		Description:           optText(req.Description),
		BasePrice:             f.basePrice,
		CardPrice:             f.cardPrice,
		CashPrice:             f.cashPrice,
		TaxID:                 f.taxID,
		AvailabilityID:        f.availabilityID,
		InheritModifierGroups: f.inherit,
		ImageUrl:              optText(req.ImageURL),
	})
	if err != nil {
		switch {
		case isUniqueViolation(err):
			writeError(w, http.StatusConflict, "item code already exists")
		case isForeignKeyViolation(err):
			writeError(w, http.StatusBadRequest, "referenced category, tax or availability not found")
		default:
			serverError(w, r, "create item", err)
		}
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityItem, enum.ActionCreated, it.ID)
	writeJSON(w, http.StatusCreated, toItemResponse(it))
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	itemID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID")
		return
	}
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	f, msg := req.parse()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	it, err := h.store.UpdateMenuItem(r.Context(), database.UpdateMenuItemParams{
		CategoryID:            f.categoryID,
		Code:                  f.code,
		Name:                  f.name,
		Description:           optText(req.Description),
		BasePrice:             f.basePrice,
		CardPrice:             f.cardPrice,
		CashPrice:             f.cashPrice,
		TaxID:                 f.taxID,
		AvailabilityID:        f.availabilityID,
		InheritModifierGroups: f.inherit,
		ImageUrl:              optText(req.ImageURL),
		ID:                    itemID,
		OutletID:              outletID,
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			writeError(w, http.StatusNotFound, "item not found")
		case isUniqueViolation(err):
			writeError(w, http.StatusConflict, "item code already exists")
		case isForeignKeyViolation(err):
			writeError(w, http.StatusBadRequest, "referenced category, tax or availability not found")
		default:
			serverError(w, r, "update item", err)
		}
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityItem, enum.ActionUpdated, it.ID)
	writeJSON(w, http.StatusOK, toItemResponse(it))
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	itemID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	if _, err := h.store.SoftDeleteMenuItem(r.Context(), database.SoftDeleteMenuItemParams{ID: itemID, OutletID: outletID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		serverError(w, r, "delete item", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityItem, enum.ActionDeleted, itemID)
	w.WriteHeader(http.StatusNoContent)
}

type itemPriceResponse struct {
	menuEntryResponse
	Tender      string `json:"tender,omitempty"`
	TenderPrice string `json:"tender_price,omitempty"`
}

// Price resolves one item at ?at= (RFC3339, default now) for an optional
// ?tender=CARD|CASH.
func (h *ItemHandler) Price(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	itemID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID")
		return
	}
	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "at must be an RFC3339 timestamp")
		return
	}
	tender := strings.ToUpper(r.URL.Query().Get("tender"))
	if tender != "" && tender != enum.TenderCard && tender != enum.TenderCash {
		writeError(w, http.StatusBadRequest, service.ErrInvalidTender.Error())
		return
	}

	entry, err := h.resolver.ResolveItem(r.Context(), outletID, itemID, at)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOutletNotFound):
			writeError(w, http.StatusNotFound, "outlet not found")
		case errors.Is(err, service.ErrItemNotFound):
			writeError(w, http.StatusNotFound, "item not found")
		default:
			serverError(w, r, "resolve item", err)
		}
		return
	}

	resp := itemPriceResponse{menuEntryResponse: toMenuEntryResponse(*entry)}
	if tender != "" {
		resp.Tender = tender
		resp.TenderPrice = entry.PriceFor(tender).StringFixed(2)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ItemHandler) AttachModifierGroup(w http.ResponseWriter, r *http.Request) {
	outletID, itemID, groupID, ok := h.linkParams(w, r)
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

	err := h.store.AttachItemModifierGroup(r.Context(), database.AttachItemModifierGroupParams{MenuItemID: itemID, ModifierGroupID: groupID})
	if err != nil {
		serverError(w, r, "attach item modifier group", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityItem, enum.ActionAttached, itemID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) DetachModifierGroup(w http.ResponseWriter, r *http.Request) {
	outletID, itemID, groupID, ok := h.linkParams(w, r)
	if !ok {
		return
	}

	n, err := h.store.DetachItemModifierGroup(r.Context(), database.DetachItemModifierGroupParams{MenuItemID: itemID, ModifierGroupID: groupID})
	if err != nil {
		serverError(w, r, "detach item modifier group", err)
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, "modifier group not linked")
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityItem, enum.ActionDetached, itemID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) linkParams(w http.ResponseWriter, r *http.Request) (outletID, itemID, groupID uuid.UUID, ok bool) {
	var err error
	if outletID, err = urlUUID(r, "oid"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	if itemID, err = urlUUID(r, "id"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID")
		return
	}
	if groupID, err = urlUUID(r, "mgid"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid modifier group ID")
		return
	}
	if _, err = h.store.GetMenuItem(r.Context(), database.GetMenuItemParams{ID: itemID, OutletID: outletID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		serverError(w, r, "get item", err)
		return
	}
	return outletID, itemID, groupID, true
}
