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
	"github.com/shopspring/decimal"

	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/enum"
)

// TaxStore defines the database methods needed by tax handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type TaxStore interface {
	ListTaxesByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.Tax, error)
	CreateTax(ctx context.Context, arg database.CreateTaxParams) (database.Tax, error)
	UpdateTax(ctx context.Context, arg database.UpdateTaxParams) (database.Tax, error)
	SoftDeleteTax(ctx context.Context, arg database.SoftDeleteTaxParams) (uuid.UUID, error)
}

// TaxHandler handles tax CRUD endpoints.
type TaxHandler struct {
	store    TaxStore
	notifier Notifier
}

func NewTaxHandler(store TaxStore, notifier Notifier) *TaxHandler {
	return &TaxHandler{store: store, notifier: notifier}
}

// RegisterRoutes mounts on /outlets/{oid}/taxes.
func (h *TaxHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type taxRequest struct {
	Name string `json:"name"`
	Rate string `json:"rate"`
}

type taxResponse struct {
	ID        uuid.UUID `json:"id"`
	OutletID  uuid.UUID `json:"outlet_id"`
	Name      string    `json:"name"`
	Rate      string    `json:"rate"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toTaxResponse(t database.Tax) taxResponse {
	rate := "0"
	if v, err := t.Rate.Value(); err == nil && v != nil {
		if d, err := decimal.NewFromString(v.(string)); err == nil {
			rate = d.String()
		}
	}
	return taxResponse{
		ID:        t.ID,
		OutletID:  t.OutletID,
		Name:      t.Name,
		Rate:      rate,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
	}
}

// parse validates the body; on failure it writes a 400 and returns false.
func (req *taxRequest) parse(w http.ResponseWriter) (pgtype.Numeric, bool) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return pgtype.Numeric{}, false
	}
	if req.Rate == "" {
		writeError(w, http.StatusBadRequest, "rate is required")
		return pgtype.Numeric{}, false
	}
	rate, err := parsePrice(req.Rate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "rate must be a non-negative decimal")
		return pgtype.Numeric{}, false
	}
	return rate, true
}

// List returns all active taxes for the given outlet.
func (h *TaxHandler) List(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}

	taxes, err := h.store.ListTaxesByOutlet(r.Context(), outletID)
	if err != nil {
		serverError(w, r, "list taxes", err)
		return
	}

	resp := make([]taxResponse, len(taxes))
	for i, t := range taxes {
		resp[i] = toTaxResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TaxHandler) Create(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}

	var req taxRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rate, ok := req.parse(w)
	if !ok {
		return
	}

	tax, err := h.store.CreateTax(r.Context(), database.CreateTaxParams{
		OutletID: outletID,
		Name:     req.Name,
		Rate:     rate,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			writeError(w, http.StatusBadRequest, "outlet not found")
			return
		}
		serverError(w, r, "create tax", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityTax, enum.ActionCreated, tax.ID)
	writeJSON(w, http.StatusCreated, toTaxResponse(tax))
}

func (h *TaxHandler) Update(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	taxID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tax ID")
		return
	}

	var req taxRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rate, ok := req.parse(w)
	if !ok {
		return
	}

	tax, err := h.store.UpdateTax(r.Context(), database.UpdateTaxParams{
		Name:     req.Name,
		Rate:     rate,
		ID:       taxID,
		OutletID: outletID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "tax not found")
			return
		}
		serverError(w, r, "update tax", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityTax, enum.ActionUpdated, tax.ID)
	writeJSON(w, http.StatusOK, toTaxResponse(tax))
}

// Delete soft-deletes a tax. Categories and items still pointing at it stop
// being taxed.
func (h *TaxHandler) Delete(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	taxID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tax ID")
		return
	}

	if _, err := h.store.SoftDeleteTax(r.Context(), database.SoftDeleteTaxParams{ID: taxID, OutletID: outletID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "tax not found")
			return
		}
		serverError(w, r, "delete tax", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityTax, enum.ActionDeleted, taxID)
	w.WriteHeader(http.StatusNoContent)
}
