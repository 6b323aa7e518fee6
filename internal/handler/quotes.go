package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/menuhq/pos-admin/internal/service"
)

// Quoter prices a cart. Satisfied by *service.QuoteService.
type Quoter interface {
	Quote(ctx context.Context, req service.QuoteRequest) (*service.Quote, error)
}

type QuoteHandler struct {
	quoter Quoter
}

func NewQuoteHandler(quoter Quoter) *QuoteHandler {
	return &QuoteHandler{quoter: quoter}
}

// RegisterRoutes mounts on /outlets/{oid}/quotes.
func (h *QuoteHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
}

type quoteLineRequest struct {
	ItemID      string   `json:"item_id"`
	Quantity    int32    `json:"quantity"`
	ModifierIDs []string `json:"modifier_ids"`
}

type quoteRequest struct {
	At     string             `json:"at"`
	Tender string             `json:"tender"`
	Lines  []quoteLineRequest `json:"lines"`
}

// quoteClientErrors are the service errors caused by the request itself.
var quoteClientErrors = []error{
	service.ErrEmptyLines,
	service.ErrInvalidQuantity,
	service.ErrInvalidItemID,
	service.ErrItemNotFound,
	service.ErrItemUnavailable,
	service.ErrInvalidModifierID,
	service.ErrModifierNotFound,
	service.ErrModifierNotAllowed,
	service.ErrDuplicateModifier,
	service.ErrModifierMinimum,
	service.ErrModifierMaximum,
	service.ErrInvalidTender,
}

// Create prices the cart without storing anything.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var at time.Time
	if req.At != "" {
		if at, err = time.Parse(time.RFC3339, req.At); err != nil {
			writeError(w, http.StatusBadRequest, "at must be an RFC3339 timestamp")
			return
		}
	}

	sreq := service.QuoteRequest{
		OutletID: outletID,
		At:       at,
		Tender:   strings.ToUpper(req.Tender),
		Lines:    make([]service.QuoteLineRequest, len(req.Lines)),
	}
	for i, l := range req.Lines {
		sreq.Lines[i] = service.QuoteLineRequest{ItemID: l.ItemID, Quantity: l.Quantity, ModifierIDs: l.ModifierIDs}
	}

	quote, err := h.quoter.Quote(r.Context(), sreq)
	if err != nil {
		if errors.Is(err, service.ErrOutletNotFound) {
			writeError(w, http.StatusNotFound, "outlet not found")
			return
		}
		for _, target := range quoteClientErrors {
			if errors.Is(err, target) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		serverError(w, r, "quote", err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}
