package handler

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/enum"
)

// KitchenStore defines the database methods needed by prep zone and printer
// handlers. Satisfied by *database.Queries.
type KitchenStore interface {
	ListPrepZonesByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.PrepZone, error)
	CreatePrepZone(ctx context.Context, arg database.CreatePrepZoneParams) (database.PrepZone, error)
	UpdatePrepZone(ctx context.Context, arg database.UpdatePrepZoneParams) (database.PrepZone, error)
	SoftDeletePrepZone(ctx context.Context, arg database.SoftDeletePrepZoneParams) (uuid.UUID, error)
	ListPrintersByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.Printer, error)
	CreatePrinter(ctx context.Context, arg database.CreatePrinterParams) (database.Printer, error)
	UpdatePrinter(ctx context.Context, arg database.UpdatePrinterParams) (database.Printer, error)
	SoftDeletePrinter(ctx context.Context, arg database.SoftDeletePrinterParams) (uuid.UUID, error)
}

// KitchenHandler handles prep zones and the printers routed to them.
type KitchenHandler struct {
	store    KitchenStore
	notifier Notifier
}

func NewKitchenHandler(store KitchenStore, notifier Notifier) *KitchenHandler {
	return &KitchenHandler{store: store, notifier: notifier}
}

// RegisterPrepZoneRoutes mounts on /outlets/{oid}/prep-zones.
func (h *KitchenHandler) RegisterPrepZoneRoutes(r chi.Router) {
	r.Get("/", h.ListPrepZones)
	r.Post("/", h.CreatePrepZone)
	r.Put("/{id}", h.UpdatePrepZone)
	r.Delete("/{id}", h.DeletePrepZone)
}

// RegisterPrinterRoutes mounts on /outlets/{oid}/printers.
func (h *KitchenHandler) RegisterPrinterRoutes(r chi.Router) {
	r.Get("/", h.ListPrinters)
	r.Post("/", h.CreatePrinter)
	r.Put("/{id}", h.UpdatePrinter)
	r.Delete("/{id}", h.DeletePrinter)
}

type prepZoneRequest struct {
	Name string `json:"name"`
}

type prepZoneResponse struct {
	ID        uuid.UUID `json:"id"`
	OutletID  uuid.UUID `json:"outlet_id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toPrepZoneResponse(z database.PrepZone) prepZoneResponse {
	return prepZoneResponse{ID: z.ID, OutletID: z.OutletID, Name: z.Name, IsActive: z.IsActive, CreatedAt: z.CreatedAt}
}

type printerRequest struct {
	Name       string  `json:"name"`
	PrepZoneID *string `json:"prep_zone_id"`
	IPAddress  string  `json:"ip_address"`
	Port       int32   `json:"port"`
}

type printerResponse struct {
	ID         uuid.UUID  `json:"id"`
	OutletID   uuid.UUID  `json:"outlet_id"`
	PrepZoneID *uuid.UUID `json:"prep_zone_id"`
	Name       string     `json:"name"`
	IPAddress  string     `json:"ip_address"`
	Port       int32      `json:"port"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toPrinterResponse(p database.Printer) printerResponse {
	return printerResponse{
		ID:         p.ID,
		OutletID:   p.OutletID,
		PrepZoneID: uuidPtr(p.PrepZoneID),
		Name:       p.Name,
		IPAddress:  p.IpAddress,
		Port:       p.Port,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
	}
}

// validate writes a 400 and returns false when the printer body is unusable.
// A zero port means the ESC/POS default 9100.
func (req *printerRequest) validate(w http.ResponseWriter) bool {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return false
	}
	if net.ParseIP(req.IPAddress) == nil {
		writeError(w, http.StatusBadRequest, "ip_address must be a valid IP")
		return false
	}
	if req.Port == 0 {
		req.Port = 9100
	}
	if req.Port < 1 || req.Port > 65535 {
		writeError(w, http.StatusBadRequest, "port must be between 1 and 65535")
		return false
	}
	return true
}

// --- Prep zones ---

func (h *KitchenHandler) ListPrepZones(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}

	zones, err := h.store.ListPrepZonesByOutlet(r.Context(), outletID)
	if err != nil {
		serverError(w, r, "list prep zones", err)
		return
	}
	resp := make([]prepZoneResponse, len(zones))
	for i, z := range zones {
		resp[i] = toPrepZoneResponse(z)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *KitchenHandler) CreatePrepZone(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	var req prepZoneRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	zone, err := h.store.CreatePrepZone(r.Context(), database.CreatePrepZoneParams{OutletID: outletID, Name: strings.TrimSpace(req.Name)})
	if err != nil {
		if isUniqueViolation(err) {
			writeError(w, http.StatusConflict, "prep zone name already exists")
			return
		}
		serverError(w, r, "create prep zone", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityPrepZone, enum.ActionCreated, zone.ID)
	writeJSON(w, http.StatusCreated, toPrepZoneResponse(zone))
}

func (h *KitchenHandler) UpdatePrepZone(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	zoneID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prep zone ID")
		return
	}
	var req prepZoneRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	zone, err := h.store.UpdatePrepZone(r.Context(), database.UpdatePrepZoneParams{Name: strings.TrimSpace(req.Name), ID: zoneID, OutletID: outletID})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			writeError(w, http.StatusNotFound, "prep zone not found")
		case isUniqueViolation(err):
			writeError(w, http.StatusConflict, "prep zone name already exists")
		default:
			serverError(w, r, "update prep zone", err)
		}
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityPrepZone, enum.ActionUpdated, zone.ID)
	writeJSON(w, http.StatusOK, toPrepZoneResponse(zone))
}

func (h *KitchenHandler) DeletePrepZone(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	zoneID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prep zone ID")
		return
	}

	if _, err := h.store.SoftDeletePrepZone(r.Context(), database.SoftDeletePrepZoneParams{ID: zoneID, OutletID: outletID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "prep zone not found")
			return
		}
		serverError(w, r, "delete prep zone", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityPrepZone, enum.ActionDeleted, zoneID)
	w.WriteHeader(http.StatusNoContent)
}

// --- Printers ---

func (h *KitchenHandler) ListPrinters(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}

	printers, err := h.store.ListPrintersByOutlet(r.Context(), outletID)
	if err != nil {
		serverError(w, r, "list printers", err)
		return
	}
	resp := make([]printerResponse, len(printers))
	for i, p := range printers {
		resp[i] = toPrinterResponse(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *KitchenHandler) CreatePrinter(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	var req printerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.validate(w) {
		return
	}
	zoneID, err := parseOptionalUUID(req.PrepZoneID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prep_zone_id")
		return
	}

	printer, err := h.store.CreatePrinter(r.Context(), database.CreatePrinterParams{
		OutletID:   outletID,
		PrepZoneID: zoneID,
		Name:       req.Name,
		IpAddress:  req.IPAddress,
		Port:       req.Port,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			writeError(w, http.StatusBadRequest, "prep zone not found")
			return
		}
		serverError(w, r, "create printer", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityPrinter, enum.ActionCreated, printer.ID)
	writeJSON(w, http.StatusCreated, toPrinterResponse(printer))
}

func (h *KitchenHandler) UpdatePrinter(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	printerID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid printer ID")
		return
	}
	var req printerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.validate(w) {
		return
	}
	zoneID, err := parseOptionalUUID(req.PrepZoneID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prep_zone_id")
		return
	}

	printer, err := h.store.UpdatePrinter(r.Context(), database.UpdatePrinterParams{
		PrepZoneID: zoneID,
		Name:       req.Name,
		IpAddress:  req.IPAddress,
		Port:       req.Port,
		ID:         printerID,
		OutletID:   outletID,
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			writeError(w, http.StatusNotFound, "printer not found")
		case isForeignKeyViolation(err):
			writeError(w, http.StatusBadRequest, "prep zone not found")
		default:
			serverError(w, r, "update printer", err)
		}
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityPrinter, enum.ActionUpdated, printer.ID)
	writeJSON(w, http.StatusOK, toPrinterResponse(printer))
}

func (h *KitchenHandler) DeletePrinter(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	printerID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid printer ID")
		return
	}

	if _, err := h.store.SoftDeletePrinter(r.Context(), database.SoftDeletePrinterParams{ID: printerID, OutletID: outletID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "printer not found")
			return
		}
		serverError(w, r, "delete printer", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityPrinter, enum.ActionDeleted, printerID)
	w.WriteHeader(http.StatusNoContent)
}
