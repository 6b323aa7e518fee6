package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/enum"
	"github.com/menuhq/pos-admin/internal/service"
)

// AvailabilityStore defines the reads and deletes needed by availability
// handlers. Satisfied by *database.Queries.
type AvailabilityStore interface {
	ListAvailabilitiesByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.Availability, error)
	ListAvailabilityRowsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.AvailabilityRow, error)
	GetAvailability(ctx context.Context, arg database.GetAvailabilityParams) (database.Availability, error)
	ListAvailabilityRows(ctx context.Context, availabilityID uuid.UUID) ([]database.AvailabilityRow, error)
	DeleteAvailability(ctx context.Context, arg database.DeleteAvailabilityParams) (uuid.UUID, error)
}

// AvailabilityWriter stores availabilities with their rows.
// Satisfied by *service.ScheduleService.
type AvailabilityWriter interface {
	CreateAvailability(ctx context.Context, outletID uuid.UUID, in service.AvailabilityInput) (*service.AvailabilityResult, error)
	UpdateAvailability(ctx context.Context, outletID, availabilityID uuid.UUID, in service.AvailabilityInput) (*service.AvailabilityResult, error)
}

type AvailabilityHandler struct {
	store    AvailabilityStore
	writer   AvailabilityWriter
	notifier Notifier
}

func NewAvailabilityHandler(store AvailabilityStore, writer AvailabilityWriter, notifier Notifier) *AvailabilityHandler {
	return &AvailabilityHandler{store: store, writer: writer, notifier: notifier}
}

// RegisterRoutes mounts on /outlets/{oid}/availabilities.
func (h *AvailabilityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type availabilityRowJSON struct {
	Day   string  `json:"day"`
	Start *string `json:"start"`
	End   *string `json:"end"`
}

type availabilityRequest struct {
	Name     string                `json:"name"`
	IsActive *bool                 `json:"is_active"`
	Rows     []availabilityRowJSON `json:"rows"`
}

type availabilityResponse struct {
	ID        uuid.UUID             `json:"id"`
	OutletID  uuid.UUID             `json:"outlet_id"`
	Name      string                `json:"name"`
	IsActive  bool                  `json:"is_active"`
	Rows      []availabilityRowJSON `json:"rows"`
	CreatedAt time.Time             `json:"created_at"`
}

func toAvailabilityResponse(a database.Availability, rows []database.AvailabilityRow) availabilityResponse {
	resp := availabilityResponse{
		ID:        a.ID,
		OutletID:  a.OutletID,
		Name:      a.Name,
		IsActive:  a.IsActive,
		Rows:      make([]availabilityRowJSON, 0, len(rows)),
		CreatedAt: a.CreatedAt,
	}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, availabilityRowJSON{
			Day:   row.Day,
			Start: textPtr(row.StartTime),
			End:   textPtr(row.EndTime),
		})
	}
	return resp
}

func (req availabilityRequest) input() service.AvailabilityInput {
	in := service.AvailabilityInput{
		Name:   req.Name,
		Active: req.IsActive == nil || *req.IsActive,
		Rows:   make([]service.RowInput, 0, len(req.Rows)),
	}
	for _, row := range req.Rows {
		ri := service.RowInput{Day: row.Day}
		if row.Start != nil {
			ri.Start = *row.Start
		}
		if row.End != nil {
			ri.End = *row.End
		}
		in.Rows = append(in.Rows, ri)
	}
	return in
}

func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}

	avails, err := h.store.ListAvailabilitiesByOutlet(r.Context(), outletID)
	if err != nil {
		serverError(w, r, "list availabilities", err)
		return
	}
	rows, err := h.store.ListAvailabilityRowsByOutlet(r.Context(), outletID)
	if err != nil {
		serverError(w, r, "list availability rows", err)
		return
	}
	byAvail := make(map[uuid.UUID][]database.AvailabilityRow, len(avails))
	for _, row := range rows {
		byAvail[row.AvailabilityID] = append(byAvail[row.AvailabilityID], row)
	}

	resp := make([]availabilityResponse, len(avails))
	for i, a := range avails {
		resp[i] = toAvailabilityResponse(a, byAvail[a.ID])
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	availID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid availability ID")
		return
	}

	a, err := h.store.GetAvailability(r.Context(), database.GetAvailabilityParams{ID: availID, OutletID: outletID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "availability not found")
			return
		}
		serverError(w, r, "get availability", err)
		return
	}
	rows, err := h.store.ListAvailabilityRows(r.Context(), availID)
	if err != nil {
		serverError(w, r, "list availability rows", err)
		return
	}
	writeJSON(w, http.StatusOK, toAvailabilityResponse(a, rows))
}

func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	var req availabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.writer.CreateAvailability(r.Context(), outletID, req.input())
	if err != nil {
		writeScheduleError(w, r, "create availability", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityAvailability, enum.ActionCreated, res.Availability.ID)
	writeJSON(w, http.StatusCreated, toAvailabilityResponse(res.Availability, res.Rows))
}

func (h *AvailabilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	availID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid availability ID")
		return
	}
	var req availabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.writer.UpdateAvailability(r.Context(), outletID, availID, req.input())
	if err != nil {
		writeScheduleError(w, r, "update availability", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityAvailability, enum.ActionUpdated, res.Availability.ID)
	writeJSON(w, http.StatusOK, toAvailabilityResponse(res.Availability, res.Rows))
}

// Delete removes an availability. One still referenced by a category or
// item is refused with 409.
func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	availID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid availability ID")
		return
	}

	if _, err := h.store.DeleteAvailability(r.Context(), database.DeleteAvailabilityParams{ID: availID, OutletID: outletID}); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			writeError(w, http.StatusNotFound, "availability not found")
		case isForeignKeyViolation(err):
			writeError(w, http.StatusConflict, "availability is still in use")
		default:
			serverError(w, r, "delete availability", err)
		}
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityAvailability, enum.ActionDeleted, availID)
	w.WriteHeader(http.StatusNoContent)
}
