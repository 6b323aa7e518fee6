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
	"github.com/menuhq/pos-admin/internal/service"
)

// EventStore defines the reads and deletes needed by event handlers.
// Satisfied by *database.Queries.
type EventStore interface {
	ListTimeEventsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.TimeEvent, error)
	ListTimeEventWindowsByOutlet(ctx context.Context, outletID uuid.UUID) ([]database.TimeEventWindow, error)
	GetTimeEvent(ctx context.Context, arg database.GetTimeEventParams) (database.TimeEvent, error)
	ListTimeEventWindows(ctx context.Context, eventID uuid.UUID) ([]database.TimeEventWindow, error)
	DeleteTimeEvent(ctx context.Context, arg database.DeleteTimeEventParams) (uuid.UUID, error)
}

// EventWriter validates and stores events with their windows in one
// transaction. Satisfied by *service.ScheduleService.
type EventWriter interface {
	CreateEvent(ctx context.Context, outletID uuid.UUID, in service.EventInput) (*service.EventResult, error)
	UpdateEvent(ctx context.Context, outletID, eventID uuid.UUID, in service.EventInput) (*service.EventResult, error)
}

// EventHandler handles time event endpoints.
type EventHandler struct {
	store    EventStore
	writer   EventWriter
	notifier Notifier
}

func NewEventHandler(store EventStore, writer EventWriter, notifier Notifier) *EventHandler {
	return &EventHandler{store: store, writer: writer, notifier: notifier}
}

// RegisterRoutes mounts on /outlets/{oid}/events.
func (h *EventHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type windowJSON struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type eventRequest struct {
	Code            string       `json:"code"`
	Name            string       `json:"name"`
	IsActive        *bool        `json:"is_active"`
	StartDate       string       `json:"start_date"`
	EndDate         string       `json:"end_date"`
	Windows         []windowJSON `json:"windows"`
	AmountAdd       *string      `json:"amount_add"`
	AmountDiscount  *string      `json:"amount_discount"`
	PercentAdd      *string      `json:"percent_add"`
	PercentDiscount *string      `json:"percent_discount"`
}

type eventResponse struct {
	ID              uuid.UUID    `json:"id"`
	OutletID        uuid.UUID    `json:"outlet_id"`
	Code            string       `json:"code"`
	Name            string       `json:"name"`
	IsActive        bool         `json:"is_active"`
	StartDate       *string      `json:"start_date"`
	EndDate         *string      `json:"end_date"`
	Windows         []windowJSON `json:"windows"`
	AmountAdd       *string      `json:"amount_add"`
	AmountDiscount  *string      `json:"amount_discount"`
	PercentAdd      *string      `json:"percent_add"`
	PercentDiscount *string      `json:"percent_discount"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func datePtr(d pgtype.Date) *string {
	if !d.Valid {
		return nil
	}
	s := d.Time.Format("2006-01-02")
	return &s
}

func toEventResponse(e database.TimeEvent, windows []database.TimeEventWindow) eventResponse {
	resp := eventResponse{
		ID:              e.ID,
		OutletID:        e.OutletID,
		Code:            e.Code,
		Name:            e.Name,
		IsActive:        e.IsActive,
		StartDate:       datePtr(e.StartDate),
		EndDate:         datePtr(e.EndDate),
		Windows:         make([]windowJSON, 0, len(windows)),
		AmountAdd:       numericToStringPtr(e.AmountAdd),
		AmountDiscount:  numericToStringPtr(e.AmountDiscount),
		PercentAdd:      percentToStringPtr(e.PercentAdd),
		PercentDiscount: percentToStringPtr(e.PercentDiscount),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	for _, w := range windows {
		resp.Windows = append(resp.Windows, windowJSON{
			Day:   strings.ToUpper(time.Weekday(w.DayOfWeek).String()),
			Start: w.StartTime,
			End:   w.EndTime,
		})
	}
	return resp
}

// input converts the body. Only decimal syntax is checked here; the rest is
// validated by the schedule service.
func (req eventRequest) input() (service.EventInput, string) {
	in := service.EventInput{
		Code:      strings.TrimSpace(req.Code),
		Name:      strings.TrimSpace(req.Name),
		Active:    req.IsActive == nil || *req.IsActive,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	for _, w := range req.Windows {
		in.Windows = append(in.Windows, service.WindowInput{Day: w.Day, Start: w.Start, End: w.End})
	}

	adjustments := []struct {
		name string
		raw  *string
		dst  **decimal.Decimal
	}{
		{"amount_add", req.AmountAdd, &in.AmountAdd},
		{"amount_discount", req.AmountDiscount, &in.AmountDiscount},
		{"percent_add", req.PercentAdd, &in.PercentAdd},
		{"percent_discount", req.PercentDiscount, &in.PercentDiscount},
	}
	for _, a := range adjustments {
		d, err := parseOptionalDecimal(a.raw)
		if err != nil {
			return in, a.name + " must be a decimal"
		}
		*a.dst = d
	}
	return in, ""
}

// writeScheduleError maps schedule service errors for events and availabilities.
func writeScheduleError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEvent), errors.Is(err, service.ErrInvalidAvailability):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEventNotFound):
		writeError(w, http.StatusNotFound, "event not found")
	case errors.Is(err, service.ErrAvailabilityMissing):
		writeError(w, http.StatusNotFound, "availability not found")
	case isUniqueViolation(err):
		writeError(w, http.StatusConflict, "code already exists")
	case isCheckViolation(err):
		writeError(w, http.StatusBadRequest, "value out of range")
	default:
		serverError(w, r, op, err)
	}
}

// --- Handlers ---

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}

	events, err := h.store.ListTimeEventsByOutlet(r.Context(), outletID)
	if err != nil {
		serverError(w, r, "list events", err)
		return
	}
	windows, err := h.store.ListTimeEventWindowsByOutlet(r.Context(), outletID)
	if err != nil {
		serverError(w, r, "list event windows", err)
		return
	}
	byEvent := make(map[uuid.UUID][]database.TimeEventWindow, len(events))
	for _, win := range windows {
		byEvent[win.EventID] = append(byEvent[win.EventID], win)
	}

	resp := make([]eventResponse, len(events))
	for i, e := range events {
		resp[i] = toEventResponse(e, byEvent[e.ID])
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	eventID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	e, err := h.store.GetTimeEvent(r.Context(), database.GetTimeEventParams{ID: eventID, OutletID: outletID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		serverError(w, r, "get event", err)
		return
	}
	windows, err := h.store.ListTimeEventWindows(r.Context(), eventID)
	if err != nil {
		serverError(w, r, "list event windows", err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(e, windows))
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in, msg := req.input()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := h.writer.CreateEvent(r.Context(), outletID, in)
	if err != nil {
		writeScheduleError(w, r, "create event", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityEvent, enum.ActionCreated, res.Event.ID)
	writeJSON(w, http.StatusCreated, toEventResponse(res.Event, res.Windows))
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	eventID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in, msg := req.input()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := h.writer.UpdateEvent(r.Context(), outletID, eventID, in)
	if err != nil {
		writeScheduleError(w, r, "update event", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityEvent, enum.ActionUpdated, res.Event.ID)
	writeJSON(w, http.StatusOK, toEventResponse(res.Event, res.Windows))
}

// Delete removes the event and its windows.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	outletID, err := urlUUID(r, "oid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet ID")
		return
	}
	eventID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	if _, err := h.store.DeleteTimeEvent(r.Context(), database.DeleteTimeEventParams{ID: eventID, OutletID: outletID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		serverError(w, r, "delete event", err)
		return
	}

	notifyChange(r, h.notifier, outletID, enum.EntityEvent, enum.ActionDeleted, eventID)
	w.WriteHeader(http.StatusNoContent)
}
