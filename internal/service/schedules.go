package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"

	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/pricing"
)

var (
	ErrInvalidEvent        = errors.New("invalid event")
	ErrInvalidAvailability = errors.New("invalid availability")
	ErrDuplicateWindowDay  = errors.New("more than one window for the same day")
	ErrEventNotFound       = errors.New("event not found")
	ErrAvailabilityMissing = errors.New("availability not found")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ScheduleStore defines the DB methods needed to write events and
// availabilities together with their child rows.
// Satisfied by *database.Queries (and its WithTx variant).
type ScheduleStore interface {
	CreateTimeEvent(ctx context.Context, arg database.CreateTimeEventParams) (database.TimeEvent, error)
	UpdateTimeEvent(ctx context.Context, arg database.UpdateTimeEventParams) (database.TimeEvent, error)
	CreateTimeEventWindow(ctx context.Context, arg database.CreateTimeEventWindowParams) error
	DeleteTimeEventWindows(ctx context.Context, eventID uuid.UUID) error
	ListTimeEventWindows(ctx context.Context, eventID uuid.UUID) ([]database.TimeEventWindow, error)
	CreateAvailability(ctx context.Context, arg database.CreateAvailabilityParams) (database.Availability, error)
	UpdateAvailability(ctx context.Context, arg database.UpdateAvailabilityParams) (database.Availability, error)
	CreateAvailabilityRow(ctx context.Context, arg database.CreateAvailabilityRowParams) (database.AvailabilityRow, error)
	DeleteAvailabilityRows(ctx context.Context, availabilityID uuid.UUID) error
}

// NewScheduleStore creates a ScheduleStore from a DBTX (pool or tx).
type NewScheduleStore func(db database.DBTX) ScheduleStore

// EventInput is an event as submitted by a client. An empty Code gets a
// generated one.
type EventInput struct {
	Code            string
	Name            string
	Active          bool
	StartDate       string
	EndDate         string
	Windows         []WindowInput
	AmountAdd       *decimal.Decimal
	AmountDiscount  *decimal.Decimal
	PercentAdd      *decimal.Decimal
	PercentDiscount *decimal.Decimal
}

// WindowInput is one day's time window. Day may be ALL_DAYS.
type WindowInput struct {
	Day   string
	Start string
	End   string
}

// RowInput is one availability row. Empty Start and End mean all day.
type RowInput struct {
	Day   string
	Start string
	End   string
}

type AvailabilityInput struct {
	Name   string
	Active bool
	Rows   []RowInput
}

type EventResult struct {
	Event   database.TimeEvent
	Windows []database.TimeEventWindow
}

type AvailabilityResult struct {
	Availability database.Availability
	Rows         []database.AvailabilityRow
}

// ScheduleService writes TimeEvents and Availabilities atomically with their
// windows and rows.
type ScheduleService struct {
	pool     TxBeginner
	newStore NewScheduleStore
}

func NewScheduleService(pool TxBeginner, newStore NewScheduleStore) *ScheduleService {
	return &ScheduleService{pool: pool, newStore: newStore}
}

// validEvent is an EventInput that passed the rule checks, ready to store.
type validEvent struct {
	code    string
	name    string
	active  bool
	start   pgtype.Date
	end     pgtype.Date
	windows []database.CreateTimeEventWindowParams
	adj     [4]pgtype.Numeric
}

// ValidateEvent checks an event against the same rules the resolver relies
// on and returns it normalized.
func ValidateEvent(in EventInput) (pricing.TimeEvent, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		code = cuid.New()
	}
	ev, err := pricing.NewTimeEvent(code, in.Name)
	if err != nil {
		return pricing.TimeEvent{}, err
	}
	ev = ev.WithActive(in.Active)

	var r pricing.DateRange
	if in.StartDate != "" {
		d, err := pricing.ParseDate(in.StartDate)
		if err != nil {
			return pricing.TimeEvent{}, fmt.Errorf("start_date: %w", err)
		}
		r.From = &d
	}
	if in.EndDate != "" {
		d, err := pricing.ParseDate(in.EndDate)
		if err != nil {
			return pricing.TimeEvent{}, fmt.Errorf("end_date: %w", err)
		}
		r.To = &d
	}
	if ev, err = ev.WithDates(r); err != nil {
		return pricing.TimeEvent{}, err
	}

	var seen [7]bool
	for i, w := range in.Windows {
		day, all, err := pricing.ParseDay(w.Day)
		if err != nil {
			return pricing.TimeEvent{}, fmt.Errorf("windows[%d]: %w", i, err)
		}
		win, err := pricing.NewWindow(w.Start, w.End)
		if err != nil {
			return pricing.TimeEvent{}, fmt.Errorf("windows[%d]: %w", i, err)
		}
		days := []time.Weekday{day}
		if all {
			days = []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}
		}
		for _, d := range days {
			if seen[d] {
				return pricing.TimeEvent{}, fmt.Errorf("windows[%d]: %w: %s", i, ErrDuplicateWindowDay, d)
			}
			seen[d] = true
			if ev, err = ev.WithWindow(d, win); err != nil {
				return pricing.TimeEvent{}, fmt.Errorf("windows[%d]: %w", i, err)
			}
		}
	}

	return ev.WithAdjustment(pricing.AdjustmentSet{
		AmountAdd:       in.AmountAdd,
		AmountDiscount:  in.AmountDiscount,
		PercentAdd:      in.PercentAdd,
		PercentDiscount: in.PercentDiscount,
	})
}

func toValidEvent(ev pricing.TimeEvent) validEvent {
	v := validEvent{code: ev.Code, name: ev.Name, active: ev.Active}
	if ev.Dates.From != nil {
		v.start = pgtype.Date{Time: ev.Dates.From.Time(), Valid: true}
	}
	if ev.Dates.To != nil {
		v.end = pgtype.Date{Time: ev.Dates.To.Time(), Valid: true}
	}
	for day, w := range ev.Windows {
		if w.IsZero() {
			continue
		}
		v.windows = append(v.windows, database.CreateTimeEventWindowParams{
			DayOfWeek: int16(day),
			StartTime: w.Start.String(),
			EndTime:   w.End.String(),
		})
	}
	a := ev.Adjustment
	v.adj = [4]pgtype.Numeric{
		decimalToNumeric(a.AmountAdd),
		decimalToNumeric(a.AmountDiscount),
		decimalToNumeric(a.PercentAdd),
		decimalToNumeric(a.PercentDiscount),
	}
	return v
}

// CreateEvent validates and stores a new event with its windows.
func (s *ScheduleService) CreateEvent(ctx context.Context, outletID uuid.UUID, in EventInput) (*EventResult, error) {
	ev, err := ValidateEvent(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	v := toValidEvent(ev)

	var result *EventResult
	err = s.inTx(ctx, func(store ScheduleStore) error {
		created, err := store.CreateTimeEvent(ctx, database.CreateTimeEventParams{
			OutletID:        outletID,
			Code:            v.code,
			Name:            v.name,
			IsActive:        v.active,
			StartDate:       v.start,
			EndDate:         v.end,
			AmountAdd:       v.adj[0],
			AmountDiscount:  v.adj[1],
			PercentAdd:      v.adj[2],
			PercentDiscount: v.adj[3],
		})
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		windows, err := writeWindows(ctx, store, created.ID, v.windows)
		if err != nil {
			return err
		}
		result = &EventResult{Event: created, Windows: windows}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateEvent replaces an event and all of its windows.
func (s *ScheduleService) UpdateEvent(ctx context.Context, outletID, eventID uuid.UUID, in EventInput) (*EventResult, error) {
	ev, err := ValidateEvent(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	v := toValidEvent(ev)

	var result *EventResult
	err = s.inTx(ctx, func(store ScheduleStore) error {
		updated, err := store.UpdateTimeEvent(ctx, database.UpdateTimeEventParams{
			Code:            v.code,
			Name:            v.name,
			IsActive:        v.active,
			StartDate:       v.start,
			EndDate:         v.end,
			AmountAdd:       v.adj[0],
			AmountDiscount:  v.adj[1],
			PercentAdd:      v.adj[2],
			PercentDiscount: v.adj[3],
			ID:              eventID,
			OutletID:        outletID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrEventNotFound
			}
			return fmt.Errorf("update event: %w", err)
		}
		if err := store.DeleteTimeEventWindows(ctx, eventID); err != nil {
			return fmt.Errorf("delete windows: %w", err)
		}
		windows, err := writeWindows(ctx, store, eventID, v.windows)
		if err != nil {
			return err
		}
		result = &EventResult{Event: updated, Windows: windows}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func writeWindows(ctx context.Context, store ScheduleStore, eventID uuid.UUID, windows []database.CreateTimeEventWindowParams) ([]database.TimeEventWindow, error) {
	out := make([]database.TimeEventWindow, 0, len(windows))
	for _, w := range windows {
		w.EventID = eventID
		if err := store.CreateTimeEventWindow(ctx, w); err != nil {
			return nil, fmt.Errorf("create window %s: %w", time.Weekday(w.DayOfWeek), err)
		}
		out = append(out, database.TimeEventWindow{EventID: eventID, DayOfWeek: w.DayOfWeek, StartTime: w.StartTime, EndTime: w.EndTime})
	}
	return out, nil
}

// ValidateAvailability checks the rows and returns them normalized.
func ValidateAvailability(in AvailabilityInput) ([]database.CreateAvailabilityRowParams, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name is required")
	}
	rows := make([]pricing.ScheduleRow, 0, len(in.Rows))
	params := make([]database.CreateAvailabilityRowParams, 0, len(in.Rows))
	for i, r := range in.Rows {
		if (r.Start == "") != (r.End == "") {
			return nil, fmt.Errorf("rows[%d]: start_time and end_time must both be set or both be empty", i)
		}
		row, err := compileRow(SnapRow{Day: r.Day, Start: r.Start, End: r.End})
		if err != nil {
			return nil, fmt.Errorf("rows[%d]: %w", i, err)
		}
		rows = append(rows, row)

		p := database.CreateAvailabilityRowParams{Day: row.DayName(), SortOrder: int32(i)}
		if !row.AllTimes {
			p.StartTime = pgtype.Text{String: row.Window.Start.String(), Valid: true}
			p.EndTime = pgtype.Text{String: row.Window.End.String(), Valid: true}
		}
		params = append(params, p)
	}
	if _, err := pricing.NewAvailability(in.Name, rows); err != nil {
		return nil, err
	}
	return params, nil
}

// CreateAvailability validates and stores an availability with its rows.
func (s *ScheduleService) CreateAvailability(ctx context.Context, outletID uuid.UUID, in AvailabilityInput) (*AvailabilityResult, error) {
	params, err := ValidateAvailability(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAvailability, err)
	}

	var result *AvailabilityResult
	err = s.inTx(ctx, func(store ScheduleStore) error {
		created, err := store.CreateAvailability(ctx, database.CreateAvailabilityParams{
			OutletID: outletID,
			Name:     strings.TrimSpace(in.Name),
			IsActive: in.Active,
		})
		if err != nil {
			return fmt.Errorf("create availability: %w", err)
		}
		rows, err := writeRows(ctx, store, created.ID, params)
		if err != nil {
			return err
		}
		result = &AvailabilityResult{Availability: created, Rows: rows}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateAvailability replaces an availability and all of its rows.
func (s *ScheduleService) UpdateAvailability(ctx context.Context, outletID, availabilityID uuid.UUID, in AvailabilityInput) (*AvailabilityResult, error) {
	params, err := ValidateAvailability(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAvailability, err)
	}

	var result *AvailabilityResult
	err = s.inTx(ctx, func(store ScheduleStore) error {
		updated, err := store.UpdateAvailability(ctx, database.UpdateAvailabilityParams{
			Name:     strings.TrimSpace(in.Name),
			IsActive: in.Active,
			ID:       availabilityID,
			OutletID: outletID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrAvailabilityMissing
			}
			return fmt.Errorf("update availability: %w", err)
		}
		if err := store.DeleteAvailabilityRows(ctx, availabilityID); err != nil {
			return fmt.Errorf("delete rows: %w", err)
		}
		rows, err := writeRows(ctx, store, availabilityID, params)
		if err != nil {
			return err
		}
		result = &AvailabilityResult{Availability: updated, Rows: rows}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func writeRows(ctx context.Context, store ScheduleStore, availabilityID uuid.UUID, params []database.CreateAvailabilityRowParams) ([]database.AvailabilityRow, error) {
	out := make([]database.AvailabilityRow, 0, len(params))
	for i, p := range params {
		p.AvailabilityID = availabilityID
		row, err := store.CreateAvailabilityRow(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("create row %d: %w", i, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *ScheduleService) inTx(ctx context.Context, fn func(store ScheduleStore) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(s.newStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
