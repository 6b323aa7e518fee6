package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/pricing"
)

type mockBeginner struct {
	tx  *mockTx
	err error
}

func (m *mockBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tx, nil
}

// mockScheduleStore records writes in memory.
type mockScheduleStore struct {
	events         map[uuid.UUID]database.TimeEvent
	windows        map[uuid.UUID][]database.TimeEventWindow
	availabilities map[uuid.UUID]database.Availability
	rows           map[uuid.UUID][]database.AvailabilityRow
	createEventErr error
	windowErr      error
}

func newMockScheduleStore() *mockScheduleStore {
	return &mockScheduleStore{
		events:         make(map[uuid.UUID]database.TimeEvent),
		windows:        make(map[uuid.UUID][]database.TimeEventWindow),
		availabilities: make(map[uuid.UUID]database.Availability),
		rows:           make(map[uuid.UUID][]database.AvailabilityRow),
	}
}

func (m *mockScheduleStore) CreateTimeEvent(_ context.Context, arg database.CreateTimeEventParams) (database.TimeEvent, error) {
	if m.createEventErr != nil {
		return database.TimeEvent{}, m.createEventErr
	}
	e := database.TimeEvent{
		ID: uuid.New(), OutletID: arg.OutletID, Code: arg.Code, Name: arg.Name, IsActive: arg.IsActive,
		StartDate: arg.StartDate, EndDate: arg.EndDate,
		AmountAdd: arg.AmountAdd, AmountDiscount: arg.AmountDiscount,
		PercentAdd: arg.PercentAdd, PercentDiscount: arg.PercentDiscount,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.events[e.ID] = e
	return e, nil
}

func (m *mockScheduleStore) UpdateTimeEvent(_ context.Context, arg database.UpdateTimeEventParams) (database.TimeEvent, error) {
	e, ok := m.events[arg.ID]
	if !ok || e.OutletID != arg.OutletID {
		return database.TimeEvent{}, pgx.ErrNoRows
	}
	e.Code, e.Name, e.IsActive = arg.Code, arg.Name, arg.IsActive
	e.StartDate, e.EndDate = arg.StartDate, arg.EndDate
	e.AmountAdd, e.AmountDiscount, e.PercentAdd, e.PercentDiscount = arg.AmountAdd, arg.AmountDiscount, arg.PercentAdd, arg.PercentDiscount
	m.events[e.ID] = e
	return e, nil
}

func (m *mockScheduleStore) CreateTimeEventWindow(_ context.Context, arg database.CreateTimeEventWindowParams) error {
	if m.windowErr != nil {
		return m.windowErr
	}
	m.windows[arg.EventID] = append(m.windows[arg.EventID], database.TimeEventWindow{
		EventID: arg.EventID, DayOfWeek: arg.DayOfWeek, StartTime: arg.StartTime, EndTime: arg.EndTime,
	})
	return nil
}

func (m *mockScheduleStore) DeleteTimeEventWindows(_ context.Context, eventID uuid.UUID) error {
	delete(m.windows, eventID)
	return nil
}

func (m *mockScheduleStore) ListTimeEventWindows(_ context.Context, eventID uuid.UUID) ([]database.TimeEventWindow, error) {
	return m.windows[eventID], nil
}

func (m *mockScheduleStore) CreateAvailability(_ context.Context, arg database.CreateAvailabilityParams) (database.Availability, error) {
	a := database.Availability{ID: uuid.New(), OutletID: arg.OutletID, Name: arg.Name, IsActive: arg.IsActive, CreatedAt: time.Now()}
	m.availabilities[a.ID] = a
	return a, nil
}

func (m *mockScheduleStore) UpdateAvailability(_ context.Context, arg database.UpdateAvailabilityParams) (database.Availability, error) {
	a, ok := m.availabilities[arg.ID]
	if !ok || a.OutletID != arg.OutletID {
		return database.Availability{}, pgx.ErrNoRows
	}
	a.Name, a.IsActive = arg.Name, arg.IsActive
	m.availabilities[a.ID] = a
	return a, nil
}

func (m *mockScheduleStore) CreateAvailabilityRow(_ context.Context, arg database.CreateAvailabilityRowParams) (database.AvailabilityRow, error) {
	r := database.AvailabilityRow{
		ID: uuid.New(), AvailabilityID: arg.AvailabilityID, Day: arg.Day,
		StartTime: arg.StartTime, EndTime: arg.EndTime, SortOrder: arg.SortOrder,
	}
	m.rows[arg.AvailabilityID] = append(m.rows[arg.AvailabilityID], r)
	return r, nil
}

func (m *mockScheduleStore) DeleteAvailabilityRows(_ context.Context, availabilityID uuid.UUID) error {
	delete(m.rows, availabilityID)
	return nil
}

func newTestScheduleService(store *mockScheduleStore) (*ScheduleService, *mockTx) {
	tx := &mockTx{}
	return NewScheduleService(&mockBeginner{tx: tx}, func(db database.DBTX) ScheduleStore { return store }), tx
}

func happyHourInput() EventInput {
	fifty := dec("50")
	return EventInput{
		Code:           "HAPPY",
		Name:           "Happy Hour",
		Active:         true,
		StartDate:      "2026-10-01",
		EndDate:        "2026-12-31",
		Windows:        []WindowInput{{Day: "MONDAY", Start: "15:00", End: "18:00"}, {Day: "friday", Start: "16:00", End: "24:00"}},
		AmountDiscount: &fifty,
	}
}

func TestCreateEvent_StoresEventAndWindows(t *testing.T) {
	store := newMockScheduleStore()
	svc, tx := newTestScheduleService(store)
	outletID := uuid.New()

	res, err := svc.CreateEvent(context.Background(), outletID, happyHourInput())
	require.NoError(t, err)
	assert.True(t, tx.committed)

	assert.Equal(t, "HAPPY", res.Event.Code)
	assert.Equal(t, outletID, res.Event.OutletID)
	assert.True(t, res.Event.StartDate.Valid)
	assert.Equal(t, "2026-10-01", res.Event.StartDate.Time.Format(time.DateOnly))
	assert.True(t, numericToDecimal(res.Event.AmountDiscount).Equal(dec("50")))
	assert.False(t, res.Event.PercentAdd.Valid)

	require.Len(t, res.Windows, 2)
	assert.Equal(t, int16(time.Monday), res.Windows[0].DayOfWeek)
	assert.Equal(t, "15:00", res.Windows[0].StartTime)
	assert.Equal(t, int16(time.Friday), res.Windows[1].DayOfWeek)
	assert.Equal(t, "24:00", res.Windows[1].EndTime)
	assert.Len(t, store.windows[res.Event.ID], 2)
}

func TestCreateEvent_GeneratesCode(t *testing.T) {
	svc, _ := newTestScheduleService(newMockScheduleStore())
	in := happyHourInput()
	in.Code = "  "

	res, err := svc.CreateEvent(context.Background(), uuid.New(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Event.Code)
}

func TestCreateEvent_AllDaysExpands(t *testing.T) {
	svc, _ := newTestScheduleService(newMockScheduleStore())
	in := happyHourInput()
	in.Windows = []WindowInput{{Day: "ALL_DAYS", Start: "11:00", End: "14:00"}}

	res, err := svc.CreateEvent(context.Background(), uuid.New(), in)
	require.NoError(t, err)
	assert.Len(t, res.Windows, 7)
}

func TestCreateEvent_ValidationErrors(t *testing.T) {
	ten, neg, big := dec("10"), dec("-1"), dec("120")

	tests := []struct {
		name    string
		mutate  func(in *EventInput)
		wantErr error
	}{
		{"two adjustments", func(in *EventInput) { in.PercentAdd = &ten }, pricing.ErrMultipleAdjustments},
		{"negative adjustment", func(in *EventInput) { in.AmountDiscount = &neg }, pricing.ErrNegativeAdjustment},
		{"percent discount over 100", func(in *EventInput) { in.AmountDiscount = nil; in.PercentDiscount = &big }, pricing.ErrPercentTooLarge},
		{"inverted dates", func(in *EventInput) { in.StartDate, in.EndDate = "2026-12-31", "2026-10-01" }, pricing.ErrInvalidRange},
		{"bad date", func(in *EventInput) { in.StartDate = "01/10/2026" }, pricing.ErrInvalidDate},
		{"overnight window", func(in *EventInput) { in.Windows = []WindowInput{{Day: "SATURDAY", Start: "22:00", End: "02:00"}} }, pricing.ErrInvalidWindow},
		{"bad clock", func(in *EventInput) { in.Windows = []WindowInput{{Day: "SATURDAY", Start: "9am", End: "11:00"}} }, pricing.ErrInvalidClock},
		{"bad day", func(in *EventInput) { in.Windows = []WindowInput{{Day: "FUNDAY", Start: "09:00", End: "11:00"}} }, pricing.ErrInvalidDay},
		{"duplicate day", func(in *EventInput) {
			in.Windows = append(in.Windows, WindowInput{Day: "MON", Start: "08:00", End: "09:00"})
		}, ErrDuplicateWindowDay},
		{"missing name", func(in *EventInput) { in.Name = "" }, pricing.ErrEmptyEventName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockScheduleStore()
			svc, _ := newTestScheduleService(store)
			in := happyHourInput()
			tt.mutate(&in)

			_, err := svc.CreateEvent(context.Background(), uuid.New(), in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidEvent)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.events, "nothing should be written")
		})
	}
}

func TestCreateEvent_UniqueViolationPassesThrough(t *testing.T) {
	store := newMockScheduleStore()
	store.createEventErr = &pgconn.PgError{Code: "23505"}
	svc, tx := newTestScheduleService(store)

	_, err := svc.CreateEvent(context.Background(), uuid.New(), happyHourInput())
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23505", pgErr.Code)
	assert.False(t, tx.committed)
}

func TestCreateEvent_WindowErrorRollsBack(t *testing.T) {
	store := newMockScheduleStore()
	store.windowErr = errors.New("boom")
	svc, tx := newTestScheduleService(store)

	_, err := svc.CreateEvent(context.Background(), uuid.New(), happyHourInput())
	require.Error(t, err)
	assert.False(t, tx.committed)
}

func TestUpdateEvent_ReplacesWindows(t *testing.T) {
	store := newMockScheduleStore()
	svc, _ := newTestScheduleService(store)
	outletID := uuid.New()

	created, err := svc.CreateEvent(context.Background(), outletID, happyHourInput())
	require.NoError(t, err)

	in := happyHourInput()
	in.Windows = []WindowInput{{Day: "SUNDAY", Start: "10:00", End: "12:00"}}
	updated, err := svc.UpdateEvent(context.Background(), outletID, created.Event.ID, in)
	require.NoError(t, err)

	require.Len(t, store.windows[created.Event.ID], 1)
	assert.Equal(t, int16(time.Sunday), store.windows[created.Event.ID][0].DayOfWeek)
	assert.Len(t, updated.Windows, 1)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	svc, _ := newTestScheduleService(newMockScheduleStore())

	_, err := svc.UpdateEvent(context.Background(), uuid.New(), uuid.New(), happyHourInput())
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCreateAvailability_StoresRows(t *testing.T) {
	store := newMockScheduleStore()
	svc, tx := newTestScheduleService(store)

	res, err := svc.CreateAvailability(context.Background(), uuid.New(), AvailabilityInput{
		Name:   " Breakfast ",
		Active: true,
		Rows: []RowInput{
			{Day: "mon", Start: "06:00", End: "10:00"},
			{Day: "ALL_DAYS"},
		},
	})
	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.Equal(t, "Breakfast", res.Availability.Name)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, "MONDAY", res.Rows[0].Day)
	assert.Equal(t, "06:00", res.Rows[0].StartTime.String)
	assert.Equal(t, "ALL_DAYS", res.Rows[1].Day)
	assert.False(t, res.Rows[1].StartTime.Valid)
	assert.Equal(t, int32(1), res.Rows[1].SortOrder)
}

func TestCreateAvailability_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		in   AvailabilityInput
	}{
		{"missing name", AvailabilityInput{Rows: []RowInput{{Day: "MONDAY"}}}},
		{"half window", AvailabilityInput{Name: "x", Rows: []RowInput{{Day: "MONDAY", Start: "09:00"}}}},
		{"inverted window", AvailabilityInput{Name: "x", Rows: []RowInput{{Day: "MONDAY", Start: "10:00", End: "09:00"}}}},
		{"bad day", AvailabilityInput{Name: "x", Rows: []RowInput{{Day: "HOLIDAY"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockScheduleStore()
			svc, _ := newTestScheduleService(store)
			_, err := svc.CreateAvailability(context.Background(), uuid.New(), tt.in)
			assert.ErrorIs(t, err, ErrInvalidAvailability)
			assert.Empty(t, store.availabilities)
		})
	}
}

func TestUpdateAvailability_ReplacesRowsOrNotFound(t *testing.T) {
	store := newMockScheduleStore()
	svc, _ := newTestScheduleService(store)
	outletID := uuid.New()

	created, err := svc.CreateAvailability(context.Background(), outletID, AvailabilityInput{
		Name: "Lunch", Active: true, Rows: []RowInput{{Day: "MONDAY", Start: "11:00", End: "14:00"}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateAvailability(context.Background(), outletID, created.Availability.ID, AvailabilityInput{
		Name: "Lunch", Active: false, Rows: nil,
	})
	require.NoError(t, err)
	assert.Empty(t, store.rows[created.Availability.ID])
	assert.False(t, store.availabilities[created.Availability.ID].IsActive)

	_, err = svc.UpdateAvailability(context.Background(), uuid.New(), created.Availability.ID, AvailabilityInput{Name: "Lunch"})
	assert.ErrorIs(t, err, ErrAvailabilityMissing)
}

func TestScheduleService_BeginError(t *testing.T) {
	svc := NewScheduleService(&mockBeginner{err: errors.New("pool closed")}, func(db database.DBTX) ScheduleStore { return newMockScheduleStore() })

	_, err := svc.CreateAvailability(context.Background(), uuid.New(), AvailabilityInput{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin tx")
}
