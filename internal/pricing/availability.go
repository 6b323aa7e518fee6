package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDay = errors.New("day must be a weekday name or ALL_DAYS")

// AllDays is the day sentinel matching every weekday.
const AllDays = "ALL_DAYS"

// ScheduleRow is one line of an availability schedule. A row matches every
// weekday when AllDays is set and every time of day when AllTimes is set.
type ScheduleRow struct {
	AllDays  bool
	Day      time.Weekday
	AllTimes bool
	Window   Window
}

// ParseDay parses a weekday name ("MONDAY", "monday", "Mon") or ALL_DAYS.
// allDays is true for the sentinel.
func ParseDay(s string) (day time.Weekday, allDays bool, err error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == AllDays || v == "ALLDAYS" {
		return 0, true, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToUpper(d.String())
		if v == name || v == name[:3] {
			return d, false, nil
		}
	}
	return 0, false, fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

// DayName renders a row's day the way it is stored.
func (r ScheduleRow) DayName() string {
	if r.AllDays {
		return AllDays
	}
	return strings.ToUpper(r.Day.String())
}

// Matches reports whether the row covers now.
func (r ScheduleRow) Matches(now time.Time) bool {
	if !r.AllDays && r.Day != now.Weekday() {
		return false
	}
	if r.AllTimes {
		return true
	}
	return r.Window.Contains(ClockOf(now))
}

// Availability is a named gate. An item linked to an active availability is
// orderable only while one of its rows matches.
type Availability struct {
	Name   string
	Active bool
	Rows   []ScheduleRow
}

// NewAvailability validates rows: timed rows need a proper window.
func NewAvailability(name string, rows []ScheduleRow) (Availability, error) {
	if strings.TrimSpace(name) == "" {
		return Availability{}, errors.New("availability name is required")
	}
	for i, r := range rows {
		if r.AllTimes {
			continue
		}
		if r.Window.Start >= r.Window.End {
			return Availability{}, fmt.Errorf("rows[%d]: %w", i, ErrInvalidWindow)
		}
	}
	cp := make([]ScheduleRow, len(rows))
	copy(cp, rows)
	return Availability{Name: name, Active: true, Rows: cp}, nil
}

// Allows reports whether the gate is open at now. Inactive availabilities
// never gate.
func (a Availability) Allows(now time.Time) bool {
	if !a.Active {
		return true
	}
	for _, r := range a.Rows {
		if r.Matches(now) {
			return true
		}
	}
	return false
}
