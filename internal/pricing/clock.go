package pricing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidClock  = errors.New("time must be HH:MM (24-hour)")
	ErrInvalidWindow = errors.New("start time must be before end time")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
	ErrInvalidRange  = errors.New("start date must not be after end date")
)

// endOfDay is the only value past 23:59 a Clock may hold. It lets a window
// close at midnight without wrapping into the next day.
const endOfDay = 24 * 60

// Clock is a local wall-clock time of day, in minutes since midnight.
type Clock int

// ParseClock parses a 24-hour "HH:MM" string. "24:00" is accepted as the end of day.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock(h*60 + m), nil
}

// MustClock is ParseClock for literals known to be valid. It panics otherwise.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockOf returns the wall-clock time of t in t's own location.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Window is a half-open [Start, End) time-of-day range. The zero Window is
// "absent" and contains nothing.
type Window struct {
	Start Clock
	End   Clock
}

// NewWindow parses and validates a window. Overnight windows (end before
// start) are rejected.
func NewWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	if s >= e {
		return Window{}, fmt.Errorf("%w: %s-%s", ErrInvalidWindow, start, end)
	}
	return Window{Start: s, End: e}, nil
}

// IsZero reports whether the window is absent.
func (w Window) IsZero() bool { return w.Start == 0 && w.End == 0 }

// Contains reports whether c falls in [Start, End). A window whose end is not
// after its start never matches.
func (w Window) Contains(c Clock) bool {
	return w.Start <= c && c < w.End
}

// Date is a calendar date without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// DateRange is an inclusive [From, To] range. A nil bound is unbounded.
type DateRange struct {
	From *Date
	To   *Date
}

// NewDateRange validates that From is not after To when both are set.
func NewDateRange(from, to *Date) (DateRange, error) {
	if from != nil && to != nil && to.Before(*from) {
		return DateRange{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from, to)
	}
	return DateRange{From: from, To: to}, nil
}

// Contains reports whether d lies inside the range.
func (r DateRange) Contains(d Date) bool {
	if r.From != nil && d.Before(*r.From) {
		return false
	}
	if r.To != nil && r.To.Before(d) {
		return false
	}
	return true
}
