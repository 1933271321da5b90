// Package engine holds the coverage and workforce risk computations. Every
// function here is a pure function of the staff snapshot it is given, so
// callers may run departments or employees in parallel.
package engine

import (
	"strings"
	"time"
)

// DayKey identifies a day of the Saturday-anchored week.
type DayKey int

const (
	Saturday DayKey = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

const DaysPerWeek = 7

// Days lists the week in schedule order.
var Days = [DaysPerWeek]DayKey{Saturday, Sunday, Monday, Tuesday, Wednesday, Thursday, Friday}

var dayNames = [DaysPerWeek]string{
	"saturday", "sunday", "monday", "tuesday", "wednesday", "thursday", "friday",
}

func (d DayKey) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return dayNames[d]
}

// Title is the capitalised day name used in human-facing text.
func (d DayKey) Title() string {
	name := d.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

func (d DayKey) Valid() bool {
	return d >= Saturday && d <= Friday
}

func (d DayKey) Weekend() bool {
	return d == Saturday || d == Sunday
}

func (d DayKey) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDayKey accepts a day name in any case.
func ParseDayKey(s string) (DayKey, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range dayNames {
		if name == s {
			return DayKey(i), true
		}
	}
	return 0, false
}

// DayKeyOf maps a calendar weekday onto the Saturday-anchored key.
func DayKeyOf(w time.Weekday) DayKey {
	return DayKey((int(w) - int(time.Saturday) + DaysPerWeek) % DaysPerWeek)
}

// Week is the 7-day span from the most recent Saturday through Friday.
type Week struct {
	Start time.Time
	End   time.Time
}

// WeekOf anchors the week containing ref. Start and End are midnights in
// ref's location.
func WeekOf(ref time.Time) Week {
	y, m, d := ref.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
	start := midnight.AddDate(0, 0, -int(DayKeyOf(ref.Weekday())))
	return Week{Start: start, End: start.AddDate(0, 0, DaysPerWeek-1)}
}

func (w Week) Date(day DayKey) time.Time {
	return w.Start.AddDate(0, 0, int(day))
}

const isoDate = "2006-01-02"

func (w Week) StartISO() string {
	return w.Start.Format(isoDate)
}

func (w Week) EndISO() string {
	return w.End.Format(isoDate)
}
