package engine

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinutesPerDay = 1440
	SlotMinutes   = 30
	SlotsPerDay   = MinutesPerDay / SlotMinutes

	longShiftMinutes = 360
	longShiftBreak   = 45
	shortShiftBreak  = 21
)

// sentinels mark a day without a worked window.
var sentinels = map[string]bool{
	"off":      true,
	"vacation": true,
	"training": true,
}

// Window is a shift's active range in minutes since midnight of the day the
// shift starts. End exceeds MinutesPerDay-1 for overnight shifts and is
// always greater than Start.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (w Window) Duration() int {
	return w.End - w.Start
}

// Overlaps reports whether the half-open ranges [w.Start, w.End) and
// [start, end) intersect.
func (w Window) Overlaps(start, end int) bool {
	return start < w.End && end > w.Start
}

// ParseTimeToken converts tokens like "9a", "12p" or "9:30p" to a minute of
// the day. Malformed tokens yield 0.
func ParseTimeToken(token string) int {
	minute, _ := parseClock(token)
	return minute
}

func parseClock(token string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(token))
	s = strings.TrimSuffix(s, "m")
	if s == "" {
		return 0, false
	}

	pm := false
	switch s[len(s)-1] {
	case 'p':
		pm = true
		s = s[:len(s)-1]
	case 'a':
		s = s[:len(s)-1]
	}

	hourPart, minutePart, hasMinutes := strings.Cut(strings.TrimSpace(s), ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 12 {
		return 0, false
	}

	minute := 0
	if hasMinutes {
		minute, err = strconv.Atoi(minutePart)
		if err != nil || minute < 0 || minute > 59 {
			return 0, false
		}
	}

	switch {
	case hour == 12 && !pm:
		hour = 0
	case hour != 12 && pm:
		hour += 12
	}

	return hour*60 + minute, true
}

// ShiftWindow derives the worked window for a schedule cell. Empty cells,
// sentinels (OFF, VACATION, TRAINING) and malformed ranges have no window.
func ShiftWindow(token string) (Window, bool) {
	s := strings.TrimSpace(token)
	if s == "" || sentinels[strings.ToLower(s)] {
		return Window{}, false
	}

	startToken, endToken, found := strings.Cut(s, "-")
	if !found {
		return Window{}, false
	}

	start, ok := parseClock(startToken)
	if !ok {
		return Window{}, false
	}
	end, ok := parseClock(endToken)
	if !ok {
		return Window{}, false
	}

	if end <= start {
		end += MinutesPerDay
	}

	return Window{Start: start, End: end}, true
}

func ShiftDurationMinutes(token string) int {
	w, ok := ShiftWindow(token)
	if !ok {
		return 0
	}
	return w.Duration()
}

// BreakAllowanceMinutes is 45 minutes for shifts longer than six hours and
// 21 minutes for anything shorter that is still worked.
func BreakAllowanceMinutes(token string) int {
	duration := ShiftDurationMinutes(token)
	switch {
	case duration > longShiftMinutes:
		return longShiftBreak
	case duration > 0:
		return shortShiftBreak
	default:
		return 0
	}
}

// FreeDuring reports whether someone working token is available over
// [probeStart, probeEnd). A day without a window is always free.
func FreeDuring(token string, probeStart, probeEnd int) bool {
	w, ok := ShiftWindow(token)
	if !ok {
		return true
	}
	return !w.Overlaps(probeStart, probeEnd)
}

// FormatMinutes renders a minute offset as a 12-hour token: "9a", "9:30a",
// "12p". Offsets past midnight wrap.
func FormatMinutes(minutes int) string {
	m := ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	hour, minute := m/60, m%60

	meridiem := "a"
	if hour >= 12 {
		meridiem = "p"
	}

	hour %= 12
	if hour == 0 {
		hour = 12
	}

	if minute == 0 {
		return fmt.Sprintf("%d%s", hour, meridiem)
	}
	return fmt.Sprintf("%d:%02d%s", hour, minute, meridiem)
}

func FormatSlot(slot int) string {
	return FormatMinutes(slot * SlotMinutes)
}
