package engine

// DayCoverage counts staff on shift per 30-minute slot; index 0 is 00:00-00:29.
type DayCoverage [SlotsPerDay]int

// Coverage is a department's staffing grid for one week. It is built on
// demand and never stored.
type Coverage struct {
	Department string
	Days       [DaysPerWeek]DayCoverage
}

// SlotRange converts a window to the slots it touches on its start day.
// Time past midnight is not carried into the next day.
func SlotRange(w Window) (int, int) {
	start := clampInt(w.Start/SlotMinutes, 0, SlotsPerDay-1)
	end := clampInt((w.End+SlotMinutes-1)/SlotMinutes, 0, SlotsPerDay)
	return start, end
}

// BuildCoverage counts, for every slot, the members of department whose
// window overlaps it.
func BuildCoverage(department string, staff []Staff) Coverage {
	grid := Coverage{Department: department}
	for _, s := range staff {
		if s.Department != department {
			continue
		}
		for _, day := range Days {
			w, ok := s.Window(day)
			if !ok {
				continue
			}
			start, end := SlotRange(w)
			for slot := start; slot < end; slot++ {
				grid.Days[day][slot]++
			}
		}
	}
	return grid
}

func (c Coverage) Day(day DayKey) DayCoverage {
	if !day.Valid() {
		return DayCoverage{}
	}
	return c.Days[day]
}

// ByDay keys the grid by day name for the wire format.
func (c Coverage) ByDay() map[DayKey][]int {
	out := make(map[DayKey][]int, DaysPerWeek)
	for _, day := range Days {
		slots := c.Days[day]
		out[day] = append([]int(nil), slots[:]...)
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
