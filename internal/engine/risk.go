package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

const (
	heavyDayMinutes    = 540
	minRestMinutes     = 600
	nightStartsMinute  = 20 * 60
	nightEndsMinute    = 6 * 60
	driverPointsCutoff = 5.0
)

// TimeOff is an approved-or-not absence spanning Start..End inclusive.
type TimeOff struct {
	EmployeeID int
	Type       string
	Status     string
	Start      time.Time
	End        time.Time
}

// RiskFactors describe the shape of one employee's week.
type RiskFactors struct {
	WeeklyMinutes         int     `json:"weeklyMinutes"`
	RestViolations        int     `json:"restViolations"`
	MaxHeavyStreak        int     `json:"maxHeavyStreak"`
	NightSequences        int     `json:"nightSequences"`
	StartVariabilityHours float64 `json:"startVariabilityHours"`
	WeekendMinutes        int     `json:"weekendMinutes"`
}

func (f RiskFactors) WeeklyHours() float64  { return float64(f.WeeklyMinutes) / 60 }
func (f RiskFactors) WeekendHours() float64 { return float64(f.WeekendMinutes) / 60 }

// CrisisExposure counts the employee's slots that sit in under-staffed
// buckets of the crisis department grid.
type CrisisExposure struct {
	CriticalSlots int `json:"criticalSlots"`
	WarnSlots     int `json:"warnSlots"`
}

type RiskRecord struct {
	EmployeeID     int                `json:"employeeId"`
	Name           string             `json:"name"`
	Department     string             `json:"department"`
	Supervisor     string             `json:"supervisor"`
	Factors        RiskFactors        `json:"factors"`
	Score          int                `json:"riskScore"`
	Level          RiskLevel          `json:"riskLevel"`
	Drivers        []string           `json:"drivers"`
	Narrative      string             `json:"narrative"`
	PTODates       []string           `json:"ptoDates"`
	TimeOffHistory map[string]int     `json:"timeOffHistory"`
	CrisisExposure *CrisisExposure    `json:"crisisExposure,omitempty"`
	Breakdown      map[string]float64 `json:"breakdown"`
}

// Scoring terms in their fixed evaluation order.
type riskTerm struct {
	key    string
	metric func(RiskFactors) float64
	cap    float64
	weight float64
	label  func(RiskFactors) string
}

var riskTerms = []riskTerm{
	{
		key:    "weekly_hours",
		metric: func(f RiskFactors) float64 { return f.WeeklyHours() - 40 },
		cap:    20,
		weight: 30,
		label:  func(f RiskFactors) string { return fmt.Sprintf("%.1f scheduled hours this week", f.WeeklyHours()) },
	},
	{
		key:    "rest_violations",
		metric: func(f RiskFactors) float64 { return float64(f.RestViolations) },
		cap:    3,
		weight: 25,
		label:  func(f RiskFactors) string { return fmt.Sprintf("%d turnaround(s) with under 10h rest", f.RestViolations) },
	},
	{
		key:    "heavy_streak",
		metric: func(f RiskFactors) float64 { return float64(f.MaxHeavyStreak) },
		cap:    4,
		weight: 20,
		label:  func(f RiskFactors) string { return fmt.Sprintf("%d consecutive 9h+ days", f.MaxHeavyStreak) },
	},
	{
		key:    "night_sequences",
		metric: func(f RiskFactors) float64 { return float64(f.NightSequences) },
		cap:    3,
		weight: 15,
		label:  func(f RiskFactors) string { return fmt.Sprintf("%d separate night-shift stretch(es)", f.NightSequences) },
	},
	{
		key:    "start_variability",
		metric: func(f RiskFactors) float64 { return f.StartVariabilityHours },
		cap:    6,
		weight: 10,
		label:  func(f RiskFactors) string { return fmt.Sprintf("start times swinging by %.1fh", f.StartVariabilityHours) },
	},
	{
		key:    "weekend_hours",
		metric: func(f RiskFactors) float64 { return f.WeekendHours() },
		cap:    12,
		weight: 10,
		label:  func(f RiskFactors) string { return fmt.Sprintf("%.1f weekend hours", f.WeekendHours()) },
	},
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RiskScorer scores a snapshot of staff for one week. CrisisDepartment, when
// set, receives coverage exposure tallies.
type RiskScorer struct {
	CrisisDepartment string
}

// ScoreAll returns a record for every employee with a schedule, in load
// order. timeOff may hold requests of any employee and status.
func (r RiskScorer) ScoreAll(week Week, staff []Staff, timeOff []TimeOff) []RiskRecord {
	var crisis *Coverage
	if r.CrisisDepartment != "" {
		grid := BuildCoverage(r.CrisisDepartment, staff)
		crisis = &grid
	}

	byEmployee := make(map[int][]TimeOff)
	for _, t := range timeOff {
		byEmployee[t.EmployeeID] = append(byEmployee[t.EmployeeID], t)
	}

	records := []RiskRecord{}
	for _, s := range staff {
		if !s.HasSchedule {
			continue
		}
		var grid *Coverage
		if crisis != nil && s.Department == r.CrisisDepartment {
			grid = crisis
		}
		records = append(records, ScoreEmployee(s, week, byEmployee[s.ID], grid))
	}
	return records
}

// ScoreEmployee computes factors, score, level, drivers and narrative for
// one employee. crisis is nil unless the employee belongs to the crisis
// department.
func ScoreEmployee(s Staff, week Week, timeOff []TimeOff, crisis *Coverage) RiskRecord {
	factors := ComputeFactors(s)

	record := RiskRecord{
		EmployeeID:     s.ID,
		Name:           s.Name,
		Department:     s.Department,
		Supervisor:     s.Supervisor,
		Factors:        factors,
		PTODates:       PTODatesInWeek(week, timeOff),
		TimeOffHistory: timeOffHistory(timeOff),
		Drivers:        []string{},
	}

	score, breakdown := ScoreFactors(factors)
	record.Score = score
	record.Level = LevelFor(score)
	record.Breakdown = breakdown

	type scored struct {
		label  string
		points float64
	}
	var drivers []scored
	for _, term := range riskTerms {
		if points := breakdown[term.key]; points >= driverPointsCutoff {
			label := term.label(factors)
			record.Drivers = append(record.Drivers, label)
			drivers = append(drivers, scored{label: label, points: points})
		}
	}

	sort.SliceStable(drivers, func(i, j int) bool { return drivers[i].points > drivers[j].points })
	top := make([]string, 0, len(drivers))
	for _, d := range drivers {
		top = append(top, d.label)
	}
	record.Narrative = narrative(s.Name, record.Score, record.Level, top)

	if crisis != nil {
		exposure := crisisExposure(s, *crisis)
		record.CrisisExposure = &exposure
	}

	return record
}

// ScoreFactors sums each term's clamped share of its weight and rounds the
// total into [0, 100]. The breakdown holds every term's points.
func ScoreFactors(f RiskFactors) (int, map[string]float64) {
	breakdown := make(map[string]float64, len(riskTerms))
	total := 0.0
	for _, term := range riskTerms {
		points := clamp01(term.metric(f)/term.cap) * term.weight
		breakdown[term.key] = points
		total += points
	}
	return int(math.Round(math.Max(0, math.Min(100, total)))), breakdown
}

func LevelFor(score int) RiskLevel {
	switch {
	case score < 35:
		return RiskLow
	case score < 60:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// ComputeFactors walks the week Saturday through Friday.
func ComputeFactors(s Staff) RiskFactors {
	var (
		f            RiskFactors
		heavyStreak  int
		prevNight    bool
		starts       []float64
		prev         Window
		prevHasShift bool
	)

	for _, day := range Days {
		w, ok := s.Window(day)
		if !ok {
			heavyStreak = 0
			prevNight = false
			prevHasShift = false
			continue
		}

		duration := w.Duration()
		f.WeeklyMinutes += duration
		if day.Weekend() {
			f.WeekendMinutes += duration
		}

		if duration >= heavyDayMinutes {
			heavyStreak++
			f.MaxHeavyStreak = max(f.MaxHeavyStreak, heavyStreak)
		} else {
			heavyStreak = 0
		}

		night := isNightShift(w)
		if night && !prevNight {
			f.NightSequences++
		}
		prevNight = night

		starts = append(starts, float64(w.Start))

		if prevHasShift && restGap(prev, w) < minRestMinutes {
			f.RestViolations++
		}
		prev, prevHasShift = w, true
	}

	f.StartVariabilityHours = sampleStdDev(starts) / 60
	return f
}

// restGap is the time between prev ending and next starting on the
// following day. prev.End keeps its overnight wrap so a 9p-9a shift
// followed by a 9a start leaves no rest.
func restGap(prev, next Window) int {
	return MinutesPerDay - prev.End + next.Start%MinutesPerDay
}

// isNightShift reports whether the window touches 20:00-06:00.
func isNightShift(w Window) bool {
	if w.End > MinutesPerDay {
		return true
	}
	start, end := w.Start%MinutesPerDay, w.End%MinutesPerDay
	return start >= nightStartsMinute || start <= nightEndsMinute ||
		end >= nightStartsMinute || end <= nightEndsMinute
}

func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

// PTODatesInWeek lists, sorted and deduplicated, the ISO dates of the week
// covered by approved time off.
func PTODatesInWeek(week Week, timeOff []TimeOff) []string {
	seen := make(map[string]bool)
	dates := []string{}
	for _, t := range timeOff {
		if t.Status != "approved" {
			continue
		}
		for _, day := range Days {
			date := week.Date(day)
			if date.Before(dateOnly(t.Start, date.Location())) || date.After(dateOnly(t.End, date.Location())) {
				continue
			}
			iso := date.Format(isoDate)
			if !seen[iso] {
				seen[iso] = true
				dates = append(dates, iso)
			}
		}
	}
	sort.Strings(dates)
	return dates
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// timeOffHistory counts approved requests per type across all time.
func timeOffHistory(timeOff []TimeOff) map[string]int {
	history := map[string]int{"sick": 0, "vacation": 0, "pto": 0}
	for _, t := range timeOff {
		if t.Status == "approved" {
			history[strings.ToLower(t.Type)]++
		}
	}
	return history
}

func crisisExposure(s Staff, grid Coverage) CrisisExposure {
	var exposure CrisisExposure
	for _, day := range Days {
		w, ok := s.Window(day)
		if !ok {
			continue
		}
		start, end := SlotRange(w)
		for slot := start; slot < end; slot++ {
			switch level := grid.Days[day][slot]; {
			case level < CriticalTarget:
				exposure.CriticalSlots++
			case level < WarnTarget:
				exposure.WarnSlots++
			}
		}
	}
	return exposure
}

func narrative(name string, score int, level RiskLevel, drivers []string) string {
	if name == "" {
		name = "This employee"
	}

	switch level {
	case RiskHigh:
		return fmt.Sprintf("%s is at high burnout risk (score %d), driven by %s.",
			name, score, joinDrivers(drivers, 3, "an unusually heavy week"))
	case RiskMedium:
		return fmt.Sprintf("%s shows moderate burnout risk (score %d), mainly from %s.",
			name, score, joinDrivers(drivers, 2, "a generally busy week"))
	default:
		if len(drivers) == 0 {
			return fmt.Sprintf("%s is at low burnout risk (score %d) with a sustainable week.", name, score)
		}
		return fmt.Sprintf("%s is at low burnout risk (score %d); keep an eye on %s.",
			name, score, joinDrivers(drivers, 2, ""))
	}
}

func joinDrivers(drivers []string, limit int, fallback string) string {
	if len(drivers) == 0 {
		return fallback
	}
	if len(drivers) > limit {
		drivers = drivers[:limit]
	}
	switch len(drivers) {
	case 1:
		return drivers[0]
	case 2:
		return drivers[0] + " and " + drivers[1]
	default:
		return strings.Join(drivers[:len(drivers)-1], ", ") + " and " + drivers[len(drivers)-1]
	}
}
