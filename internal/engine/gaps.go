package engine

import "encoding/json"

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarn     Severity = "warn"
)

const (
	CriticalTarget = 2
	WarnTarget     = 3
)

// Candidate caps used by the boundary operations. Unlimited scans the whole
// department.
const (
	DetailCandidateCap  = 3
	PreviewCandidateCap = 5
	FirstMatchOnly      = 1
	Unlimited           = 0
)

type Candidate struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GapRun is a maximal span of slots [StartSlot, EndSlot) on one day whose
// coverage stays below Target. Severity is fixed by the first slot.
type GapRun struct {
	Day        DayKey      `json:"day"`
	StartSlot  int         `json:"startSlot"`
	EndSlot    int         `json:"endSlot"`
	Severity   Severity    `json:"severity"`
	Target     int         `json:"target"`
	Current    int         `json:"current"`
	Candidates []Candidate `json:"candidates"`
}

func (g GapRun) StartMinute() int { return g.StartSlot * SlotMinutes }
func (g GapRun) EndMinute() int   { return g.EndSlot * SlotMinutes }
func (g GapRun) From() string     { return FormatSlot(g.StartSlot) }
func (g GapRun) To() string       { return FormatSlot(g.EndSlot) }

// MarshalJSON adds the run's 12-hour from/to tokens.
func (g GapRun) MarshalJSON() ([]byte, error) {
	type plain GapRun
	return json.Marshal(struct {
		plain
		From string `json:"from"`
		To   string `json:"to"`
	}{plain(g), g.From(), g.To()})
}

// FindDayGaps scans one day left to right. A slot at or above WarnTarget is
// healthy; otherwise a run opens with a target chosen by that slot and
// extends until a slot meets the target.
func FindDayGaps(day DayKey, slots DayCoverage) []GapRun {
	var runs []GapRun
	for s := 0; s < SlotsPerDay; {
		if slots[s] >= WarnTarget {
			s++
			continue
		}

		run := GapRun{Day: day, StartSlot: s, Current: slots[s], Severity: SeverityWarn, Target: WarnTarget}
		if slots[s] < CriticalTarget {
			run.Severity = SeverityCritical
			run.Target = CriticalTarget
		}

		for s < SlotsPerDay && slots[s] < run.Target {
			s++
		}
		run.EndSlot = s
		runs = append(runs, run)
	}
	return runs
}

// FindGaps returns the gap runs of every day of the grid.
func FindGaps(c Coverage) map[DayKey][]GapRun {
	gaps := make(map[DayKey][]GapRun, DaysPerWeek)
	for _, day := range Days {
		gaps[day] = FindDayGaps(day, c.Days[day])
	}
	return gaps
}

// FreeCandidates scans members in load order and returns up to limit of
// those free for the whole run. limit <= 0 means no cap.
func FreeCandidates(run GapRun, members []Staff, limit int) []Candidate {
	candidates := []Candidate{}
	for _, s := range members {
		if limit > 0 && len(candidates) >= limit {
			break
		}
		if FreeDuring(s.Shift(run.Day), run.StartMinute(), run.EndMinute()) {
			candidates = append(candidates, Candidate{ID: s.ID, Name: s.Name})
		}
	}
	return candidates
}

// DetailedGaps finds the gaps of department and attaches up to limit free
// candidates from that department to each run.
func DetailedGaps(department string, staff []Staff, limit int) map[DayKey][]GapRun {
	members := InDepartment(department, staff)
	gaps := FindGaps(BuildCoverage(department, members))
	for day, runs := range gaps {
		for i := range runs {
			runs[i].Candidates = FreeCandidates(runs[i], members, limit)
		}
		gaps[day] = runs
	}
	return gaps
}

// PreviewRow is a gap run flattened for display, with 12-hour time tokens.
type PreviewRow struct {
	Department string      `json:"department"`
	DayKey     DayKey      `json:"dayKey"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	Needed     int         `json:"needed"`
	Current    int         `json:"current"`
	Severity   Severity    `json:"severity"`
	Candidates []Candidate `json:"candidates"`
}

// PreviewCoverageSuggestions lists every gap run of department in day order.
func PreviewCoverageSuggestions(department string, staff []Staff) []PreviewRow {
	gaps := DetailedGaps(department, staff, PreviewCandidateCap)
	rows := []PreviewRow{}
	for _, day := range Days {
		for _, run := range gaps[day] {
			rows = append(rows, PreviewRow{
				Department: department,
				DayKey:     day,
				From:       run.From(),
				To:         run.To(),
				Needed:     run.Target,
				Current:    run.Current,
				Severity:   run.Severity,
				Candidates: run.Candidates,
			})
		}
	}
	return rows
}
