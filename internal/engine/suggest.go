package engine

import (
	"fmt"
	"strconv"
)

type SuggestionType string

const (
	CoverageBackfill  SuggestionType = "coverage_backfill"
	BurnoutMitigation SuggestionType = "burnout_mitigation"
)

// Draft is a suggestion before it is persisted by the ledger.
type Draft struct {
	Type        SuggestionType
	Title       string
	Description string
	Day         *DayKey
	StartTime   string
	EndTime     string
	EmployeeID  *int
}

// Key identifies drafts describing the same recommendation.
func (d Draft) Key() string {
	day, employee := "", ""
	if d.Day != nil {
		day = d.Day.String()
	}
	if d.EmployeeID != nil {
		employee = strconv.Itoa(*d.EmployeeID)
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s", d.Type, day, d.StartTime, d.EndTime, employee)
}

// CoverageDrafts proposes one backfill per gap run of department, naming the
// first free member found in load order.
func CoverageDrafts(department string, staff []Staff) []Draft {
	gaps := DetailedGaps(department, staff, FirstMatchOnly)

	var drafts []Draft
	for _, day := range Days {
		for _, run := range gaps[day] {
			draft := Draft{
				Type:      CoverageBackfill,
				Title:     fmt.Sprintf("Backfill %s %s-%s (%s)", day.Title(), run.From(), run.To(), department),
				Day:       &day,
				StartTime: run.From(),
				EndTime:   run.To(),
			}

			status := fmt.Sprintf("Coverage drops to %d (%s, target %d).", run.Current, run.Severity, run.Target)
			if len(run.Candidates) > 0 {
				candidate := run.Candidates[0]
				id := candidate.ID
				draft.EmployeeID = &id
				draft.Description = fmt.Sprintf("%s %s is free and could cover %s-%s.", status, candidate.Name, run.From(), run.To())
			} else {
				draft.Description = fmt.Sprintf("%s Nobody in %s is free for this window; escalate to supervisors.", status, department)
			}
			drafts = append(drafts, draft)
		}
	}
	return drafts
}

var mitigations = map[string]string{
	"weekly_hours":      "Trim scheduled hours back toward 40 this week.",
	"rest_violations":   "Push back the start after a late finish so there are 10 hours of rest.",
	"heavy_streak":      "Break up the run of long days with a shorter shift or a day off.",
	"night_sequences":   "Consolidate night work into a single stretch.",
	"start_variability": "Keep start times consistent across the week.",
	"weekend_hours":     "Rotate weekend coverage to another team member.",
}

// BurnoutDrafts proposes a mitigation for every record at medium or high risk.
func BurnoutDrafts(records []RiskRecord) []Draft {
	var drafts []Draft
	for _, record := range records {
		if record.Level == RiskLow {
			continue
		}

		id := record.EmployeeID
		description := record.Narrative
		if advice, ok := mitigations[topTerm(record)]; ok {
			description += " " + advice
		}

		drafts = append(drafts, Draft{
			Type:        BurnoutMitigation,
			Title:       fmt.Sprintf("Reduce %s risk for %s", record.Level, record.Name),
			Description: description,
			EmployeeID:  &id,
		})
	}
	return drafts
}

func topTerm(record RiskRecord) string {
	best, bestPoints := "", 0.0
	for _, term := range riskTerms {
		if points := record.Breakdown[term.key]; points > bestPoints {
			best, bestPoints = term.key, points
		}
	}
	return best
}
