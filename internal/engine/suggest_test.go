package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverageDrafts_FirstMatchOnly(t *testing.T) {
	var staff []Staff
	for id := 1; id <= 3; id++ {
		staff = append(staff, member(id, []string{"", "Ana", "Ben", "Cy"}[id], "Crisis Line", everyDay("12a-12a")))
	}
	staff[2].Shifts[Monday] = "12a-9a"

	drafts := CoverageDrafts("Crisis Line", staff)

	require.Len(t, drafts, 1)
	draft := drafts[0]
	assert.Equal(t, CoverageBackfill, draft.Type)
	require.NotNil(t, draft.Day)
	assert.Equal(t, Monday, *draft.Day)
	assert.Equal(t, "9a", draft.StartTime)
	assert.Equal(t, "12a", draft.EndTime)
	require.NotNil(t, draft.EmployeeID)
	assert.Equal(t, 3, *draft.EmployeeID)
	assert.Equal(t, "Backfill Monday 9a-12a (Crisis Line)", draft.Title)
	assert.Contains(t, draft.Description, "Cy is free")
}

func TestCoverageDrafts_NoCandidate(t *testing.T) {
	staff := []Staff{member(1, "Ana", "Crisis Line", everyDay("12a-12a"))}

	drafts := CoverageDrafts("Crisis Line", staff)

	require.Len(t, drafts, DaysPerWeek)
	assert.Nil(t, drafts[0].EmployeeID)
	assert.Contains(t, drafts[0].Description, "Nobody in Crisis Line is free")
}

func TestBurnoutDrafts(t *testing.T) {
	records := []RiskRecord{
		ScoreEmployee(member(1, "Ana", "Crisis Line", weekdays("9a-5p")), testWeek, nil, nil),
		ScoreEmployee(member(2, "Ben", "Crisis Line", everyDay("8a-8p")), testWeek, nil, nil),
	}

	drafts := BurnoutDrafts(records)

	require.Len(t, drafts, 1)
	assert.Equal(t, BurnoutMitigation, drafts[0].Type)
	assert.Equal(t, "Reduce high risk for Ben", drafts[0].Title)
	assert.Nil(t, drafts[0].Day)
	require.NotNil(t, drafts[0].EmployeeID)
	assert.Equal(t, 2, *drafts[0].EmployeeID)
	assert.Contains(t, drafts[0].Description, "Trim scheduled hours back toward 40")
}

func TestDraftKey(t *testing.T) {
	day, id := Monday, 4
	a := Draft{Type: CoverageBackfill, Day: &day, StartTime: "9a", EndTime: "1p", EmployeeID: &id}
	b := a
	b.Title = "different title"

	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "coverage_backfill|monday|9a|1p|4", a.Key())
	assert.Equal(t, "burnout_mitigation||||", Draft{Type: BurnoutMitigation}.Key())
}
