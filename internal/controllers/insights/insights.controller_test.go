package insightsController

import (
	"context"
	"testing"
	"time"

	"shiftwatch/internal/engine"
	. "shiftwatch/internal/models"
	"shiftwatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	controller *InsightsController
	repos      testutil.Repos
	dee        *Employee
}

// newFixture seeds a crisis line that is one short on weekends and a billing
// desk with a single weekday agent plus one unscheduled hire.
func newFixture(t *testing.T) fixture {
	t.Helper()

	cfg := testutil.Config(t.TempDir())
	db := testutil.NewDB(t, cfg)
	repos := testutil.NewRepos(db, cfg)

	testutil.SeedEmployee(t, repos.Employees, "Ana", "Crisis Line", "Counselor", testutil.EveryDay("12a-12a"))
	testutil.SeedEmployee(t, repos.Employees, "Bo", "Crisis Line", "Counselor", testutil.EveryDay("12a-12a"))
	testutil.SeedEmployee(t, repos.Employees, "Cy", "Crisis Line", "Counselor", testutil.Weekdays("12a-12a"))
	dee := testutil.SeedEmployee(t, repos.Employees, "Dee", "Billing", "Agent", testutil.Weekdays("9a-5p"))
	testutil.SeedEmployee(t, repos.Employees, "Eve", "Billing", "Agent", nil)

	controller := New(repos.Employees, repos.TimeOff, cfg).
		WithClock(func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) })
	return fixture{controller: controller, repos: repos, dee: dee}
}

func TestWeek_AnchorsOnSaturday(t *testing.T) {
	f := newFixture(t)

	week := f.controller.Week()

	assert.Equal(t, "2026-10-10", week.StartISO())
	assert.Equal(t, "2026-10-16", week.EndISO())
}

func TestComputeCoverage(t *testing.T) {
	f := newFixture(t)

	result, err := f.controller.ComputeCoverage(context.Background(), "Billing")
	require.NoError(t, err)

	assert.Equal(t, "Billing", result.Department)
	assert.Equal(t, WeekView{Start: "2026-10-10", End: "2026-10-16"}, result.Week)
	require.Len(t, result.Coverage, engine.DaysPerWeek)

	monday := result.Coverage[engine.Monday]
	require.Len(t, monday, engine.SlotsPerDay)
	assert.Equal(t, 0, monday[17])
	assert.Equal(t, 1, monday[18])
	assert.Equal(t, 1, monday[33])
	assert.Equal(t, 0, monday[34])

	for _, count := range result.Coverage[engine.Saturday] {
		assert.Zero(t, count)
	}
}

func TestComputeCoverage_RequiresDepartment(t *testing.T) {
	f := newFixture(t)

	_, err := f.controller.ComputeCoverage(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.controller.DetailedGaps(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDetailedGaps_WeekendShortfall(t *testing.T) {
	f := newFixture(t)

	gaps, err := f.controller.DetailedGaps(context.Background(), "Crisis Line")
	require.NoError(t, err)

	for _, day := range []engine.DayKey{engine.Monday, engine.Tuesday, engine.Wednesday, engine.Thursday, engine.Friday} {
		assert.Empty(t, gaps[day], day.String())
	}

	for _, day := range []engine.DayKey{engine.Saturday, engine.Sunday} {
		require.Len(t, gaps[day], 1, day.String())
		run := gaps[day][0]
		assert.Equal(t, engine.SeverityWarn, run.Severity)
		assert.Equal(t, 2, run.Current)
		assert.Equal(t, 0, run.StartSlot)
		assert.Equal(t, engine.SlotsPerDay, run.EndSlot)
		assert.Equal(t, []engine.Candidate{{ID: 3, Name: "Cy"}}, run.Candidates)
	}
}

func TestPreviewCoverageSuggestions(t *testing.T) {
	f := newFixture(t)

	rows, err := f.controller.PreviewCoverageSuggestions(context.Background(), "Crisis Line")
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, engine.Saturday, rows[0].DayKey)
	assert.Equal(t, engine.Sunday, rows[1].DayKey)
	assert.Equal(t, "12a", rows[0].From)
	assert.Equal(t, "12a", rows[0].To)
	assert.Equal(t, 3, rows[0].Needed)
	assert.Equal(t, 2, rows[0].Current)

	empty, err := f.controller.PreviewCoverageSuggestions(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.Len(t, empty, engine.DaysPerWeek)
}

func TestBreakAllowance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	monday, err := f.controller.BreakAllowance(ctx, f.dee.ID, "Monday")
	require.NoError(t, err)
	require.NotNil(t, monday.Day)
	assert.Equal(t, engine.Monday, *monday.Day)
	assert.Equal(t, 45, monday.Minutes)

	week, err := f.controller.BreakAllowance(ctx, f.dee.ID, "")
	require.NoError(t, err)
	assert.Nil(t, week.Day)
	assert.Equal(t, 0, week.Days[engine.Saturday])
	assert.Equal(t, 45, week.Days[engine.Friday])
	assert.Equal(t, 5*45, week.Minutes)

	_, err = f.controller.BreakAllowance(ctx, f.dee.ID, "someday")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.controller.BreakAllowance(ctx, 999, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPredictiveInsights(t *testing.T) {
	f := newFixture(t)

	insights, err := f.controller.PredictiveInsights(context.Background())
	require.NoError(t, err)

	assert.Equal(t, WeekView{Start: "2026-10-10", End: "2026-10-16"}, insights.Week)

	// Eve has no schedule and is not scored.
	require.Len(t, insights.Employees, 4)
	for i := 1; i < len(insights.Employees); i++ {
		assert.GreaterOrEqual(t, insights.Employees[i-1].Score, insights.Employees[i].Score)
	}
	last := insights.Employees[len(insights.Employees)-1]
	assert.Equal(t, "Dee", last.Name)
	assert.Equal(t, engine.RiskLow, last.Level)

	// Two crisis weekend runs, then a full-day billing run every day.
	require.Len(t, insights.CoverageSuggestions, 2+engine.DaysPerWeek)
	assert.Equal(t, "Crisis Line", insights.CoverageSuggestions[0].Department)
	assert.Equal(t, "Crisis Line", insights.CoverageSuggestions[1].Department)
	for _, row := range insights.CoverageSuggestions[2:] {
		assert.Equal(t, "Billing", row.Department)
		assert.Equal(t, engine.SeverityCritical, row.Severity)
	}
}

func TestPredictiveInsights_UsesTimeOffHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.repos.TimeOff.Create(ctx, &TimeOffRequest{
		EmployeeID: f.dee.ID,
		Type:       "vacation",
		StartDate:  "2026-10-12",
		EndDate:    "2026-10-13",
		Status:     "approved",
	}))

	insights, err := f.controller.PredictiveInsights(ctx)
	require.NoError(t, err)

	var dee *engine.RiskRecord
	for i := range insights.Employees {
		if insights.Employees[i].EmployeeID == f.dee.ID {
			dee = &insights.Employees[i]
		}
	}
	require.NotNil(t, dee)
	assert.Equal(t, []string{"2026-10-12", "2026-10-13"}, dee.PTODates)
	assert.Equal(t, 1, dee.TimeOffHistory["vacation"])
}
