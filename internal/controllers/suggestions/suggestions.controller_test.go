package suggestionController

import (
	"context"
	"sync"
	"testing"
	"time"

	"shiftwatch/config"
	insightsController "shiftwatch/internal/controllers/insights"
	"shiftwatch/internal/engine"
	"shiftwatch/internal/events"
	. "shiftwatch/internal/models"
	"shiftwatch/internal/services"
	"shiftwatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	controller *SuggestionController
	repos      testutil.Repos
	bus        *events.EventBus
}

// newFixture seeds a crisis line where Cy leaves Monday at 9a, opening a
// single 9a-12a gap that Cy is free to backfill.
func newFixture(t *testing.T, mutate ...func(*config.Config)) fixture {
	t.Helper()

	cfg := testutil.Config(t.TempDir())
	for _, m := range mutate {
		m(&cfg)
	}
	db := testutil.NewDB(t, cfg)
	repos := testutil.NewRepos(db, cfg)

	testutil.SeedEmployee(t, repos.Employees, "Ana", "Crisis Line", "Counselor", testutil.EveryDay("12a-12a"))
	testutil.SeedEmployee(t, repos.Employees, "Ben", "Crisis Line", "Counselor", testutil.EveryDay("12a-12a"))
	cy := testutil.EveryDay("12a-12a")
	cy.Monday = "12a-9a"
	testutil.SeedEmployee(t, repos.Employees, "Cy", "Crisis Line", "Counselor", cy)

	insights := insightsController.New(repos.Employees, repos.TimeOff, cfg).
		WithClock(func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) })
	bus := events.New(nil, cfg)
	t.Cleanup(func() { _ = bus.Close() })

	controller := New(services.NewTransactionService(db), repos.Suggestions, repos.Tasks, insights, bus, cfg)
	return fixture{controller: controller, repos: repos, bus: bus}
}

func (f fixture) generateBackfill(t *testing.T) *Suggestion {
	t.Helper()

	created, err := f.controller.Generate(context.Background(), "coverage")
	require.NoError(t, err)
	require.Len(t, created, 1)
	return created[0]
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		input   string
		want    Scope
		wantErr bool
	}{
		{"", ScopeAll, false},
		{"all", ScopeAll, false},
		{"coverage", ScopeCoverage, false},
		{"burnout", ScopeBurnout, false},
		{"everything", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			scope, err := ParseScope(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, scope)
		})
	}
}

func TestGenerate_CoverageScope(t *testing.T) {
	f := newFixture(t)

	suggestion := f.generateBackfill(t)

	assert.NotEmpty(t, suggestion.ID)
	assert.Equal(t, engine.CoverageBackfill, suggestion.Type)
	assert.Equal(t, StatusPending, suggestion.Status)
	assert.Equal(t, "Backfill Monday 9a-12a (Crisis Line)", suggestion.Title)
	require.NotNil(t, suggestion.DayKey)
	assert.Equal(t, "monday", *suggestion.DayKey)
	require.NotNil(t, suggestion.EmployeeID)
	assert.Equal(t, 3, *suggestion.EmployeeID)

	stored, err := f.controller.Get(context.Background(), suggestion.ID)
	require.NoError(t, err)
	assert.Equal(t, suggestion.Title, stored.Title)
}

func TestGenerate_ScopesAndAccumulation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	burnout, err := f.controller.Generate(ctx, "burnout")
	require.NoError(t, err)
	require.Len(t, burnout, 3)
	for _, s := range burnout {
		assert.Equal(t, engine.BurnoutMitigation, s.Type)
		assert.Nil(t, s.DayKey)
	}

	all, err := f.controller.Generate(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	stored, err := f.controller.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, stored, 7)

	_, err = f.controller.Generate(ctx, "nope")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGenerate_DedupePending(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.SuggestionsDedupePending = true })
	ctx := context.Background()

	first := f.generateBackfill(t)

	again, err := f.controller.Generate(ctx, "coverage")
	require.NoError(t, err)
	assert.Empty(t, again)

	_, err = f.controller.UpdateStatus(ctx, first.ID, "denied")
	require.NoError(t, err)

	// Only pending suggestions suppress a new draft.
	third, err := f.controller.Generate(ctx, "coverage")
	require.NoError(t, err)
	assert.Len(t, third, 1)
}

func TestGenerate_PublishesEvent(t *testing.T) {
	f := newFixture(t)

	var received []events.Event
	f.bus.Subscribe(events.ChannelSuggestions, func(e events.Event) { received = append(received, e) })

	f.generateBackfill(t)

	require.Len(t, received, 1)
	assert.Equal(t, events.TypeSuggestionsGenerated, received[0].Type)
	assert.Equal(t, 1, received[0].Data["count"])
}

func TestUpdateStatus_ApproveCreatesOneTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	suggestion := f.generateBackfill(t)

	result, err := f.controller.UpdateStatus(ctx, suggestion.ID, "approved")
	require.NoError(t, err)
	assert.True(t, result.ExecutedSideEffect)
	assert.Equal(t, StatusApproved, result.Suggestion.Status)
	require.NotNil(t, result.Task)
	assert.Equal(t, 3, result.Task.EmployeeID)
	assert.Equal(t, "monday", result.Task.DayOfWeek)
	assert.Equal(t, "9a", result.Task.StartTime)
	assert.Equal(t, "12a", result.Task.EndTime)
	require.NotNil(t, result.Task.SuggestionID)
	assert.Equal(t, suggestion.ID, *result.Task.SuggestionID)

	again, err := f.controller.UpdateStatus(ctx, suggestion.ID, "approved")
	require.NoError(t, err)
	assert.False(t, again.ExecutedSideEffect)
	assert.Nil(t, again.Task)

	tasks, err := f.repos.Tasks.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		second  string
		wantErr error
	}{
		{"deny then approve", "denied", "approved", ErrInvalidTransition},
		{"approve then deny", "approved", "denied", ErrInvalidTransition},
		{"approve then pending", "approved", "pending", ErrInvalidTransition},
		{"deny twice", "denied", "denied", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			suggestion := f.generateBackfill(t)

			_, err := f.controller.UpdateStatus(ctx, suggestion.ID, tt.first)
			require.NoError(t, err)

			_, err = f.controller.UpdateStatus(ctx, suggestion.ID, tt.second)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			stored, err := f.controller.Get(ctx, suggestion.ID)
			require.NoError(t, err)
			assert.Equal(t, SuggestionStatus(tt.first), stored.Status)
		})
	}
}

func TestUpdateStatus_DenyCreatesNoTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	suggestion := f.generateBackfill(t)

	result, err := f.controller.UpdateStatus(ctx, suggestion.ID, "denied")
	require.NoError(t, err)
	assert.False(t, result.ExecutedSideEffect)

	tasks, err := f.repos.Tasks.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUpdateStatus_ApproveBurnoutHasNoSideEffect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.controller.Generate(ctx, "burnout")
	require.NoError(t, err)
	require.NotEmpty(t, created)

	result, err := f.controller.UpdateStatus(ctx, created[0].ID, "approved")
	require.NoError(t, err)
	assert.False(t, result.ExecutedSideEffect)
	assert.Nil(t, result.Task)
}

func TestUpdateStatus_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	suggestion := f.generateBackfill(t)

	_, err := f.controller.UpdateStatus(ctx, suggestion.ID, "maybe")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.controller.UpdateStatus(ctx, "missing-id", "approved")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.controller.List(ctx, "archived")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatus_ConcurrentApprovals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	suggestion := f.generateBackfill(t)

	const workers = 8
	results := make([]StatusResult, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = f.controller.UpdateStatus(ctx, suggestion.ID, "approved")
		}()
	}
	wg.Wait()

	executed := 0
	for i := range workers {
		require.NoError(t, errs[i])
		if results[i].ExecutedSideEffect {
			executed++
		}
	}
	assert.Equal(t, 1, executed)

	tasks, err := f.repos.Tasks.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestList_FiltersByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	suggestion := f.generateBackfill(t)
	f.generateBackfill(t)

	_, err := f.controller.UpdateStatus(ctx, suggestion.ID, "approved")
	require.NoError(t, err)

	pending, err := f.controller.List(ctx, "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	approved, err := f.controller.List(ctx, "approved")
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, suggestion.ID, approved[0].ID)
}
