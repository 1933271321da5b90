package repositories

import (
	"context"
	"errors"
	"testing"

	"shiftwatch/internal/engine"
	. "shiftwatch/internal/models"
	"shiftwatch/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backfillDraft(employeeID int) engine.Draft {
	day := engine.Monday
	return engine.Draft{
		Type:       engine.CoverageBackfill,
		Title:      "Backfill Monday",
		Day:        &day,
		StartTime:  "9a",
		EndTime:    "1p",
		EmployeeID: &employeeID,
	}
}

func TestSuggestionRepository_CreateBatchAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewSuggestion(db)
	ctx := context.Background()

	batch := []*Suggestion{
		SuggestionFromDraft(backfillDraft(1)),
		SuggestionFromDraft(engine.Draft{Type: engine.BurnoutMitigation, Title: "Reduce high risk for Ana"}),
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	assert.NotEmpty(t, batch[0].ID)
	assert.NotEqual(t, batch[0].ID, batch[1].ID)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := repo.List(ctx, StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	stored, err := repo.GetByID(ctx, batch[0].ID)
	require.NoError(t, err)
	assert.Equal(t, batch[0].Draft().Key(), stored.Draft().Key())
}

func TestSuggestionRepository_CompareAndSetStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewSuggestion(db)
	ctx := context.Background()

	suggestion := SuggestionFromDraft(backfillDraft(1))
	require.NoError(t, repo.CreateBatch(ctx, []*Suggestion{suggestion}))

	ok, err := repo.CompareAndSetStatus(ctx, suggestion.ID, StatusPending, StatusApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CompareAndSetStatus(ctx, suggestion.ID, StatusPending, StatusDenied)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.GetByID(ctx, suggestion.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.Status)
}

func TestSuggestionRepository_BatchRollsBackWithTransaction(t *testing.T) {
	db := newTestDB(t)
	repo := NewSuggestion(db)
	tx := services.NewTransactionService(db)
	ctx := context.Background()

	err := tx.Execute(ctx, func(txCtx context.Context) error {
		if err := repo.CreateBatch(txCtx, []*Suggestion{SuggestionFromDraft(backfillDraft(1))}); err != nil {
			return err
		}
		return errors.New("publish failed")
	})
	require.Error(t, err)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSuggestionRepository_GetByIDNotFound(t *testing.T) {
	repo := NewSuggestion(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepository(t *testing.T) {
	db := newTestDB(t)
	employees := newEmployeeRepo(db)
	repo := NewTask(db)
	ctx := context.Background()

	ana := seedEmployee(t, employees, "Ana", "Crisis Line", "Counselor", nil)
	suggestionID := "sugg-1"
	task := &Task{
		EmployeeID:   ana.ID,
		TaskName:     "Coverage backfill",
		DayOfWeek:    "monday",
		StartTime:    "9a",
		EndTime:      "1p",
		SuggestionID: &suggestionID,
	}
	require.NoError(t, repo.Create(ctx, task))

	bySuggestion, err := repo.GetBySuggestionID(ctx, suggestionID)
	require.NoError(t, err)
	require.Len(t, bySuggestion, 1)
	assert.Equal(t, ana.ID, bySuggestion[0].EmployeeID)

	require.NoError(t, repo.Delete(ctx, task.ID))
	assert.ErrorIs(t, repo.Delete(ctx, task.ID), ErrNotFound)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTimeOffRepository(t *testing.T) {
	db := newTestDB(t)
	employees := newEmployeeRepo(db)
	repo := NewTimeOff(db)
	ctx := context.Background()

	ana := seedEmployee(t, employees, "Ana", "Crisis Line", "Counselor", nil)
	later := &TimeOffRequest{EmployeeID: ana.ID, Type: "pto", StartDate: "2026-11-02", EndDate: "2026-11-03", Status: "pending"}
	earlier := &TimeOffRequest{EmployeeID: ana.ID, Type: "sick", StartDate: "2026-10-12", EndDate: "2026-10-12", Status: "approved"}
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, earlier))

	requests, err := repo.GetByEmployee(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "2026-10-12", requests[0].StartDate)

	require.NoError(t, repo.UpdateStatus(ctx, later.ID, "approved"))
	stored, err := repo.GetByID(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", stored.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, 999, "approved"), ErrNotFound)
}

func TestAnnouncementRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnnouncement(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Announcement{Title: "Old", Content: "a", Type: "normal", Date: "2026-09-01"}))
	require.NoError(t, repo.Create(ctx, &Announcement{Title: "New", Content: "b", Type: "urgent", Date: "2026-10-14"}))

	announcements, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, announcements, 2)
	assert.Equal(t, "New", announcements[0].Title)

	assert.ErrorIs(t, repo.Delete(ctx, 999), ErrNotFound)

	require.NoError(t, repo.DeleteAll(ctx))
	announcements, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, announcements)
}
