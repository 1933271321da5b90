package announcementController

import (
	"context"
	"testing"
	"time"

	. "shiftwatch/internal/models"
	"shiftwatch/internal/services"
	"shiftwatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) *AnnouncementController {
	t.Helper()

	cfg := testutil.Config(t.TempDir())
	db := testutil.NewDB(t, cfg)
	repos := testutil.NewRepos(db, cfg)

	return New(services.NewTransactionService(db), repos.Announcements, cfg).
		WithClock(func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) })
}

func TestCreate(t *testing.T) {
	controller := newController(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		request  AnnouncementRequest
		wantDate string
		wantErr  bool
	}{
		{"iso date", AnnouncementRequest{Title: "Drill", Content: "Fire drill at noon", Type: "important", Date: "2026-10-20"}, "2026-10-20", false},
		{"us date", AnnouncementRequest{Title: "Party", Content: "Cake", Type: "normal", Date: "10/31/2026"}, "2026-10-31", false},
		{"missing date falls back to today", AnnouncementRequest{Title: "Outage", Content: "Phones down", Type: "urgent"}, "2026-10-15", false},
		{"garbage date falls back to today", AnnouncementRequest{Title: "Note", Content: "Hi", Type: "normal", Date: "next week"}, "2026-10-15", false},
		{"missing title", AnnouncementRequest{Content: "x", Type: "normal"}, "", true},
		{"missing content", AnnouncementRequest{Title: "x", Type: "normal"}, "", true},
		{"unknown type", AnnouncementRequest{Title: "x", Content: "y", Type: "spam"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			announcement, err := controller.Create(ctx, tt.request)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, announcement.ID)
			assert.Equal(t, tt.wantDate, announcement.Date)
		})
	}
}

func TestListAndDelete(t *testing.T) {
	controller := newController(t)
	ctx := context.Background()

	older, err := controller.Create(ctx, AnnouncementRequest{Title: "Old", Content: "a", Type: "normal", Date: "2026-09-01"})
	require.NoError(t, err)
	_, err = controller.Create(ctx, AnnouncementRequest{Title: "New", Content: "b", Type: "normal", Date: "2026-10-01"})
	require.NoError(t, err)

	list, err := controller.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "New", list[0].Title)

	require.NoError(t, controller.Delete(ctx, older.ID))
	assert.ErrorIs(t, controller.Delete(ctx, older.ID), ErrNotFound)
}

func TestReplace(t *testing.T) {
	controller := newController(t)
	ctx := context.Background()

	_, err := controller.Create(ctx, AnnouncementRequest{Title: "Stale", Content: "a", Type: "normal"})
	require.NoError(t, err)

	replaced, err := controller.Replace(ctx, []AnnouncementRequest{
		{Title: "One", Content: "a", Type: "normal", Date: "2026-10-01"},
		{Title: "Two", Content: "b", Type: "urgent", Date: "2026-10-02"},
	})
	require.NoError(t, err)
	require.Len(t, replaced, 2)
	assert.Equal(t, "Two", replaced[0].Title)
	assert.Equal(t, "One", replaced[1].Title)
}

func TestReplace_InvalidKeepsBoard(t *testing.T) {
	controller := newController(t)
	ctx := context.Background()

	_, err := controller.Create(ctx, AnnouncementRequest{Title: "Keep", Content: "a", Type: "normal"})
	require.NoError(t, err)

	_, err = controller.Replace(ctx, []AnnouncementRequest{
		{Title: "Fine", Content: "a", Type: "normal"},
		{Title: "Broken", Content: "b", Type: "loud"},
	})
	assert.ErrorIs(t, err, ErrValidation)

	list, err := controller.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Keep", list[0].Title)
}
