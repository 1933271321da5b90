package app

import (
	"testing"

	"shiftwatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresEverything(t *testing.T) {
	app, err := New(testutil.Config(t.TempDir()))
	require.NoError(t, err)

	assert.NotNil(t, app.Database.SQL)
	assert.Nil(t, app.Database.Cache.Roster)
	assert.NoError(t, app.validate())

	pending, err := app.Database.PendingMigrations()
	require.NoError(t, err)
	assert.Empty(t, pending)

	assert.NoError(t, app.Close())
}

func TestNew_FailsOnUnreachableCache(t *testing.T) {
	cfg := testutil.Config(t.TempDir())
	cfg.DatabaseCacheAddress = "127.0.0.1"
	cfg.DatabaseCachePort = 1

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestValidate_ReportsMissingComponent(t *testing.T) {
	app, err := New(testutil.Config(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	app.SuggestionController = nil
	assert.Error(t, app.validate())
}
