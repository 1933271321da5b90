package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"shiftwatch/config"
	"shiftwatch/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db := &DB{log: logger.New("test")}
	testConfig := config.Config{
		DatabaseDbPath: filepath.Join(t.TempDir(), "nested", "test.db"),
	}

	require.NoError(t, db.initializeSQLiteDB(&gorm.Config{}, testConfig))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_WithoutCache(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "shiftwatch.db")

	db, err := New(config.Config{DatabaseDbPath: dbPath})
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, db.SQL)
	assert.Nil(t, db.Cache.General)
	assert.Nil(t, db.Cache.Roster)
	assert.FileExists(t, dbPath)
}

func TestNew_UnreachableCache(t *testing.T) {
	_, err := New(config.Config{
		DatabaseDbPath:       filepath.Join(t.TempDir(), "test.db"),
		DatabaseCacheAddress: "127.0.0.1",
		DatabaseCachePort:    1,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize cache database")
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(config.Config{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")
}

func TestInitializeSQLiteDB_CreatesParentDirectory(t *testing.T) {
	db := newTestDB(t)

	sqlDB, err := db.SQL.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

func TestMigrate_UpAndDown(t *testing.T) {
	db := newTestDB(t)

	pending, err := db.PendingMigrations()
	require.NoError(t, err)
	assert.Len(t, pending, 4)

	applied, err := db.Migrate()
	require.NoError(t, err)
	assert.Equal(t, 4, applied)

	for _, table := range []string{"employees", "schedules", "tasks", "time_off_requests", "suggestions", "announcements"} {
		assert.True(t, db.SQL.Migrator().HasTable(table), table)
	}

	applied, err = db.Migrate()
	require.NoError(t, err)
	assert.Zero(t, applied)

	reverted, err := db.Rollback(1)
	require.NoError(t, err)
	assert.Equal(t, 1, reverted)
	assert.False(t, db.SQL.Migrator().HasTable("announcements"))
	assert.True(t, db.SQL.Migrator().HasTable("suggestions"))
}

func TestSQLWithContext(t *testing.T) {
	db := newTestDB(t)

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "value")
	gormDB := db.SQLWithContext(ctx)

	assert.Equal(t, "value", gormDB.Statement.Context.Value(ctxKey{}))
}

func TestTXDefer_Commits(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.SQL.Exec("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)").Error)

	tx := db.SQL.Begin()
	require.NoError(t, tx.Error)
	require.NoError(t, tx.Exec("INSERT INTO notes (body) VALUES (?)", "hello").Error)

	TXDefer(tx, db.log)

	var count int64
	require.NoError(t, db.SQL.Table("notes").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTXDefer_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.SQL.Exec("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)").Error)

	tx := db.SQL.Begin()
	require.NoError(t, tx.Exec("INSERT INTO notes (body) VALUES (?)", "hello").Error)
	tx.Error = errors.New("simulated failure")

	TXDefer(tx, db.log)

	var count int64
	require.NoError(t, db.SQL.Table("notes").Count(&count).Error)
	assert.Zero(t, count)
}

func TestClose_WithNilSQL(t *testing.T) {
	db := &DB{log: logger.New("test")}
	assert.NoError(t, db.Close())
}

func TestFlushAllCaches_NoClients(t *testing.T) {
	db := &DB{log: logger.New("test")}
	assert.NoError(t, db.FlushAllCaches(context.Background()))
}

func TestCacheBuilder_NilClientIsMiss(t *testing.T) {
	var target map[string]int

	found, err := NewCacheBuilder(nil, "roster:Crisis Line").Get(&target)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, NewCacheBuilder(nil, "roster:Crisis Line").WithStruct(map[string]int{"a": 1}).Set())
	assert.NoError(t, NewCacheBuilder(nil, "roster:Crisis Line").Delete())
}
