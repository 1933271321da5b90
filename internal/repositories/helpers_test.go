package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"shiftwatch/config"
	"shiftwatch/internal/database"
	. "shiftwatch/internal/models"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) database.DB {
	t.Helper()

	db, err := database.New(config.Config{DatabaseDbPath: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Migrate()
	require.NoError(t, err)
	return db
}

func seedEmployee(t *testing.T, repo EmployeeRepository, name, department, position string, schedule *Schedule) *Employee {
	t.Helper()

	employee := &Employee{Name: name, Department: department, Position: position, Schedule: schedule}
	require.NoError(t, repo.Create(context.Background(), employee))
	return employee
}

func newEmployeeRepo(db database.DB) EmployeeRepository {
	return NewEmployee(db, time.Minute)
}
