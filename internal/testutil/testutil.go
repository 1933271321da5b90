// Package testutil builds migrated throwaway databases and rosters for
// package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"shiftwatch/config"
	"shiftwatch/internal/database"
	. "shiftwatch/internal/models"
	"shiftwatch/internal/repositories"

	"github.com/stretchr/testify/require"
)

// Config is a valid configuration pointing at a database under dir.
func Config(dir string) config.Config {
	return config.Config{
		ServerPort:             8288,
		DatabaseDbPath:         filepath.Join(dir, "test.db"),
		EngineCrisisDepartment: "Crisis Line",
		EngineTimezone:         "UTC",
		CacheEmployeeTTL:       time.Minute,
		EventsChannelPrefix:    "shiftwatch:test:",
	}
}

// NewDB opens a migrated SQLite database that is closed with the test.
func NewDB(t testing.TB, cfg config.Config) database.DB {
	t.Helper()

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Migrate()
	require.NoError(t, err)
	return db
}

// Repos bundles every repository over one database.
type Repos struct {
	Employees     repositories.EmployeeRepository
	Tasks         repositories.TaskRepository
	TimeOff       repositories.TimeOffRepository
	Suggestions   repositories.SuggestionRepository
	Announcements repositories.AnnouncementRepository
}

func NewRepos(db database.DB, cfg config.Config) Repos {
	return Repos{
		Employees:     repositories.NewEmployee(db, cfg.CacheEmployeeTTL),
		Tasks:         repositories.NewTask(db),
		TimeOff:       repositories.NewTimeOff(db),
		Suggestions:   repositories.NewSuggestion(db),
		Announcements: repositories.NewAnnouncement(db),
	}
}

func SeedEmployee(
	t testing.TB,
	repo repositories.EmployeeRepository,
	name, department, position string,
	schedule *Schedule,
) *Employee {
	t.Helper()

	employee := &Employee{Name: name, Department: department, Position: position, Supervisor: "Dana", Schedule: schedule}
	require.NoError(t, repo.Create(context.Background(), employee))
	return employee
}

// EveryDay schedules token on all seven days.
func EveryDay(token string) *Schedule {
	return &Schedule{
		Saturday:  token,
		Sunday:    token,
		Monday:    token,
		Tuesday:   token,
		Wednesday: token,
		Thursday:  token,
		Friday:    token,
	}
}

// Weekdays schedules token Monday through Friday.
func Weekdays(token string) *Schedule {
	return &Schedule{
		Monday:    token,
		Tuesday:   token,
		Wednesday: token,
		Thursday:  token,
		Friday:    token,
	}
}
