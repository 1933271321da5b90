package seed

import (
	"testing"

	"shiftwatch/internal/logger"
	. "shiftwatch/internal/models"
	"shiftwatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_IsRepeatable(t *testing.T) {
	cfg := testutil.Config(t.TempDir())
	db := testutil.NewDB(t, cfg)
	log := logger.New("test")

	require.NoError(t, Seed(db.SQL, cfg, log))
	require.NoError(t, Seed(db.SQL, cfg, log))

	counts := map[string]int64{}
	for name, model := range map[string]any{
		"employees":     &Employee{},
		"schedules":     &Schedule{},
		"time off":      &TimeOffRequest{},
		"announcements": &Announcement{},
	} {
		var count int64
		require.NoError(t, db.SQL.Model(model).Count(&count).Error)
		counts[name] = count
	}

	assert.Equal(t, map[string]int64{
		"employees":     11,
		"schedules":     10,
		"time off":      3,
		"announcements": 2,
	}, counts)
}

func TestRoster_PositionsAndDepartments(t *testing.T) {
	departments := map[string]int{}
	for _, e := range roster() {
		departments[e.Department]++
		assert.NotEmpty(t, e.Position, e.Name)
	}

	assert.Equal(t, map[string]int{"Crisis Line": 5, "Billing": 3, "Tech Support": 3}, departments)
}
