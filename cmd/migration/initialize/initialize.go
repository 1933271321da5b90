package initialize

import (
	"shiftwatch/internal/database"
	"shiftwatch/internal/logger"
)

// InitializeTables applies every pending migration and returns how many ran.
func InitializeTables(db *database.DB, log logger.Logger) (int, error) {
	log = log.Function("InitializeTables")

	pending, err := db.PendingMigrations()
	if err != nil {
		return 0, log.Err("failed to plan migrations", err)
	}
	if len(pending) == 0 {
		log.Info("Schema is up to date")
		return 0, nil
	}

	log.Info("Applying migrations", "pending", pending)
	applied, err := db.Migrate()
	if err != nil {
		return applied, log.Err("failed to apply migrations", err, "applied", applied)
	}

	log.Info("Table initialization complete", "applied", applied)
	return applied, nil
}

// RollbackTables reverts the most recent steps migrations.
func RollbackTables(db *database.DB, steps int, log logger.Logger) (int, error) {
	log = log.Function("RollbackTables")

	if steps <= 0 {
		return 0, log.ErrMsg("steps must be positive")
	}

	reverted, err := db.Rollback(steps)
	if err != nil {
		return reverted, log.Err("failed to roll back migrations", err, "steps", steps)
	}

	log.Info("Rolled back migrations", "reverted", reverted)
	return reverted, nil
}
