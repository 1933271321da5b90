package database

import (
	"embed"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
}

// Migrate applies every pending migration and returns how many ran.
func (s *DB) Migrate() (int, error) {
	return s.migrate(migrate.Up, 0)
}

// Rollback reverts up to steps migrations; zero reverts all of them.
func (s *DB) Rollback(steps int) (int, error) {
	return s.migrate(migrate.Down, steps)
}

func (s *DB) migrate(direction migrate.MigrationDirection, max int) (int, error) {
	log := s.log.Function("migrate")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return 0, log.Err("failed to get database from GORM", err)
	}

	applied, err := migrate.ExecMax(sqlDB, "sqlite3", migrationSource(), direction, max)
	if err != nil {
		return applied, log.Err("failed to apply migrations", err, "direction", direction, "applied", applied)
	}

	log.Info("Migrations applied", "direction", direction, "count", applied)
	return applied, nil
}

// PendingMigrations lists migration ids that have not been applied yet.
func (s *DB) PendingMigrations() ([]string, error) {
	log := s.log.Function("PendingMigrations")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return nil, log.Err("failed to get database from GORM", err)
	}

	planned, _, err := migrate.PlanMigration(sqlDB, "sqlite3", migrationSource(), migrate.Up, 0)
	if err != nil {
		return nil, log.Err("failed to plan migrations", err)
	}

	ids := make([]string, 0, len(planned))
	for _, m := range planned {
		ids = append(ids, m.Id)
	}
	return ids, nil
}
