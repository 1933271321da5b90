package main

import (
	"fmt"

	"shiftwatch/cmd/migration/initialize"
	"shiftwatch/cmd/migration/seed"
	"shiftwatch/internal/database"
	"shiftwatch/internal/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema.",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(func(db *database.DB) error {
			applied, err := initialize.InitializeTables(db, logger.New("migrate"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
			return err
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migrations.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		return withDB(func(db *database.DB) error {
			reverted, err := initialize.RollbackTables(db, steps, logger.New("migrate"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", reverted)
			return err
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations that have not been applied.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(func(db *database.DB) error {
			pending, err := db.PendingMigrations()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(pending) == 0 {
				_, err = fmt.Fprintln(out, "schema is up to date")
				return err
			}
			for _, id := range pending {
				if _, err := fmt.Fprintln(out, "pending:", id); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the development roster.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(func(db *database.DB) error {
			log := logger.New("seed")
			if _, err := initialize.InitializeTables(db, log); err != nil {
				return err
			}
			return seed.Seed(db.SQL, cfg, log)
		})
	},
}

func init() {
	migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
}

// withDB opens storage without applying migrations.
func withDB(run func(db *database.DB) error) error {
	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return run(&db)
}
