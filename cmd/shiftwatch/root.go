package main

import (
	"context"
	"os"

	"shiftwatch/config"
	"shiftwatch/internal/app"
	"shiftwatch/internal/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// v holds defaults, config file, environment and bound flags.
var v = viper.New()

// cfg is the validated configuration, filled before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "shiftwatch",
	Short:         "Coverage and workforce risk engine for call-center rosters.",
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
			v.SetConfigFile(configFile)
		}

		loaded, err := config.Load(v)
		if err != nil {
			return err
		}
		cfg = loaded

		logger.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, coverageCmd, gapsCmd, riskCmd, suggestCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a config file (default ./config.yaml)")
	flags.String("db-path", "", "SQLite database path")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: text or json")
	flags.String("timezone", "", "Time zone anchoring the current week")
	flags.String("crisis-department", "", "Department tallied for crisis exposure")
	flags.Bool("no-color", false, "Disable colored labels")

	bind := map[string]string{
		"database_db_path":         "db-path",
		"log_level":                "log-level",
		"log_format":               "log-format",
		"engine_timezone":          "timezone",
		"engine_crisis_department": "crisis-department",
	}
	for key, flag := range bind {
		cobra.CheckErr(v.BindPFlag(key, flags.Lookup(flag)))
	}
}

func Execute() error {
	return rootCmd.Execute()
}

// withApp builds the application for one command and closes it afterwards.
func withApp(ctx context.Context, run func(ctx context.Context, a *app.App) error) error {
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	return run(ctx, a)
}
