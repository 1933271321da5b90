package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"shiftwatch/internal/app"
	"shiftwatch/internal/handlers"
	"shiftwatch/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and websocket feed.",
	Long: `Run the HTTP API and websocket feed.

With --report-interval the predictive insights are recomputed on a timer
and summarised in the log, the same read-only analysis the dashboard uses.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		interval, _ := cmd.Flags().GetDuration("report-interval")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return withApp(ctx, func(ctx context.Context, a *app.App) error {
			return serve(ctx, a, interval)
		})
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "HTTP listen port")
	serveCmd.Flags().Duration("report-interval", 0, "Recompute insights on this interval (0 disables)")
	cobra.CheckErr(v.BindPFlag("server_port", serveCmd.Flags().Lookup("port")))
}

func serve(ctx context.Context, a *app.App, interval time.Duration) error {
	log := logger.New("serve").Function("serve")

	server := fiber.New(fiber.Config{
		AppName:               "shiftwatch",
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
	})
	if err := handlers.Router(server, a); err != nil {
		return log.Err("failed to register routes", err)
	}

	if interval > 0 {
		go reportLoop(ctx, a, interval)
	}

	errs := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", a.Config.ServerPort)
		log.Info("listening", "addr", addr)
		errs <- server.Listen(addr)
	}()

	select {
	case err := <-errs:
		return log.Err("server stopped", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		return log.Err("failed to shut down", err)
	}
	return nil
}

// reportLoop logs a summary of the predictive insights every interval.
func reportLoop(ctx context.Context, a *app.App, interval time.Duration) {
	log := logger.New("serve").Function("reportLoop")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		insights, err := a.InsightsController.PredictiveInsights(ctx)
		if err != nil {
			log.Er("failed to compute insights", err)
			continue
		}

		levels := map[string]int{}
		for _, record := range insights.Employees {
			levels[string(record.Level)]++
		}
		log.Info("insights report",
			"week", insights.Week.Start,
			"employees", len(insights.Employees),
			"high", levels["high"],
			"medium", levels["medium"],
			"gaps", len(insights.CoverageSuggestions),
		)
	}
}
