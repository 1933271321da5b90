package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"shiftwatch/internal/app"
	suggestionController "shiftwatch/internal/controllers/suggestions"
	"shiftwatch/internal/engine"
	. "shiftwatch/internal/models"
	"shiftwatch/internal/report"

	"github.com/spf13/cobra"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Summarise a department's half-hour coverage for the week.",
	Long: `Summarise a department's half-hour coverage for the week.

Examples:
  # Low and high water marks per day
  shiftwatch coverage --department "Crisis Line"

  # Full slot grid as CSV
  shiftwatch coverage --department "Crisis Line" --csv coverage.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		department, _ := cmd.Flags().GetString("department")
		csvPath, _ := cmd.Flags().GetString("csv")

		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			result, err := a.InsightsController.ComputeCoverage(ctx, department)
			if err != nil {
				return err
			}

			if csvPath == "" {
				return report.PrintCoverageSummary(cmd.OutOrStdout(), result.Coverage)
			}
			return writeTo(cmd.OutOrStdout(), csvPath, func(w io.Writer) error {
				return report.WriteCoverageCSV(w, result.Coverage)
			})
		})
	},
}

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "List under-staffed windows with free candidates.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		department, _ := cmd.Flags().GetString("department")

		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			var rows []engine.PreviewRow
			if department == "" {
				insights, err := a.InsightsController.PredictiveInsights(ctx)
				if err != nil {
					return err
				}
				rows = insights.CoverageSuggestions
			} else {
				preview, err := a.InsightsController.PreviewCoverageSuggestions(ctx, department)
				if err != nil {
					return err
				}
				rows = preview
			}
			return report.PrintGaps(cmd.OutOrStdout(), rows)
		})
	},
}

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Rank employees by burnout risk for the current week.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		minLevel, _ := cmd.Flags().GetString("level")

		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			insights, err := a.InsightsController.PredictiveInsights(ctx)
			if err != nil {
				return err
			}

			records, err := atLeast(insights.Employees, minLevel)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Week %s to %s\n", insights.Week.Start, insights.Week.End); err != nil {
				return err
			}
			return report.PrintRisk(out, records)
		})
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Generate coverage and burnout suggestions.",
	Long: `Generate coverage and burnout suggestions.

Each run stores a new batch unless suggestions_dedupe_pending is set. Use
--dry-run to see the drafts without storing them.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		scopeName, _ := cmd.Flags().GetString("scope")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			if !dryRun {
				created, err := a.SuggestionController.Generate(ctx, scopeName)
				if err != nil {
					return err
				}
				return report.PrintSuggestions(cmd.OutOrStdout(), created)
			}

			scope, err := suggestionController.ParseScope(scopeName)
			if err != nil {
				return err
			}
			drafts, err := a.SuggestionController.Drafts(ctx, scope)
			if err != nil {
				return err
			}
			previews := make([]*Suggestion, 0, len(drafts))
			for _, draft := range drafts {
				previews = append(previews, SuggestionFromDraft(draft))
			}
			return report.PrintSuggestions(cmd.OutOrStdout(), previews)
		})
	},
}

func init() {
	coverageCmd.Flags().String("department", "", "Department to analyse (required)")
	coverageCmd.Flags().String("csv", "", "Write the slot grid as CSV to this path (- for stdout)")
	cobra.CheckErr(coverageCmd.MarkFlagRequired("department"))

	gapsCmd.Flags().String("department", "", "Department to analyse (default all)")

	riskCmd.Flags().String("level", "low", "Only show employees at or above this level: low, medium or high")

	suggestCmd.Flags().String("scope", "all", "Suggestion scope: all, coverage or burnout")
	suggestCmd.Flags().Bool("dry-run", false, "Print drafts without storing them")
}

var levelRank = map[engine.RiskLevel]int{engine.RiskLow: 0, engine.RiskMedium: 1, engine.RiskHigh: 2}

func atLeast(records []engine.RiskRecord, level string) ([]engine.RiskRecord, error) {
	floor, ok := levelRank[engine.RiskLevel(level)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown risk level %q", ErrValidation, level)
	}

	kept := []engine.RiskRecord{}
	for _, r := range records {
		if levelRank[r.Level] >= floor {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

// writeTo runs write against stdout for "-" and against a created file
// otherwise.
func writeTo(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdout, "wrote %s\n", path)
	return err
}
