// Package report renders engine results for the terminal and for CSV export.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shiftwatch/internal/engine"
	. "shiftwatch/internal/models"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const maxDriversWidth = 60

var (
	highColor     = color.New(color.FgRed, color.Bold)
	mediumColor   = color.New(color.FgYellow, color.Bold)
	lowColor      = color.New(color.FgGreen)
	criticalColor = color.New(color.FgRed, color.Bold)
	warnColor     = color.New(color.FgYellow)
	mutedColor    = color.New(color.FgHiBlack)
)

func LevelLabel(level engine.RiskLevel) string {
	switch level {
	case engine.RiskHigh:
		return highColor.Sprint(level)
	case engine.RiskMedium:
		return mediumColor.Sprint(level)
	default:
		return lowColor.Sprint(level)
	}
}

func SeverityLabel(severity engine.Severity) string {
	if severity == engine.SeverityCritical {
		return criticalColor.Sprint(severity)
	}
	return warnColor.Sprint(severity)
}

// WriteCoverageCSV writes one row per half-hour slot with a column per day.
func WriteCoverageCSV(w io.Writer, coverage map[engine.DayKey][]int) error {
	writer := csv.NewWriter(w)

	header := []string{"slot"}
	for _, day := range engine.Days {
		header = append(header, day.String())
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for slot := range engine.SlotsPerDay {
		row := []string{engine.FormatSlot(slot)}
		for _, day := range engine.Days {
			count := 0
			if slots := coverage[day]; slot < len(slots) {
				count = slots[slot]
			}
			row = append(row, strconv.Itoa(count))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// PrintCoverageSummary prints the low and high water mark of each day and
// how many slots fall under each target.
func PrintCoverageSummary(w io.Writer, coverage map[engine.DayKey][]int) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Day", "Min", "Max", "Critical Slots", "Warn Slots"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, day := range engine.Days {
		slots := coverage[day]
		lo, hi, critical, warn := 0, 0, 0, 0
		for i, count := range slots {
			if i == 0 || count < lo {
				lo = count
			}
			if count > hi {
				hi = count
			}
			switch {
			case count < engine.CriticalTarget:
				critical++
			case count < engine.WarnTarget:
				warn++
			}
		}
		data = append(data, []string{
			day.Title(),
			strconv.Itoa(lo),
			strconv.Itoa(hi),
			strconv.Itoa(critical),
			strconv.Itoa(warn),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func PrintGaps(w io.Writer, rows []engine.PreviewRow) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Department", "Day", "From", "To", "Current", "Needed", "Severity", "Candidates"})

	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			r.Department,
			r.DayKey.Title(),
			r.From,
			r.To,
			strconv.Itoa(r.Current),
			strconv.Itoa(r.Needed),
			SeverityLabel(r.Severity),
			candidateNames(r.Candidates),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func candidateNames(candidates []engine.Candidate) string {
	if len(candidates) == 0 {
		return mutedColor.Sprint("none")
	}
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func PrintRisk(w io.Writer, records []engine.RiskRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Employee", "Department", "Score", "Level", "Hours", "Drivers"})

	var data [][]string
	for i, r := range records {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Name,
			r.Department,
			strconv.Itoa(r.Score),
			LevelLabel(r.Level),
			fmt.Sprintf("%.1f", r.Factors.WeeklyHours()),
			truncate(strings.Join(r.Drivers, "; "), maxDriversWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func PrintSuggestions(w io.Writer, suggestions []*Suggestion) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Type", "Title", "Status"})

	var data [][]string
	for _, s := range suggestions {
		data = append(data, []string{s.ID, string(s.Type), s.Title, string(s.Status)})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
