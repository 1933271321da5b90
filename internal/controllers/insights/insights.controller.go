package insightsController

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"shiftwatch/config"
	"shiftwatch/internal/engine"
	"shiftwatch/internal/logger"
	. "shiftwatch/internal/models"
	"shiftwatch/internal/repositories"

	"golang.org/x/sync/errgroup"
)

type InsightsController struct {
	employeeRepo repositories.EmployeeRepository
	timeOffRepo  repositories.TimeOffRepository
	Config       config.Config
	now          func() time.Time
	log          logger.Logger
}

func New(
	employeeRepo repositories.EmployeeRepository,
	timeOffRepo repositories.TimeOffRepository,
	config config.Config,
) *InsightsController {
	return &InsightsController{
		employeeRepo: employeeRepo,
		timeOffRepo:  timeOffRepo,
		Config:       config,
		now:          time.Now,
		log:          logger.New("InsightsController"),
	}
}

// WithClock replaces the clock used to anchor the current week.
func (c *InsightsController) WithClock(now func() time.Time) *InsightsController {
	c.now = now
	return c
}

type WeekView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Snapshot is one consistent read of the roster and time off history.
type Snapshot struct {
	Week    engine.Week
	Staff   []engine.Staff
	TimeOff []engine.TimeOff
}

func (c *InsightsController) Week() engine.Week {
	return engine.WeekOf(c.now().In(c.Config.Location()))
}

func weekView(w engine.Week) WeekView {
	return WeekView{Start: w.StartISO(), End: w.EndISO()}
}

func (c *InsightsController) Snapshot(ctx context.Context) (Snapshot, error) {
	log := c.log.Function("Snapshot")

	employees, err := c.employeeRepo.Find(ctx, repositories.EmployeeFilter{})
	if err != nil {
		return Snapshot{}, log.Err("failed to load employees", err)
	}

	requests, err := c.timeOffRepo.GetAll(ctx)
	if err != nil {
		return Snapshot{}, log.Err("failed to load time off", err)
	}

	return Snapshot{
		Week:    c.Week(),
		Staff:   StaffOf(employees),
		TimeOff: TimeOffOf(requests),
	}, nil
}

func (c *InsightsController) departmentStaff(ctx context.Context, department string) ([]engine.Staff, error) {
	log := c.log.Function("departmentStaff")

	department = strings.TrimSpace(department)
	if department == "" {
		return nil, log.Err("department is required", ErrValidation)
	}

	employees, err := c.employeeRepo.GetByDepartment(ctx, department)
	if err != nil {
		return nil, log.Err("failed to load department roster", err, "department", department)
	}

	return StaffOf(employees), nil
}

type CoverageResult struct {
	Department string                  `json:"department"`
	Week       WeekView                `json:"week"`
	Coverage   map[engine.DayKey][]int `json:"coverage"`
}

func (c *InsightsController) ComputeCoverage(ctx context.Context, department string) (CoverageResult, error) {
	staff, err := c.departmentStaff(ctx, department)
	if err != nil {
		return CoverageResult{}, err
	}

	grid := engine.BuildCoverage(department, staff)
	return CoverageResult{
		Department: department,
		Week:       weekView(c.Week()),
		Coverage:   grid.ByDay(),
	}, nil
}

func (c *InsightsController) DetailedGaps(ctx context.Context, department string) (map[engine.DayKey][]engine.GapRun, error) {
	staff, err := c.departmentStaff(ctx, department)
	if err != nil {
		return nil, err
	}

	return engine.DetailedGaps(department, staff, engine.DetailCandidateCap), nil
}

func (c *InsightsController) PreviewCoverageSuggestions(ctx context.Context, department string) ([]engine.PreviewRow, error) {
	staff, err := c.departmentStaff(ctx, department)
	if err != nil {
		return nil, err
	}

	return engine.PreviewCoverageSuggestions(department, staff), nil
}

type BreakAllowance struct {
	EmployeeID int                   `json:"employeeId"`
	Day        *engine.DayKey        `json:"day,omitempty"`
	Days       map[engine.DayKey]int `json:"days,omitempty"`
	Minutes    int                   `json:"minutes"`
}

// BreakAllowance returns one day's allowance when day is given, otherwise
// every day plus the weekly total in Minutes.
func (c *InsightsController) BreakAllowance(ctx context.Context, employeeID int, day string) (BreakAllowance, error) {
	log := c.log.Function("BreakAllowance")

	employee, err := c.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return BreakAllowance{}, log.Err("failed to load employee", err, "employeeID", employeeID)
	}
	staff := employee.Staff()
	result := BreakAllowance{EmployeeID: employeeID}

	if day != "" {
		key, ok := engine.ParseDayKey(day)
		if !ok {
			return BreakAllowance{}, log.Err("invalid day", fmt.Errorf("%w: %q", ErrValidation, day))
		}
		result.Day = &key
		result.Minutes = engine.BreakAllowanceMinutes(staff.Shift(key))
		return result, nil
	}

	result.Days = make(map[engine.DayKey]int, engine.DaysPerWeek)
	for _, key := range engine.Days {
		minutes := engine.BreakAllowanceMinutes(staff.Shift(key))
		result.Days[key] = minutes
		result.Minutes += minutes
	}
	return result, nil
}

type Insights struct {
	Week                WeekView            `json:"week"`
	Employees           []engine.RiskRecord `json:"employees"`
	CoverageSuggestions []engine.PreviewRow `json:"coverageSuggestions"`
}

// PredictiveInsights scores every scheduled employee and previews gaps for
// every department. Departments are analysed concurrently.
func (c *InsightsController) PredictiveInsights(ctx context.Context) (Insights, error) {
	log := c.log.Function("PredictiveInsights")

	snapshot, err := c.Snapshot(ctx)
	if err != nil {
		return Insights{}, err
	}

	departments := engine.Departments(snapshot.Staff)
	previews := make([][]engine.PreviewRow, len(departments))
	var records []engine.RiskRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scorer := engine.RiskScorer{CrisisDepartment: c.Config.EngineCrisisDepartment}
		records = scorer.ScoreAll(snapshot.Week, snapshot.Staff, snapshot.TimeOff)
		return gctx.Err()
	})
	for i, department := range departments {
		g.Go(func() error {
			previews[i] = engine.PreviewCoverageSuggestions(department, snapshot.Staff)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return Insights{}, log.Err("insight computation cancelled", err)
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Score > records[j].Score })

	rows := []engine.PreviewRow{}
	for _, p := range previews {
		rows = append(rows, p...)
	}

	log.Info("computed insights", "employees", len(records), "departments", len(departments), "gaps", len(rows))
	return Insights{
		Week:                weekView(snapshot.Week),
		Employees:           records,
		CoverageSuggestions: rows,
	}, nil
}
