package employeeController

import (
	"context"
	"fmt"
	"strings"

	"shiftwatch/config"
	"shiftwatch/internal/engine"
	"shiftwatch/internal/events"
	"shiftwatch/internal/logger"
	. "shiftwatch/internal/models"
	"shiftwatch/internal/repositories"
)

type EmployeeController struct {
	employeeRepo repositories.EmployeeRepository
	taskRepo     repositories.TaskRepository
	eventBus     *events.EventBus
	Config       config.Config
	log          logger.Logger
}

func New(
	employeeRepo repositories.EmployeeRepository,
	taskRepo repositories.TaskRepository,
	eventBus *events.EventBus,
	config config.Config,
) *EmployeeController {
	return &EmployeeController{
		employeeRepo: employeeRepo,
		taskRepo:     taskRepo,
		eventBus:     eventBus,
		Config:       config,
		log:          logger.New("EmployeeController"),
	}
}

func (c *EmployeeController) Departments(ctx context.Context) ([]string, error) {
	return c.employeeRepo.Departments(ctx)
}

func (c *EmployeeController) Positions(ctx context.Context) ([]string, error) {
	positions, err := c.employeeRepo.Positions(ctx)
	if err != nil {
		return nil, err
	}
	return FilterPositions(positions, c.Config.EnginePositionDenylist), nil
}

// FilterPositions drops values that are really people's names: exact
// case-insensitive denylist matches, and short values (at most two words,
// twenty characters) whose first word is the first word of a denied name.
func FilterPositions(positions, denylist []string) []string {
	denied := make(map[string]bool, len(denylist))
	firstNames := make(map[string]bool, len(denylist))
	for _, name := range denylist {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		denied[name] = true
		firstNames[strings.Fields(name)[0]] = true
	}

	kept := []string{}
	for _, position := range positions {
		lower := strings.ToLower(position)
		if denied[lower] {
			continue
		}
		if words := strings.Fields(lower); len(words) > 0 && len(words) <= 2 && len(position) <= 20 &&
			firstNames[words[0]] {
			continue
		}
		kept = append(kept, position)
	}
	return kept
}

func (c *EmployeeController) List(ctx context.Context, department, position string) ([]*Employee, error) {
	return c.employeeRepo.Find(ctx, repositories.EmployeeFilter{
		Department: strings.TrimSpace(department),
		Position:   strings.TrimSpace(position),
	})
}

type ScheduleRow struct {
	EmployeeID int                      `json:"employeeId"`
	Name       string                   `json:"name"`
	Department string                   `json:"department"`
	Position   string                   `json:"position"`
	Shifts     map[engine.DayKey]string `json:"shifts"`
}

// Schedules lists the weekly shift tokens of every scheduled employee,
// optionally limited to one department.
func (c *EmployeeController) Schedules(ctx context.Context, department string) ([]ScheduleRow, error) {
	employees, err := c.employeeRepo.Find(ctx, repositories.EmployeeFilter{Department: strings.TrimSpace(department)})
	if err != nil {
		return nil, err
	}

	rows := []ScheduleRow{}
	for _, e := range employees {
		if e.Schedule == nil {
			continue
		}
		shifts := e.Schedule.Shifts()
		row := ScheduleRow{
			EmployeeID: e.ID,
			Name:       e.Name,
			Department: e.Department,
			Position:   e.Position,
			Shifts:     make(map[engine.DayKey]string, engine.DaysPerWeek),
		}
		for _, day := range engine.Days {
			row.Shifts[day] = shifts[day]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Available lists scheduled employees free over start-end on day, wrapping
// past midnight when end is not after start.
func (c *EmployeeController) Available(ctx context.Context, day, start, end, position string) ([]*Employee, error) {
	log := c.log.Function("Available")

	key, ok := engine.ParseDayKey(day)
	if !ok {
		return nil, log.Err("invalid day", fmt.Errorf("%w: %q", ErrValidation, day))
	}
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return nil, log.Err("missing window", fmt.Errorf("%w: start_time and end_time are required", ErrValidation))
	}
	probe, ok := engine.ShiftWindow(start + "-" + end)
	if !ok {
		return nil, log.Err("invalid window", fmt.Errorf("%w: %s-%s", ErrValidation, start, end))
	}

	employees, err := c.employeeRepo.Find(ctx, repositories.EmployeeFilter{Position: strings.TrimSpace(position)})
	if err != nil {
		return nil, err
	}

	available := []*Employee{}
	for _, e := range employees {
		if e.Schedule == nil {
			continue
		}
		if engine.FreeDuring(e.Staff().Shift(key), probe.Start, probe.End) {
			available = append(available, e)
		}
	}
	return available, nil
}

func (c *EmployeeController) UpdateScheduleDay(ctx context.Context, employeeID int, day, shift string) (*Schedule, error) {
	log := c.log.Function("UpdateScheduleDay")

	key, ok := engine.ParseDayKey(day)
	if !ok {
		return nil, log.Err("invalid day", fmt.Errorf("%w: %q", ErrValidation, day))
	}

	employee, err := c.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	schedule, err := c.employeeRepo.UpdateScheduleDay(ctx, employeeID, key, strings.TrimSpace(shift))
	if err != nil {
		return nil, err
	}

	if c.eventBus != nil {
		if err := c.eventBus.Publish(events.ChannelRoster, events.Event{
			Type: events.TypeScheduleUpdated,
			Data: map[string]any{
				"employeeId": employeeID,
				"department": employee.Department,
				"day":        key.String(),
				"shift":      shift,
			},
		}); err != nil {
			log.Warn("failed to publish schedule update", "employeeID", employeeID, "error", err)
		}
	}

	return schedule, nil
}

func (c *EmployeeController) Tasks(ctx context.Context) ([]*Task, error) {
	return c.taskRepo.GetAll(ctx)
}

func (c *EmployeeController) CreateTask(ctx context.Context, request CreateTaskRequest) (*Task, error) {
	log := c.log.Function("CreateTask")

	if missing := request.Missing(); missing != "" {
		return nil, log.Err("invalid task", fmt.Errorf("%w: missing required field: %s", ErrValidation, missing))
	}
	if _, err := c.employeeRepo.GetByID(ctx, request.EmployeeID); err != nil {
		return nil, err
	}

	task := &Task{
		EmployeeID:    request.EmployeeID,
		TaskName:      strings.TrimSpace(request.TaskName),
		DayOfWeek:     strings.ToLower(strings.TrimSpace(request.DayOfWeek)),
		StartTime:     strings.TrimSpace(request.StartTime),
		EndTime:       strings.TrimSpace(request.EndTime),
		RequiredSkill: request.RequiredSkill,
	}
	if err := c.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (c *EmployeeController) DeleteTask(ctx context.Context, id int) error {
	return c.taskRepo.Delete(ctx, id)
}
