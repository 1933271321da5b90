package timeOffController

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"shiftwatch/internal/events"
	"shiftwatch/internal/logger"
	. "shiftwatch/internal/models"
	"shiftwatch/internal/repositories"
	"shiftwatch/internal/utils"
)

var timeOffStatuses = []string{"pending", "approved", "denied"}

type TimeOffController struct {
	timeOffRepo  repositories.TimeOffRepository
	employeeRepo repositories.EmployeeRepository
	eventBus     *events.EventBus
	log          logger.Logger
}

func New(
	timeOffRepo repositories.TimeOffRepository,
	employeeRepo repositories.EmployeeRepository,
	eventBus *events.EventBus,
) *TimeOffController {
	return &TimeOffController{
		timeOffRepo:  timeOffRepo,
		employeeRepo: employeeRepo,
		eventBus:     eventBus,
		log:          logger.New("TimeOffController"),
	}
}

func (c *TimeOffController) Create(ctx context.Context, request CreateTimeOffRequest) (*TimeOffRequest, error) {
	log := c.log.Function("Create")

	kind := strings.ToLower(strings.TrimSpace(request.Type))
	if !slices.Contains(TimeOffTypes, kind) {
		return nil, log.Err("invalid time off type", fmt.Errorf("%w: type must be one of %s", ErrValidation, strings.Join(TimeOffTypes, ", ")))
	}

	start, ok := utils.NormalizeDate(request.StartDate)
	if !ok {
		return nil, log.Err("invalid start date", fmt.Errorf("%w: %q", ErrValidation, request.StartDate))
	}
	end, ok := utils.NormalizeDate(request.EndDate)
	if !ok {
		return nil, log.Err("invalid end date", fmt.Errorf("%w: %q", ErrValidation, request.EndDate))
	}
	if end < start {
		return nil, log.Err("invalid date range", fmt.Errorf("%w: end %s is before start %s", ErrValidation, end, start))
	}

	if _, err := c.employeeRepo.GetByID(ctx, request.EmployeeID); err != nil {
		return nil, err
	}

	timeOff := &TimeOffRequest{
		EmployeeID: request.EmployeeID,
		Type:       kind,
		StartDate:  start,
		EndDate:    end,
		Status:     "pending",
		Reason:     request.Reason,
	}
	if err := c.timeOffRepo.Create(ctx, timeOff); err != nil {
		return nil, err
	}

	c.publish(timeOff)
	return timeOff, nil
}

func (c *TimeOffController) ListByEmployee(ctx context.Context, employeeID int) ([]*TimeOffRequest, error) {
	return c.timeOffRepo.GetByEmployee(ctx, employeeID)
}

func (c *TimeOffController) UpdateStatus(ctx context.Context, id int, status string) (*TimeOffRequest, error) {
	log := c.log.Function("UpdateStatus")

	status = strings.ToLower(strings.TrimSpace(status))
	if !slices.Contains(timeOffStatuses, status) {
		return nil, log.Err("invalid time off status", fmt.Errorf("%w: %q", ErrValidation, status))
	}

	if err := c.timeOffRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	timeOff, err := c.timeOffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.publish(timeOff)
	return timeOff, nil
}

func (c *TimeOffController) publish(timeOff *TimeOffRequest) {
	if c.eventBus == nil {
		return
	}
	if err := c.eventBus.Publish(events.ChannelTimeOff, events.Event{
		Type: events.TypeTimeOffChanged,
		Data: map[string]any{
			"id":         timeOff.ID,
			"employeeId": timeOff.EmployeeID,
			"status":     timeOff.Status,
		},
	}); err != nil {
		c.log.Function("publish").Warn("failed to publish time off event", "id", timeOff.ID, "error", err)
	}
}
