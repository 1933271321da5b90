package repositories

import (
	"context"
	"sort"
	"strings"
	"time"

	"shiftwatch/internal/database"
	"shiftwatch/internal/engine"
	"shiftwatch/internal/logger"
	. "shiftwatch/internal/models"

	"gorm.io/gorm"
)

const rosterCachePrefix = "roster:"

type EmployeeFilter struct {
	Department string
	Position   string
}

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int) (*Employee, error)
	Find(ctx context.Context, filter EmployeeFilter) ([]*Employee, error)
	GetByDepartment(ctx context.Context, department string) ([]*Employee, error)
	Departments(ctx context.Context) ([]string, error)
	Positions(ctx context.Context) ([]string, error)
	Create(ctx context.Context, employee *Employee) error
	UpdateScheduleDay(ctx context.Context, employeeID int, day engine.DayKey, shift string) (*Schedule, error)
	InvalidateRoster(ctx context.Context, department string) error
}

type employeeRepository struct {
	db        database.DB
	rosterTTL time.Duration
	log       logger.Logger
}

func NewEmployee(db database.DB, rosterTTL time.Duration) EmployeeRepository {
	return &employeeRepository{
		db:        db,
		rosterTTL: rosterTTL,
		log:       logger.New("employeeRepository"),
	}
}

func (r *employeeRepository) getDB(ctx context.Context) *gorm.DB {
	return txDB(ctx, r.db)
}

func (r *employeeRepository) GetByID(ctx context.Context, id int) (*Employee, error) {
	log := r.log.Function("GetByID")

	var employee Employee
	if err := r.getDB(ctx).Preload("Schedule").First(&employee, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get employee", notFound(err, "employee"), "id", id)
	}

	return &employee, nil
}

// Find returns employees in load order. A department-only filter is served
// from the roster cache when one is configured.
func (r *employeeRepository) Find(ctx context.Context, filter EmployeeFilter) ([]*Employee, error) {
	if filter.Department != "" && filter.Position == "" {
		return r.GetByDepartment(ctx, filter.Department)
	}
	return r.find(ctx, filter)
}

func (r *employeeRepository) find(ctx context.Context, filter EmployeeFilter) ([]*Employee, error) {
	log := r.log.Function("find")

	query := r.getDB(ctx).Preload("Schedule").Order("id")
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Position != "" {
		query = query.Where("position = ?", filter.Position)
	}

	var employees []*Employee
	if err := query.Find(&employees).Error; err != nil {
		return nil, log.Err("failed to find employees", err,
			"department", filter.Department, "position", filter.Position)
	}

	return employees, nil
}

func (r *employeeRepository) GetByDepartment(ctx context.Context, department string) ([]*Employee, error) {
	log := r.log.Function("GetByDepartment")

	var employees []*Employee
	found, err := database.NewCacheBuilder(r.db.Cache.Roster, rosterCachePrefix+department).
		WithContext(ctx).
		Get(&employees)
	if err != nil {
		log.Warn("roster cache read failed", "department", department, "error", err)
	}
	if found {
		return employees, nil
	}

	employees, err = r.find(ctx, EmployeeFilter{Department: department})
	if err != nil {
		return nil, err
	}

	if err := database.NewCacheBuilder(r.db.Cache.Roster, rosterCachePrefix+department).
		WithStruct(employees).
		WithTTL(r.rosterTTL).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("roster cache write failed", "department", department, "error", err)
	}

	return employees, nil
}

func (r *employeeRepository) Departments(ctx context.Context) ([]string, error) {
	log := r.log.Function("Departments")

	var values []string
	if err := r.getDB(ctx).Model(&Employee{}).Where("department IS NOT NULL").Distinct().Pluck("department", &values).Error; err != nil {
		return nil, log.Err("failed to list departments", err)
	}

	return cleanDistinct(values), nil
}

func (r *employeeRepository) Positions(ctx context.Context) ([]string, error) {
	log := r.log.Function("Positions")

	var values []string
	if err := r.getDB(ctx).Model(&Employee{}).Where("position IS NOT NULL").Distinct().Pluck("position", &values).Error; err != nil {
		return nil, log.Err("failed to list positions", err)
	}

	return cleanDistinct(values), nil
}

// cleanDistinct trims, drops blanks and spreadsheet "nan" cells, then sorts.
func cleanDistinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	cleaned := []string{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || strings.EqualFold(v, "nan") || seen[v] {
			continue
		}
		seen[v] = true
		cleaned = append(cleaned, v)
	}
	sort.Strings(cleaned)
	return cleaned
}

func (r *employeeRepository) Create(ctx context.Context, employee *Employee) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(employee).Error; err != nil {
		return log.Err("failed to create employee", err, "name", employee.Name)
	}

	if err := r.InvalidateRoster(ctx, employee.Department); err != nil {
		log.Warn("failed to invalidate roster", "department", employee.Department, "error", err)
	}
	return nil
}

func (r *employeeRepository) UpdateScheduleDay(
	ctx context.Context,
	employeeID int,
	day engine.DayKey,
	shift string,
) (*Schedule, error) {
	log := r.log.Function("UpdateScheduleDay")

	var schedule Schedule
	if err := r.getDB(ctx).First(&schedule, "employee_id = ?", employeeID).Error; err != nil {
		return nil, log.Err("failed to get schedule", notFound(err, "schedule"), "employeeID", employeeID)
	}

	schedule.SetDay(day, shift)
	if err := r.getDB(ctx).Model(&schedule).Update(day.String(), shift).Error; err != nil {
		return nil, log.Err("failed to update schedule", err, "employeeID", employeeID, "day", day)
	}

	return &schedule, nil
}

func (r *employeeRepository) InvalidateRoster(ctx context.Context, department string) error {
	if err := database.NewCacheBuilder(r.db.Cache.Roster, rosterCachePrefix+department).
		WithContext(ctx).
		Delete(); err != nil {
		return r.log.Function("InvalidateRoster").
			Err("failed to delete roster from cache", err, "department", department)
	}
	return nil
}
