package repositories

import (
	"context"

	"shiftwatch/internal/database"
	"shiftwatch/internal/logger"
	. "shiftwatch/internal/models"

	"gorm.io/gorm"
)

type TimeOffRepository interface {
	GetAll(ctx context.Context) ([]*TimeOffRequest, error)
	GetByID(ctx context.Context, id int) (*TimeOffRequest, error)
	GetByEmployee(ctx context.Context, employeeID int) ([]*TimeOffRequest, error)
	Create(ctx context.Context, request *TimeOffRequest) error
	UpdateStatus(ctx context.Context, id int, status string) error
}

type timeOffRepository struct {
	db  database.DB
	log logger.Logger
}

func NewTimeOff(db database.DB) TimeOffRepository {
	return &timeOffRepository{
		db:  db,
		log: logger.New("timeOffRepository"),
	}
}

func (r *timeOffRepository) getDB(ctx context.Context) *gorm.DB {
	return txDB(ctx, r.db)
}

func (r *timeOffRepository) GetAll(ctx context.Context) ([]*TimeOffRequest, error) {
	log := r.log.Function("GetAll")

	var requests []*TimeOffRequest
	if err := r.getDB(ctx).Order("start_date, id").Find(&requests).Error; err != nil {
		return nil, log.Err("failed to get time off requests", err)
	}

	return requests, nil
}

func (r *timeOffRepository) GetByID(ctx context.Context, id int) (*TimeOffRequest, error) {
	log := r.log.Function("GetByID")

	var request TimeOffRequest
	if err := r.getDB(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get time off request", notFound(err, "time off request"), "id", id)
	}

	return &request, nil
}

func (r *timeOffRepository) GetByEmployee(ctx context.Context, employeeID int) ([]*TimeOffRequest, error) {
	log := r.log.Function("GetByEmployee")

	var requests []*TimeOffRequest
	if err := r.getDB(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date, id").
		Find(&requests).Error; err != nil {
		return nil, log.Err("failed to get time off requests", err, "employeeID", employeeID)
	}

	return requests, nil
}

func (r *timeOffRepository) Create(ctx context.Context, request *TimeOffRequest) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(request).Error; err != nil {
		return log.Err("failed to create time off request", err, "employeeID", request.EmployeeID)
	}

	return nil
}

func (r *timeOffRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	log := r.log.Function("UpdateStatus")

	result := r.getDB(ctx).Model(&TimeOffRequest{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return log.Err("failed to update time off status", result.Error, "id", id, "status", status)
	}
	if result.RowsAffected == 0 {
		return log.Err("failed to update time off status", ErrNotFound, "id", id)
	}

	return nil
}
