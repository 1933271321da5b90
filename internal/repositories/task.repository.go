package repositories

import (
	"context"

	"shiftwatch/internal/database"
	"shiftwatch/internal/logger"
	. "shiftwatch/internal/models"

	"gorm.io/gorm"
)

type TaskRepository interface {
	GetAll(ctx context.Context) ([]*Task, error)
	GetBySuggestionID(ctx context.Context, suggestionID string) ([]*Task, error)
	Create(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id int) error
}

type taskRepository struct {
	db  database.DB
	log logger.Logger
}

func NewTask(db database.DB) TaskRepository {
	return &taskRepository{
		db:  db,
		log: logger.New("taskRepository"),
	}
}

func (r *taskRepository) getDB(ctx context.Context) *gorm.DB {
	return txDB(ctx, r.db)
}

func (r *taskRepository) GetAll(ctx context.Context) ([]*Task, error) {
	log := r.log.Function("GetAll")

	var tasks []*Task
	if err := r.getDB(ctx).Order("id").Find(&tasks).Error; err != nil {
		return nil, log.Err("failed to get tasks", err)
	}

	return tasks, nil
}

func (r *taskRepository) GetBySuggestionID(ctx context.Context, suggestionID string) ([]*Task, error) {
	log := r.log.Function("GetBySuggestionID")

	var tasks []*Task
	if err := r.getDB(ctx).Where("suggestion_id = ?", suggestionID).Order("id").Find(&tasks).Error; err != nil {
		return nil, log.Err("failed to get tasks by suggestion", err, "suggestionID", suggestionID)
	}

	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *Task) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(task).Error; err != nil {
		return log.Err("failed to create task", err, "employeeID", task.EmployeeID)
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&Task{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete task", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return log.Err("failed to delete task", ErrNotFound, "id", id)
	}

	return nil
}
