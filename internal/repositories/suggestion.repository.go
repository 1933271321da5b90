package repositories

import (
	"context"

	"shiftwatch/internal/database"
	"shiftwatch/internal/logger"
	. "shiftwatch/internal/models"

	"gorm.io/gorm"
)

type SuggestionRepository interface {
	GetByID(ctx context.Context, id string) (*Suggestion, error)
	List(ctx context.Context, status SuggestionStatus) ([]*Suggestion, error)
	CreateBatch(ctx context.Context, suggestions []*Suggestion) error
	CompareAndSetStatus(ctx context.Context, id string, from, to SuggestionStatus) (bool, error)
}

type suggestionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSuggestion(db database.DB) SuggestionRepository {
	return &suggestionRepository{
		db:  db,
		log: logger.New("suggestionRepository"),
	}
}

func (r *suggestionRepository) getDB(ctx context.Context) *gorm.DB {
	return txDB(ctx, r.db)
}

func (r *suggestionRepository) GetByID(ctx context.Context, id string) (*Suggestion, error) {
	log := r.log.Function("GetByID")

	var suggestion Suggestion
	if err := r.getDB(ctx).First(&suggestion, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get suggestion", notFound(err, "suggestion"), "id", id)
	}

	return &suggestion, nil
}

// List returns suggestions newest first. An empty status lists all of them.
func (r *suggestionRepository) List(ctx context.Context, status SuggestionStatus) ([]*Suggestion, error) {
	log := r.log.Function("List")

	query := r.getDB(ctx).Order("created_at DESC, id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var suggestions []*Suggestion
	if err := query.Find(&suggestions).Error; err != nil {
		return nil, log.Err("failed to list suggestions", err, "status", status)
	}

	return suggestions, nil
}

func (r *suggestionRepository) CreateBatch(ctx context.Context, suggestions []*Suggestion) error {
	log := r.log.Function("CreateBatch")

	if len(suggestions) == 0 {
		return nil
	}

	if err := r.getDB(ctx).CreateInBatches(suggestions, 100).Error; err != nil {
		return log.Err("failed to create suggestion batch", err, "count", len(suggestions))
	}

	log.Info("created suggestions", "count", len(suggestions))
	return nil
}

// CompareAndSetStatus moves id from one status to another and reports
// whether a row matched.
func (r *suggestionRepository) CompareAndSetStatus(
	ctx context.Context,
	id string,
	from, to SuggestionStatus,
) (bool, error) {
	log := r.log.Function("CompareAndSetStatus")

	result := r.getDB(ctx).Model(&Suggestion{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, log.Err("failed to update suggestion status", result.Error, "id", id, "from", from, "to", to)
	}

	return result.RowsAffected == 1, nil
}
