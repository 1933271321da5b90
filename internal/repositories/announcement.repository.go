package repositories

import (
	"context"

	"shiftwatch/internal/database"
	"shiftwatch/internal/logger"
	. "shiftwatch/internal/models"

	"gorm.io/gorm"
)

type AnnouncementRepository interface {
	GetAll(ctx context.Context) ([]*Announcement, error)
	Create(ctx context.Context, announcement *Announcement) error
	Delete(ctx context.Context, id int) error
	DeleteAll(ctx context.Context) error
}

type announcementRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAnnouncement(db database.DB) AnnouncementRepository {
	return &announcementRepository{
		db:  db,
		log: logger.New("announcementRepository"),
	}
}

func (r *announcementRepository) getDB(ctx context.Context) *gorm.DB {
	return txDB(ctx, r.db)
}

func (r *announcementRepository) GetAll(ctx context.Context) ([]*Announcement, error) {
	log := r.log.Function("GetAll")

	var announcements []*Announcement
	if err := r.getDB(ctx).Order("date DESC, id DESC").Find(&announcements).Error; err != nil {
		return nil, log.Err("failed to get announcements", err)
	}

	return announcements, nil
}

func (r *announcementRepository) Create(ctx context.Context, announcement *Announcement) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(announcement).Error; err != nil {
		return log.Err("failed to create announcement", err, "title", announcement.Title)
	}

	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id int) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&Announcement{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete announcement", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return log.Err("failed to delete announcement", ErrNotFound, "id", id)
	}

	return nil
}

func (r *announcementRepository) DeleteAll(ctx context.Context) error {
	log := r.log.Function("DeleteAll")

	if err := r.getDB(ctx).Where("1 = 1").Delete(&Announcement{}).Error; err != nil {
		return log.Err("failed to delete announcements", err)
	}

	return nil
}
