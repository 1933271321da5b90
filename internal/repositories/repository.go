package repositories

import (
	"context"
	"errors"
	"fmt"

	"shiftwatch/internal/database"
	. "shiftwatch/internal/models"
	"shiftwatch/internal/services"

	"gorm.io/gorm"
)

// txDB returns the caller's transaction when ctx carries one.
func txDB(ctx context.Context, db database.DB) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return db.SQLWithContext(ctx)
}

// notFound maps gorm's missing-row error onto ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
