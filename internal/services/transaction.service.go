package services

import (
	"context"

	"shiftwatch/internal/database"
	"shiftwatch/internal/logger"

	"gorm.io/gorm"
)

type txKey struct{}

// GetTransaction returns the transaction carried by ctx, if any.
// Repositories use it so their writes join the caller's transaction.
func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

// Execute runs fn inside a transaction. A transaction already present in
// ctx is reused, so nested calls commit or roll back with the outermost one.
func (s *TransactionService) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := GetTransaction(ctx); ok {
		return fn(ctx)
	}

	log := s.log.Function("Execute")
	err := s.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	if err != nil {
		log.Debug("transaction rolled back", "error", err)
		return err
	}
	return nil
}
