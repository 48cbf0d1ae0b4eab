package postgres

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/ports"
)

type ExpenseRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewExpenseRepository(db *gorm.DB, log *zap.Logger) ports.ExpenseRepository {
	return &ExpenseRepository{
		db:  db,
		log: log,
	}
}

func (r *ExpenseRepository) Save(ctx context.Context, expense *domain.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Expense{}, "id = ?", id).Error
}

func (r *ExpenseRepository) FindByDate(ctx context.Context, date time.Time) ([]domain.Expense, error) {
	var expenses []domain.Expense
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)
	err := r.db.WithContext(ctx).Where("date >= ? AND date < ?", startOfDay, endOfDay).Order("date asc").Find(&expenses).Error
	return expenses, err
}
