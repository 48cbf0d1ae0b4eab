package ports

import (
	"context"
	"time"

	"github.com/seu-repo/quickpos/internal/domain"
)

// ShiftRepository persists shift records. The shift service is the source
// of truth for the live shift; the repository is a durable write-through.
type ShiftRepository interface {
	Save(ctx context.Context, shift *domain.Shift) error
	FindByID(ctx context.Context, id string) (*domain.Shift, error)
	FindOpen(ctx context.Context) (*domain.Shift, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.Shift, error)
}

type TransactionRepository interface {
	Save(ctx context.Context, tx *domain.Transaction) error
	FindByID(ctx context.Context, id string) (*domain.Transaction, error)
	FindByShiftID(ctx context.Context, shiftID string) ([]domain.Transaction, error)
	FindByDate(ctx context.Context, date time.Time) ([]domain.Transaction, error)
}

type ExpenseRepository interface {
	Save(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id string) error
	FindByDate(ctx context.Context, date time.Time) ([]domain.Expense, error)
}

// Cache is the generic key/value cache used for catalog lookups.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}
