package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/ports"
)

// In-memory repositories back a register that runs without a database.
// Data lives for the process lifetime only.

type ShiftRepository struct {
	mu     sync.RWMutex
	shifts map[string]domain.Shift
}

func NewShiftRepository() ports.ShiftRepository {
	return &ShiftRepository{shifts: make(map[string]domain.Shift)}
}

func (r *ShiftRepository) Save(ctx context.Context, shift *domain.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shifts[shift.ID] = *shift
	return nil
}

func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*domain.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.shifts[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *ShiftRepository) FindOpen(ctx context.Context) (*domain.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.shifts {
		if s.IsOpen {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ShiftRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 {
		limit = 20
	}

	all := make([]domain.Shift, 0, len(r.shifts))
	for _, s := range r.shifts {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OpenedAt.After(all[j].OpenedAt) })

	if offset >= len(all) {
		return []domain.Shift{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

type TransactionRepository struct {
	mu  sync.RWMutex
	txs []domain.Transaction
}

func NewTransactionRepository() ports.TransactionRepository {
	return &TransactionRepository{}
}

func (r *TransactionRepository) Save(ctx context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.txs {
		if r.txs[i].ID == tx.ID {
			r.txs[i] = *tx
			return nil
		}
	}
	r.txs = append(r.txs, *tx)
	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.txs {
		if r.txs[i].ID == id {
			out := r.txs[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (r *TransactionRepository) FindByShiftID(ctx context.Context, shiftID string) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Transaction, 0)
	for _, tx := range r.txs {
		if tx.ShiftID == shiftID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *TransactionRepository) FindByDate(ctx context.Context, date time.Time) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	out := make([]domain.Transaction, 0)
	for _, tx := range r.txs {
		if !tx.CreatedAt.Before(start) && tx.CreatedAt.Before(end) {
			out = append(out, tx)
		}
	}
	return out, nil
}

type ExpenseRepository struct {
	mu       sync.RWMutex
	expenses []domain.Expense
}

func NewExpenseRepository() ports.ExpenseRepository {
	return &ExpenseRepository{}
}

func (r *ExpenseRepository) Save(ctx context.Context, expense *domain.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.expenses {
		if r.expenses[i].ID == expense.ID {
			r.expenses[i] = *expense
			return nil
		}
	}
	r.expenses = append(r.expenses, *expense)
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.expenses {
		if r.expenses[i].ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *ExpenseRepository) FindByDate(ctx context.Context, date time.Time) ([]domain.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	out := make([]domain.Expense, 0)
	for _, e := range r.expenses {
		if !e.Date.Before(start) && e.Date.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}
