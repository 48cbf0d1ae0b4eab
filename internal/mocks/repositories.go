package mocks

import (
	"context"
	"time"

	"github.com/seu-repo/quickpos/internal/domain"
)

// MockShiftRepository is a func-field mock of ports.ShiftRepository.
// Unset funcs behave as happy-path no-ops.
type MockShiftRepository struct {
	SaveFunc     func(ctx context.Context, shift *domain.Shift) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.Shift, error)
	FindOpenFunc func(ctx context.Context) (*domain.Shift, error)
	FindAllFunc  func(ctx context.Context, limit, offset int) ([]domain.Shift, error)

	Saved []domain.Shift
}

func (m *MockShiftRepository) Save(ctx context.Context, shift *domain.Shift) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, shift)
	}
	m.Saved = append(m.Saved, *shift)
	return nil
}

func (m *MockShiftRepository) FindByID(ctx context.Context, id string) (*domain.Shift, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockShiftRepository) FindOpen(ctx context.Context) (*domain.Shift, error) {
	if m.FindOpenFunc != nil {
		return m.FindOpenFunc(ctx)
	}
	return nil, nil
}

func (m *MockShiftRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Shift, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, limit, offset)
	}
	return []domain.Shift{}, nil
}

// MockTransactionRepository is a func-field mock of ports.TransactionRepository.
type MockTransactionRepository struct {
	SaveFunc          func(ctx context.Context, tx *domain.Transaction) error
	FindByIDFunc      func(ctx context.Context, id string) (*domain.Transaction, error)
	FindByShiftIDFunc func(ctx context.Context, shiftID string) ([]domain.Transaction, error)
	FindByDateFunc    func(ctx context.Context, date time.Time) ([]domain.Transaction, error)

	Saved []domain.Transaction
}

func (m *MockTransactionRepository) Save(ctx context.Context, tx *domain.Transaction) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx)
	}
	m.Saved = append(m.Saved, *tx)
	return nil
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTransactionRepository) FindByShiftID(ctx context.Context, shiftID string) ([]domain.Transaction, error) {
	if m.FindByShiftIDFunc != nil {
		return m.FindByShiftIDFunc(ctx, shiftID)
	}
	return []domain.Transaction{}, nil
}

func (m *MockTransactionRepository) FindByDate(ctx context.Context, date time.Time) ([]domain.Transaction, error) {
	if m.FindByDateFunc != nil {
		return m.FindByDateFunc(ctx, date)
	}
	return []domain.Transaction{}, nil
}

// MockExpenseRepository is a func-field mock of ports.ExpenseRepository.
type MockExpenseRepository struct {
	SaveFunc       func(ctx context.Context, expense *domain.Expense) error
	DeleteFunc     func(ctx context.Context, id string) error
	FindByDateFunc func(ctx context.Context, date time.Time) ([]domain.Expense, error)

	Saved   []domain.Expense
	Deleted []string
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *domain.Expense) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, expense)
	}
	m.Saved = append(m.Saved, *expense)
	return nil
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *MockExpenseRepository) FindByDate(ctx context.Context, date time.Time) ([]domain.Expense, error) {
	if m.FindByDateFunc != nil {
		return m.FindByDateFunc(ctx, date)
	}
	return []domain.Expense{}, nil
}
