package expense

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/ports"
)

// Service records out-of-drawer spending (supplies, petty cash) against
// the business day. Unlike the cart it is repository-backed from the
// start; expenses outlive the process.
type Service struct {
	repo  ports.ExpenseRepository
	clock ports.Clock
	ids   ports.IDGenerator
	log   *zap.Logger
}

func NewService(repo ports.ExpenseRepository, clock ports.Clock, ids ports.IDGenerator, log *zap.Logger) ports.ExpenseService {
	return &Service{
		repo:  repo,
		clock: clock,
		ids:   ids,
		log:   log,
	}
}

func (s *Service) Add(ctx context.Context, description string, amount float64) (*domain.Expense, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = "Pengeluaran"
	}

	exp := &domain.Expense{
		ID:          s.ids.NewID(),
		Description: description,
		Amount:      amount,
		Date:        s.clock.Now(),
	}
	if err := s.repo.Save(ctx, exp); err != nil {
		return nil, err
	}

	s.log.Info("expense recorded",
		zap.String("expense_id", exp.ID),
		zap.Float64("amount", amount),
	)
	return exp, nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Today lists the current day's expenses and their total.
func (s *Service) Today(ctx context.Context) ([]domain.Expense, float64, error) {
	expenses, err := s.repo.FindByDate(ctx, s.clock.Now())
	if err != nil {
		return nil, 0, err
	}
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return expenses, total, nil
}
