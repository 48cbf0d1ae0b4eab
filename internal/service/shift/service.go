package shift

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/adapter/queue"
	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/observability/telemetry"
	"github.com/seu-repo/quickpos/internal/ports"
)

// How many best sellers a shift summary carries.
const bestSellerLimit = 5

// Service owns the cash-drawer lifecycle: NoShift -> Open -> Closed.
// The live shift is held in memory; the repository is a durable
// write-through and the queue announces open/close to interested workers.
type Service struct {
	mu      sync.Mutex
	current *domain.Shift
	repo    ports.ShiftRepository
	mq      queue.MessageQueue
	clock   ports.Clock
	ids     ports.IDGenerator
	log     *zap.Logger
}

func NewService(repo ports.ShiftRepository, mq queue.MessageQueue, clock ports.Clock, ids ports.IDGenerator, log *zap.Logger) ports.ShiftService {
	return &Service{
		repo:  repo,
		mq:    mq,
		clock: clock,
		ids:   ids,
		log:   log,
	}
}

// OpenShift starts a new drawer session. Only valid when no shift is open;
// the opening float must not be negative.
func (s *Service) OpenShift(ctx context.Context, openingCash float64) (*domain.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if openingCash < 0 {
		return nil, domain.ErrInvalidAmount
	}
	if s.current != nil && s.current.IsOpen {
		return nil, domain.ErrInvalidTransition
	}

	shift := &domain.Shift{
		ID:          s.ids.NewID(),
		OpenedAt:    s.clock.Now(),
		OpeningCash: openingCash,
		IsOpen:      true,
	}
	if err := s.repo.Save(ctx, shift); err != nil {
		return nil, err
	}
	s.current = shift

	telemetry.ShiftsOpened.Inc()
	s.publish("shift.opened", shift)
	s.log.Info("shift opened",
		zap.String("shift_id", shift.ID),
		zap.Float64("opening_cash", openingCash),
	)

	return copyShift(shift), nil
}

// RecordTransaction appends to the open shift. Recording against a closed
// or missing shift is an error, never a silent drop.
func (s *Service) RecordTransaction(ctx context.Context, tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || !s.current.IsOpen {
		return domain.ErrShiftClosed
	}
	s.current.Transactions = append(s.current.Transactions, *tx)

	if err := s.repo.Save(ctx, s.current); err != nil {
		// The in-memory shift stays authoritative; durability catches up
		// on the next write.
		s.log.Warn("shift write-through failed", zap.Error(err))
	}
	return nil
}

// CloseShift counts the drawer and seals the shift. Closing is terminal.
func (s *Service) CloseShift(ctx context.Context, closingCash float64) (*domain.ShiftSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if closingCash < 0 {
		return nil, domain.ErrInvalidAmount
	}
	if s.current == nil || !s.current.IsOpen {
		return nil, domain.ErrInvalidTransition
	}

	now := s.clock.Now()
	s.current.ClosedAt = &now
	s.current.ClosingCash = &closingCash
	s.current.IsOpen = false

	if err := s.repo.Save(ctx, s.current); err != nil {
		s.log.Warn("shift write-through failed", zap.Error(err))
	}

	summary := summarize(s.current)
	telemetry.ShiftsClosed.Inc()
	s.publish("shift.closed", summary)
	s.log.Info("shift closed",
		zap.String("shift_id", s.current.ID),
		zap.Float64("total_sales", summary.TotalSales),
		zap.Float64("cash_variance", summary.CashVariance),
	)

	return summary, nil
}

// CurrentShift returns a copy of the live shift, or nil when none exists.
func (s *Service) CurrentShift() *domain.Shift {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return copyShift(s.current)
}

// Summary computes the reporting figures for the current shift, open or
// closed. Cash variance is only meaningful once the drawer was counted.
func (s *Service) Summary() (*domain.ShiftSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, domain.ErrShiftRequired
	}
	return summarize(s.current), nil
}

func (s *Service) History(ctx context.Context, limit, offset int) ([]domain.Shift, error) {
	return s.repo.FindAll(ctx, limit, offset)
}

func (s *Service) publish(subject string, payload interface{}) {
	if s.mq == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("failed to marshal event", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := s.mq.Publish(subject, data); err != nil {
		s.log.Error("failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

func copyShift(in *domain.Shift) *domain.Shift {
	out := *in
	out.Transactions = make([]domain.Transaction, len(in.Transactions))
	copy(out.Transactions, in.Transactions)
	return &out
}

func summarize(shift *domain.Shift) *domain.ShiftSummary {
	summary := &domain.ShiftSummary{
		ShiftID:          shift.ID,
		OpenedAt:         shift.OpenedAt,
		ClosedAt:         shift.ClosedAt,
		TransactionCount: len(shift.Transactions),
	}

	byProduct := make(map[string]*domain.ItemSales)
	for _, tx := range shift.Transactions {
		summary.TotalSales += tx.Total
		if tx.PaymentMethod == domain.PaymentMethodCash {
			summary.CashSales += tx.Total
		}
		for _, it := range tx.Items {
			agg, ok := byProduct[it.ProductID]
			if !ok {
				agg = &domain.ItemSales{ProductID: it.ProductID, Name: it.Name}
				byProduct[it.ProductID] = agg
			}
			agg.Quantity += it.Quantity
			agg.Revenue += it.UnitPrice * float64(it.Quantity)
		}
	}

	sellers := make([]domain.ItemSales, 0, len(byProduct))
	for _, agg := range byProduct {
		sellers = append(sellers, *agg)
	}
	sort.Slice(sellers, func(i, j int) bool {
		if sellers[i].Quantity != sellers[j].Quantity {
			return sellers[i].Quantity > sellers[j].Quantity
		}
		return sellers[i].ProductID < sellers[j].ProductID
	})
	if len(sellers) > bestSellerLimit {
		sellers = sellers[:bestSellerLimit]
	}
	summary.BestSellers = sellers

	if shift.ClosingCash != nil {
		summary.CashVariance = *shift.ClosingCash - (shift.OpeningCash + summary.CashSales)
	}
	return summary
}
