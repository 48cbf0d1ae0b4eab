package checkout

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/adapter/queue"
	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/observability/telemetry"
	"github.com/seu-repo/quickpos/internal/ports"
)

// Options toggle the commit-time gates.
type Options struct {
	// RequireOpenShift rejects commits while no shift is open instead of
	// recording the sale unattached.
	RequireOpenShift bool
}

// Service is the single writer of finished transactions. Commit validates
// against the cart, the subscription gate and the shift under one lock, so
// two concurrent commits can never both consume the last quota slot.
type Service struct {
	commitMu sync.Mutex

	cart    ports.CartService
	gate    ports.SubscriptionService
	shifts  ports.ShiftService
	pricing ports.PricingRule
	txRepo  ports.TransactionRepository
	mq      queue.MessageQueue
	clock   ports.Clock
	ids     ports.IDGenerator
	log     *zap.Logger
	opts    Options

	historyMu sync.RWMutex
	history   []domain.Transaction
}

func NewService(
	cart ports.CartService,
	gate ports.SubscriptionService,
	shifts ports.ShiftService,
	pricing ports.PricingRule,
	txRepo ports.TransactionRepository,
	mq queue.MessageQueue,
	clock ports.Clock,
	ids ports.IDGenerator,
	log *zap.Logger,
	opts Options,
) ports.CheckoutService {
	return &Service{
		cart:    cart,
		gate:    gate,
		shifts:  shifts,
		pricing: pricing,
		txRepo:  txRepo,
		mq:      mq,
		clock:   clock,
		ids:     ids,
		log:     log,
		opts:    opts,
	}
}

// Commit turns the current cart into an immutable transaction. Validation
// order is fixed: empty cart, then quota, then shift. Nothing is mutated
// until every check has passed; after the first mutation nothing can fail.
func (s *Service) Commit(ctx context.Context, method domain.PaymentMethod) (*domain.Transaction, error) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	snapshot := s.cart.Snapshot()
	if len(snapshot.Items) == 0 {
		telemetry.CommitRejections.WithLabelValues("empty_cart").Inc()
		return nil, domain.ErrEmptyCart
	}
	if !s.gate.CanTransact() {
		telemetry.CommitRejections.WithLabelValues("quota").Inc()
		return nil, domain.ErrQuotaExceeded
	}

	shift := s.shifts.CurrentShift()
	shiftOpen := shift != nil && shift.IsOpen
	if s.opts.RequireOpenShift && !shiftOpen {
		telemetry.CommitRejections.WithLabelValues("no_shift").Inc()
		return nil, domain.ErrShiftRequired
	}

	discount, tax := s.pricing.Apply(snapshot)
	tx := &domain.Transaction{
		ID:            s.ids.NewID(),
		Items:         snapshot.Items,
		Customer:      snapshot.Customer,
		Subtotal:      snapshot.Subtotal,
		Discount:      discount,
		Tax:           tax,
		Total:         snapshot.Subtotal - discount + tax,
		PaymentMethod: method,
		CreatedAt:     s.clock.Now(),
	}

	if shiftOpen {
		tx.ShiftID = shift.ID
		if err := s.shifts.RecordTransaction(ctx, tx); err != nil {
			// The shift closed between the check and the record.
			telemetry.CommitRejections.WithLabelValues("no_shift").Inc()
			return nil, err
		}
	}

	// Point of no return: in-memory mutations only from here on.
	s.gate.RecordUsage()
	s.cart.Clear()

	s.historyMu.Lock()
	s.history = append(s.history, *tx)
	s.historyMu.Unlock()

	if err := s.txRepo.Save(ctx, tx); err != nil {
		// The committed transaction stays authoritative in memory.
		s.log.Warn("transaction write-through failed",
			zap.String("transaction_id", tx.ID),
			zap.Error(err),
		)
	}
	s.publish("transaction.recorded", tx)

	telemetry.TransactionsCommitted.WithLabelValues(string(method)).Inc()
	telemetry.SalesTotal.Add(tx.Total)
	s.log.Info("transaction committed",
		zap.String("transaction_id", tx.ID),
		zap.String("payment_method", string(method)),
		zap.Float64("total", tx.Total),
		zap.Int("items", tx.ItemCount()),
	)

	out := *tx
	return &out, nil
}

// History returns the transactions committed in this process, oldest first.
func (s *Service) History() []domain.Transaction {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()
	out := make([]domain.Transaction, len(s.history))
	copy(out, s.history)
	return out
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
