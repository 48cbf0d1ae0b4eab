package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/mocks"
	"github.com/seu-repo/quickpos/internal/service/cart"
	"github.com/seu-repo/quickpos/internal/service/shift"
	"github.com/seu-repo/quickpos/internal/service/subscription"
	"github.com/seu-repo/quickpos/internal/ports"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

type fixture struct {
	svc    ports.CheckoutService
	cart   ports.CartService
	gate   ports.SubscriptionService
	shifts ports.ShiftService
	txRepo *mocks.MockTransactionRepository
	mq     *mocks.MockMessageQueue
}

func newFixture(t *testing.T, plan domain.SubscriptionPlan, opts Options) *fixture {
	t.Helper()
	log := newTestLogger()
	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	ids := &mocks.MockIDGenerator{}
	mq := mocks.NewMockMessageQueue()

	c := cart.NewService(log)
	gate := subscription.NewService(plan, log)
	shifts := shift.NewService(&mocks.MockShiftRepository{}, mq, clock, ids, log)
	txRepo := &mocks.MockTransactionRepository{}

	svc := NewService(c, gate, shifts, DefaultPricing(), txRepo, mq, clock, ids, log, opts)
	return &fixture{svc: svc, cart: c, gate: gate, shifts: shifts, txRepo: txRepo, mq: mq}
}

func addCoffee(f *fixture, quantity int) {
	f.cart.AddItem(domain.CartItem{ProductID: "p1", Name: "Coffee", UnitPrice: 25000})
	for i := 1; i < quantity; i++ {
		f.cart.AddItem(domain.CartItem{ProductID: "p1", Name: "Coffee", UnitPrice: 25000})
	}
}

func TestCommit_EmptyCart(t *testing.T) {
	f := newFixture(t, domain.PlanBasic, Options{})

	_, err := f.svc.Commit(context.Background(), domain.PaymentMethodCash)

	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCommit_Success(t *testing.T) {
	// Arrange
	f := newFixture(t, domain.PlanBasic, Options{})
	if _, err := f.shifts.OpenShift(context.Background(), 100000); err != nil {
		t.Fatalf("open shift failed: %v", err)
	}
	addCoffee(f, 2)

	// Act
	tx, err := f.svc.Commit(context.Background(), domain.PaymentMethodCash)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tx.Subtotal != 50000 {
		t.Errorf("expected subtotal 50000, got %.0f", tx.Subtotal)
	}
	if tx.Discount != 5000 {
		t.Errorf("expected 10%% discount of 5000, got %.0f", tx.Discount)
	}
	if tx.Tax != 0 {
		t.Errorf("expected zero tax, got %.0f", tx.Tax)
	}
	if tx.Total != 45000 {
		t.Errorf("expected total 45000, got %.0f", tx.Total)
	}
	if f.cart.ItemCount() != 0 {
		t.Error("expected cart cleared after commit")
	}
	if f.gate.UsedThisMonth() != 1 {
		t.Errorf("expected 1 usage recorded, got %d", f.gate.UsedThisMonth())
	}
	if got := len(f.shifts.CurrentShift().Transactions); got != 1 {
		t.Errorf("expected transaction in shift, got %d", got)
	}
	if len(f.txRepo.Saved) != 1 {
		t.Errorf("expected transaction persisted, got %d saves", len(f.txRepo.Saved))
	}
	if got := len(f.mq.GetPublishedMessages("transaction.recorded")); got != 1 {
		t.Errorf("expected 1 transaction.recorded event, got %d", got)
	}
	if len(f.svc.History()) != 1 {
		t.Errorf("expected 1 history entry, got %d", len(f.svc.History()))
	}
}

func TestCommit_QuotaExceeded(t *testing.T) {
	// Arrange: the free plan allows 25 transactions per month.
	f := newFixture(t, domain.PlanFree, Options{})
	for i := 0; i < 25; i++ {
		f.gate.RecordUsage()
	}
	addCoffee(f, 1)

	// Act
	_, err := f.svc.Commit(context.Background(), domain.PaymentMethodCash)

	// Assert
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
	if f.cart.ItemCount() != 1 {
		t.Error("expected cart untouched after rejected commit")
	}
	if f.gate.UsedThisMonth() != 25 {
		t.Errorf("expected usage counter untouched, got %d", f.gate.UsedThisMonth())
	}
}

func TestCommit_ShiftRequired(t *testing.T) {
	f := newFixture(t, domain.PlanBasic, Options{RequireOpenShift: true})
	addCoffee(f, 1)

	_, err := f.svc.Commit(context.Background(), domain.PaymentMethodCash)

	if !errors.Is(err, domain.ErrShiftRequired) {
		t.Errorf("expected ErrShiftRequired, got %v", err)
	}
	if f.cart.ItemCount() != 1 {
		t.Error("expected cart untouched after rejected commit")
	}
}

func TestCommit_WithoutShiftWhenNotRequired(t *testing.T) {
	f := newFixture(t, domain.PlanBasic, Options{})
	addCoffee(f, 1)

	tx, err := f.svc.Commit(context.Background(), domain.PaymentMethodCard)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tx.ShiftID != "" {
		t.Errorf("expected no shift attached, got %q", tx.ShiftID)
	}
}

func TestCommit_CarriesCustomer(t *testing.T) {
	f := newFixture(t, domain.PlanBasic, Options{})
	addCoffee(f, 1)
	f.cart.AttachCustomer(&domain.Customer{ID: "c1", Name: "Budi", Phone: "0812"})

	tx, err := f.svc.Commit(context.Background(), domain.PaymentMethodQRIS)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tx.Customer == nil || tx.Customer.Name != "Budi" {
		t.Errorf("expected customer carried onto transaction, got %+v", tx.Customer)
	}
	if f.cart.Customer() != nil {
		t.Error("expected customer detached when cart cleared")
	}
}

func TestCommit_RepositoryFailureDoesNotFailCommit(t *testing.T) {
	f := newFixture(t, domain.PlanBasic, Options{})
	f.txRepo.SaveFunc = func(ctx context.Context, tx *domain.Transaction) error {
		return errors.New("database down")
	}
	addCoffee(f, 1)

	tx, err := f.svc.Commit(context.Background(), domain.PaymentMethodCash)

	if err != nil {
		t.Fatalf("expected commit to survive repository failure, got %v", err)
	}
	if len(f.svc.History()) != 1 || f.svc.History()[0].ID != tx.ID {
		t.Error("expected transaction in history despite repository failure")
	}
}

func TestCommit_QuotaConsumedSequentially(t *testing.T) {
	// Arrange: exactly one quota slot left.
	f := newFixture(t, domain.PlanFree, Options{})
	for i := 0; i < 24; i++ {
		f.gate.RecordUsage()
	}
	addCoffee(f, 1)

	// Act: first commit takes the slot, second finds the cart empty and
	// the gate shut.
	if _, err := f.svc.Commit(context.Background(), domain.PaymentMethodCash); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	addCoffee(f, 1)
	_, err := f.svc.Commit(context.Background(), domain.PaymentMethodCash)

	// Assert
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestHistory_ReturnsCopy(t *testing.T) {
	f := newFixture(t, domain.PlanBasic, Options{})
	addCoffee(f, 1)
	if _, err := f.svc.Commit(context.Background(), domain.PaymentMethodCash); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	history := f.svc.History()
	history[0].Total = -1

	if f.svc.History()[0].Total == -1 {
		t.Error("mutating the returned history leaked into the service")
	}
}
