package shift

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newTestService() (*Service, *mocks.MockShiftRepository, *mocks.MockMessageQueue, *mocks.MockClock) {
	repo := &mocks.MockShiftRepository{}
	mq := mocks.NewMockMessageQueue()
	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	svc := NewService(repo, mq, clock, &mocks.MockIDGenerator{}, newTestLogger()).(*Service)
	return svc, repo, mq, clock
}

func cashTx(id string, total float64) *domain.Transaction {
	return &domain.Transaction{
		ID:            id,
		Items:         []domain.CartItem{{ProductID: "p-" + id, Name: "Item " + id, UnitPrice: total, Quantity: 1}},
		Subtotal:      total,
		Total:         total,
		PaymentMethod: domain.PaymentMethodCash,
	}
}

func TestOpenShift_Success(t *testing.T) {
	// Arrange
	svc, repo, mq, _ := newTestService()

	// Act
	shift, err := svc.OpenShift(context.Background(), 100.00)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !shift.IsOpen {
		t.Error("expected shift open")
	}
	if shift.OpeningCash != 100.00 {
		t.Errorf("expected opening cash 100.00, got %.2f", shift.OpeningCash)
	}
	if len(repo.Saved) != 1 {
		t.Errorf("expected shift persisted, got %d saves", len(repo.Saved))
	}
	if got := len(mq.GetPublishedMessages("shift.opened")); got != 1 {
		t.Errorf("expected 1 shift.opened event, got %d", got)
	}
}

func TestOpenShift_NegativeCash(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.OpenShift(context.Background(), -1)

	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if svc.CurrentShift() != nil {
		t.Error("expected no shift created")
	}
}

func TestOpenShift_AlreadyOpen(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.OpenShift(context.Background(), 50); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	_, err := svc.OpenShift(context.Background(), 80)

	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRecordTransaction_NoShift(t *testing.T) {
	svc, _, _, _ := newTestService()

	err := svc.RecordTransaction(context.Background(), cashTx("t1", 10))

	if !errors.Is(err, domain.ErrShiftClosed) {
		t.Errorf("expected ErrShiftClosed, got %v", err)
	}
}

func TestRecordTransaction_AppendsWhileOpen(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.OpenShift(context.Background(), 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if err := svc.RecordTransaction(context.Background(), cashTx("t1", 23.50)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	shift := svc.CurrentShift()
	if len(shift.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(shift.Transactions))
	}
}

func TestRecordTransaction_RejectedAfterClose(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.OpenShift(context.Background(), 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := svc.CloseShift(context.Background(), 100); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	err := svc.RecordTransaction(context.Background(), cashTx("t1", 10))

	if !errors.Is(err, domain.ErrShiftClosed) {
		t.Errorf("expected ErrShiftClosed, got %v", err)
	}
	if got := len(svc.CurrentShift().Transactions); got != 0 {
		t.Errorf("expected transaction list untouched, got %d", got)
	}
}

func TestCloseShift_ZeroVarianceWhenDrawerBalances(t *testing.T) {
	// Arrange: open 100, one 23.50 cash sale, count 123.50
	svc, _, mq, _ := newTestService()
	if _, err := svc.OpenShift(context.Background(), 100.00); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := svc.RecordTransaction(context.Background(), cashTx("t1", 23.50)); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	// Act
	summary, err := svc.CloseShift(context.Background(), 123.50)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.CashVariance != 0 {
		t.Errorf("expected zero variance, got %.2f", summary.CashVariance)
	}
	if summary.TotalSales != 23.50 {
		t.Errorf("expected total sales 23.50, got %.2f", summary.TotalSales)
	}
	if summary.TransactionCount != 1 {
		t.Errorf("expected 1 transaction, got %d", summary.TransactionCount)
	}
	if got := len(mq.GetPublishedMessages("shift.closed")); got != 1 {
		t.Errorf("expected 1 shift.closed event, got %d", got)
	}
}

func TestCloseShift_VarianceIgnoresNonCashSales(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.OpenShift(context.Background(), 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := svc.RecordTransaction(context.Background(), cashTx("t1", 20)); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	cardTx := cashTx("t2", 50)
	cardTx.PaymentMethod = domain.PaymentMethodCard
	if err := svc.RecordTransaction(context.Background(), cardTx); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	summary, err := svc.CloseShift(context.Background(), 120)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}

	// Drawer expects opening 100 + cash 20 = 120; card sale is not in it.
	if summary.CashVariance != 0 {
		t.Errorf("expected zero variance, got %.2f", summary.CashVariance)
	}
	if summary.TotalSales != 70 {
		t.Errorf("expected total sales 70, got %.2f", summary.TotalSales)
	}
}

func TestCloseShift_IsTerminal(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.OpenShift(context.Background(), 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := svc.CloseShift(context.Background(), 100); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	_, err := svc.CloseShift(context.Background(), 100)

	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCloseShift_NoShift(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CloseShift(context.Background(), 100)

	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestSummary_BestSellersOrderedByQuantity(t *testing.T) {
	// Arrange
	svc, _, _, _ := newTestService()
	if _, err := svc.OpenShift(context.Background(), 0); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	tx := &domain.Transaction{
		ID: "t1",
		Items: []domain.CartItem{
			{ProductID: "a", Name: "Americano", UnitPrice: 3, Quantity: 2},
			{ProductID: "b", Name: "Bagel", UnitPrice: 2, Quantity: 5},
		},
		Total:         16,
		PaymentMethod: domain.PaymentMethodCash,
	}
	if err := svc.RecordTransaction(context.Background(), tx); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	// Act
	summary, err := svc.Summary()

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(summary.BestSellers) != 2 {
		t.Fatalf("expected 2 best sellers, got %d", len(summary.BestSellers))
	}
	if summary.BestSellers[0].ProductID != "b" || summary.BestSellers[0].Quantity != 5 {
		t.Errorf("expected bagel first with quantity 5, got %+v", summary.BestSellers[0])
	}
}

func TestSummary_NoShift(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Summary()

	if !errors.Is(err, domain.ErrShiftRequired) {
		t.Errorf("expected ErrShiftRequired, got %v", err)
	}
}

func TestOpenShift_RepositoryError(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.SaveFunc = func(ctx context.Context, shift *domain.Shift) error {
		return errors.New("database down")
	}

	_, err := svc.OpenShift(context.Background(), 100)

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if svc.CurrentShift() != nil {
		t.Error("expected no shift created on persistence failure")
	}
}

func TestCurrentShift_ReturnsCopy(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.OpenShift(context.Background(), 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	shift := svc.CurrentShift()
	shift.Transactions = append(shift.Transactions, domain.Transaction{ID: "forged"})
	shift.IsOpen = false

	if got := svc.CurrentShift(); len(got.Transactions) != 0 || !got.IsOpen {
		t.Error("mutating the returned shift leaked into the service")
	}
}
