package ports

import (
	"context"
	"time"

	"github.com/seu-repo/quickpos/internal/domain"
)

// CartService maintains the working set of lines for the next transaction.
// Derived values are recomputed on every read; there is no cached total.
type CartService interface {
	AddItem(item domain.CartItem)
	RemoveItem(productID string)
	SetQuantity(productID string, quantity int)
	AttachCustomer(customer *domain.Customer)
	Clear()
	Items() []domain.CartItem
	Customer() *domain.Customer
	Subtotal() float64
	ItemCount() int
	Snapshot() domain.CartSnapshot
}

// SubscriptionService answers quota and feature queries for the active plan.
// RecordUsage is the only mutator of the monthly counter.
type SubscriptionService interface {
	CurrentPlan() domain.SubscriptionPlan
	SetPlan(plan domain.SubscriptionPlan)
	Features() domain.PlanFeatures
	HasFeature(flag domain.FeatureFlag) bool
	CanTransact() bool
	Remaining() *int
	UsedThisMonth() int
	RecordUsage()
	ResetMonthlyCount()
}

// ShiftService owns the open/active/closed lifecycle of the cash drawer.
type ShiftService interface {
	OpenShift(ctx context.Context, openingCash float64) (*domain.Shift, error)
	CloseShift(ctx context.Context, closingCash float64) (*domain.ShiftSummary, error)
	RecordTransaction(ctx context.Context, tx *domain.Transaction) error
	CurrentShift() *domain.Shift
	Summary() (*domain.ShiftSummary, error)
	History(ctx context.Context, limit, offset int) ([]domain.Shift, error)
}

// CheckoutService turns the mutable cart into an immutable recorded
// transaction, atomically against gate and shift.
type CheckoutService interface {
	Commit(ctx context.Context, method domain.PaymentMethod) (*domain.Transaction, error)
	History() []domain.Transaction
}

// PaymentSessionService drives the QRIS state machine for one checkout
// attempt at a time.
type PaymentSessionService interface {
	Start(ctx context.Context, amount float64) (*domain.PaymentSession, error)
	CheckStatus(ctx context.Context) (*domain.PaymentSession, error)
	ForceConfirm(ctx context.Context) (*domain.PaymentSession, error)
	Cancel(ctx context.Context) error
	Current() *domain.PaymentSession
	SecondsRemaining() int
	OnState(fn func(session domain.PaymentSession))
	OnConfirmed(fn func(session domain.PaymentSession))
}

type ExpenseService interface {
	Add(ctx context.Context, description string, amount float64) (*domain.Expense, error)
	Remove(ctx context.Context, id string) error
	Today(ctx context.Context) ([]domain.Expense, float64, error)
}

// EmailService sends receipt emails for plans with the receiptExport flag.
type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
	SendHTML(ctx context.Context, to, subject, htmlBody string) error
	SendReceipt(ctx context.Context, to string, tx *domain.Transaction) error
}

// CatalogProduct is what the external catalog collaborator supplies for
// AddItem. The core defines no catalog storage of its own.
type CatalogProduct struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
}

type CatalogService interface {
	Lookup(ctx context.Context, productID string) (*CatalogProduct, error)
}

// Clock and IDGenerator are the core's only ambient collaborators; tests
// substitute them to pin time and ids.
type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}
