package mocks

import (
	"context"
	"sync"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/ports"
)

// MockPaymentProvider is a func-field mock of ports.PaymentProvider.
type MockPaymentProvider struct {
	mu               sync.Mutex
	CheckPaymentFunc func(ctx context.Context, sessionID string, amount float64) (bool, error)
	Calls            int
}

func (m *MockPaymentProvider) CheckPayment(ctx context.Context, sessionID string, amount float64) (bool, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.CheckPaymentFunc != nil {
		return m.CheckPaymentFunc(ctx, sessionID, amount)
	}
	return true, nil
}

func (m *MockPaymentProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// MockEmailService records sent mail instead of delivering it.
type MockEmailService struct {
	mu       sync.Mutex
	SendFunc func(ctx context.Context, to, subject, body string) error
	Sent     []SentMail
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *MockEmailService) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	return m.Send(ctx, to, subject, htmlBody)
}

func (m *MockEmailService) SendReceipt(ctx context.Context, to string, tx *domain.Transaction) error {
	return m.Send(ctx, to, "Receipt", tx.ID)
}

// MockCatalogService serves product lookups from a fixed map.
type MockCatalogService struct {
	Products   map[string]ports.CatalogProduct
	LookupFunc func(ctx context.Context, productID string) (*ports.CatalogProduct, error)
}

func (m *MockCatalogService) Lookup(ctx context.Context, productID string) (*ports.CatalogProduct, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, productID)
	}
	if p, ok := m.Products[productID]; ok {
		return &p, nil
	}
	return nil, nil
}
