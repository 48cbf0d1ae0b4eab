package cart

import (
	"sync"

	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/ports"
)

// Service holds the working set of lines for the next transaction.
// Totals are derived on every read so they can never go stale.
type Service struct {
	mu       sync.RWMutex
	items    []domain.CartItem
	customer *domain.Customer
	log      *zap.Logger
}

func NewService(log *zap.Logger) ports.CartService {
	return &Service{log: log}
}

// AddItem merges into an existing line for the same product (quantity +1)
// or appends a fresh line with quantity 1. The incoming quantity field is
// ignored; the cart owns quantities.
func (s *Service) AddItem(item domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity++
			return
		}
	}

	item.Quantity = 1
	s.items = append(s.items, item)
}

// RemoveItem drops the line for a product. Absent ids are a no-op.
func (s *Service) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

func (s *Service) removeLocked(productID string) {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero
// or less is defined as removal, so no line with quantity <= 0 can exist.
func (s *Service) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		return
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return
		}
	}
}

func (s *Service) AttachCustomer(customer *domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if customer == nil {
		s.customer = nil
		return
	}
	c := *customer
	s.customer = &c
}

// Clear empties the cart and detaches the customer. Checkout commit is the
// only caller allowed to invoke this as a side effect.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.customer = nil
}

func (s *Service) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Service) Customer() *domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.customer == nil {
		return nil
	}
	c := *s.customer
	return &c
}

func (s *Service) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum := 0.0
	for _, it := range s.items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return sum
}

func (s *Service) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Snapshot deep-copies the cart for commit. Later cart mutation must not
// alter the recorded transaction.
func (s *Service) Snapshot() domain.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.CartSnapshot{
		Items: make([]domain.CartItem, len(s.items)),
	}
	copy(snap.Items, s.items)
	if s.customer != nil {
		c := *s.customer
		snap.Customer = &c
	}
	for _, it := range s.items {
		snap.Subtotal += it.UnitPrice * float64(it.Quantity)
	}
	return snap
}
