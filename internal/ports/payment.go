package ports

import (
	"context"

	"github.com/seu-repo/quickpos/internal/domain"
)

// PaymentProvider models the external processor a status poll would hit.
// The shipped implementation is a simulator; a real deployment swaps in a
// gateway client behind the same interface.
type PaymentProvider interface {
	CheckPayment(ctx context.Context, sessionID string, amount float64) (bool, error)
}

// PricingRule computes discount and tax for a subtotal at commit time.
// Both are injectable strategies rather than hard-coded constants.
type PricingRule interface {
	Apply(snapshot domain.CartSnapshot) (discount, tax float64)
}
