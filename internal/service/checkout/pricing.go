package checkout

import "github.com/seu-repo/quickpos/internal/domain"

// StandardPricing applies a flat discount rate to the subtotal and a flat
// tax rate on the discounted base. The store default is a 10% discount
// and no tax.
type StandardPricing struct {
	DiscountRate float64
	TaxRate      float64
}

func DefaultPricing() StandardPricing {
	return StandardPricing{DiscountRate: 0.10, TaxRate: 0}
}

func (p StandardPricing) Apply(snapshot domain.CartSnapshot) (discount, tax float64) {
	discount = snapshot.Subtotal * p.DiscountRate
	tax = (snapshot.Subtotal - discount) * p.TaxRate
	return discount, tax
}
