package domain

import (
	"time"
)

type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodDigital PaymentMethod = "digital"
	PaymentMethodQRIS    PaymentMethod = "qris"
)

// Transaction is an immutable record of a completed sale. It is created
// exactly once by the checkout service and never mutated afterwards.
type Transaction struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	ShiftID       string        `json:"shift_id" gorm:"index"`
	Items         []CartItem    `json:"items" gorm:"serializer:json"`
	Customer      *Customer     `json:"customer,omitempty" gorm:"serializer:json"`
	Subtotal      float64       `json:"subtotal"`
	Discount      float64       `json:"discount"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ItemCount is the summed quantity across all lines.
func (t *Transaction) ItemCount() int {
	n := 0
	for _, it := range t.Items {
		n += it.Quantity
	}
	return n
}
