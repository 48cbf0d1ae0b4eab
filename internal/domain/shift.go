package domain

import (
	"time"
)

// Shift is a bounded cash-drawer session. Transactions may only be appended
// while IsOpen is true; closing is terminal.
type Shift struct {
	ID           string        `json:"id" gorm:"primaryKey"`
	OpenedAt     time.Time     `json:"opened_at"`
	ClosedAt     *time.Time    `json:"closed_at,omitempty"`
	OpeningCash  float64       `json:"opening_cash"`
	ClosingCash  *float64      `json:"closing_cash,omitempty"`
	Transactions []Transaction `json:"transactions" gorm:"serializer:json"`
	IsOpen       bool          `json:"is_open"`
}

// ItemSales aggregates sold quantity and revenue per product for reporting.
type ItemSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// ShiftSummary is computed when a shift closes and consumed by reporting.
// CashVariance = closingCash - (openingCash + cash-only sales).
type ShiftSummary struct {
	ShiftID          string      `json:"shift_id"`
	OpenedAt         time.Time   `json:"opened_at"`
	ClosedAt         *time.Time  `json:"closed_at,omitempty"`
	TotalSales       float64     `json:"total_sales"`
	TransactionCount int         `json:"transaction_count"`
	CashSales        float64     `json:"cash_sales"`
	CashVariance     float64     `json:"cash_variance"`
	BestSellers      []ItemSales `json:"best_sellers"`
}
