package domain

import (
	"time"
)

// Expense is an out-of-drawer cost recorded alongside sales.
type Expense struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
}
