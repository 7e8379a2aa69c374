// Package entity defines the domain models for the portfolio feature.
package entity

import "time"

// Holding represents one stock position in a user's portfolio.
type Holding struct {
	UserID    uint      // Owning user ID
	Symbol    string    // Stock ticker symbol (e.g., "7203.T")
	Quantity  float64   // Number of shares held
	AvgCost   float64   // Average acquisition cost per share
	UpdatedAt time.Time // Last modification time
}

// CostBasis は取得額（株数 × 平均取得単価）を返します。
func (h Holding) CostBasis() float64 {
	return h.Quantity * h.AvgCost
}
