// Package entity defines the domain models for the prices feature.
package entity

import "time"

// Price represents one trading day's closing price for a stock symbol.
// Daily closes are the only granularity Stock Buddy stores: beginner-facing
// metrics (beta, safety rules) are all computed from daily series.
type Price struct {
	Symbol string    // Stock ticker symbol (e.g., "7203.T", "^N225")
	Date   time.Time // Trading date (time part is always zero, UTC)
	Close  float64   // Closing price
	Volume int64     // Trading volume
}

// DateString は取引日をYYYY-MM-DD形式で返します。
func (p Price) DateString() string {
	return p.Date.UTC().Format("2006-01-02")
}
