package domain

import "time"

// Trade is the immutable audit record of a single executed order.
// Trades are append-only; nothing mutates or deletes them except a full
// session reset.
type Trade struct {
	TradeID    string
	TeamID     string
	Ticker     string
	Side       Side
	Quantity   int64
	Price      float64 // execution price
	Total      float64 // Price × Quantity
	DealerID   string  // audit field only
	ExecutedAt time.Time
}
