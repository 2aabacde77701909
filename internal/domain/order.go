package domain

// Side indicates whether a team is buying from or selling to the dealer.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Order is the ephemeral input to the execution coordinator. It is never
// stored; a successful execution is recorded as a Trade.
type Order struct {
	TeamID   string
	DealerID string
	Ticker   string
	Side     Side
	Quantity int64
}
