package engine

import "sync/atomic"

// Gate reports whether the market is open for mutation. The coordinator and
// the drift process consult it before doing any work; it is injected rather
// than read from a package-level variable so both can be tested in
// isolation.
type Gate interface {
	IsOpen() bool
}

// MarketGate is the process-wide market open/closed toggle. The admin
// surface owns the writes; everything else only reads.
type MarketGate struct {
	open atomic.Bool
}

// NewMarketGate creates a gate in the given initial state.
func NewMarketGate(open bool) *MarketGate {
	g := &MarketGate{}
	g.open.Store(open)
	return g
}

// IsOpen reports whether the market is open.
func (g *MarketGate) IsOpen() bool {
	return g.open.Load()
}

// SetOpen transitions the gate.
func (g *MarketGate) SetOpen(open bool) {
	g.open.Store(open)
}
