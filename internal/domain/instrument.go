package domain

// FloorPrice is the minimum price any instrument's quote may take.
// Every write site (drift, shock, trade) clamps against it; the floor is
// never restored by post-hoc correction.
const FloorPrice = 5.0

// Trend describes the direction of an instrument's last quote update.
type Trend string

const (
	TrendUp   Trend = "UP"
	TrendDown Trend = "DOWN"
	TrendFlat Trend = "FLAT"
)

// Instrument is the mutable market state of a single tradable ticker.
type Instrument struct {
	Ticker            string
	CompanyName       string
	Quote             float64 // current tradable price
	PreviousQuote     float64 // quote immediately before the last update
	DayOpenPrice      float64 // session reference price, restored on reset
	DealerInventory   int64   // signed accumulated order flow; dealer sells when teams buy
	ImpactSensitivity float64 // linear price impact per share traded
	DriftVolatility   float64 // stddev of the periodic random-walk shock
}

// Trend returns the direction of the last quote update.
func (i *Instrument) Trend() Trend {
	switch {
	case i.Quote > i.PreviousQuote:
		return TrendUp
	case i.Quote < i.PreviousQuote:
		return TrendDown
	default:
		return TrendFlat
	}
}

// ClampFloor returns price, raised to FloorPrice if it is below it.
func ClampFloor(price float64) float64 {
	if price < FloorPrice {
		return FloorPrice
	}
	return price
}
