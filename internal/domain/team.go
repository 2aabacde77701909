package domain

import "time"

// Position is a team's holding in a single ticker. A position present in a
// team's map always has Quantity > 0; entries that reach zero are removed
// at commit time so a stale average cost can never leak into a re-entry.
type Position struct {
	Quantity    int64
	AverageCost float64
}

// Team is a participant's ledger: cash plus positions. Mutated only by the
// order execution coordinator and the session reset.
type Team struct {
	TeamID       string
	Name         string
	Password     string // advisory login pin, not an authorization boundary
	CashBalance  float64
	StartingCash float64 // restored by session reset
	Positions    map[string]Position // ticker → position
	CreatedAt    time.Time
}

// Holding returns the quantity held in ticker, or 0 if there is no position.
func (t *Team) Holding(ticker string) int64 {
	return t.Positions[ticker].Quantity
}

// Clone returns a deep copy of the team, including the positions map.
func (t *Team) Clone() *Team {
	c := *t
	c.Positions = make(map[string]Position, len(t.Positions))
	for ticker, pos := range t.Positions {
		c.Positions[ticker] = pos
	}
	return &c
}
