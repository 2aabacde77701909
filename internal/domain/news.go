package domain

import "time"

// Impact tags a news flash for display.
type Impact string

const (
	ImpactPositive Impact = "POSITIVE"
	ImpactNegative Impact = "NEGATIVE"
	ImpactNeutral  Impact = "NEUTRAL"
)

// ImpactFromSentiment categorizes a signed sentiment for display.
// Zero sentiment is neutral, not positive or negative.
func ImpactFromSentiment(sentiment float64) Impact {
	switch {
	case sentiment > 0:
		return ImpactPositive
	case sentiment < 0:
		return ImpactNegative
	default:
		return ImpactNeutral
	}
}

// NewsFlash is a published headline shown on the market feed.
type NewsFlash struct {
	Headline  string
	Impact    Impact
	Ticker    string
	CreatedAt time.Time
}

// Scenario is a pre-scripted news event: publishing it emits a NewsFlash
// and applies a multiplicative price shock to the referenced ticker.
type Scenario struct {
	ScenarioID string
	Headline   string
	Ticker     string
	Sentiment  float64
}
