package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrMarketClosed         = errors.New("market_closed")
	ErrTickerNotFound       = errors.New("ticker_not_found")
	ErrTickerAlreadyExists  = errors.New("ticker_already_exists")
	ErrTeamNotFound         = errors.New("team_not_found")
	ErrTeamAlreadyExists    = errors.New("team_already_exists")
	ErrDealerNotFound       = errors.New("dealer_not_found")
	ErrScenarioNotFound     = errors.New("scenario_not_found")
	ErrCircuitBreaker       = errors.New("circuit_breaker")
	ErrPositionLimit        = errors.New("position_limit_exceeded")
	ErrInsufficientFunds    = errors.New("insufficient_funds")
	ErrInsufficientHoldings = errors.New("insufficient_holdings")
	ErrInvalidCredentials   = errors.New("invalid_credentials")
	ErrWebhookNotFound      = errors.New("webhook_not_found")

	// ErrVersionConflict is returned by a store when a conditional update
	// loses to a concurrent writer. ErrConflict is surfaced by the
	// coordinator once its retry budget is exhausted.
	ErrVersionConflict = errors.New("version_conflict")
	ErrConflict        = errors.New("conflict")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
