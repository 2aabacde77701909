package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/efreitasn/stocksim/internal/domain"
)

// WriteJSON writes a JSON response with the given status code and data.
// Sets Content-Type to application/json before writing the status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Write error intentionally ignored in response helper
}

// errorResponse is the standard error response format.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standard error response with the given status code,
// error code, and human-readable message.
func WriteError(w http.ResponseWriter, status int, errorCode, message string) {
	WriteJSON(w, status, errorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// ParseJSON decodes the request body as JSON into v.
// It validates that the Content-Type header is application/json and
// returns an error for missing/incorrect content type or malformed JSON.
func ParseJSON(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	return nil
}

// Round2 rounds a money or price value to 2 decimal places for display.
// Internal state keeps full float precision; rounding happens only here, at
// the response boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// mapDomainError maps domain errors to HTTP responses. All handlers share
// one mapping so the same failure always produces the same status and code.
func mapDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrTeamNotFound):
		WriteError(w, http.StatusNotFound, "team_not_found", err.Error())
	case errors.Is(err, domain.ErrTickerNotFound):
		WriteError(w, http.StatusNotFound, "ticker_not_found", err.Error())
	case errors.Is(err, domain.ErrDealerNotFound):
		WriteError(w, http.StatusNotFound, "dealer_not_found", err.Error())
	case errors.Is(err, domain.ErrScenarioNotFound):
		WriteError(w, http.StatusNotFound, "scenario_not_found", err.Error())
	case errors.Is(err, domain.ErrWebhookNotFound):
		WriteError(w, http.StatusNotFound, "webhook_not_found", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, domain.ErrTeamAlreadyExists):
		WriteError(w, http.StatusConflict, "team_already_exists", err.Error())
	case errors.Is(err, domain.ErrMarketClosed):
		WriteError(w, http.StatusConflict, "market_closed", err.Error())
	case errors.Is(err, domain.ErrCircuitBreaker):
		WriteError(w, http.StatusConflict, "circuit_breaker", err.Error())
	case errors.Is(err, domain.ErrPositionLimit):
		WriteError(w, http.StatusConflict, "position_limit_exceeded", err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		WriteError(w, http.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, domain.ErrInsufficientHoldings):
		WriteError(w, http.StatusConflict, "insufficient_holdings", err.Error())
	case errors.Is(err, domain.ErrConflict):
		WriteError(w, http.StatusConflict, "conflict", "order could not be committed, please retry")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
