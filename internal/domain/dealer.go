package domain

// Dealer is an intermediary identity stamped onto trade records.
// Dealer credentials are advisory display data, not an authorization
// boundary.
type Dealer struct {
	Username string
	Password string
}
