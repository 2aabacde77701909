package domain

import "time"

// Webhook represents a team's subscription to an event notification.
type Webhook struct {
	WebhookID string
	TeamID    string
	Event     string
	URL       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
