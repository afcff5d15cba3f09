package request

import "time"

// CreateAPIKey holds the request body for issuing an API key. ExpiresAt is
// optional; omitting it means the key never expires.
type CreateAPIKey struct {
	Name      string     `json:"name" validate:"required,min=1,max=255"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
