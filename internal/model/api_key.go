package model

import "time"

// APIKey represents an issued bearer credential for the platform API. The
// secret is never stored; only its salted hash is persisted.
type APIKey struct {
	ID         int64      `json:"-"`
	PublicID   string     `json:"public_id"`
	OwnerID    string     `json:"owner_id"`
	Name       string     `json:"name"`
	SecretHash string     `json:"-"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ValidAt reports whether the key may authenticate requests at the given
// time: not revoked, and either no expiry or an expiry still in the future.
func (k *APIKey) ValidAt(now time.Time) bool {
	if k.RevokedAt != nil {
		return false
	}
	if k.ExpiresAt != nil && !k.ExpiresAt.After(now) {
		return false
	}
	return true
}
