package model

import "time"

// Session is one refresh-token lineage. The plaintext refresh token is never
// stored; TokenHash is the keyed fingerprint of the currently valid token.
// Rows are soft-revoked and kept for audit, never deleted.
type Session struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
