package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"
)

const refreshTokenBytes = 64

// RefreshTokenManager generates opaque refresh tokens and computes the keyed
// fingerprint under which a session is stored. Only the fingerprint ever
// reaches the database; without the secret it cannot be inverted to the
// token, and a leaked table row is useless on its own.
type RefreshTokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewRefreshTokenManager(secret string, ttl time.Duration) *RefreshTokenManager {
	return &RefreshTokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// GenerateToken returns a new high-entropy refresh token in URL-safe base64
// without padding, suitable as a cookie value.
func (m *RefreshTokenManager) GenerateToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Fingerprint computes the HMAC-SHA256 digest of a refresh token. It is
// deterministic, so the digest supports equality lookups.
func (m *RefreshTokenManager) Fingerprint(token string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// ComputeExpiry returns the expiry instant for a token issued now.
func (m *RefreshTokenManager) ComputeExpiry() time.Time {
	return m.now().UTC().Add(m.ttl)
}
