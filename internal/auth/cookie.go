package auth

import (
	"net/http"
	"time"
)

// CookiePolicy builds the HttpOnly cookie that carries the refresh token.
// The cookie is the only transport for the refresh token; it never appears
// in a response body or URL.
type CookiePolicy struct {
	name     string
	path     string
	secure   bool
	sameSite http.SameSite
	ttl      time.Duration
}

func NewCookiePolicy(name string, path string, secure bool, sameSite http.SameSite, ttl time.Duration) *CookiePolicy {
	return &CookiePolicy{
		name:     name,
		path:     path,
		secure:   secure,
		sameSite: sameSite,
		ttl:      ttl,
	}
}

func (p *CookiePolicy) Name() string {
	return p.name
}

// RefreshCookie wraps a freshly issued refresh token for Set-Cookie.
func (p *CookiePolicy) RefreshCookie(refreshToken string) *http.Cookie {
	cookie := p.base(refreshToken)
	cookie.MaxAge = int(p.ttl.Seconds())
	return cookie
}

// ClearCookie returns an empty-valued cookie that serializes with Max-Age=0,
// instructing the browser to drop the refresh token.
func (p *CookiePolicy) ClearCookie() *http.Cookie {
	cookie := p.base("")
	cookie.MaxAge = -1
	return cookie
}

func (p *CookiePolicy) base(value string) *http.Cookie {
	return &http.Cookie{
		Name:     p.name,
		Value:    value,
		Path:     p.path,
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: p.sameSite,
	}
}
