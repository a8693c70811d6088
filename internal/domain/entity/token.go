package entity

import "time"

// TokenType names an access token format and its validation strategy.
type TokenType string

const (
	// TokenTypeJWT is a self-contained signed token.
	TokenTypeJWT TokenType = "jwt"
	// TokenTypeOpaque is a random handle backed by the token cache.
	TokenTypeOpaque TokenType = "opaque"
	// TokenTypeBasic echoes identifier:credential for legacy clients.
	TokenTypeBasic TokenType = "basic"
)

// OpaqueTokenPrefix marks tokens minted by the opaque builder.
const OpaqueTokenPrefix = "r2a_"

// String returns the string representation of the TokenType.
func (t TokenType) String() string {
	return string(t)
}

// TokenRecord describes an issued or validated access token.
type TokenRecord struct {
	Token     string    `json:"-"`
	Subject   string    `json:"subject"`
	Scheme    Scheme    `json:"scheme"`
	Type      TokenType `json:"type"`
	Roles     []string  `json:"roles,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the record is past its expiry at now.
func (r *TokenRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}

// RefreshTokenRecord is the cache entry behind a refresh token. It can be used
// exactly once.
type RefreshTokenRecord struct {
	Token     string    `json:"-"`
	Subject   string    `json:"subject"`
	Scheme    Scheme    `json:"scheme"`
	Type      TokenType `json:"type"`
	ExpiresAt time.Time `json:"expiresAt"`
	Consumed  bool      `json:"consumed"`
}

// Expired reports whether the record is past its expiry at now.
func (r *RefreshTokenRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}

// CaptchaEntry is a one-time code stored for a (scheme, identifier) pair.
type CaptchaEntry struct {
	Code     string        `json:"code"`
	IssuedAt time.Time     `json:"issuedAt"`
	TTL      time.Duration `json:"ttl"`
}

// Expired reports whether the entry is past its TTL at now.
func (e *CaptchaEntry) Expired(now time.Time) bool {
	return !now.Before(e.IssuedAt.Add(e.TTL))
}
