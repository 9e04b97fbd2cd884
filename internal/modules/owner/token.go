package owner

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// EmailHeader is the legacy caller-identity header. It carries no signature
// and is trusted as-is; clients should migrate to the bearer token issued
// at login, which is verified before use.
const EmailHeader = "Store-Owner-Email"

const sessionTTL = 24 * time.Hour

var (
	// ErrNoIdentity is returned when a request carries neither a bearer
	// token nor the legacy email header.
	ErrNoIdentity = errors.New("missing bearer token or Store-Owner-Email header")
	// ErrInvalidToken is returned for malformed, forged, or expired tokens.
	ErrInvalidToken = errors.New("invalid or expired session token")
)

// TokenIssuer signs and verifies store-owner session tokens.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue returns a signed session token whose subject is the account email.
func (t *TokenIssuer) Issue(email string) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   email,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(sessionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses a session token and returns the account email it was
// issued for.
func (t *TokenIssuer) Verify(token string) (string, error) {
	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// CallerEmail resolves the caller's identity from a request. A valid bearer
// token wins; otherwise the legacy email header is trusted as-is.
func (t *TokenIssuer) CallerEmail(r *http.Request) (string, error) {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return t.Verify(strings.TrimPrefix(auth, "Bearer "))
	}
	if email := strings.TrimSpace(r.Header.Get(EmailHeader)); email != "" {
		return email, nil
	}
	return "", ErrNoIdentity
}
