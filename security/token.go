package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is used when IssueToken is given no ttl
const DefaultTokenTTL = 15 * time.Minute

// ErrMissingSecret is returned when no signing key is configured
var ErrMissingSecret = errors.New("jwt secret is not configured")

// Tokens signs and verifies HS256 access tokens with a symmetric key
type Tokens struct {
	secret []byte
	now    func() time.Time
}

// NewTokens creates a token signer using secret
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), now: time.Now}
}

// IssueToken signs claims plus an exp claim. A zero ttl means DefaultTokenTTL.
func (t *Tokens) IssueToken(claims map[string]interface{}, ttl time.Duration) (string, time.Time, error) {
	if len(t.secret) == 0 {
		return "", time.Time{}, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := t.now()
	expiresAt := now.Add(ttl)

	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = now.Unix()
	mc["exp"] = expiresAt.Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Subject verifies the signature and expiry of tokenStr and returns its sub claim
func (t *Tokens) Subject(tokenStr string) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrMissingSecret
	}
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", err
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sub, nil
}
