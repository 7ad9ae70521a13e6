// Package auth issues and verifies the platform's bearer tokens. Users and
// officers authenticate against different tables, so tokens carry a scope
// distinguishing the two.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongScope   = errors.New("token has wrong scope")
)

type Scope string

const (
	ScopeUser    Scope = "user"
	ScopeOfficer Scope = "officer"
)

const DefaultTokenTTL = 30 * time.Minute

type Claims struct {
	Scope Scope `json:"scope"`
	jwt.RegisteredClaims
}

// Tokens signs and parses access tokens with a shared HMAC secret supplied
// at startup (never a source literal).
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("token secret is not set")
	}

	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Issue returns a signed token whose subject is the account ID.
func (t *Tokens) Issue(subject int64, scope Scope) (string, error) {
	now := time.Now()

	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies the signature and expiry, checks the scope, and returns
// the account ID.
func (t *Tokens) Parse(raw string, scope Scope) (int64, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return t.secret, nil
	})

	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	if claims.Scope != scope {
		return 0, ErrWrongScope
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return id, nil
}
