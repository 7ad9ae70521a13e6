package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	assert := assert.New(t)

	tokens, err := New("test-secret", 30*time.Minute)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	raw, err := tokens.Issue(42, ScopeUser)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	subject, err := tokens.Parse(raw, ScopeUser)
	assert.NoError(err)
	assert.Equal(int64(42), subject)
}

func TestTokenScopeMismatch(t *testing.T) {
	assert := assert.New(t)

	tokens, err := New("test-secret", 30*time.Minute)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	raw, err := tokens.Issue(42, ScopeUser)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	_, err = tokens.Parse(raw, ScopeOfficer)
	assert.ErrorIs(err, ErrWrongScope)
}

func TestTokenExpired(t *testing.T) {
	assert := assert.New(t)

	tokens, err := New("test-secret", 30*time.Minute)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	claims := Claims{
		Scope: ScopeUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	_, err = tokens.Parse(raw, ScopeUser)
	assert.ErrorIs(err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	assert := assert.New(t)

	issuer, err := New("secret-a", 30*time.Minute)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	verifier, err := New("secret-b", 30*time.Minute)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	raw, err := issuer.Issue(42, ScopeUser)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	_, err = verifier.Parse(raw, ScopeUser)
	assert.ErrorIs(err, ErrInvalidToken)
}

func TestNewRequiresSecret(t *testing.T) {
	assert := assert.New(t)

	_, err := New("", time.Minute)
	assert.Error(err)
}
