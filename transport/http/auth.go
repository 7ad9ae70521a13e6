package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/specs-nexus/nexus/auth"
)

const subjectKey = "subject_id"

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("authorization header is required")
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", errors.New("authorization header must be a bearer token")
	}

	return token, nil
}

// UserAuthorizator rejects requests without a valid member token and
// stores the member's id on the request context.
func UserAuthorizator(tokens *auth.Tokens) gin.HandlerFunc {
	return authorizator(tokens, auth.ScopeUser)
}

// OfficerAuthorizator rejects requests without a valid officer token.
func OfficerAuthorizator(tokens *auth.Tokens) gin.HandlerFunc {
	return authorizator(tokens, auth.ScopeOfficer)
}

func authorizator(tokens *auth.Tokens, scope auth.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			c.String(http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		subject, err := tokens.Parse(token, scope)
		if err != nil {
			c.String(http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		c.Set(subjectKey, subject)
		c.Next()
	}
}

// Subject returns the authenticated principal's id set by the
// authorizator middleware.
func Subject(c *gin.Context) int64 {
	return c.GetInt64(subjectKey)
}
