package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jasonwuio/clubhub-backend/internal/pkg/apperror"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/response"
)

// AuthRequired rejects requests that do not carry a valid bearer token and
// records the verified identity on the context for downstream handlers.
func AuthRequired(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abort(c, err)
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			abort(c, apperror.Unauthorized(ErrInvalidToken.Error()))
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperror.Unauthorized("missing Authorization header")
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", apperror.Unauthorized("Authorization header must be of the form 'Bearer <token>'")
	}
	return token, nil
}

func abort(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}
