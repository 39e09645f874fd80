package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Minute)

	token, err := tokens.Issue("user-1", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Minute)
	other := NewTokenManager("other-secret", time.Minute)

	token, err := tokens.Issue("user-1", "user@example.com")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsExpired(t *testing.T) {
	tokens := NewTokenManager("test-secret", -time.Minute)

	token, err := tokens.Issue("user-1", "user@example.com")
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := NewTokenManager("test-secret", time.Minute)

	router := gin.New()
	router.GET("/whoami", AuthRequired(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c)+" "+GetUserEmail(c))
	})

	do := func(authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("valid token reaches the handler with identity set", func(t *testing.T) {
		token, err := tokens.Issue("user-1", "user@example.com")
		require.NoError(t, err)

		w := do("Bearer " + token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1 user@example.com", w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := do("")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := do("Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := do("Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
