package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"superapp-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func protected(tokens *Tokens, roles ...models.UserRole) *gin.Engine {
	r := gin.New()
	r.GET("/x", AuthRequired(tokens), RoleRequired(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": GetUID(c), "role": GetRole(c)})
	})
	return r
}

func call(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("s3cret", time.Hour)
	tok, err := tokens.Generate(models.User{UID: "u1", Email: "a@x.com", Role: models.RoleVendor})
	require.NoError(t, err)

	claims, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
	assert.Equal(t, models.RoleVendor, claims.Role)

	_, err = NewTokens("other", time.Hour).Parse(tok)
	assert.Error(t, err)
}

func TestAuthRequired(t *testing.T) {
	tokens := NewTokens("s3cret", time.Hour)
	r := protected(tokens, models.RoleVendor)

	assert.Equal(t, http.StatusUnauthorized, call(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "garbage").Code)

	expired, err := NewTokens("s3cret", -time.Minute).Generate(models.User{UID: "u1", Role: models.RoleVendor})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(r, expired).Code)

	ok, _ := tokens.Generate(models.User{UID: "u1", Role: models.RoleVendor})
	w := call(r, ok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"u1","role":"vendor"}`, w.Body.String())
}

func TestRoleRequired(t *testing.T) {
	tokens := NewTokens("s3cret", time.Hour)
	r := protected(tokens, models.RoleAdmin)
	tok, _ := tokens.Generate(models.User{UID: "u1", Role: models.RoleCustomer})
	w := call(r, tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}
