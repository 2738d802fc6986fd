package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"superapp-api/config"
	"superapp-api/store"

	"github.com/gin-gonic/gin"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, _ := logtest.NewNullLogger()
	st, err := store.Open(context.Background(), store.NewMemoryKV(), log)
	require.NoError(t, err)
	r := NewEngine(config.Default(), st, log)

	for _, path := range []string{"/", "/health", "/api/categories"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/profile", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
