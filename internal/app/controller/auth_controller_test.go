package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/voicecart/voicecart-server/internal/credential"
	"github.com/voicecart/voicecart-server/internal/storage"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *credential.Resolver) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resolver := credential.NewResolver(storage.NewMemoryStorage())
	ctrl := NewAuthController(resolver)

	r := gin.New()
	r.Use(withSession("sess-1"))
	r.POST("/auth/token", ctrl.StoreToken)
	r.DELETE("/auth/token", ctrl.ClearToken)
	r.GET("/auth/status", ctrl.Status)
	return r, resolver
}

func doAuth(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthController_StatusLoggedOut(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doAuth(t, r, http.MethodGet, "/auth/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestAuthController_StoreAndStatus(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doAuth(t, r, http.MethodPost, "/auth/token", `{"token":"backend-tok","remember":true}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doAuth(t, r, http.MethodGet, "/auth/status", "")
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestAuthController_StoreRequiresToken(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doAuth(t, r, http.MethodPost, "/auth/token", `{"remember":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthController_Clear(t *testing.T) {
	r, _ := setupAuthRouter(t)

	doAuth(t, r, http.MethodPost, "/auth/token", `{"token":"backend-tok"}`)
	w := doAuth(t, r, http.MethodDelete, "/auth/token", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doAuth(t, r, http.MethodGet, "/auth/status", "")
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}
