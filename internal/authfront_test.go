package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatwave/auth-front/internal/config"
	"github.com/seatwave/auth-front/internal/idp"
	"github.com/seatwave/auth-front/internal/metrics"
	"github.com/seatwave/auth-front/internal/server"
	"github.com/seatwave/auth-front/internal/storage"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.Config{
		Addr:                 ":5000",
		LinkedInClientID:     "client-id",
		LinkedInClientSecret: "client-secret",
		LinkedInRedirectURI:  "http://127.0.0.1:5000/auth/linkedin/callback",
		FrontendURL:          "http://127.0.0.1:3000",
		SessionStore:         config.StoreMemory,
	}
	provider := idp.NewLinkedInProvider(idp.LinkedInConfig{
		ClientID:     cfg.LinkedInClientID,
		ClientSecret: cfg.LinkedInClientSecret,
		RedirectURI:  cfg.LinkedInRedirectURI,
	})
	m := metrics.New()
	handlers := server.NewAuthHandlers(cfg, storage.NewMemoryStore(), provider, m)
	return newRouter(cfg, handlers, m)
}

func TestRouterCallbackTrailingSlash(t *testing.T) {
	router := newTestRouter(t)

	// a bare callback with no code or state still proves the route is
	// wired: it redirects back to the frontend with an error code
	for _, path := range []string{"/auth/linkedin/callback", "/auth/linkedin/callback/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusFound, rec.Code, "path %s", path)
		assert.Contains(t, rec.Header().Get("Location"), "error=missing_code_state")
	}
}

func TestRouterCallbackSubtreeNotMatched(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/linkedin/callback/extra", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
