// Package internal wires the auth-front application together: storage,
// identity provider, metrics, HTTP handlers, and lifecycle.
package internal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seatwave/auth-front/internal/config"
	"github.com/seatwave/auth-front/internal/idp"
	"github.com/seatwave/auth-front/internal/log"
	"github.com/seatwave/auth-front/internal/metrics"
	"github.com/seatwave/auth-front/internal/server"
	"github.com/seatwave/auth-front/internal/storage"
)

// reapInterval is how often the in-memory store sweeps expired records.
const reapInterval = time.Minute

// AuthFront represents the complete login service application
type AuthFront struct {
	config     config.Config
	httpServer *server.HTTPServer
	reaper     *storage.Reaper
}

// NewAuthFront creates the application with all dependencies built
func NewAuthFront(ctx context.Context, cfg config.Config) (*AuthFront, error) {
	log.LogInfoWithFields("authfront", "Building login service", map[string]any{
		"frontendURL":  cfg.FrontendURL,
		"sessionStore": cfg.SessionStore,
	})

	store, reaper, err := setupStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup storage: %w", err)
	}

	provider := idp.NewLinkedInProvider(idp.LinkedInConfig{
		ClientID:     cfg.LinkedInClientID,
		ClientSecret: cfg.LinkedInClientSecret,
		RedirectURI:  cfg.LinkedInRedirectURI,
	})

	m := metrics.New()
	authHandlers := server.NewAuthHandlers(cfg, store, provider, m)

	return &AuthFront{
		config:     cfg,
		httpServer: server.NewHTTPServer(newRouter(cfg, authHandlers, m), cfg.Addr),
		reaper:     reaper,
	}, nil
}

// newRouter registers the HTTP surface the paired frontend depends on.
func newRouter(cfg config.Config, authHandlers *server.AuthHandlers, m *metrics.Metrics) http.Handler {
	middlewares := []server.MiddlewareFunc{
		server.NewCORSMiddleware(frontendOrigin(cfg)),
		server.NewLoggerMiddleware("http"),
		server.NewRecoverMiddleware("http"),
	}

	mux := http.NewServeMux()
	mux.Handle("/health", server.NewHealthHandler())
	mux.Handle("/metrics", m.Handler())
	mux.Handle("/auth/linkedin/login", server.ChainMiddleware(http.HandlerFunc(authHandlers.LoginHandler), middlewares...))
	mux.Handle("/auth/linkedin/callback", server.ChainMiddleware(http.HandlerFunc(authHandlers.CallbackHandler), middlewares...))
	// tolerate a trailing slash on the registered redirect URI without
	// matching the whole subtree
	mux.Handle("/auth/linkedin/callback/{$}", server.ChainMiddleware(http.HandlerFunc(authHandlers.CallbackHandler), middlewares...))
	mux.Handle("/auth/session", server.ChainMiddleware(http.HandlerFunc(authHandlers.SessionHandler), middlewares...))
	return mux
}

// setupStorage builds the configured store backend. The in-memory backend
// needs a reaper; Redis expires keys natively.
func setupStorage(ctx context.Context, cfg config.Config) (storage.Store, *storage.Reaper, error) {
	switch cfg.SessionStore {
	case config.StoreRedis:
		store, err := storage.NewRedisStore(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		log.LogInfoWithFields("authfront", "Using redis store", map[string]any{
			"addr": cfg.RedisAddr,
		})
		return store, nil, nil
	default:
		store := storage.NewMemoryStore()
		return store, storage.NewReaper(store, reapInterval), nil
	}
}

func frontendOrigin(cfg config.Config) string {
	// FrontendURL is validated at startup; the Origin header carries only
	// scheme://host
	u, err := url.Parse(cfg.FrontendURL)
	if err != nil {
		return cfg.FrontendURL
	}
	return u.Scheme + "://" + u.Host
}

// Run starts the application and blocks until shutdown
func (a *AuthFront) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.reaper != nil {
		a.reaper.Start(ctx)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := a.httpServer.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var shutdownReason string
	select {
	case sig := <-sigChan:
		shutdownReason = fmt.Sprintf("signal %v", sig)
		log.LogInfoWithFields("authfront", "Received shutdown signal", map[string]any{
			"signal": sig.String(),
		})
	case err := <-errChan:
		shutdownReason = fmt.Sprintf("error: %v", err)
		log.LogErrorWithFields("authfront", "Shutting down due to error", map[string]any{
			"error": err.Error(),
		})
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		log.LogErrorWithFields("authfront", "HTTP server shutdown error", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if a.reaper != nil {
		a.reaper.Stop()
	}

	log.LogInfoWithFields("authfront", "Shutdown complete", map[string]any{
		"reason": shutdownReason,
	})
	return nil
}
