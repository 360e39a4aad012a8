package server

import (
	"net/http"

	"github.com/seatwave/auth-front/internal/config"
	"github.com/seatwave/auth-front/internal/cookie"
	"github.com/seatwave/auth-front/internal/crypto"
	"github.com/seatwave/auth-front/internal/idp"
	jsonwriter "github.com/seatwave/auth-front/internal/json"
	"github.com/seatwave/auth-front/internal/log"
	"github.com/seatwave/auth-front/internal/metrics"
	"github.com/seatwave/auth-front/internal/storage"
	"github.com/seatwave/auth-front/internal/urlutil"
)

// frontendCallbackPath is where the paired frontend receives the final
// redirect, with either status=success or error=<code> query parameters.
const frontendCallbackPath = "/auth/callback"

// AuthHandlers provides the OAuth login HTTP handlers with dependency injection
type AuthHandlers struct {
	cfg      config.Config
	store    storage.Store
	provider idp.Provider
	metrics  *metrics.Metrics
}

// NewAuthHandlers creates new auth handlers with dependency injection
func NewAuthHandlers(cfg config.Config, store storage.Store, provider idp.Provider, m *metrics.Metrics) *AuthHandlers {
	return &AuthHandlers{
		cfg:      cfg,
		store:    store,
		provider: provider,
		metrics:  m,
	}
}

// LoginHandler starts the OAuth flow: mints a state token, stashes the
// caller's opaque token for the round-trip, and redirects to the provider.
func (h *AuthHandlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opaque := r.URL.Query().Get("token")

	state, err := crypto.GenerateToken()
	if err != nil {
		log.LogError("Failed to generate state token: %v", err)
		jsonwriter.WriteInternalServerError(w, "Internal server error")
		return
	}

	payload := map[string]string{}
	if opaque != "" {
		payload["token"] = opaque
	}

	if err := h.store.PutState(ctx, state, payload, storage.StateTTL); err != nil {
		log.LogError("Failed to store login state: %v", err)
		jsonwriter.WriteInternalServerError(w, "Internal server error")
		return
	}

	h.metrics.LoginsStartedTotal.Inc()
	log.LogInfoWithFields("auth", "Login initiated", map[string]any{
		"state":        log.Redact(state),
		"caller_token": log.Redact(opaque),
	})

	http.Redirect(w, r, h.provider.AuthURL(state), http.StatusFound)
}

// CallbackHandler drives the handshake state machine: validate and consume
// the state token, exchange the code, fetch the profile, mint a session,
// and redirect to the frontend. Every failure degrades to a terminal
// redirect carrying only a coarse error code.
func (h *AuthHandlers) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	if code == "" || state == "" {
		log.LogWarnWithFields("auth", "Callback missing code or state", map[string]any{
			"has_code":  code != "",
			"has_state": state != "",
		})
		h.redirectError(w, r, metrics.OutcomeMissingCodeState)
		return
	}

	// CSRF defense: only a state this service minted and has not yet
	// consumed is accepted. Missing, expired, and replayed states are
	// indistinguishable to the caller.
	payload, err := h.store.PopState(ctx, state)
	if err != nil {
		log.LogWarnWithFields("auth", "Rejected callback state", map[string]any{
			"state": log.Redact(state),
		})
		h.redirectError(w, r, metrics.OutcomeInvalidState)
		return
	}

	// Authorization codes are single-use; a failed exchange is terminal.
	token, err := h.provider.ExchangeCode(ctx, code)
	if err != nil {
		log.LogError("Token exchange failed: %v", err)
		h.redirectError(w, r, metrics.OutcomeTokenExchangeFailed)
		return
	}

	profile, err := h.provider.Profile(ctx, token)
	if err != nil {
		log.LogError("Profile fetch failed: %v", err)
		h.redirectError(w, r, metrics.OutcomeProfileFetchFailed)
		return
	}

	sessionToken, err := crypto.GenerateToken()
	if err != nil {
		log.LogError("Failed to generate session token: %v", err)
		h.metrics.CallbackOutcomesTotal.WithLabelValues(metrics.OutcomeInternalError).Inc()
		jsonwriter.WriteInternalServerError(w, "Internal server error")
		return
	}

	if err := h.store.PutSession(ctx, sessionToken, *profile, storage.SessionTTL); err != nil {
		log.LogError("Failed to store session: %v", err)
		h.metrics.CallbackOutcomesTotal.WithLabelValues(metrics.OutcomeInternalError).Inc()
		jsonwriter.WriteInternalServerError(w, "Internal server error")
		return
	}

	params := map[string]string{"status": "success"}
	if opaque := payload["token"]; opaque != "" {
		params["token"] = opaque
	}

	dest, err := urlutil.BuildURL(h.cfg.FrontendURL, frontendCallbackPath, params)
	if err != nil {
		log.LogError("Failed to build frontend callback URL: %v", err)
		h.metrics.CallbackOutcomesTotal.WithLabelValues(metrics.OutcomeInternalError).Inc()
		jsonwriter.WriteInternalServerError(w, "Internal server error")
		return
	}

	cookie.SetSession(w, sessionToken, h.cfg.FrontendSecure())

	h.metrics.CallbackOutcomesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.LogInfoWithFields("auth", "User authenticated", map[string]any{
		"email":   profile.Email,
		"session": log.Redact(sessionToken),
	})

	http.Redirect(w, r, dest, http.StatusFound)
}

// SessionHandler resolves the session cookie to the stored user profile.
// Failures are a generic 401 with no detail on why.
func (h *AuthHandlers) SessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionToken, err := cookie.GetSession(r)
	if err != nil {
		h.metrics.SessionLookupsTotal.WithLabelValues("unauthorized").Inc()
		jsonwriter.WriteUnauthorized(w, "No active session")
		return
	}

	profile, err := h.store.GetSession(ctx, sessionToken)
	if err != nil {
		h.metrics.SessionLookupsTotal.WithLabelValues("unauthorized").Inc()
		jsonwriter.WriteUnauthorized(w, "No active session")
		return
	}

	h.metrics.SessionLookupsTotal.WithLabelValues("ok").Inc()
	_ = jsonwriter.Write(w, profile)
}

// redirectError sends the browser back to the frontend with a coarse
// machine-readable error code. No code, state, or secret material is ever
// reflected into the redirect URL.
func (h *AuthHandlers) redirectError(w http.ResponseWriter, r *http.Request, errorCode string) {
	h.metrics.CallbackOutcomesTotal.WithLabelValues(errorCode).Inc()

	dest, err := urlutil.BuildURL(h.cfg.FrontendURL, frontendCallbackPath, map[string]string{"error": errorCode})
	if err != nil {
		log.LogError("Failed to build frontend error URL: %v", err)
		jsonwriter.WriteInternalServerError(w, "Internal server error")
		return
	}
	http.Redirect(w, r, dest, http.StatusFound)
}
