package cookie

import (
	"net/http"
	"time"

	"github.com/seatwave/auth-front/internal/log"
)

// SessionCookie is the fixed session cookie name the paired frontend expects.
const SessionCookie = "auth_session"

// SessionMaxAge is the browser-side session lifetime.
const SessionMaxAge = time.Hour

// SetSession sets the session cookie. The cookie is HTTP-only and Lax so it
// survives the top-level redirect back from the identity provider; Secure is
// set when the frontend is served over HTTPS.
func SetSession(w http.ResponseWriter, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionMaxAge.Seconds()),
	})

	log.LogDebugWithFields("cookie", "Session cookie set", map[string]any{
		"maxAge":   SessionMaxAge.String(),
		"secure":   secure,
		"sameSite": "Lax",
	})
}

// ClearSession removes the session cookie by setting MaxAge to -1.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// GetSession retrieves the session cookie value from the request.
func GetSession(r *http.Request) (string, error) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}
