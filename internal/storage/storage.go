package storage

import (
	"context"
	"errors"
	"time"

	"github.com/seatwave/auth-front/internal/idp"
)

// ErrStateNotFound is returned when a state token is missing, expired, or
// already consumed. Callers must not be able to distinguish the three cases.
var ErrStateNotFound = errors.New("state not found")

// ErrSessionNotFound is returned when a session token doesn't exist or has
// expired.
var ErrSessionNotFound = errors.New("session not found")

// StateTTL is how long a login state record stays valid. It only needs to
// survive a single redirect round-trip through the identity provider.
const StateTTL = 5 * time.Minute

// SessionTTL is the server-side session lifetime, matching the session
// cookie's max-age so a stale cookie can't outlive its record.
const SessionTTL = time.Hour

// Store holds the two record kinds the OAuth handshake needs: one-time
// login state records and readable-many-times session records. The two
// live in separate key namespaces; a session token is never poppable.
type Store interface {
	// PutState stores a login state payload under a one-time token.
	PutState(ctx context.Context, token string, payload map[string]string, ttl time.Duration) error

	// PopState atomically retrieves and deletes a state record. Exactly one
	// caller can win for a given token; everyone else gets ErrStateNotFound,
	// as do callers presenting expired or never-issued tokens.
	PopState(ctx context.Context, token string) (map[string]string, error)

	// PutSession stores an authenticated user's profile under a session token.
	PutSession(ctx context.Context, token string, profile idp.Profile, ttl time.Duration) error

	// GetSession retrieves a session's profile without consuming it.
	GetSession(ctx context.Context, token string) (idp.Profile, error)
}
