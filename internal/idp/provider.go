package idp

import (
	"context"

	"golang.org/x/oauth2"
)

// Profile is the normalized user profile handed to the frontend. Field names
// match what the paired frontend expects in the session response.
type Profile struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	LinkedInID string `json:"linkedinId"`
}

// Provider abstracts the identity provider side of the authorization code
// flow: building the authorization URL, exchanging the code, and fetching
// the user's profile.
type Provider interface {
	// AuthURL generates the authorization URL carrying the given state token.
	AuthURL(state string) string

	// ExchangeCode exchanges an authorization code for tokens.
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)

	// Profile fetches the user's profile with the given access token.
	Profile(ctx context.Context, token *oauth2.Token) (*Profile, error)
}
