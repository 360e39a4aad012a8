package idp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
)

const defaultUserInfoURL = "https://api.linkedin.com/v2/userinfo"

// defaultTimeout bounds each outbound call to LinkedIn. Failures past this
// point surface as terminal errors, never hangs.
const defaultTimeout = 10 * time.Second

// LinkedInConfig configures the LinkedIn provider. The endpoint URLs are
// overridable for tests; production use leaves them empty.
type LinkedInConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	AuthorizationURL string
	TokenURL         string
	UserInfoURL      string
	Timeout          time.Duration
}

// LinkedInProvider implements the Provider interface for LinkedIn's OIDC
// endpoints.
type LinkedInProvider struct {
	config      oauth2.Config
	userInfoURL string
	timeout     time.Duration
}

// linkedInUserInfoResponse represents LinkedIn's userinfo response.
// LinkedIn returns OIDC standard claims on the OIDC userinfo endpoint, but
// older API versions used localized name fields; both are tolerated.
type linkedInUserInfoResponse struct {
	Sub                string `json:"sub"`
	GivenName          string `json:"given_name"`
	FamilyName         string `json:"family_name"`
	LocalizedFirstName string `json:"localizedFirstName"`
	LocalizedLastName  string `json:"localizedLastName"`
	Email              string `json:"email"`
}

// NewLinkedInProvider creates a new LinkedIn OAuth provider.
func NewLinkedInProvider(cfg LinkedInConfig) *LinkedInProvider {
	endpoint := linkedin.Endpoint
	if cfg.AuthorizationURL != "" || cfg.TokenURL != "" {
		endpoint = oauth2.Endpoint{
			AuthURL:  cfg.AuthorizationURL,
			TokenURL: cfg.TokenURL,
		}
	}

	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = defaultUserInfoURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &LinkedInProvider{
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     endpoint,
		},
		userInfoURL: userInfoURL,
		timeout:     timeout,
	}
}

// AuthURL generates the authorization URL.
func (p *LinkedInProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for tokens. Authorization
// codes are single-use, so a failed exchange is never retried.
func (p *LinkedInProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access token")
	}
	return token, nil
}

// Profile fetches the user's profile from LinkedIn's userinfo endpoint and
// normalizes it, tolerating both OIDC and legacy field names. Missing
// fields default to empty strings.
func (p *LinkedInProvider) Profile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	client := p.config.Client(ctx, token)
	// the request must carry ctx itself: Config.Client does not propagate
	// the context to requests, so a bare Get would not be bounded by the
	// timeout
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user info request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("failed to get user info: status %d: %s", resp.StatusCode, body)
	}

	var userInfo linkedInUserInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	firstName := userInfo.GivenName
	if firstName == "" {
		firstName = userInfo.LocalizedFirstName
	}
	lastName := userInfo.FamilyName
	if lastName == "" {
		lastName = userInfo.LocalizedLastName
	}

	return &Profile{
		FirstName:  firstName,
		LastName:   lastName,
		Email:      userInfo.Email,
		LinkedInID: userInfo.Sub,
	}, nil
}
