package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LINKEDIN_CLIENT_ID", "client-id")
	t.Setenv("LINKEDIN_CLIENT_SECRET", "client-secret")
	t.Setenv("LINKEDIN_REDIRECT_URI", "http://127.0.0.1:5000/auth/linkedin/callback")
	t.Setenv("FRONTEND_URL", "http://127.0.0.1:3000")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, "client-id", cfg.LinkedInClientID)
	assert.Equal(t, StoreMemory, cfg.SessionStore)
	assert.False(t, cfg.FrontendSecure())
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("LINKEDIN_CLIENT_ID", "client-id")
	t.Setenv("LINKEDIN_CLIENT_SECRET", "client-secret")
	t.Setenv("LINKEDIN_REDIRECT_URI", "http://127.0.0.1:5000/auth/linkedin/callback")
	t.Setenv("FRONTEND_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateFrontendURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FRONTEND_URL", "not-a-url")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateSessionStore(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_STORE", "postgres")

	_, err := Load()
	assert.Error(t, err)
}

func TestFrontendSecure(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FRONTEND_URL", "https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.FrontendSecure())
}
