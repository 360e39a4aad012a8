package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	got, err := BuildURL("http://127.0.0.1:3000", "/auth/callback", map[string]string{"status": "success"})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:3000/auth/callback?status=success", got)
}

func TestBuildURLTrailingSlashBase(t *testing.T) {
	got, err := BuildURL("https://app.example.com/", "/auth/callback", map[string]string{"error": "missing_code_state"})
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com/auth/callback?error=missing_code_state", got)
}

func TestBuildURLSkipsEmptyParams(t *testing.T) {
	got, err := BuildURL("http://127.0.0.1:3000", "/auth/callback", map[string]string{
		"status": "success",
		"token":  "",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:3000/auth/callback?status=success", got)
}

func TestBuildURLNoParams(t *testing.T) {
	got, err := BuildURL("http://127.0.0.1:3000", "/auth/callback", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:3000/auth/callback", got)
}
