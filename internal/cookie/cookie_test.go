package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSession(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSession(rec, "token-value", false)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]

	assert.Equal(t, SessionCookie, c.Name)
	assert.Equal(t, "token-value", c.Value)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 3600, c.MaxAge)
}

func TestSetSessionSecure(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSession(rec, "token-value", true)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

func TestGetSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "token-value"})

	value, err := GetSession(req)
	require.NoError(t, err)
	assert.Equal(t, "token-value", value)
}

func TestGetSessionMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)

	_, err := GetSession(req)
	assert.Error(t, err)
}

func TestClearSession(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSession(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
