package auth_test

import (
	"net/http"
	"testing"

	"github.com/glorpus-work/kitctl/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "https://registry.example.com/test-package", http.NoBody)
	require.NoError(t, err)
	return req
}

func TestBasicAuth(t *testing.T) {
	req := newRequest(t)
	basicAuth := auth.BasicAuth{Username: "user", Password: "pass"}

	require.NoError(t, basicAuth.Apply(req))
	assert.Equal(t, "Basic dXNlcjpwYXNz", req.Header.Get("Authorization")) // base64("user:pass")
	assert.Equal(t, auth.BasicAuthType, basicAuth.Type())

	assert.ErrorIs(t, auth.BasicAuth{}.Apply(newRequest(t)), auth.ErrMissingCredentials)
}

func TestHeaderAuth(t *testing.T) {
	req := newRequest(t)
	headerAuth := auth.HeaderAuth{Headers: map[string]string{
		"X-API-Key":   "test-key",
		"X-Client-ID": "client-123",
	}}

	require.NoError(t, headerAuth.Apply(req))
	// http.Header canonicalizes headers
	assert.Equal(t, "test-key", req.Header.Get("X-Api-Key"))
	assert.Equal(t, "client-123", req.Header.Get("X-Client-Id"))
	assert.Equal(t, auth.HeaderAuthType, headerAuth.Type())

	assert.ErrorIs(t, auth.HeaderAuth{}.Apply(newRequest(t)), auth.ErrMissingCredentials)
}

func TestBearerAuth(t *testing.T) {
	req := newRequest(t)
	bearerAuth := auth.BearerAuth{Token: "test-token-123"}

	require.NoError(t, bearerAuth.Apply(req))
	assert.Equal(t, "Bearer test-token-123", req.Header.Get("Authorization"))
	assert.Equal(t, auth.BearerAuthType, bearerAuth.Type())

	assert.ErrorIs(t, auth.BearerAuth{}.Apply(newRequest(t)), auth.ErrMissingCredentials)
}

func TestNew(t *testing.T) {
	t.Setenv("KITCTL_TEST_NPM_TOKEN", "from-env")

	tests := []struct {
		name  string
		creds auth.Credentials
		want  auth.Authenticator
	}{
		{name: "empty", creds: auth.Credentials{}, want: nil},
		{name: "token", creds: auth.Credentials{Token: "abc"}, want: auth.BearerAuth{Token: "abc"}},
		{name: "token from env", creds: auth.Credentials{Token: "${KITCTL_TEST_NPM_TOKEN}"}, want: auth.BearerAuth{Token: "from-env"}},
		{name: "unset env var", creds: auth.Credentials{Token: "$KITCTL_TEST_UNSET_VAR"}, want: nil},
		{name: "basic", creds: auth.Credentials{Username: "user", Password: "pass"}, want: auth.BasicAuth{Username: "user", Password: "pass"}},
		{name: "token wins", creds: auth.Credentials{Token: "abc", Username: "user"}, want: auth.BearerAuth{Token: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.New(tt.creds))
		})
	}
}
