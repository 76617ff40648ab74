// Package auth applies package registry credentials to outgoing requests.
//
//go:generate mockgen -destination=./mocks/auth.go . Authenticator
package auth

import (
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Authenticator defines the interface for applying authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// BasicAuth represents HTTP Basic Authentication credentials.
type BasicAuth struct {
	Username string
	Password string
}

// HeaderAuth represents authentication via custom HTTP headers.
type HeaderAuth struct {
	Headers map[string]string
}

// BearerAuth represents Bearer token authentication, the scheme npm
// registries use for _authToken.
type BearerAuth struct {
	Token string
}

// Type represents the type of authentication.
type Type string

// Authentication types.
const (
	BasicAuthType  Type = "basic"
	HeaderAuthType Type = "header"
	BearerAuthType Type = "bearer"
)

// ErrMissingCredentials is returned when an authenticator has nothing to send.
var ErrMissingCredentials = fmt.Errorf("registry credentials are empty")

// Credentials are the registry credentials from the configuration. Values may
// reference environment variables as $VAR or ${VAR}, like .npmrc does.
type Credentials struct {
	Token    string
	Username string
	Password string
}

// New returns the authenticator for c, or nil when c holds no credentials.
// A token takes precedence over a username and password.
func New(c Credentials) Authenticator {
	token := expand(c.Token)
	if token != "" {
		return BearerAuth{Token: token}
	}
	username := expand(c.Username)
	if username != "" {
		return BasicAuth{Username: username, Password: expand(c.Password)}
	}
	return nil
}

func expand(v string) string {
	return strings.TrimSpace(os.ExpandEnv(v))
}

// Apply adds Basic Authentication headers to the HTTP request.
func (b BasicAuth) Apply(req *http.Request) error {
	if b.Username == "" {
		return ErrMissingCredentials
	}
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

// Type returns the authentication type (BasicAuthType).
func (b BasicAuth) Type() Type { return BasicAuthType }

// Apply adds custom headers to the HTTP request.
func (h HeaderAuth) Apply(req *http.Request) error {
	if len(h.Headers) == 0 {
		return ErrMissingCredentials
	}
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}
	return nil
}

// Type returns the authentication type (HeaderAuthType).
func (h HeaderAuth) Type() Type { return HeaderAuthType }

// Apply adds a Bearer token to the Authorization header of the HTTP request.
func (b BearerAuth) Apply(req *http.Request) error {
	if b.Token == "" {
		return ErrMissingCredentials
	}
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// Type returns the authentication type (BearerAuthType).
func (b BearerAuth) Type() Type { return BearerAuthType }
