// Package auth resolves opaque bearer credentials to caller identities.
// The credential itself is treated as a secret: it is never logged and never
// echoed back in error messages.
package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
)

// ErrUnauthenticated is returned when a credential is missing or does not
// resolve to an identity.
var ErrUnauthenticated = errors.New("unauthorized")

// TokenResolver resolves an opaque credential to a caller identity.
type TokenResolver interface {
	// Resolve returns the identity for the given credential, or
	// ErrUnauthenticated when the credential is unknown.
	Resolve(token string) (string, error)
}

// defaultTokenMap is the built-in development mapping, used when no token
// map is configured or the configured one cannot be parsed.
var defaultTokenMap = map[string]string{
	"token123": "alice",
	"token456": "bob",
}

// StaticTokenMap is a TokenResolver backed by a fixed token-to-identity map,
// typically sourced from the VAULT_TOKEN_MAP_JSON environment variable.
type StaticTokenMap struct {
	tokens map[string]string
}

// NewStaticTokenMap builds a resolver from a JSON object of credential to
// identity. An empty or malformed document falls back to the built-in
// development map.
func NewStaticTokenMap(rawJSON string) *StaticTokenMap {
	if rawJSON != "" {
		var tokens map[string]string
		if err := json.Unmarshal([]byte(rawJSON), &tokens); err == nil && len(tokens) > 0 {
			return &StaticTokenMap{tokens: tokens}
		}
		// Do not include the raw document in the log; it holds credentials.
		slog.Warn("configured token map is not a JSON object of strings, using built-in map")
	}

	tokens := make(map[string]string, len(defaultTokenMap))
	for k, v := range defaultTokenMap {
		tokens[k] = v
	}
	return &StaticTokenMap{tokens: tokens}
}

// Ensure StaticTokenMap implements TokenResolver.
var _ TokenResolver = (*StaticTokenMap)(nil)

// Resolve implements TokenResolver.
func (m *StaticTokenMap) Resolve(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}
	identity, ok := m.tokens[token]
	if !ok || identity == "" {
		return "", ErrUnauthenticated
	}
	return identity, nil
}
