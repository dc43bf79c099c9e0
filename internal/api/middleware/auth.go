// Package middleware provides the HTTP middleware chain: trace IDs,
// authentication, and panic recovery.
package middleware

import (
	"net/http"

	"github.com/phrazzld/wishlist-api/internal/api/shared"
	"github.com/phrazzld/wishlist-api/internal/service/auth"
)

// AuthHeader is the request header carrying the opaque credential.
const AuthHeader = "X-Auth-Token"

// AuthMiddleware gates record endpoints behind token authentication.
type AuthMiddleware struct {
	resolver auth.TokenResolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given resolver.
func NewAuthMiddleware(resolver auth.TokenResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate resolves the X-Auth-Token header to a caller identity and
// stores it in the request context. Requests without a resolvable credential
// get the uniform 401 rendering; the credential value is never logged or
// included in the response.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, err := m.resolver.Resolve(r.Header.Get(AuthHeader))
		if err != nil {
			shared.RespondWithAPIError(w, r, shared.APIError{
				Status:  http.StatusUnauthorized,
				Code:    shared.CodeHTTPError,
				Message: "unauthorized",
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithOwner(r.Context(), owner)))
	})
}
