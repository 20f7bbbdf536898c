// Bearer credential middleware for the HTTP transport.
// Reads Authorization: Bearer <credential>, accepts either the configured
// static API key (bcrypt-verified) or a valid HS256 JWT, and injects the
// actor identity into context.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/matiasleandrokruk/kairos/internal/api/ctxkeys"
	pkgauth "github.com/matiasleandrokruk/kairos/pkg/auth"
)

// apiKeyActor is the actor identity recorded for static-key callers, which
// carry no identity of their own.
const apiKeyActor = "api-key"

// Auth returns a middleware validating the Bearer credential.
//
// Flow:
//  1. Read "Authorization: Bearer <credential>" header
//  2. Reject if missing or not Bearer scheme → 401
//  3. If an API key hash is configured and the credential matches it → accept
//  4. Otherwise, if JWT is configured, parse + validate → 401 on invalid/expired
//  5. Inject ctxkeys.ActorID into context and call the next handler
//
// Install only when at least one mechanism is configured; stdio mode and
// unconfigured HTTP mode carry no auth at all.
func Auth(apiKeyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := extractBearerToken(r)
			if credential == "" {
				writeUnauthorized(w, "missing or invalid Authorization header")
				return
			}

			actor, ok := verifyCredential(apiKeyHash, credential)
			if !ok {
				writeUnauthorized(w, "invalid or expired credential")
				return
			}

			ctx := ctxkeys.WithValue(r.Context(), ctxkeys.ActorID, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// verifyCredential checks the credential against the configured mechanisms
// and returns the actor identity it authenticates.
func verifyCredential(apiKeyHash, credential string) (string, bool) {
	if apiKeyHash != "" && pkgauth.VerifyKey(apiKeyHash, credential) {
		return apiKeyActor, true
	}
	if pkgauth.JWTConfigured() {
		claims, err := pkgauth.ParseJWT(credential)
		if err == nil {
			return claims.ActorID, true
		}
	}
	return "", false
}

// extractBearerToken extracts the token from "Authorization: Bearer <token>".
// Returns empty string if header is missing, wrong scheme, or token is empty.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	// Must start with "Bearer " (case-sensitive per RFC 7235)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// writeUnauthorized writes a 401 JSON response.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message}) //nolint:errcheck
}
