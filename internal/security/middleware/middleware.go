package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/yourorg/moodtunes/internal/security/ratelimit"
	"github.com/yourorg/moodtunes/internal/security/session"
)

type IdentityContextKey struct{}

// publicPaths need no session: account creation, login, and probes
var publicPaths = map[string]bool{
	"/api/register": true,
	"/api/login":    true,
	"/healthz":      true,
	"/readyz":       true,
	"/metrics":      true,
}

// SessionMiddleware authenticates requests from the session cookie. Every
// non-public path fails closed with 401 when the cookie is absent, invalid,
// expired, or revoked.
func SessionMiddleware(sessions *session.Manager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(session.CookieName)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			identity, err := sessions.Validate(r.Context(), cookie.Value)
			if err != nil {
				log.Debug("session rejected", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
				writeJSONError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), IdentityContextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimitMiddleware throttles authenticated traffic per user and applies a
// stricter per-address limit on the credential endpoints.
func RateLimitMiddleware(limiter *ratelimit.Limiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/register" || r.URL.Path == "/api/login" {
				if !limiter.AllowStrict(remoteHost(r), 10, time.Minute) {
					log.Warn("rate limit exceeded", slog.String("path", r.URL.Path), slog.String("addr", remoteHost(r)))
					writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			key := ""
			if identity := GetIdentityFromContext(r.Context()); identity != nil {
				key = identity.Username
			}
			if !limiter.Allow(key) {
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware answers preflights and stamps CORS headers for allowed
// origins. It must sit outside the session gate: OPTIONS requests carry no
// cookies, so a preflight that reaches SessionMiddleware would be rejected
// before the browser learns the real request is permitted. Credentials are
// always allowed because the session rides in a cookie.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if originAllowed(allowedOrigins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

// GetIdentityFromContext returns the authenticated identity, or nil
func GetIdentityFromContext(ctx context.Context) *session.Identity {
	if v := ctx.Value(IdentityContextKey{}); v != nil {
		return v.(*session.Identity)
	}
	return nil
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
