package session

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/repobook/repobook/internal/token"
	"github.com/repobook/repobook/pkg/cookie"
)

// HintFunc extracts an unverified username hint from a raw bearer token.
// The hint keys the session only; authorization is enforced separately.
type HintFunc func(raw string) string

// Middleware resolves the session for every request: it reads or mints the
// session id cookie, derives a username from the verified identity in the
// context or, failing that, from an unverified bearer token hint, then
// attaches the live session to the request context.
func Middleware(store *Store, cookies *cookie.Manager, hint HintFunc, cfg Config, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, err := cookies.Get(r, cfg.CookieName)
			if err != nil || sid == "" {
				sid = uuid.New().String()
				opts := []cookie.Option{cookie.WithMaxAge(int(cfg.CookieTTL.Seconds()))}
				if cfg.SecureCookies {
					opts = append(opts, cookie.WithSecure(true))
				}
				if err := cookies.Set(w, cfg.CookieName, sid, opts...); err != nil {
					log.ErrorContext(r.Context(), "failed to set session cookie", slog.Any("error", err))
				}
			}

			username := resolveUsername(r, hint)

			// Authenticated requests always resolve to a live session;
			// anonymous ones only get a fresh session when no resolvable
			// one exists (expired entries read as absent).
			var sess *Session
			if username != "" {
				sess = store.GetOrCreate(sid, username)
			} else {
				existing, ok := store.Get(sid, "")
				if ok {
					sess = existing
				} else {
					sess = store.GetOrCreate(sid, "")
				}
			}

			ctx := WithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveUsername prefers an identity already verified upstream; otherwise
// it falls back to the unverified bearer hint. Malformed tokens are
// swallowed here, verification rejects them later on protected routes.
func resolveUsername(r *http.Request, hint HintFunc) string {
	if username, ok := token.IdentityFromContext(r.Context()); ok {
		return username
	}

	if hint == nil {
		return ""
	}

	raw := bearerToken(r)
	if raw == "" {
		return ""
	}
	return hint(raw)
}

// bearerToken returns the token after the "Bearer " scheme, or "".
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	const scheme = "bearer "
	if len(header) <= len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return ""
	}
	return strings.TrimSpace(header[len(scheme):])
}
