package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/repobook/repobook/internal/token"
	"github.com/repobook/repobook/pkg/logger"
)

// requireAuth verifies the bearer token and stores the verified identity in
// the request context. This, not the session hint, is the authorization gate.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			respondError(w, ErrUnauthorized.WithMessage("Missing bearer token"))
			return
		}

		subject, err := a.tokens.Verify(raw)
		if err != nil {
			respondError(w, ErrUnauthorized.WithMessage("Invalid or expired token"))
			return
		}

		ctx := token.WithIdentity(r.Context(), subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken returns the token after the "Bearer " scheme, or "".
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")

	const scheme = "bearer "
	if len(header) <= len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return ""
	}
	return strings.TrimSpace(header[len(scheme):])
}

// requestLogger logs one line per completed request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				logger.RequestID(middleware.GetReqID(r.Context())),
			)
		})
	}
}
