package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/repobook/repobook/internal/session"
	"github.com/repobook/repobook/pkg/cookie"
)

// NewRouter assembles the full HTTP surface. Session resolution runs on
// every route so anonymous browsing accumulates state before login;
// bearer verification gates only the protected group.
func NewRouter(api *API, store *session.Store, cookies *cookie.Manager, sessCfg session.Config, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(session.Middleware(store, cookies, api.tokens.SubjectHint, sessCfg, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, messageResponse{Message: "ok"})
	})

	r.Post("/auth/login", api.login)

	r.Group(func(r chi.Router) {
		r.Use(api.requireAuth)

		r.Get("/bookmarks", api.listBookmarks)
		r.Post("/bookmarks", api.addBookmark)
		r.Delete("/bookmarks/{repoID}", api.removeBookmark)

		r.Get("/search", api.searchRepos)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, ErrNotFound.WithMessage("Route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, HTTPError{
			Code:    http.StatusMethodNotAllowed,
			Key:     "method_not_allowed",
			Message: http.StatusText(http.StatusMethodNotAllowed),
		})
	})

	return r
}
