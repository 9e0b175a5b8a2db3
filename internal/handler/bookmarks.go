package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/repobook/repobook/internal/github"
	"github.com/repobook/repobook/internal/session"
	"github.com/repobook/repobook/internal/token"
	"github.com/repobook/repobook/pkg/logger"
)

// ownedSession returns the request's session after checking that the bearer
// identity matches the session owner. A mismatch means the caller presented
// a token for a different account than the one the sid cookie resolved to.
func (a *API) ownedSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		respondError(w, ErrInternal)
		return nil, false
	}

	identity, _ := token.IdentityFromContext(r.Context())
	if owner := sess.Username(); owner != identity {
		a.log.WarnContext(r.Context(), "session owner mismatch",
			logger.Username(identity), logger.Component("bookmarks"))
		respondError(w, ErrUnauthorized.WithMessage("Session does not belong to the authenticated user"))
		return nil, false
	}
	return sess, true
}

func (a *API) listBookmarks(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.ownedSession(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, sess.Bookmarks())
}

func (a *API) addBookmark(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.ownedSession(w, r)
	if !ok {
		return
	}

	var repo github.Repo
	if err := decodeJSON(r, &repo); err != nil {
		respondError(w, ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	if repo.ID == 0 {
		respondError(w, ErrBadRequest.WithMessage("Repository id is required"))
		return
	}

	if err := sess.AddBookmark(repo); err != nil {
		if errors.Is(err, session.ErrDuplicateBookmark) {
			respondError(w, ErrConflict.WithMessage("Repository is already bookmarked"))
			return
		}
		respondError(w, ErrInternal)
		return
	}

	a.log.InfoContext(r.Context(), "bookmark added",
		slog.Int64("repo_id", repo.ID), logger.Component("bookmarks"))
	respondJSON(w, http.StatusOK, messageResponse{Message: "Bookmark added"})
}

func (a *API) removeBookmark(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.ownedSession(w, r)
	if !ok {
		return
	}

	repoID, err := strconv.ParseInt(chi.URLParam(r, "repoID"), 10, 64)
	if err != nil {
		respondError(w, ErrBadRequest.WithMessage("Invalid repository id"))
		return
	}

	if err := sess.RemoveBookmark(repoID); err != nil {
		if errors.Is(err, session.ErrBookmarkNotFound) {
			respondError(w, ErrNotFound.WithMessage("Bookmark not found"))
			return
		}
		respondError(w, ErrInternal)
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "Bookmark removed"})
}
