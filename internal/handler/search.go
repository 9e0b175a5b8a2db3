package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/repobook/repobook/internal/github"
	"github.com/repobook/repobook/pkg/logger"
)

const (
	defaultPerPage = 30
	maxPerPage     = 100
)

// searchRepos proxies repository searches to the upstream host. Pagination
// inputs outside the accepted range fall back to defaults rather than erroring.
func (a *API) searchRepos(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		respondError(w, ErrBadRequest.WithMessage("Query parameter is required"))
		return
	}

	perPage := defaultPerPage
	if raw := r.URL.Query().Get("perPage"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= maxPerPage {
			perPage = n
		}
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			page = n
		}
	}

	result, err := a.search.Search(r.Context(), query, perPage, page)
	if err != nil {
		if errors.Is(err, github.ErrRateLimited) {
			respondError(w, ErrTooManyRequests.WithMessage("Upstream rate limit exceeded, try again later"))
			return
		}
		a.log.ErrorContext(r.Context(), "upstream search failed",
			logger.Error(err), logger.Component("search"))
		respondError(w, ErrInternal.WithMessage("Upstream search failed"))
		return
	}

	respondJSON(w, http.StatusOK, result)
}
