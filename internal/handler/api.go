package handler

import (
	"context"
	"log/slog"

	"github.com/repobook/repobook/internal/credentials"
	"github.com/repobook/repobook/internal/github"
	"github.com/repobook/repobook/internal/token"
	"github.com/repobook/repobook/pkg/validator"
)

// Searcher runs repository searches against the upstream code host.
type Searcher interface {
	Search(ctx context.Context, query string, perPage, page int) (*github.SearchResult, error)
}

// API carries the dependencies shared by all HTTP handlers.
type API struct {
	creds    credentials.Validator
	tokens   *token.Issuer
	search   Searcher
	validate *validator.Validator
	log      *slog.Logger
}

// NewAPI wires the handler set. A nil logger discards all output.
func NewAPI(creds credentials.Validator, tokens *token.Issuer, search Searcher, validate *validator.Validator, log *slog.Logger) *API {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &API{
		creds:    creds,
		tokens:   tokens,
		search:   search,
		validate: validate,
		log:      log,
	}
}
