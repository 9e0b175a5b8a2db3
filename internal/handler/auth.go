package handler

import (
	"net/http"
	"strings"

	"github.com/repobook/repobook/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// login exchanges valid credentials for a signed identity token.
// The failure message never reveals which of the two fields was wrong.
func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, ErrBadRequest.WithMessage("Invalid request body"))
		return
	}

	if err := a.validate.Validate(req); err != nil {
		respondError(w, ErrBadRequest.WithMessage(err.Error()))
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		respondError(w, ErrBadRequest.WithMessage("username is required"))
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		respondError(w, ErrBadRequest.WithMessage("password is required"))
		return
	}

	if !a.creds.Validate(req.Username, req.Password) {
		respondError(w, ErrUnauthorized.WithMessage("Invalid username or password"))
		return
	}

	raw, err := a.tokens.Issue(req.Username)
	if err != nil {
		a.log.ErrorContext(r.Context(), "token issuance failed",
			logger.Error(err), logger.Username(req.Username), logger.Component("auth"))
		respondError(w, ErrInternal)
		return
	}

	a.log.InfoContext(r.Context(), "user logged in",
		logger.Username(req.Username), logger.Component("auth"))
	respondJSON(w, http.StatusOK, loginResponse{Token: raw, Username: req.Username})
}
