package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError renders err as a JSON error payload. Unclassified errors
// become a generic 500 so internals never leak to the caller.
func respondError(w http.ResponseWriter, err error) {
	httpErr := ErrInternal
	var classified HTTPError
	if errors.As(err, &classified) {
		httpErr = classified
	}

	respondJSON(w, httpErr.Code, errorResponse{
		Error: errorDetail{
			Code:    httpErr.Key,
			Message: httpErr.Message,
		},
	})
}

// decodeJSON parses the request body into v.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
