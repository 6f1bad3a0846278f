// Package shared holds helpers common to all HTTP handlers.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "cnft/pkg/domain-errors"
)

// ErrorResponse is the wire shape of every error the API returns.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteError maps a domain error onto an HTTP status and writes the JSON
// error body. Unrecognized errors become 500s with a generic message so
// internals never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	code := dErrors.CodeOf(err)
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	resp := ErrorResponse{Error: string(code), Description: dErrors.MessageOf(err)}
	if code == dErrors.CodeInternal {
		resp.Description = "Internal server error"
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
