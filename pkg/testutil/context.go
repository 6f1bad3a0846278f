package testutil

import (
	"net/http"

	"cnft/pkg/domain"
	"cnft/pkg/requestcontext"
)

// WithRequester adds an authenticated caller address to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithRequester(req *http.Request, addr domain.Address) *http.Request {
	return req.WithContext(requestcontext.WithRequester(req.Context(), addr))
}

// WithAdmin marks the request context as carrying an admin-scoped token.
func WithAdmin(req *http.Request) *http.Request {
	return req.WithContext(requestcontext.WithAdmin(req.Context(), true))
}
