// Package handler issues the bearer tokens the registry API requires.
// Non-admin addresses self-attest; the admin address is only issued a token,
// always admin-scoped, against the configured admin secret.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cnft/internal/platform/middleware"
	"cnft/internal/platform/secrets"
	"cnft/internal/transport/http/shared"
	"cnft/pkg/domain"
	dErrors "cnft/pkg/domain-errors"
)

// TokenIssuer mints signed access tokens.
type TokenIssuer interface {
	GenerateAccessToken(address domain.Address, admin bool, expiresIn time.Duration) (string, error)
}

// Handler handles token issuance.
type Handler struct {
	logger          *slog.Logger
	issuer          TokenIssuer
	admin           domain.Address
	adminSecretHash string
	tokenTTL        time.Duration
}

// New creates a new auth Handler.
func New(issuer TokenIssuer, logger *slog.Logger, admin domain.Address, adminSecretHash string, tokenTTL time.Duration) *Handler {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &Handler{
		logger:          logger,
		issuer:          issuer,
		admin:           admin,
		adminSecretHash: adminSecretHash,
		tokenTTL:        tokenTTL,
	}
}

// Register registers the auth routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(g chi.Router) {
		g.Use(middleware.Recovery(h.logger))
		g.Use(middleware.RequestID)
		g.Use(middleware.Logger(h.logger))
		g.Use(middleware.Timeout(10 * time.Second))
		g.Use(middleware.ContentTypeJSON)
		g.Post("/auth/token", h.handleIssueToken)
	})
}

// TokenRequest asks for a bearer token for an address. Secret is required
// whenever the address is the configured admin.
type TokenRequest struct {
	Address string `json:"address"`
	Secret  string `json:"secret,omitempty"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *Handler) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	address, ok := domain.ParseAddress(req.Address)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid address"))
		return
	}

	// The admin address is never issued a token on self-attestation alone;
	// a token bearing it would otherwise impersonate the admin even without
	// the admin scope.
	admin := false
	if address == h.admin {
		if req.Secret == "" || h.adminSecretHash == "" {
			h.logger.WarnContext(ctx, "admin token request without secret",
				"request_id", middleware.GetRequestID(ctx),
			)
			shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin token requires the admin secret"))
			return
		}
		if err := secrets.Verify(req.Secret, h.adminSecretHash); err != nil {
			h.logger.WarnContext(ctx, "admin token request with invalid secret",
				"request_id", middleware.GetRequestID(ctx),
			)
			shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid secret"))
			return
		}
		admin = true
	}

	token, err := h.issuer.GenerateAccessToken(address, admin, h.tokenTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to issue token"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.tokenTTL.Seconds()),
	})
}
