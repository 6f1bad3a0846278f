// Package handler exposes the registry over HTTP. Routes are authenticated
// with bearer tokens; the caller address comes from the token, never from the
// request body, except for mint recipients which may differ from the payer.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cnft/internal/platform/metrics"
	"cnft/internal/platform/middleware"
	"cnft/internal/registry/models"
	"cnft/internal/transport/http/shared"
	"cnft/pkg/domain"
	dErrors "cnft/pkg/domain-errors"
)

// Service defines the registry operations the transport layer needs.
type Service interface {
	MintSingle(ctx context.Context, item models.MintItem, payment *big.Int) (*models.Token, error)
	MintBatch(ctx context.Context, items []models.MintItem, payment *big.Int) ([]*models.Token, error)
	Transfer(ctx context.Context, tokenID domain.TokenID, from, to, requester domain.Address) error
	GrantView(ctx context.Context, tokenID domain.TokenID, viewer, requester domain.Address) error
	RevokeView(ctx context.Context, tokenID domain.TokenID, viewer, requester domain.Address) error
	HasView(ctx context.Context, tokenID domain.TokenID, viewer domain.Address) (bool, error)
	SetMintPrice(ctx context.Context, newPrice *big.Int, requester domain.Address) error
	Withdraw(ctx context.Context, requester domain.Address) (*big.Int, error)
	GetToken(ctx context.Context, tokenID domain.TokenID) (*models.Token, error)
	NextTokenID(ctx context.Context) (domain.TokenID, error)
	MintPrice(ctx context.Context) *big.Int
	TreasuryBalance(ctx context.Context) (*big.Int, error)
	Name() string
	Symbol() string
	MaxSupply() uint64
}

// Handler handles registry endpoints.
type Handler struct {
	logger       *slog.Logger
	registry     Service
	jwtValidator middleware.JWTValidator
	httpMetrics  *metrics.HTTP
}

// New creates a new registry Handler. httpMetrics may be nil.
func New(registry Service, logger *slog.Logger, jwtValidator middleware.JWTValidator, httpMetrics *metrics.HTTP) *Handler {
	return &Handler{
		logger:       logger,
		registry:     registry,
		jwtValidator: jwtValidator,
		httpMetrics:  httpMetrics,
	}
}

// Register registers the registry routes with the chi router. Reads are
// public, matching on-chain visibility, though a bearer token may still be
// presented to unlock attribute access; every mutation requires one.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(g chi.Router) {
		g.Use(middleware.Recovery(h.logger))
		g.Use(middleware.RequestID)
		g.Use(middleware.Logger(h.logger))
		g.Use(middleware.Latency(h.httpMetrics))
		g.Use(middleware.Timeout(10 * time.Second))
		g.Use(middleware.OptionalAuth(h.jwtValidator, h.logger))
		g.Get("/registry", h.handleGetRegistry)
		g.Get("/tokens/{id}", h.handleGetToken)
		g.Get("/tokens/{id}/permissions/{viewer}", h.handleHasPermission)
	})
	r.Group(func(g chi.Router) {
		g.Use(middleware.Recovery(h.logger))
		g.Use(middleware.RequestID)
		g.Use(middleware.Logger(h.logger))
		g.Use(middleware.Latency(h.httpMetrics))
		g.Use(middleware.Timeout(30 * time.Second))
		g.Use(middleware.ContentTypeJSON)
		g.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		g.Post("/tokens/mint", h.handleMint)
		g.Post("/tokens/mint/batch", h.handleMintBatch)
		g.Post("/tokens/{id}/transfer", h.handleTransfer)
		g.Post("/tokens/{id}/permissions", h.handleGrant)
		g.Delete("/tokens/{id}/permissions/{viewer}", h.handleRevoke)
		g.Put("/admin/mint-price", h.handleSetMintPrice)
		g.Post("/admin/withdraw", h.handleWithdraw)
	})
}

func (h *Handler) handleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	item, payment, err := req.ToItem()
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	token, err := h.registry.MintSingle(ctx, item, payment)
	if err != nil {
		h.logRejection(ctx, "mint rejected", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, MintResponse{Tokens: []TokenResponse{toTokenResponse(token, true)}})
}

func (h *Handler) handleMintBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BatchMintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	items, payment, err := req.ToItems()
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	tokens, err := h.registry.MintBatch(ctx, items, payment)
	if err != nil {
		h.logRejection(ctx, "batch mint rejected", err)
		shared.WriteError(w, err)
		return
	}

	resp := MintResponse{Tokens: make([]TokenResponse, 0, len(tokens))}
	for _, t := range tokens {
		resp.Tokens = append(resp.Tokens, toTokenResponse(t, true))
	}
	shared.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleGetToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}
	token, err := h.registry.GetToken(ctx, tokenID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	requester := middleware.GetAddress(ctx)
	allowed, err := h.registry.HasView(ctx, tokenID, requester)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check view permission",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, toTokenResponse(token, allowed))
}

func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	from, ok := domain.ParseAddress(req.From)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid from address"))
		return
	}
	to, ok := domain.ParseAddress(req.To)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid to address"))
		return
	}

	if err := h.registry.Transfer(ctx, tokenID, from, to, middleware.GetAddress(ctx)); err != nil {
		h.logRejection(ctx, "transfer rejected", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}
	var req GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	viewer, ok := domain.ParseAddress(req.Viewer)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid viewer address"))
		return
	}

	if err := h.registry.GrantView(ctx, tokenID, viewer, middleware.GetAddress(ctx)); err != nil {
		h.logRejection(ctx, "view permission grant rejected", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}
	viewer, ok := domain.ParseAddress(chi.URLParam(r, "viewer"))
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid viewer address"))
		return
	}

	if err := h.registry.RevokeView(ctx, tokenID, viewer, middleware.GetAddress(ctx)); err != nil {
		h.logRejection(ctx, "view permission revoke rejected", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleHasPermission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}
	viewer, ok := domain.ParseAddress(chi.URLParam(r, "viewer"))
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid viewer address"))
		return
	}

	allowed, err := h.registry.HasView(ctx, tokenID, viewer)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, PermissionResponse{
		TokenID: uint64(tokenID),
		Viewer:  viewer.Hex(),
		Allowed: allowed,
	})
}

func (h *Handler) handleGetRegistry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	nextID, err := h.registry.NextTokenID(ctx)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	balance, err := h.registry.TreasuryBalance(ctx)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, RegistryResponse{
		Name:               h.registry.Name(),
		Symbol:             h.registry.Symbol(),
		MintPriceWei:       h.registry.MintPrice(ctx).String(),
		MaxSupply:          h.registry.MaxSupply(),
		NextTokenID:        uint64(nextID),
		TreasuryBalanceWei: balance.String(),
	})
}

func (h *Handler) handleSetMintPrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.requireAdminScope(w, ctx, "mint price update rejected") {
		return
	}

	var req SetMintPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	price, ok := domain.ParseWei(req.PriceWei)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid price"))
		return
	}

	if err := h.registry.SetMintPrice(ctx, price, middleware.GetAddress(ctx)); err != nil {
		h.logRejection(ctx, "mint price update rejected", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.requireAdminScope(w, ctx, "withdrawal rejected") {
		return
	}

	amount, err := h.registry.Withdraw(ctx, middleware.GetAddress(ctx))
	if err != nil {
		h.logRejection(ctx, "withdrawal rejected", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, WithdrawResponse{AmountWei: amount.String()})
}

// requireAdminScope gates the admin routes on the token's admin scope. The
// service still checks the requester against the configured admin address, so
// a scoped token bound to another address gets no further.
func (h *Handler) requireAdminScope(w http.ResponseWriter, ctx context.Context, msg string) bool {
	if middleware.IsAdmin(ctx) {
		return true
	}
	err := dErrors.New(dErrors.CodeNotAdmin, "admin scope required")
	h.logRejection(ctx, msg, err)
	shared.WriteError(w, err)
	return false
}

func (h *Handler) tokenID(w http.ResponseWriter, r *http.Request) (domain.TokenID, bool) {
	id, err := domain.ParseTokenID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid token id"))
		return 0, false
	}
	return id, true
}

func (h *Handler) logRejection(ctx context.Context, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		return
	}
	h.logger.WarnContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
}
