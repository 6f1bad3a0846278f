// Package service implements the registry coordinator: minting under supply
// and payment constraints, ownership transfer, per-token view permissions,
// and treasury accounting. Every mutating operation takes an explicit
// requester; nothing is inferred from ambient call context.
package service

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"cnft/internal/registry/events"
	"cnft/internal/registry/guard"
	registrymetrics "cnft/internal/registry/metrics"
	"cnft/internal/registry/models"
	"cnft/pkg/domain"
	dErrors "cnft/pkg/domain-errors"
	"cnft/pkg/platform/sentinel"
	"cnft/pkg/requestcontext"
)

// TokenStore owns token records and sequential id allocation.
type TokenStore interface {
	Create(ctx context.Context, owner domain.Address, uri string, attrs models.EncryptedAttributes, mintedAt time.Time) (*models.Token, error)
	Get(ctx context.Context, id domain.TokenID) (*models.Token, error)
	Exists(ctx context.Context, id domain.TokenID) (bool, error)
	SetOwner(ctx context.Context, id domain.TokenID, owner domain.Address) error
	NextID(ctx context.Context) (domain.TokenID, error)
}

// PermissionStore owns the (tokenId, viewer) grant relation.
type PermissionStore interface {
	Grant(ctx context.Context, id domain.TokenID, viewer domain.Address) error
	Revoke(ctx context.Context, id domain.TokenID, viewer domain.Address) error
	Has(ctx context.Context, id domain.TokenID, viewer domain.Address) (bool, error)
}

// TreasuryStore accumulates mint payments.
type TreasuryStore interface {
	Credit(ctx context.Context, amount *big.Int) error
	Balance(ctx context.Context) (*big.Int, error)
	WithdrawAll(ctx context.Context) (*big.Int, error)
}

// Publisher delivers registry notifications. Delivery failures are logged,
// never rolled back into the operation that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// TxRunner brackets a multi-store mutation in a storage transaction. The
// in-memory deployment needs none; the mutex already makes each call atomic.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Config fixes the deployment-time registry parameters.
type Config struct {
	Name      string
	Symbol    string
	MintPrice *big.Int
	MaxSupply uint64
	Admin     domain.Address
}

// Registry coordinates the token, permission and treasury stores.
//
// A single mutex serializes mutating operations, so each call is atomic with
// respect to all registry state: validation runs first and a rejected call
// leaves state untouched. Read-only queries go straight to the stores.
type Registry struct {
	mu        sync.Mutex
	name      string
	symbol    string
	mintPrice *big.Int
	maxSupply uint64
	admin     domain.Address

	tokens      TokenStore
	permissions PermissionStore
	treasury    TreasuryStore

	runner    TxRunner
	publisher Publisher
	metrics   *registrymetrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
}

type registryConfig struct {
	runner    TxRunner
	publisher Publisher
	metrics   *registrymetrics.Metrics
	logger    *slog.Logger
}

// Option configures optional collaborators.
type Option func(*registryConfig)

func WithPublisher(p Publisher) Option {
	return func(c *registryConfig) { c.publisher = p }
}

func WithTxRunner(r TxRunner) Option {
	return func(c *registryConfig) { c.runner = r }
}

func WithMetrics(m *registrymetrics.Metrics) Option {
	return func(c *registryConfig) { c.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *registryConfig) { c.logger = l }
}

func New(cfg Config, tokens TokenStore, permissions PermissionStore, treasury TreasuryStore, opts ...Option) *Registry {
	rc := &registryConfig{}
	for _, opt := range opts {
		opt(rc)
	}
	if rc.logger == nil {
		rc.logger = slog.Default()
	}
	if rc.runner == nil {
		rc.runner = passthroughTx{}
	}
	price := cfg.MintPrice
	if price == nil {
		price = domain.DefaultMintPrice()
	}
	maxSupply := cfg.MaxSupply
	if maxSupply == 0 {
		maxSupply = 10_000
	}
	return &Registry{
		name:        cfg.Name,
		symbol:      cfg.Symbol,
		mintPrice:   new(big.Int).Set(price),
		maxSupply:   maxSupply,
		admin:       cfg.Admin,
		tokens:      tokens,
		permissions: permissions,
		treasury:    treasury,
		runner:      rc.runner,
		publisher:   rc.publisher,
		metrics:     rc.metrics,
		logger:      rc.logger,
		tracer:      otel.Tracer("cnft/registry"),
	}
}

// MintSingle creates one token for recipient. The payment is credited to the
// treasury in full; overpayment is kept, matching the source system.
func (r *Registry) MintSingle(ctx context.Context, item models.MintItem, payment *big.Int) (*models.Token, error) {
	ctx, span := r.tracer.Start(ctx, "registry.MintSingle")
	defer span.End()
	start := time.Now()

	tokens, err := r.mint(ctx, []models.MintItem{item}, payment)
	if err != nil {
		return nil, err
	}
	r.metrics.ObserveMint(start)
	return tokens[0], nil
}

// MintBatch creates one token per item, in order, all-or-nothing.
func (r *Registry) MintBatch(ctx context.Context, items []models.MintItem, payment *big.Int) ([]*models.Token, error) {
	ctx, span := r.tracer.Start(ctx, "registry.MintBatch")
	defer span.End()
	start := time.Now()

	tokens, err := r.mint(ctx, items, payment)
	if err != nil {
		return nil, err
	}
	r.metrics.ObserveMint(start)
	return tokens, nil
}

func (r *Registry) mint(ctx context.Context, items []models.MintItem, payment *big.Int) ([]*models.Token, error) {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, r.reject(err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	minted, err := r.tokens.NextID(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read supply")
	}
	if err := guard.CheckMint(len(items), payment, r.mintPrice, uint64(minted), r.maxSupply); err != nil {
		return nil, r.reject(err)
	}

	now := requestcontext.Now(ctx)
	created := make([]*models.Token, 0, len(items))
	err = r.runner.RunInTx(ctx, func(ctx context.Context) error {
		for _, item := range items {
			t, err := r.tokens.Create(ctx, item.Recipient, item.URI, item.Attributes, now)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create token")
			}
			// The owner is implicitly authorized; the explicit entry keeps
			// lookups uniform across owners and third-party viewers.
			if err := r.permissions.Grant(ctx, t.ID, item.Recipient); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant owner permission")
			}
			created = append(created, t)
		}
		if err := r.treasury.Credit(ctx, payment); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to credit treasury")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.observeTreasury(ctx)
	r.metrics.AddMinted(len(created))

	for _, t := range created {
		r.publish(ctx, events.NewMint(t.Owner, t.ID, now))
	}
	return created, nil
}

// Transfer moves ownership of a token. The requester must be the current
// owner on record; the new owner gains view permission while existing grants
// to other parties are left untouched.
func (r *Registry) Transfer(ctx context.Context, tokenID domain.TokenID, from, to domain.Address, requester domain.Address) error {
	ctx, span := r.tracer.Start(ctx, "registry.Transfer")
	defer span.End()

	if to == (domain.Address{}) {
		return r.reject(dErrors.New(dErrors.CodeBadRequest, "transfer to the zero address"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	token, err := r.getToken(ctx, tokenID)
	if err != nil {
		return r.reject(err)
	}
	if requester != from || token.Owner != from {
		return r.reject(dErrors.New(dErrors.CodeNotOwner, "not the owner"))
	}

	err = r.runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := r.tokens.SetOwner(ctx, tokenID, to); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to transfer token")
		}
		if err := r.permissions.Grant(ctx, tokenID, to); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant new owner permission")
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.metrics.IncrementTransfers()

	r.publish(ctx, events.NewTransfer(from, to, tokenID, requestcontext.Now(ctx)))
	return nil
}

// GrantView authorizes viewer on one token. Authorization is per token and
// never transitive.
func (r *Registry) GrantView(ctx context.Context, tokenID domain.TokenID, viewer domain.Address, requester domain.Address) error {
	ctx, span := r.tracer.Start(ctx, "registry.GrantView")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireOwner(ctx, tokenID, requester); err != nil {
		return r.reject(err)
	}
	if err := r.permissions.Grant(ctx, tokenID, viewer); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant view permission")
	}
	r.metrics.IncrementGrants()

	r.publish(ctx, events.NewGranted(tokenID, viewer, requestcontext.Now(ctx)))
	return nil
}

// RevokeView removes viewer's explicit grant on one token. The current
// owner's implicit authorization is not revocable.
func (r *Registry) RevokeView(ctx context.Context, tokenID domain.TokenID, viewer domain.Address, requester domain.Address) error {
	ctx, span := r.tracer.Start(ctx, "registry.RevokeView")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireOwner(ctx, tokenID, requester); err != nil {
		return r.reject(err)
	}
	if err := r.permissions.Revoke(ctx, tokenID, viewer); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke view permission")
	}
	r.metrics.IncrementRevokes()

	r.publish(ctx, events.NewRevoked(tokenID, viewer, requestcontext.Now(ctx)))
	return nil
}

// HasView reports whether viewer may be treated as able to view the token's
// attributes: true for the current owner or an explicit grant. A nonexistent
// token answers false rather than erroring; callers needing existence check
// the token store.
func (r *Registry) HasView(ctx context.Context, tokenID domain.TokenID, viewer domain.Address) (bool, error) {
	token, err := r.tokens.Get(ctx, tokenID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load token")
	}
	if token.Owner == viewer {
		return true, nil
	}
	granted, err := r.permissions.Has(ctx, tokenID, viewer)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check view permission")
	}
	return granted, nil
}

// SetMintPrice updates the price for future mints. Admin only.
func (r *Registry) SetMintPrice(ctx context.Context, newPrice *big.Int, requester domain.Address) error {
	_, span := r.tracer.Start(ctx, "registry.SetMintPrice")
	defer span.End()

	if requester != r.admin {
		return r.reject(dErrors.New(dErrors.CodeNotAdmin, "caller is not the admin"))
	}
	if newPrice == nil || newPrice.Sign() < 0 {
		return r.reject(dErrors.New(dErrors.CodeBadRequest, "mint price must be non-negative"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.mintPrice = new(big.Int).Set(newPrice)
	return nil
}

// Withdraw drains the entire treasury to the admin. Rejected when the
// balance is already zero.
func (r *Registry) Withdraw(ctx context.Context, requester domain.Address) (*big.Int, error) {
	ctx, span := r.tracer.Start(ctx, "registry.Withdraw")
	defer span.End()

	if requester != r.admin {
		return nil, r.reject(dErrors.New(dErrors.CodeNotAdmin, "caller is not the admin"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	balance, err := r.treasury.Balance(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read treasury")
	}
	if balance.Sign() == 0 {
		return nil, r.reject(dErrors.New(dErrors.CodeNothingToWithdraw, "treasury is empty"))
	}

	drained, err := r.treasury.WithdrawAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to withdraw treasury")
	}
	r.metrics.IncrementWithdrawals()
	r.observeTreasury(ctx)
	return drained, nil
}

// GetToken loads one token record.
func (r *Registry) GetToken(ctx context.Context, tokenID domain.TokenID) (*models.Token, error) {
	token, err := r.getToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	return token, nil
}

// OwnerOf returns the current owner of a token.
func (r *Registry) OwnerOf(ctx context.Context, tokenID domain.TokenID) (domain.Address, error) {
	token, err := r.getToken(ctx, tokenID)
	if err != nil {
		return domain.Address{}, err
	}
	return token.Owner, nil
}

// TokenURI returns the immutable metadata URI of a token.
func (r *Registry) TokenURI(ctx context.Context, tokenID domain.TokenID) (string, error) {
	token, err := r.getToken(ctx, tokenID)
	if err != nil {
		return "", err
	}
	return token.URI, nil
}

// NextTokenID returns the id the next mint will receive.
func (r *Registry) NextTokenID(ctx context.Context) (domain.TokenID, error) {
	next, err := r.tokens.NextID(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read supply")
	}
	return next, nil
}

// MintPrice returns the current price per token.
func (r *Registry) MintPrice(ctx context.Context) *big.Int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return new(big.Int).Set(r.mintPrice)
}

// TreasuryBalance returns the accumulated, unwithdrawn mint fees.
func (r *Registry) TreasuryBalance(ctx context.Context) (*big.Int, error) {
	balance, err := r.treasury.Balance(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read treasury")
	}
	return balance, nil
}

func (r *Registry) Name() string          { return r.name }
func (r *Registry) Symbol() string        { return r.symbol }
func (r *Registry) MaxSupply() uint64     { return r.maxSupply }
func (r *Registry) Admin() domain.Address { return r.admin }

func (r *Registry) getToken(ctx context.Context, tokenID domain.TokenID) (*models.Token, error) {
	token, err := r.tokens.Get(ctx, tokenID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "token does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load token")
	}
	return token, nil
}

func (r *Registry) requireOwner(ctx context.Context, tokenID domain.TokenID, requester domain.Address) error {
	token, err := r.getToken(ctx, tokenID)
	if err != nil {
		return err
	}
	if token.Owner != requester {
		return dErrors.New(dErrors.CodeNotOwner, "not the owner")
	}
	return nil
}

func (r *Registry) reject(err error) error {
	r.metrics.IncrementRejected(string(dErrors.CodeOf(err)))
	return err
}

func (r *Registry) publish(ctx context.Context, event events.Event) {
	if r.publisher == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.logger.WarnContext(ctx, "failed to publish registry event",
			"kind", string(event.Kind),
			"token_id", event.TokenID.String(),
			"error", err.Error(),
		)
	}
}

func (r *Registry) observeTreasury(ctx context.Context) {
	if r.metrics == nil {
		return
	}
	if balance, err := r.treasury.Balance(ctx); err == nil {
		r.metrics.SetTreasury(balance)
	}
}
