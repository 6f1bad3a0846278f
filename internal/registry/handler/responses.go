package handler

import (
	"time"

	"cnft/internal/registry/models"
)

// TokenResponse is one token on the wire. Attributes are present only when
// the requester is allowed to view them.
type TokenResponse struct {
	ID         uint64                      `json:"id"`
	Owner      string                      `json:"owner"`
	URI        string                      `json:"uri"`
	Attributes *models.EncryptedAttributes `json:"attributes,omitempty"`
	MintedAt   time.Time                   `json:"minted_at"`
}

func toTokenResponse(t *models.Token, includeAttributes bool) TokenResponse {
	resp := TokenResponse{
		ID:       uint64(t.ID),
		Owner:    t.Owner.Hex(),
		URI:      t.URI,
		MintedAt: t.MintedAt,
	}
	if includeAttributes {
		attrs := t.Attributes
		resp.Attributes = &attrs
	}
	return resp
}

// MintResponse reports the tokens a mint call created.
type MintResponse struct {
	Tokens []TokenResponse `json:"tokens"`
}

// PermissionResponse answers a view permission query.
type PermissionResponse struct {
	TokenID uint64 `json:"token_id"`
	Viewer  string `json:"viewer"`
	Allowed bool   `json:"allowed"`
}

// RegistryResponse describes the registry's public parameters and counters.
type RegistryResponse struct {
	Name               string `json:"name"`
	Symbol             string `json:"symbol"`
	MintPriceWei       string `json:"mint_price_wei"`
	MaxSupply          uint64 `json:"max_supply"`
	NextTokenID        uint64 `json:"next_token_id"`
	TreasuryBalanceWei string `json:"treasury_balance_wei"`
}

// WithdrawResponse reports a completed treasury withdrawal.
type WithdrawResponse struct {
	AmountWei string `json:"amount_wei"`
}
