package handler

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"cnft/internal/registry/models"
	"cnft/pkg/domain"
	dErrors "cnft/pkg/domain-errors"
)

// MintRequest mints one token.
type MintRequest struct {
	Recipient  string                     `json:"recipient"`
	URI        string                     `json:"uri"`
	Attributes models.EncryptedAttributes `json:"attributes"`
	PaymentWei string                     `json:"payment_wei"`
}

func (r MintRequest) ToItem() (models.MintItem, *big.Int, error) {
	recipient, ok := domain.ParseAddress(r.Recipient)
	if !ok {
		return models.MintItem{}, nil, dErrors.New(dErrors.CodeBadRequest, "invalid recipient address")
	}
	payment, ok := domain.ParseWei(r.PaymentWei)
	if !ok {
		return models.MintItem{}, nil, dErrors.New(dErrors.CodeBadRequest, "invalid payment amount")
	}
	return models.MintItem{Recipient: recipient, URI: r.URI, Attributes: r.Attributes}, payment, nil
}

// BatchMintRequest mints several tokens in one atomic call. The six parallel
// arrays mirror the original wire format and must all have the same length.
type BatchMintRequest struct {
	Recipients []string        `json:"recipients"`
	URIs       []string        `json:"uris"`
	Rarity     []hexutil.Bytes `json:"rarity"`
	Power      []hexutil.Bytes `json:"power"`
	Level      []hexutil.Bytes `json:"level"`
	Value      []hexutil.Bytes `json:"value"`
	PaymentWei string          `json:"payment_wei"`
}

func (r BatchMintRequest) ToItems() ([]models.MintItem, *big.Int, error) {
	recipients := make([]domain.Address, 0, len(r.Recipients))
	for _, raw := range r.Recipients {
		addr, ok := domain.ParseAddress(raw)
		if !ok {
			return nil, nil, dErrors.New(dErrors.CodeBadRequest, "invalid recipient address")
		}
		recipients = append(recipients, addr)
	}
	items, err := models.BuildMintItems(recipients, r.URIs, r.Rarity, r.Power, r.Level, r.Value)
	if err != nil {
		return nil, nil, err
	}
	payment, ok := domain.ParseWei(r.PaymentWei)
	if !ok {
		return nil, nil, dErrors.New(dErrors.CodeBadRequest, "invalid payment amount")
	}
	return items, payment, nil
}

// TransferRequest moves a token to a new owner.
type TransferRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GrantRequest authorizes a viewer on a token.
type GrantRequest struct {
	Viewer string `json:"viewer"`
}

// SetMintPriceRequest updates the per-token mint price.
type SetMintPriceRequest struct {
	PriceWei string `json:"price_wei"`
}
