package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"cnft/pkg/domain"
	dErrors "cnft/pkg/domain-errors"
)

// EncryptedAttributes is the fixed 4-tuple of opaque ciphertexts attached to
// every token. The registry stores and gates access to these blobs; it never
// decrypts or inspects them. hexutil.Bytes keeps the 0x wire encoding the
// clients already use.
type EncryptedAttributes struct {
	Rarity hexutil.Bytes `json:"rarity"`
	Power  hexutil.Bytes `json:"power"`
	Level  hexutil.Bytes `json:"level"`
	Value  hexutil.Bytes `json:"value"`
}

// Validate rejects tuples with any empty ciphertext. Content is opaque and
// is otherwise not checked.
func (a EncryptedAttributes) Validate() error {
	if len(a.Rarity) == 0 || len(a.Power) == 0 || len(a.Level) == 0 || len(a.Value) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "all four encrypted attributes are required")
	}
	return nil
}

// Token is one confidential asset.
//
// Invariants:
//   - ID values are assigned 0, 1, 2, … in creation order and never reused
//   - Exactly one owner at any time; only the transfer path may change it
//   - URI and Attributes are immutable after creation
type Token struct {
	ID         domain.TokenID      `json:"id"`
	Owner      domain.Address      `json:"owner"`
	URI        string              `json:"uri"`
	Attributes EncryptedAttributes `json:"attributes"`
	MintedAt   time.Time           `json:"minted_at"`
}

// MintItem is the per-token input of a mint call.
type MintItem struct {
	Recipient  domain.Address
	URI        string
	Attributes EncryptedAttributes
}

// Validate checks a single mint input before any state is touched.
func (m MintItem) Validate() error {
	if m.Recipient == (domain.Address{}) {
		return dErrors.New(dErrors.CodeBadRequest, "recipient address is required")
	}
	if m.URI == "" {
		return dErrors.New(dErrors.CodeBadRequest, "token URI is required")
	}
	return m.Attributes.Validate()
}

// BuildMintItems assembles batch input from the six parallel arrays the
// original wire format uses. A length mismatch fails the whole batch before
// any token is created.
func BuildMintItems(recipients []domain.Address, uris []string, rarity, power, level, value []hexutil.Bytes) ([]MintItem, error) {
	n := len(recipients)
	if len(uris) != n || len(rarity) != n || len(power) != n || len(level) != n || len(value) != n {
		return nil, dErrors.New(dErrors.CodeLengthMismatch, "arrays length mismatch")
	}
	items := make([]MintItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, MintItem{
			Recipient: recipients[i],
			URI:       uris[i],
			Attributes: EncryptedAttributes{
				Rarity: rarity[i],
				Power:  power[i],
				Level:  level[i],
				Value:  value[i],
			},
		})
	}
	return items, nil
}
