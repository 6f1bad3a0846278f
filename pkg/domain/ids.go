// Package domain holds the identifier and amount types shared across the
// registry. Keeping them in one place avoids import cycles between stores,
// services and transport.
package domain

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

// TokenID identifies one confidential token. IDs are allocated sequentially
// starting at zero and are never reused.
type TokenID uint64

func (t TokenID) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// ParseTokenID parses a decimal token id.
func ParseTokenID(s string) (TokenID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return TokenID(v), nil
}

// Address identifies an account. The 20-byte Ethereum address format is kept
// from the system this registry fronts; go-ethereum provides parsing,
// checksumming and JSON encoding.
type Address = common.Address

// ParseAddress parses a 0x-prefixed hex account address.
func ParseAddress(s string) (Address, bool) {
	if !common.IsHexAddress(s) {
		return Address{}, false
	}
	return common.HexToAddress(s), true
}
