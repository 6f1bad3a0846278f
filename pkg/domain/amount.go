package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

// Amounts are wei throughout. *big.Int is treated as immutable once handed
// to a store or service; callers must not mutate a returned amount.

// Wei returns an amount of n wei.
func Wei(n int64) *big.Int {
	return big.NewInt(n)
}

// CentiEther returns n/100 ether in wei. The default mint price of the
// registry is one centi-ether (0.01 ether).
func CentiEther(n int64) *big.Int {
	amount := new(big.Int).Mul(big.NewInt(n), big.NewInt(params.Ether))
	return amount.Div(amount, big.NewInt(100))
}

// DefaultMintPrice is the deployment default of 0.01 ether.
func DefaultMintPrice() *big.Int {
	return CentiEther(1)
}

// ParseWei parses a decimal wei amount. Returns false for malformed or
// negative input.
func ParseWei(s string) (*big.Int, bool) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, false
	}
	return v, true
}
