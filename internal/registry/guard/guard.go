// Package guard validates mint requests against price, supply and batch
// rules. Validation is pure: callers mutate state only after a successful
// check, which keeps every mint call all-or-nothing.
package guard

import (
	"math/big"

	dErrors "cnft/pkg/domain-errors"
)

// MaxBatchSize caps the number of tokens minted in one call.
const MaxBatchSize = 10

// CheckMint validates a request to mint count tokens with the given payment
// attached. minted is the number of tokens created so far, maxSupply the
// lifetime cap.
func CheckMint(count int, payment, price *big.Int, minted, maxSupply uint64) error {
	if count < 1 {
		return dErrors.New(dErrors.CodeBadRequest, "mint count must be at least 1")
	}
	if count > MaxBatchSize {
		return dErrors.New(dErrors.CodeBatchTooLarge, "too many tokens to mint")
	}
	if minted+uint64(count) > maxSupply {
		return dErrors.New(dErrors.CodeSupplyExceeded, "max supply exceeded")
	}
	if payment == nil {
		return dErrors.New(dErrors.CodeBadRequest, "payment amount is required")
	}
	required := new(big.Int).Mul(price, big.NewInt(int64(count)))
	if payment.Cmp(required) < 0 {
		return dErrors.New(dErrors.CodeInsufficientPayment, "insufficient payment")
	}
	return nil
}
