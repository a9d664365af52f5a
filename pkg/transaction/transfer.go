package transaction

import (
	"fmt"

	"cosmossdk.io/math"
)

// TokenTransfer is one token payment attached to a contract call.
// Nonce is zero for fungible tokens and identifies the instance for
// non-fungible and semi-fungible tokens.
type TokenTransfer struct {
	Identifier string   `json:"identifier"`
	Nonce      uint64   `json:"nonce"`
	Amount     math.Int `json:"amount"`
}

// NewTokenTransfer is a convenience constructor for fungible transfers.
func NewTokenTransfer(identifier string, amount math.Int) TokenTransfer {
	return TokenTransfer{Identifier: identifier, Amount: amount}
}

// Validate checks the identifier is set and the amount is not negative.
func (t TokenTransfer) Validate() error {
	if t.Identifier == "" {
		return fmt.Errorf("%w: empty token identifier", ErrInvalidTransfer)
	}
	if !t.Amount.IsNil() && t.Amount.IsNegative() {
		return fmt.Errorf("%w: negative amount %s for %s", ErrInvalidTransfer, t.Amount, t.Identifier)
	}
	return nil
}

func (t TokenTransfer) String() string {
	return fmt.Sprintf("%s:%d:%s", t.Identifier, t.Nonce, amountOrZero(t.Amount))
}

func amountOrZero(v math.Int) math.Int {
	if v.IsNil() {
		return math.ZeroInt()
	}
	return v
}
