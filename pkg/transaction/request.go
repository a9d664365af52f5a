package transaction

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/altuslabsxyz/scexec/pkg/address"
)

// CallRequest is a logical contract call. It is validated by Normalize and never
// mutated by executors.
type CallRequest struct {
	To        address.Address
	Function  string
	Arguments [][]byte
	GasLimit  uint64
	Value     math.Int
	Transfers []TokenTransfer
}

// Normalization returns the normalization input for this request sent by sender.
func (r CallRequest) Normalization(sender address.Address, hrp string) (Normalization, error) {
	if hrp == "" {
		hrp = address.DefaultHRP
	}
	senderBech32, err := sender.ToBech32StringWithHRP(hrp)
	if err != nil {
		return Normalization{}, fmt.Errorf("%w: sender: %v", ErrInvalidAddress, err)
	}
	receiverBech32, err := r.To.ToBech32StringWithHRP(hrp)
	if err != nil {
		return Normalization{}, fmt.Errorf("%w: receiver: %v", ErrInvalidAddress, err)
	}
	return Normalization{
		Sender:       senderBech32,
		Receiver:     receiverBech32,
		FunctionName: r.Function,
		Arguments:    r.Arguments,
		Value:        r.Value,
		Transfers:    r.Transfers,
	}, nil
}

// SendableTransaction is a backend-agnostic, read-only snapshot of a transaction that
// would be (or was) sent. Sender is nil when no sender is known.
type SendableTransaction struct {
	Sender    *address.Address `json:"sender,omitempty"`
	Receiver  address.Address  `json:"receiver"`
	Function  string           `json:"function,omitempty"`
	Arguments [][]byte         `json:"arguments,omitempty"`
	Data      string           `json:"data"`
	GasLimit  uint64           `json:"gasLimit"`
	Value     math.Int         `json:"value"`
	Transfers []TokenTransfer  `json:"transfers,omitempty"`
}

// SendableTransactionConvertible is implemented by captured transaction shapes.
type SendableTransactionConvertible interface {
	ToSendableTransaction() SendableTransaction
}
