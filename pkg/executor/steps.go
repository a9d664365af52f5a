package executor

import (
	"cosmossdk.io/math"

	"github.com/altuslabsxyz/scexec/pkg/address"
	"github.com/altuslabsxyz/scexec/pkg/network"
	"github.com/altuslabsxyz/scexec/pkg/transaction"
)

// ScCallStep is a contract call as it would be submitted.
type ScCallStep struct {
	From      *address.Address
	To        address.Address
	Function  string
	Arguments [][]byte
	GasLimit  uint64
	Value     math.Int
	Transfers []transaction.TokenTransfer
}

func newScCallStep(req transaction.CallRequest) ScCallStep {
	return ScCallStep{
		To:        req.To,
		Function:  req.Function,
		Arguments: cloneArgs(req.Arguments),
		GasLimit:  req.GasLimit,
		Value:     req.Value,
		Transfers: append([]transaction.TokenTransfer(nil), req.Transfers...),
	}
}

// ToSendableTransaction implements transaction.SendableTransactionConvertible.
// Receiver is the called contract, also when the payload is a transfer envelope.
func (s ScCallStep) ToSendableTransaction() transaction.SendableTransaction {
	return transaction.SendableTransaction{
		Sender:    cloneAddress(s.From),
		Receiver:  s.To,
		Function:  s.Function,
		Arguments: cloneArgs(s.Arguments),
		Data:      transaction.CallData(s.To, s.Function, s.Arguments, s.Transfers),
		GasLimit:  s.GasLimit,
		Value:     valueOrZero(s.Value),
		Transfers: append([]transaction.TokenTransfer(nil), s.Transfers...),
	}
}

// ScDeployStep describes a deployment. Executors fill From and, once submitted,
// Response and ReturnData.
type ScDeployStep struct {
	From         *address.Address
	Code         []byte
	CodeMetadata transaction.CodeMetadata
	Arguments    [][]byte
	GasLimit     uint64
	Value        math.Int

	Response   *network.TransactionOnNetwork
	ReturnData [][]byte
}

// ToSendableTransaction implements transaction.SendableTransactionConvertible.
func (s ScDeployStep) ToSendableTransaction() transaction.SendableTransaction {
	return transaction.SendableTransaction{
		Sender:    cloneAddress(s.From),
		Receiver:  address.Zero,
		Arguments: cloneArgs(s.Arguments),
		Data:      transaction.DeployData(s.Code, s.CodeMetadata, s.Arguments),
		GasLimit:  s.GasLimit,
		Value:     valueOrZero(s.Value),
	}
}

func cloneAddress(a *address.Address) *address.Address {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func cloneArgs(args [][]byte) [][]byte {
	if args == nil {
		return nil
	}
	out := make([][]byte, len(args))
	for i, a := range args {
		out[i] = append([]byte{}, a...)
	}
	return out
}

func valueOrZero(v math.Int) math.Int {
	if v.IsNil() {
		return math.ZeroInt()
	}
	return v
}

var (
	_ transaction.SendableTransactionConvertible = ScCallStep{}
	_ transaction.SendableTransactionConvertible = ScDeployStep{}
)
