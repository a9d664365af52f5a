// pkg/transaction/normalization.go
package transaction

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"cosmossdk.io/math"

	"github.com/altuslabsxyz/scexec/pkg/address"
)

const (
	// ArgSeparator joins the fields of the transaction data string.
	ArgSeparator = "@"

	// MultiTransferFunction dispatches one or more token transfers followed by a call.
	MultiTransferFunction = "MultiESDTNFTTransfer"

	// WasmVMType identifies the VM that runs deployed code.
	WasmVMType = "0500"
)

// Normalization holds the logical parameters of a contract call before they are
// turned into a transaction payload. Sender and Receiver are bech32 strings.
type Normalization struct {
	Sender       string
	Receiver     string
	FunctionName string
	Arguments    [][]byte
	Value        math.Int
	Transfers    []TokenTransfer
}

// NormalizedTransaction is the canonical form of a call. Data is byte-exact what gets
// signed and submitted and is never rebuilt once produced.
type NormalizedTransaction struct {
	Sender   string
	Receiver string
	Value    math.Int
	Data     string
}

// TransactionData returns the payload string.
func (n NormalizedTransaction) TransactionData() string {
	return n.Data
}

// Normalize validates the call and builds its payload. When token transfers are
// present the call is wrapped in a multi-transfer envelope: the destination moves into
// the data field and the transaction is sent to the sender itself.
func (n Normalization) Normalize() (NormalizedTransaction, error) {
	sender, err := parseBech32(n.Sender, "sender")
	if err != nil {
		return NormalizedTransaction{}, err
	}
	receiver, err := parseBech32(n.Receiver, "receiver")
	if err != nil {
		return NormalizedTransaction{}, err
	}

	value, err := normalizeValue(n.Value)
	if err != nil {
		return NormalizedTransaction{}, err
	}

	for i, t := range n.Transfers {
		if err := t.Validate(); err != nil {
			return NormalizedTransaction{}, fmt.Errorf("transfer %d: %w", i, err)
		}
	}

	if n.FunctionName == "" && len(n.Arguments) > 0 {
		return NormalizedTransaction{}, fmt.Errorf("%w: %d arguments given without a function", ErrMissingFunction, len(n.Arguments))
	}

	if len(n.Transfers) == 0 {
		return NormalizedTransaction{
			Sender:   n.Sender,
			Receiver: n.Receiver,
			Value:    value,
			Data:     CallData(receiver, n.FunctionName, n.Arguments, nil),
		}, nil
	}

	senderBech32, err := sender.ToBech32StringWithHRP(hrpOf(n.Sender))
	if err != nil {
		return NormalizedTransaction{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	return NormalizedTransaction{
		Sender:   n.Sender,
		Receiver: senderBech32,
		Value:    value,
		Data:     CallData(receiver, n.FunctionName, n.Arguments, n.Transfers),
	}, nil
}

// CallData builds the payload of a call to receiver. It performs no validation; use
// Normalization.Normalize for checked input.
func CallData(receiver address.Address, function string, args [][]byte, transfers []TokenTransfer) string {
	if len(transfers) == 0 {
		return joinCall(function, args)
	}

	fields := []string{
		MultiTransferFunction,
		hex.EncodeToString(receiver.Bytes()),
		encodeUint(new(big.Int).SetUint64(uint64(len(transfers)))),
	}
	for _, t := range transfers {
		fields = append(fields,
			hex.EncodeToString([]byte(t.Identifier)),
			encodeUint(new(big.Int).SetUint64(t.Nonce)),
			encodeUint(amountOrZero(t.Amount).BigInt()),
		)
	}
	if function != "" {
		fields = append(fields, hex.EncodeToString([]byte(function)))
		fields = append(fields, encodeArgs(args)...)
	}
	return strings.Join(fields, ArgSeparator)
}

// CodeMetadata holds the deployment flags of a contract.
type CodeMetadata struct {
	Upgradeable bool `json:"upgradeable"`
	Readable    bool `json:"readable"`
	Payable     bool `json:"payable"`
	PayableBySC bool `json:"payableBySc"`
}

// Bytes returns the two-byte wire representation.
func (m CodeMetadata) Bytes() [2]byte {
	var b [2]byte
	if m.Upgradeable {
		b[0] |= 0x01
	}
	if m.Readable {
		b[0] |= 0x04
	}
	if m.Payable {
		b[1] |= 0x02
	}
	if m.PayableBySC {
		b[1] |= 0x04
	}
	return b
}

// DeployNormalization holds the logical parameters of a contract deployment.
type DeployNormalization struct {
	Sender       string
	Code         []byte
	CodeMetadata CodeMetadata
	Arguments    [][]byte
	Value        math.Int
}

// Normalize builds the deployment payload `<code>@0500@<metadata>[@<arg>]*` addressed
// to the zero address.
func (d DeployNormalization) Normalize() (NormalizedTransaction, error) {
	if _, err := parseBech32(d.Sender, "sender"); err != nil {
		return NormalizedTransaction{}, err
	}
	if len(d.Code) == 0 {
		return NormalizedTransaction{}, fmt.Errorf("%w: empty contract code", ErrInvalidData)
	}
	value, err := normalizeValue(d.Value)
	if err != nil {
		return NormalizedTransaction{}, err
	}

	receiver, err := address.Zero.ToBech32StringWithHRP(hrpOf(d.Sender))
	if err != nil {
		return NormalizedTransaction{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	return NormalizedTransaction{
		Sender:   d.Sender,
		Receiver: receiver,
		Value:    value,
		Data:     DeployData(d.Code, d.CodeMetadata, d.Arguments),
	}, nil
}

// DeployData builds the deployment payload without validation.
func DeployData(code []byte, metadata CodeMetadata, args [][]byte) string {
	m := metadata.Bytes()
	fields := []string{
		hex.EncodeToString(code),
		WasmVMType,
		hex.EncodeToString(m[:]),
	}
	fields = append(fields, encodeArgs(args)...)
	return strings.Join(fields, ArgSeparator)
}

// EncodeArguments hex-encodes each argument and joins them with ArgSeparator.
func EncodeArguments(args [][]byte) string {
	return strings.Join(encodeArgs(args), ArgSeparator)
}

// DecodeArguments is the inverse of EncodeArguments for non-empty argument lists.
// The empty string decodes to a single empty argument.
func DecodeArguments(s string) ([][]byte, error) {
	parts := strings.Split(s, ArgSeparator)
	out := make([][]byte, 0, len(parts))
	for i, p := range parts {
		b, err := hex.DecodeString(p)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d: %v", ErrInvalidData, i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func joinCall(function string, args [][]byte) string {
	if len(args) == 0 {
		return function
	}
	return function + ArgSeparator + EncodeArguments(args)
}

func encodeArgs(args [][]byte) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, hex.EncodeToString(a))
	}
	return out
}

// encodeUint renders a non-negative integer as minimal big-endian hex of even length.
// Zero is "00".
func encodeUint(v *big.Int) string {
	if v.Sign() == 0 {
		return "00"
	}
	return hex.EncodeToString(v.Bytes())
}

func normalizeValue(v math.Int) (math.Int, error) {
	if v.IsNil() {
		return math.ZeroInt(), nil
	}
	if v.IsNegative() {
		return math.Int{}, fmt.Errorf("%w: %s", ErrNegativeValue, v)
	}
	return v, nil
}

func parseBech32(s, field string) (address.Address, error) {
	a, err := address.FromBech32(s)
	if err != nil {
		return address.Address{}, fmt.Errorf("%w: %s: %v", ErrInvalidAddress, field, err)
	}
	return a, nil
}

func hrpOf(bech string) string {
	i := strings.LastIndex(bech, "1")
	if i <= 0 {
		return address.DefaultHRP
	}
	return bech[:i]
}
