package transaction

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/scexec/pkg/address"
)

func filledAddress(b byte) address.Address {
	var a address.Address
	for i := range a {
		a[i] = b
	}
	return a
}

func bech(t *testing.T, a address.Address) string {
	t.Helper()
	s, err := a.ToBech32String()
	require.NoError(t, err)
	return s
}

func TestNormalize_NoTransfers(t *testing.T) {
	sender := bech(t, filledAddress(0xaa))
	receiver := bech(t, filledAddress(0x01))

	tests := []struct {
		name     string
		function string
		args     [][]byte
		want     string
	}{
		{"function only", "claim", nil, "claim"},
		{"one arg", "add", [][]byte{{0x05}}, "add@05"},
		{"empty arg kept", "add", [][]byte{{0x05}, {}}, "add@05@"},
		{"text arg", "setName", [][]byte{[]byte("abc")}, "setName@616263"},
		{"plain transfer", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalization{
				Sender:       sender,
				Receiver:     receiver,
				FunctionName: tt.function,
				Arguments:    tt.args,
				Value:        math.NewInt(10),
			}.Normalize()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.TransactionData())
			assert.Equal(t, sender, got.Sender)
			assert.Equal(t, receiver, got.Receiver)
			assert.Equal(t, "10", got.Value.String())
		})
	}
}

func TestNormalize_MultiTransferEnvelope(t *testing.T) {
	sender := bech(t, filledAddress(0xaa))
	receiver := bech(t, filledAddress(0x01))

	got, err := Normalization{
		Sender:       sender,
		Receiver:     receiver,
		FunctionName: "buy",
		Arguments:    [][]byte{{0x2a}},
		Transfers: []TokenTransfer{
			NewTokenTransfer("TOK-abcdef", math.NewInt(1_000_000_000_000_000_000)),
			{Identifier: "NFT-123456", Nonce: 5, Amount: math.NewInt(1)},
		},
	}.Normalize()
	require.NoError(t, err)

	want := "MultiESDTNFTTransfer" +
		"@" + strings.Repeat("01", 32) +
		"@02" +
		"@544f4b2d616263646566@00@0de0b6b3a7640000" +
		"@4e46542d313233343536@05@01" +
		"@627579" +
		"@2a"
	assert.Equal(t, want, got.TransactionData())

	// the envelope is a self-transfer
	assert.Equal(t, sender, got.Receiver)
	assert.True(t, got.Value.IsZero())
}

func TestNormalize_TransferWithoutFunction(t *testing.T) {
	got, err := Normalization{
		Sender:    bech(t, filledAddress(0xaa)),
		Receiver:  bech(t, filledAddress(0x01)),
		Transfers: []TokenTransfer{NewTokenTransfer("TOK-abcdef", math.NewInt(0))},
	}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "MultiESDTNFTTransfer@"+strings.Repeat("01", 32)+"@01@544f4b2d616263646566@00@00", got.Data)
}

func TestNormalize_Deterministic(t *testing.T) {
	n := Normalization{
		Sender:       bech(t, filledAddress(0xaa)),
		Receiver:     bech(t, filledAddress(0x01)),
		FunctionName: "swap",
		Arguments:    [][]byte{[]byte("x"), {0, 1, 2}},
		Value:        math.NewInt(7),
		Transfers:    []TokenTransfer{{Identifier: "A-000000", Nonce: 3, Amount: math.NewInt(9)}},
	}

	first, err := n.Normalize()
	require.NoError(t, err)
	second, err := n.Normalize()
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, first.Sender, second.Sender)
	assert.Equal(t, first.Receiver, second.Receiver)
	assert.True(t, first.Value.Equal(second.Value))
}

func TestNormalize_Errors(t *testing.T) {
	sender := bech(t, filledAddress(0xaa))
	receiver := bech(t, filledAddress(0x01))

	tests := []struct {
		name    string
		input   Normalization
		wantErr error
	}{
		{
			name:    "malformed sender",
			input:   Normalization{Sender: "erd1bad", Receiver: receiver, FunctionName: "f"},
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "malformed receiver",
			input:   Normalization{Sender: sender, Receiver: "", FunctionName: "f"},
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "negative value",
			input:   Normalization{Sender: sender, Receiver: receiver, FunctionName: "f", Value: math.NewInt(-1)},
			wantErr: ErrNegativeValue,
		},
		{
			name: "empty token identifier",
			input: Normalization{Sender: sender, Receiver: receiver, FunctionName: "f",
				Transfers: []TokenTransfer{{Amount: math.NewInt(1)}}},
			wantErr: ErrInvalidTransfer,
		},
		{
			name: "negative token amount",
			input: Normalization{Sender: sender, Receiver: receiver, FunctionName: "f",
				Transfers: []TokenTransfer{{Identifier: "T-000000", Amount: math.NewInt(-5)}}},
			wantErr: ErrInvalidTransfer,
		},
		{
			name:    "arguments without function",
			input:   Normalization{Sender: sender, Receiver: receiver, Arguments: [][]byte{{1}}},
			wantErr: ErrMissingFunction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.Normalize()
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, ErrNormalization)
		})
	}
}

func TestArguments_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		n := rng.Intn(6) + 1
		args := make([][]byte, n)
		for j := range args {
			args[j] = make([]byte, rng.Intn(40))
			rng.Read(args[j])
		}

		decoded, err := DecodeArguments(EncodeArguments(args))
		require.NoError(t, err)
		require.Len(t, decoded, len(args))
		for j := range args {
			require.True(t, bytes.Equal(args[j], decoded[j]), "iteration %d arg %d", i, j)
		}
	}
}

func TestArguments_EmptyArguments(t *testing.T) {
	tests := [][][]byte{
		{{}},
		{{}, {}},
		{{0x01}, {}},
		{{}, {0x00}},
	}
	for _, args := range tests {
		encoded := EncodeArguments(args)
		decoded, err := DecodeArguments(encoded)
		require.NoError(t, err)
		require.Len(t, decoded, len(args), "encoded %q", encoded)
		for j := range args {
			if len(args[j]) == 0 {
				assert.Empty(t, decoded[j], "encoded %q arg %d", encoded, j)
				continue
			}
			assert.Equal(t, args[j], decoded[j], "encoded %q arg %d", encoded, j)
		}
	}
}

func TestDecodeArguments_InvalidHex(t *testing.T) {
	_, err := DecodeArguments("01@zz")
	require.ErrorIs(t, err, ErrInvalidData)
	require.Contains(t, err.Error(), "field 1")
}

func TestDeployNormalization(t *testing.T) {
	sender := bech(t, filledAddress(0xaa))

	got, err := DeployNormalization{
		Sender:       sender,
		Code:         []byte{0x00, 0x61, 0x73, 0x6d},
		CodeMetadata: CodeMetadata{Upgradeable: true, Readable: true, Payable: true},
		Arguments:    [][]byte{{0x01}},
	}.Normalize()
	require.NoError(t, err)

	assert.Equal(t, "0061736d@0500@0502@01", got.Data)
	assert.Equal(t, bech(t, address.Zero), got.Receiver)
	assert.True(t, got.Value.IsZero())

	_, err = DeployNormalization{Sender: sender}.Normalize()
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestCodeMetadata_Bytes(t *testing.T) {
	assert.Equal(t, [2]byte{0, 0}, CodeMetadata{}.Bytes())
	assert.Equal(t, [2]byte{0x05, 0x06}, CodeMetadata{Upgradeable: true, Readable: true, Payable: true, PayableBySC: true}.Bytes())
}

func TestCallRequest_Normalization(t *testing.T) {
	req := CallRequest{
		To:        filledAddress(0x01),
		Function:  "ping",
		Arguments: [][]byte{{1}},
		GasLimit:  5_000_000,
	}

	n, err := req.Normalization(filledAddress(0xaa), "")
	require.NoError(t, err)
	assert.Equal(t, bech(t, filledAddress(0xaa)), n.Sender)
	assert.Equal(t, bech(t, filledAddress(0x01)), n.Receiver)

	normalized, err := n.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "ping@01", normalized.Data)
}
