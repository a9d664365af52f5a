package executor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/scexec/pkg/address"
	"github.com/altuslabsxyz/scexec/pkg/codec"
	"github.com/altuslabsxyz/scexec/pkg/network"
	"github.com/altuslabsxyz/scexec/pkg/network/mock"
	"github.com/altuslabsxyz/scexec/pkg/transaction"
	"github.com/altuslabsxyz/scexec/pkg/wallet"
)

const testGateway = "http://gateway.test"

func testWallet(t *testing.T) wallet.Wallet {
	t.Helper()
	w, err := wallet.FromPrivateKey(bytes.Repeat([]byte{0x01}, 32))
	require.NoError(t, err)
	return w
}

func contractAddress(b byte) address.Address {
	var a address.Address
	for i := range a {
		a[i] = b
	}
	return a
}

func newTestExecutor(t *testing.T, m *mock.Interactor) *NetworkExecutor {
	t.Helper()
	return NewNetworkExecutor(testGateway, testWallet(t), WithInteractorFactory(m.Factory()))
}

func TestNetworkExecutor_Call(t *testing.T) {
	m := mock.NewInteractor(mock.SuccessResponse("2a"))
	exec := newTestExecutor(t, m)

	res, err := Call(context.Background(), exec, transaction.CallRequest{
		To:        contractAddress(0x05),
		Function:  "getValue",
		Arguments: [][]byte{{0x01}},
		GasLimit:  10_000_000,
	}, codec.Single(codec.U64))
	require.NoError(t, err)
	require.NotNil(t, res.Response)
	require.NotNil(t, res.Result)
	assert.Equal(t, uint64(42), *res.Result)

	subs := m.Submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, testGateway, subs[0].GatewayURL)
	assert.Equal(t, testWallet(t).Address(), subs[0].Sender)
	assert.Equal(t, contractAddress(0x05).String(), subs[0].Receiver)
	assert.Equal(t, "getValue@01", subs[0].Data)
	assert.Equal(t, uint64(10_000_000), subs[0].GasLimit)
	assert.True(t, subs[0].Value.IsZero())
}

func TestNetworkExecutor_SelectsReturnDataResult(t *testing.T) {
	m := mock.NewInteractor(&network.TransactionOnNetwork{
		Transaction: network.TransactionOnNetworkTransaction{
			Status: network.TxStatusSuccess,
			SmartContractResults: []network.SmartContractResult{
				{Nonce: 0, Data: "@6f6b"},
				{Nonce: 7, Data: "@6f6b@2a"},
			},
		},
	})
	exec := newTestExecutor(t, m)

	res, err := exec.ScCall(context.Background(), transaction.CallRequest{To: contractAddress(0x05), Function: "f"})
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0x2a}}, *res.Result)
}

func TestNetworkExecutor_NonSuccessStatusSkipsDecode(t *testing.T) {
	m := mock.NewInteractor(&network.TransactionOnNetwork{
		Transaction: network.TransactionOnNetworkTransaction{
			Status: network.TxStatusSuccess,
			SmartContractResults: []network.SmartContractResult{
				{Nonce: 0, Data: "@6f6b"},
				{Nonce: 3, Data: "@756e6b6e6f776e"},
			},
		},
	})
	exec := newTestExecutor(t, m)

	decoded := false
	dec := codec.MultiDecoderFunc[int](func(args [][]byte) (int, error) {
		decoded = true
		return 0, nil
	})

	_, err := Call(context.Background(), exec, transaction.CallRequest{To: contractAddress(0x05), Function: "f"}, dec)
	require.ErrorIs(t, err, ErrNonSuccessStatus)
	assert.False(t, errors.Is(err, ErrCannotDecodeSmartContractResult))
	assert.False(t, decoded)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "unknown", se.Message)
}

func TestNetworkExecutor_NoSmartContractResult(t *testing.T) {
	m := mock.NewInteractor(&network.TransactionOnNetwork{
		Transaction: network.TransactionOnNetworkTransaction{Status: network.TxStatusSuccess},
	})
	exec := newTestExecutor(t, m)

	_, err := exec.ScCall(context.Background(), transaction.CallRequest{To: contractAddress(0x05), Function: "f"})
	require.ErrorIs(t, err, ErrNoSmartContractResult)
	assert.False(t, errors.Is(err, ErrNonSuccessStatus))
}

func TestNetworkExecutor_OversizedBigUint(t *testing.T) {
	wide := "01" + strings.Repeat("00", 32)
	m := mock.NewInteractor(mock.SuccessResponse(wide))
	exec := newTestExecutor(t, m)

	_, err := Call(context.Background(), exec, transaction.CallRequest{To: contractAddress(0x05), Function: "f"}, codec.Single(codec.BigUint))
	require.ErrorIs(t, err, ErrCannotDecodeSmartContractResult)
	require.ErrorIs(t, err, codec.ErrDecode)
	assert.True(t, IsDecodeError(err))
}

func TestNetworkExecutor_TypedDecodeFailure(t *testing.T) {
	m := mock.NewInteractor(mock.SuccessResponse("01", "02"))
	exec := newTestExecutor(t, m)

	_, err := Call(context.Background(), exec, transaction.CallRequest{To: contractAddress(0x05), Function: "f"}, codec.Single(codec.U64))
	require.ErrorIs(t, err, ErrCannotDecodeSmartContractResult)
	require.ErrorIs(t, err, codec.ErrDecode)
	assert.False(t, IsProtocolError(err))
}

func TestNetworkExecutor_InteractorConstructionFailure(t *testing.T) {
	m := mock.NewInteractor(mock.SuccessResponse())
	m.FactoryErr = errors.New("connection refused")
	exec := newTestExecutor(t, m)

	_, err := exec.ScCall(context.Background(), transaction.CallRequest{To: contractAddress(0x05), Function: "f"})
	require.ErrorIs(t, err, ErrInteractorConstruction)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, m.Submissions())
}

func TestNetworkExecutor_NormalizationFailureSubmitsNothing(t *testing.T) {
	m := mock.NewInteractor(mock.SuccessResponse())
	exec := newTestExecutor(t, m)

	_, err := exec.ScCall(context.Background(), transaction.CallRequest{
		To:       contractAddress(0x05),
		Function: "f",
		Value:    math.NewInt(-1),
	})
	require.ErrorIs(t, err, ErrNormalization)
	require.ErrorIs(t, err, transaction.ErrNegativeValue)
	assert.Empty(t, m.Submissions())
}

func TestNetworkExecutor_SubmissionFailure(t *testing.T) {
	m := mock.NewInteractor(mock.SuccessResponse())
	m.Err = errors.New("gateway unavailable")
	exec := newTestExecutor(t, m)

	_, err := exec.ScCall(context.Background(), transaction.CallRequest{To: contractAddress(0x05), Function: "f"})
	require.ErrorIs(t, err, ErrSubmission)
	assert.False(t, IsProtocolError(err))
}

func TestNetworkExecutor_Cancelled(t *testing.T) {
	m := mock.NewInteractor(mock.SuccessResponse())
	exec := newTestExecutor(t, m)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := exec.ScCall(ctx, transaction.CallRequest{To: contractAddress(0x05), Function: "f"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
	assert.Empty(t, m.Submissions())
}

func TestNetworkExecutor_TransfersAreSentToSelf(t *testing.T) {
	m := mock.NewInteractor(mock.SuccessResponse())
	exec := newTestExecutor(t, m)

	_, err := Call(context.Background(), exec, transaction.CallRequest{
		To:        contractAddress(0x05),
		Function:  "deposit",
		GasLimit:  5_000_000,
		Transfers: []transaction.TokenTransfer{transaction.NewTokenTransfer("USDC-c76f1f", math.NewInt(1000))},
	}, codec.Unit)
	require.NoError(t, err)

	subs := m.Submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, testWallet(t).Address().String(), subs[0].Receiver)
	assert.True(t, strings.HasPrefix(subs[0].Data, transaction.MultiTransferFunction+"@"+strings.Repeat("05", 32)+"@01@"))
	assert.True(t, strings.HasSuffix(subs[0].Data, "@03e8@6465706f736974"))
}

func TestNetworkExecutor_OpensSessionPerCall(t *testing.T) {
	m := mock.NewInteractor(mock.SuccessResponse())
	exec := newTestExecutor(t, m)

	for i := 0; i < 3; i++ {
		_, err := exec.ScCall(context.Background(), transaction.CallRequest{To: contractAddress(0x05), Function: "f"})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, m.Opened())
}

func TestNetworkExecutor_Deploy(t *testing.T) {
	m := mock.NewInteractor(mock.SuccessResponse("01"))
	exec := newTestExecutor(t, m)

	step := &ScDeployStep{
		Code:         []byte{0x00, 0x61, 0x73, 0x6d},
		CodeMetadata: transaction.CodeMetadata{Upgradeable: true, Readable: true},
		Arguments:    [][]byte{{0x0a}},
		GasLimit:     60_000_000,
	}
	require.NoError(t, exec.ScDeploy(context.Background(), step))

	require.NotNil(t, step.From)
	assert.Equal(t, testWallet(t).Address(), *step.From)
	require.NotNil(t, step.Response)
	assert.Equal(t, [][]byte{{0x01}}, step.ReturnData)

	subs := m.Submissions()
	require.Len(t, subs, 1)
	assert.True(t, subs[0].Deploy)
	assert.Equal(t, "0061736d@0500@0500@0a", subs[0].Data)
}

func TestNetworkExecutor_DeployFailureStatus(t *testing.T) {
	m := mock.NewInteractor(&network.TransactionOnNetwork{
		Transaction: network.TransactionOnNetworkTransaction{
			SmartContractResults: []network.SmartContractResult{{Nonce: 1, Data: "@6f7574206f6620676173"}},
		},
	})
	exec := newTestExecutor(t, m)

	step := &ScDeployStep{Code: []byte{0x01}}
	err := exec.ScDeploy(context.Background(), step)
	require.ErrorIs(t, err, ErrNonSuccessStatus)
	assert.Nil(t, step.Response)
	assert.Nil(t, step.From)
	assert.Nil(t, step.ReturnData)
}

func TestNetworkExecutor_DeploySubmissionFailureLeavesStep(t *testing.T) {
	m := mock.NewInteractor(mock.SuccessResponse())
	m.Err = errors.New("connection reset")
	exec := newTestExecutor(t, m)

	step := &ScDeployStep{Code: []byte{0x01}}
	err := exec.ScDeploy(context.Background(), step)
	require.ErrorIs(t, err, ErrSubmission)
	assert.Nil(t, step.From)
	assert.Nil(t, step.Response)
}

func TestNetworkExecutor_DeployNotImplemented(t *testing.T) {
	m := mock.NewInteractor(mock.SuccessResponse())
	exec := NewNetworkExecutor(testGateway, testWallet(t), WithInteractorFactory(m.CallOnlyFactory()))

	err := exec.ScDeploy(context.Background(), &ScDeployStep{Code: []byte{0x01}})
	require.ErrorIs(t, err, ErrDeployNotImplemented)
	assert.Empty(t, m.Submissions())
}

func TestNetworkExecutor_NeverSkipsDeserialization(t *testing.T) {
	exec := NewNetworkExecutor(testGateway, testWallet(t))
	assert.False(t, exec.ShouldSkipDeserialization())
	assert.Equal(t, testGateway, exec.GatewayURL())
}
