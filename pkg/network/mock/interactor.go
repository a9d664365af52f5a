// pkg/network/mock/interactor.go
package mock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"cosmossdk.io/math"

	"github.com/altuslabsxyz/scexec/pkg/address"
	"github.com/altuslabsxyz/scexec/pkg/network"
	"github.com/altuslabsxyz/scexec/pkg/wallet"
)

// Submission is one transaction handed to the mock.
type Submission struct {
	GatewayURL string
	Sender     address.Address
	Receiver   string
	Value      math.Int
	Data       string
	GasLimit   uint64
	Deploy     bool
}

// Interactor implements network.DeployInteractor for testing purposes.
// Every submission is recorded; the configured Response (or Err) is returned.
type Interactor struct {
	mu          sync.Mutex
	submissions []Submission
	opened      int

	// Configurable behaviors for testing
	Response   *network.TransactionOnNetwork
	Err        error
	FactoryErr error

	gatewayURL string
	sender     address.Address
}

// NewInteractor creates a mock returning resp for every submission.
func NewInteractor(resp *network.TransactionOnNetwork) *Interactor {
	return &Interactor{Response: resp}
}

// Factory returns an InteractorFactory that hands out this mock.
func (m *Interactor) Factory() network.InteractorFactory {
	return func(ctx context.Context, gatewayURL string, w wallet.Wallet) (network.BlockchainInteractor, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.FactoryErr != nil {
			return nil, m.FactoryErr
		}
		m.opened++
		m.gatewayURL = gatewayURL
		m.sender = w.Address()
		return m, nil
	}
}

// ScCall records the call and returns the configured response.
func (m *Interactor) ScCall(ctx context.Context, receiver string, value math.Int, data string, gasLimit uint64) (*network.TransactionOnNetwork, error) {
	return m.submit(ctx, Submission{Receiver: receiver, Value: value, Data: data, GasLimit: gasLimit})
}

// ScDeploy records the deployment and returns the configured response.
func (m *Interactor) ScDeploy(ctx context.Context, value math.Int, data string, gasLimit uint64) (*network.TransactionOnNetwork, error) {
	receiver, err := address.Zero.ToBech32String()
	if err != nil {
		return nil, err
	}
	return m.submit(ctx, Submission{Receiver: receiver, Value: value, Data: data, GasLimit: gasLimit, Deploy: true})
}

func (m *Interactor) submit(ctx context.Context, s Submission) (*network.TransactionOnNetwork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	s.GatewayURL = m.gatewayURL
	s.Sender = m.sender
	m.submissions = append(m.submissions, s)

	if m.Response == nil {
		return nil, fmt.Errorf("mock interactor has no response configured")
	}

	resp := *m.Response
	if resp.Transaction.Hash == "" {
		hash := sha256.Sum256([]byte(s.Data))
		resp.Transaction.Hash = hex.EncodeToString(hash[:])
	}
	return &resp, nil
}

// Submissions returns all recorded submissions (for test assertions).
func (m *Interactor) Submissions() []Submission {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Submission, len(m.submissions))
	copy(out, m.submissions)
	return out
}

// Opened returns how many sessions the factory handed out.
func (m *Interactor) Opened() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened
}

// CallOnly hides the deploy capability, for exercising interactors that cannot deploy.
type CallOnly struct {
	Inner *Interactor
}

// ScCall delegates to the wrapped mock.
func (c CallOnly) ScCall(ctx context.Context, receiver string, value math.Int, data string, gasLimit uint64) (*network.TransactionOnNetwork, error) {
	return c.Inner.ScCall(ctx, receiver, value, data, gasLimit)
}

// CallOnlyFactory returns a factory whose sessions do not implement network.DeployInteractor.
func (m *Interactor) CallOnlyFactory() network.InteractorFactory {
	inner := m.Factory()
	return func(ctx context.Context, gatewayURL string, w wallet.Wallet) (network.BlockchainInteractor, error) {
		if _, err := inner(ctx, gatewayURL, w); err != nil {
			return nil, err
		}
		return CallOnly{Inner: m}, nil
	}
}

// SuccessResponse builds a finalized transaction whose single smart-contract result
// carries the given return data fields, e.g. SuccessResponse("2a") yields "@6f6b@2a".
func SuccessResponse(returnFields ...string) *network.TransactionOnNetwork {
	data := "@6f6b"
	for _, f := range returnFields {
		data += "@" + f
	}
	return &network.TransactionOnNetwork{
		Transaction: network.TransactionOnNetworkTransaction{
			Status: network.TxStatusSuccess,
			SmartContractResults: []network.SmartContractResult{
				{Nonce: 1, Data: data},
			},
		},
	}
}

// Ensure Interactor implements network.DeployInteractor.
var _ network.DeployInteractor = (*Interactor)(nil)
