// pkg/network/interactor.go
package network

import (
	"context"

	"cosmossdk.io/math"

	"github.com/altuslabsxyz/scexec/pkg/wallet"
)

// BlockchainInteractor is the gateway session used by network executors.
// A session is opened per call; implementations own submission, signing,
// retry and inclusion polling, and return only once the transaction is final.
type BlockchainInteractor interface {
	// ScCall signs and submits a call with the given payload and blocks until the
	// transaction reaches finality or ctx is cancelled.
	ScCall(ctx context.Context, receiver string, value math.Int, data string, gasLimit uint64) (*TransactionOnNetwork, error)
}

// DeployInteractor is implemented by interactors that can submit deployments.
type DeployInteractor interface {
	BlockchainInteractor

	// ScDeploy submits a deployment payload to the zero address and blocks until final.
	ScDeploy(ctx context.Context, value math.Int, data string, gasLimit uint64) (*TransactionOnNetwork, error)
}

// InteractorFactory opens a session against gatewayURL that signs with w.
type InteractorFactory func(ctx context.Context, gatewayURL string, w wallet.Wallet) (BlockchainInteractor, error)
