package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/altuslabsxyz/scexec/pkg/address"
	"github.com/altuslabsxyz/scexec/pkg/network"
	"github.com/altuslabsxyz/scexec/pkg/network/gateway"
	"github.com/altuslabsxyz/scexec/pkg/transaction"
	"github.com/altuslabsxyz/scexec/pkg/wallet"
)

// NetworkExecutor submits calls and deployments through a gateway. A fresh interactor
// session is opened for every operation, so concurrent calls share no session state.
type NetworkExecutor struct {
	gatewayURL    string
	wallet        wallet.Wallet
	hrp           string
	newInteractor network.InteractorFactory
	logger        *slog.Logger
}

// Option configures a NetworkExecutor.
type Option func(*NetworkExecutor)

// WithInteractorFactory replaces the gateway interactor, e.g. with a mock.
func WithInteractorFactory(f network.InteractorFactory) Option {
	return func(e *NetworkExecutor) {
		e.newInteractor = f
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *NetworkExecutor) {
		e.logger = logger
	}
}

// WithHRP sets the address prefix used for bech32 encoding.
func WithHRP(hrp string) Option {
	return func(e *NetworkExecutor) {
		e.hrp = hrp
	}
}

// NewNetworkExecutor creates an executor signing with w against gatewayURL.
func NewNetworkExecutor(gatewayURL string, w wallet.Wallet, opts ...Option) *NetworkExecutor {
	e := &NetworkExecutor{
		gatewayURL:    gatewayURL,
		wallet:        w,
		hrp:           address.DefaultHRP,
		newInteractor: gateway.Factory(),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetLogger sets the logger.
func (e *NetworkExecutor) SetLogger(logger *slog.Logger) {
	e.logger = logger
}

// GatewayURL returns the gateway the executor submits to.
func (e *NetworkExecutor) GatewayURL() string {
	return e.gatewayURL
}

// Sender returns the address transactions are signed by.
func (e *NetworkExecutor) Sender() address.Address {
	return e.wallet.Address()
}

// ShouldSkipDeserialization is always false: the network returns real VM data.
func (e *NetworkExecutor) ShouldSkipDeserialization() bool {
	return false
}

// ScCall submits req, waits for finality and returns the raw return arguments.
func (e *NetworkExecutor) ScCall(ctx context.Context, req transaction.CallRequest) (*RawCallResult, error) {
	interactor, err := e.newInteractor(ctx, e.gatewayURL, e.wallet)
	if err != nil {
		return nil, newError(ErrInteractorConstruction, e.gatewayURL, err)
	}

	n, err := req.Normalization(e.wallet.Address(), e.hrp)
	if err != nil {
		return nil, newError(ErrNormalization, "", err)
	}
	normalized, err := n.Normalize()
	if err != nil {
		return nil, newError(ErrNormalization, "", err)
	}

	e.logger.Debug("submitting contract call",
		"receiver", normalized.Receiver,
		"function", req.Function,
		"gasLimit", req.GasLimit,
		"transfers", len(req.Transfers))

	tx, err := interactor.ScCall(ctx, normalized.Receiver, normalized.Value, normalized.TransactionData(), req.GasLimit)
	if err != nil {
		e.logger.Warn("contract call submission failed", "function", req.Function, "error", err)
		return nil, newError(ErrSubmission, "", err)
	}

	args, err := DecodeSmartContractResult(tx)
	if err != nil {
		e.logger.Warn("contract call failed",
			"hash", tx.Transaction.Hash,
			"function", req.Function,
			"error", err)
		return nil, err
	}

	e.logger.Info("contract call executed",
		"hash", tx.Transaction.Hash,
		"function", req.Function,
		"returned", len(args))

	return &RawCallResult{Response: tx, Result: &args}, nil
}

// ScDeploy submits the deployment described by step. On success it records the sender,
// the finalized transaction and the init return data on step; on failure step is left
// untouched. The deployed contract address is left to the caller to read from
// step.Response.
func (e *NetworkExecutor) ScDeploy(ctx context.Context, step *ScDeployStep) error {
	if step == nil {
		return newError(ErrNormalization, "nil deploy step", nil)
	}

	interactor, err := e.newInteractor(ctx, e.gatewayURL, e.wallet)
	if err != nil {
		return newError(ErrInteractorConstruction, e.gatewayURL, err)
	}
	deployer, ok := interactor.(network.DeployInteractor)
	if !ok {
		return newError(ErrDeployNotImplemented, fmt.Sprintf("%T cannot submit deployments", interactor), nil)
	}

	sender := e.wallet.Address()
	senderBech32, err := sender.ToBech32StringWithHRP(e.hrp)
	if err != nil {
		return newError(ErrNormalization, "", fmt.Errorf("%w: sender: %v", transaction.ErrInvalidAddress, err))
	}
	normalized, err := transaction.DeployNormalization{
		Sender:       senderBech32,
		Code:         step.Code,
		CodeMetadata: step.CodeMetadata,
		Arguments:    step.Arguments,
		Value:        step.Value,
	}.Normalize()
	if err != nil {
		return newError(ErrNormalization, "", err)
	}
	e.logger.Debug("submitting deployment",
		"codeSize", len(step.Code),
		"gasLimit", step.GasLimit)

	tx, err := deployer.ScDeploy(ctx, normalized.Value, normalized.TransactionData(), step.GasLimit)
	if err != nil {
		e.logger.Warn("deployment submission failed", "error", err)
		return newError(ErrSubmission, "", err)
	}

	args, err := DecodeSmartContractResult(tx)
	if err != nil {
		e.logger.Warn("deployment failed", "hash", tx.Transaction.Hash, "error", err)
		return err
	}

	step.From = &sender
	step.Response = tx
	step.ReturnData = args
	e.logger.Info("deployment executed", "hash", tx.Transaction.Hash)
	return nil
}

var (
	_ TransactionExecutor = (*NetworkExecutor)(nil)
	_ DeployExecutor      = (*NetworkExecutor)(nil)
)
