// Package executor runs contract calls and deployments against a backend. The network
// backend submits through a gateway interactor and decodes the VM return data; the
// dummy backend only captures the would-be transaction for assertions.
package executor

import (
	"context"

	"github.com/altuslabsxyz/scexec/pkg/codec"
	"github.com/altuslabsxyz/scexec/pkg/network"
	"github.com/altuslabsxyz/scexec/pkg/transaction"
)

// CallResult is the outcome of a call. Response is nil for backends that do not submit
// and Result is nil when deserialization was skipped.
type CallResult[T any] struct {
	Response *network.TransactionOnNetwork
	Result   *T
}

// RawCallResult holds the undecoded return buffers of a call.
type RawCallResult = CallResult[[][]byte]

// TransactionExecutor executes contract calls.
type TransactionExecutor interface {
	// ScCall executes req. The returned buffers are the VM return arguments, or nil
	// when ShouldSkipDeserialization is true.
	ScCall(ctx context.Context, req transaction.CallRequest) (*RawCallResult, error)

	// ShouldSkipDeserialization reports whether results must not be decoded.
	ShouldSkipDeserialization() bool
}

// DeployExecutor executes contract deployments. ScDeploy updates step in place.
type DeployExecutor interface {
	ScDeploy(ctx context.Context, step *ScDeployStep) error
	ShouldSkipDeserialization() bool
}

// Call executes req on exec and decodes the return buffers with dec.
func Call[T any](ctx context.Context, exec TransactionExecutor, req transaction.CallRequest, dec codec.MultiDecoder[T]) (*CallResult[T], error) {
	raw, err := exec.ScCall(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &CallResult[T]{Response: raw.Response}
	if exec.ShouldSkipDeserialization() {
		return out, nil
	}

	var args [][]byte
	if raw.Result != nil {
		args = *raw.Result
	}
	v, err := dec.MultiDecode(args)
	if err != nil {
		return nil, newError(ErrCannotDecodeSmartContractResult, "", err)
	}
	out.Result = &v
	return out, nil
}
