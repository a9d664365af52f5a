package executor

import (
	"context"
	"sync"

	"github.com/altuslabsxyz/scexec/pkg/address"
	"github.com/altuslabsxyz/scexec/pkg/transaction"
)

// DummyExecutor captures the last transaction it was asked to run instead of submitting
// it. Each invocation replaces the captured step.
type DummyExecutor[S transaction.SendableTransactionConvertible] struct {
	// Caller is stamped as the sender of captured steps. Nil leaves the sender unset.
	Caller *address.Address

	mu   sync.Mutex
	step S
}

// TransactionDetails returns the captured step as a sendable transaction.
func (d *DummyExecutor[S]) TransactionDetails() transaction.SendableTransaction {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.step.ToSendableTransaction()
}

// Step returns the captured step.
func (d *DummyExecutor[S]) Step() S {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.step
}

// ShouldSkipDeserialization is always true: nothing was executed.
func (d *DummyExecutor[S]) ShouldSkipDeserialization() bool {
	return true
}

func (d *DummyExecutor[S]) capture(step S) {
	d.mu.Lock()
	d.step = step
	d.mu.Unlock()
}

// DummyTransactionExecutor captures contract calls.
type DummyTransactionExecutor struct {
	DummyExecutor[ScCallStep]
}

// NewDummyTransactionExecutor creates a capture executor. caller may be nil.
func NewDummyTransactionExecutor(caller *address.Address) *DummyTransactionExecutor {
	d := &DummyTransactionExecutor{}
	d.Caller = cloneAddress(caller)
	return d
}

// ScCall captures req and returns an empty result.
func (d *DummyTransactionExecutor) ScCall(_ context.Context, req transaction.CallRequest) (*RawCallResult, error) {
	step := newScCallStep(req)
	step.From = cloneAddress(d.Caller)
	d.capture(step)
	return &RawCallResult{}, nil
}

// DummyDeployExecutor captures deployments.
type DummyDeployExecutor struct {
	DummyExecutor[ScDeployStep]
}

// NewDummyDeployExecutor creates a capture executor. caller may be nil.
func NewDummyDeployExecutor(caller *address.Address) *DummyDeployExecutor {
	d := &DummyDeployExecutor{}
	d.Caller = cloneAddress(caller)
	return d
}

// ScDeploy stamps the caller on step, when configured, and captures a copy of it.
func (d *DummyDeployExecutor) ScDeploy(_ context.Context, step *ScDeployStep) error {
	if step == nil {
		return newError(ErrNormalization, "nil deploy step", nil)
	}
	if d.Caller != nil {
		step.From = cloneAddress(d.Caller)
	}
	captured := *step
	captured.Code = append([]byte(nil), step.Code...)
	captured.Arguments = cloneArgs(step.Arguments)
	d.capture(captured)
	return nil
}

var (
	_ TransactionExecutor = (*DummyTransactionExecutor)(nil)
	_ DeployExecutor      = (*DummyDeployExecutor)(nil)
)
