// internal/history/recorder.go
package history

import (
	"context"
	"encoding/hex"
	"log/slog"
	"time"

	"cosmossdk.io/math"

	"github.com/altuslabsxyz/scexec/pkg/address"
	"github.com/altuslabsxyz/scexec/pkg/executor"
	"github.com/altuslabsxyz/scexec/pkg/transaction"
)

// senderer is implemented by executors that sign with a known address.
type senderer interface {
	Sender() address.Address
}

type gatewayer interface {
	GatewayURL() string
}

type recorder struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// save persists r. Failures are logged and never change the operation outcome.
func (rc *recorder) save(ctx context.Context, r *Record) {
	r.CreatedAt = rc.now().UTC()
	if err := rc.store.Create(ctx, r); err != nil {
		rc.logger.Warn("failed to record history", "kind", r.Kind, "error", err)
		return
	}
	rc.logger.Debug("recorded history", "id", r.ID, "kind", r.Kind, "status", r.Status)
}

func describe(inner any, r *Record) {
	if s, ok := inner.(senderer); ok {
		r.Sender = s.Sender().String()
	}
	if g, ok := inner.(gatewayer); ok {
		r.GatewayURL = g.GatewayURL()
	}
}

// RecordingExecutor journals every call made through the wrapped executor.
type RecordingExecutor struct {
	recorder
	inner executor.TransactionExecutor
}

// NewRecordingExecutor wraps inner so each ScCall is stored in s.
func NewRecordingExecutor(inner executor.TransactionExecutor, s Store) *RecordingExecutor {
	return &RecordingExecutor{
		recorder: recorder{store: s, logger: slog.Default(), now: time.Now},
		inner:    inner,
	}
}

// SetLogger sets the logger.
func (e *RecordingExecutor) SetLogger(logger *slog.Logger) {
	e.logger = logger
}

// ShouldSkipDeserialization delegates to the wrapped executor.
func (e *RecordingExecutor) ShouldSkipDeserialization() bool {
	return e.inner.ShouldSkipDeserialization()
}

// ScCall runs req on the wrapped executor and records the outcome.
func (e *RecordingExecutor) ScCall(ctx context.Context, req transaction.CallRequest) (*executor.RawCallResult, error) {
	res, err := e.inner.ScCall(ctx, req)

	r := &Record{
		Kind:     KindCall,
		Receiver: req.To.String(),
		Function: req.Function,
		Data:     transaction.CallData(req.To, req.Function, req.Arguments, req.Transfers),
		GasLimit: req.GasLimit,
		Value:    valueString(req.Value),
	}
	describe(e.inner, r)

	switch {
	case err != nil:
		r.Status = StatusFailed
		r.Error = err.Error()
	case res.Response == nil:
		r.Status = StatusCaptured
	default:
		r.Status = StatusSuccess
		r.TxHash = res.Response.Transaction.Hash
		if res.Result != nil {
			r.ReturnData = hexArgs(*res.Result)
		}
	}

	// A cancelled call context must not prevent journaling the failure.
	e.save(context.WithoutCancel(ctx), r)
	return res, err
}

// RecordingDeployExecutor journals every deployment made through the wrapped executor.
type RecordingDeployExecutor struct {
	recorder
	inner executor.DeployExecutor
}

// NewRecordingDeployExecutor wraps inner so each ScDeploy is stored in s.
func NewRecordingDeployExecutor(inner executor.DeployExecutor, s Store) *RecordingDeployExecutor {
	return &RecordingDeployExecutor{
		recorder: recorder{store: s, logger: slog.Default(), now: time.Now},
		inner:    inner,
	}
}

// SetLogger sets the logger.
func (e *RecordingDeployExecutor) SetLogger(logger *slog.Logger) {
	e.logger = logger
}

// ShouldSkipDeserialization delegates to the wrapped executor.
func (e *RecordingDeployExecutor) ShouldSkipDeserialization() bool {
	return e.inner.ShouldSkipDeserialization()
}

// ScDeploy runs step on the wrapped executor and records the outcome.
func (e *RecordingDeployExecutor) ScDeploy(ctx context.Context, step *executor.ScDeployStep) error {
	err := e.inner.ScDeploy(ctx, step)
	if step == nil {
		return err
	}

	r := &Record{
		Kind:     KindDeploy,
		Receiver: address.Zero.String(),
		Data:     transaction.DeployData(step.Code, step.CodeMetadata, step.Arguments),
		GasLimit: step.GasLimit,
		Value:    valueString(step.Value),
	}
	describe(e.inner, r)
	if step.From != nil {
		r.Sender = step.From.String()
	}

	switch {
	case err != nil:
		r.Status = StatusFailed
		r.Error = err.Error()
	case step.Response == nil:
		r.Status = StatusCaptured
	default:
		r.Status = StatusSuccess
		r.TxHash = step.Response.Transaction.Hash
		r.ReturnData = hexArgs(step.ReturnData)
	}

	e.save(context.WithoutCancel(ctx), r)
	return err
}

func hexArgs(args [][]byte) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = hex.EncodeToString(a)
	}
	return out
}

func valueString(v math.Int) string {
	if v.IsNil() {
		return "0"
	}
	return v.String()
}

var (
	_ executor.TransactionExecutor = (*RecordingExecutor)(nil)
	_ executor.DeployExecutor      = (*RecordingDeployExecutor)(nil)
)
