// cmd/scexec/exec.go
package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cosmossdk.io/math"

	"github.com/altuslabsxyz/scexec/internal/history"
	"github.com/altuslabsxyz/scexec/internal/output"
	"github.com/altuslabsxyz/scexec/pkg/codec"
	"github.com/altuslabsxyz/scexec/pkg/executor"
	"github.com/altuslabsxyz/scexec/pkg/network/gateway"
	"github.com/altuslabsxyz/scexec/pkg/transaction"
	"github.com/altuslabsxyz/scexec/pkg/wallet"
)

func loadWallet() (wallet.Wallet, error) {
	if cfg.PEM.Value == "" {
		return wallet.Wallet{}, errNoWallet
	}
	w, err := wallet.FromPemFile(cfg.PEM.Value)
	if err != nil {
		return wallet.Wallet{}, fmt.Errorf("failed to load wallet: %w", err)
	}
	return w, nil
}

func newNetworkExecutor(w wallet.Wallet) *executor.NetworkExecutor {
	factory := interactorFactory
	if factory == nil {
		factory = gateway.Factory(
			gateway.WithPollInterval(cfg.PollInterval.Value),
			gateway.WithMaxWait(cfg.MaxWait.Value),
			gateway.WithHRP(cfg.HRP.Value),
			gateway.WithLogger(logger),
		)
	}
	return executor.NewNetworkExecutor(cfg.GatewayURL.Value, w,
		executor.WithInteractorFactory(factory),
		executor.WithHRP(cfg.HRP.Value),
		executor.WithLogger(logger),
	)
}

func openHistory() (*history.BoltStore, error) {
	store, err := history.NewBoltStore(cfg.HistoryPath.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

// confirmSend shows the transaction and asks before anything is signed.
func confirmSend(tx transaction.SendableTransaction, yes bool) error {
	if yes {
		return nil
	}
	if err := out.PrintSendable("About to send", tx); err != nil {
		return err
	}
	ok, err := output.Confirm("Sign and send this transaction")
	if err != nil {
		return err
	}
	if !ok {
		return errAborted
	}
	return nil
}

// parseValue parses a non-negative integer amount in the smallest denomination.
func parseValue(s string) (math.Int, error) {
	if s == "" {
		return math.ZeroInt(), nil
	}
	v, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid value %q", s)
	}
	if v.IsNegative() {
		return math.Int{}, fmt.Errorf("value must not be negative: %s", s)
	}
	return v, nil
}

// parseTransfer parses "TOKEN-id:amount" or "TOKEN-id:nonce:amount".
func parseTransfer(s string) (transaction.TokenTransfer, error) {
	parts := strings.Split(s, ":")
	var t transaction.TokenTransfer
	var amount string
	switch len(parts) {
	case 2:
		t.Identifier, amount = parts[0], parts[1]
	case 3:
		nonce, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return t, fmt.Errorf("invalid transfer nonce in %q: %w", s, err)
		}
		t.Identifier, t.Nonce, amount = parts[0], nonce, parts[2]
	default:
		return t, fmt.Errorf("invalid transfer %q: expected TOKEN:amount or TOKEN:nonce:amount", s)
	}

	v, ok := math.NewIntFromString(amount)
	if !ok {
		return t, fmt.Errorf("invalid transfer amount in %q", s)
	}
	t.Amount = v
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

func parseTransfers(specs []string) ([]transaction.TokenTransfer, error) {
	var out []transaction.TokenTransfer
	for _, s := range specs {
		t, err := parseTransfer(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// callOutcome is a finished call with both the raw buffers and their decoded form.
type callOutcome struct {
	hash    string
	status  string
	raw     [][]byte
	decoded any
}

// outputKinds lists the accepted --output values.
var outputKinds = []string{"raw", "u64", "biguint", "str", "bool", "addr", "unit"}

func callAs(ctx context.Context, exec executor.TransactionExecutor, req transaction.CallRequest, kind string) (*callOutcome, error) {
	switch kind {
	case "", "raw":
		return typedCall(ctx, exec, req, codec.Raw, false)
	case "u64":
		return typedCall(ctx, exec, req, codec.Variadic(codec.U64), true)
	case "biguint":
		return typedCall(ctx, exec, req, codec.Variadic(codec.BigUint), true)
	case "str":
		return typedCall(ctx, exec, req, codec.Variadic(codec.String), true)
	case "bool":
		return typedCall(ctx, exec, req, codec.Variadic(codec.Bool), true)
	case "addr":
		return typedCall(ctx, exec, req, codec.Variadic(codec.AddressDecoder), true)
	case "unit":
		return typedCall(ctx, exec, req, codec.Unit, false)
	default:
		return nil, fmt.Errorf("unknown output type %q (want one of %s)", kind, strings.Join(outputKinds, ", "))
	}
}

func typedCall[T any](ctx context.Context, exec executor.TransactionExecutor, req transaction.CallRequest, dec codec.MultiDecoder[T], show bool) (*callOutcome, error) {
	var raw [][]byte
	capture := codec.MultiDecoderFunc[T](func(args [][]byte) (T, error) {
		raw = args
		return dec.MultiDecode(args)
	})

	res, err := executor.Call(ctx, exec, req, capture)
	if err != nil {
		return nil, err
	}

	o := &callOutcome{raw: raw}
	if res.Response != nil {
		o.hash = res.Response.Transaction.Hash
		o.status = res.Response.Transaction.Status
	}
	if show && res.Result != nil {
		o.decoded = *res.Result
	}
	return o, nil
}
