// Package gateway implements network.BlockchainInteractor against the chain's proxy
// REST API.
package gateway

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"cosmossdk.io/math"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	"github.com/altuslabsxyz/scexec/pkg/address"
	"github.com/altuslabsxyz/scexec/pkg/network"
	"github.com/altuslabsxyz/scexec/pkg/wallet"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultMaxWait      = 2 * time.Minute
	DefaultTimeout      = 30 * time.Second
	DefaultRetryCount   = 2
)

var errPending = errors.New("transaction pending")

// Interactor is a gateway session signing with a single wallet.
type Interactor struct {
	client       *resty.Client
	wallet       wallet.Wallet
	hrp          string
	pollInterval time.Duration
	maxWait      time.Duration
	timeout      time.Duration
	retryCount   int
	logger       *slog.Logger

	mu        sync.Mutex
	netConfig *NetworkConfig
}

// Option configures an Interactor.
type Option func(*Interactor)

// WithPollInterval sets the initial delay between finality checks.
func WithPollInterval(d time.Duration) Option {
	return func(i *Interactor) { i.pollInterval = d }
}

// WithMaxWait bounds the time spent waiting for finality.
func WithMaxWait(d time.Duration) Option {
	return func(i *Interactor) { i.maxWait = d }
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(i *Interactor) { i.timeout = d }
}

// WithRetryCount sets how often a request failing at the transport level is retried.
func WithRetryCount(n int) Option {
	return func(i *Interactor) { i.retryCount = n }
}

// WithHRP sets the bech32 prefix of the chain.
func WithHRP(hrp string) Option {
	return func(i *Interactor) { i.hrp = hrp }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interactor) { i.logger = logger }
}

// NewInteractor opens a session against gatewayURL. No request is made until the first
// submission.
func NewInteractor(_ context.Context, gatewayURL string, w wallet.Wallet, opts ...Option) (*Interactor, error) {
	u, err := url.Parse(gatewayURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway url %q: %w", gatewayURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid gateway url %q: scheme must be http or https", gatewayURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid gateway url %q: missing host", gatewayURL)
	}
	if w.IsZero() {
		return nil, errors.New("wallet has no signing key")
	}

	i := &Interactor{
		wallet:       w,
		hrp:          address.DefaultHRP,
		pollInterval: DefaultPollInterval,
		maxWait:      DefaultMaxWait,
		timeout:      DefaultTimeout,
		retryCount:   DefaultRetryCount,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}

	i.client = resty.New().
		SetBaseURL(strings.TrimRight(gatewayURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(i.timeout).
		SetRetryCount(i.retryCount)

	return i, nil
}

// Factory adapts NewInteractor to network.InteractorFactory.
func Factory(opts ...Option) network.InteractorFactory {
	return func(ctx context.Context, gatewayURL string, w wallet.Wallet) (network.BlockchainInteractor, error) {
		return NewInteractor(ctx, gatewayURL, w, opts...)
	}
}

// ScCall signs and sends a call, then waits until it is final.
func (i *Interactor) ScCall(ctx context.Context, receiver string, value math.Int, data string, gasLimit uint64) (*network.TransactionOnNetwork, error) {
	return i.send(ctx, receiver, value, data, gasLimit)
}

// ScDeploy sends a deployment to the zero address and waits until it is final.
func (i *Interactor) ScDeploy(ctx context.Context, value math.Int, data string, gasLimit uint64) (*network.TransactionOnNetwork, error) {
	receiver, err := address.Zero.ToBech32StringWithHRP(i.hrp)
	if err != nil {
		return nil, err
	}
	return i.send(ctx, receiver, value, data, gasLimit)
}

// NetworkConfig returns the chain parameters, fetching them once per session.
func (i *Interactor) NetworkConfig(ctx context.Context) (*NetworkConfig, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.netConfig != nil {
		return i.netConfig, nil
	}
	out, err := get[networkConfigData](ctx, i.client, "/network/config")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch network config: %w", err)
	}
	cfg := out.Config
	if cfg.MinTransactionVersion == 0 {
		cfg.MinTransactionVersion = 1
	}
	i.netConfig = &cfg
	return i.netConfig, nil
}

// Nonce returns the next nonce of addr.
func (i *Interactor) Nonce(ctx context.Context, addr string) (uint64, error) {
	out, err := get[nonceData](ctx, i.client, "/address/"+url.PathEscape(addr)+"/nonce")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch nonce of %s: %w", addr, err)
	}
	return out.Nonce, nil
}

// Transaction fetches a transaction with its smart contract results.
func (i *Interactor) Transaction(ctx context.Context, hash string) (*network.TransactionOnNetwork, error) {
	var out response[network.TransactionOnNetwork]
	resp, err := i.client.R().
		SetContext(ctx).
		SetQueryParam("withResults", "true").
		SetResult(&out).
		SetError(&out).
		Get("/transaction/" + url.PathEscape(hash))
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp, out.Code, out.Error); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (i *Interactor) send(ctx context.Context, receiver string, value math.Int, data string, gasLimit uint64) (*network.TransactionOnNetwork, error) {
	cfg, err := i.NetworkConfig(ctx)
	if err != nil {
		return nil, err
	}

	sender, err := i.wallet.Address().ToBech32StringWithHRP(i.hrp)
	if err != nil {
		return nil, err
	}
	nonce, err := i.Nonce(ctx, sender)
	if err != nil {
		return nil, err
	}

	if value.IsNil() {
		value = math.ZeroInt()
	}
	tx := &Transaction{
		Nonce:    nonce,
		Value:    value.String(),
		Receiver: receiver,
		Sender:   sender,
		GasPrice: cfg.MinGasPrice,
		GasLimit: gasLimit,
		ChainID:  cfg.ChainID,
		Version:  cfg.MinTransactionVersion,
	}
	if data != "" {
		tx.Data = []byte(data)
	}
	if err := i.sign(tx); err != nil {
		return nil, err
	}

	hash, err := i.post(ctx, tx)
	if err != nil {
		return nil, err
	}
	i.logger.Debug("transaction sent", "hash", hash, "nonce", nonce, "receiver", receiver)

	return i.waitFinal(ctx, hash)
}

// sign fills tx.Signature with the signature of its canonical serialization.
func (i *Interactor) sign(tx *Transaction) error {
	tx.Signature = ""
	msg, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to serialize transaction: %w", err)
	}
	sig, err := i.wallet.Sign(msg)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}
	tx.Signature = hex.EncodeToString(sig)
	return nil
}

func (i *Interactor) post(ctx context.Context, tx *Transaction) (string, error) {
	var out response[sendData]
	resp, err := i.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(tx).
		SetResult(&out).
		SetError(&out).
		Post("/transaction/send")
	if err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}
	if err := checkResponse(resp, out.Code, out.Error); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}
	if out.Data.TxHash == "" {
		return "", errors.New("gateway accepted the transaction without returning a hash")
	}
	return out.Data.TxHash, nil
}

// waitFinal polls the transaction with exponential backoff until its status is final,
// the maximum wait elapses or ctx is done.
func (i *Interactor) waitFinal(ctx context.Context, hash string) (*network.TransactionOnNetwork, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = i.pollInterval
	b.MaxInterval = 4 * i.pollInterval
	b.MaxElapsedTime = i.maxWait

	poll := func() (*network.TransactionOnNetwork, error) {
		tx, err := i.Transaction(ctx, hash)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && !apiErr.retryable() {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		if !tx.Transaction.IsFinal() {
			return nil, errPending
		}
		return tx, nil
	}

	tx, err := backoff.RetryWithData(poll, backoff.WithContext(b, ctx))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, errPending) {
			return nil, fmt.Errorf("%w: %s after %s", ErrNotFinal, hash, i.maxWait)
		}
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", hash, err)
	}

	if tx.Transaction.Hash == "" {
		tx.Transaction.Hash = hash
	}
	i.logger.Debug("transaction final", "hash", hash, "status", tx.Transaction.Status)
	return tx, nil
}

func get[T any](ctx context.Context, client *resty.Client, path string) (T, error) {
	var out response[T]
	resp, err := client.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&out).
		Get(path)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := checkResponse(resp, out.Code, out.Error); err != nil {
		var zero T
		return zero, err
	}
	return out.Data, nil
}

func checkResponse(resp *resty.Response, code, msg string) error {
	if resp.IsError() || msg != "" {
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		return &APIError{StatusCode: resp.StatusCode(), Code: code, Message: msg}
	}
	return nil
}

var _ network.DeployInteractor = (*Interactor)(nil)
