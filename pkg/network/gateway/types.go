package gateway

import (
	"errors"
	"fmt"
)

// ErrNotFinal is returned when a transaction does not reach a final status within the
// configured maximum wait.
var ErrNotFinal = errors.New("transaction not final")

// response is the envelope wrapping every gateway reply.
type response[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error"`
	Code  string `json:"code"`
}

// APIError is a non-successful gateway reply.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned %d (%s)", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("gateway returned %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// retryable reports whether polling may try again after e.
func (e *APIError) retryable() bool {
	return e.StatusCode == 404 || e.StatusCode == 429 || e.StatusCode >= 500
}

// NetworkConfig holds the chain parameters needed to build transactions.
type NetworkConfig struct {
	ChainID               string `json:"erd_chain_id"`
	MinGasPrice           uint64 `json:"erd_min_gas_price"`
	MinGasLimit           uint64 `json:"erd_min_gas_limit"`
	GasPerDataByte        uint64 `json:"erd_gas_per_data_byte"`
	MinTransactionVersion uint32 `json:"erd_min_transaction_version"`
	Denomination          int    `json:"erd_denomination"`
}

type networkConfigData struct {
	Config NetworkConfig `json:"config"`
}

type nonceData struct {
	Nonce uint64 `json:"nonce"`
}

type sendData struct {
	TxHash string `json:"txHash"`
}

// Transaction is the signed transaction posted to the gateway. Field order is the
// canonical serialization order used for signing.
type Transaction struct {
	Nonce     uint64 `json:"nonce"`
	Value     string `json:"value"`
	Receiver  string `json:"receiver"`
	Sender    string `json:"sender"`
	GasPrice  uint64 `json:"gasPrice"`
	GasLimit  uint64 `json:"gasLimit"`
	Data      []byte `json:"data,omitempty"`
	ChainID   string `json:"chainID"`
	Version   uint32 `json:"version"`
	Signature string `json:"signature,omitempty"`
}
