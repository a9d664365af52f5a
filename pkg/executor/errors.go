package executor

import (
	"errors"
	"fmt"

	"github.com/altuslabsxyz/scexec/pkg/transaction"
)

// Error kinds. Every error returned by an executor matches exactly one of them via
// errors.Is.
var (
	ErrInteractorConstruction          = errors.New("cannot open interactor")
	ErrNormalization                   = transaction.ErrNormalization
	ErrSubmission                      = errors.New("transaction submission failed")
	ErrNoSmartContractResult           = errors.New("no smart contract result")
	ErrNonSuccessStatus                = errors.New("smart contract result status is not ok")
	ErrCannotDecodeSmartContractResult = errors.New("cannot decode smart contract result")
	ErrMalformedResult                 = errors.New("malformed smart contract result")
	ErrDeployNotImplemented            = errors.New("deploy not implemented")
)

// ExecutorError is the tagged error returned by executors.
type ExecutorError struct {
	Kind   error
	Detail string
	Err    error
}

func newError(kind error, detail string, err error) *ExecutorError {
	return &ExecutorError{Kind: kind, Detail: detail, Err: err}
}

func (e *ExecutorError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExecutorError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// StatusError carries the status reported by the VM for a failed execution.
type StatusError struct {
	// Code is the status field as found in the result data (hex).
	Code string
	// Message is Code decoded as text, when it is valid hex.
	Message string
	// ReturnMessage is the gateway's human-readable explanation, if any.
	ReturnMessage string
}

func (e *StatusError) Error() string {
	status := e.Message
	if status == "" {
		status = e.Code
	}
	if status == "" {
		status = "<missing>"
	}
	if e.ReturnMessage != "" {
		return fmt.Sprintf("status %q: %s", status, e.ReturnMessage)
	}
	return fmt.Sprintf("status %q", status)
}

// IsProtocolError reports whether the transaction executed but produced no usable
// result: nothing found, a malformed result or a non-success status.
func IsProtocolError(err error) bool {
	return errors.Is(err, ErrNoSmartContractResult) ||
		errors.Is(err, ErrNonSuccessStatus) ||
		errors.Is(err, ErrMalformedResult)
}

// IsDecodeError reports whether a successful result could not be decoded.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrCannotDecodeSmartContractResult)
}
