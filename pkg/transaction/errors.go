package transaction

import "errors"

// ErrNormalization is wrapped by every failure raised while normalizing a call.
var ErrNormalization = errors.New("normalization failed")

// Specific normalization failures. Each also matches ErrNormalization via errors.Is.
var (
	ErrInvalidAddress  = normalizationError("invalid address")
	ErrNegativeValue   = normalizationError("negative value")
	ErrInvalidTransfer = normalizationError("invalid token transfer")
	ErrMissingFunction = normalizationError("missing function name")
	ErrInvalidData     = normalizationError("invalid transaction data")
)

type kindError struct {
	msg    string
	parent error
}

func normalizationError(msg string) error {
	return &kindError{msg: msg, parent: ErrNormalization}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.parent }
