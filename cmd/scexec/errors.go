// cmd/scexec/errors.go
package main

import (
	"errors"

	"github.com/altuslabsxyz/scexec/pkg/executor"
)

// Process exit codes by error class.
const (
	exitFailure       = 1
	exitProtocolError = 2
	exitDecodeError   = 3
)

var (
	errNoWallet = errors.New("no wallet configured: set --pem, SCEXEC_PEM or pem in the config file")

	// errAborted is returned when the user declines the confirmation prompt.
	errAborted = errors.New("aborted")
)

func exitCode(err error) int {
	switch {
	case executor.IsProtocolError(err):
		return exitProtocolError
	case executor.IsDecodeError(err):
		return exitDecodeError
	default:
		return exitFailure
	}
}
