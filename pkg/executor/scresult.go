package executor

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/altuslabsxyz/scexec/pkg/network"
)

// SuccessStatusCode is the status field of a successful execution ("ok" in hex).
const SuccessStatusCode = "6f6b"

const returnDataSeparator = "@"

// FindSmartContractResult returns the first result carrying VM return data: a nonzero
// nonce and data starting with '@'. Pure value transfers have nonce zero.
func FindSmartContractResult(results []network.SmartContractResult) (*network.SmartContractResult, bool) {
	for i := range results {
		if results[i].Nonce != 0 && strings.HasPrefix(results[i].Data, returnDataSeparator) {
			return &results[i], true
		}
	}
	return nil, false
}

// ParseReturnData splits "@<status>@<arg>*" and hex-decodes the arguments.
func ParseReturnData(data string) ([][]byte, error) {
	fields := strings.Split(data, returnDataSeparator)
	if fields[0] != "" {
		return nil, newError(ErrMalformedResult, fmt.Sprintf("data %q does not start with %q", data, returnDataSeparator), nil)
	}
	if len(fields) < 2 || fields[1] != SuccessStatusCode {
		status := ""
		if len(fields) >= 2 {
			status = fields[1]
		}
		return nil, newError(ErrNonSuccessStatus, "", statusError(status, ""))
	}

	out := make([][]byte, 0, len(fields)-2)
	for i, f := range fields[2:] {
		b, err := hex.DecodeString(f)
		if err != nil {
			return nil, newError(ErrCannotDecodeSmartContractResult, fmt.Sprintf("return field %d", i), err)
		}
		out = append(out, b)
	}
	return out, nil
}

// DecodeSmartContractResult locates the return-data result of tx and parses it.
func DecodeSmartContractResult(tx *network.TransactionOnNetwork) ([][]byte, error) {
	if tx == nil {
		return nil, newError(ErrNoSmartContractResult, "no transaction", nil)
	}
	scr, ok := FindSmartContractResult(tx.Transaction.SmartContractResults)
	if !ok {
		return nil, newError(ErrNoSmartContractResult, txLabel(tx), nil)
	}

	args, err := ParseReturnData(scr.Data)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			se.ReturnMessage = scr.ReturnMessage
		}
		return nil, err
	}
	return args, nil
}

func statusError(code, returnMessage string) *StatusError {
	se := &StatusError{Code: code, ReturnMessage: returnMessage}
	if b, err := hex.DecodeString(code); err == nil {
		se.Message = string(b)
	}
	return se
}

func txLabel(tx *network.TransactionOnNetwork) string {
	if tx.Transaction.Hash == "" {
		return ""
	}
	return "transaction " + tx.Transaction.Hash
}
