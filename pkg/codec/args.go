package codec

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"cosmossdk.io/math"

	"github.com/altuslabsxyz/scexec/pkg/address"
)

// ParseTypedArg encodes a "type:value" string into a call argument.
// Supported types: u64, u32, biguint, str, bool, addr, hex.
// A value without a type prefix is treated as hex.
func ParseTypedArg(s string) ([]byte, error) {
	kind, value, ok := strings.Cut(s, ":")
	if !ok {
		kind, value = "hex", s
	}

	switch kind {
	case "u64":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid u64 %q: %w", value, err)
		}
		return EncodeU64(v), nil
	case "u32":
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid u32 %q: %w", value, err)
		}
		return EncodeU64(v), nil
	case "biguint":
		v, ok := math.NewIntFromString(value)
		if !ok {
			return nil, fmt.Errorf("invalid biguint %q", value)
		}
		return EncodeBigUint(v)
	case "str":
		return EncodeString(value), nil
	case "bool":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q: %w", value, err)
		}
		return EncodeBool(v), nil
	case "addr":
		a, err := address.Parse(value)
		if err != nil {
			return nil, err
		}
		return EncodeAddress(a), nil
	case "hex":
		b, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid hex %q: %w", value, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown argument type %q (supported: u64, u32, biguint, str, bool, addr, hex)", kind)
	}
}

// ParseTypedArgs applies ParseTypedArg to every element.
func ParseTypedArgs(args []string) ([][]byte, error) {
	out := make([][]byte, 0, len(args))
	for i, a := range args {
		b, err := ParseTypedArg(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}
