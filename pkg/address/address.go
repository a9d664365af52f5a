// pkg/address/address.go
package address

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// Size is the length of an account identifier in bytes.
const Size = 32

// DefaultHRP is the human-readable part used for bech32 account addresses.
const DefaultHRP = "erd"

// ErrInvalidAddress is returned when an address cannot be parsed or encoded.
var ErrInvalidAddress = errors.New("invalid address")

// Address is an immutable 32-byte account identifier.
type Address [Size]byte

// Zero is the all-zero address. Contract deployments are sent to it.
var Zero Address

// FromBytes copies b into an Address. b must be exactly Size bytes long.
func FromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != Size {
		return a, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAddress, Size, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// FromHex parses a hex-encoded address, with or without a 0x prefix.
func FromHex(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return FromBytes(b)
}

// FromBech32 parses a bech32 address regardless of its human-readable part.
func FromBech32(s string) (Address, error) {
	_, b, err := bech32.DecodeAndConvert(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}
	return FromBytes(b)
}

// MustFromBech32 is like FromBech32 but panics on error. Intended for constants and tests.
func MustFromBech32(s string) Address {
	a, err := FromBech32(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Parse accepts either a bech32 or a hex address.
func Parse(s string) (Address, error) {
	if a, err := FromBech32(s); err == nil {
		return a, nil
	}
	a, err := FromHex(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q is neither bech32 nor hex", ErrInvalidAddress, s)
	}
	return a, nil
}

// Bytes returns a copy of the raw address bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, a[:])
	return b
}

// Hex returns the lowercase hex encoding without prefix.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether a is the all-zero address.
func (a Address) IsZero() bool {
	return a == Zero
}

// ToBech32String encodes the address with DefaultHRP.
func (a Address) ToBech32String() (string, error) {
	return a.ToBech32StringWithHRP(DefaultHRP)
}

// ToBech32StringWithHRP encodes the address with the given human-readable part.
func (a Address) ToBech32StringWithHRP(hrp string) (string, error) {
	if hrp == "" {
		return "", fmt.Errorf("%w: empty human-readable part", ErrInvalidAddress)
	}
	s, err := bech32.ConvertAndEncode(hrp, a[:])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return s, nil
}

// String returns the bech32 form, falling back to hex if encoding fails.
func (a Address) String() string {
	s, err := a.ToBech32String()
	if err != nil {
		return a.Hex()
	}
	return s
}

// MarshalText implements encoding.TextMarshaler using the bech32 form.
func (a Address) MarshalText() ([]byte, error) {
	s, err := a.ToBech32String()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Both bech32 and hex are accepted.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
