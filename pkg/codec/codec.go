// Package codec defines the decode capabilities consumed by executors and the
// top-level encoders/decoders for the VM's common value types.
//
// Top encoding follows the VM rules: unsigned numbers are big-endian with leading
// zero bytes stripped (zero is the empty buffer), booleans are 0x01 or empty.
package codec

import (
	"errors"
	"fmt"
	"math/big"

	"cosmossdk.io/math"

	"github.com/altuslabsxyz/scexec/pkg/address"
)

// ErrDecode is wrapped by every decoding failure in this package.
var ErrDecode = errors.New("decode error")

// MultiDecoder turns the ordered return buffers of a call into a native value.
type MultiDecoder[T any] interface {
	MultiDecode(args [][]byte) (T, error)
}

// TopDecoder decodes a single top-encoded buffer.
type TopDecoder[T any] interface {
	TopDecode(b []byte) (T, error)
}

// MultiDecoderFunc adapts a function to MultiDecoder.
type MultiDecoderFunc[T any] func(args [][]byte) (T, error)

func (f MultiDecoderFunc[T]) MultiDecode(args [][]byte) (T, error) { return f(args) }

// TopDecoderFunc adapts a function to TopDecoder.
type TopDecoderFunc[T any] func(b []byte) (T, error)

func (f TopDecoderFunc[T]) TopDecode(b []byte) (T, error) { return f(b) }

// Single requires exactly one buffer and decodes it with dec.
func Single[T any](dec TopDecoder[T]) MultiDecoder[T] {
	return MultiDecoderFunc[T](func(args [][]byte) (T, error) {
		var zero T
		if len(args) != 1 {
			return zero, fmt.Errorf("%w: expected 1 value, got %d", ErrDecode, len(args))
		}
		v, err := dec.TopDecode(args[0])
		if err != nil {
			return zero, fmt.Errorf("value 0: %w", err)
		}
		return v, nil
	})
}

// Optional accepts zero or one buffer. Zero buffers decode to nil.
func Optional[T any](dec TopDecoder[T]) MultiDecoder[*T] {
	return MultiDecoderFunc[*T](func(args [][]byte) (*T, error) {
		switch len(args) {
		case 0:
			return nil, nil
		case 1:
			v, err := dec.TopDecode(args[0])
			if err != nil {
				return nil, fmt.Errorf("value 0: %w", err)
			}
			return &v, nil
		default:
			return nil, fmt.Errorf("%w: expected at most 1 value, got %d", ErrDecode, len(args))
		}
	})
}

// Variadic decodes every buffer with dec.
func Variadic[T any](dec TopDecoder[T]) MultiDecoder[[]T] {
	return MultiDecoderFunc[[]T](func(args [][]byte) ([]T, error) {
		out := make([]T, 0, len(args))
		for i, arg := range args {
			v, err := dec.TopDecode(arg)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			out = append(out, v)
		}
		return out, nil
	})
}

// Raw returns the buffers untouched.
var Raw MultiDecoder[[][]byte] = MultiDecoderFunc[[][]byte](func(args [][]byte) ([][]byte, error) {
	return args, nil
})

// Unit requires the call to return nothing.
var Unit MultiDecoder[struct{}] = MultiDecoderFunc[struct{}](func(args [][]byte) (struct{}, error) {
	if len(args) != 0 {
		return struct{}{}, fmt.Errorf("%w: expected no values, got %d", ErrDecode, len(args))
	}
	return struct{}{}, nil
})

// BigUint decodes an unsigned integer of at most math.MaxBitLen bits.
var BigUint TopDecoder[math.Int] = TopDecoderFunc[math.Int](func(b []byte) (math.Int, error) {
	v := new(big.Int).SetBytes(b)
	if v.BitLen() > math.MaxBitLen {
		return math.Int{}, fmt.Errorf("%w: biguint of %d bits exceeds %d", ErrDecode, v.BitLen(), math.MaxBitLen)
	}
	return math.NewIntFromBigInt(v), nil
})

// U64 decodes an unsigned 64-bit integer.
var U64 TopDecoder[uint64] = TopDecoderFunc[uint64](func(b []byte) (uint64, error) {
	return decodeUint(b, 8)
})

// U32 decodes an unsigned 32-bit integer.
var U32 TopDecoder[uint32] = TopDecoderFunc[uint32](func(b []byte) (uint32, error) {
	v, err := decodeUint(b, 4)
	return uint32(v), err
})

// Bool decodes a boolean.
var Bool TopDecoder[bool] = TopDecoderFunc[bool](func(b []byte) (bool, error) {
	switch {
	case len(b) == 0:
		return false, nil
	case len(b) == 1 && b[0] == 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: invalid bool encoding %x", ErrDecode, b)
	}
})

// Bytes returns a copy of the buffer.
var Bytes TopDecoder[[]byte] = TopDecoderFunc[[]byte](func(b []byte) ([]byte, error) {
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
})

// String interprets the buffer as UTF-8 text.
var String TopDecoder[string] = TopDecoderFunc[string](func(b []byte) (string, error) {
	return string(b), nil
})

// AddressDecoder decodes a 32-byte account identifier.
var AddressDecoder TopDecoder[address.Address] = TopDecoderFunc[address.Address](func(b []byte) (address.Address, error) {
	a, err := address.FromBytes(b)
	if err != nil {
		return address.Address{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return a, nil
})

func decodeUint(b []byte, width int) (uint64, error) {
	if len(b) > width {
		return 0, fmt.Errorf("%w: %d bytes do not fit in a %d-bit integer", ErrDecode, len(b), width*8)
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

// EncodeBigUint top-encodes a non-negative integer.
func EncodeBigUint(v math.Int) ([]byte, error) {
	if v.IsNil() {
		return []byte{}, nil
	}
	if v.IsNegative() {
		return nil, fmt.Errorf("cannot encode negative value %s as unsigned", v)
	}
	return v.BigInt().Bytes(), nil
}

// EncodeU64 top-encodes an unsigned integer.
func EncodeU64(v uint64) []byte {
	return new(big.Int).SetUint64(v).Bytes()
}

// EncodeBool top-encodes a boolean.
func EncodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{}
}

// EncodeString top-encodes text.
func EncodeString(s string) []byte {
	return []byte(s)
}

// EncodeAddress top-encodes an account identifier.
func EncodeAddress(a address.Address) []byte {
	return a.Bytes()
}
