// Package wallet provides the signing identity used by network executors.
// Key material is loaded once and held by value; a Wallet is safe to copy.
package wallet

import (
	stded25519 "crypto/ed25519"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"

	"github.com/altuslabsxyz/scexec/pkg/address"
)

// ErrInvalidKey is returned when key material cannot be loaded.
var ErrInvalidKey = errors.New("invalid wallet key")

// Wallet is an ed25519 signing identity.
type Wallet struct {
	key  [stded25519.PrivateKeySize]byte
	addr address.Address
}

// FromPrivateKey builds a Wallet from a 32-byte seed or a 64-byte seed||pubkey.
func FromPrivateKey(key []byte) (Wallet, error) {
	var seed []byte
	switch len(key) {
	case stded25519.SeedSize:
		seed = key
	case stded25519.PrivateKeySize:
		seed = key[:stded25519.SeedSize]
	default:
		return Wallet{}, fmt.Errorf("%w: expected %d or %d bytes, got %d",
			ErrInvalidKey, stded25519.SeedSize, stded25519.PrivateKeySize, len(key))
	}

	full := stded25519.NewKeyFromSeed(seed)
	if len(key) == stded25519.PrivateKeySize && string(full[stded25519.SeedSize:]) != string(key[stded25519.SeedSize:]) {
		return Wallet{}, fmt.Errorf("%w: public key does not match seed", ErrInvalidKey)
	}

	var w Wallet
	copy(w.key[:], full)

	priv := &ed25519.PrivKey{Key: full}
	addr, err := address.FromBytes(priv.PubKey().Bytes())
	if err != nil {
		return Wallet{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	w.addr = addr
	return w, nil
}

// FromPem parses the chain's PEM wallet format: the block body is the hex of seed||pubkey.
func FromPem(data []byte) (Wallet, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return Wallet{}, fmt.Errorf("%w: no PEM block found", ErrInvalidKey)
	}
	if !strings.HasPrefix(block.Type, "PRIVATE KEY") {
		return Wallet{}, fmt.Errorf("%w: unexpected PEM block type %q", ErrInvalidKey, block.Type)
	}

	raw, err := hex.DecodeString(strings.TrimSpace(string(block.Bytes)))
	if err != nil {
		return Wallet{}, fmt.Errorf("%w: PEM body is not hex: %v", ErrInvalidKey, err)
	}
	return FromPrivateKey(raw)
}

// FromPemFile reads and parses a PEM wallet file.
func FromPemFile(path string) (Wallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Wallet{}, fmt.Errorf("failed to read wallet file: %w", err)
	}
	return FromPem(data)
}

// ToPem renders the wallet in the PEM format accepted by FromPem.
func (w Wallet) ToPem() ([]byte, error) {
	bech, err := w.addr.ToBech32String()
	if err != nil {
		return nil, err
	}
	block := &pem.Block{
		Type:  "PRIVATE KEY for " + bech,
		Bytes: []byte(hex.EncodeToString(w.key[:])),
	}
	return pem.EncodeToMemory(block), nil
}

// Address returns the account identifier derived from the public key.
func (w Wallet) Address() address.Address {
	return w.addr
}

// Sign signs msg with the wallet key.
func (w Wallet) Sign(msg []byte) ([]byte, error) {
	if w.IsZero() {
		return nil, fmt.Errorf("%w: wallet is not initialized", ErrInvalidKey)
	}
	key := make([]byte, len(w.key))
	copy(key, w.key[:])
	priv := &ed25519.PrivKey{Key: key}
	return priv.Sign(msg)
}

// IsZero reports whether the wallet holds no key.
func (w Wallet) IsZero() bool {
	return w.key == [stded25519.PrivateKeySize]byte{}
}

// String never includes key material.
func (w Wallet) String() string {
	return fmt.Sprintf("Wallet(%s)", w.addr)
}

// GoString keeps %#v from dumping the key.
func (w Wallet) GoString() string {
	return w.String()
}
