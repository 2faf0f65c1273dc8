package derive

import (
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
)

// Network tags every derived key and address with the chain branch it
// belongs to. An address for one network is never valid input for the other.
type Network string

const (
	// NetworkEVM is the EVM-compatible branch (0x addresses).
	NetworkEVM Network = "evm"

	// NetworkNative is the Cosmos-style native branch (bech32 addresses).
	NetworkNative Network = "native"
)

// BIP44 derivation paths per network branch. Distinct coin types keep the
// two keys related through the seed but not derivable from each other.
const (
	NativeDerivationPath = "m/44'/118'/0'/0/0"
	EVMDerivationPath    = "m/44'/60'/0'/0/0"
)

// PrivateKeyLength is the expected size of a raw secp256k1 secret.
const PrivateKeyLength = 32

var (
	// ErrInvalidSeed indicates a recovery phrase that failed checksum validation.
	ErrInvalidSeed = errors.New("invalid seed: mnemonic checksum validation failed")

	// ErrInvalidKeyLength indicates a raw secret of the wrong byte length.
	ErrInvalidKeyLength = errors.New("invalid key length: expected 32-byte secp256k1 private key")

	// ErrUnknownNetwork indicates a network tag outside {evm, native}.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrInvalidAddress indicates an address that is malformed for its network.
	ErrInvalidAddress = errors.New("invalid address")
)

// ParseNetwork validates a network tag from external input.
func ParseNetwork(s string) (Network, error) {
	switch Network(s) {
	case NetworkEVM:
		return NetworkEVM, nil
	case NetworkNative:
		return NetworkNative, nil
	default:
		return "", errors.Wrapf(ErrUnknownNetwork, "%q", s)
	}
}

// KeyPair holds a secp256k1 signing key and its uncompressed public point.
// The operation that created it owns it and must call Zero when done;
// relying on garbage collection leaves copies of the scalar in memory.
type KeyPair struct {
	PrivateKey []byte // 32-byte scalar
	PublicKey  []byte // 65-byte uncompressed point (0x04 prefix)
}

// PrivateKeyHex returns the secret as a 0x-prefixed hex string.
// Callers must treat the result as sensitively as the key itself.
func (k *KeyPair) PrivateKeyHex() string {
	return fmt.Sprintf("0x%s", hex.EncodeToString(k.PrivateKey))
}

// Zero overwrites the private scalar in place.
func (k *KeyPair) Zero() {
	for i := range k.PrivateKey {
		k.PrivateKey[i] = 0
	}
}
