package derive

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

const hardenedOffset = 0x80000000

// Engine derives network-tagged secp256k1 keypairs and addresses from seed
// material. It is pure: no I/O, no shared state, same inputs always produce
// the same outputs.
type Engine struct {
	hrp string
}

// NewEngine creates an Engine. hrp is the bech32 human-readable prefix for
// native addresses (e.g. "sei").
func NewEngine(hrp string) *Engine {
	return &Engine{hrp: hrp}
}

// GenerateMnemonic returns a fresh 24-word BIP39 recovery phrase.
func (e *Engine) GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to build mnemonic")
	}

	return mnemonic, nil
}

// DeriveFromMnemonic validates the recovery phrase checksum, expands it to a
// BIP39 seed and derives the keypair and address for the given network.
// The intermediate seed is scrubbed before returning.
func (e *Engine) DeriveFromMnemonic(mnemonic string, network Network) (*KeyPair, string, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, "", ErrInvalidSeed
	}

	seed := bip39.NewSeed(mnemonic, "")
	defer func() {
		for i := range seed {
			seed[i] = 0
		}
	}()

	return e.Derive(seed, network)
}

// Derive derives the keypair and address for the given network from seed
// material. The caller keeps ownership of seed and is responsible for
// scrubbing it.
func (e *Engine) Derive(seed []byte, network Network) (*KeyPair, string, error) {
	path, err := derivationPathFor(network)
	if err != nil {
		return nil, "", err
	}

	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to create master key")
	}

	key := masterKey
	indices, err := parseDerivationPath(path)
	if err != nil {
		return nil, "", err
	}
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, "", errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	privateKey := make([]byte, PrivateKeyLength)
	copy(privateKey, key.Key)

	kp, address, err := e.FromPrivateKey(privateKey, network)
	if err != nil {
		for i := range privateKey {
			privateKey[i] = 0
		}
		return nil, "", err
	}

	return kp, address, nil
}

// FromPrivateKey builds a KeyPair and address from a raw 32-byte secret.
// Ownership of priv transfers to the returned KeyPair.
func (e *Engine) FromPrivateKey(priv []byte, network Network) (*KeyPair, string, error) {
	if len(priv) != PrivateKeyLength {
		return nil, "", errors.Wrapf(ErrInvalidKeyLength, "got %d bytes", len(priv))
	}

	ecdsaKey, err := crypto.ToECDSA(priv)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to build ECDSA key")
	}

	kp := &KeyPair{
		PrivateKey: priv,
		PublicKey:  crypto.FromECDSAPub(&ecdsaKey.PublicKey),
	}

	address, err := e.Address(kp, network)
	if err != nil {
		return nil, "", err
	}

	return kp, address, nil
}

// FromPrivateKeyHex decodes a hex-encoded secret (with or without 0x prefix)
// and builds the keypair and address for the given network.
func (e *Engine) FromPrivateKeyHex(privHex string, network Network) (*KeyPair, string, error) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(privHex), "0x")

	priv, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, "", errors.Wrap(ErrInvalidKeyLength, "private key is not valid hex")
	}

	return e.FromPrivateKey(priv, network)
}

// ValidateAddress checks that address is well formed for the given network.
func (e *Engine) ValidateAddress(address string, network Network) error {
	switch network {
	case NetworkEVM:
		if !common.IsHexAddress(address) {
			return errors.Wrapf(ErrInvalidAddress, "%q is not a hex address", address)
		}
		return nil
	case NetworkNative:
		hrp, _, err := bech32.Decode(address)
		if err != nil {
			return errors.Wrapf(ErrInvalidAddress, "%q is not bech32: %v", address, err)
		}
		if hrp != e.hrp {
			return errors.Wrapf(ErrInvalidAddress, "%q has prefix %q, want %q", address, hrp, e.hrp)
		}
		return nil
	default:
		return errors.Wrapf(ErrUnknownNetwork, "%q", network)
	}
}

// Address derives the network-tagged address for a keypair.
func (e *Engine) Address(kp *KeyPair, network Network) (string, error) {
	switch network {
	case NetworkEVM:
		return evmAddress(kp)
	case NetworkNative:
		return e.nativeAddress(kp)
	default:
		return "", errors.Wrapf(ErrUnknownNetwork, "%q", network)
	}
}

// evmAddress is 0x + the lower 20 bytes of keccak256 over the uncompressed
// public key minus its prefix byte.
func evmAddress(kp *KeyPair) (string, error) {
	pub, err := crypto.UnmarshalPubkey(kp.PublicKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to unmarshal public key")
	}

	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

func derivationPathFor(network Network) (string, error) {
	switch network {
	case NetworkEVM:
		return EVMDerivationPath, nil
	case NetworkNative:
		return NativeDerivationPath, nil
	default:
		return "", errors.Wrapf(ErrUnknownNetwork, "%q", network)
	}
}

// parseDerivationPath parses a BIP44 path like "m/44'/118'/0'/0/0" into
// child key indices, applying the hardened offset for ' segments.
func parseDerivationPath(path string) ([]uint32, error) {
	if !strings.HasPrefix(path, "m/") {
		return nil, fmt.Errorf("invalid derivation path: %s", path)
	}

	parts := strings.Split(strings.TrimPrefix(path, "m/"), "/")
	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		hardened := strings.HasSuffix(part, "'")
		part = strings.TrimSuffix(part, "'")

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment: %s", part)
		}

		if hardened {
			index += hardenedOffset
		}

		indices = append(indices, uint32(index))
	}

	return indices, nil
}
