package derive

import (
	"crypto/sha256"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required by the Cosmos address scheme
)

// nativeAddress is the Cosmos-style address for the keypair:
// bech32(hrp, ripemd160(sha256(compressed public key))).
func (e *Engine) nativeAddress(kp *KeyPair) (string, error) {
	pub, err := crypto.UnmarshalPubkey(kp.PublicKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to unmarshal public key")
	}
	compressed := crypto.CompressPubkey(pub)

	shaHash := sha256.Sum256(compressed)

	ripemdHasher := ripemd160.New()
	if _, err := ripemdHasher.Write(shaHash[:]); err != nil {
		return "", errors.Wrap(err, "failed to hash public key")
	}

	converted, err := bech32.ConvertBits(ripemdHasher.Sum(nil), 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "failed to convert address bits")
	}

	address, err := bech32.Encode(e.hrp, converted)
	if err != nil {
		return "", errors.Wrap(err, "failed to bech32-encode address")
	}

	return address, nil
}
