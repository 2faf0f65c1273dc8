package dispatch

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/seimcp/go-wallet/internal/wallet/derive"
)

// buildSignedEVMTx builds and signs a legacy gas-price transaction and
// returns its RLP encoding.
func (d *Dispatcher) buildSignedEVMTx(kp *derive.KeyPair, req *Request, nonce uint64) ([]byte, error) {
	ecdsaKey, err := crypto.ToECDSA(kp.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build ECDSA key")
	}

	// The sender address must come from this exact key.
	derived := crypto.PubkeyToAddress(ecdsaKey.PublicKey)
	if !strings.EqualFold(derived.Hex(), req.From) {
		return nil, errors.New("from address does not match signing key")
	}

	gasLimit := req.GasLimit
	if gasLimit == 0 {
		gasLimit = d.cfg.DefaultGasLimit
	}

	gasPrice := req.GasPrice
	if gasPrice == nil {
		gasPrice = new(big.Int).Set(d.cfg.DefaultGasPrice)
	}

	toAddress := common.HexToAddress(req.To)

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &toAddress,
		Value:    req.Amount,
	})

	signer := types.NewEIP155Signer(big.NewInt(d.cfg.EVMChainID))
	signedTx, err := types.SignTx(tx, signer, ecdsaKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	raw, err := signedTx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal signed transaction")
	}

	return raw, nil
}
