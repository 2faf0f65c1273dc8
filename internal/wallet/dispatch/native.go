package dispatch

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strconv"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/seimcp/go-wallet/internal/wallet/derive"
)

// Canonical sign-doc structures for the native chain. Field order is
// alphabetical, matching the canonical JSON the chain verifies against.
type nativeCoin struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

type nativeFee struct {
	Amount []nativeCoin `json:"amount"`
	Gas    string       `json:"gas"`
}

type nativeSendValue struct {
	Amount      []nativeCoin `json:"amount"`
	FromAddress string       `json:"from_address"`
	ToAddress   string       `json:"to_address"`
}

type nativeMsg struct {
	Type  string          `json:"type"`
	Value nativeSendValue `json:"value"`
}

type nativeSignDoc struct {
	AccountNumber string      `json:"account_number"`
	ChainID       string      `json:"chain_id"`
	Fee           nativeFee   `json:"fee"`
	Memo          string      `json:"memo"`
	Msgs          []nativeMsg `json:"msgs"`
	Sequence      string      `json:"sequence"`
}

type nativeSignature struct {
	PubKey struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"pub_key"`
	Signature string `json:"signature"`
}

type nativeTx struct {
	Fee        nativeFee         `json:"fee"`
	Memo       string            `json:"memo"`
	Msg        []nativeMsg       `json:"msg"`
	Signatures []nativeSignature `json:"signatures"`
}

// buildSignedNativeTx assembles a bank-send message, signs its canonical
// sign doc with the secp256k1 key and returns the signed amino tx JSON the
// broadcast client wraps. The sequence comes from the nonce coordinator; only the
// account number is fetched here.
func (d *Dispatcher) buildSignedNativeTx(ctx context.Context, kp *derive.KeyPair, req *Request, sequence uint64) ([]byte, error) {
	if d.accounts == nil {
		return nil, errors.New("native account reader not configured")
	}

	accountNumber, _, err := d.accounts.AccountInfo(ctx, req.From)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch account metadata")
	}

	fee := nativeFee{
		Amount: []nativeCoin{{
			Amount: strconv.FormatUint(d.cfg.NativeFeeAmount, 10),
			Denom:  d.cfg.Denom,
		}},
		Gas: strconv.FormatUint(d.cfg.NativeGasLimit, 10),
	}

	msgs := []nativeMsg{{
		Type: "cosmos-sdk/MsgSend",
		Value: nativeSendValue{
			Amount: []nativeCoin{{
				Amount: req.Amount.String(),
				Denom:  d.cfg.Denom,
			}},
			FromAddress: req.From,
			ToAddress:   req.To,
		},
	}}

	signDoc := nativeSignDoc{
		AccountNumber: strconv.FormatUint(accountNumber, 10),
		ChainID:       d.cfg.NativeChainID,
		Fee:           fee,
		Memo:          req.Memo,
		Msgs:          msgs,
		Sequence:      strconv.FormatUint(sequence, 10),
	}

	docBytes, err := json.Marshal(signDoc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal sign doc")
	}

	digest := sha256.Sum256(docBytes)

	ecdsaKey, err := crypto.ToECDSA(kp.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build ECDSA key")
	}

	sig, err := crypto.Sign(digest[:], ecdsaKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	var signature nativeSignature
	signature.PubKey.Type = "tendermint/PubKeySecp256k1"
	signature.PubKey.Value = base64.StdEncoding.EncodeToString(crypto.CompressPubkey(&ecdsaKey.PublicKey))
	// Drop the recovery byte: the chain expects a 64-byte r||s signature.
	signature.Signature = base64.StdEncoding.EncodeToString(sig[:64])

	raw, err := json.Marshal(nativeTx{
		Fee:        fee,
		Memo:       req.Memo,
		Msg:        msgs,
		Signatures: []nativeSignature{signature},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal signed transaction")
	}

	return raw, nil
}
