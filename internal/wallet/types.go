package wallet

import (
	"math/big"

	"github.com/pkg/errors"

	"github/seimcp/go-wallet/internal/wallet/derive"
)

// Rate-limited endpoint names known to the guard.
const (
	EndpointSend   = "send"
	EndpointFaucet = "faucet"
)

var (
	// ErrRateLimited indicates the caller exhausted its request budget for
	// the endpoint's current window.
	ErrRateLimited = errors.New("rate limit exceeded, try again later")

	// ErrMissingCredentials indicates a send request that carries neither a
	// raw secret nor a wallet name with a master password.
	ErrMissingCredentials = errors.New("either a private key or a wallet name with master password is required")

	// ErrFaucetDisabled indicates no faucet key is configured for the
	// requested network.
	ErrFaucetDisabled = errors.New("faucet is not configured for this network")
)

// NewWallet is a freshly generated or imported wallet. The secret fields are
// returned to the caller exactly once and are never persisted by the service.
type NewWallet struct {
	Network        derive.Network `json:"network"`
	Address        string         `json:"address"`
	PrivateKey     string         `json:"private_key"`
	RecoveryPhrase string         `json:"recovery_phrase,omitempty"`
}

// SendRequest describes a transfer. The signing key comes from exactly one
// of two places: PrivateKey (a raw hex secret) or WalletName plus
// MasterPassword (a vault lookup).
type SendRequest struct {
	Network        derive.Network
	Caller         string // rate limit key, empty skips admission
	WalletName     string
	MasterPassword string
	PrivateKey     string
	To             string
	Amount         *big.Int
	GasLimit       uint64
	GasPrice       *big.Int
	Memo           string
}

// SendResult reports a broadcast transfer.
type SendResult struct {
	TxHash string `json:"tx_hash"`
	From   string `json:"from"`
	Nonce  uint64 `json:"nonce"`
}
