package dispatch

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"github/seimcp/go-wallet/internal/wallet/derive"
)

var (
	// ErrNonceConflict indicates the network rejected the nonce even after
	// the single resync-and-retry cycle.
	ErrNonceConflict = errors.New("nonce conflict: transaction rejected after resync and retry")

	// ErrSubmissionFailed indicates a broadcast failure that is not retried
	// automatically, since resubmission of a possibly-accepted transaction
	// risks a double spend.
	ErrSubmissionFailed = errors.New("transaction submission failed")
)

// Request is a transaction intent: who sends, where to, how much, and
// optional fee overrides. It is ephemeral and never persisted.
type Request struct {
	Network  derive.Network
	From     string   // sender address, must match the signing key
	To       string   // destination address on the same network
	Amount   *big.Int // base units (wei / usei)
	GasLimit uint64   // 0 means the configured default
	GasPrice *big.Int // nil means the configured default
	Memo     string   // native transfers only
}

// Result reports a broadcast transaction.
type Result struct {
	TxHash string
	Nonce  uint64
}

// NativeAccountReader provides the account metadata a native sign doc
// needs beyond the sequence managed by the nonce coordinator.
type NativeAccountReader interface {
	AccountInfo(ctx context.Context, address string) (accountNumber, sequence uint64, err error)
}

// Config carries the chain parameters and fee defaults for building
// transactions.
type Config struct {
	EVMChainID      int64
	NativeChainID   string
	Denom           string
	DefaultGasLimit uint64   // EVM gas limit when the request has none
	DefaultGasPrice *big.Int // EVM gas price when the request has none
	NativeGasLimit  uint64
	NativeFeeAmount uint64
}
