package chain

import (
	"context"
	"math/big"
	"net"
	"strings"

	"github.com/pkg/errors"
)

// Client is the per-network node capability the wallet core consumes:
// read the authoritative nonce, read a balance, submit a signed transaction.
type Client interface {
	// GetNonce returns the next valid transaction nonce for the address.
	GetNonce(ctx context.Context, address string) (uint64, error)

	// GetBalance returns the spendable balance in the chain's base unit.
	GetBalance(ctx context.Context, address string) (*big.Int, error)

	// SubmitTx broadcasts a signed transaction and returns its hash.
	SubmitTx(ctx context.Context, rawTx []byte) (string, error)
}

// ErrSubmissionRejected wraps a node-side rejection of a broadcast.
var ErrSubmissionRejected = errors.New("transaction rejected by node")

// nonceConflictMarkers are the node error fragments that indicate the
// submitted nonce disagrees with chain state, across both network styles.
var nonceConflictMarkers = []string{
	"nonce too low",
	"nonce too high",
	"invalid nonce",
	"replacement transaction underpriced",
	"already known",
	"account sequence mismatch",
	"incorrect account sequence",
}

// IsNonceConflict reports whether a submission error means the local nonce
// view disagrees with the chain and a resync is required.
func IsNonceConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range nonceConflictMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsTimeout reports whether a network call timed out, leaving the
// chain-side outcome unknown.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
