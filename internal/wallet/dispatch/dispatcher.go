package dispatch

import (
	"context"

	"github.com/pkg/errors"
	"github/seimcp/go-wallet/internal/util"
	"github/seimcp/go-wallet/internal/wallet/chain"
	"github/seimcp/go-wallet/internal/wallet/derive"
	"github/seimcp/go-wallet/internal/wallet/nonce"
)

// Dispatcher composes a signing key, a reserved nonce and a transaction
// intent into a signed, submitted transaction, and classifies the outcome.
type Dispatcher struct {
	cfg      Config
	clients  map[derive.Network]chain.Client
	accounts NativeAccountReader
	nonces   *nonce.Coordinator
}

// New creates a Dispatcher. accounts may be nil when the deployment has no
// native network configured.
func New(cfg Config, clients map[derive.Network]chain.Client, accounts NativeAccountReader, nonces *nonce.Coordinator) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		clients:  clients,
		accounts: accounts,
		nonces:   nonces,
	}
}

// Send reserves a nonce, builds and signs the network-specific payload,
// submits it and returns the transaction hash. On a nonce conflict or a
// timed-out submission it resyncs against the network and retries exactly
// once with a freshly reserved nonce; any other submission error surfaces
// without retry. Send takes ownership of kp and scrubs it before returning.
func (d *Dispatcher) Send(ctx context.Context, kp *derive.KeyPair, req *Request) (*Result, error) {
	defer kp.Zero()

	log := util.LogFromContext(ctx)

	client, ok := d.clients[req.Network]
	if !ok {
		return nil, errors.Errorf("no client configured for network %q", req.Network)
	}

	reserved, err := d.nonces.Reserve(ctx, req.Network, req.From)
	if err != nil {
		return nil, err
	}

	txHash, err := d.signAndSubmit(ctx, client, kp, req, reserved)
	if err == nil {
		log.Info().
			Str("network", string(req.Network)).
			Str("to", req.To).
			Uint64("nonce", reserved).
			Str("tx_hash", txHash).
			Msg("Transaction submitted")
		return &Result{TxHash: txHash, Nonce: reserved}, nil
	}

	if !chain.IsNonceConflict(err) && !chain.IsTimeout(err) {
		return nil, err
	}

	// The local nonce view disagrees with the chain, or the outcome of the
	// first attempt is unknown. Consult the authoritative state once and
	// retry with a fresh reservation; the original nonce stays consumed.
	log.Warn().
		Str("network", string(req.Network)).
		Uint64("nonce", reserved).
		Err(err).
		Msg("Submission ambiguous or nonce conflict, resyncing")

	if resyncErr := d.nonces.Resync(ctx, req.Network, req.From); resyncErr != nil {
		return nil, errors.Wrapf(ErrNonceConflict, "resync failed: %v (original: %v)", resyncErr, err)
	}

	retryNonce, err := d.nonces.Reserve(ctx, req.Network, req.From)
	if err != nil {
		return nil, err
	}

	txHash, err = d.signAndSubmit(ctx, client, kp, req, retryNonce)
	if err != nil {
		if chain.IsNonceConflict(err) {
			return nil, errors.Wrap(ErrNonceConflict, err.Error())
		}
		return nil, err
	}

	log.Info().
		Str("network", string(req.Network)).
		Str("to", req.To).
		Uint64("nonce", retryNonce).
		Str("tx_hash", txHash).
		Msg("Transaction submitted after nonce resync")

	return &Result{TxHash: txHash, Nonce: retryNonce}, nil
}

// signAndSubmit builds and signs the payload for one reserved nonce and
// broadcasts it. Build and signing errors are definite pre-broadcast
// failures, so the reservation is rolled back when still possible;
// submission errors leave the nonce consumed.
func (d *Dispatcher) signAndSubmit(ctx context.Context, client chain.Client, kp *derive.KeyPair, req *Request, reserved uint64) (string, error) {
	var raw []byte
	var err error

	switch req.Network {
	case derive.NetworkEVM:
		raw, err = d.buildSignedEVMTx(kp, req, reserved)
	case derive.NetworkNative:
		raw, err = d.buildSignedNativeTx(ctx, kp, req, reserved)
	default:
		err = errors.Errorf("unknown network %q", req.Network)
	}

	if err != nil {
		d.nonces.ReleaseOnFailure(req.Network, req.From, reserved)
		return "", err
	}

	txHash, err := client.SubmitTx(ctx, raw)
	if err != nil {
		if chain.IsNonceConflict(err) || chain.IsTimeout(err) {
			return "", err
		}
		return "", errors.Wrap(ErrSubmissionFailed, err.Error())
	}

	return txHash, nil
}
