package wallet

import (
	"context"
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github/seimcp/go-wallet/internal/metrics"
	"github/seimcp/go-wallet/internal/util"
	"github/seimcp/go-wallet/internal/wallet/chain"
	"github/seimcp/go-wallet/internal/wallet/derive"
	"github/seimcp/go-wallet/internal/wallet/dispatch"
	"github/seimcp/go-wallet/internal/wallet/rateguard"
	"github/seimcp/go-wallet/internal/wallet/vault"
)

// Service provides wallet management and transfer functionality.
type Service interface {
	// CreateWallet generates a fresh wallet on the given network and returns
	// its address, private key and recovery phrase. Nothing is persisted.
	CreateWallet(ctx context.Context, network derive.Network) (*NewWallet, error)

	// ImportWallet rebuilds a wallet from a recovery phrase or a hex private
	// key and returns its address and secret. Nothing is persisted.
	ImportWallet(ctx context.Context, network derive.Network, secretOrPhrase string) (*NewWallet, error)

	// RegisterWallet stores a named wallet in the encrypted vault.
	RegisterWallet(ctx context.Context, walletName, privateKeyHex, masterPassword string) (*vault.Entry, error)

	// ListWallets returns the names and addresses of all vaulted wallets.
	ListWallets(ctx context.Context, masterPassword string) ([]vault.Entry, error)

	// RemoveWallet deletes a vaulted wallet. It reports whether the wallet
	// existed.
	RemoveWallet(ctx context.Context, walletName, masterPassword string) (bool, error)

	// SendFrom signs and broadcasts a transfer. The signing key comes from
	// the request's raw secret or from the vault.
	SendFrom(ctx context.Context, req *SendRequest) (*SendResult, error)

	// Faucet sends the configured drip amount to the address, rate limited
	// per recipient.
	Faucet(ctx context.Context, network derive.Network, toAddress string) (*SendResult, error)

	// GetBalance returns the spendable balance of an address in base units.
	GetBalance(ctx context.Context, network derive.Network, address string) (*big.Int, error)
}

// FaucetConfig holds the drip keys and amount. Networks without a key have
// the faucet disabled.
type FaucetConfig struct {
	PrivateKeys map[derive.Network]string // hex secrets per network
	Amount      *big.Int                  // base units per drip
}

type service struct {
	engine     *derive.Engine
	vault      *vault.Vault
	dispatcher *dispatch.Dispatcher
	guard      *rateguard.Guard
	clients    map[derive.Network]chain.Client
	faucet     FaucetConfig
}

// NewService wires the derivation engine, vault, dispatcher and rate guard
// into the wallet service.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(
	engine *derive.Engine,
	v *vault.Vault,
	dispatcher *dispatch.Dispatcher,
	guard *rateguard.Guard,
	clients map[derive.Network]chain.Client,
	faucet FaucetConfig,
) Service {
	return &service{
		engine:     engine,
		vault:      v,
		dispatcher: dispatcher,
		guard:      guard,
		clients:    clients,
		faucet:     faucet,
	}
}

func (s *service) CreateWallet(ctx context.Context, network derive.Network) (result *NewWallet, err error) {
	defer func() { metrics.IncWalletOperation("create_wallet", err) }()

	log := util.LogFromContext(ctx).With().Str("network", string(network)).Logger()

	mnemonic, err := s.engine.GenerateMnemonic()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate recovery phrase")
	}

	kp, address, err := s.engine.DeriveFromMnemonic(mnemonic, network)
	if err != nil {
		return nil, err
	}
	defer kp.Zero()

	log.Info().Str("address", address).Msg("Created wallet")

	return &NewWallet{
		Network:        network,
		Address:        address,
		PrivateKey:     kp.PrivateKeyHex(),
		RecoveryPhrase: mnemonic,
	}, nil
}

func (s *service) ImportWallet(ctx context.Context, network derive.Network, secretOrPhrase string) (result *NewWallet, err error) {
	defer func() { metrics.IncWalletOperation("import_wallet", err) }()

	log := util.LogFromContext(ctx).With().Str("network", string(network)).Logger()

	secretOrPhrase = strings.TrimSpace(secretOrPhrase)

	// Multiple words mean a recovery phrase, a single token a hex secret.
	if len(strings.Fields(secretOrPhrase)) > 1 {
		kp, address, err := s.engine.DeriveFromMnemonic(secretOrPhrase, network)
		if err != nil {
			return nil, err
		}
		defer kp.Zero()

		log.Info().Str("address", address).Msg("Imported wallet from recovery phrase")

		return &NewWallet{
			Network:        network,
			Address:        address,
			PrivateKey:     kp.PrivateKeyHex(),
			RecoveryPhrase: secretOrPhrase,
		}, nil
	}

	kp, address, err := s.engine.FromPrivateKeyHex(secretOrPhrase, network)
	if err != nil {
		return nil, err
	}
	defer kp.Zero()

	log.Info().Str("address", address).Msg("Imported wallet from private key")

	return &NewWallet{
		Network:    network,
		Address:    address,
		PrivateKey: kp.PrivateKeyHex(),
	}, nil
}

func (s *service) RegisterWallet(ctx context.Context, walletName, privateKeyHex, masterPassword string) (entry *vault.Entry, err error) {
	defer func() { metrics.IncWalletOperation("register_wallet", err) }()

	log := util.LogFromContext(ctx).With().Str("wallet_name", walletName).Logger()

	if strings.TrimSpace(walletName) == "" {
		return nil, errors.New("wallet name must not be empty")
	}

	kp, address, err := s.engine.FromPrivateKeyHex(privateKeyHex, derive.NetworkEVM)
	if err != nil {
		return nil, err
	}

	// Store the raw key bytes. A hex rendering would leave an immutable
	// string copy on the heap that no scrub can reach.
	secret := make([]byte, len(kp.PrivateKey))
	copy(secret, kp.PrivateKey)
	kp.Zero()
	defer func() {
		for i := range secret {
			secret[i] = 0
		}
	}()

	if err := s.vault.AddWallet(ctx, walletName, secret, address, masterPassword); err != nil {
		return nil, err
	}

	log.Info().Str("address", address).Msg("Registered wallet")

	return &vault.Entry{WalletName: walletName, PublicAddress: address}, nil
}

func (s *service) ListWallets(ctx context.Context, masterPassword string) ([]vault.Entry, error) {
	return s.vault.List(ctx, masterPassword)
}

func (s *service) RemoveWallet(ctx context.Context, walletName, masterPassword string) (removed bool, err error) {
	defer func() { metrics.IncWalletOperation("remove_wallet", err) }()

	removed, err = s.vault.Remove(ctx, walletName, masterPassword)
	if err != nil {
		return false, err
	}

	if removed {
		util.LogFromContext(ctx).Info().Str("wallet_name", walletName).Msg("Removed wallet")
	}

	return removed, nil
}

func (s *service) SendFrom(ctx context.Context, req *SendRequest) (result *SendResult, err error) {
	defer func() { metrics.IncTransactionSubmitted(string(req.Network), err) }()

	log := util.LogFromContext(ctx).With().
		Str("network", string(req.Network)).
		Str("to", req.To).
		Logger()

	if req.Caller != "" && !s.guard.Admit(EndpointSend, req.Caller) {
		log.Warn().Str("caller", req.Caller).Msg("Send request rate limited")
		return nil, ErrRateLimited
	}

	if err := s.engine.ValidateAddress(req.To, req.Network); err != nil {
		return nil, err
	}
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return nil, errors.New("amount must be positive")
	}

	kp, from, err := s.resolveKey(ctx, req)
	if err != nil {
		return nil, err
	}

	res, err := s.dispatcher.Send(ctx, kp, &dispatch.Request{
		Network:  req.Network,
		From:     from,
		To:       req.To,
		Amount:   req.Amount,
		GasLimit: req.GasLimit,
		GasPrice: req.GasPrice,
		Memo:     req.Memo,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("from", from).
		Str("tx_hash", res.TxHash).
		Uint64("nonce", res.Nonce).
		Msg("Broadcast transfer")

	return &SendResult{TxHash: res.TxHash, From: from, Nonce: res.Nonce}, nil
}

func (s *service) Faucet(ctx context.Context, network derive.Network, toAddress string) (result *SendResult, err error) {
	defer func() { metrics.IncTransactionSubmitted(string(network), err) }()

	log := util.LogFromContext(ctx).With().
		Str("network", string(network)).
		Str("to", toAddress).
		Logger()

	faucetKey, ok := s.faucet.PrivateKeys[network]
	if !ok || faucetKey == "" {
		return nil, ErrFaucetDisabled
	}

	if err := s.engine.ValidateAddress(toAddress, network); err != nil {
		return nil, err
	}

	if !s.guard.Admit(EndpointFaucet, strings.ToLower(toAddress)) {
		log.Warn().Msg("Faucet request rate limited")
		return nil, ErrRateLimited
	}

	kp, from, err := s.engine.FromPrivateKeyHex(faucetKey, network)
	if err != nil {
		return nil, errors.Wrap(err, "faucet key is invalid")
	}

	res, err := s.dispatcher.Send(ctx, kp, &dispatch.Request{
		Network: network,
		From:    from,
		To:      toAddress,
		Amount:  new(big.Int).Set(s.faucet.Amount),
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("tx_hash", res.TxHash).Msg("Faucet drip sent")

	return &SendResult{TxHash: res.TxHash, From: from, Nonce: res.Nonce}, nil
}

func (s *service) GetBalance(ctx context.Context, network derive.Network, address string) (*big.Int, error) {
	if err := s.engine.ValidateAddress(address, network); err != nil {
		return nil, err
	}

	client, ok := s.clients[network]
	if !ok {
		return nil, errors.Wrapf(derive.ErrUnknownNetwork, "%q", network)
	}

	return client.GetBalance(ctx, address)
}

// resolveKey loads the signing key from the request's raw secret or the
// vault and derives the sender address for the request's network.
func (s *service) resolveKey(ctx context.Context, req *SendRequest) (*derive.KeyPair, string, error) {
	if req.PrivateKey != "" {
		return s.engine.FromPrivateKeyHex(req.PrivateKey, req.Network)
	}

	if req.WalletName == "" || req.MasterPassword == "" {
		return nil, "", ErrMissingCredentials
	}

	secret, err := s.vault.GetSecret(ctx, req.WalletName, req.MasterPassword)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		for i := range secret {
			secret[i] = 0
		}
	}()

	// The keypair takes ownership of its own copy; the dispatcher scrubs it
	// after signing. Converting to a hex string here would leave an
	// unscrubbable copy on the heap.
	key := make([]byte, len(secret))
	copy(key, secret)

	kp, address, err := s.engine.FromPrivateKey(key, req.Network)
	if err != nil {
		for i := range key {
			key[i] = 0
		}
		return nil, "", err
	}

	return kp, address, nil
}
