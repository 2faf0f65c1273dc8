package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github/seimcp/go-wallet/internal/config"
	"github/seimcp/go-wallet/internal/wallet"
	"github/seimcp/go-wallet/internal/wallet/chain"
	"github/seimcp/go-wallet/internal/wallet/derive"
	"github/seimcp/go-wallet/internal/wallet/dispatch"
	"github/seimcp/go-wallet/internal/wallet/nonce"
	"github/seimcp/go-wallet/internal/wallet/rateguard"
	"github/seimcp/go-wallet/internal/wallet/vault"
)

// WalletService is the tool surface exposed over HTTP.
type WalletService = wallet.Service

type Router struct {
	Routes      []*echo.Route
	Root        *echo.Group
	Management  *echo.Group
	APIV1Wallet *echo.Group
}

// Server is a central struct keeping all the dependencies.
// Echo and Router are initialized by router.Init, everything else by
// InitComponents.
type Server struct {
	Echo   *echo.Echo
	Router *Router

	Config config.Server
	Vault  *vault.Vault
	Wallet WalletService

	evmClient *chain.EVMClient
}

func NewServer(cfg config.Server) *Server {
	return &Server{
		Config: cfg,
	}
}

// InitComponents dials the chain endpoints and builds the vault, dispatcher
// and wallet service from the configuration.
func (s *Server) InitComponents() error {
	evmClient, err := chain.NewEVMClient(s.Config.Chains.EVMRPCURL)
	if err != nil {
		return fmt.Errorf("failed to connect EVM RPC: %w", err)
	}
	s.evmClient = evmClient

	nativeClient := chain.NewNativeClient(s.Config.Chains.NativeLCDURL, s.Config.Chains.Denom)

	clients := map[derive.Network]chain.Client{
		derive.NetworkEVM:    evmClient,
		derive.NetworkNative: nativeClient,
	}

	return s.InitComponentsWithClients(clients, nativeClient)
}

// InitComponentsWithClients builds the vault, dispatcher and wallet service
// on top of the given chain clients. Tests use it to inject stubs.
func (s *Server) InitComponentsWithClients(clients map[derive.Network]chain.Client, accounts dispatch.NativeAccountReader) error {
	engine := derive.NewEngine(s.Config.Chains.AddressPrefix)
	s.Vault = vault.New(s.Config.Vault.Path)

	dispatcher := dispatch.New(dispatch.Config{
		EVMChainID:      s.Config.Chains.EVMChainID,
		NativeChainID:   s.Config.Chains.NativeChainID,
		Denom:           s.Config.Chains.Denom,
		DefaultGasLimit: s.Config.Fees.EVMGasLimit,
		DefaultGasPrice: s.Config.EVMGasPrice(),
		NativeGasLimit:  s.Config.Fees.NativeGasLimit,
		NativeFeeAmount: s.Config.Fees.NativeFeeAmount,
	}, clients, accounts, nonce.NewCoordinator(clients))

	guard := rateguard.New(map[string]rateguard.Limit{
		wallet.EndpointSend: {
			Max:    s.Config.RateLimits.Send.Max,
			Window: s.Config.RateLimits.Send.Window,
		},
		wallet.EndpointFaucet: {
			Max:    s.Config.RateLimits.Faucet.Max,
			Window: s.Config.RateLimits.Faucet.Window,
		},
	})

	s.Wallet = wallet.NewService(engine, s.Vault, dispatcher, guard, clients, wallet.FaucetConfig{
		PrivateKeys: map[derive.Network]string{
			derive.NetworkEVM:    s.Config.Faucet.EVMPrivateKey,
			derive.NetworkNative: s.Config.Faucet.NativePrivateKey,
		},
		Amount: s.Config.FaucetAmount(),
	})

	return nil
}

func (s *Server) Ready() bool {
	return s.Echo != nil && s.Router != nil && s.Vault != nil && s.Wallet != nil
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	if s.evmClient != nil {
		s.evmClient.Close()
	}

	return errs
}
