package test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github/seimcp/go-wallet/internal/api"
	"github/seimcp/go-wallet/internal/api/router"
	"github/seimcp/go-wallet/internal/config"
	"github/seimcp/go-wallet/internal/wallet/chain"
	"github/seimcp/go-wallet/internal/wallet/derive"
)

// TestFaucetPrivateKey funds the stub faucet in server tests. It is a well
// known throwaway key, never use it against a real endpoint.
const TestFaucetPrivateKey = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

// WithTestServer runs closure against a fully initialized server wired to
// stub chain clients and a throwaway vault file.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Vault.Path = filepath.Join(t.TempDir(), "vault.json")
	cfg.Faucet.EVMPrivateKey = TestFaucetPrivateKey

	s := api.NewServer(cfg)

	clients := map[derive.Network]chain.Client{
		derive.NetworkEVM:    NewStubChain(),
		derive.NetworkNative: NewStubChain(),
	}
	require.NoError(t, s.InitComponentsWithClients(clients, StubAccounts{}))

	router.Init(s)

	closure(s)
}
