package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github/seimcp/go-wallet/internal/config"
)

func TestPrintServiceEnv(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()
	_, err := json.MarshalIndent(cfg, "", "  ")
	require.NoError(t, err)
}

func TestDefaultsAreUsable(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()

	require.NotEmpty(t, cfg.Echo.ListenAddress)
	require.Equal(t, "sei", cfg.Chains.AddressPrefix)
	require.Equal(t, "usei", cfg.Chains.Denom)
	require.Positive(t, cfg.Fees.EVMGasLimit)
	require.Positive(t, cfg.EVMGasPrice().Sign())
	require.Positive(t, cfg.RateLimits.Faucet.Max)
	require.Positive(t, cfg.RateLimits.Faucet.Window)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SEIWALLET_ECHO_LISTEN_ADDRESS", ":9999")
	t.Setenv("SEIWALLET_CHAINS_EVM_CHAIN_ID", "1329")

	cfg := config.DefaultServiceConfigFromEnv()

	require.Equal(t, ":9999", cfg.Echo.ListenAddress)
	require.Equal(t, int64(1329), cfg.Chains.EVMChainID)
}
