package config

import (
	"math/big"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EchoServer holds the HTTP listener settings.
type EchoServer struct {
	ListenAddress             string
	EnableRecoverMiddleware   bool
	EnableRequestIDMiddleware bool
	EnableMetricsMiddleware   bool
}

// Vault holds the encrypted wallet store settings.
type Vault struct {
	Path string
}

// Chains holds the per-network connection and identity parameters.
type Chains struct {
	AddressPrefix string // bech32 prefix for native addresses
	Denom         string // native base unit
	EVMRPCURL     string
	EVMChainID    int64
	NativeLCDURL  string
	NativeChainID string
}

// Fees holds the transaction fee defaults applied when a request carries
// none.
type Fees struct {
	EVMGasLimit     uint64
	EVMGasPriceWei  int64
	NativeGasLimit  uint64
	NativeFeeAmount uint64
}

// Faucet holds the drip keys and amount. Empty keys disable the faucet for
// that network.
type Faucet struct {
	EVMPrivateKey    string
	NativePrivateKey string
	AmountBaseUnits  int64
}

// RateLimit is a request budget over a sliding window.
type RateLimit struct {
	Max    int
	Window time.Duration
}

// RateLimits holds the per-endpoint request budgets.
type RateLimits struct {
	Send   RateLimit
	Faucet RateLimit
}

// Logger holds the zerolog settings.
type Logger struct {
	Level              string
	PrettyPrintConsole bool
}

// Server is the top-level service configuration, read from the environment.
type Server struct {
	Echo       EchoServer
	Vault      Vault
	Chains     Chains
	Fees       Fees
	Faucet     Faucet
	RateLimits RateLimits
	Logger     Logger
}

// EVMGasPrice returns the configured default gas price as a big integer.
func (s Server) EVMGasPrice() *big.Int {
	return big.NewInt(s.Fees.EVMGasPriceWei)
}

// FaucetAmount returns the configured drip amount as a big integer.
func (s Server) FaucetAmount() *big.Int {
	return big.NewInt(s.Faucet.AmountBaseUnits)
}

// DefaultServiceConfigFromEnv reads the service configuration from
// SEIWALLET_* environment variables, falling back to testnet defaults.
func DefaultServiceConfigFromEnv() Server {
	v := viper.New()
	v.SetEnvPrefix("SEIWALLET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("echo.listen_address", ":8080")
	v.SetDefault("echo.enable_recover_middleware", true)
	v.SetDefault("echo.enable_request_id_middleware", true)
	v.SetDefault("echo.enable_metrics_middleware", true)

	v.SetDefault("vault.path", "data/vault.json")

	v.SetDefault("chains.address_prefix", "sei")
	v.SetDefault("chains.denom", "usei")
	v.SetDefault("chains.evm_rpc_url", "https://evm-rpc-testnet.sei-apis.com")
	v.SetDefault("chains.evm_chain_id", int64(1328))
	v.SetDefault("chains.native_lcd_url", "https://rest-testnet.sei-apis.com")
	v.SetDefault("chains.native_chain_id", "atlantic-2")

	v.SetDefault("fees.evm_gas_limit", uint64(21000))
	v.SetDefault("fees.evm_gas_price_wei", int64(1_500_000_000))
	v.SetDefault("fees.native_gas_limit", uint64(200_000))
	v.SetDefault("fees.native_fee_amount", uint64(20_000))

	v.SetDefault("faucet.evm_private_key", "")
	v.SetDefault("faucet.native_private_key", "")
	v.SetDefault("faucet.amount_base_units", int64(1_000_000))

	v.SetDefault("rate_limits.send_max", 10)
	v.SetDefault("rate_limits.send_window", time.Minute)
	v.SetDefault("rate_limits.faucet_max", 1)
	v.SetDefault("rate_limits.faucet_window", time.Hour)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.pretty_print_console", false)

	return Server{
		Echo: EchoServer{
			ListenAddress:             v.GetString("echo.listen_address"),
			EnableRecoverMiddleware:   v.GetBool("echo.enable_recover_middleware"),
			EnableRequestIDMiddleware: v.GetBool("echo.enable_request_id_middleware"),
			EnableMetricsMiddleware:   v.GetBool("echo.enable_metrics_middleware"),
		},
		Vault: Vault{
			Path: v.GetString("vault.path"),
		},
		Chains: Chains{
			AddressPrefix: v.GetString("chains.address_prefix"),
			Denom:         v.GetString("chains.denom"),
			EVMRPCURL:     v.GetString("chains.evm_rpc_url"),
			EVMChainID:    v.GetInt64("chains.evm_chain_id"),
			NativeLCDURL:  v.GetString("chains.native_lcd_url"),
			NativeChainID: v.GetString("chains.native_chain_id"),
		},
		Fees: Fees{
			EVMGasLimit:     v.GetUint64("fees.evm_gas_limit"),
			EVMGasPriceWei:  v.GetInt64("fees.evm_gas_price_wei"),
			NativeGasLimit:  v.GetUint64("fees.native_gas_limit"),
			NativeFeeAmount: v.GetUint64("fees.native_fee_amount"),
		},
		Faucet: Faucet{
			EVMPrivateKey:    v.GetString("faucet.evm_private_key"),
			NativePrivateKey: v.GetString("faucet.native_private_key"),
			AmountBaseUnits:  v.GetInt64("faucet.amount_base_units"),
		},
		RateLimits: RateLimits{
			Send: RateLimit{
				Max:    v.GetInt("rate_limits.send_max"),
				Window: v.GetDuration("rate_limits.send_window"),
			},
			Faucet: RateLimit{
				Max:    v.GetInt("rate_limits.faucet_max"),
				Window: v.GetDuration("rate_limits.faucet_window"),
			},
		},
		Logger: Logger{
			Level:              v.GetString("logger.level"),
			PrettyPrintConsole: v.GetBool("logger.pretty_print_console"),
		},
	}
}
