package env

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/seimcp/go-wallet/internal/config"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Prints the effective service configuration",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()

			// secrets stay out of stdout
			cfg.Faucet.EVMPrivateKey = redact(cfg.Faucet.EVMPrivateKey)
			cfg.Faucet.NativePrivateKey = redact(cfg.Faucet.NativePrivateKey)

			out, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to marshal service config")
			}

			fmt.Println(string(out))
		},
	}
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "<redacted>"
}
