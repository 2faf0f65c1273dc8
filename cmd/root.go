package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/seimcp/go-wallet/cmd/env"
	"github/seimcp/go-wallet/cmd/probe"
	"github/seimcp/go-wallet/cmd/register"
	"github/seimcp/go-wallet/cmd/server"
	"github/seimcp/go-wallet/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "seiwallet",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

A dual-network (EVM and Cosmos-native) wallet key management service.
Requires configuration through ENV.`, config.ModuleName),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	// attach the subcommands
	rootCmd.AddCommand(
		env.New(),
		probe.New(),
		register.New(),
		server.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
