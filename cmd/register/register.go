package register

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github/seimcp/go-wallet/internal/config"
	"github/seimcp/go-wallet/internal/util/command"
	"github/seimcp/go-wallet/internal/wallet/derive"
	"github/seimcp/go-wallet/internal/wallet/vault"
)

const nameFlag = "name"

// New builds the register command. It stores a wallet in the encrypted
// vault without touching any chain endpoint, prompting for the secret and
// master password so neither lands in shell history.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Registers a wallet in the encrypted vault",
		Run: func(cmd *cobra.Command, _ []string) {
			name, _ := cmd.Flags().GetString(nameFlag)
			runRegister(cmd.Context(), name)
		},
	}

	cmd.Flags().StringP(nameFlag, "n", "", "Name of the wallet to register (required)")
	_ = cmd.MarkFlagRequired(nameFlag)

	return cmd
}

func runRegister(ctx context.Context, walletName string) {
	cfg := config.DefaultServiceConfigFromEnv()
	command.ConfigureLogger(cfg.Logger)

	privateKeyHex, err := promptSecret("Private key (hex): ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read private key")
	}

	masterPassword, err := promptSecret("Master password: ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read master password")
	}

	engine := derive.NewEngine(cfg.Chains.AddressPrefix)
	kp, address, err := engine.FromPrivateKeyHex(privateKeyHex, derive.NetworkEVM)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid private key")
	}

	secret := make([]byte, len(kp.PrivateKey))
	copy(secret, kp.PrivateKey)
	kp.Zero()

	v := vault.New(cfg.Vault.Path)
	if err := v.AddWallet(ctx, walletName, secret, address, masterPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to register wallet")
	}
	for i := range secret {
		secret[i] = 0
	}

	fmt.Printf("Registered wallet %q with address %s\n", walletName, address)
}

// promptSecret reads a line without echoing it back to the terminal.
func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	secret := strings.TrimSpace(string(raw))
	if secret == "" {
		return "", fmt.Errorf("input must not be empty")
	}

	return secret, nil
}
