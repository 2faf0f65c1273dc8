package command

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/seimcp/go-wallet/internal/api"
	"github/seimcp/go-wallet/internal/config"
)

const shutdownTimeout = 30 * time.Second

// NewSubcommandGroup returns a command that only exists to group its
// subcommands, printing usage when invoked directly.
func NewSubcommandGroup(name string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use: name,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// ConfigureLogger applies the configured level and output format to the
// global zerolog logger.
func ConfigureLogger(cfg config.Logger) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter())
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// WithServer initializes a fully wired server from the configuration, runs
// f against it and shuts the components down afterwards.
func WithServer(ctx context.Context, cfg config.Server, f func(ctx context.Context, s *api.Server) error) error {
	ConfigureLogger(cfg.Logger)

	s := api.NewServer(cfg)
	if err := s.InitComponents(); err != nil {
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		for _, err := range s.Shutdown(shutdownCtx) {
			log.Error().Err(err).Msg("Error during server shutdown")
		}
	}()

	return f(ctx, s)
}
