package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/seimcp/go-wallet/internal/api"
	"github/seimcp/go-wallet/internal/api/router"
	"github/seimcp/go-wallet/internal/config"
	"github/seimcp/go-wallet/internal/util/command"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the wallet HTTP server",
		Long: `Starts the wallet HTTP server.

Requires configuration through ENV and dials the configured
EVM RPC and native LCD endpoints at startup.`,
		Run: func(_ *cobra.Command, _ []string) {
			runServer()
		},
	}
}

func runServer() {
	cfg := config.DefaultServiceConfigFromEnv()

	err := command.WithServer(context.Background(), cfg, func(_ context.Context, s *api.Server) error {
		router.Init(s)

		go func() {
			if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Failed to start server")
			}
		}()

		log.Info().Str("listen_address", cfg.Echo.ListenAddress).Msg("Server started")

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to run server")
	}
}
