package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zenithtodo/zenith/internal/config"
	"github.com/zenithtodo/zenith/internal/server"
	"github.com/zenithtodo/zenith/internal/store"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var port, storeURI string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task service",
		Long:  `Serve the REST API over the store named by ZENITH_STORE_URI (memory://, sqlite://path or redis://host:port/db).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				os.Setenv(config.EnvPort, port)
			}
			if storeURI != "" {
				os.Setenv(config.EnvStoreURI, storeURI)
			}
			return runServe(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&storeURI, "store", "", "Store URI (overrides ZENITH_STORE_URI)")
	return cmd
}

func runServe(parent context.Context) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}

	logger := log.New()
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	s, err := store.Open(openCtx, cfg.StoreURI)
	cancel()
	if err != nil {
		logger.WithError(err).Error("Store connection error")
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer s.Close()
	logger.WithField("store", cfg.StoreURI).Info("Store connected")

	srv, err := server.New(s, server.Options{
		DefaultPriority: cfg.DefaultPriority,
		CORSOrigins:     cfg.CORSOrigins,
	}, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
