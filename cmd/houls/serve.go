package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dusk-indust/houls/internal/logging"
	"github.com/dusk-indust/houls/internal/lsp"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the language server on stdin/stdout (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
}

func runServe(ctx context.Context, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger, cleanup, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	o, err := newOutliner(cfg)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}
	defer o.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		zap.String("version", version),
		zap.String("encoding", string(o.Encoding())),
	)

	srv := lsp.NewServer(o, logger, lsp.WithServerInfo("houls", version))
	err = srv.Serve(ctx, lsp.Stdio())
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("stopped by signal")
		return nil
	case err != nil:
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	logger.Info("exited")
	return nil
}
