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
	"github.com/dusk-indust/houls/internal/mcptools"
)

func newMCPCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP tool server (stdio, or streamable HTTP with --http)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMCP(cmd.Context(), flags, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "http", "", "listen address for streamable HTTP (overrides config mcpAddr)")
	return cmd
}

func runMCP(ctx context.Context, flags *rootFlags, addr string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.MCPAddr
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

	svc := mcptools.NewOutlineService(o)
	if wd, err := os.Getwd(); err == nil {
		svc.SetRoot(wd)
	}

	if addr != "" {
		logger.Info("mcp over http", zap.String("addr", addr))
		return mcptools.RunMCPServer(ctx, svc, addr)
	}

	logger.Info("mcp over stdio")
	err = mcptools.RunMCPServerStdio(ctx, mcptools.NewOutlineMCPServer(svc))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
