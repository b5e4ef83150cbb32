package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/dusk-indust/houls/internal/batch"
	"github.com/dusk-indust/houls/internal/logging"
)

type symbolsFlags struct {
	Root        string
	Concurrency int
	Compact     bool
}

// fileSymbols is one entry of the symbols command output.
type fileSymbols struct {
	Path    string                    `json:"path"`
	Symbols []protocol.DocumentSymbol `json:"symbols"`
	Error   string                    `json:"error,omitempty"`
}

func newSymbolsCmd(flags *rootFlags) *cobra.Command {
	sf := &symbolsFlags{}

	cmd := &cobra.Command{
		Use:   "symbols <path|glob>...",
		Short: "Print the week symbols of houlang files as JSON",
		Long: `Outlines each file and prints a JSON array with one entry per file, in
argument order. Globs use doublestar syntax, e.g. 'weeks/**/*.hou'.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSymbols(cmd.Context(), flags, sf, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&sf.Root, "root", "", "directory relative patterns are resolved against")
	cmd.Flags().IntVarP(&sf.Concurrency, "concurrency", "j", 0, "files outlined at once (default: number of CPUs)")
	cmd.Flags().BoolVar(&sf.Compact, "compact", false, "print compact JSON")
	return cmd
}

func runSymbols(ctx context.Context, flags *rootFlags, sf *symbolsFlags, args []string, out io.Writer) error {
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

	paths, err := batch.Expand(sf.Root, args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files match %v", args)
	}

	results := batch.OutlineAll(ctx, o, paths, sf.Concurrency)

	entries := make([]fileSymbols, 0, len(results))
	for _, r := range results {
		e := fileSymbols{Path: r.Path, Symbols: r.Symbols}
		if r.Err != nil {
			e.Error = r.Err.Error()
			logger.Warn("outline failed", zap.String("path", r.Path), zap.Error(r.Err))
		}
		if e.Symbols == nil {
			e.Symbols = []protocol.DocumentSymbol{}
		}
		entries = append(entries, e)
	}

	enc := json.NewEncoder(out)
	if !sf.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(entries); err != nil {
		return err
	}

	if n := batch.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d files failed", n, len(results))
	}
	return nil
}
