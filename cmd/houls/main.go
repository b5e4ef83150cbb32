package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/houls/internal/config"
	"github.com/dusk-indust/houls/internal/outline"
)

// version is set by goreleaser at build time.
var version = "dev"

// Persistent flags shared by every subcommand. Empty values leave the
// loaded configuration untouched.
type rootFlags struct {
	ConfigDir string
	LogDir    string
	LogLevel  string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "houls",
		Short: "houls - language server for houlang schedule files",
		Long: `houls serves document symbols for houlang files over the Language Server
Protocol on stdin/stdout. Run without a subcommand to start the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.ConfigDir, "config-dir", ".", "directory containing houls.yml, houls.yaml or houls.toml")
	root.PersistentFlags().StringVar(&flags.LogDir, "log-dir", "", "directory for the daily log file (overrides config)")
	root.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newSymbolsCmd(flags))
	root.AddCommand(newMCPCmd(flags))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the houls version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// loadConfig reads the config directory and applies flag overrides.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigDir)
	if err != nil {
		return nil, err
	}
	if flags.LogDir != "" {
		cfg.LogDir = flags.LogDir
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newOutliner builds the outline pipeline for cfg. A query that fails to
// compile is fatal for every command.
func newOutliner(cfg *config.Config) (*outline.Outliner, error) {
	enc, err := outline.ParseEncoding(cfg.PositionEncoding)
	if err != nil {
		return nil, err
	}
	o, err := outline.New(outline.WithEncoding(enc))
	if err != nil {
		return nil, fmt.Errorf("compile week query: %w", err)
	}
	return o, nil
}
