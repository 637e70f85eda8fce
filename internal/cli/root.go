// Package cli provides the command-line interface for rotterdb.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"rotterDB/internal/config"
	"rotterDB/internal/console"
	"rotterDB/internal/engine"
	"rotterDB/internal/storage/filestore"
)

// Version information (set at build time).
var Version = "0.1.0"

// appKey is used to store the session in context.
type appKey struct{}

// app is what every command needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	engine *engine.DBEngine
}

// NewRootCmd creates and returns the root command. Without a subcommand
// it starts the interactive shell.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "rotterdb",
		Short: "RotterDB - a tiny file-per-table SQL engine",
		Long: `RotterDB stores every table in its own binary file and runs a small SQL
dialect against them: CREATE TABLE, DROP TABLE, INSERT INTO, SELECT and DESCRIBE.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "__complete", "version":
				return nil
			}

			a, err := newApp(cmd, cfgFile)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
		RunE:          runShell,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./rotterdb.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding the table files (default: donnees)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text|json)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (table|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{console.FormatTable, console.FormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newShellCommand())
	rootCmd.AddCommand(newExecCommand())
	rootCmd.AddCommand(newTablesCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newApp(cmd *cobra.Command, cfgFile string) (*app, error) {
	cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.NewLogger(cmd.ErrOrStderr())
	if cfg.ConfigFile != "" {
		logger.Debug("using config file", "path", cfg.ConfigFile)
	}

	store, err := filestore.New(cfg.DataDir, filestore.Options{Logger: logger})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		engine: engine.New(engine.Config{Store: store, Logger: logger}),
	}, nil
}

// getApp retrieves the session from the command context.
func getApp(cmd *cobra.Command) (*app, error) {
	if a, ok := cmd.Context().Value(appKey{}).(*app); ok {
		return a, nil
	}
	return nil, fmt.Errorf("configuration not loaded")
}
