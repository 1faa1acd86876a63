package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kassenbuch/internal/config"
	"kassenbuch/internal/log"
)

// env holds what PersistentPreRunE prepared for the subcommands.
type env struct {
	cfg    *config.Config
	logger *log.Logger
}

var app env

var rootCmd = &cobra.Command{
	Use:   "kassenbuch",
	Short: "Personal cash ledger",
	Long: `kassenbuch keeps a personal ledger of income and expenses.
Entries are stored in SQLite (or an in-memory seed store) and shown in a
local web UI with a date range, a category filter and a running balance.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		LoadEnvFile()
		cfg, err := LoadAndValidateConfig()
		if err != nil {
			return err
		}
		app = env{cfg: cfg, logger: SetupLogger(cfg.LogLevel)}
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
