package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"kassenbuch/internal/log"
	"kassenbuch/internal/storage"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("status", false, "Only print the current schema version")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQLite schema migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger := app.cfg, app.logger.WithComponent(log.ComponentStorage)
	if cfg.DataBackend != "sqlite" {
		return errors.New("migrate only applies to DATA_BACKEND=sqlite")
	}
	status, _ := cmd.Flags().GetBool("status")

	if !status {
		if err := storage.RunMigrations(cfg.SQLiteDBPath); err != nil {
			return err
		}
	}
	version, dirty, err := storage.SchemaVersion(cfg.SQLiteDBPath)
	if err != nil {
		return err
	}
	logger.Info("Schema version",
		log.FieldOperation, log.OpMigrate,
		"db_path", cfg.SQLiteDBPath,
		"version", version,
		"dirty", dirty)
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty=%t)\n", version, dirty)
	return nil
}
