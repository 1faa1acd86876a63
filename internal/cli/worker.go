package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"kassenbuch/internal/amqp"
	"kassenbuch/internal/config"
	"kassenbuch/internal/log"
	"kassenbuch/internal/sheets"
	gsheet "kassenbuch/internal/sheets/google"
	"kassenbuch/internal/sheets/memory"
	"kassenbuch/internal/worker"
)

func init() {
	rootCmd.AddCommand(workerCmd)
}

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Mirror created entries to Google Sheets",
	Long: `Consume entry-created events from AMQP and append each stored entry to
the configured spreadsheet. Without GOOGLE_SPREADSHEET_ID the entries are
mirrored into memory only, which is useful to check the event flow.`,
	RunE: runWorker,
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, logger := app.cfg, app.logger.WithComponent(log.ComponentWorker)
	if cfg.AMQPURL == "" {
		return errors.New("worker requires AMQP_URL")
	}

	ctx, stop := SignalContext(cmd.Context())
	defer stop()

	result, err := OpenBackend(ctx, cfg, logger, false)
	if err != nil {
		return err
	}
	defer closeBackend(result, logger)

	mirror, err := openMirror(ctx, cfg, logger)
	if err != nil {
		return err
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return err
	}
	defer client.Close()

	logger.Info("Starting mirror worker",
		log.FieldOperation, log.OpStartup,
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue,
		"mirror_enabled", cfg.MirrorEnabled())
	return worker.NewMirrorWorker(result.Backend, mirror).Run(ctx, client)
}

// openMirror returns the spreadsheet client, with its header row ensured, or
// an in-memory mirror when no spreadsheet is configured.
func openMirror(ctx context.Context, cfg *config.Config, logger *log.Logger) (sheets.EntryMirror, error) {
	if !cfg.MirrorEnabled() {
		logger.Info("Google Sheets disabled, mirroring into memory")
		return memory.NewMirror(), nil
	}
	client, err := gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		SheetName:       cfg.GoogleSheetName,
		CredentialsJSON: cfg.GoogleServiceAccountJSON,
		CredentialsFile: cfg.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, err
	}
	if err := client.EnsureHeader(ctx); err != nil {
		return nil, err
	}
	logger.Info("Google Sheets mirror ready", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	return client, nil
}
