package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apphttp "kassenbuch/internal/http"
	"kassenbuch/internal/log"
)

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default :$PORT)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ledger web UI",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger := app.cfg, app.logger
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = ":" + cfg.Port
	}

	ctx, stop := SignalContext(cmd.Context())
	defer stop()

	result, err := OpenBackend(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer closeBackend(result, logger)

	srv := apphttp.NewServer(apphttp.Options{
		Addr:               addr,
		Ledger:             result.Backend,
		Ready:              result.Ping,
		EventsHealthy:      result.EventsHealthy,
		Locale:             cfg.Locale,
		Currency:           cfg.CurrencySymbol,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		MetricsEnabled:     cfg.MetricsEnabled,
		Logger:             logger,
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	logger.Info("Starting ledger UI",
		log.FieldOperation, log.OpStartup,
		"addr", ln.Addr().String(),
		log.FieldBackend, cfg.DataBackend,
		"locale", cfg.Locale)

	return serveUntilDone(ctx, srv, ln, logger)
}

// serveUntilDone serves on ln until ctx is cancelled, then shuts srv down
// with shutdownTimeout.
func serveUntilDone(ctx context.Context, srv *apphttp.Server, ln net.Listener, logger *log.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down ledger UI", log.FieldOperation, log.OpShutdown)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
