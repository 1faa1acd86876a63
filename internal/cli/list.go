package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kassenbuch/internal/core"
	"kassenbuch/internal/log"
	"kassenbuch/internal/view"
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("from", "", "First date to include")
	listCmd.Flags().String("to", "", "Last date to include")
	listCmd.Flags().StringP("mode", "m", string(view.ModeAll), "all, income or expense")
	listCmd.Flags().String("locale", "", "Display locale (default $LEDGER_LOCALE)")
	listCmd.Flags().Bool("categories", false, "Print totals per category after the entries")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the visible ledger with running balance",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

// rangeFromFlags applies from, then to, exactly like two widget edits. The
// returned flag reports that the second edit had to move the first boundary.
func rangeFromFlags(from, to string) (core.DateRange, bool, error) {
	f, err := core.ParseDate(from)
	if err != nil {
		return core.DateRange{}, false, fmt.Errorf("--from %q: %w", from, err)
	}
	t, err := core.ParseDate(to)
	if err != nil {
		return core.DateRange{}, false, fmt.Errorf("--to %q: %w", to, err)
	}
	tr := core.RangeState{}.WithFrom(f).State.WithTo(t)
	return tr.State.Range, tr.Forced, nil
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, logger := app.cfg, app.logger
	ctx := cmd.Context()

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	mode, _ := cmd.Flags().GetString("mode")
	locale, _ := cmd.Flags().GetString("locale")
	categories, _ := cmd.Flags().GetBool("categories")
	if locale == "" {
		locale = cfg.Locale
	}

	r, forced, err := rangeFromFlags(from, to)
	if err != nil {
		return err
	}
	if forced {
		fmt.Fprintln(cmd.ErrOrStderr(), "--from lag nach --to und wurde angepasst.")
	}

	result, err := OpenBackend(ctx, cfg, logger, false)
	if err != nil {
		return err
	}
	defer closeBackend(result, logger)

	entries, err := result.Backend.SelectAllOrdered(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	agg := view.NewAggregator(locale, cfg.CurrencySymbol)
	v := agg.Recompute(entries, r, view.ParseMode(mode))
	log.NewStructuredLogger(logger).LogViewRecomputed(ctx, v.Range, string(v.Mode), v.Len(), v.BalanceCents)

	if err := printLedger(cmd.OutOrStdout(), v); err != nil {
		return err
	}
	if categories {
		return printCategories(cmd.OutOrStdout(), v, agg)
	}
	return nil
}

func printLedger(w io.Writer, v view.ViewState) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tBeleg\tDatum\tKategorie\tBeschreibung\tBetrag\tSaldo\t")
	for _, row := range v.Rows {
		e := row.Entry
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			e.ID, e.VoucherRef, row.Date, e.Category, e.Description, row.Amount.Text, row.Running.Text)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s, %d Einträge, Saldo %s\n", v.Mode.Label(), v.Len(), v.Balance.Text)
	return err
}

func printCategories(w io.Writer, v view.ViewState, agg view.Aggregator) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nKategorie\tSumme")
	for _, c := range v.ByCategory {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name,
			core.FormatSignedCurrency(c.Amount.Cents, agg.Locale, agg.Currency).Text)
	}
	return tw.Flush()
}
