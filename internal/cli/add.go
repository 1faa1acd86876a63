package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"kassenbuch/internal/core"
	"kassenbuch/internal/log"
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringP("date", "d", "", "Entry date, YYYY-MM-DD or DD.MM.YYYY (default today)")
	addCmd.Flags().StringP("category", "c", core.CategoryIncome, "Category label")
	addCmd.Flags().StringP("amount", "a", "", "Amount as magnitude, e.g. 12,50 or 1.234,56; the category decides the sign")
	addCmd.Flags().StringP("voucher", "v", "", "Voucher reference")
	addCmd.Flags().String("description", "", "Free text description")
	_ = addCmd.MarkFlagRequired("amount")
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a new ledger entry",
	Example: `  kassenbuch add --amount 120 --category Einnahmen --description Gehalt
  kassenbuch add -a 25,50 -c Ausgaben -d 2024-03-01 -v B-17`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

// newEntryFromFlags collects the add flags into an unvalidated entry.
func newEntryFromFlags(cmd *cobra.Command) core.NewEntry {
	date, _ := cmd.Flags().GetString("date")
	category, _ := cmd.Flags().GetString("category")
	amount, _ := cmd.Flags().GetString("amount")
	voucher, _ := cmd.Flags().GetString("voucher")
	description, _ := cmd.Flags().GetString("description")
	return core.NewEntry{
		VoucherRef:  voucher,
		Date:        date,
		Category:    category,
		Description: description,
		AmountText:  amount,
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, logger := app.cfg, app.logger
	ctx := cmd.Context()

	result, err := OpenBackend(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer closeBackend(result, logger)

	e, err := result.Backend.Create(ctx, newEntryFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("store entry: %w", err)
	}
	log.NewStructuredLogger(logger).LogEntryCreated(ctx, e)

	loc := core.ResolveLocale(cfg.Locale)
	amount := core.FormatSignedCurrency(e.Amount.Cents, loc, cfg.CurrencySymbol)
	fmt.Fprintf(cmd.OutOrStdout(), "Eintrag #%d gespeichert: %s %s %s\n",
		e.ID, loc.FormatDate(e.Date), e.Category, amount.Text)
	return nil
}
