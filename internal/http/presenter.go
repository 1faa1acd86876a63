package http

import (
	"errors"
	"hash/fnv"
	"strconv"

	"kassenbuch/internal/core"
	"kassenbuch/internal/view"
)

type rowData struct {
	Index       int
	ID          int64
	Voucher     string
	Date        string
	Category    string
	Description string
	Amount      core.Display
	Running     core.Display
	Focus       bool
}

type categoryData struct {
	Name   string
	Amount core.Display
}

type modeOption struct {
	Key      string
	Label    string
	Selected bool
}

type ledgerData struct {
	Rows       []rowData
	Visible    int
	Balance    core.Display
	ModeLabel  string
	Modes      []modeOption
	From       string
	To         string
	ToMin      string
	FromMax    string
	ByCategory []categoryData
	HasChart   bool
	ChartKey   string
	LoadError  string
}

type indexData struct {
	Ledger     ledgerData
	Today      string
	Categories []string
	Currency   string
}

func (s *Server) ledgerData(snap view.Snapshot) ledgerData {
	v := snap.State
	d := ledgerData{
		Visible:   v.Len(),
		Balance:   v.Balance,
		ModeLabel: v.Mode.Label(),
		From:      snap.Range.Range.From.ISO(),
		To:        snap.Range.Range.To.ISO(),
		ToMin:     snap.Range.ToMin.ISO(),
		FromMax:   snap.Range.FromMax.ISO(),
		HasChart:  v.Len() >= 2,
		ChartKey:  chartKey(v),
	}
	if snap.LoadError != nil {
		d.LoadError = "Einträge konnten nicht geladen werden."
	}
	for _, m := range view.Modes {
		d.Modes = append(d.Modes, modeOption{Key: string(m), Label: m.Label(), Selected: m == v.Mode})
	}
	for i, r := range v.Rows {
		d.Rows = append(d.Rows, rowData{
			Index:       i,
			ID:          r.Entry.ID,
			Voucher:     r.Entry.VoucherRef,
			Date:        r.Date,
			Category:    r.Entry.Category,
			Description: r.Entry.Description,
			Amount:      r.Amount,
			Running:     r.Running,
			Focus:       snap.HasFocus && snap.Focus == i,
		})
	}
	for _, c := range v.ByCategory {
		d.ByCategory = append(d.ByCategory, categoryData{
			Name:   c.Name,
			Amount: core.FormatSignedCurrency(c.Amount.Cents, s.locale, s.currency),
		})
	}
	return d
}

// chartKey fingerprints the plotted series: range, mode and every row's id and
// running balance. Equal keys render identical charts.
func chartKey(v view.ViewState) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(v.Range.From.ISO() + "|" + v.Range.To.ISO() + "|" + string(v.Mode)))
	for _, r := range v.Rows {
		_, _ = h.Write([]byte("|" + strconv.FormatInt(r.Entry.ID, 10) + ":" + strconv.FormatInt(r.RunningCents, 10)))
	}
	return strconv.FormatUint(h.Sum64(), 36)
}

type apiRow struct {
	ID           int64  `json:"id"`
	Voucher      string `json:"voucher,omitempty"`
	Date         string `json:"date"`
	Category     string `json:"category"`
	Description  string `json:"description,omitempty"`
	AmountCents  int64  `json:"amount_cents"`
	Amount       string `json:"amount"`
	RunningCents int64  `json:"running_cents"`
	Running      string `json:"running"`
}

type apiCategory struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
}

type apiView struct {
	From         string        `json:"from"`
	To           string        `json:"to"`
	ToMin        string        `json:"to_min"`
	FromMax      string        `json:"from_max"`
	Mode         string        `json:"mode"`
	Visible      int           `json:"visible"`
	BalanceCents int64         `json:"balance_cents"`
	Balance      string        `json:"balance"`
	Rows         []apiRow      `json:"rows"`
	ByCategory   []apiCategory `json:"by_category"`
	Focus        *int          `json:"focus,omitempty"`
	Error        string        `json:"error,omitempty"`
}

func apiViewOf(snap view.Snapshot) apiView {
	v := snap.State
	out := apiView{
		From:         snap.Range.Range.From.ISO(),
		To:           snap.Range.Range.To.ISO(),
		ToMin:        snap.Range.ToMin.ISO(),
		FromMax:      snap.Range.FromMax.ISO(),
		Mode:         string(v.Mode),
		Visible:      v.Len(),
		BalanceCents: v.BalanceCents,
		Balance:      v.Balance.Text,
		Rows:         make([]apiRow, 0, v.Len()),
		ByCategory:   make([]apiCategory, 0, len(v.ByCategory)),
	}
	for _, r := range v.Rows {
		out.Rows = append(out.Rows, apiRow{
			ID:           r.Entry.ID,
			Voucher:      r.Entry.VoucherRef,
			Date:         r.Entry.Date.ISO(),
			Category:     r.Entry.Category,
			Description:  r.Entry.Description,
			AmountCents:  r.Entry.Amount.Cents,
			Amount:       r.Amount.Text,
			RunningCents: r.RunningCents,
			Running:      r.Running.Text,
		})
	}
	for _, c := range v.ByCategory {
		out.ByCategory = append(out.ByCategory, apiCategory{Name: c.Name, AmountCents: c.Amount.Cents})
	}
	if snap.HasFocus {
		focus := snap.Focus
		out.Focus = &focus
	}
	if snap.LoadError != nil {
		out.Error = snap.LoadError.Error()
	}
	return out
}

// entryErrorMessage returns the user-facing text for a rejected entry and
// whether the rejection was a validation problem rather than a store failure.
func entryErrorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, core.ErrMissingAmount):
		return "Bitte Betrag eingeben (z. B. 12,34).", true
	case errors.Is(err, core.ErrInvalidAmount):
		return "Ungültiger Betrag.", true
	case errors.Is(err, core.ErrInvalidDate):
		return "Ungültiges Datum.", true
	case errors.Is(err, core.ErrEmptyCategory):
		return "Bitte Kategorie angeben.", true
	case errors.Is(err, core.ErrCategoryTooLong):
		return "Kategorie ist zu lang (max. 64 Zeichen).", true
	case errors.Is(err, core.ErrDescriptionTooLong):
		return "Beschreibung ist zu lang (max. 500 Zeichen).", true
	case errors.Is(err, core.ErrVoucherRefTooLong):
		return "Belegnummer ist zu lang (max. 32 Zeichen).", true
	default:
		return "Fehler beim Speichern.", false
	}
}
