package view

import (
	"sort"

	"kassenbuch/internal/core"
)

// Row is one visible entry with its rendered cells.
type Row struct {
	Entry        core.Entry
	Date         string
	Amount       core.Display
	RunningCents int64
	Running      core.Display
}

// ViewState is the result of one recomputation. It is never mutated after
// Recompute returns; callers replace it wholesale.
type ViewState struct {
	Range        core.DateRange
	Mode         Mode
	Rows         []Row
	BalanceCents int64
	Balance      core.Display
	ByCategory   []core.CategoryAmount
}

// Len returns the number of visible rows.
func (v ViewState) Len() int { return len(v.Rows) }

// IndexOf returns the position of the entry with the given id, or -1.
func (v ViewState) IndexOf(id int64) int {
	for i, row := range v.Rows {
		if row.Entry.ID == id {
			return i
		}
	}
	return -1
}

// Aggregator renders amounts with a fixed locale and currency.
type Aggregator struct {
	Locale   core.Locale
	Currency string
}

// NewAggregator resolves tag and falls back to the default locale.
func NewAggregator(tag, currency string) Aggregator {
	return Aggregator{Locale: core.ResolveLocale(tag), Currency: currency}
}

// Recompute filters entries through Includes, orders the survivors by
// (date, id) and sums the balance: signed for ModeAll, absolute values for
// ModeIncome and ModeExpense. The input slice is not modified.
func (a Aggregator) Recompute(entries []core.Entry, r core.DateRange, m Mode) ViewState {
	m = m.normalized()

	visible := make([]core.Entry, 0, len(entries))
	for _, e := range entries {
		if Includes(e, r, m) {
			visible = append(visible, e)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		di, dj := visible[i].Date, visible[j].Date
		if !di.Equal(dj.Time) {
			return di.Before(dj)
		}
		return visible[i].ID < visible[j].ID
	})

	rows := make([]Row, len(visible))
	var balance int64
	for i, e := range visible {
		balance += contribution(e, m)
		rows[i] = Row{
			Entry:        e,
			Date:         a.Locale.FormatDate(e.Date),
			Amount:       core.FormatSignedCurrency(e.Amount.Cents, a.Locale, a.Currency),
			RunningCents: balance,
			Running:      core.FormatSignedCurrency(balance, a.Locale, a.Currency),
		}
	}

	return ViewState{
		Range:        r,
		Mode:         m,
		Rows:         rows,
		BalanceCents: balance,
		Balance:      core.FormatSignedCurrency(balance, a.Locale, a.Currency),
		ByCategory:   core.SummarizeByCategory(visible),
	}
}

func contribution(e core.Entry, m Mode) int64 {
	if m == ModeAll {
		return e.Amount.Cents
	}
	return e.Amount.Abs().Cents
}
