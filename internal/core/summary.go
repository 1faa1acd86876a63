package core

import "sort"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// SummarizeByCategory totals signed amounts per category label, largest
// magnitude first and ties by name.
func SummarizeByCategory(entries []Entry) []CategoryAmount {
	totals := make(map[string]int64)
	for _, e := range entries {
		totals[e.Category] += e.Amount.Cents
	}
	out := make([]CategoryAmount, 0, len(totals))
	for name, cents := range totals {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].Amount.Abs().Cents, out[j].Amount.Abs().Cents
		if ai != aj {
			return ai > aj
		}
		return out[i].Name < out[j].Name
	})
	return out
}
