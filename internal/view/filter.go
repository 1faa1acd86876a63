// Package view derives the visible ledger from the stored entries: filtering
// by date range and category mode, ordering, balances and the tail position.
package view

import (
	"strings"

	"kassenbuch/internal/core"
)

// Mode is the category filter dimension.
type Mode string

const (
	ModeAll     Mode = "all"
	ModeIncome  Mode = "income"
	ModeExpense Mode = "expense"
)

// Modes lists the selectable modes in display order.
var Modes = []Mode{ModeAll, ModeIncome, ModeExpense}

// ParseMode accepts the mode keys and the German labels shown in the UI.
// Anything unrecognized is ModeAll.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "einnahmen":
		return ModeIncome
	case "expense", "ausgaben":
		return ModeExpense
	default:
		return ModeAll
	}
}

// Label is the German display name of the mode.
func (m Mode) Label() string {
	switch m.normalized() {
	case ModeIncome:
		return "Einnahmen"
	case ModeExpense:
		return "Ausgaben"
	default:
		return "Alle"
	}
}

func (m Mode) normalized() Mode {
	switch m {
	case ModeIncome, ModeExpense:
		return m
	default:
		return ModeAll
	}
}

// Includes decides whether e is visible under r and m. Entries whose stored
// date did not resolve to a calendar date are never visible.
func Includes(e core.Entry, r core.DateRange, m Mode) bool {
	if !e.HasValidDate() || !r.Contains(e.Date) {
		return false
	}
	switch m.normalized() {
	case ModeIncome:
		return e.IsIncome()
	case ModeExpense:
		return !e.IsIncome()
	default:
		return true
	}
}
