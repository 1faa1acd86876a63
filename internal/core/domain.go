package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// ISODateLayout is the storage and wire format of entry dates.
	ISODateLayout = "2006-01-02"

	// CategoryIncome and CategoryExpense are the two labels offered by the entry form.
	CategoryIncome  = "Einnahmen"
	CategoryExpense = "Ausgaben"
)

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Entry is one immutable ledger line as loaded from the store.
	Entry struct {
		ID          int64
		VoucherRef  string
		Date        Date   // zero when RawDate is not a valid calendar date
		RawDate     string // date text exactly as stored
		Category    string
		Description string
		Amount      Money
	}
)

var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrMissingAmount      = errors.New("missing amount")
	ErrEmptyCategory      = errors.New("empty category")
	ErrCategoryTooLong    = errors.New("category too long (max 64 characters)")
	ErrDescriptionTooLong = errors.New("description too long (max 500 characters)")
	ErrVoucherRefTooLong  = errors.New("voucher reference too long (max 32 characters)")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// DateOf drops the time component of t.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate accepts ISO dates (2024-01-31) and the dotted form used by the
// German locales (31.01.2024). A blank string yields an empty Date and no error.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range []string{ISODateLayout, "02.01.2006", "2.1.2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, ErrInvalidDate
}

// IsEmpty returns true if the date is zero. Optional dates use the zero value as "absent".
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}

// ISO renders the date as yyyy-mm-dd, or "" for an empty date.
func (d Date) ISO() string {
	if d.IsEmpty() {
		return ""
	}
	return d.Format(ISODateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Euros returns the euro value as a float64 for display purposes such as charts.
// Use cents for calculations.
func (m Money) Euros() float64 {
	return float64(m.Cents) / 100.0
}

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

// HasValidDate reports whether the stored date resolved to a calendar date.
func (e Entry) HasValidDate() bool {
	return !e.Date.IsEmpty()
}

// IsIncome classifies the entry, see IsIncome.
func (e Entry) IsIncome() bool {
	return IsIncome(e.Category, e.Amount.Cents)
}
