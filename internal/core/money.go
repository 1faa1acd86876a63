// Package core provides the ledger domain types and the pure rules applied to them.
//
// This file converts between locale-formatted amount text and exact cents.
package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SignClass is the display classification of a signed amount.
type SignClass string

const (
	SignPositive SignClass = "positive"
	SignNegative SignClass = "negative"
	SignNeutral  SignClass = "neutral"
)

// Display is a rendered currency amount plus its colour class.
type Display struct {
	Text  string
	Class SignClass
}

// ParseToCents converts amount text to cents.
//
// Either '.' or ',' may be the decimal separator: whichever appears last is
// taken as decimal and the other is dropped as grouping. A separator that
// occurs more than once with no other separator present is grouping only.
// Everything except digits, separators and a leading '-' is ignored, so
// "€ 1.234,56" parses. Rounding is half-up on the absolute value.
//
// Text with no digits yields 0 and no error; only values that do not fit in
// int64 cents fail with ErrInvalidAmount.
//
// Examples:
//
//	ParseToCents("1.234,56") -> 123456
//	ParseToCents("1,234.56") -> 123456
//	ParseToCents("-0,005")   -> -1
//	ParseToCents("")         -> 0
func ParseToCents(text string) (int64, error) {
	intPart, fracPart, negative, ok := splitAmount(text)
	if !ok {
		return 0, nil
	}
	if intPart == "" {
		intPart = "0"
	}
	if fracPart == "" {
		fracPart = "0"
	}

	d, err := decimal.NewFromString(intPart + "." + fracPart)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Round is half away from zero, which is half-up on the magnitude.
	cents := d.Shift(2).Round(0).BigInt()
	if negative {
		cents.Neg(cents)
	}
	if !cents.IsInt64() {
		return 0, ErrInvalidAmount
	}
	return cents.Int64(), nil
}

// HasAmount reports whether text contains at least one digit, i.e. whether
// ParseToCents would see a committed value rather than falling back to 0.
func HasAmount(text string) bool {
	return strings.ContainsFunc(text, func(r rune) bool { return r >= '0' && r <= '9' })
}

// splitAmount strips noise and resolves the decimal separator. ok is false when
// no digit is present.
func splitAmount(text string) (intPart, fracPart string, negative, ok bool) {
	text = strings.TrimSpace(text)
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			negative = true
		}
	}
	clean := b.String()
	if !HasAmount(clean) {
		return "", "", false, false
	}

	lastDot := strings.LastIndexByte(clean, '.')
	lastComma := strings.LastIndexByte(clean, ',')
	var decimalSep, groupSep byte
	switch {
	case lastDot > lastComma:
		decimalSep, groupSep = '.', ','
	case lastComma > lastDot:
		decimalSep, groupSep = ',', '.'
	default:
		return clean, "", negative, true
	}

	clean = strings.ReplaceAll(clean, string(groupSep), "")
	if strings.Count(clean, string(decimalSep)) > 1 {
		// "1.234.567" with no other separator: grouping only.
		return strings.ReplaceAll(clean, string(decimalSep), ""), "", negative, true
	}
	intPart, fracPart, _ = strings.Cut(clean, string(decimalSep))
	return intPart, fracPart, negative, true
}

// FormatCents renders cents with exactly two fractional digits and the
// locale's grouping, e.g. -123456 -> "-1.234,56" for de-AT.
func FormatCents(cents int64, loc Locale) string {
	negative := cents < 0
	abs := uint64(cents)
	if negative {
		abs = uint64(-(cents + 1)) + 1
	}
	units := strconv.FormatUint(abs/100, 10)
	frac := abs % 100

	decimalSep, groupSep := loc.Decimal, loc.Group
	if decimalSep == "" {
		decimalSep = ","
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range units {
		if i > 0 && (len(units)-i)%3 == 0 {
			b.WriteString(groupSep)
		}
		b.WriteRune(r)
	}
	b.WriteString(decimalSep)
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatUint(frac, 10))
	return b.String()
}

// FormatSignedCurrency renders cents with a currency suffix and classifies the
// sign for colouring.
func FormatSignedCurrency(cents int64, loc Locale, currency string) Display {
	text := FormatCents(cents, loc)
	if currency != "" {
		text += " " + currency
	}
	return Display{Text: text, Class: ClassifySign(cents)}
}

// ClassifySign maps the sign of cents to its display class.
func ClassifySign(cents int64) SignClass {
	switch {
	case cents > 0:
		return SignPositive
	case cents < 0:
		return SignNegative
	default:
		return SignNeutral
	}
}

// PlainAmount renders cents as an ungrouped decimal with a '.' separator,
// e.g. -123456 -> "-1234.56", for machine consumers such as spreadsheets.
func PlainAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
