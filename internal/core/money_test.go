package core

import (
	"math"
	"testing"
)

func TestParseToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
	}{
		{"1", 100},
		{"1.0", 100},
		{"1.23", 123},
		{"1,23", 123},
		{"0.01", 1},
		{"1.005", 101}, // half-up rounding
		{"1.004", 100},
		{"-1.005", -101}, // half-up on the magnitude
		{" 2.50 ", 250},
		{"1.234,56", 123456},
		{"1,234.56", 123456},
		{"1’234.56", 123456},
		{"€ 1.234,56", 123456},
		{"-1.234,56", -123456},
		{"1.234.567", 123456700},
		{"1,234,567", 123456700},
		{",5", 50},
		{"5,", 500},
		{"EUR -7,5", -750},
		{"", 0},
		{"abc", 0},
		{"-", 0},
		{"-0,00", 0},
	}
	for _, tc := range cases {
		got, err := ParseToCents(tc.in)
		if err != nil || got != tc.out {
			t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
		}
	}
}

func TestParseToCentsOverflow(t *testing.T) {
	if _, err := ParseToCents("99999999999999999999999"); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestFormatCents(t *testing.T) {
	de := ResolveLocale("de-AT")
	en := ResolveLocale("en-US")
	ch := ResolveLocale("de-CH")
	cases := []struct {
		cents int64
		loc   Locale
		out   string
	}{
		{0, de, "0,00"},
		{5, de, "0,05"},
		{-5, de, "-0,05"},
		{123456, de, "1.234,56"},
		{-123456789, de, "-1.234.567,89"},
		{123456, en, "1,234.56"},
		{100000, en, "1,000.00"},
		{123456, ch, "1’234.56"},
	}
	for _, tc := range cases {
		if got := FormatCents(tc.cents, tc.loc); got != tc.out {
			t.Fatalf("FormatCents(%d, %s) = %q, want %q", tc.cents, tc.loc, got, tc.out)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 99, 100, -100, 123456, -987654321, 1 << 40, math.MaxInt64, math.MinInt64}
	for _, tag := range []string{"de-AT", "de-DE", "de-CH", "en-US", "en-GB"} {
		loc := ResolveLocale(tag)
		for _, c := range values {
			text := FormatCents(c, loc)
			got, err := ParseToCents(text)
			if err != nil || got != c {
				t.Fatalf("%s: %d -> %q -> %d (err=%v)", tag, c, text, got, err)
			}
		}
	}
}

func TestFormatSignedCurrency(t *testing.T) {
	de := ResolveLocale("de-AT")
	cases := []struct {
		cents int64
		text  string
		class SignClass
	}{
		{500, "5,00 €", SignPositive},
		{-500, "-5,00 €", SignNegative},
		{0, "0,00 €", SignNeutral},
	}
	for _, tc := range cases {
		got := FormatSignedCurrency(tc.cents, de, "€")
		if got.Text != tc.text || got.Class != tc.class {
			t.Fatalf("FormatSignedCurrency(%d) = %+v, want %q/%s", tc.cents, got, tc.text, tc.class)
		}
	}
}

func TestHasAmount(t *testing.T) {
	if HasAmount("") || HasAmount(" , ") || HasAmount("-") {
		t.Fatalf("expected no amount")
	}
	if !HasAmount("0") || !HasAmount("0,00") {
		t.Fatalf("explicit zero is an amount")
	}
}

func TestPlainAmount(t *testing.T) {
	cases := map[int64]string{0: "0.00", 5: "0.05", -5: "-0.05", 123456: "1234.56", -100: "-1.00"}
	for cents, want := range cases {
		if got := PlainAmount(cents); got != want {
			t.Fatalf("PlainAmount(%d) = %q, want %q", cents, got, want)
		}
	}
}
