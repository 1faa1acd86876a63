package core

import (
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2024-01-05", NewDate(2024, 1, 5), true},
		{"05.01.2024", NewDate(2024, 1, 5), true},
		{"5.1.2024", NewDate(2024, 1, 5), true},
		{"", Date{}, true},
		{"2024-02-30", Date{}, false},
		{"gestern", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("%q: unexpected err=%v", tc.in, err)
		}
		if !got.Equal(tc.want.Time) {
			t.Fatalf("%q: got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMoneyAbs(t *testing.T) {
	if (Money{Cents: -5}).Abs().Cents != 5 || (Money{Cents: 5}).Abs().Cents != 5 {
		t.Fatalf("unexpected Abs")
	}
}

func TestLocaleFormatDate(t *testing.T) {
	d := NewDate(2024, 1, 5)
	if got := ResolveLocale("de-AT").FormatDate(d); got != "05.01.2024" {
		t.Fatalf("de-AT date = %q", got)
	}
	if got := ResolveLocale("en").FormatDate(d); got != "2024-01-05" {
		t.Fatalf("en date = %q", got)
	}
	if got := ResolveLocale("de").FormatDate(Date{}); got != "" {
		t.Fatalf("empty date = %q", got)
	}
}

func TestResolveLocaleFallback(t *testing.T) {
	for _, tag := range []string{"", "xx-invalid-!!", "fr-FR"} {
		loc := ResolveLocale(tag)
		if loc.Decimal != "," || loc.Group != "." {
			t.Fatalf("%q: expected German fallback, got %+v", tag, loc)
		}
	}
	if loc := ResolveLocale("en_US"); loc.Decimal != "." {
		t.Fatalf("en_US: expected English conventions, got %+v", loc)
	}
}
