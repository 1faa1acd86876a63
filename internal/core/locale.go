package core

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used whenever a locale tag is missing or unsupported.
const DefaultLocale = "de-AT"

// Locale carries the number and date conventions used to render amounts.
type Locale struct {
	Tag        language.Tag
	Group      string
	Decimal    string
	DateLayout string
}

var (
	germanLocale  = Locale{Group: ".", Decimal: ",", DateLayout: "02.01.2006"}
	swissLocale   = Locale{Group: "’", Decimal: ".", DateLayout: "02.01.2006"}
	englishLocale = Locale{Group: ",", Decimal: ".", DateLayout: ISODateLayout}
)

// ResolveLocale maps a BCP 47 tag such as "de-AT" or "en_US" to its number
// conventions. Unknown or malformed tags fall back to DefaultLocale.
func ResolveLocale(tag string) Locale {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	t, err := language.Parse(tag)
	if err != nil || tag == "" {
		t = language.MustParse(DefaultLocale)
	}

	base, _ := t.Base()
	region, _ := t.Region()

	var loc Locale
	switch base.String() {
	case "de":
		if region.String() == "CH" || region.String() == "LI" {
			loc = swissLocale
		} else {
			loc = germanLocale
		}
	case "en":
		loc = englishLocale
	default:
		return ResolveLocale(DefaultLocale)
	}
	loc.Tag = t
	return loc
}

// String returns the canonical tag.
func (l Locale) String() string {
	return l.Tag.String()
}

// FormatDate renders d in the locale's date layout; empty dates render as "".
func (l Locale) FormatDate(d Date) string {
	if d.IsEmpty() {
		return ""
	}
	layout := l.DateLayout
	if layout == "" {
		layout = ISODateLayout
	}
	return d.Format(layout)
}
