package core

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewEntry is the raw input of the entry form before it becomes an Entry.
type NewEntry struct {
	VoucherRef  string `validate:"max=32"`
	Date        string
	Category    string `validate:"required,max=64"`
	Description string `validate:"max=500"`
	AmountText  string
}

// Normalize trims every field and applies the form defaults: today's date and
// the income category.
func (n NewEntry) Normalize(today Date) NewEntry {
	n.VoucherRef = strings.TrimSpace(n.VoucherRef)
	n.Date = strings.TrimSpace(n.Date)
	n.Category = strings.TrimSpace(n.Category)
	n.Description = strings.TrimSpace(n.Description)
	n.AmountText = strings.TrimSpace(n.AmountText)
	if n.Date == "" {
		n.Date = today.ISO()
	}
	if n.Category == "" {
		n.Category = CategoryIncome
	}
	return n
}

func (n NewEntry) Validate() error {
	if err := validate.Struct(n); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return err
		}
		switch fe := verrs[0]; fe.Field() {
		case "VoucherRef":
			return ErrVoucherRefTooLong
		case "Category":
			if fe.Tag() == "required" {
				return ErrEmptyCategory
			}
			return ErrCategoryTooLong
		case "Description":
			return ErrDescriptionTooLong
		default:
			return err
		}
	}
	return nil
}

// Build turns form input into an Entry ready for insertion (ID unset).
//
// An amount field with no digits is ErrMissingAmount, which is distinct from
// an explicit zero. Form amounts are magnitudes: a negative input is rejected
// and the sign is taken from the category, expenses stored negative.
func (n NewEntry) Build(today Date) (Entry, error) {
	n = n.Normalize(today)
	if err := n.Validate(); err != nil {
		return Entry{}, err
	}

	if !HasAmount(n.AmountText) {
		return Entry{}, ErrMissingAmount
	}
	cents, err := ParseToCents(n.AmountText)
	if err != nil {
		return Entry{}, err
	}
	if cents < 0 {
		return Entry{}, ErrInvalidAmount
	}

	date, err := ParseDate(n.Date)
	if err != nil {
		return Entry{}, err
	}

	if !IsIncome(n.Category, cents) {
		cents = -cents
	}

	return Entry{
		VoucherRef:  n.VoucherRef,
		Date:        date,
		RawDate:     date.ISO(),
		Category:    n.Category,
		Description: n.Description,
		Amount:      Money{Cents: cents},
	}, nil
}
