package core

import "strings"

var (
	incomeTokens  = []string{"einnah", "income"}
	expenseTokens = []string{"ausgab", "expense"}

	incomeCodes  = map[string]bool{"+": true, "in": true, "ein": true}
	expenseCodes = map[string]bool{"-": true, "out": true, "aus": true}
)

// IsIncome infers income vs expense from a free-text category label.
//
// The label is matched case-insensitively: income tokens win over expense
// tokens, then the short codes are compared exactly. Labels that match no rule
// fall back to the sign of cents, zero counting as income.
func IsIncome(category string, cents int64) bool {
	label := strings.ToLower(strings.TrimSpace(category))

	for _, tok := range incomeTokens {
		if strings.Contains(label, tok) {
			return true
		}
	}
	for _, tok := range expenseTokens {
		if strings.Contains(label, tok) {
			return false
		}
	}

	if incomeCodes[label] {
		return true
	}
	if expenseCodes[label] {
		return false
	}
	return cents >= 0
}
