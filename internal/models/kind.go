// Package models provides the data structures shared by the client packages.
package models

import (
	"fmt"
	"strings"
)

// Kind tags a TransactionRecord as an expense or an income entry.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// ParseKind accepts "expense(s)" or "income(s)" in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense", "expenses":
		return KindExpense, nil
	case "income", "incomes":
		return KindIncome, nil
	default:
		return "", fmt.Errorf("unknown record kind: %q", s)
	}
}

func (k Kind) String() string { return string(k) }

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// LabelField is the wire name of the label: "category" for expenses and
// "source" for income.
func (k Kind) LabelField() string {
	if k == KindIncome {
		return "source"
	}
	return "category"
}

// Path is the collection endpoint for the kind.
func (k Kind) Path() string {
	if k == KindIncome {
		return "/api/income/"
	}
	return "/api/expenses/"
}

// ItemPath is the endpoint for a single record of the kind.
func (k Kind) ItemPath(id string) string {
	return k.Path() + id + "/"
}

// Title is the capitalized singular name used in user-facing messages.
func (k Kind) Title() string {
	if k == KindIncome {
		return "Income"
	}
	return "Expense"
}
