// Package aggregate computes dashboard totals from fetched records.
//
// Sums are exact decimals. A record whose amount is missing or non-numeric
// contributes zero and is counted in Summary.Malformed so the tolerance is
// visible to callers instead of silently hiding data.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/currencyutils"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

// CategoryTotal is the summed amount of the expenses carrying one label.
type CategoryTotal struct {
	Label  string          `json:"label" yaml:"label"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
	Count  int             `json:"count" yaml:"count"`
}

// Share returns the percentage of total this category represents.
func (c CategoryTotal) Share(total decimal.Decimal) decimal.Decimal {
	return currencyutils.Percent(c.Amount, total)
}

// Summary is the result of Summarize.
type Summary struct {
	TotalExpense decimal.Decimal `json:"total_expense" yaml:"total_expense"`
	TotalIncome  decimal.Decimal `json:"total_income" yaml:"total_income"`
	// Balance is income minus expense; negative means a deficit.
	Balance decimal.Decimal `json:"balance" yaml:"balance"`
	// Categories are ordered by first occurrence in the expense input.
	Categories []CategoryTotal `json:"categories" yaml:"categories"`
	Malformed  int             `json:"malformed" yaml:"malformed"`
}

// Summarize totals expenses and income and groups expenses by category. It
// is a pure function of its inputs.
func Summarize(expenses, income []models.TransactionRecord) Summary {
	s := Summary{
		TotalExpense: decimal.Zero,
		TotalIncome:  decimal.Zero,
		Categories:   []CategoryTotal{},
	}

	index := make(map[string]int)
	for _, rec := range expenses {
		amount := s.amountOf(rec)
		s.TotalExpense = s.TotalExpense.Add(amount)

		label := rec.LabelOrDefault()
		i, ok := index[label]
		if !ok {
			i = len(s.Categories)
			index[label] = i
			s.Categories = append(s.Categories, CategoryTotal{Label: label, Amount: decimal.Zero})
		}
		s.Categories[i].Amount = s.Categories[i].Amount.Add(amount)
		s.Categories[i].Count++
	}

	for _, rec := range income {
		s.TotalIncome = s.TotalIncome.Add(s.amountOf(rec))
	}

	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

func (s *Summary) amountOf(rec models.TransactionRecord) decimal.Decimal {
	if !rec.Amount.Valid {
		s.Malformed++
		return decimal.Zero
	}
	return rec.Amount.Value
}

// Deficit reports whether expenses exceed income.
func (s Summary) Deficit() bool {
	return s.Balance.IsNegative()
}

// CategoryMap returns the category totals keyed by label.
func (s Summary) CategoryMap() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(s.Categories))
	for _, c := range s.Categories {
		m[c.Label] = c.Amount
	}
	return m
}

// Top returns at most n categories, largest first. Ties keep
// first-occurrence order.
func (s Summary) Top(n int) []CategoryTotal {
	out := make([]CategoryTotal, len(s.Categories))
	copy(out, s.Categories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
