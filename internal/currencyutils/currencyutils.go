// Package currencyutils parses amounts typed by users and formats decimal
// amounts for display.
package currencyutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSymbol prefixes displayed amounts.
const DefaultSymbol = "$"

var (
	// ErrEmptyAmount is returned for blank input. Blank is never zero.
	ErrEmptyAmount = errors.New("amount is required")
	// ErrNegativeAmount is returned for amounts below zero; direction is
	// carried by the record kind, never by the sign.
	ErrNegativeAmount = errors.New("amount must not be negative")
)

var (
	currencyCodes   = regexp.MustCompile(`(?i)\b(usd|eur|chf|gbp|inr)\b`)
	currencySymbols = regexp.MustCompile(`[€$£¥₹\s']`)
)

// StandardizeAmount strips currency markers and thousands separators and
// normalizes a decimal comma, so "$1,234.50", "1.234,50 EUR" and "12,5" all
// become strings decimal.NewFromString accepts.
func StandardizeAmount(s string) string {
	s = currencyCodes.ReplaceAllString(s, "")
	s = currencySymbols.ReplaceAllString(s, "")

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		if strings.LastIndex(s, ".") < strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Contains(s, ","):
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return s
}

// ParseAmount parses form input into a non-negative decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(StandardizeAmount(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount '%s': %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

// FormatAmount renders amount with two decimals behind the symbol.
// Negative amounts keep their sign in front of the symbol: "-$3.50".
func FormatAmount(amount decimal.Decimal, symbol string) string {
	if amount.IsNegative() {
		return "-" + symbol + amount.Abs().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}

// Percent returns part as a percentage of total rounded to one decimal,
// or zero when total is zero.
func Percent(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
}
