package models

import (
	"github.com/shopspring/decimal"
)

// CurrencyPrefix is prepended to every displayed amount
const CurrencyPrefix = "Rs."

var (
	maxPrice       = decimal.RequireFromString("999999.99")
	maxTotalAmount = decimal.RequireFromString("99999999.99")
	maxRating      = decimal.NewFromInt(5)
)

// FormatAmount renders an amount with two decimals and the currency prefix
func FormatAmount(d decimal.Decimal) string {
	return CurrencyPrefix + d.StringFixed(2)
}

// FormatNullAmount renders an optional amount, using "-" when absent
func FormatNullAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return FormatAmount(d.Decimal)
}

// validateMoney checks that d is non-negative, at most max and has no more
// than two decimal places
func validateMoney(field string, d decimal.Decimal, max decimal.Decimal) error {
	if d.IsNegative() {
		return ValidationError{Field: field, Message: "must not be negative"}
	}
	if d.GreaterThan(max) {
		return ValidationError{Field: field, Message: "must be at most " + max.StringFixed(2)}
	}
	if !d.Equal(d.Round(2)) {
		return ValidationError{Field: field, Message: "must have at most 2 decimal places"}
	}
	return nil
}
