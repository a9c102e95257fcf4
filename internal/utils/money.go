package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const CurrencySymbol = "£"

var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// FormatGBP renders a fixed two-decimal currency string, e.g. "£75.00".
// Negative amounts keep the sign ahead of the symbol.
func FormatGBP(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + CurrencySymbol + amount.Neg().StringFixed(2)
	}
	return CurrencySymbol + amount.StringFixed(2)
}

// ParseAmount parses the legacy string amount format ("12", "12.5", "12.50").
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), CurrencySymbol))
	if !amountPattern.MatchString(raw) {
		return decimal.Zero, fmt.Errorf("invalid amount format: %q", raw)
	}
	return decimal.NewFromString(raw)
}

// WithinTolerance reports |a-b| <= 0.01.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(decimal.New(1, -2))
}
