// Package core holds the pure ledger domain: raw entities, normalization,
// filtering, aggregation, pagination, and amount formatting.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount renders an amount for display in its currency. Dinar amounts
// show no fraction (the dinar has no circulating subunit here), dollars show
// two decimals, anything else falls back to a trimmed decimal plus the code.
//
// Examples:
//
//	FormatAmount(12500, "IQD") -> "12,500 IQD"
//	FormatAmount(50, "USD")    -> "$50.00"
//	FormatAmount(7.5, "eur")   -> "7.5 EUR"
func FormatAmount(amount float64, currency string) string {
	switch BucketCurrency(currency) {
	case CurrencyIQD:
		return groupThousands(fmt.Sprintf("%.0f", amount)) + " " + CurrencyIQD
	case CurrencyUSD:
		neg := ""
		v := amount
		if v < 0 {
			neg = "-"
			v = -v
		}
		return neg + "$" + groupThousands(fmt.Sprintf("%.2f", v))
	default:
		return FormatDecimal(amount) + " " + BucketCurrency(currency)
	}
}

// groupThousands inserts comma separators into the integer part of a plain
// decimal string ("1234567.89" -> "1,234,567.89").
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	out := b.String() + fracPart
	if neg {
		return "-" + out
	}
	return out
}

// ParseDecimal parses a user-entered decimal accepting both dot and comma
// separators. Negative values pass through unchanged; the core does not
// enforce amount sign.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrValidation)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q", ErrValidation, s)
	}
	return v, nil
}
