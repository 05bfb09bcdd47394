package util

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// currencyFormat describes how one currency is displayed.
type currencyFormat struct {
	symbol   string
	decimals int
}

var currencies = map[string]currencyFormat{
	"JPY": {symbol: "¥", decimals: 0},
	"USD": {symbol: "$", decimals: 2},
	"EUR": {symbol: "€", decimals: 2},
	"GBP": {symbol: "£", decimals: 2},
}

var printer = message.NewPrinter(language.English)

// FormatCurrency formats v with thousands separators and the currency symbol.
// Unknown codes are printed as a suffix with two decimals.
// Examples: (208333.3, "JPY") -> "¥208,333", (-1234.5, "USD") -> "-$1,234.50"
func FormatCurrency(v float64, code string) string {
	code = strings.ToUpper(code)
	cf, ok := currencies[code]
	if !ok {
		return printer.Sprintf("%.2f %s", v, code)
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + cf.symbol + printer.Sprintf(fmt.Sprintf("%%.%df", cf.decimals), v)
}

// FormatNumber formats an int64 with K/M suffix for readability.
// Examples: 500 -> "500", 1500 -> "1.5K", 1500000 -> "1.5M"
func FormatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// FormatPercent formats a percentage with one decimal: 80.5 -> "80.5%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatMonths formats a month count with one decimal, or "n/a" when not finite.
func FormatMonths(m float64) string {
	if math.IsInf(m, 0) || math.IsNaN(m) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f months", m)
}
