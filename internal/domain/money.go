package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyPrefix is rendered in front of every display price.
const CurrencyPrefix = "NT$ "

// FormatPrice renders a price in cents as a grouped dollar amount, e.g. 298000 -> "NT$ 2,980".
// The fractional part is only shown when it is non-zero: 12345 -> "NT$ 123.45".
func FormatPrice(cents int64) string {
	sign := ""
	abs := uint64(cents)
	if cents < 0 {
		sign = "-"
		abs = -abs
	}
	p := message.NewPrinter(language.English)
	out := sign + CurrencyPrefix + p.Sprint(number.Decimal(abs/100))
	if frac := abs % 100; frac != 0 {
		out += strings.TrimRight(fmt.Sprintf(".%02d", frac), "0")
	}
	return out
}
