package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyPrefix is the display prefix for all storefront prices.
const CurrencyPrefix = "Rs. "

// Amount renders cents as a plain decimal string with two fraction
// digits, e.g. 123456 -> "1234.56".
func Amount(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}

// Display renders cents as the locale display string used by the
// storefront, e.g. 123456 -> "Rs. 1,234.56". Both Display and Amount
// derive from the same cents value so the two can never disagree.
func Display(cents int64) string {
	amount := Amount(cents)

	negative := strings.HasPrefix(amount, "-")
	if negative {
		amount = amount[1:]
	}

	whole, frac, _ := strings.Cut(amount, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)

	return CurrencyPrefix + b.String()
}
