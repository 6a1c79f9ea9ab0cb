package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is followed by a single space in every formatted amount.
const CurrencySymbol = "₹"

// FormatCurrency renders v as whole rupees with Indian digit grouping,
// e.g. "₹ 12,500" or "₹ 1,23,45,678". Rounding happens here and nowhere
// else (half away from zero). Negative values keep a leading minus:
// "-₹ 50".
func FormatCurrency(v decimal.Decimal) string {
	rounded := v.Round(0)
	digits := rounded.Abs().String()

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(CurrencySymbol)
	b.WriteByte(' ')
	b.WriteString(groupIndian(digits))
	return b.String()
}

// groupIndian places a comma before the last three digits and then every
// two digits further left.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
