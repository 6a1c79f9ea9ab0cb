package invoice

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxExponent bounds the decimal exponent of any stored amount. Add and
// Round rescale both operands to a common exponent, which costs 10^|exp|.
const MaxExponent = 32

var ErrAmountOutOfRange = errors.New("amount out of range")

// AmountInRange reports whether d can take part in totals and formatting.
func AmountInRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= -MaxExponent && exp <= MaxExponent
}

// CheckAmounts rejects documents carrying an amount outside MaxExponent.
func (d InvoiceData) CheckAmounts() error {
	for i, item := range d.Items {
		for _, f := range []struct {
			name  string
			value decimal.Decimal
		}{
			{"price", item.Price},
			{"discountPercentage", item.DiscountPercentage},
			{"discountAmount", item.DiscountAmount},
		} {
			if !AmountInRange(f.value) {
				return fmt.Errorf("%w: items[%d].%s", ErrAmountOutOfRange, i, f.name)
			}
		}
	}
	return nil
}
