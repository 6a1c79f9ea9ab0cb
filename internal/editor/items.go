package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nexuszen/quotation-studio/internal/invoice"
)

// ItemField identifies one editable column of a line item.
type ItemField int

const (
	ItemDescription ItemField = iota + 1
	ItemQuantity
	ItemPrice
	ItemDiscountPercentage
	ItemDiscountAmount
	ItemSACCode
)

var itemFieldNames = map[ItemField]string{
	ItemDescription:        "description",
	ItemQuantity:           "quantity",
	ItemPrice:              "price",
	ItemDiscountPercentage: "discountPercentage",
	ItemDiscountAmount:     "discountAmount",
	ItemSACCode:            "sacCode",
}

// ParseItemField maps a column name such as "discountAmount" to an ItemField.
func ParseItemField(name string) (ItemField, error) {
	for f, n := range itemFieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: item.%s", ErrUnknownField, name)
}

func (f ItemField) String() string {
	if n, ok := itemFieldNames[f]; ok {
		return n
	}
	return fmt.Sprintf("ItemField(%d)", int(f))
}

// SetItemField replaces one column of the item at index. Numeric columns
// take whatever the user typed; text that does not parse becomes zero.
func SetItemField(data invoice.InvoiceData, index int, f ItemField, raw string) (invoice.InvoiceData, error) {
	if index < 0 || index >= len(data.Items) {
		return data, fmt.Errorf("%w: %d", ErrItemIndex, index)
	}
	item := data.Items[index]

	switch f {
	case ItemDescription:
		item.Description = raw
	case ItemSACCode:
		item.SACCode = raw
	case ItemQuantity:
		item.Quantity = coerceInt(raw)
	case ItemPrice:
		item.Price = coerceDecimal(raw)
	case ItemDiscountPercentage:
		item.DiscountPercentage = coerceDecimal(raw)
	case ItemDiscountAmount:
		item.DiscountAmount = coerceDecimal(raw)
	default:
		return data, fmt.Errorf("%w: %s", ErrUnknownField, f)
	}

	items := make([]invoice.InvoiceItem, len(data.Items))
	copy(items, data.Items)
	items[index] = item

	next := data
	next.Items = items
	return next, nil
}

// AppendItem adds an empty row with the given id at the end.
func AppendItem(data invoice.InvoiceData, id string) invoice.InvoiceData {
	items := make([]invoice.InvoiceItem, len(data.Items), len(data.Items)+1)
	copy(items, data.Items)
	items = append(items, invoice.InvoiceItem{ID: id})

	next := data
	next.Items = items
	return next
}

// RemoveItemAt drops the row at index; later rows move up by one.
func RemoveItemAt(data invoice.InvoiceData, index int) (invoice.InvoiceData, error) {
	if index < 0 || index >= len(data.Items) {
		return data, fmt.Errorf("%w: %d", ErrItemIndex, index)
	}
	items := make([]invoice.InvoiceItem, 0, len(data.Items)-1)
	items = append(items, data.Items[:index]...)
	items = append(items, data.Items[index+1:]...)

	next := data
	next.Items = items
	return next, nil
}

// coerceInt accepts a leading integer ("12", "12.7", "3 units") and falls
// back to zero, like a browser number input read with parseInt.
func coerceInt(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// coerceDecimal takes the leading decimal literal ("12abc", "4,000",
// "1.5e3 units") like parseFloat. Anything without one, or outside
// invoice.MaxExponent, becomes zero.
func coerceDecimal(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	var b strings.Builder
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		if s[end] == '-' {
			b.WriteByte('-')
		}
		end++
	}
	start := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	intPart := s[start:end]
	fracPart := ""
	if end < len(s) && s[end] == '.' {
		end++
		frac := end
		for end < len(s) && isDigit(s[end]) {
			end++
		}
		fracPart = s[frac:end]
	}
	if intPart == "" && fracPart == "" {
		return decimal.Zero
	}
	if intPart == "" {
		intPart = "0"
	}
	b.WriteString(intPart)
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '-' || s[exp] == '+') {
			exp++
		}
		digits := exp
		for exp < len(s) && isDigit(s[exp]) {
			exp++
		}
		if exp > digits {
			b.WriteString(s[end:exp])
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil || !invoice.AmountInRange(d) {
		return decimal.Zero
	}
	return d
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
