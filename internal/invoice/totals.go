package invoice

import "github.com/shopspring/decimal"

// Totals are derived from the items on every render and never stored.
type Totals struct {
	SubTotal      decimal.Decimal `json:"subTotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
}

// LineGross is price × quantity, unrounded.
func LineGross(item InvoiceItem) decimal.Decimal {
	return item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// LineDiscount applies the percentage and the flat amount together.
func LineDiscount(item InvoiceItem) decimal.Decimal {
	fromPercentage := LineGross(item).Mul(item.DiscountPercentage.Shift(-2))
	return fromPercentage.Add(item.DiscountAmount)
}

// LineNet may be negative when the discount exceeds the gross amount.
func LineNet(item InvoiceItem) decimal.Decimal {
	return LineGross(item).Sub(LineDiscount(item))
}

// ComputeTotals sums gross and discount over items.
func ComputeTotals(items []InvoiceItem) Totals {
	subTotal := decimal.Zero
	totalDiscount := decimal.Zero
	for _, item := range items {
		subTotal = subTotal.Add(LineGross(item))
		totalDiscount = totalDiscount.Add(LineDiscount(item))
	}
	return Totals{
		SubTotal:      subTotal,
		TotalDiscount: totalDiscount,
		GrandTotal:    subTotal.Sub(totalDiscount),
	}
}
