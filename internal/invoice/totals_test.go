package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineAmounts(t *testing.T) {
	tests := []struct {
		name         string
		item         InvoiceItem
		wantGross    string
		wantDiscount string
		wantNet      string
	}{
		{"no discount", InvoiceItem{Quantity: 2, Price: dec("12500")}, "25000", "0", "25000"},
		{"percentage only", InvoiceItem{Quantity: 2, Price: dec("4000"), DiscountPercentage: dec("10")}, "8000", "800", "7200"},
		{"flat only", InvoiceItem{Quantity: 2, Price: dec("10000"), DiscountAmount: dec("500")}, "20000", "500", "19500"},
		{"both channels add", InvoiceItem{Quantity: 1, Price: dec("100"), DiscountPercentage: dec("10"), DiscountAmount: dec("5")}, "100", "15", "85"},
		{"negative net is kept", InvoiceItem{Quantity: 1, Price: dec("100"), DiscountAmount: dec("150")}, "100", "150", "-50"},
		{"fractional price", InvoiceItem{Quantity: 3, Price: dec("0.1")}, "0.3", "0", "0.3"},
		{"negative quantity", InvoiceItem{Quantity: -2, Price: dec("50"), DiscountPercentage: dec("10")}, "-100", "-10", "-90"},
		{"zero item", InvoiceItem{}, "0", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineGross(tt.item); !got.Equal(dec(tt.wantGross)) {
				t.Errorf("LineGross() = %s, want %s", got, tt.wantGross)
			}
			if got := LineDiscount(tt.item); !got.Equal(dec(tt.wantDiscount)) {
				t.Errorf("LineDiscount() = %s, want %s", got, tt.wantDiscount)
			}
			if got := LineNet(tt.item); !got.Equal(dec(tt.wantNet)) {
				t.Errorf("LineNet() = %s, want %s", got, tt.wantNet)
			}
		})
	}
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)
	if !totals.SubTotal.IsZero() || !totals.TotalDiscount.IsZero() || !totals.GrandTotal.IsZero() {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestComputeTotals_DefaultFixture(t *testing.T) {
	data := Default(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
	totals := ComputeTotals(data.Items)

	if !totals.SubTotal.Equal(dec("65000")) {
		t.Errorf("SubTotal = %s, want 65000", totals.SubTotal)
	}
	if !totals.TotalDiscount.Equal(dec("2900")) {
		t.Errorf("TotalDiscount = %s, want 2900", totals.TotalDiscount)
	}
	if !totals.GrandTotal.Equal(dec("62100")) {
		t.Errorf("GrandTotal = %s, want 62100", totals.GrandTotal)
	}
}

func TestComputeTotals_MatchesSumOfNets(t *testing.T) {
	items := []InvoiceItem{
		{Quantity: 3, Price: dec("999.99"), DiscountPercentage: dec("12.5"), DiscountAmount: dec("3.33")},
		{Quantity: 1, Price: dec("100"), DiscountAmount: dec("150")},
		{Quantity: -4, Price: dec("17.01"), DiscountPercentage: dec("120")},
		{Quantity: 7, Price: dec("0.07"), DiscountPercentage: dec("33.333")},
	}
	totals := ComputeTotals(items)

	nets := decimal.Zero
	for _, item := range items {
		nets = nets.Add(LineNet(item))
	}
	if !totals.GrandTotal.Equal(nets) {
		t.Fatalf("GrandTotal = %s, sum of nets = %s", totals.GrandTotal, nets)
	}
	if !totals.GrandTotal.Equal(totals.SubTotal.Sub(totals.TotalDiscount)) {
		t.Fatalf("GrandTotal %s != SubTotal %s - TotalDiscount %s", totals.GrandTotal, totals.SubTotal, totals.TotalDiscount)
	}
}

func TestDefault(t *testing.T) {
	data := Default(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))
	if data.Date != "05 Mar 2026" {
		t.Errorf("Date = %q, want 05 Mar 2026", data.Date)
	}
	if len(data.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(data.Items))
	}
	if len(data.Terms) != 3 {
		t.Errorf("expected 3 terms, got %d", len(data.Terms))
	}
	if data.LogoURL != "" || data.SignatureURL != "" {
		t.Errorf("expected no images by default")
	}
}

func TestClone_IsIndependent(t *testing.T) {
	orig := Default(time.Now())
	clone := orig.Clone()
	clone.Items[0].Description = "changed"
	clone.Terms[0] = "changed"
	if orig.Items[0].Description == "changed" || orig.Terms[0] == "changed" {
		t.Fatalf("clone shares slices with the original")
	}
}
