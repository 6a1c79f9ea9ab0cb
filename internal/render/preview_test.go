package render

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexuszen/quotation-studio/internal/invoice"
)

func sampleInvoice() invoice.InvoiceData {
	return invoice.Default(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
}

func TestPreview_DefaultQuotation(t *testing.T) {
	html, err := Preview(sampleInvoice())
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	for _, want := range []string{
		"<title>Quotation #1567</title>",
		"@page { size: A4; margin: 0; }",
		"#1567",
		"05 Mar 2026",
		"NEXUSZEN SERVICES PRIVATE LIMITED",
		"Qiyam Business Solutions",
		"Complete User app ( Android &amp; Ios)",
		"Discount Applied: ₹ 500",
		"Discount Applied: ₹ 800",
		"Discount Applied: ₹ 1,600",
		"₹ 25,000",
		"₹ 10,400",
		"4 Units",
		"₹ 65,000",
		"-₹ 2,900",
		"₹ 62,100",
		"Final delivery and deployment",
		"Authorized Official",
		"&#43;91 8260397998",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("preview missing %q", want)
		}
	}
	if got := strings.Count(html, "Discount Applied"); got != 3 {
		t.Errorf("discount notes = %d, want 3", got)
	}
}

func TestPreview_Idempotent(t *testing.T) {
	data := sampleInvoice()
	first, err := Preview(data)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Preview(data)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("two renders of the same data differ")
	}
}

func TestPreview_NoDiscountRow(t *testing.T) {
	data := sampleInvoice()
	for i := range data.Items {
		data.Items[i].DiscountAmount = decimal.Zero
		data.Items[i].DiscountPercentage = decimal.Zero
	}
	html, err := Preview(data)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "Total Discount") || strings.Contains(html, "Discount Applied") {
		t.Fatalf("discount shown for an undiscounted quotation")
	}
	if !strings.Contains(html, `<span class="grand-total">₹ 65,000</span>`) {
		t.Fatalf("expected grand total ₹ 65,000")
	}
}

func TestPreview_NoItems(t *testing.T) {
	data := sampleInvoice()
	data.Items = nil
	html, err := Preview(data)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "0 Units") || !strings.Contains(html, `<span class="grand-total">₹ 0</span>`) {
		t.Fatalf("unexpected empty quotation render")
	}
}

func TestPreview_NegativeLine(t *testing.T) {
	data := sampleInvoice()
	data.Items = []invoice.InvoiceItem{{ID: "x", Description: "Refund", Quantity: 1, Price: decimal.NewFromInt(100), DiscountAmount: decimal.NewFromInt(150)}}
	html, err := Preview(data)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, `<td class="amount">-₹ 50</td>`) {
		t.Fatalf("negative net not rendered")
	}
}

func TestPreview_Images(t *testing.T) {
	tests := []struct {
		name      string
		logo      string
		signature string
		wantLogo  bool
		wantSign  bool
	}{
		{"none", "", "", false, false},
		{"data uris", "data:image/png;base64,AAAA", "data:image/jpeg;base64,BBBB", true, true},
		{"remote url rejected", "https://cdn.example.com/logo.png", "", false, false},
		{"script uri rejected", "javascript:alert(1)", "data:text/html;base64,PHNjcmlwdD4=", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := sampleInvoice()
			data.LogoURL = tt.logo
			data.SignatureURL = tt.signature
			html, err := Preview(data)
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.Contains(html, `<img class="logo" src="data:image/png;base64,AAAA"`); got != tt.wantLogo {
				t.Errorf("logo image = %v, want %v", got, tt.wantLogo)
			}
			if got := strings.Contains(html, "Upload Logo"); got == tt.wantLogo {
				t.Errorf("logo placeholder = %v, want %v", got, !tt.wantLogo)
			}
			if got := strings.Contains(html, `src="data:image/jpeg;base64,BBBB"`); got != tt.wantSign {
				t.Errorf("signature image = %v, want %v", got, tt.wantSign)
			}
			if got := strings.Contains(html, "Stamp &amp; Sign Here"); got == tt.wantSign {
				t.Errorf("signature placeholder = %v, want %v", got, !tt.wantSign)
			}
			if strings.Contains(html, "cdn.example.com") || strings.Contains(html, "javascript:") {
				t.Errorf("untrusted url leaked into the preview")
			}
		})
	}
}

func TestSheet_EscapesText(t *testing.T) {
	data := sampleInvoice()
	data.Company.Name = "<b>Acme</b>"
	data.Items[0].Description = `<script>alert("x")</script>`
	data.Terms = []string{"Pay < 30 days"}
	sheet, err := Sheet(data)
	if err != nil {
		t.Fatal(err)
	}
	s := string(sheet)
	if strings.Contains(s, "<script>") || strings.Contains(s, "<b>Acme") {
		t.Fatalf("user text rendered as markup")
	}
	for _, want := range []string{"&lt;b&gt;Acme&lt;/b&gt;", "&lt;script&gt;", "Pay &lt; 30 days"} {
		if !strings.Contains(s, want) {
			t.Errorf("sheet missing %q", want)
		}
	}
	if strings.Contains(s, "<style>") {
		t.Errorf("sheet fragment must not carry the stylesheet")
	}
}
