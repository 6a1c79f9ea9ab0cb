package editor

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexuszen/quotation-studio/internal/invoice"
)

func sampleInvoice() invoice.InvoiceData {
	return invoice.Default(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
}

func TestParseField(t *testing.T) {
	tests := []struct {
		path    string
		want    Field
		wantErr bool
	}{
		{"invoiceNo", FieldInvoiceNo, false},
		{"date", FieldDate, false},
		{"notes", FieldNotes, false},
		{"client.companyName", FieldClientCompanyName, false},
		{"client.location", FieldClientLocation, false},
		{"company.website", FieldCompanyWebsite, false},
		{"client", 0, true},
		{"client.unknown", 0, true},
		{"items.0.price", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParseField(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownField) {
					t.Fatalf("ParseField(%q) error = %v, want ErrUnknownField", tt.path, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParseField(%q) = %v, %v; want %v", tt.path, got, err, tt.want)
			}
			if got.String() != tt.path {
				t.Errorf("String() = %q, want %q", got.String(), tt.path)
			}
		})
	}
}

func TestSetField_PreservesSiblings(t *testing.T) {
	data := sampleInvoice()
	next, err := SetField(data, FieldClientLocation, "Goa")
	if err != nil {
		t.Fatalf("SetField() error = %v", err)
	}
	if next.Client.Location != "Goa" {
		t.Errorf("Location = %q, want Goa", next.Client.Location)
	}
	if next.Client.CompanyName != data.Client.CompanyName || next.Client.ContactPerson != data.Client.ContactPerson {
		t.Errorf("sibling client fields changed: %+v", next.Client)
	}
	if next.Company != data.Company || next.InvoiceNo != data.InvoiceNo {
		t.Errorf("unrelated fields changed")
	}
	if data.Client.Location != "Kerala" {
		t.Errorf("SetField mutated its input")
	}
}

func TestSetField_Company(t *testing.T) {
	next, err := SetField(sampleInvoice(), FieldCompanyPhone, "+91 1")
	if err != nil {
		t.Fatal(err)
	}
	if next.Company.Phone != "+91 1" || next.Company.Email != "support@nexuszen.in" {
		t.Fatalf("unexpected company %+v", next.Company)
	}
	if _, err := SetField(sampleInvoice(), Field(99), "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestSetItemField(t *testing.T) {
	tests := []struct {
		name  string
		field ItemField
		raw   string
		check func(invoice.InvoiceItem) bool
	}{
		{"description", ItemDescription, "Website", func(it invoice.InvoiceItem) bool { return it.Description == "Website" }},
		{"sac code", ItemSACCode, "SAC1", func(it invoice.InvoiceItem) bool { return it.SACCode == "SAC1" }},
		{"quantity", ItemQuantity, "5", func(it invoice.InvoiceItem) bool { return it.Quantity == 5 }},
		{"quantity leading digits", ItemQuantity, "7.9", func(it invoice.InvoiceItem) bool { return it.Quantity == 7 }},
		{"quantity negative", ItemQuantity, "-3", func(it invoice.InvoiceItem) bool { return it.Quantity == -3 }},
		{"quantity garbage", ItemQuantity, "abc", func(it invoice.InvoiceItem) bool { return it.Quantity == 0 }},
		{"quantity empty", ItemQuantity, "", func(it invoice.InvoiceItem) bool { return it.Quantity == 0 }},
		{"price", ItemPrice, "4999.50", func(it invoice.InvoiceItem) bool { return it.Price.Equal(decimal.RequireFromString("4999.5")) }},
		{"price leading number", ItemPrice, "12abc", func(it invoice.InvoiceItem) bool { return it.Price.Equal(decimal.NewFromInt(12)) }},
		{"price stops at comma", ItemPrice, "4,000", func(it invoice.InvoiceItem) bool { return it.Price.Equal(decimal.NewFromInt(4)) }},
		{"price bare fraction", ItemPrice, ".5", func(it invoice.InvoiceItem) bool { return it.Price.Equal(decimal.RequireFromString("0.5")) }},
		{"price exponent", ItemPrice, "1.5e3 units", func(it invoice.InvoiceItem) bool { return it.Price.Equal(decimal.NewFromInt(1500)) }},
		{"price dangling exponent", ItemPrice, "+7e", func(it invoice.InvoiceItem) bool { return it.Price.Equal(decimal.NewFromInt(7)) }},
		{"price garbage", ItemPrice, "abc", func(it invoice.InvoiceItem) bool { return it.Price.IsZero() }},
		{"price huge exponent", ItemPrice, "1e400000000", func(it invoice.InvoiceItem) bool { return it.Price.IsZero() }},
		{"price tiny exponent", ItemPrice, "1e-400000000", func(it invoice.InvoiceItem) bool { return it.Price.IsZero() }},
		{"percentage", ItemDiscountPercentage, "12.5", func(it invoice.InvoiceItem) bool {
			return it.DiscountPercentage.Equal(decimal.RequireFromString("12.5"))
		}},
		{"percentage out of range kept", ItemDiscountPercentage, "150", func(it invoice.InvoiceItem) bool {
			return it.DiscountPercentage.Equal(decimal.NewFromInt(150))
		}},
		{"amount huge exponent", ItemDiscountAmount, "9e99999", func(it invoice.InvoiceItem) bool { return it.DiscountAmount.IsZero() }},
		{"amount", ItemDiscountAmount, "250", func(it invoice.InvoiceItem) bool { return it.DiscountAmount.Equal(decimal.NewFromInt(250)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := sampleInvoice()
			next, err := SetItemField(data, 1, tt.field, tt.raw)
			if err != nil {
				t.Fatalf("SetItemField() error = %v", err)
			}
			if !tt.check(next.Items[1]) {
				t.Errorf("unexpected item %+v", next.Items[1])
			}
			if !reflect.DeepEqual(next.Items[0], data.Items[0]) || !reflect.DeepEqual(next.Items[2], data.Items[2]) {
				t.Errorf("other items changed")
			}
			if !reflect.DeepEqual(data, sampleInvoice()) {
				t.Errorf("SetItemField mutated its input")
			}
		})
	}
}

func TestSetItemField_OutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 4, 100} {
		if _, err := SetItemField(sampleInvoice(), idx, ItemPrice, "1"); !errors.Is(err, ErrItemIndex) {
			t.Errorf("index %d: error = %v, want ErrItemIndex", idx, err)
		}
	}
}

func TestParseItemField(t *testing.T) {
	f, err := ParseItemField("discountPercentage")
	if err != nil || f != ItemDiscountPercentage {
		t.Fatalf("ParseItemField() = %v, %v", f, err)
	}
	if _, err := ParseItemField("id"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("id must not be editable, got %v", err)
	}
}

func TestAppendItem_Zeroed(t *testing.T) {
	data := sampleInvoice()
	next := AppendItem(data, "new")
	if len(next.Items) != 5 || len(data.Items) != 4 {
		t.Fatalf("unexpected lengths %d/%d", len(next.Items), len(data.Items))
	}
	added := next.Items[4]
	if added.ID != "new" || added.Quantity != 0 || !added.Price.IsZero() || !added.DiscountAmount.IsZero() || !added.DiscountPercentage.IsZero() {
		t.Fatalf("unexpected new item %+v", added)
	}
}

func TestAddRemove_RoundTrip(t *testing.T) {
	data := sampleInvoice()
	added := AppendItem(data, "tmp")
	back, err := RemoveItemAt(added, len(added.Items)-1)
	if err != nil {
		t.Fatalf("RemoveItemAt() error = %v", err)
	}
	if !reflect.DeepEqual(back.Items, data.Items) {
		t.Fatalf("round trip changed items:\n got %+v\nwant %+v", back.Items, data.Items)
	}
}

func TestRemoveItemAt_Reindexes(t *testing.T) {
	data := sampleInvoice()
	next, err := RemoveItemAt(data, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(next.Items) != 3 || next.Items[1].ID != "3" || next.Items[2].ID != "4" {
		t.Fatalf("unexpected items %+v", next.Items)
	}
	if data.Items[1].ID != "2" {
		t.Fatalf("RemoveItemAt mutated its input")
	}
	if _, err := RemoveItemAt(data, 4); !errors.Is(err, ErrItemIndex) {
		t.Fatalf("expected ErrItemIndex, got %v", err)
	}
}

func TestTerms(t *testing.T) {
	data := sampleInvoice()
	next := AppendTerm(data, "Prices exclude GST.")
	if len(next.Terms) != 4 || len(data.Terms) != 3 {
		t.Fatalf("AppendTerm lengths %d/%d", len(next.Terms), len(data.Terms))
	}
	next, err := SetTerm(next, 0, "Full advance.")
	if err != nil || next.Terms[0] != "Full advance." || data.Terms[0] == "Full advance." {
		t.Fatalf("SetTerm() = %v, %v", next.Terms, err)
	}
	next, err = RemoveTermAt(next, 3)
	if err != nil || len(next.Terms) != 3 {
		t.Fatalf("RemoveTermAt() = %v, %v", next.Terms, err)
	}
	if _, err := SetTerm(next, 3, "x"); !errors.Is(err, ErrTermIndex) {
		t.Fatalf("expected ErrTermIndex, got %v", err)
	}
	if _, err := RemoveTermAt(next, -1); !errors.Is(err, ErrTermIndex) {
		t.Fatalf("expected ErrTermIndex, got %v", err)
	}
}

func TestSetImage(t *testing.T) {
	next, err := SetImage(sampleInvoice(), SlotSignature, "data:image/png;base64,AAAA")
	if err != nil || next.SignatureURL != "data:image/png;base64,AAAA" || next.LogoURL != "" {
		t.Fatalf("SetImage() = %+v, %v", next, err)
	}
	if _, err := SetImage(sampleInvoice(), ImageSlot("banner"), "x"); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
	if _, err := ParseImageSlot("logo"); err != nil {
		t.Fatalf("ParseImageSlot(logo) error = %v", err)
	}
}

func TestEncodeDataURI(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	got := EncodeDataURI(png)
	want := "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg=="
	if got != want {
		t.Fatalf("EncodeDataURI() = %q, want %q", got, want)
	}
}
