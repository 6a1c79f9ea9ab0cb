package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/nexuszen/quotation-studio/internal/invoice"
)

// sheetData is the template input. Everything the sheet shows is derived
// here from InvoiceData so the template stays free of arithmetic.
type sheetData struct {
	Invoice       invoice.InvoiceData
	Logo          template.URL
	Signature     template.URL
	Lines         []sheetLine
	ItemCount     int
	SubTotal      string
	TotalDiscount string
	HasDiscount   bool
	GrandTotal    string
}

type sheetLine struct {
	No          int
	Description string
	Quantity    int
	Discount    string
	HasDiscount bool
	Net         string
}

var (
	sheetTmpl    = template.Must(template.New("sheet").Parse(sheetTemplate))
	documentTmpl = template.Must(template.New("document").Parse(documentTemplate))
)

func buildSheetData(data invoice.InvoiceData) sheetData {
	totals := invoice.ComputeTotals(data.Items)
	out := sheetData{
		Invoice:       data,
		Logo:          imageURL(data.LogoURL),
		Signature:     imageURL(data.SignatureURL),
		Lines:         make([]sheetLine, 0, len(data.Items)),
		ItemCount:     len(data.Items),
		SubTotal:      invoice.FormatCurrency(totals.SubTotal),
		TotalDiscount: invoice.FormatCurrency(totals.TotalDiscount),
		HasDiscount:   totals.TotalDiscount.IsPositive(),
		GrandTotal:    invoice.FormatCurrency(totals.GrandTotal),
	}
	for i, item := range data.Items {
		discount := invoice.LineDiscount(item)
		out.Lines = append(out.Lines, sheetLine{
			No:          i + 1,
			Description: item.Description,
			Quantity:    item.Quantity,
			Discount:    invoice.FormatCurrency(discount),
			HasDiscount: discount.IsPositive(),
			Net:         invoice.FormatCurrency(invoice.LineNet(item)),
		})
	}
	return out
}

// imageURL only lets embedded images through; anything else renders the
// placeholder box.
func imageURL(uri string) template.URL {
	if !strings.HasPrefix(uri, "data:image/") {
		return ""
	}
	return template.URL(uri)
}

// Sheet renders the printable page as an HTML fragment. The output depends
// on data alone.
func Sheet(data invoice.InvoiceData) (template.HTML, error) {
	var buf bytes.Buffer
	if err := sheetTmpl.Execute(&buf, buildSheetData(data)); err != nil {
		return "", fmt.Errorf("render sheet: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Preview renders the quotation as a standalone HTML page carrying the print
// styles. Rendering the same data twice yields identical bytes.
func Preview(data invoice.InvoiceData) (string, error) {
	sheet, err := Sheet(data)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	err = documentTmpl.Execute(&buf, struct {
		Title      string
		Stylesheet template.CSS
		Sheet      template.HTML
	}{
		Title:      "Quotation #" + data.InvoiceNo,
		Stylesheet: template.CSS(Stylesheet),
		Sheet:      sheet,
	})
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}

const documentTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <style>{{.Stylesheet}}</style>
</head>
<body class="print-body">
{{.Sheet}}
</body>
</html>
`

const sheetTemplate = `<article class="sheet">
  <header class="sheet-header">
    <div class="brand">
      {{if .Logo}}<img class="logo" src="{{.Logo}}" alt="Logo" />{{else}}<div class="logo placeholder">Upload Logo</div>{{end}}
      <div>
        <h1 class="company-name">{{.Invoice.Company.Name}}</h1>
        <p class="company-tagline">{{.Invoice.Company.Specialization}}</p>
      </div>
    </div>
    <div class="reference">
      <h2 class="watermark">QUOTATION</h2>
      <p class="label">Invoice Ref</p>
      <p class="invoice-no">#{{.Invoice.InvoiceNo}}</p>
      <p class="invoice-date">{{.Invoice.Date}}</p>
    </div>
  </header>

  <section class="addresses">
    <div class="office">
      <h3 class="label">Our Office</h3>
      <p>{{.Invoice.Company.AddressLine1}}</p>
      <p>{{.Invoice.Company.AddressLine2}}</p>
    </div>
    <div class="billed-to">
      <h3 class="label">Billed To</h3>
      <p class="client-name">{{.Invoice.Client.CompanyName}}</p>
      <p class="client-contact">{{.Invoice.Client.ContactPerson}}</p>
      <p class="client-location">{{.Invoice.Client.Location}}</p>
    </div>
  </section>

  <table class="items">
    <thead>
      <tr><th class="no">No</th><th>Description of Service</th><th class="qty">Qty</th><th class="amount">Amount</th></tr>
    </thead>
    <tbody>
    {{- range .Lines}}
      <tr>
        <td class="no">{{.No}}</td>
        <td>
          <p class="description">{{.Description}}</p>
          {{- if .HasDiscount}}
          <span class="discount-note">Discount Applied: {{.Discount}}</span>
          {{- end}}
        </td>
        <td class="qty">{{.Quantity}}</td>
        <td class="amount">{{.Net}}</td>
      </tr>
    {{- end}}
    </tbody>
  </table>

  <section class="summary">
    <div class="notes">
      <h4 class="label">Project Notes</h4>
      <p>{{.Invoice.Notes}}</p>
    </div>
    <div class="totals">
      <div class="row"><span>Total Items</span><span>{{.ItemCount}} Units</span></div>
      <div class="row"><span>Gross Sub-Total</span><span class="strong">{{.SubTotal}}</span></div>
      {{- if .HasDiscount}}
      <div class="row discount"><span>Total Discount</span><span class="strong">-{{.TotalDiscount}}</span></div>
      {{- end}}
      <div class="rule"></div>
      <div class="row payable">
        <span><span class="payable-label">Total Payable</span><span class="payable-hint">Taxes Included</span></span>
        <span class="grand-total">{{.GrandTotal}}</span>
      </div>
    </div>
  </section>

  <section class="closing">
    <div class="terms">
      <h4 class="label">Legal Terms</h4>
      <ul>
      {{- range .Invoice.Terms}}
        <li>{{.}}</li>
      {{- end}}
      </ul>
    </div>
    <div class="signature">
      {{if .Signature}}<img class="signature-image" src="{{.Signature}}" alt="Signature &amp; Stamp" />{{else}}<div class="signature-image placeholder">Stamp &amp; Sign Here</div>{{end}}
      <p class="signatory">Authorized Official</p>
    </div>
  </section>

  <footer class="sheet-footer">
    <span>{{.Invoice.Company.Phone}}</span>
    <span>{{.Invoice.Company.Email}}</span>
    <span>{{.Invoice.Company.Website}}</span>
  </footer>
</article>
`
