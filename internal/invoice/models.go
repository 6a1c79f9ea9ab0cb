package invoice

import "github.com/shopspring/decimal"

// InvoiceData is the aggregate root of one quotation document.
type InvoiceData struct {
	InvoiceNo    string         `json:"invoiceNo"`
	Date         string         `json:"date"`
	Company      CompanyDetails `json:"company"`
	Client       ClientDetails  `json:"client"`
	Items        []InvoiceItem  `json:"items"`
	Notes        string         `json:"notes"`
	Terms        []string       `json:"terms"`
	LogoURL      string         `json:"logoUrl,omitempty"`
	SignatureURL string         `json:"signatureUrl,omitempty"`
}

// CompanyDetails identifies the issuer.
type CompanyDetails struct {
	Name           string `json:"name" yaml:"name"`
	Specialization string `json:"specialization" yaml:"specialization"`
	AddressLine1   string `json:"addressLine1" yaml:"addressLine1"`
	AddressLine2   string `json:"addressLine2" yaml:"addressLine2"`
	Email          string `json:"email" yaml:"email"`
	Phone          string `json:"phone" yaml:"phone"`
	Website        string `json:"website" yaml:"website"`
}

// ClientDetails identifies the billed party.
type ClientDetails struct {
	CompanyName   string `json:"companyName" yaml:"companyName"`
	ContactPerson string `json:"contactPerson" yaml:"contactPerson"`
	Location      string `json:"location" yaml:"location"`
}

// InvoiceItem is one billable row. ID is a rendering key only and is never
// used to address the row.
type InvoiceItem struct {
	ID                 string          `json:"id"`
	Description        string          `json:"description"`
	Quantity           int             `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	DiscountAmount     decimal.Decimal `json:"discountAmount"`
	SACCode            string          `json:"sacCode"`
}

// Clone returns a copy that shares no slices with d.
func (d InvoiceData) Clone() InvoiceData {
	out := d
	if d.Items != nil {
		out.Items = append([]InvoiceItem(nil), d.Items...)
	}
	if d.Terms != nil {
		out.Terms = append([]string(nil), d.Terms...)
	}
	return out
}
