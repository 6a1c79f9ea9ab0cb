package editor

import (
	"errors"
	"fmt"

	"github.com/nexuszen/quotation-studio/internal/invoice"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrItemIndex    = errors.New("item index out of range")
	ErrTermIndex    = errors.New("term index out of range")
	ErrUnknownSlot  = errors.New("unknown image slot")
)

// Field identifies one editable scalar of InvoiceData.
type Field int

const (
	FieldInvoiceNo Field = iota + 1
	FieldDate
	FieldNotes
	FieldCompanyName
	FieldCompanySpecialization
	FieldCompanyAddressLine1
	FieldCompanyAddressLine2
	FieldCompanyEmail
	FieldCompanyPhone
	FieldCompanyWebsite
	FieldClientCompanyName
	FieldClientContactPerson
	FieldClientLocation
)

// fieldPaths keeps the form names used by the editor page.
var fieldPaths = map[Field]string{
	FieldInvoiceNo:             "invoiceNo",
	FieldDate:                  "date",
	FieldNotes:                 "notes",
	FieldCompanyName:           "company.name",
	FieldCompanySpecialization: "company.specialization",
	FieldCompanyAddressLine1:   "company.addressLine1",
	FieldCompanyAddressLine2:   "company.addressLine2",
	FieldCompanyEmail:          "company.email",
	FieldCompanyPhone:          "company.phone",
	FieldCompanyWebsite:        "company.website",
	FieldClientCompanyName:     "client.companyName",
	FieldClientContactPerson:   "client.contactPerson",
	FieldClientLocation:        "client.location",
}

var fieldsByPath = func() map[string]Field {
	m := make(map[string]Field, len(fieldPaths))
	for f, p := range fieldPaths {
		m[p] = f
	}
	return m
}()

// ParseField maps a dotted form name such as "client.location" to a Field.
func ParseField(path string) (Field, error) {
	f, ok := fieldsByPath[path]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	return f, nil
}

func (f Field) String() string {
	if p, ok := fieldPaths[f]; ok {
		return p
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// SetField returns a copy of data with one field replaced. Nested groups are
// copied by value, so siblings are preserved and data is left untouched.
func SetField(data invoice.InvoiceData, f Field, value string) (invoice.InvoiceData, error) {
	next := data
	company := data.Company
	client := data.Client

	switch f {
	case FieldInvoiceNo:
		next.InvoiceNo = value
	case FieldDate:
		next.Date = value
	case FieldNotes:
		next.Notes = value
	case FieldCompanyName:
		company.Name = value
	case FieldCompanySpecialization:
		company.Specialization = value
	case FieldCompanyAddressLine1:
		company.AddressLine1 = value
	case FieldCompanyAddressLine2:
		company.AddressLine2 = value
	case FieldCompanyEmail:
		company.Email = value
	case FieldCompanyPhone:
		company.Phone = value
	case FieldCompanyWebsite:
		company.Website = value
	case FieldClientCompanyName:
		client.CompanyName = value
	case FieldClientContactPerson:
		client.ContactPerson = value
	case FieldClientLocation:
		client.Location = value
	default:
		return data, fmt.Errorf("%w: %s", ErrUnknownField, f)
	}

	next.Company = company
	next.Client = client
	return next, nil
}
