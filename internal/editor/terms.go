package editor

import (
	"fmt"

	"github.com/nexuszen/quotation-studio/internal/invoice"
)

func AppendTerm(data invoice.InvoiceData, text string) invoice.InvoiceData {
	terms := make([]string, len(data.Terms), len(data.Terms)+1)
	copy(terms, data.Terms)

	next := data
	next.Terms = append(terms, text)
	return next
}

func SetTerm(data invoice.InvoiceData, index int, text string) (invoice.InvoiceData, error) {
	if index < 0 || index >= len(data.Terms) {
		return data, fmt.Errorf("%w: %d", ErrTermIndex, index)
	}
	terms := make([]string, len(data.Terms))
	copy(terms, data.Terms)
	terms[index] = text

	next := data
	next.Terms = terms
	return next, nil
}

func RemoveTermAt(data invoice.InvoiceData, index int) (invoice.InvoiceData, error) {
	if index < 0 || index >= len(data.Terms) {
		return data, fmt.Errorf("%w: %d", ErrTermIndex, index)
	}
	terms := make([]string, 0, len(data.Terms)-1)
	terms = append(terms, data.Terms[:index]...)
	terms = append(terms, data.Terms[index+1:]...)

	next := data
	next.Terms = terms
	return next, nil
}
