package invoice

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Finding is an advisory observation about a quotation. Findings never block
// an edit and never change the data.
type Finding struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

var hundred = decimal.NewFromInt(100)

// Check reports values the editor accepts but a reader would likely question.
func Check(data InvoiceData) []Finding {
	findings := make([]Finding, 0)
	for i, item := range data.Items {
		path := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(item.Description) == "" {
			findings = append(findings, finding("QUOTE-ITEM-001", path+".description", "Description is empty"))
		}
		if item.Quantity < 0 {
			findings = append(findings, finding("QUOTE-ITEM-002", path+".quantity", "Quantity is negative"))
		}
		if item.DiscountPercentage.IsNegative() || item.DiscountPercentage.GreaterThan(hundred) {
			findings = append(findings, finding("QUOTE-ITEM-003", path+".discountPercentage", "Discount percentage is outside 0-100"))
		}
		if item.DiscountAmount.IsNegative() {
			findings = append(findings, finding("QUOTE-ITEM-004", path+".discountAmount", "Discount amount is negative"))
		}
		if LineNet(item).IsNegative() {
			findings = append(findings, finding("QUOTE-ITEM-005", path, "Discount exceeds the line amount"))
		}
	}
	return findings
}

func finding(code, path, message string) Finding {
	return Finding{Code: code, Path: path, Message: message}
}
