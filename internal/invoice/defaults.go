package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout renders dates the way the editor shows them, e.g. "05 Mar 2026".
const DateLayout = "02 Jan 2006"

// Default returns the initial quotation. now only feeds the Date field.
func Default(now time.Time) InvoiceData {
	return InvoiceData{
		InvoiceNo: "1567",
		Date:      now.Format(DateLayout),
		Company: CompanyDetails{
			Name:           "NEXUSZEN SERVICES PRIVATE LIMITED",
			Specialization: "SOFTWARE DEVELOPMENT COMPANY",
			AddressLine1:   "Floor No.: 18th Floor Building No./Flat No.: 1806 Navi",
			AddressLine2:   "Mumbai District: Thane State: Maharashtra",
			Email:          "support@nexuszen.in",
			Phone:          "+91 8260397998",
			Website:        "WWW.NEXUSZEN.IN",
		},
		Client: ClientDetails{
			CompanyName:   "Qiyam Business Solutions",
			ContactPerson: "Faris Sir",
			Location:      "Kerala",
		},
		Items: []InvoiceItem{
			{ID: "1", Description: "Complete User app ( Android & Ios)", Quantity: 2, Price: decimal.NewFromInt(12500), SACCode: "SAC9804"},
			{ID: "2", Description: "Complete Shop Owner app ( Android & Ios)", Quantity: 2, Price: decimal.NewFromInt(10000), DiscountAmount: decimal.NewFromInt(500), SACCode: "SAC9805"},
			{ID: "3", Description: "Complete Delivery man app ( Android & Ios)", Quantity: 2, Price: decimal.NewFromInt(4000), DiscountPercentage: decimal.NewFromInt(10), SACCode: "SAC9806"},
			{ID: "4", Description: "Admin Panel", Quantity: 1, Price: decimal.NewFromInt(12000), DiscountAmount: decimal.NewFromInt(1000), DiscountPercentage: decimal.NewFromInt(5), SACCode: "SAC9807"},
		},
		Notes: "* Server & Domain , Playstore , Appstore Account , Maintenance Not Included",
		Terms: []string{
			"50% advance payment is required to initiate the project.",
			"The remaining 50% payment must be cleared within 1 week of work submission.",
			"Final delivery and deployment will be completed after receipt of the full payment.",
		},
	}
}
