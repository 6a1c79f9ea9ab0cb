package invoice

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrInvalidProfile = errors.New("invalid invoice profile")

// Profile overlays the default quotation with issuer-specific content read
// from a YAML file. Absent sections keep their defaults.
type Profile struct {
	InvoiceNo string          `yaml:"invoiceNo"`
	Company   *CompanyDetails `yaml:"company"`
	Client    *ClientDetails  `yaml:"client"`
	Notes     *string         `yaml:"notes"`
	Terms     []string        `yaml:"terms"`
	Items     []ProfileItem   `yaml:"items"`
}

// ProfileItem keeps amounts as text so "12500" and 12500 both parse.
type ProfileItem struct {
	Description        string `yaml:"description"`
	Quantity           int    `yaml:"quantity"`
	Price              string `yaml:"price"`
	DiscountPercentage string `yaml:"discountPercentage"`
	DiscountAmount     string `yaml:"discountAmount"`
	SACCode            string `yaml:"sacCode"`
}

// LoadProfile reads and parses a profile file.
func LoadProfile(path string) (Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(raw)
}

// ParseProfile decodes a YAML profile and checks that every amount parses.
func ParseProfile(raw []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	for i, item := range p.Items {
		if _, err := item.toItem(""); err != nil {
			return Profile{}, fmt.Errorf("%w: items[%d]: %v", ErrInvalidProfile, i, err)
		}
	}
	return p, nil
}

// Apply returns base with the profile's sections replacing base's.
func (p Profile) Apply(base InvoiceData) InvoiceData {
	out := base.Clone()
	if p.InvoiceNo != "" {
		out.InvoiceNo = p.InvoiceNo
	}
	if p.Company != nil {
		out.Company = *p.Company
	}
	if p.Client != nil {
		out.Client = *p.Client
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.Terms != nil {
		out.Terms = append([]string(nil), p.Terms...)
	}
	if p.Items != nil {
		out.Items = make([]InvoiceItem, 0, len(p.Items))
		for i, pi := range p.Items {
			item, _ := pi.toItem(fmt.Sprintf("%d", i+1))
			out.Items = append(out.Items, item)
		}
	}
	return out
}

func (pi ProfileItem) toItem(id string) (InvoiceItem, error) {
	price, err := parseAmount(pi.Price)
	if err != nil {
		return InvoiceItem{}, fmt.Errorf("price: %w", err)
	}
	pct, err := parseAmount(pi.DiscountPercentage)
	if err != nil {
		return InvoiceItem{}, fmt.Errorf("discountPercentage: %w", err)
	}
	amount, err := parseAmount(pi.DiscountAmount)
	if err != nil {
		return InvoiceItem{}, fmt.Errorf("discountAmount: %w", err)
	}
	return InvoiceItem{
		ID:                 id,
		Description:        pi.Description,
		Quantity:           pi.Quantity,
		Price:              price,
		DiscountPercentage: pct,
		DiscountAmount:     amount,
		SACCode:            pi.SACCode,
	}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !AmountInRange(d) {
		return decimal.Zero, ErrAmountOutOfRange
	}
	return d, nil
}
