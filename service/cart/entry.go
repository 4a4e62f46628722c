package cart

import "strings"

// StandardVariant is the display label of a product sold without variants.
// It shares a cart key with the empty label.
const StandardVariant = "Standard"

// Entry is one cart line. The JSON names match the persisted record format.
type Entry struct {
	ProductID uint    `json:"id" mapstructure:"id"`
	Title     string  `json:"title" mapstructure:"title"`
	UnitPrice float64 `json:"price" mapstructure:"price"`
	Image     string  `json:"image_url" mapstructure:"image_url"`
	Quantity  int     `json:"quantity" mapstructure:"quantity"`
	Variant   string  `json:"variant,omitempty" mapstructure:"variant"`
}

// Item is what a caller adds; UnitPrice is already resolved.
type Item struct {
	ProductID uint
	Variant   string
	Title     string
	UnitPrice float64
	Image     string
}

// NormalizeVariant maps the "no variant" sentinel to the empty label.
func NormalizeVariant(v string) string {
	v = strings.TrimSpace(v)
	if v == StandardVariant {
		return ""
	}
	return v
}

// HasVariant reports whether the line names a real variant.
func (e Entry) HasVariant() bool {
	return NormalizeVariant(e.Variant) != ""
}

func (e Entry) matches(productID uint, variant string) bool {
	return e.ProductID == productID && e.Variant == variant
}
