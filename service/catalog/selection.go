package catalog

import (
	"fmt"

	"mixtape.GO/core/price"
	catalogEntity "mixtape.GO/model/entity/catalog"
	"mixtape.GO/service/cart"
)

// Selection is what a chosen product variant puts in the cart.
type Selection struct {
	ProductID uint    `json:"id"`
	Title     string  `json:"title"`
	Variant   string  `json:"variant"`
	UnitPrice float64 `json:"price"`
	Image     string  `json:"image_url"`
}

// Item converts the selection into a cart item.
func (s Selection) Item() cart.Item {
	return cart.Item{
		ProductID: s.ProductID,
		Variant:   s.Variant,
		Title:     s.Title,
		UnitPrice: s.UnitPrice,
		Image:     s.Image,
	}
}

// Select resolves the effective line for variantName. An empty name picks the
// first variant; products without variants sell as "Standard" at the base price.
func Select(p *catalogEntity.Product, variantName string) (Selection, error) {
	sel := Selection{ProductID: p.ID, Title: p.Title}
	badge := p.Badge()
	name := cart.NormalizeVariant(variantName)

	if !p.HasVariants() {
		if name != "" {
			return Selection{}, fmt.Errorf("%w: %q on product %d", ErrVariantNotFound, variantName, p.ID)
		}
		sel.Variant = cart.StandardVariant
		sel.UnitPrice = price.Resolve(p.Price, badge)
		sel.Image = p.ImageURL
		return sel, nil
	}

	v := p.Variants[0]
	if name != "" {
		var ok bool
		if v, ok = p.FindVariant(name); !ok {
			return Selection{}, fmt.Errorf("%w: %q on product %d", ErrVariantNotFound, variantName, p.ID)
		}
	}
	sel.Variant = v.Name
	sel.UnitPrice = price.Resolve(v.Price, badge)
	sel.Image = v.ImageURL
	if sel.Image == "" {
		sel.Image = p.ImageURL
	}
	return sel, nil
}

// DisplayPrice is the "starts at" price shown on listings.
func DisplayPrice(p *catalogEntity.Product) float64 {
	return price.Resolve(p.Price, p.Badge())
}

// OriginalPrice is the undiscounted base price, for strike-through display.
func OriginalPrice(p *catalogEntity.Product) float64 {
	return price.Resolve(p.Price, nil)
}
