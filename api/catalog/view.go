package catalog

import (
	"mixtape.GO/core/price"
	catalogEntity "mixtape.GO/model/entity/catalog"
	catalogService "mixtape.GO/service/catalog"
)

// ProductView is the public JSON shape of a product.
type ProductView struct {
	ID            uint                    `json:"id"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	Price         string                  `json:"price"`
	ImageURL      string                  `json:"image_url"`
	Gallery       []string                `json:"gallery"`
	Variants      []catalogEntity.Variant `json:"variants"`
	Badge         *price.Badge            `json:"badge,omitempty"`
	DisplayPrice  float64                 `json:"display_price"`
	OriginalPrice float64                 `json:"original_price"`
}

func toView(p *catalogEntity.Product) ProductView {
	v := ProductView{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Price:         p.Price,
		ImageURL:      p.ImageURL,
		Gallery:       append([]string{}, p.Gallery...),
		Variants:      append([]catalogEntity.Variant{}, p.Variants...),
		Badge:         p.Badge(),
		DisplayPrice:  catalogService.DisplayPrice(p),
		OriginalPrice: catalogService.OriginalPrice(p),
	}
	return v
}

func toViews(products []catalogEntity.Product) []ProductView {
	out := make([]ProductView, 0, len(products))
	for i := range products {
		out = append(out, toView(&products[i]))
	}
	return out
}
