package catalog

import (
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"mixtape.GO/core/price"
	catalogEntity "mixtape.GO/model/entity/catalog"
	"mixtape.GO/service/cart"
)

// ProductInput is the admin write payload.
type ProductInput struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Price       string                  `json:"price"`
	ImageURL    string                  `json:"image_url"`
	Gallery     []string                `json:"gallery"`
	Variants    []catalogEntity.Variant `json:"variants"`
	BadgeType   string                  `json:"badge_type"`
	BadgeText   string                  `json:"badge_text"`
}

// Validate checks the rules the admin editor enforces.
func (in *ProductInput) Validate() error {
	var problems []string
	if strings.TrimSpace(in.Title) == "" {
		problems = append(problems, "title is required")
	}
	seen := make(map[string]bool, len(in.Variants))
	for i, v := range in.Variants {
		name := strings.TrimSpace(v.Name)
		if name == "" || strings.TrimSpace(v.Price) == "" || strings.TrimSpace(v.ImageURL) == "" {
			problems = append(problems, fmt.Sprintf("variant %d needs name, price and image", i+1))
			continue
		}
		// the sentinel names the no-variant line in carts
		if strings.EqualFold(name, cart.StandardVariant) {
			problems = append(problems, fmt.Sprintf("variant %d: %q is reserved", i+1, name))
			continue
		}
		if seen[name] {
			problems = append(problems, fmt.Sprintf("variant %q is duplicated", name))
		}
		seen[name] = true
	}
	if len(in.Variants) == 0 {
		if strings.TrimSpace(in.Price) == "" {
			problems = append(problems, "price is required")
		}
		if strings.TrimSpace(in.ImageURL) == "" {
			problems = append(problems, "main image is required")
		}
	}
	if in.BadgeType != "" && !price.BadgeType(strings.ToLower(in.BadgeType)).Valid() {
		problems = append(problems, fmt.Sprintf("unknown badge type %q", in.BadgeType))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// apply copies the normalized input onto p. With variants, the product price
// becomes the lowest variant price and the main image defaults to that
// variant's image.
func (in *ProductInput) apply(p *catalogEntity.Product) {
	p.Title = strings.TrimSpace(in.Title)
	p.Description = in.Description
	p.Price = strings.TrimSpace(in.Price)
	p.ImageURL = strings.TrimSpace(in.ImageURL)

	gallery := make([]string, 0, len(in.Gallery))
	for _, g := range in.Gallery {
		if g = strings.TrimSpace(g); g != "" {
			gallery = append(gallery, g)
		}
	}
	p.Gallery = datatypes.JSONSlice[string](gallery)

	variants := make([]catalogEntity.Variant, 0, len(in.Variants))
	for _, v := range in.Variants {
		variants = append(variants, catalogEntity.Variant{
			Name:     strings.TrimSpace(v.Name),
			Price:    strings.TrimSpace(v.Price),
			ImageURL: strings.TrimSpace(v.ImageURL),
		})
	}
	p.Variants = datatypes.JSONSlice[catalogEntity.Variant](variants)

	if len(variants) > 0 {
		lowest := variants[0]
		for _, v := range variants[1:] {
			if price.Parse(v.Price).LessThan(price.Parse(lowest.Price)) {
				lowest = v
			}
		}
		p.Price = lowest.Price
		if p.ImageURL == "" {
			p.ImageURL = lowest.ImageURL
		}
	}

	p.BadgeType, p.BadgeText = nil, nil
	if b := price.NewBadge(in.BadgeType, strings.TrimSpace(in.BadgeText)); b != nil {
		t, text := string(b.Type), b.Text
		p.BadgeType, p.BadgeText = &t, &text
	}
}
