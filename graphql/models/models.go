package models

import (
	"strconv"

	gql "github.com/graph-gophers/graphql-go"

	"mixtape.GO/core/price"
	catalogEntity "mixtape.GO/model/entity/catalog"
	"mixtape.GO/service/cart"
	"mixtape.GO/service/catalog"
)

type Product struct {
	ID            gql.ID
	Title         string
	Description   string
	Price         string
	ImageURL      string
	Gallery       []string
	Variants      []*Variant
	Badge         *Badge
	DisplayPrice  float64
	OriginalPrice float64
}

type Variant struct {
	Name           string
	Price          string
	ImageURL       string
	EffectivePrice float64
}

type Badge struct {
	Type string
	Text string
}

type Cart struct {
	Items       []*CartItem
	TotalItems  int32
	Subtotal    float64
	Open        bool
	CheckoutURL *string
}

type CartItem struct {
	ProductID gql.ID
	Variant   *string
	Title     string
	UnitPrice float64
	Image     string
	Quantity  int32
}

func NewProduct(p *catalogEntity.Product) *Product {
	badge := p.Badge()
	out := &Product{
		ID:            gql.ID(strconv.FormatUint(uint64(p.ID), 10)),
		Title:         p.Title,
		Description:   p.Description,
		Price:         p.Price,
		ImageURL:      p.ImageURL,
		Gallery:       append([]string{}, p.Gallery...),
		Variants:      make([]*Variant, 0, len(p.Variants)),
		DisplayPrice:  catalog.DisplayPrice(p),
		OriginalPrice: catalog.OriginalPrice(p),
	}
	if badge != nil {
		out.Badge = &Badge{Type: string(badge.Type), Text: badge.Text}
	}
	for _, v := range p.Variants {
		out.Variants = append(out.Variants, &Variant{
			Name:           v.Name,
			Price:          v.Price,
			ImageURL:       v.ImageURL,
			EffectivePrice: price.Resolve(v.Price, badge),
		})
	}
	return out
}

func NewCart(s cart.Snapshot) *Cart {
	out := &Cart{
		Items:      make([]*CartItem, 0, len(s.Entries)),
		TotalItems: int32(s.TotalItems),
		Subtotal:   s.Subtotal,
		Open:       s.Open,
	}
	for _, e := range s.Entries {
		item := &CartItem{
			ProductID: gql.ID(strconv.FormatUint(uint64(e.ProductID), 10)),
			Title:     e.Title,
			UnitPrice: e.UnitPrice,
			Image:     e.Image,
			Quantity:  int32(e.Quantity),
		}
		if e.HasVariant() {
			v := e.Variant
			item.Variant = &v
		}
		out.Items = append(out.Items, item)
	}
	return out
}
