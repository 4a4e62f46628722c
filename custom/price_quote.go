package custom

import (
	"context"
	"fmt"

	"mixtape.GO/core/price"
	gqlregistry "mixtape.GO/graphql/registry"
)

func init() {
	gqlregistry.Register("priceQuote", PriceQuote)
}

// PriceQuote resolves a price label against an optional badge:
// extension(name: "priceQuote", args: "{\"price\":\"1,500 LKR\",\"badge_type\":\"discount\",\"badge_text\":\"20% OFF\"}")
func PriceQuote(_ context.Context, args map[string]interface{}) (interface{}, error) {
	raw, _ := args["price"].(string)
	if raw == "" {
		return nil, fmt.Errorf("priceQuote: price is required")
	}
	badgeType, _ := args["badge_type"].(string)
	badgeText, _ := args["badge_text"].(string)
	resolved := price.Resolve(raw, price.NewBadge(badgeType, badgeText))
	return map[string]interface{}{
		"price":     resolved,
		"formatted": price.Format(resolved),
		"original":  price.Format(price.Resolve(raw, nil)),
	}, nil
}
