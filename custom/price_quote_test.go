package custom

import (
	"context"
	"testing"

	gqlregistry "mixtape.GO/graphql/registry"
)

func TestPriceQuote_Registered(t *testing.T) {
	got, err := gqlregistry.Resolve(context.Background(), "priceQuote", map[string]interface{}{
		"price":      "1,500 LKR",
		"badge_type": "discount",
		"badge_text": "20% OFF",
	})
	if err != nil {
		t.Fatal(err)
	}
	m := got.(map[string]interface{})
	if m["formatted"] != "1200.00" || m["original"] != "1500.00" {
		t.Errorf("quote = %v", m)
	}
}

func TestPriceQuote_RequiresPrice(t *testing.T) {
	if _, err := PriceQuote(context.Background(), map[string]interface{}{}); err == nil {
		t.Error("expected error without price")
	}
}
