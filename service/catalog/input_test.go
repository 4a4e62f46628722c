package catalog

import (
	"errors"
	"strings"
	"testing"

	catalogEntity "mixtape.GO/model/entity/catalog"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		in   ProductInput
		want string
	}{
		{"no title", ProductInput{Price: "1", ImageURL: "a"}, "title is required"},
		{"no image", ProductInput{Title: "x", Price: "1"}, "main image is required"},
		{"no price", ProductInput{Title: "x", ImageURL: "a"}, "price is required"},
		{"incomplete variant", ProductInput{Title: "x", Variants: []catalogEntity.Variant{{Name: "a", Price: "1"}}}, "variant 1 needs"},
		{"duplicate variant", ProductInput{Title: "x", Variants: []catalogEntity.Variant{
			{Name: "a", Price: "1", ImageURL: "i"}, {Name: "a", Price: "2", ImageURL: "j"},
		}}, "duplicated"},
		{"reserved variant name", ProductInput{Title: "x", Variants: []catalogEntity.Variant{
			{Name: "10 Pack", Price: "1", ImageURL: "i"}, {Name: " standard ", Price: "2", ImageURL: "j"},
		}}, "reserved"},
		{"bad badge", ProductInput{Title: "x", Price: "1", ImageURL: "a", BadgeType: "bogo"}, "unknown badge"},
	}
	for _, tc := range cases {
		err := tc.in.Validate()
		if !errors.Is(err, ErrInvalidInput) || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: Validate = %v, want %q", tc.name, err, tc.want)
		}
	}
}

func TestValidate_VariantImageStandsInForMain(t *testing.T) {
	in := ProductInput{Title: "x", Variants: []catalogEntity.Variant{{Name: "a", Price: "1", ImageURL: "i"}}}
	if err := in.Validate(); err != nil {
		t.Errorf("Validate = %v", err)
	}
}

func TestApply_BadgeNoneClears(t *testing.T) {
	var p catalogEntity.Product
	in := ProductInput{Title: "x", Price: "1", ImageURL: "a", BadgeType: "none", BadgeText: "ignored"}
	in.apply(&p)
	if p.BadgeType != nil || p.Badge() != nil {
		t.Errorf("badge = %v", p.BadgeType)
	}
}

func TestApply_KeepsExplicitMainImage(t *testing.T) {
	var p catalogEntity.Product
	in := ProductInput{Title: "x", ImageURL: "main.png", Variants: []catalogEntity.Variant{
		{Name: "b", Price: "5", ImageURL: "b.png"}, {Name: "a", Price: "3", ImageURL: "a.png"},
	}}
	in.apply(&p)
	if p.Price != "3" || p.ImageURL != "main.png" {
		t.Errorf("Price %q ImageURL %q", p.Price, p.ImageURL)
	}
}
