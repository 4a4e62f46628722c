package cart

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"mixtape.GO/core/price"
)

// priceTextHook lets records written with text prices ("1,500 LKR") decode
// into numeric unit prices through the price engine.
func priceTextHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to.Kind() == reflect.Float64 {
		return price.Resolve(data.(string), nil), nil
	}
	return data, nil
}

// decodeEntries reads a persisted entry sequence. Duplicate keys are merged
// and lines with a non-positive quantity are dropped.
func decodeEntries(raw []byte) ([]Entry, error) {
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode cart record: %w", err)
	}
	var decoded []Entry
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       priceTextHook,
		WeaklyTypedInput: true,
		Result:           &decoded,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(records); err != nil {
		return nil, fmt.Errorf("decode cart entries: %w", err)
	}

	entries := make([]Entry, 0, len(decoded))
	for _, e := range decoded {
		if e.Quantity < 1 {
			continue
		}
		e.Variant = NormalizeVariant(e.Variant)
		if i := indexOf(entries, e.ProductID, e.Variant); i >= 0 {
			entries[i].Quantity += e.Quantity
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func indexOf(entries []Entry, productID uint, variant string) int {
	for i, e := range entries {
		if e.matches(productID, variant) {
			return i
		}
	}
	return -1
}
