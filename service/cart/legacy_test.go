package cart

import (
	"context"
	"testing"

	"mixtape.GO/model/repository/storage"
)

func TestDecodeEntries_LegacyTextPrice(t *testing.T) {
	raw := []byte(`[
		{"id":1,"title":"Stickers","price":"1,500 LKR","image_url":"a.png","quantity":2,"variant":"10 Pack"},
		{"id":2,"title":"Tape","price":"Rs. 499.50","image_url":"b.png","quantity":1}
	]`)
	entries, err := decodeEntries(raw)
	if err != nil {
		t.Fatalf("decodeEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].UnitPrice != 1500 {
		t.Errorf("UnitPrice = %v, want 1500", entries[0].UnitPrice)
	}
	if entries[1].UnitPrice != 499.5 {
		t.Errorf("UnitPrice = %v, want 499.5", entries[1].UnitPrice)
	}
	if entries[0].Variant != "10 Pack" || entries[1].Variant != "" {
		t.Errorf("variants = %q %q", entries[0].Variant, entries[1].Variant)
	}
}

func TestDecodeEntries_GarbagePriceIsZero(t *testing.T) {
	entries, err := decodeEntries([]byte(`[{"id":1,"title":"x","price":"free!","quantity":1}]`))
	if err != nil {
		t.Fatalf("decodeEntries: %v", err)
	}
	if entries[0].UnitPrice != 0 {
		t.Errorf("UnitPrice = %v, want 0", entries[0].UnitPrice)
	}
}

func TestDecodeEntries_MergesStandardDuplicates(t *testing.T) {
	raw := []byte(`[
		{"id":4,"title":"Pin","price":100,"quantity":1,"variant":"Standard"},
		{"id":4,"title":"Pin","price":100,"quantity":2},
		{"id":5,"title":"Zero","price":100,"quantity":0}
	]`)
	entries, err := decodeEntries(raw)
	if err != nil {
		t.Fatalf("decodeEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].Quantity != 3 {
		t.Errorf("entries = %+v, want one line with quantity 3", entries)
	}
}

func TestDecodeEntries_NotAList(t *testing.T) {
	if _, err := decodeEntries([]byte(`{"id":1}`)); err == nil {
		t.Error("want error for non-list record")
	}
}

func TestLoad_LegacyRecordSubtotal(t *testing.T) {
	d := storage.NewMemoryDriver()
	ctx := context.Background()
	_ = d.Set(ctx, testKey, []byte(`[{"id":1,"title":"Stickers","price":"1,200","quantity":2,"variant":"10 Pack"},{"id":2,"title":"Tape","price":"500","quantity":1}]`))
	s := loadedStore(t, d)
	if got := s.Subtotal(); got != 2900 {
		t.Errorf("Subtotal = %v, want 2900", got)
	}
}
