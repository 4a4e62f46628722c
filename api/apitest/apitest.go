// Package apitest wires in-memory dependencies for handler tests.
package apitest

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mixtape.GO/api"
	"mixtape.GO/migrations"
	catalogEntity "mixtape.GO/model/entity/catalog"
	catalogRepo "mixtape.GO/model/repository/catalog"
	"mixtape.GO/model/repository/storage"
	"mixtape.GO/service/cart"
	"mixtape.GO/service/catalog"
	"mixtape.GO/service/checkout"
)

const CartPrefix = "mixtape-cart"

// NewDeps opens a throwaway sqlite database and builds every service on it.
func NewDeps(t testing.TB) *api.Deps {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := migrations.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &api.Deps{
		DB:      db,
		Catalog: catalog.NewService(catalogRepo.NewProductRepository(db), catalog.Options{}),
		Carts:   cart.NewSessions(storage.NewGormDriver(db), CartPrefix, cart.SessionOptions{}),
		Checkout: checkout.NewService(checkout.Config{
			BaseURL: "https://wa.me/",
			Phone:   "94721717874",
			Template: checkout.Template{
				Greeting: "Yo Mixtape Era! 📼 I want to secure these drops:",
				Closing:  "Let me know payment details!",
			},
		}, nil, nil),
	}
}

// SeedProducts creates a variant product (id 1) and a plain product (id 2).
func SeedProducts(t testing.TB, deps *api.Deps) {
	t.Helper()
	discount, text := "discount", "20% OFF"
	products := []catalogEntity.Product{
		{
			ID:       1,
			Title:    "Holo Stickers",
			Price:    "1,500 LKR",
			ImageURL: "10.png",
			Variants: []catalogEntity.Variant{
				{Name: "10 Pack", Price: "1,500 LKR", ImageURL: "10.png"},
				{Name: "20 Pack", Price: "2,500 LKR", ImageURL: "20.png"},
			},
			BadgeType: &discount,
			BadgeText: &text,
		},
		{ID: 2, Title: "Retro Tape", Price: "500", ImageURL: "tape.png"},
	}
	for i := range products {
		if err := deps.DB.Create(&products[i]).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	deps.Catalog.Invalidate()
}
