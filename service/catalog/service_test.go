package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	catalogEntity "mixtape.GO/model/entity/catalog"
	catalogRepo "mixtape.GO/model/repository/catalog"
)

func catalogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&catalogEntity.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testService(t *testing.T, searcher Searcher) (*Service, *gorm.DB) {
	db := catalogTestDB(t)
	return NewService(catalogRepo.NewProductRepository(db), Options{Searcher: searcher}), db
}

func stickersInput() ProductInput {
	return ProductInput{
		Title: "Holo Stickers",
		Variants: []catalogEntity.Variant{
			{Name: "20 Pack", Price: "2,000", ImageURL: "20.png"},
			{Name: "10 Pack", Price: "1,200", ImageURL: "10.png"},
		},
		BadgeType: "discount",
		BadgeText: "20% OFF",
	}
}

type fakeSearcher struct {
	ids     []uint
	err     error
	indexed []uint
	removed []uint
}

func (f *fakeSearcher) Search(context.Context, string) ([]uint, error) { return f.ids, f.err }

func (f *fakeSearcher) Index(_ context.Context, p *catalogEntity.Product) error {
	f.indexed = append(f.indexed, p.ID)
	return nil
}

func (f *fakeSearcher) Remove(_ context.Context, id uint) error {
	f.removed = append(f.removed, id)
	return nil
}

func TestCreate_NormalizesVariantPrice(t *testing.T) {
	svc, _ := testService(t, nil)
	p, err := svc.Create(context.Background(), stickersInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Error("ID not set after Create")
	}
	if p.Price != "1,200" {
		t.Errorf("Price = %q, want lowest variant price 1,200", p.Price)
	}
	if p.ImageURL != "10.png" {
		t.Errorf("ImageURL = %q, want 10.png", p.ImageURL)
	}
	if got := DisplayPrice(p); got != 960 {
		t.Errorf("DisplayPrice = %v, want 960", got)
	}
}

func TestCreate_Invalid(t *testing.T) {
	svc, _ := testService(t, nil)
	_, err := svc.Create(context.Background(), ProductInput{Price: "10"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Create = %v, want ErrInvalidInput", err)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	svc, _ := testService(t, nil)
	if _, err := svc.GetProduct(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProduct = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetProductByRef(context.Background(), "abc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProductByRef = %v, want ErrNotFound", err)
	}
}

func TestListProducts_CachedUntilWrite(t *testing.T) {
	svc, db := testService(t, nil)
	ctx := context.Background()
	if _, err := svc.Create(ctx, ProductInput{Title: "Tape", Price: "500", ImageURL: "t.png"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if list, _ := svc.ListProducts(ctx); len(list) != 1 {
		t.Fatalf("ListProducts = %d, want 1", len(list))
	}

	// bypass the service: the cached list must still be served
	db.Create(&catalogEntity.Product{Title: "Sneaky", Price: "1"})
	if list, _ := svc.ListProducts(ctx); len(list) != 1 {
		t.Errorf("cached ListProducts = %d, want 1", len(list))
	}

	if _, err := svc.Create(ctx, ProductInput{Title: "Pin", Price: "100", ImageURL: "p.png"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if list, _ := svc.ListProducts(ctx); len(list) != 3 {
		t.Errorf("ListProducts after write = %d, want 3", len(list))
	}
}

func TestUpdateAndDelete(t *testing.T) {
	fs := &fakeSearcher{}
	svc, _ := testService(t, fs)
	ctx := context.Background()
	p, _ := svc.Create(ctx, ProductInput{Title: "Tape", Price: "500", ImageURL: "t.png"})
	_, _ = svc.GetProduct(ctx, p.ID)

	in := ProductInput{Title: "Tape Deluxe", Price: "700", ImageURL: "t.png"}
	if _, err := svc.Update(ctx, p.ID, in); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := svc.GetProduct(ctx, p.ID)
	if got.Title != "Tape Deluxe" || got.Price != "700" {
		t.Errorf("after Update = %+v", got)
	}
	if _, err := svc.Update(ctx, 999, in); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetProduct(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProduct after Delete = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete twice = %v, want ErrNotFound", err)
	}
	if len(fs.indexed) != 2 || len(fs.removed) != 1 {
		t.Errorf("indexed %v removed %v", fs.indexed, fs.removed)
	}
}

func TestSearch_FallsBackToDatabase(t *testing.T) {
	fs := &fakeSearcher{err: errors.New("connection refused")}
	svc, _ := testService(t, fs)
	ctx := context.Background()
	_, _ = svc.Create(ctx, ProductInput{Title: "Retro Tape", Price: "500", ImageURL: "t.png"})
	_, _ = svc.Create(ctx, ProductInput{Title: "Enamel Pin", Price: "100", ImageURL: "p.png"})

	got, err := svc.Search(ctx, "tape")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Retro Tape" {
		t.Errorf("Search = %+v", got)
	}
}

func TestSearch_UsesIndexOrder(t *testing.T) {
	fs := &fakeSearcher{}
	svc, _ := testService(t, fs)
	ctx := context.Background()
	a, _ := svc.Create(ctx, ProductInput{Title: "A", Price: "1", ImageURL: "a.png"})
	b, _ := svc.Create(ctx, ProductInput{Title: "B", Price: "1", ImageURL: "b.png"})
	fs.ids = []uint{b.ID, 999, a.ID}

	got, err := svc.Search(ctx, "anything")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 || got[0].ID != b.ID || got[1].ID != a.ID {
		t.Errorf("Search = %+v", got)
	}
}

func TestSearch_EmptyQueryLists(t *testing.T) {
	svc, _ := testService(t, nil)
	ctx := context.Background()
	_, _ = svc.Create(ctx, ProductInput{Title: "A", Price: "1", ImageURL: "a.png"})
	if got, _ := svc.Search(ctx, "  "); len(got) != 1 {
		t.Errorf("Search empty = %d, want 1", len(got))
	}
}

func TestWarm(t *testing.T) {
	svc, db := testService(t, nil)
	ctx := context.Background()
	db.Create(&catalogEntity.Product{Title: "Direct", Price: "1"})
	n, err := svc.Warm(ctx)
	if err != nil {
		t.Fatalf("Warm: %v", err)
	}
	if n != 1 {
		t.Errorf("Warm = %d, want 1", n)
	}
	if len(svc.cache.GetKeysByTag(CacheTag)) != 2 {
		t.Errorf("cached keys = %v", svc.cache.GetKeysByTag(CacheTag))
	}
}

func TestReindex(t *testing.T) {
	fs := &fakeSearcher{}
	svc, db := testService(t, fs)
	db.Create(&catalogEntity.Product{Title: "A", Price: "1"})
	db.Create(&catalogEntity.Product{Title: "B", Price: "1"})
	n, err := svc.Reindex(context.Background())
	if err != nil || n != 2 {
		t.Errorf("Reindex = %d, %v", n, err)
	}
}
