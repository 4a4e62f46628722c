package cron

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mixtape.GO/config"
	"mixtape.GO/core/cache"
	catalogEntity "mixtape.GO/model/entity/catalog"
	catalogRepo "mixtape.GO/model/repository/catalog"
	"mixtape.GO/service/catalog"
)

func TestMerge_RegisteredWins(t *testing.T) {
	a := Job{Schedule: "@hourly"}
	b := Job{Schedule: "@daily"}
	got := Merge(map[string]Job{"x": a, "y": a}, map[string]Job{"x": b})
	if got["x"].Schedule != "@daily" || got["y"].Schedule != "@hourly" {
		t.Fatalf("Merge = %+v", got)
	}
}

func TestRunOnce(t *testing.T) {
	var gotArgs []string
	builtins := map[string]Job{
		"echo": {Schedule: "@hourly", Run: func(_ context.Context, args ...string) error {
			gotArgs = args
			return nil
		}},
		"boom": {Schedule: "@hourly", Run: func(context.Context, ...string) error {
			return errors.New("boom")
		}},
	}
	defer registryUnlock()

	if err := RunOnce(context.Background(), nil, builtins, "ECHO", "a", "b"); err != nil {
		t.Fatal(err)
	}
	if len(gotArgs) != 2 || gotArgs[1] != "b" {
		t.Errorf("args = %v", gotArgs)
	}
	if err := RunOnce(context.Background(), nil, builtins, "boom"); err == nil {
		t.Error("expected job error")
	}
	if err := RunOnce(context.Background(), nil, builtins, "missing"); !errors.Is(err, ErrUnknownJob) {
		t.Errorf("err = %v, want ErrUnknownJob", err)
	}
}

func TestStartCron_RejectsBadSchedule(t *testing.T) {
	defer registryUnlock()
	_, err := StartCron(context.Background(), nil, map[string]Job{
		"bad": {Schedule: "not a schedule", Run: func(context.Context, ...string) error { return nil }},
	})
	if err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestStartCron_SkipsDisabled(t *testing.T) {
	defer registryUnlock()
	c, err := StartCron(context.Background(), nil, map[string]Job{
		"off":   {Schedule: "off"},
		"empty": {Schedule: ""},
		"on":    {Schedule: "@every 1h", Run: func(context.Context, ...string) error { return nil }},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Stop()
	if n := len(c.Entries()); n != 1 {
		t.Errorf("entries = %d, want 1", n)
	}
}

func TestBuiltins_CatalogWarm(t *testing.T) {
	config.LoadAppConfig()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "cron.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&catalogEntity.Product{}); err != nil {
		t.Fatal(err)
	}
	db.Create(&catalogEntity.Product{Title: "Retro Tape", Price: "500", ImageURL: "tape.png"})

	c := cache.New()
	svc := catalog.NewService(catalogRepo.NewProductRepository(db), catalog.Options{Cache: c})
	jobs := Builtins(svc, nil)
	warm, ok := jobs[config.CronCatalogWarm]
	if !ok {
		t.Fatal("catalog warm job missing")
	}
	if err := warm.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(c.GetKeysByTag(catalog.CacheTag)) != 2 {
		t.Errorf("cached keys = %v, want list + one product", c.GetKeysByTag(catalog.CacheTag))
	}
	if err := jobs[config.CronCatalogReindex].Run(context.Background()); err != nil {
		t.Errorf("reindex without searcher: %v", err)
	}
}
