package cron

import (
	"context"

	"go.uber.org/zap"

	"mixtape.GO/config"
	"mixtape.GO/service/catalog"
)

// CatalogWarm reloads the catalog read cache.
func CatalogWarm(svc *catalog.Service, log *zap.Logger) RunFunc {
	return func(ctx context.Context, _ ...string) error {
		n, err := svc.Warm(ctx)
		if err != nil {
			return err
		}
		log.Debug("catalog cache warmed", zap.Int("products", n))
		return nil
	}
}

// CatalogReindex pushes the catalog to the search index.
func CatalogReindex(svc *catalog.Service, log *zap.Logger) RunFunc {
	return func(ctx context.Context, _ ...string) error {
		n, err := svc.Reindex(ctx)
		if err != nil {
			return err
		}
		log.Debug("catalog reindexed", zap.Int("products", n))
		return nil
	}
}

// Builtins are the jobs the storefront always carries, on their configured schedules.
func Builtins(svc *catalog.Service, log *zap.Logger) map[string]Job {
	if log == nil {
		log = zap.NewNop()
	}
	config.LoadAppConfig()
	schedules := config.CronSchedules()
	return map[string]Job{
		config.CronCatalogWarm: {
			Schedule: schedules[config.CronCatalogWarm],
			Run:      CatalogWarm(svc, log),
		},
		config.CronCatalogReindex: {
			Schedule: schedules[config.CronCatalogReindex],
			Run:      CatalogReindex(svc, log),
		},
	}
}
