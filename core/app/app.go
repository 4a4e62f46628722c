// Package app wires config, storage and services for both the server and the CLI.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"mixtape.GO/config"
	"mixtape.GO/core/cache"
	"mixtape.GO/core/logger"
	"mixtape.GO/migrations"
	catalogRepo "mixtape.GO/model/repository/catalog"
	"mixtape.GO/model/repository/storage"
	"mixtape.GO/service/cart"
	"mixtape.GO/service/catalog"
	"mixtape.GO/service/checkout"
)

type App struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Log      *zap.Logger
	Storage  storage.Driver
	Catalog  *catalog.Service
	Carts    *cart.Sessions
	Checkout *checkout.Service
}

// Options tweak the bootstrap for the caller.
type Options struct {
	// Launcher receives checkout links. The server leaves it nil.
	Launcher checkout.Launcher
	// Out is where CLI launchers print; used when Launcher is nil and Out is set.
	Out io.Writer
}

// New loads config and builds every shared service.
func New(ctx context.Context, opts Options) (*App, error) {
	config.LoadAppConfig()
	cfg := config.AppConfig

	log, err := logger.New(logger.Options{Service: cfg.AppName, Env: cfg.Env, Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	db, err := config.NewDB()
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping: %w", err)
	}
	if config.DBDriver() != "mysql" {
		if err := migrations.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	config.InitRedis()
	rdb := config.RedisClient
	if rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis configured but not reachable", zap.Error(err))
			rdb = nil
		}
	}

	driver, err := storage.Open(cfg.CartStorage, db, rdb)
	if err != nil {
		return nil, err
	}

	catalogOpts := catalog.Options{
		Cache: cache.GetInstance(),
		TTL:   cfg.CatalogCacheTTL,
		Log:   log.Named("catalog"),
	}
	es, err := catalog.NewElasticSearcher(cfg.ElasticsearchHost, cfg.ElasticsearchIndex)
	if err != nil {
		log.Warn("search disabled", zap.Error(err))
	} else if es != nil {
		catalogOpts.Searcher = es
	}

	launcher := opts.Launcher
	if launcher == nil && opts.Out != nil {
		launcher = checkout.WriterLauncher{W: opts.Out}
	}

	carts := cart.NewSessions(driver, cfg.CartKey, cart.SessionOptions{
		TTL: cfg.CartSessionTTL,
		Log: log.Named("cart"),
	})

	a := &App{
		DB:      db,
		Redis:   rdb,
		Log:     log,
		Storage: driver,
		Catalog: catalog.NewService(catalogRepo.GetProductRepository(db), catalogOpts),
		Carts:   carts,
		Checkout: checkout.NewService(checkout.Config{
			BaseURL: cfg.CheckoutBaseURL,
			Phone:   cfg.CheckoutPhone,
			Template: checkout.Template{
				Greeting: cfg.CheckoutGreeting,
				Closing:  cfg.CheckoutClosing,
			},
		}, launcher, log.Named("checkout")),
	}
	log.Info("bootstrap complete",
		zap.String("db", config.DBDriver()),
		zap.String("cart_storage", cfg.CartStorage),
		zap.Bool("redis", rdb != nil),
		zap.Bool("search", catalogOpts.Searcher != nil))
	return a, nil
}

// LocalCart is the un-sessioned cart used by the CLI.
func (a *App) LocalCart(ctx context.Context) *cart.Store {
	return a.Carts.Get(ctx, "")
}

func (a *App) Close() {
	_ = a.Log.Sync()
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
