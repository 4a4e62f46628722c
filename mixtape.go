//go:build !cli
// +build !cli

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"mixtape.GO/api"
	_ "mixtape.GO/api/cart"
	_ "mixtape.GO/api/catalog"
	_ "mixtape.GO/api/checkout"
	_ "mixtape.GO/api/graphql"
	_ "mixtape.GO/api/realtime"
	"mixtape.GO/config"
	"mixtape.GO/core/app"
	"mixtape.GO/core/auth"
	"mixtape.GO/cron"
	_ "mixtape.GO/custom"
	"mixtape.GO/html"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, app.Options{})
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer a.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			c.Response().Before(func() {
				c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
			})
			return next(c)
		}
	})

	tmpl, err := html.NewTemplate()
	if err != nil {
		a.Log.Fatal("templates", zap.Error(err))
	}
	e.Renderer = tmpl

	deps := &api.Deps{
		DB:            a.DB,
		Log:           a.Log,
		Catalog:       a.Catalog,
		Carts:         a.Carts,
		Checkout:      a.Checkout,
		SessionCookie: config.AppConfig.SessionCookie,
	}

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware(a.DB))
	api.ApplyModules(apiGroup, deps)
	api.ApplyRoutes(e, deps)

	if n, err := a.Catalog.Warm(ctx); err != nil {
		a.Log.Warn("catalog warm failed", zap.Error(err))
	} else {
		a.Log.Info("catalog warmed", zap.Int("products", n))
	}

	sched, err := cron.StartCron(ctx, a.Log, cron.Builtins(a.Catalog, a.Log))
	if err != nil {
		a.Log.Fatal("cron", zap.Error(err))
	}
	defer sched.Stop()

	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "doom", "larry3d", "puffy"}
	figure.NewFigure("Mixtape Era", fonts[rand.Intn(len(fonts))], true).Print()
	fmt.Println()

	port := config.AppConfig.Port
	go func() {
		a.Log.Info("server running", zap.String("addr", ":"+port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	a.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		a.Log.Error("shutdown", zap.Error(err))
	}
}
