// Package custom holds site-specific extensions registered from init().
package custom

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"mixtape.GO/api"
)

func init() {
	api.RegisterRoute(func(e *echo.Echo, deps *api.Deps) {
		e.GET("/healthz", func(c echo.Context) error {
			return c.JSON(http.StatusOK, Health(c.Request().Context(), deps))
		})
	})
}

// HealthReport is the body of GET /healthz.
type HealthReport struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Carts    int    `json:"open_carts"`
	Time     string `json:"time"`
}

// Health pings the database and counts carts held in memory.
func Health(ctx context.Context, deps *api.Deps) HealthReport {
	r := HealthReport{Status: "ok", Database: "ok", Time: time.Now().UTC().Format(time.RFC3339)}
	if deps == nil || deps.DB == nil {
		r.Database = "unconfigured"
		return r
	}
	if deps.Carts != nil {
		r.Carts = deps.Carts.Len()
	}
	sqlDB, err := deps.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		r.Status, r.Database = "degraded", "down"
		if deps.Log != nil {
			deps.Log.Warn("health: database ping failed", zap.Error(err))
		}
	}
	return r
}
