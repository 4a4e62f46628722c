package catalog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"mixtape.GO/api"
	catalogService "mixtape.GO/service/catalog"
)

func init() {
	api.RegisterModule(RegisterCatalogRoutes)
}

// RegisterCatalogRoutes mounts product reads (public) and admin writes on /api.
func RegisterCatalogRoutes(g *echo.Group, deps *api.Deps) {
	svc := deps.Catalog

	// GET /api/products?q=
	g.GET("/products", func(c echo.Context) error {
		products, err := svc.Search(c.Request().Context(), c.QueryParam("q"))
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": toViews(products), "total": len(products)})
	})

	g.GET("/products/:id", func(c echo.Context) error {
		p, err := svc.GetProductByRef(c.Request().Context(), c.Param("id"))
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, toView(p))
	})

	// GET /api/products/:id/price?variant=10%20Pack
	g.GET("/products/:id/price", func(c echo.Context) error {
		start := time.Now()
		p, err := svc.GetProductByRef(c.Request().Context(), c.Param("id"))
		if err != nil {
			return api.Error(c, err)
		}
		sel, err := catalogService.Select(p, c.QueryParam("variant"))
		if err != nil {
			return api.Error(c, err)
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(http.StatusOK, sel)
	})

	g.POST("/products", func(c echo.Context) error {
		var in catalogService.ProductInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON body"})
		}
		p, err := svc.Create(c.Request().Context(), in)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusCreated, toView(p))
	})

	g.PUT("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		var in catalogService.ProductInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON body"})
		}
		p, err := svc.Update(c.Request().Context(), uint(id), in)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, toView(p))
	})

	g.DELETE("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		if err := svc.Delete(c.Request().Context(), uint(id)); err != nil {
			return api.Error(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})
}
