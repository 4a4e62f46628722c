package cart

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mixtape.GO/api"
	catalogService "mixtape.GO/service/catalog"
)

func init() {
	api.RegisterRoute(RegisterCartRoutes)
}

type lineRequest struct {
	ProductID uint   `json:"product_id" query:"product_id" form:"product_id"`
	Variant   string `json:"variant" query:"variant" form:"variant"`
	Quantity  *int   `json:"quantity" query:"quantity" form:"quantity"`
}

// RegisterCartRoutes mounts the session cart under /cart. Only routes that
// change the cart issue a session.
func RegisterCartRoutes(e *echo.Echo, deps *api.Deps) {
	g := e.Group("/cart")
	sess := deps.Session()

	g.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, deps.CartView(c))
	}, deps.ReadSession())

	// POST /cart/items {"product_id":1,"variant":"10 Pack"}
	// Price, title and image come from the catalog, never from the client.
	g.POST("/items", func(c echo.Context) error {
		var req lineRequest
		if err := c.Bind(&req); err != nil || req.ProductID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id required"})
		}
		ctx := c.Request().Context()
		p, err := deps.Catalog.GetProduct(ctx, req.ProductID)
		if err != nil {
			return api.Error(c, err)
		}
		sel, err := catalogService.Select(p, req.Variant)
		if err != nil {
			return api.Error(c, err)
		}
		store := deps.Cart(c)
		if err := store.AddItem(ctx, sel.Item()); err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, store.Snapshot())
	}, sess)

	// PATCH /cart/items {"product_id":1,"variant":"10 Pack","quantity":3}
	// quantity 0 removes the line; leaving it out is an error.
	g.PATCH("/items", func(c echo.Context) error {
		var req lineRequest
		if err := c.Bind(&req); err != nil || req.ProductID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id required"})
		}
		if req.Quantity == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity required"})
		}
		store := deps.Cart(c)
		if err := store.UpdateQuantity(c.Request().Context(), req.ProductID, req.Variant, *req.Quantity); err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, store.Snapshot())
	}, sess)

	// DELETE /cart/items?product_id=1&variant=10%20Pack
	g.DELETE("/items", func(c echo.Context) error {
		var req lineRequest
		if err := c.Bind(&req); err != nil || req.ProductID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id required"})
		}
		store := deps.Cart(c)
		if err := store.RemoveItem(c.Request().Context(), req.ProductID, req.Variant); err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, store.Snapshot())
	}, sess)

	g.POST("/clear", func(c echo.Context) error {
		store := deps.Cart(c)
		if err := store.Clear(c.Request().Context()); err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, store.Snapshot())
	}, sess)

	g.POST("/toggle", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"open": deps.Cart(c).ToggleOpen()})
	}, sess)
}
