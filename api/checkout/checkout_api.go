package checkout

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mixtape.GO/api"
	checkoutService "mixtape.GO/service/checkout"
)

func init() {
	api.RegisterRoute(RegisterCheckoutRoutes)
}

// RegisterCheckoutRoutes mounts POST /checkout and GET /checkout/preview.
func RegisterCheckoutRoutes(e *echo.Echo, deps *api.Deps) {
	g := e.Group("/checkout", deps.ReadSession())

	g.GET("/preview", func(c echo.Context) error {
		res, err := deps.Checkout.Preview(deps.CartView(c))
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, res)
	})

	// POST /checkout[?redirect=1]
	// The cart is cleared as soon as the hand-off link is issued. Without a
	// session there is nothing to check out.
	g.POST("", func(c echo.Context) error {
		if api.SessionID(c) == "" {
			return api.Error(c, checkoutService.ErrEmptyCart)
		}
		res, err := deps.Checkout.Checkout(c.Request().Context(), deps.Cart(c))
		if err != nil {
			return api.Error(c, err)
		}
		if c.QueryParam("redirect") == "1" {
			return c.Redirect(http.StatusSeeOther, res.URL)
		}
		return c.JSON(http.StatusOK, res)
	})
}
