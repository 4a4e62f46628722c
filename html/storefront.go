package html

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mixtape.GO/api"
	"mixtape.GO/config"
	"mixtape.GO/core/price"
	"mixtape.GO/html/parts"
	catalogEntity "mixtape.GO/model/entity/catalog"
	"mixtape.GO/service/cart"
	"mixtape.GO/service/catalog"
)

func init() {
	api.RegisterHTMLModule(RegisterStorefrontRoutes)
}

type productCard struct {
	ID            uint
	Title         string
	ImageURL      string
	Badge         *price.Badge
	DisplayPrice  float64
	OriginalPrice float64
	HasVariants   bool
	Discounted    bool
}

func newCard(p *catalogEntity.Product) productCard {
	c := productCard{
		ID:            p.ID,
		Title:         p.Title,
		ImageURL:      p.ImageURL,
		Badge:         p.Badge(),
		DisplayPrice:  catalog.DisplayPrice(p),
		OriginalPrice: catalog.OriginalPrice(p),
		HasVariants:   p.HasVariants(),
	}
	c.Discounted = c.DisplayPrice < c.OriginalPrice
	return c
}

func appName() string {
	if config.AppConfig != nil && config.AppConfig.AppName != "" {
		return config.AppConfig.AppName
	}
	return "Mixtape Era"
}

// page builds the data every template's head needs.
func page(title string, snap cart.Snapshot) map[string]interface{} {
	return map[string]interface{}{
		"Title":       title + " - " + appName(),
		"AppName":     appName(),
		"CriticalCSS": parts.CriticalCSS(),
		"Cart":        snap,
	}
}

// RegisterStorefrontRoutes mounts the HTML storefront.
func RegisterStorefrontRoutes(e *echo.Echo, deps *api.Deps) {
	if e.Renderer == nil {
		tmpl, err := NewTemplate()
		if err != nil {
			panic("html templates: " + err.Error())
		}
		e.Renderer = tmpl
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	sess := deps.Session()
	view := deps.ReadSession()

	e.GET("/", func(c echo.Context) error {
		ctx := c.Request().Context()
		q := c.QueryParam("q")
		var products []catalogEntity.Product
		var snap cart.Snapshot

		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			var err error
			products, err = deps.Catalog.Search(egCtx, q)
			return err
		})
		eg.Go(func() error {
			snap = deps.CartView(c)
			return nil
		})
		if err := eg.Wait(); err != nil {
			log.Error("storefront listing failed", zap.Error(err))
			return c.String(http.StatusInternalServerError, "Error fetching products")
		}

		cards := make([]productCard, 0, len(products))
		for i := range products {
			cards = append(cards, newCard(&products[i]))
		}
		data := page("Drops", snap)
		data["Products"] = cards
		data["Query"] = q
		return c.Render(http.StatusOK, "home.html", data)
	}, view)

	e.GET("/product/:id", func(c echo.Context) error {
		p, err := deps.Catalog.GetProductByRef(c.Request().Context(), c.Param("id"))
		snap := deps.CartView(c)
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Render(http.StatusNotFound, "not_found.html", page("Not found", snap))
		}
		if err != nil {
			log.Error("product page failed", zap.String("id", c.Param("id")), zap.Error(err))
			return c.String(http.StatusInternalServerError, "Error fetching product")
		}
		sel, err := catalog.Select(p, c.QueryParam("variant"))
		if err != nil {
			sel, _ = catalog.Select(p, "")
		}
		data := page(p.Title, snap)
		data["Product"] = p
		data["Selection"] = sel
		return c.Render(http.StatusOK, "product.html", data)
	}, view)

	// POST /product/:id/add (form: variant)
	e.POST("/product/:id/add", func(c echo.Context) error {
		ctx := c.Request().Context()
		p, err := deps.Catalog.GetProductByRef(ctx, c.Param("id"))
		if err != nil {
			return c.Render(http.StatusNotFound, "not_found.html", page("Not found", deps.CartView(c)))
		}
		sel, err := catalog.Select(p, c.FormValue("variant"))
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		if err := deps.Cart(c).AddItem(ctx, sel.Item()); err != nil {
			log.Error("add to cart failed", zap.Error(err))
		}
		return c.Redirect(http.StatusSeeOther, "/stash")
	}, sess)

	e.GET("/stash", func(c echo.Context) error {
		return c.Render(http.StatusOK, "cart.html", page("Your stash", deps.CartView(c)))
	}, view)
}
