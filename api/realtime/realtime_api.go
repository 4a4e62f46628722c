package realtime

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"mixtape.GO/api"
	"mixtape.GO/core/price"
	catalogService "mixtape.GO/service/catalog"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// maxBatch bounds ids per request.
const maxBatch = 50

type VariantQuote struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// PriceQuote is the live price of one product.
type PriceQuote struct {
	ID            uint           `json:"id"`
	DisplayPrice  float64        `json:"display_price"`
	OriginalPrice float64        `json:"original_price"`
	Badge         *price.Badge   `json:"badge,omitempty"`
	Variants      []VariantQuote `json:"variants,omitempty"`
}

type pricesResponse struct {
	Items   []PriceQuote `json:"items"`
	Missing []uint       `json:"missing"`
}

func parseIDs(raw string) ([]uint, error) {
	var ids []uint
	seen := map[uint]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			return nil, errors.New("ids must be positive integers")
		}
		if !seen[uint(id)] {
			seen[uint(id)] = true
			ids = append(ids, uint(id))
		}
	}
	if len(ids) == 0 {
		return nil, errors.New("ids required")
	}
	if len(ids) > maxBatch {
		return nil, errors.New("too many ids")
	}
	return ids, nil
}

// RegisterRealtimeRoutes mounts the batch price lookup used to refresh open
// product cards and the cart drawer.
func RegisterRealtimeRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/realtime")
	svc := deps.Catalog

	// GET /api/realtime/prices?ids=1,2,3
	g.GET("/prices", func(c echo.Context) error {
		start := time.Now()
		ids, err := parseIDs(c.QueryParam("ids"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		// each goroutine writes only its own slot
		quotes := make([]*PriceQuote, len(ids))
		missing := make([]bool, len(ids))
		eg, ctx := errgroup.WithContext(c.Request().Context())
		for i, id := range ids {
			i, id := i, id
			eg.Go(func() error {
				p, err := svc.GetProduct(ctx, id)
				if errors.Is(err, catalogService.ErrNotFound) {
					missing[i] = true
					return nil
				}
				if err != nil {
					return err
				}
				q := &PriceQuote{
					ID:            p.ID,
					DisplayPrice:  catalogService.DisplayPrice(p),
					OriginalPrice: catalogService.OriginalPrice(p),
					Badge:         p.Badge(),
				}
				for _, v := range p.Variants {
					sel, err := catalogService.Select(p, v.Name)
					if err != nil {
						return err
					}
					q.Variants = append(q.Variants, VariantQuote{Name: v.Name, Price: sel.UnitPrice})
				}
				quotes[i] = q
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return api.Error(c, err)
		}

		resp := pricesResponse{Items: make([]PriceQuote, 0, len(ids)), Missing: []uint{}}
		for i, q := range quotes {
			switch {
			case q != nil:
				resp.Items = append(resp.Items, *q)
			case missing[i]:
				resp.Missing = append(resp.Missing, ids[i])
			}
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(http.StatusOK, resp)
	})
}
