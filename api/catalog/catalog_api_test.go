package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"mixtape.GO/api"
	"mixtape.GO/api/apitest"
)

func catalogServer(t *testing.T) (*echo.Echo, *api.Deps) {
	deps := apitest.NewDeps(t)
	apitest.SeedProducts(t, deps)
	e := echo.New()
	RegisterCatalogRoutes(e.Group("/api"), deps)
	return e, deps
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListProducts(t *testing.T) {
	e, _ := catalogServer(t)
	rec := serve(e, http.MethodGet, "/api/products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Items []ProductView `json:"items"`
		Total int           `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 2 || body.Items[0].DisplayPrice != 1200 || body.Items[0].OriginalPrice != 1500 {
		t.Errorf("body = %+v", body)
	}
}

func TestListProducts_Query(t *testing.T) {
	e, _ := catalogServer(t)
	rec := serve(e, http.MethodGet, "/api/products?q=tape", "")
	if !strings.Contains(rec.Body.String(), "Retro Tape") || strings.Contains(rec.Body.String(), "Holo") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	e, _ := catalogServer(t)
	if rec := serve(e, http.MethodGet, "/api/products/42", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/api/products/abc", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestVariantPrice(t *testing.T) {
	e, _ := catalogServer(t)
	rec := serve(e, http.MethodGet, "/api/products/1/price?variant=20%20Pack", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Duration-ms") == "" {
		t.Error("missing X-Request-Duration-ms header")
	}
	var sel struct {
		Variant string  `json:"variant"`
		Price   float64 `json:"price"`
		Image   string  `json:"image_url"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &sel)
	if sel.Variant != "20 Pack" || sel.Price != 2000 || sel.Image != "20.png" {
		t.Errorf("selection = %+v", sel)
	}

	if rec := serve(e, http.MethodGet, "/api/products/1/price?variant=nope", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown variant status = %d, want 400", rec.Code)
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	e, _ := catalogServer(t)
	rec := serve(e, http.MethodPost, "/api/products", `{"title":"Pin","variants":[{"name":"Gold","price":"900","image_url":"g.png"},{"name":"Silver","price":"700","image_url":"s.png"}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body %s", rec.Code, rec.Body.String())
	}
	var created ProductView
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	if created.Price != "700" || created.ImageURL != "s.png" {
		t.Errorf("created = %+v", created)
	}

	rec = serve(e, http.MethodPost, "/api/products", `{"price":"1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid create status = %d, want 400", rec.Code)
	}

	rec = serve(e, http.MethodPut, "/api/products/2", `{"title":"Retro Tape C60","price":"450","image_url":"tape.png"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "C60") {
		t.Errorf("update status = %d body %s", rec.Code, rec.Body.String())
	}

	if rec = serve(e, http.MethodDelete, "/api/products/2", ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
	if rec = serve(e, http.MethodDelete, "/api/products/2", ""); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}
