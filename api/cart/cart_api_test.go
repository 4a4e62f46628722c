package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"mixtape.GO/api"
	"mixtape.GO/api/apitest"
	cartService "mixtape.GO/service/cart"
)

type client struct {
	e      *echo.Echo
	cookie *http.Cookie
}

func newClient(t *testing.T) (*client, *api.Deps) {
	deps := apitest.NewDeps(t)
	apitest.SeedProducts(t, deps)
	e := echo.New()
	RegisterCartRoutes(e, deps)
	return &client{e: e}, deps
}

func (cl *client) do(t *testing.T, method, path, body string) (int, cartService.Snapshot) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}
	rec := httptest.NewRecorder()
	cl.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == api.DefaultSessionCookie {
			cl.cookie = ck
		}
	}
	var snap cartService.Snapshot
	_ = json.Unmarshal(rec.Body.Bytes(), &snap)
	return rec.Code, snap
}

func TestCart_AddMergeAndSubtotal(t *testing.T) {
	cl, _ := newClient(t)
	cl.do(t, http.MethodPost, "/cart/items", `{"product_id":1,"variant":"10 Pack"}`)
	cl.do(t, http.MethodPost, "/cart/items", `{"product_id":1,"variant":"10 Pack"}`)
	code, snap := cl.do(t, http.MethodPost, "/cart/items", `{"product_id":2}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(snap.Entries) != 2 || snap.TotalItems != 3 {
		t.Fatalf("snapshot = %+v", snap)
	}
	// 2 x 1200 (20% off 1500) + 500
	if snap.Subtotal != 2900 {
		t.Errorf("Subtotal = %v, want 2900", snap.Subtotal)
	}
	if !snap.Open {
		t.Error("adding should open the cart")
	}
	if snap.Entries[1].Variant != "" {
		t.Errorf("plain product stored variant %q", snap.Entries[1].Variant)
	}
}

func TestCart_SessionsAreSeparate(t *testing.T) {
	cl, deps := newClient(t)
	cl.do(t, http.MethodPost, "/cart/items", `{"product_id":2}`)

	other := &client{e: cl.e}
	other.do(t, http.MethodPost, "/cart/items", `{"product_id":1,"variant":"20 Pack"}`)
	_, snap := other.do(t, http.MethodGet, "/cart", "")
	if snap.TotalItems != 1 || snap.Entries[0].ProductID != 1 {
		t.Errorf("second session sees %+v", snap.Entries)
	}
	if deps.Carts.Len() != 2 {
		t.Errorf("sessions = %d, want 2", deps.Carts.Len())
	}
}

func TestCart_CookielessReadsDoNotCreateSessions(t *testing.T) {
	cl, deps := newClient(t)
	for i := 0; i < 500; i++ {
		rec := httptest.NewRecorder()
		cl.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Fatal("GET /cart should not issue a session cookie")
		}
	}
	if deps.Carts.Len() != 0 {
		t.Errorf("in-memory carts = %d, want 0", deps.Carts.Len())
	}
	_, snap := cl.do(t, http.MethodGet, "/cart", "")
	if snap.Entries == nil || snap.TotalItems != 0 {
		t.Errorf("cookieless cart = %+v", snap)
	}
}

func TestCart_ReadSeesPersistedCartAfterEviction(t *testing.T) {
	cl, deps := newClient(t)
	cl.do(t, http.MethodPost, "/cart/items", `{"product_id":2}`)
	deps.Carts.Forget(cl.cookie.Value)

	_, snap := cl.do(t, http.MethodGet, "/cart", "")
	if snap.TotalItems != 1 {
		t.Errorf("TotalItems = %d, want 1", snap.TotalItems)
	}
	if deps.Carts.Len() != 0 {
		t.Errorf("read should not reload the store into memory, Len = %d", deps.Carts.Len())
	}
}

func TestCart_PatchRequiresQuantity(t *testing.T) {
	cl, _ := newClient(t)
	cl.do(t, http.MethodPost, "/cart/items", `{"product_id":2}`)
	code, _ := cl.do(t, http.MethodPatch, "/cart/items", `{"product_id":2}`)
	if code != http.StatusBadRequest {
		t.Errorf("PATCH without quantity = %d, want 400", code)
	}
	_, snap := cl.do(t, http.MethodGet, "/cart", "")
	if snap.TotalItems != 1 {
		t.Errorf("line should survive a PATCH without quantity, TotalItems = %d", snap.TotalItems)
	}
}

func TestCart_UpdateRemoveClear(t *testing.T) {
	cl, _ := newClient(t)
	cl.do(t, http.MethodPost, "/cart/items", `{"product_id":1,"variant":"10 Pack"}`)
	cl.do(t, http.MethodPost, "/cart/items", `{"product_id":1,"variant":"20 Pack"}`)
	cl.do(t, http.MethodPost, "/cart/items", `{"product_id":2}`)

	_, snap := cl.do(t, http.MethodPatch, "/cart/items", `{"product_id":1,"variant":"20 Pack","quantity":3}`)
	if snap.TotalItems != 5 {
		t.Errorf("after PATCH TotalItems = %d, want 5", snap.TotalItems)
	}
	_, snap = cl.do(t, http.MethodDelete, "/cart/items?product_id=1&variant=10%20Pack", "")
	if len(snap.Entries) != 2 {
		t.Errorf("after DELETE entries = %+v", snap.Entries)
	}
	_, snap = cl.do(t, http.MethodPatch, "/cart/items", `{"product_id":2,"variant":"Standard","quantity":0}`)
	if len(snap.Entries) != 1 || snap.Entries[0].Variant != "20 Pack" {
		t.Errorf("after PATCH 0 entries = %+v", snap.Entries)
	}
	_, snap = cl.do(t, http.MethodPost, "/cart/clear", "")
	if snap.TotalItems != 0 {
		t.Errorf("after clear TotalItems = %d", snap.TotalItems)
	}
}

func TestCart_Errors(t *testing.T) {
	cl, _ := newClient(t)
	if code, _ := cl.do(t, http.MethodPost, "/cart/items", `{"product_id":99}`); code != http.StatusNotFound {
		t.Errorf("missing product = %d, want 404", code)
	}
	if code, _ := cl.do(t, http.MethodPost, "/cart/items", `{"product_id":1,"variant":"99 Pack"}`); code != http.StatusBadRequest {
		t.Errorf("unknown variant = %d, want 400", code)
	}
	if code, _ := cl.do(t, http.MethodPost, "/cart/items", `{}`); code != http.StatusBadRequest {
		t.Errorf("no product = %d, want 400", code)
	}
}

func TestCart_Toggle(t *testing.T) {
	cl, _ := newClient(t)
	req := httptest.NewRequest(http.MethodPost, "/cart/toggle", nil)
	rec := httptest.NewRecorder()
	cl.e.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), `"open":true`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
