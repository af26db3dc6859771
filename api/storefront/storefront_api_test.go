package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopzone.GO/api"
	"shopzone.GO/core/cache"
	"shopzone.GO/core/events"
	"shopzone.GO/model/entity"
	componentRepo "shopzone.GO/model/repository/component"
	orderRepo "shopzone.GO/model/repository/order"
	productRepo "shopzone.GO/model/repository/product"
	"shopzone.GO/service/catalog"
	"shopzone.GO/service/checkout"
	"shopzone.GO/service/order"
	"shopzone.GO/service/storefront"
)

type harness struct {
	e      *echo.Echo
	db     *gorm.DB
	events *events.Recorder
	cookie *http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(entity.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := catalog.Seed(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := &events.Recorder{}
	c := cache.NewCache()
	svc := catalog.NewService(productRepo.NewProductRepository(db), componentRepo.NewComponentRepository(db), c, time.Minute, nil)
	placer := order.NewService(orderRepo.NewOrderRepository(db), rec, nil)
	mgr := storefront.NewManager(c, storefront.Options{TTL: time.Hour, Placer: placer, Rates: checkout.DefaultRates()})

	e := echo.New()
	RegisterStorefrontRoutes(e, &api.Deps{DB: db, Catalog: svc, Sessions: mgr})
	return &harness{e: e, db: db, events: rec}
}

// do sends a request carrying the session cookie and keeps any new one.
func (h *harness) do(t *testing.T, method, path, contentType, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			h.cookie = ck
		}
	}
	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, out
}

func (h *harness) json(t *testing.T, method, path, body string) (int, map[string]interface{}) {
	return h.do(t, method, path, echo.MIMEApplicationJSON, body)
}

func TestStorefront_SessionCookie(t *testing.T) {
	h := newHarness(t)
	code, st := h.do(t, http.MethodGet, "/storefront/state", "", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if h.cookie == nil || h.cookie.Value != st["sessionId"] {
		t.Fatalf("cookie = %v, want session id %v", h.cookie, st["sessionId"])
	}
	first := h.cookie.Value

	h.do(t, http.MethodGet, "/storefront/state", "", "")
	if h.cookie.Value != first {
		t.Errorf("session changed: %s -> %s", first, h.cookie.Value)
	}
}

func TestStorefront_CartFlow(t *testing.T) {
	h := newHarness(t)

	h.json(t, http.MethodPost, "/storefront/cart/items", `{"productId":1}`)
	h.json(t, http.MethodPost, "/storefront/cart/items", `{"productId":1}`)
	code, cv := h.json(t, http.MethodPost, "/storefront/cart/items", `{"productId":3}`)
	if code != http.StatusOK {
		t.Fatalf("add: status = %d", code)
	}
	if cv["count"] != float64(2) || cv["quantity"] != float64(3) {
		t.Errorf("count/quantity = %v/%v, want 2/3", cv["count"], cv["quantity"])
	}
	if cv["total"] != "2247.00" {
		t.Errorf("total = %v, want 2247.00", cv["total"])
	}

	_, cv = h.do(t, http.MethodPost, "/storefront/cart/items/3/decrement", "", "")
	if cv["count"] != float64(1) {
		t.Errorf("after decrement count = %v, want 1", cv["count"])
	}

	_, cv = h.json(t, http.MethodPut, "/storefront/cart/items/1", `{"quantity":5}`)
	if cv["total"] != "4995.00" {
		t.Errorf("after set total = %v, want 4995.00", cv["total"])
	}

	code, _ = h.json(t, http.MethodPost, "/storefront/cart/items", `{"productId":999}`)
	if code != http.StatusNotFound {
		t.Errorf("unknown product: status = %d, want 404", code)
	}

	_, cv = h.do(t, http.MethodDelete, "/storefront/cart", "", "")
	if cv["count"] != float64(0) || cv["total"] != "0.00" {
		t.Errorf("after clear = %v", cv)
	}
}

func TestStorefront_ProductsFilterAndCarousel(t *testing.T) {
	h := newHarness(t)

	code, res := h.do(t, http.MethodGet, "/storefront/products?category=Fashion", "", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	products := res["products"].([]interface{})
	for _, p := range products {
		if p.(map[string]interface{})["category"] != "Fashion" {
			t.Errorf("got non-Fashion product %v", p)
		}
	}
	if res["query"] != "category=Fashion" {
		t.Errorf("query = %v, want category=Fashion", res["query"])
	}

	// without params the stored filter applies
	_, res = h.do(t, http.MethodGet, "/storefront/products", "", "")
	if got := len(res["products"].([]interface{})); got != len(products) {
		t.Errorf("stored filter: %d products, want %d", got, len(products))
	}

	_, res = h.do(t, http.MethodGet, "/storefront/products?search=zzz", "", "")
	if res["empty"] != true {
		t.Errorf("empty = %v, want true", res["empty"])
	}

	// product 1 has four media items
	h.do(t, http.MethodPost, "/storefront/carousel/1/prev", "", "")
	_, res = h.do(t, http.MethodPost, "/storefront/carousel/1/next", "", "")
	if res["index"] != float64(0) {
		t.Errorf("prev then next index = %v, want 0", res["index"])
	}
	code, _ = h.json(t, http.MethodPut, "/storefront/carousel/1", `{"index":9}`)
	if code != http.StatusUnprocessableEntity {
		t.Errorf("out of range: status = %d, want 422", code)
	}
}

func TestStorefront_Language(t *testing.T) {
	h := newHarness(t)
	code, res := h.json(t, http.MethodPut, "/storefront/language", `{"language":"ar"}`)
	if code != http.StatusOK || res["dir"] != "rtl" {
		t.Fatalf("set ar: %d %v", code, res)
	}
	_, st := h.do(t, http.MethodGet, "/storefront/state", "", "")
	if st["language"] != "ar" || st["dir"] != "rtl" {
		t.Errorf("state language/dir = %v/%v", st["language"], st["dir"])
	}
	code, _ = h.json(t, http.MethodPut, "/storefront/language", `{"language":"fr"}`)
	if code != http.StatusUnprocessableEntity {
		t.Errorf("unsupported language: status = %d, want 422", code)
	}
}

func TestStorefront_Checkout(t *testing.T) {
	h := newHarness(t)
	h.json(t, http.MethodPost, "/storefront/cart/items", `{"productId":1}`)
	h.json(t, http.MethodPost, "/storefront/cart/items", `{"productId":3}`)

	// payment before shipping is rejected
	code, _ := h.json(t, http.MethodPost, "/storefront/checkout/payment", `{"method":"paypal"}`)
	if code != http.StatusUnprocessableEntity {
		t.Errorf("payment first: status = %d, want 422", code)
	}

	code, res := h.do(t, http.MethodPost, "/storefront/checkout/shipping", echo.MIMEApplicationForm,
		url.Values{"firstName": {"Ada"}, "lastName": {"Lovelace"}, "email": {"bad"}}.Encode())
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("bad shipping: status = %d, want 422", code)
	}
	if fields := res["fields"].(map[string]interface{}); fields["email"] == nil || fields["zip"] == nil {
		t.Errorf("fields = %v, want email and zip", fields)
	}

	form := url.Values{
		"firstName": {"Ada"}, "lastName": {"Lovelace"}, "email": {"ada@example.com"},
		"address": {"1 Main St"}, "city": {"Austin"}, "state": {"tx"}, "zip": {"73301"},
	}
	code, res = h.do(t, http.MethodPost, "/storefront/checkout/shipping", echo.MIMEApplicationForm, form.Encode())
	if code != http.StatusOK || res["step"] != checkout.StepPayment.String() {
		t.Fatalf("shipping: %d %v", code, res)
	}

	code, res = h.json(t, http.MethodPost, "/storefront/checkout/payment",
		`{"method":"card","cardNumber":"4242 4242 4242 4242","expiry":"12/99","cvc":"123","cardName":"Ada Lovelace"}`)
	if code != http.StatusOK || res["step"] != checkout.StepReview.String() {
		t.Fatalf("payment: %d %v", code, res)
	}
	bd := res["breakdown"].(map[string]interface{})
	if bd["total"] != "1362.84" {
		t.Errorf("total = %v, want 1362.84", bd["total"])
	}

	code, res = h.do(t, http.MethodPost, "/storefront/checkout/place", "", "")
	if code != http.StatusCreated {
		t.Fatalf("place: status = %d, body %v", code, res)
	}
	number := res["receipt"].(map[string]interface{})["orderNumber"].(string)

	o, err := orderRepo.NewOrderRepository(h.db).GetByNumber(context.Background(), number)
	if err != nil {
		t.Fatalf("stored order: %v", err)
	}
	if len(o.Items) != 2 || o.PaymentLast4 != "4242" || o.Status != entity.OrderConfirmed {
		t.Errorf("order = %+v", o)
	}
	if h.events.Len() != 1 {
		t.Errorf("events = %d, want 1", h.events.Len())
	}

	_, cv := h.do(t, http.MethodGet, "/storefront/cart", "", "")
	if cv["count"] != float64(0) {
		t.Errorf("cart after order: count = %v, want 0", cv["count"])
	}

	// a new visit to checkout starts over
	_, res = h.do(t, http.MethodGet, "/storefront/checkout", "", "")
	if res["step"] != checkout.StepShipping.String() {
		t.Errorf("step after submit = %v, want shipping", res["step"])
	}
}
