package html

import (
	"context"
	"html/template"
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
	sfapi "shopzone.GO/api/storefront"
	"shopzone.GO/core/cache"
	"shopzone.GO/model/entity"
	componentRepo "shopzone.GO/model/repository/component"
	productRepo "shopzone.GO/model/repository/product"
	"shopzone.GO/service/catalog"
	"shopzone.GO/service/checkout"
	"shopzone.GO/service/storefront"
)

func setupShop(t *testing.T) *echo.Echo {
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
	c := cache.NewCache()
	svc := catalog.NewService(productRepo.NewProductRepository(db), componentRepo.NewComponentRepository(db), c, time.Minute, nil)
	mgr := storefront.NewManager(c, storefront.Options{TTL: time.Hour, Rates: checkout.DefaultRates()})

	e := echo.New()
	RegisterStorefrontHTMLRoutes(e, &api.Deps{DB: db, Catalog: svc, Sessions: mgr})
	return e
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sfapi.CookieName {
			return ck
		}
	}
	return nil
}

func TestShopPage_Renders(t *testing.T) {
	e := setupShop(t)
	req := httptest.NewRequest(http.MethodGet, "/?category=Fashion", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `dir="ltr"`) {
		t.Errorf("page is missing dir attribute")
	}
	if !strings.Contains(body, `action="/cart/add"`) {
		t.Errorf("page has no add-to-cart form")
	}
	if strings.Contains(body, "iPhone 15 Pro") {
		t.Errorf("Fashion filter rendered an Electronics product")
	}
	if sessionCookie(rec) == nil {
		t.Errorf("no session cookie set")
	}
}

func TestShopPage_EmptyState(t *testing.T) {
	e := setupShop(t)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?search=zzzz", nil))
	if !strings.Contains(rec.Body.String(), `class="empty"`) {
		t.Errorf("search without matches should render the empty state")
	}
}

func TestShopPage_CartPostRedirects(t *testing.T) {
	e := setupShop(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?search=iphone", nil))
	ck := sessionCookie(rec)
	if ck == nil {
		t.Fatalf("no session cookie")
	}

	post := func(path string, form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		req.AddCookie(ck)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec = post("/cart/add", url.Values{"productId": {"1"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("add: status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/?search=iphone" {
		t.Errorf("redirect = %q, want /?search=iphone", loc)
	}

	post("/cart/toggle", nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	body := rec.Body.String()
	if !strings.Contains(body, `class="drawer"`) {
		t.Fatalf("cart drawer not open after toggle")
	}
	if !strings.Contains(body, "$999.00") {
		t.Errorf("drawer does not show the added product price")
	}

	rec = post("/cart/add", url.Values{"productId": {"abc"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad id: status = %d, want 422", rec.Code)
	}
}

func TestTemplateFuncs(t *testing.T) {
	fns := TemplateFuncs()
	money := fns["money"].(func(float64) string)
	if got := money(12.5); got != "$12.50" {
		t.Errorf("money(12.5) = %q, want $12.50", got)
	}
	bg := fns["bg"].(func(*string) template.CSS)
	if got := bg(nil); got != "" {
		t.Errorf("bg(nil) = %q, want empty", got)
	}
}
