package order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopzone.GO/api"
	"shopzone.GO/model/entity"
	orderRepo "shopzone.GO/model/repository/order"
)

func setup(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&entity.Order{}, &entity.OrderItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := orderRepo.NewOrderRepository(db)
	for _, o := range []entity.Order{
		{Number: "ORD-AAAA0001", Status: entity.OrderConfirmed, PaymentMethod: "card",
			ShippingAddress: entity.ShippingAddress{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
			Total:           100, Items: []entity.OrderItem{{ProductID: 1, Name: "Lamp", Price: 100, Quantity: 1}}},
		{Number: "ORD-BBBB0002", Status: entity.OrderShipped, PaymentMethod: "paypal",
			ShippingAddress: entity.ShippingAddress{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"},
			Total:           50, Items: []entity.OrderItem{{ProductID: 2, Name: "Book", Price: 50, Quantity: 1}}},
	} {
		o := o
		if err := repo.Create(context.Background(), &o); err != nil {
			t.Fatalf("create order: %v", err)
		}
	}
	e := echo.New()
	RegisterOrderRoutes(e.Group("/api"), &api.Deps{DB: db})
	return e
}

func get(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestOrderAPI_List(t *testing.T) {
	e := setup(t)

	tests := []struct {
		query string
		total string
	}{
		{"", `"total":2`},
		{"?status=all", `"total":2`},
		{"?status=shipped", `"total":1`},
		{"?search=LOVELACE", `"total":1`},
		{"?search=ord-bbbb", `"total":1`},
		{"?status=confirmed&search=alan", `"total":0`},
	}
	for _, tt := range tests {
		rec := get(e, http.MethodGet, "/api/orders"+tt.query, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", tt.query, rec.Code)
			continue
		}
		if !strings.Contains(rec.Body.String(), tt.total) {
			t.Errorf("%s: body %s, want %s", tt.query, rec.Body.String(), tt.total)
		}
	}

	if rec := get(e, http.MethodGet, "/api/orders?status=lost", ""); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown status: %d, want 422", rec.Code)
	}
}

func TestOrderAPI_GetAndStatus(t *testing.T) {
	e := setup(t)

	rec := get(e, http.MethodGet, "/api/orders/ord-aaaa0001", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"number":"ORD-AAAA0001"`) {
		t.Fatalf("get by number: %d %s", rec.Code, rec.Body.String())
	}

	rec = get(e, http.MethodPatch, "/api/orders/1/status", `{"status":"delivered"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"delivered"`) {
		t.Errorf("update status: %d %s", rec.Code, rec.Body.String())
	}
	if rec = get(e, http.MethodPatch, "/api/orders/1/status", `{"status":"teleported"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad status: %d, want 422", rec.Code)
	}
	if rec = get(e, http.MethodPatch, "/api/orders/99/status", `{"status":"shipped"}`); rec.Code != http.StatusNotFound {
		t.Errorf("missing order: %d, want 404", rec.Code)
	}
}
