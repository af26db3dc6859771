package component

import (
	"encoding/json"
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
)

func setup(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&entity.CustomComponent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	e := echo.New()
	RegisterComponentRoutes(e.Group("/api"), &api.Deps{DB: db})
	return e
}

func call(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const sale = `{"title":"Big Sale","size":"medium","backgroundColor":"#f87171",
	"items":[{"name":"Deals","image":"https://example.com/d.jpg","link":"/sale"}]}`

func TestComponentAPI_CRUD(t *testing.T) {
	e := setup(t)

	rec := call(e, http.MethodPost, "/api/components", sale)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created entity.CustomComponent
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 || created.Title != "Big Sale" || len(created.Items) != 1 {
		t.Fatalf("created = %+v", created)
	}

	rec = call(e, http.MethodGet, "/api/components", "")
	var list struct {
		Items []entity.CustomComponent `json:"items"`
		Total int                      `json:"total"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &list)
	if rec.Code != http.StatusOK || list.Total != 1 {
		t.Errorf("list: status = %d, total = %d", rec.Code, list.Total)
	}

	rec = call(e, http.MethodPatch, "/api/components/1", `{"size":"large","backgroundColor":""}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated entity.CustomComponent
	_ = json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.Size != "large" || updated.BackgroundColor != nil || updated.Title != "Big Sale" {
		t.Errorf("updated = %+v", updated)
	}

	rec = call(e, http.MethodDelete, "/api/components/1", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: status = %d", rec.Code)
	}
	rec = call(e, http.MethodGet, "/api/components/1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", rec.Code)
	}
}

func TestComponentAPI_Errors(t *testing.T) {
	e := setup(t)

	rec := call(e, http.MethodPost, "/api/components", `{"title":"","size":"huge"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid create: status = %d, want 422", rec.Code)
	}
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Fields["title"] == "" || body.Fields["size"] == "" {
		t.Errorf("fields = %v, want title and size", body.Fields)
	}

	for _, tc := range []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/api/components/7", "", http.StatusNotFound},
		{http.MethodPatch, "/api/components/7", `{"title":"x"}`, http.StatusNotFound},
		{http.MethodDelete, "/api/components/7", "", http.StatusNotFound},
		{http.MethodGet, "/api/components/abc", "", http.StatusUnprocessableEntity},
	} {
		if rec := call(e, tc.method, tc.path, tc.body); rec.Code != tc.want {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, rec.Code, tc.want)
		}
	}

	call(e, http.MethodPost, "/api/components", sale)
	rec = call(e, http.MethodPatch, "/api/components/1", `{"size":"tiny"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid patch: status = %d, want 422", rec.Code)
	}
}
