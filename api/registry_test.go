package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"shopzone.GO/core/apperr"
)

func TestRegistry_Register_Apply(t *testing.T) {
	RegisterGET("/test/registry/check", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	e := echo.New()
	ApplyRoutes(e, nil)

	req := httptest.NewRequest(http.MethodGet, "/test/registry/check", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestError_MapsKinds(t *testing.T) {
	tests := []struct {
		err    error
		status int
		body   string
	}{
		{apperr.NotFound("products.get", "product 7"), http.StatusNotFound, "product 7 not found"},
		{apperr.Invalid("products.add", "price", "must be >= 0"), http.StatusUnprocessableEntity, `"fields":{"price":"must be >= 0"}`},
		{apperr.Transient("products.list", errors.New("dial tcp")), http.StatusServiceUnavailable, "transient"},
		{apperr.Conflict("checkout", "busy"), http.StatusConflict, "busy"},
		{errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}
	e := echo.New()
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		if err := Error(c, tt.err); err != nil {
			t.Fatalf("Error: %v", err)
		}
		if rec.Code != tt.status {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.status)
		}
		if !strings.Contains(rec.Body.String(), tt.body) {
			t.Errorf("%v: body = %s, want to contain %s", tt.err, rec.Body.String(), tt.body)
		}
	}
}

func TestParamID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")

	c.SetParamValues("42")
	if id, err := ParamID(c, "id"); err != nil || id != 42 {
		t.Errorf("ParamID(42) = %d, %v", id, err)
	}
	for _, bad := range []string{"0", "-1", "abc"} {
		c.SetParamValues(bad)
		if _, err := ParamID(c, "id"); apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("ParamID(%q) err = %v, want validation", bad, err)
		}
	}
}
