package health

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"shopzone.GO/api"
)

func init() {
	api.RegisterRoute(RegisterHealthRoutes)
}

// RegisterHealthRoutes mounts GET /health. The database is pinged with a
// short timeout; a failing ping reports 503.
func RegisterHealthRoutes(e *echo.Echo, d *api.Deps) {
	e.GET("/health", func(c echo.Context) error {
		body := echo.Map{"status": "ok"}
		if d != nil && d.Sessions != nil {
			body["sessions"] = d.Sessions.Count()
		}
		if d == nil || d.DB == nil {
			return c.JSON(http.StatusOK, body)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			body["status"] = "degraded"
			body["database"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, body)
		}
		body["database"] = "ok"
		return c.JSON(http.StatusOK, body)
	})
}
