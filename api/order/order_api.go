package order

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shopzone.GO/api"
	"shopzone.GO/model/entity"
	orderRepo "shopzone.GO/model/repository/order"
)

func init() {
	api.RegisterModule(RegisterOrderRoutes)
}

// RegisterOrderRoutes mounts the admin order list under /api/orders.
func RegisterOrderRoutes(apiGroup *echo.Group, d *api.Deps) {
	repo := orderRepo.NewOrderRepository(d.DB)
	g := apiGroup.Group("/orders")

	// GET /api/orders?status=shipped&search=ord-1a&limit=20&offset=0
	g.GET("", func(c echo.Context) error {
		f := orderRepo.Filter{
			Status: c.QueryParam("status"),
			Search: c.QueryParam("search"),
			Limit:  api.QueryInt(c, "limit", 0),
			Offset: api.QueryInt(c, "offset", 0),
		}
		orders, err := repo.List(c.Request().Context(), f)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": orders, "total": len(orders)})
	})

	g.GET("/statuses", func(c echo.Context) error {
		statuses := []string{orderRepo.StatusAll}
		for _, s := range entity.OrderStatuses() {
			statuses = append(statuses, string(s))
		}
		return c.JSON(http.StatusOK, statuses)
	})

	// :id is the numeric id or the order number.
	g.GET("/:id", func(c echo.Context) error {
		ctx := c.Request().Context()
		if ref := c.Param("id"); strings.HasPrefix(strings.ToUpper(ref), "ORD-") {
			o, err := repo.GetByNumber(ctx, strings.ToUpper(ref))
			if err != nil {
				return api.Error(c, err)
			}
			return c.JSON(http.StatusOK, o)
		}
		id, err := api.ParamID(c, "id")
		if err != nil {
			return api.Error(c, err)
		}
		o, err := repo.Get(ctx, id)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, o)
	})

	g.PATCH("/:id/status", func(c echo.Context) error {
		id, err := api.ParamID(c, "id")
		if err != nil {
			return api.Error(c, err)
		}
		var body struct {
			Status entity.OrderStatus `json:"status"`
		}
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, err)
		}
		o, err := repo.UpdateStatus(c.Request().Context(), id, body.Status)
		if err != nil {
			return api.Error(c, err)
		}
		d.Logger().Info("order status changed", zap.String("number", o.Number), zap.String("status", string(o.Status)))
		return c.JSON(http.StatusOK, o)
	})
}
