package cartitems

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopzone.GO/api"
	"shopzone.GO/core/apperr"
	cartitemRepo "shopzone.GO/model/repository/cartitem"
)

func init() {
	api.RegisterModule(RegisterCartItemRoutes)
}

type upsertRequest struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// RegisterCartItemRoutes mounts persisted per-user carts under
// /api/users/:userId/cart.
func RegisterCartItemRoutes(apiGroup *echo.Group, d *api.Deps) {
	repo := cartitemRepo.NewCartItemRepository(d.DB)
	g := apiGroup.Group("/users/:userId/cart")

	g.GET("", func(c echo.Context) error {
		items, err := repo.ListByUser(c.Request().Context(), c.Param("userId"))
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items, "total": len(items)})
	})

	// PUT sets the quantity for a product; zero or less removes the line.
	g.PUT("", func(c echo.Context) error {
		var req upsertRequest
		if err := c.Bind(&req); err != nil {
			return api.BadRequest(c, err)
		}
		if req.Quantity < 0 {
			req.Quantity = 0
		}
		item, err := repo.AddOrUpdate(c.Request().Context(), c.Param("userId"), req.ProductID, req.Quantity)
		if err != nil {
			return api.Error(c, err)
		}
		if item == nil {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSON(http.StatusOK, item)
	})

	g.DELETE("", func(c echo.Context) error {
		userID := c.Param("userId")
		if userID == "" {
			return api.Error(c, apperr.Invalid("cart_items.clear", "userId", "required"))
		}
		n, err := repo.ClearUser(c.Request().Context(), userID)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"removed": n})
	})

	g.DELETE("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c, "id")
		if err != nil {
			return api.Error(c, err)
		}
		if err := repo.Remove(c.Request().Context(), c.Param("userId"), id); err != nil {
			return api.Error(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})
}
