package product

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopzone.GO/api"
	"shopzone.GO/model/entity"
	productRepo "shopzone.GO/model/repository/product"
)

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

// RegisterProductRoutes mounts admin product CRUD under /api/products.
// Writes invalidate the catalog cache.
func RegisterProductRoutes(apiGroup *echo.Group, d *api.Deps) {
	repo := productRepo.NewProductRepository(d.DB)
	invalidate := func() {
		if d.Catalog != nil {
			d.Catalog.Invalidate()
		}
	}
	g := apiGroup.Group("/products")

	g.GET("", func(c echo.Context) error {
		products, err := repo.List(c.Request().Context())
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": products, "total": len(products)})
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c, "id")
		if err != nil {
			return api.Error(c, err)
		}
		p, err := repo.Get(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, p)
	})

	g.POST("", func(c echo.Context) error {
		var p entity.Product
		if err := c.Bind(&p); err != nil {
			return api.BadRequest(c, err)
		}
		if err := repo.Add(c.Request().Context(), &p); err != nil {
			return api.Error(c, err)
		}
		invalidate()
		return c.JSON(http.StatusCreated, p)
	})

	update := func(c echo.Context) error {
		id, err := api.ParamID(c, "id")
		if err != nil {
			return api.Error(c, err)
		}
		var patch productRepo.Patch
		if err := c.Bind(&patch); err != nil {
			return api.BadRequest(c, err)
		}
		p, err := repo.Update(c.Request().Context(), id, patch)
		if err != nil {
			return api.Error(c, err)
		}
		invalidate()
		return c.JSON(http.StatusOK, p)
	}
	g.PUT("/:id", update)
	g.PATCH("/:id", update)

	g.DELETE("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c, "id")
		if err != nil {
			return api.Error(c, err)
		}
		if err := repo.Remove(c.Request().Context(), id); err != nil {
			return api.Error(c, err)
		}
		invalidate()
		return c.NoContent(http.StatusNoContent)
	})
}
