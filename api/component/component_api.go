package component

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopzone.GO/api"
	"shopzone.GO/model/entity"
	componentRepo "shopzone.GO/model/repository/component"
)

func init() {
	api.RegisterModule(RegisterComponentRoutes)
}

// RegisterComponentRoutes mounts custom component CRUD under /api/components.
func RegisterComponentRoutes(apiGroup *echo.Group, d *api.Deps) {
	repo := componentRepo.NewComponentRepository(d.DB)
	invalidate := func() {
		if d.Catalog != nil {
			d.Catalog.Invalidate()
		}
	}
	g := apiGroup.Group("/components")

	g.GET("", func(c echo.Context) error {
		list, err := repo.List(c.Request().Context())
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": list, "total": len(list)})
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := api.ParamID(c, "id")
		if err != nil {
			return api.Error(c, err)
		}
		cc, err := repo.Get(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, cc)
	})

	g.POST("", func(c echo.Context) error {
		var cc entity.CustomComponent
		if err := c.Bind(&cc); err != nil {
			return api.BadRequest(c, err)
		}
		if err := repo.Add(c.Request().Context(), &cc); err != nil {
			return api.Error(c, err)
		}
		invalidate()
		return c.JSON(http.StatusCreated, cc)
	})

	update := func(c echo.Context) error {
		id, err := api.ParamID(c, "id")
		if err != nil {
			return api.Error(c, err)
		}
		var patch componentRepo.Patch
		if err := c.Bind(&patch); err != nil {
			return api.BadRequest(c, err)
		}
		cc, err := repo.Update(c.Request().Context(), id, patch)
		if err != nil {
			return api.Error(c, err)
		}
		invalidate()
		return c.JSON(http.StatusOK, cc)
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
