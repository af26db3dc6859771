package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopzone.GO/api"
	"shopzone.GO/core/i18n"
	"shopzone.GO/service/catalog"
)

func init() {
	api.RegisterModule(RegisterCatalogRoutes)
}

// Category is a filter option with its label in the requested language.
type Category struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Categories lists "All" followed by the product categories.
func Categories(lang i18n.Language) []Category {
	names := append([]string{catalog.CategoryAll}, catalog.Categories()...)
	out := make([]Category, len(names))
	for i, n := range names {
		out[i] = Category{Name: n, Label: i18n.Category(lang, n)}
	}
	return out
}

func language(c echo.Context) i18n.Language {
	lang, _ := i18n.Parse(c.QueryParam("lang"))
	return lang
}

// RegisterCatalogRoutes mounts the read-only catalog. These paths are in
// the auth skip list.
func RegisterCatalogRoutes(apiGroup *echo.Group, d *api.Deps) {
	g := apiGroup.Group("/catalog")

	// GET /api/catalog?search=phone&category=Electronics
	g.GET("", func(c echo.Context) error {
		f := catalog.FilterStateFromQuery(c.QueryParams())
		res, err := d.Catalog.Browse(c.Request().Context(), f)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"products": res.Products,
			"empty":    res.Empty,
			"filter":   f,
		})
	})

	g.GET("/categories", func(c echo.Context) error {
		return c.JSON(http.StatusOK, Categories(language(c)))
	})

	g.GET("/components", func(c echo.Context) error {
		list, err := d.Catalog.Components(c.Request().Context())
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/products/:id", func(c echo.Context) error {
		id, err := api.ParamID(c, "id")
		if err != nil {
			return api.Error(c, err)
		}
		p, ok, err := d.Catalog.Product(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, err)
		}
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, p)
	})
}
