package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"shopzone.GO/api"
	componentRepo "shopzone.GO/model/repository/component"
	orderRepo "shopzone.GO/model/repository/order"
	productRepo "shopzone.GO/model/repository/product"
)

func init() {
	api.RegisterModule(RegisterDashboardRoutes)
}

// Stats is the admin overview.
type Stats struct {
	Products   int64   `json:"products"`
	Components int64   `json:"components"`
	Orders     int64   `json:"orders"`
	Revenue    float64 `json:"revenue"`
	Sessions   int     `json:"sessions"`
}

func RegisterDashboardRoutes(apiGroup *echo.Group, d *api.Deps) {
	products := productRepo.NewProductRepository(d.DB)
	components := componentRepo.NewComponentRepository(d.DB)
	orders := orderRepo.NewOrderRepository(d.DB)

	apiGroup.GET("/dashboard", func(c echo.Context) error {
		var s Stats
		g, ctx := errgroup.WithContext(c.Request().Context())
		g.Go(func() (err error) {
			s.Products, err = products.Count(ctx)
			return err
		})
		g.Go(func() (err error) {
			s.Components, err = components.Count(ctx)
			return err
		})
		g.Go(func() (err error) {
			s.Orders, err = orders.Count(ctx)
			return err
		})
		g.Go(func() (err error) {
			s.Revenue, err = orders.Revenue(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return api.Error(c, err)
		}
		if d.Sessions != nil {
			s.Sessions = d.Sessions.Count()
		}
		return c.JSON(http.StatusOK, s)
	})
}
