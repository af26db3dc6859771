package html

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"shopzone.GO/api"
	sfapi "shopzone.GO/api/storefront"
	"shopzone.GO/config"
	"shopzone.GO/core/apperr"
	"shopzone.GO/core/i18n"
	"shopzone.GO/html/parts"
	"shopzone.GO/model/entity"
	"shopzone.GO/service/catalog"
	"shopzone.GO/service/storefront"
)

func init() {
	api.RegisterHTMLModule(RegisterStorefrontHTMLRoutes)
}

func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Card is a product tile with its current carousel item.
type Card struct {
	Product entity.Product
	Index   int
	Media   entity.Media
	Count   int
}

// CategoryLink is one category pill of the filter bar.
type CategoryLink struct {
	Name   string
	Label  string
	Href   string
	Active bool
}

func categoryLinks(f catalog.FilterState, lang i18n.Language) []CategoryLink {
	names := append([]string{catalog.CategoryAll}, catalog.Categories()...)
	out := make([]CategoryLink, len(names))
	for i, n := range names {
		next := catalog.FilterState{Search: f.Search, Category: n}
		href := "/"
		if q := next.Query(url.Values{}).Encode(); q != "" {
			href += "?" + q
		}
		out[i] = CategoryLink{Name: n, Label: i18n.Category(lang, n), Href: href, Active: n == f.Category}
	}
	return out
}

// Page is the data of storefront.html.
type Page struct {
	Lang        i18n.Language
	Dir         string
	Title       string
	CriticalCSS template.CSS
	Filter      catalog.FilterState
	Categories  []CategoryLink
	Cards       []Card
	Empty       bool
	Components  []entity.CustomComponent
	Cart        sfapi.CartView
	Query       string
	Languages   []i18n.Language
}

// RegisterStorefrontHTMLRoutes serves the shop page at / and the plain
// form posts it uses. Every post redirects back to the page with the
// current filter.
func RegisterStorefrontHTMLRoutes(e *echo.Echo, d *api.Deps) {
	if d == nil || d.Sessions == nil || d.Catalog == nil {
		return
	}
	if e.Renderer == nil {
		tmpl, err := NewTemplate()
		if err != nil {
			panic("html templates: " + err.Error())
		}
		e.Renderer = tmpl
	}
	cfg := config.App()
	mw := sfapi.SessionMiddleware(d.Sessions, cfg.SessionTTL, cfg.Env == "production")

	e.GET("/", func(c echo.Context) error {
		return renderShop(c, d.Catalog)
	}, mw)

	back := func(c echo.Context) error {
		s := sfapi.Session(c)
		var f catalog.FilterState
		_ = s.Do(func() error { f = s.Filter(); return nil })
		target := "/"
		if q := f.Query(url.Values{}).Encode(); q != "" {
			target += "?" + q
		}
		return c.Redirect(http.StatusSeeOther, target)
	}

	e.POST("/cart/add", func(c echo.Context) error {
		id, err := formID(c)
		if err != nil {
			return api.Error(c, err)
		}
		p, ok, err := d.Catalog.Product(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, err)
		}
		if ok {
			s := sfapi.Session(c)
			_ = s.Do(func() error { s.Cart.Add(p); return nil })
		}
		return back(c)
	}, mw)
	e.POST("/cart/decrement", cartAction(back, func(s *storefront.Session, id uint) { s.Cart.Decrement(id) }), mw)
	e.POST("/cart/remove", cartAction(back, func(s *storefront.Session, id uint) { s.Cart.Remove(id) }), mw)
	e.POST("/cart/toggle", func(c echo.Context) error {
		s := sfapi.Session(c)
		_ = s.Do(func() error { s.Cart.SetOpen(!s.Cart.IsOpen()); return nil })
		return back(c)
	}, mw)
	e.POST("/language", func(c echo.Context) error {
		if lang, ok := i18n.Parse(c.FormValue("language")); ok {
			s := sfapi.Session(c)
			_ = s.Do(func() error { s.SetLanguage(lang); return nil })
		}
		return back(c)
	}, mw)
	e.POST("/carousel/:productId/:dir", func(c echo.Context) error {
		id, err := api.ParamID(c, "productId")
		if err != nil {
			return api.Error(c, err)
		}
		p, ok, err := d.Catalog.Product(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, err)
		}
		if ok {
			carousel := sfapi.Session(c).Carousel
			if c.Param("dir") == "prev" {
				carousel.Prev(id, len(p.Media))
			} else {
				carousel.Next(id, len(p.Media))
			}
		}
		return back(c)
	}, mw)
}

func formID(c echo.Context) (uint, error) {
	v, err := strconv.ParseUint(c.FormValue("productId"), 10, 64)
	if err != nil || v == 0 {
		return 0, apperr.Invalid("storefront.form", "productId", "must be a positive integer")
	}
	return uint(v), nil
}

// cartAction applies fn to the posted product id under the session lock.
func cartAction(back echo.HandlerFunc, fn func(s *storefront.Session, id uint)) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := formID(c)
		if err != nil {
			return api.Error(c, err)
		}
		s := sfapi.Session(c)
		_ = s.Do(func() error { fn(s, id); return nil })
		return back(c)
	}
}

func renderShop(c echo.Context, svc *catalog.Service) error {
	ctx := c.Request().Context()
	s := sfapi.Session(c)
	q := c.QueryParams()

	var (
		f    catalog.FilterState
		lang i18n.Language
	)
	_ = s.Do(func() error {
		// the URL is the source of truth for the filter on a page load
		f = catalog.FilterStateFromQuery(q)
		s.SetFilter(f)
		lang = s.Language()
		return nil
	})

	res, err := svc.Browse(ctx, f)
	if err != nil {
		return api.Error(c, err)
	}
	components, err := svc.Components(ctx)
	if err != nil {
		return api.Error(c, err)
	}

	ids := make([]uint, len(res.Products))
	cards := make([]Card, len(res.Products))
	for i, p := range res.Products {
		ids[i] = p.ID
		idx := s.Carousel.Index(p.ID)
		card := Card{Product: p, Index: idx, Count: len(p.Media)}
		if idx < len(p.Media) {
			card.Media = p.Media[idx]
		}
		cards[i] = card
	}
	s.Carousel.Retain(ids)

	var cart sfapi.CartView
	_ = s.Do(func() error { cart = sfapi.CartViewOf(s.Cart); return nil })

	return c.Render(http.StatusOK, "storefront.html", Page{
		Lang:        lang,
		Dir:         i18n.Dir(lang),
		Title:       i18n.T(lang, i18n.BrandName),
		CriticalCSS: parts.GetCriticalCSS(),
		Filter:      f,
		Categories:  categoryLinks(f, lang),
		Cards:       cards,
		Empty:       res.Empty,
		Components:  components,
		Cart:        cart,
		Query:       f.Query(url.Values{}).Encode(),
		Languages:   i18n.Languages(),
	})
}
