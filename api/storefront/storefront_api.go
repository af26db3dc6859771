package storefront

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shopzone.GO/api"
	"shopzone.GO/config"
	"shopzone.GO/core/apperr"
	"shopzone.GO/core/i18n"
	"shopzone.GO/model/entity"
	"shopzone.GO/service/cart"
	"shopzone.GO/service/catalog"
	"shopzone.GO/service/storefront"
)

func init() {
	api.RegisterRoute(RegisterStorefrontRoutes)
}

// CartView is the cart as the storefront renders it.
type CartView struct {
	Items    []cart.LineItem `json:"items"`
	Count    int             `json:"count"`
	Quantity int             `json:"quantity"`
	Total    string          `json:"total"`
	Open     bool            `json:"open"`
}

// CartViewOf renders st.
func CartViewOf(st *cart.Store) CartView {
	snap := st.Snapshot()
	qty := 0
	for _, it := range snap.Items {
		qty += it.Quantity
	}
	return CartView{
		Items:    snap.Items,
		Count:    len(snap.Items),
		Quantity: qty,
		Total:    cart.Total(snap.Items).StringFixed(2),
		Open:     snap.Open,
	}
}

// State is the whole session as one document.
type State struct {
	SessionID string              `json:"sessionId"`
	Language  i18n.Language       `json:"language"`
	Dir       string              `json:"dir"`
	Filter    catalog.FilterState `json:"filter"`
	Cart      CartView            `json:"cart"`
	Carousel  map[uint]int        `json:"carousel"`
}

func state(s *storefront.Session) State {
	var st State
	_ = s.Do(func() error {
		st = State{
			SessionID: s.ID,
			Language:  s.Language(),
			Dir:       i18n.Dir(s.Language()),
			Filter:    s.Filter(),
			Cart:      CartViewOf(s.Cart),
			Carousel:  s.Carousel.Indexes(),
		}
		return nil
	})
	return st
}

// ProductCard is a product with the session's carousel position.
type ProductCard struct {
	entity.Product
	MediaIndex    int    `json:"mediaIndex"`
	CategoryLabel string `json:"categoryLabel"`
}

func mediaAt(p entity.Product, i int) *entity.Media {
	if i < 0 || i >= len(p.Media) {
		return nil
	}
	m := p.Media[i]
	return &m
}

func productID(c echo.Context) (uint, error) {
	return api.ParamID(c, "productId")
}

// RegisterStorefrontRoutes mounts the session-backed shop endpoints
// under /storefront.
func RegisterStorefrontRoutes(e *echo.Echo, d *api.Deps) {
	if d == nil || d.Sessions == nil || d.Catalog == nil {
		return
	}
	cfg := config.App()
	g := e.Group("/storefront", SessionMiddleware(d.Sessions, cfg.SessionTTL, cfg.Env == "production"))
	h := &handlers{catalog: d.Catalog, sessions: d.Sessions}

	g.GET("/state", func(c echo.Context) error {
		return c.JSON(http.StatusOK, state(Session(c)))
	})
	g.DELETE("/session", h.endSession)

	g.GET("/products", h.products)
	g.PUT("/language", h.setLanguage)

	g.GET("/cart", func(c echo.Context) error {
		return c.JSON(http.StatusOK, CartViewOf(Session(c).Cart))
	})
	g.POST("/cart/items", h.addItem)
	g.PUT("/cart/items/:productId", h.setQuantity)
	g.POST("/cart/items/:productId/decrement", h.decrement)
	g.DELETE("/cart/items/:productId", h.removeItem)
	g.DELETE("/cart", h.clearCart)
	g.PUT("/cart/open", h.setOpen)

	g.POST("/carousel/:productId/next", h.carouselStep(1))
	g.POST("/carousel/:productId/prev", h.carouselStep(-1))
	g.PUT("/carousel/:productId", h.carouselSet)

	g.GET("/checkout", h.checkoutView)
	g.POST("/checkout/shipping", h.submitShipping)
	g.POST("/checkout/payment", h.submitPayment)
	g.POST("/checkout/back", h.back)
	g.POST("/checkout/place", h.placeOrder)
	g.DELETE("/checkout", h.cancelCheckout)
}

type handlers struct {
	catalog  *catalog.Service
	sessions *storefront.Manager
}

// products browses the catalog. Explicit search/category params replace
// the session filter; without them the stored filter applies.
func (h *handlers) products(c echo.Context) error {
	s := Session(c)
	q := c.QueryParams()
	var f catalog.FilterState
	var lang i18n.Language
	_ = s.Do(func() error {
		f = s.Filter()
		if q.Has(catalog.ParamSearch) || q.Has(catalog.ParamCategory) {
			f = catalog.FilterStateFromQuery(q)
			s.SetFilter(f)
		}
		lang = s.Language()
		return nil
	})

	res, err := h.catalog.Browse(c.Request().Context(), f)
	if err != nil {
		return api.Error(c, err)
	}
	ids := make([]uint, len(res.Products))
	for i, p := range res.Products {
		ids[i] = p.ID
	}
	s.Carousel.Retain(ids)

	cards := make([]ProductCard, len(res.Products))
	for i, p := range res.Products {
		cards[i] = ProductCard{
			Product:       p,
			MediaIndex:    s.Carousel.Index(p.ID),
			CategoryLabel: i18n.Category(lang, p.Category),
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"products": cards,
		"empty":    res.Empty,
		"filter":   f,
		"query":    f.Query(q).Encode(),
	})
}

func (h *handlers) setLanguage(c echo.Context) error {
	var body struct {
		Language string `json:"language" form:"language"`
	}
	if err := c.Bind(&body); err != nil {
		return api.BadRequest(c, err)
	}
	lang, ok := i18n.Parse(body.Language)
	if !ok {
		return api.Error(c, apperr.Invalid("storefront.language", "language", "unsupported language"))
	}
	s := Session(c)
	_ = s.Do(func() error { s.SetLanguage(lang); return nil })
	return c.JSON(http.StatusOK, echo.Map{"language": lang, "dir": i18n.Dir(lang)})
}

func (h *handlers) product(c echo.Context, id uint) (entity.Product, error) {
	p, ok, err := h.catalog.Product(c.Request().Context(), id)
	if err != nil {
		return p, err
	}
	if !ok {
		return p, apperr.NotFound("storefront.product", "product "+strconv.FormatUint(uint64(id), 10))
	}
	return p, nil
}

func (h *handlers) addItem(c echo.Context) error {
	var body struct {
		ProductID uint `json:"productId" form:"productId"`
	}
	if err := c.Bind(&body); err != nil {
		return api.BadRequest(c, err)
	}
	if body.ProductID == 0 {
		return api.Error(c, apperr.Invalid("storefront.cart_add", "productId", "required"))
	}
	p, err := h.product(c, body.ProductID)
	if err != nil {
		return api.Error(c, err)
	}
	s := Session(c)
	_ = s.Do(func() error { s.Cart.Add(p); return nil })
	return c.JSON(http.StatusOK, CartViewOf(s.Cart))
}

func (h *handlers) setQuantity(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return api.Error(c, err)
	}
	var body struct {
		Quantity int `json:"quantity" form:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return api.BadRequest(c, err)
	}
	s := Session(c)
	var found bool
	_ = s.Do(func() error { found = s.Cart.SetQuantity(id, body.Quantity); return nil })
	if !found && body.Quantity > 0 {
		return api.Error(c, apperr.NotFound("storefront.cart_set", "cart line "+c.Param("productId")))
	}
	return c.JSON(http.StatusOK, CartViewOf(s.Cart))
}

func (h *handlers) decrement(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return api.Error(c, err)
	}
	s := Session(c)
	_ = s.Do(func() error { s.Cart.Decrement(id); return nil })
	return c.JSON(http.StatusOK, CartViewOf(s.Cart))
}

func (h *handlers) removeItem(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return api.Error(c, err)
	}
	s := Session(c)
	_ = s.Do(func() error { s.Cart.Remove(id); return nil })
	return c.JSON(http.StatusOK, CartViewOf(s.Cart))
}

func (h *handlers) clearCart(c echo.Context) error {
	s := Session(c)
	_ = s.Do(func() error { s.Cart.Clear(); return nil })
	return c.JSON(http.StatusOK, CartViewOf(s.Cart))
}

func (h *handlers) setOpen(c echo.Context) error {
	var body struct {
		Open bool `json:"open" form:"open"`
	}
	if err := c.Bind(&body); err != nil {
		return api.BadRequest(c, err)
	}
	s := Session(c)
	_ = s.Do(func() error { s.Cart.SetOpen(body.Open); return nil })
	return c.JSON(http.StatusOK, CartViewOf(s.Cart))
}

func (h *handlers) carouselStep(delta int) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := productID(c)
		if err != nil {
			return api.Error(c, err)
		}
		p, err := h.product(c, id)
		if err != nil {
			return api.Error(c, err)
		}
		s := Session(c)
		var idx int
		if delta > 0 {
			idx = s.Carousel.Next(id, len(p.Media))
		} else {
			idx = s.Carousel.Prev(id, len(p.Media))
		}
		return c.JSON(http.StatusOK, echo.Map{"productId": id, "index": idx, "media": mediaAt(p, idx)})
	}
}

func (h *handlers) carouselSet(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return api.Error(c, err)
	}
	var body struct {
		Index int `json:"index" form:"index"`
	}
	if err := c.Bind(&body); err != nil {
		return api.BadRequest(c, err)
	}
	p, err := h.product(c, id)
	if err != nil {
		return api.Error(c, err)
	}
	s := Session(c)
	if err := s.Carousel.Set(id, body.Index, len(p.Media)); err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"productId": id, "index": body.Index, "media": mediaAt(p, body.Index)})
}

func (h *handlers) endSession(c echo.Context) error {
	s := Session(c)
	if err := h.sessions.Close(c.Request().Context(), s.ID); err != nil {
		return api.Error(c, err)
	}
	c.SetCookie(&http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1})
	return c.NoContent(http.StatusNoContent)
}
