package storefront

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"shopzone.GO/core/i18n"
	"shopzone.GO/service/storefront"
)

// CookieName holds the opaque storefront session id.
const CookieName = "sz_session"

const ctxKeySession = "storefront.session"

// SessionMiddleware opens the visitor's session from the cookie and
// re-issues the cookie when a new session was made.
func SessionMiddleware(m *storefront.Manager, ttl time.Duration, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if ck, err := c.Cookie(CookieName); err == nil {
				id = ck.Value
			}
			s, created := m.Open(c.Request().Context(), id)
			if created || s.ID != id {
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    s.ID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
				if created {
					if lang, ok := i18n.Parse(acceptLanguage(c)); ok {
						_ = s.Do(func() error { s.SetLanguage(lang); return nil })
					}
				}
			}
			c.Set(ctxKeySession, s)
			return next(c)
		}
	}
}

// Session returns the session attached by SessionMiddleware.
func Session(c echo.Context) *storefront.Session {
	s, _ := c.Get(ctxKeySession).(*storefront.Session)
	return s
}

// acceptLanguage returns the first tag of the Accept-Language header.
func acceptLanguage(c echo.Context) string {
	h := c.Request().Header.Get("Accept-Language")
	if i := strings.IndexAny(h, ",;"); i >= 0 {
		h = h[:i]
	}
	return h
}
