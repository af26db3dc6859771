// Package auth guards the /api admin group.
package auth

import (
	"crypto/subtle"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"shopzone.GO/config"
)

// Middleware returns the auth middleware based on AUTH_TYPE env var:
// "key" for a bearer API_KEY, basic auth with API_USER/API_PASS otherwise.
func Middleware() echo.MiddlewareFunc {
	skipper := buildSkipper(config.GetAuthSkipperPaths())
	switch os.Getenv("AUTH_TYPE") {
	case "key":
		return keyAuth(os.Getenv("API_KEY"), skipper)
	default:
		return basicAuth(os.Getenv("API_USER"), os.Getenv("API_PASS"), skipper)
	}
}

func buildSkipper(skipPaths []string) middleware.Skipper {
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func basicAuth(user, pass string, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			// unset credentials lock the group
			if user == "" || pass == "" {
				return false, nil
			}
			return equal(username, user) && equal(password, pass), nil
		},
		Skipper: skipper,
	})
}

func keyAuth(apiKey string, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			return apiKey != "" && equal(key, apiKey), nil
		},
		Skipper: skipper,
	})
}
