package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shopzone.GO/core/apperr"
)

// Error writes err as {"error": ...} with the status of its kind.
// Validation errors also carry their fields.
func Error(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)
	body := echo.Map{"error": err.Error()}
	if fields := apperr.FieldsOf(err); len(fields) > 0 {
		body["fields"] = fields
	}
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
		body["error"] = http.StatusText(status)
	}
	return c.JSON(status, body)
}

// BadRequest reports an undecodable request body.
func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}

// ParamID reads a positive integer path parameter.
func ParamID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, apperr.Invalid("request", name, "must be a positive integer")
	}
	return uint(v), nil
}

// QueryInt reads an integer query parameter, def when absent or malformed.
func QueryInt(c echo.Context, name string, def int) int {
	if v, err := strconv.Atoi(c.QueryParam(name)); err == nil {
		return v
	}
	return def
}
