package storefront

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"shopzone.GO/api"
	"shopzone.GO/service/checkout"
)

// formInput reads a JSON object or a urlencoded form as a flat map.
func formInput(c echo.Context) (map[string]interface{}, error) {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		m := map[string]interface{}{}
		if err := json.NewDecoder(c.Request().Body).Decode(&m); err != nil {
			return nil, err
		}
		return m, nil
	}
	values, err := c.FormParams()
	if err != nil {
		return nil, err
	}
	return checkout.FormMap(values), nil
}

// wizard returns the session checkout, starting one when start is set.
func wizard(c echo.Context, start bool) (*checkout.Wizard, bool) {
	s := Session(c)
	var w *checkout.Wizard
	ok := true
	_ = s.Do(func() error {
		if start {
			w = s.Checkout()
		} else {
			w, ok = s.ActiveCheckout()
		}
		return nil
	})
	return w, ok
}

func (h *handlers) checkoutView(c echo.Context) error {
	w, _ := wizard(c, true)
	return c.JSON(http.StatusOK, w.View())
}

func (h *handlers) submitShipping(c echo.Context) error {
	in, err := formInput(c)
	if err != nil {
		return api.BadRequest(c, err)
	}
	f, err := checkout.DecodeShipping(in)
	if err != nil {
		return api.Error(c, err)
	}
	w, _ := wizard(c, true)
	if err := w.SubmitShipping(f); err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, w.View())
}

func (h *handlers) submitPayment(c echo.Context) error {
	in, err := formInput(c)
	if err != nil {
		return api.BadRequest(c, err)
	}
	f, err := checkout.DecodePayment(in)
	if err != nil {
		return api.Error(c, err)
	}
	w, ok := wizard(c, false)
	if !ok {
		return api.Error(c, checkout.ErrWrongStep)
	}
	if err := w.SubmitPayment(f); err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, w.View())
}

func (h *handlers) back(c echo.Context) error {
	w, ok := wizard(c, false)
	if !ok {
		return api.Error(c, checkout.ErrWrongStep)
	}
	if err := w.Back(); err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, w.View())
}

// placeOrder runs outside the session lock so a concurrent request sees
// the submission in flight instead of queueing behind it.
func (h *handlers) placeOrder(c echo.Context) error {
	w, ok := wizard(c, false)
	if !ok {
		return api.Error(c, checkout.ErrWrongStep)
	}
	out := <-w.PlaceOrderAsync(c.Request().Context())
	if out.Err != nil {
		return api.Error(c, out.Err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"receipt": out.Receipt, "checkout": w.View()})
}

func (h *handlers) cancelCheckout(c echo.Context) error {
	s := Session(c)
	var busy bool
	_ = s.Do(func() error {
		if w, ok := s.ActiveCheckout(); ok && w.Submitting() {
			busy = true
			return nil
		}
		s.EndCheckout()
		return nil
	})
	if busy {
		return api.Error(c, checkout.ErrSubmissionInFlight)
	}
	return c.NoContent(http.StatusNoContent)
}
