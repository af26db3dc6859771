package apperr

import (
	"net/http"
	"strings"
	"testing"

	"github.com/go-faster/errors"
)

func TestKinds_IsSentinel(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
		status   int
	}{
		{NotFound("products.get", "product 1"), ErrNotFound, http.StatusNotFound},
		{Invalid("products.add", "name", "required"), ErrValidation, http.StatusUnprocessableEntity},
		{Transient("db", errors.New("connection refused")), ErrTransient, http.StatusServiceUnavailable},
		{Conflict("checkout.place_order", "submission in flight"), ErrConflict, http.StatusConflict},
	}
	for _, c := range cases {
		if !errors.Is(c.err, c.sentinel) {
			t.Errorf("errors.Is(%v, %v) = false", c.err, c.sentinel)
		}
		if got := HTTPStatus(c.err); got != c.status {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.err, got, c.status)
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := errors.Wrap(NotFound("x", "thing"), "outer")
	if KindOf(err) != KindNotFound {
		t.Errorf("KindOf = %v, want not_found", KindOf(err))
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Error("KindOf plain error should be unknown")
	}
	if HTTPStatus(errors.New("plain")) != http.StatusInternalServerError {
		t.Error("plain error should map to 500")
	}
}

func TestValidation_MessageListsFieldsSorted(t *testing.T) {
	err := Validation("checkout.shipping", map[string]string{"zip": "must be 5 digits", "city": "required"})
	msg := err.Error()
	if !strings.Contains(msg, "city: required; zip: must be 5 digits") {
		t.Errorf("Error() = %q", msg)
	}
	if FieldsOf(err)["city"] != "required" {
		t.Errorf("FieldsOf = %v", FieldsOf(err))
	}
}

func TestTransient_Nil(t *testing.T) {
	if Transient("op", nil) != nil {
		t.Error("Transient(nil) should be nil")
	}
}
